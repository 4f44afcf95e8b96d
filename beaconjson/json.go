package beaconjson

import (
	"io"
	"runtime"

	"github.com/bytedance/sonic"
	jsoniter "github.com/json-iterator/go"
)

// The gateway spends most of its time encoding and decoding frames, so the
// codec is bound once at startup rather than branching per call: sonic on
// linux/amd64, json-iterator everywhere else.
var (
	Marshal   func(v any) ([]byte, error)
	Unmarshal func(data []byte, v any) error

	UnmarshalReader func(reader io.Reader, v any) error
)

func init() {
	if runtime.GOOS == "linux" && runtime.GOARCH == "amd64" {
		Marshal = sonic.Marshal
		Unmarshal = sonic.Unmarshal
		UnmarshalReader = func(reader io.Reader, v any) error {
			return sonic.ConfigDefault.NewDecoder(reader).Decode(v)
		}

		return
	}

	Marshal = jsoniter.Marshal
	Unmarshal = jsoniter.Unmarshal
	UnmarshalReader = func(reader io.Reader, v any) error {
		return jsoniter.NewDecoder(reader).Decode(v)
	}
}

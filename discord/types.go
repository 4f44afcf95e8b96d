package discord

import (
	"bytes"
	"fmt"
	"strconv"
)

var null = []byte("null")

// Snowflake is a 64 bit unique identifier used throughout the discord API.
// The gateway delivers snowflakes as JSON strings, however some fields may
// arrive as bare integers so both forms are accepted.
type Snowflake int64

func (s Snowflake) String() string {
	return strconv.FormatInt(int64(s), 10)
}

func (s Snowflake) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatInt(int64(s), 10) + `"`), nil
}

func (s *Snowflake) UnmarshalJSON(b []byte) error {
	return toSnowflake(b, s)
}

func toSnowflake(b []byte, s *Snowflake) error {
	if bytes.Equal(b, null) {
		return nil
	}

	if b[0] == '"' && len(b) >= 2 {
		i, err := strconv.ParseInt(string(b[1:len(b)-1]), 10, 64)
		if err != nil {
			return fmt.Errorf("failed to unmarshal snowflake: %v", err)
		}

		*s = Snowflake(i)
	} else {
		i, err := strconv.ParseInt(string(b), 10, 64)
		if err != nil {
			return fmt.Errorf("failed to unmarshal snowflake: %v", err)
		}

		*s = Snowflake(i)
	}

	return nil
}

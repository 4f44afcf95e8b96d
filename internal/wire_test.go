package internal

import (
	"reflect"
	"strings"
	"testing"

	"github.com/BeaconTeam/Beacon-Gateway/beaconjson"
	"github.com/BeaconTeam/Beacon-Gateway/discord"
)

func TestGatewayPayloadRoundTripDispatch(t *testing.T) {
	in := discord.GatewayPayload{
		Op:       discord.GatewayOpDispatch,
		Data:     []byte(`{"content":"hello"}`),
		Sequence: 7,
		Type:     "MESSAGE_CREATE",
	}

	data, err := beaconjson.Marshal(in)
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}

	var out discord.GatewayPayload

	err = beaconjson.Unmarshal(data, &out)
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}

	if !reflect.DeepEqual(in, out) {
		t.Errorf("Expected %+v, but got %+v", in, out)
	}
}

func TestGatewayPayloadRoundTripNonDispatch(t *testing.T) {
	in := discord.GatewayPayload{
		Op:   discord.GatewayOpHello,
		Data: []byte(`{"heartbeat_interval":45000}`),
	}

	data, err := beaconjson.Marshal(in)
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}

	// Sequence and type are only present on dispatch frames.
	if strings.Contains(string(data), `"s"`) || strings.Contains(string(data), `"t"`) {
		t.Errorf("Expected no s/t fields on non-dispatch frame, but got %s", data)
	}

	var out discord.GatewayPayload

	err = beaconjson.Unmarshal(data, &out)
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}

	if !reflect.DeepEqual(in, out) {
		t.Errorf("Expected %+v, but got %+v", in, out)
	}
}

func TestGatewayPayloadAcceptsMissingSequenceAndType(t *testing.T) {
	var out discord.GatewayPayload

	err := beaconjson.Unmarshal([]byte(`{"op":11,"d":null}`), &out)
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}

	if out.Op != discord.GatewayOpHeartbeatACK {
		t.Errorf("Expected op %d, but got %d", discord.GatewayOpHeartbeatACK, out.Op)
	}

	if out.Sequence != 0 || out.Type != "" {
		t.Errorf("Expected empty sequence and type, but got %d %q", out.Sequence, out.Type)
	}
}

func TestSentPayloadHeartbeatNull(t *testing.T) {
	data, err := beaconjson.Marshal(discord.SentPayload{
		Op:   discord.GatewayOpHeartbeat,
		Data: nil,
	})
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}

	expected := `{"op":1,"d":null}`
	if string(data) != expected {
		t.Errorf("Expected %s, but got %s", expected, data)
	}
}

func TestSentPayloadHeartbeatSequence(t *testing.T) {
	seq := int64(42)

	data, err := beaconjson.Marshal(discord.SentPayload{
		Op:   discord.GatewayOpHeartbeat,
		Data: &seq,
	})
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}

	expected := `{"op":1,"d":42}`
	if string(data) != expected {
		t.Errorf("Expected %s, but got %s", expected, data)
	}
}

func TestUnknownOpcodeIsUnhandled(t *testing.T) {
	s := newTestSession(t)

	err := GatewayDispatch(s.ctx, s, discord.GatewayPayload{Op: discord.GatewayOp(250)})
	if err == nil {
		t.Fatal("Expected error for unknown opcode, but got nil")
	}
}

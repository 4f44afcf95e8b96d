package discord

import (
	"encoding/json"
	"testing"
)

func TestSnowflakeUnmarshalQuoted(t *testing.T) {
	var s Snowflake

	err := json.Unmarshal([]byte(`"175928847299117063"`), &s)
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}

	if s != Snowflake(175928847299117063) {
		t.Errorf("Expected 175928847299117063, but got %d", s)
	}
}

func TestSnowflakeUnmarshalBare(t *testing.T) {
	var s Snowflake

	err := json.Unmarshal([]byte(`175928847299117063`), &s)
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}

	if s != Snowflake(175928847299117063) {
		t.Errorf("Expected 175928847299117063, but got %d", s)
	}
}

func TestSnowflakeUnmarshalNull(t *testing.T) {
	s := Snowflake(5)

	err := json.Unmarshal([]byte(`null`), &s)
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}

	if s != Snowflake(5) {
		t.Errorf("Expected null to leave value untouched, but got %d", s)
	}
}

func TestSnowflakeMarshal(t *testing.T) {
	b, err := json.Marshal(Snowflake(42))
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}

	if string(b) != `"42"` {
		t.Errorf("Expected %q, but got %q", `"42"`, string(b))
	}
}

func TestSnowflakeRoundTrip(t *testing.T) {
	in := Snowflake(175928847299117063)

	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}

	var out Snowflake

	err = json.Unmarshal(b, &out)
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}

	if out != in {
		t.Errorf("Expected %d, but got %d", in, out)
	}
}

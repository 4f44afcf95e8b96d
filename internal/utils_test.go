package internal

import "testing"

func TestGetEntry(t *testing.T) {
	args := map[string]interface{}{
		"Address": "localhost:6379",
		"db":      "0",
	}

	v := GetEntry(args, "address")
	if v != "localhost:6379" {
		t.Errorf("Expected localhost:6379, but got %v", v)
	}

	v = GetEntry(args, "DB")
	if v != "0" {
		t.Errorf("Expected 0, but got %v", v)
	}

	v = GetEntry(args, "missing")
	if v != nil {
		t.Errorf("Expected nil, but got %v", v)
	}
}

func TestReplaceIfEmpty(t *testing.T) {
	v := replaceIfEmpty("", "default")
	expected := "default"

	if v != expected {
		t.Errorf("Expected %q, but got %q", expected, v)
	}

	v = replaceIfEmpty("value", "default")
	expected = "value"

	if v != expected {
		t.Errorf("Expected %q, but got %q", expected, v)
	}
}

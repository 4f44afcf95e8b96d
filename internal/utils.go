package internal

import "strings"

// Empty structure.
type void struct{}

// GetEntry returns a case insensitive value from a configuration map.
func GetEntry(m map[string]interface{}, key string) interface{} {
	key = strings.ToLower(key)
	for i, k := range m {
		if strings.ToLower(i) == key {
			return k
		}
	}

	return nil
}

func replaceIfEmpty(v string, s string) string {
	if v == "" {
		return s
	}

	return v
}

package jsonutil

import (
	"encoding/json"
	"fmt"
)

// FlexibleString converts a json.RawMessage to a string, tolerating
// models that emit numbers or booleans where a string was asked for.
// Returns empty string for null/empty.
func FlexibleString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		if n == float64(int64(n)) {
			return fmt.Sprintf("%d", int64(n))
		}
		return fmt.Sprintf("%g", n)
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return fmt.Sprintf("%t", b)
	}

	return string(raw)
}

// FlexibleStringSlice decodes a JSON array into strings, coercing
// non-string elements and dropping entries that decode to empty.
func FlexibleStringSlice(raw json.RawMessage) ([]string, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("not a JSON array: %w", err)
	}

	out := make([]string, 0, len(elems))
	for _, e := range elems {
		if s := FlexibleString(e); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

package blogapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// decodeLoose decodes JSON keeping numbers as json.Number.
func decodeLoose(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// unwrapData returns v["data"] when v is an object carrying one, else v.
func unwrapData(v any) any {
	if m, ok := v.(map[string]any); ok {
		if inner, ok := m["data"]; ok && inner != nil {
			return inner
		}
	}
	return v
}

// listOf extracts a comment list from {data:[...]} or a bare array.
func listOf(data []byte) ([]any, map[string]any, error) {
	v, err := decodeLoose(data)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding response: %w", err)
	}
	var meta map[string]any
	if m, ok := v.(map[string]any); ok {
		meta, _ = m["meta"].(map[string]any)
	}
	switch list := unwrapData(v).(type) {
	case []any:
		return list, meta, nil
	case nil:
		return []any{}, meta, nil
	default:
		return nil, nil, fmt.Errorf("decoding response: expected a list, got %T", list)
	}
}

func intField(m map[string]any, keys ...string) (int, bool) {
	for _, k := range keys {
		switch n := m[k].(type) {
		case json.Number:
			if i, err := n.Int64(); err == nil {
				return int(i), true
			}
			if f, err := n.Float64(); err == nil && !math.IsNaN(f) {
				return int(f), true
			}
		case float64:
			return int(n), true
		case string:
			if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
				return i, true
			}
		}
	}
	return 0, false
}

func boolField(m map[string]any, key string) (bool, bool) {
	switch b := m[key].(type) {
	case bool:
		return b, true
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(b)); err == nil {
			return parsed, true
		}
	}
	return false, false
}

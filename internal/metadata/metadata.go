// Package metadata defines the free-form metadata maps attached to ingested
// documents and chunks. Values are restricted to primitives (string, int,
// float, bool); nested structures are rejected at the boundary rather than
// silently flattened.
package metadata

import (
	"fmt"
	"sort"
	"strconv"
)

// Reserved keys written by the retrieval engine. Caller-supplied metadata
// using these keys is rejected on ingestion.
const (
	KeyTier     = "tier"
	KeySourceID = "source_id"
	KeyParentID = "parent_id"
)

// Map is a string-keyed metadata map holding primitive values only.
type Map map[string]any

// Validate checks that every value in the map is a supported primitive.
func Validate(m Map) error {
	for k, v := range m {
		switch v.(type) {
		case string, bool, int, int32, int64, float32, float64:
		default:
			return fmt.Errorf("metadata key %q: unsupported value type %T (only string, int, float and bool are allowed)", k, v)
		}
	}
	return nil
}

// ValidateUserSupplied runs Validate and additionally rejects the engine's
// reserved keys.
func ValidateUserSupplied(m Map) error {
	if err := Validate(m); err != nil {
		return err
	}
	for _, k := range []string{KeyTier, KeySourceID, KeyParentID} {
		if _, ok := m[k]; ok {
			return fmt.Errorf("metadata key %q is reserved", k)
		}
	}
	return nil
}

// Clone returns a shallow copy of the map. A nil map clones to an empty one.
func Clone(m Map) Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Merge returns a copy of base with overlay's entries applied on top.
func Merge(base, overlay Map) Map {
	out := Clone(base)
	for k, v := range overlay {
		out[k] = v
	}
	return out
}

// Flatten converts the map to map[string]string for stores that only accept
// string values. Numbers and bools are formatted with strconv.
func Flatten(m Map) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		switch val := v.(type) {
		case string:
			out[k] = val
		case bool:
			out[k] = strconv.FormatBool(val)
		case int:
			out[k] = strconv.Itoa(val)
		case int32:
			out[k] = strconv.FormatInt(int64(val), 10)
		case int64:
			out[k] = strconv.FormatInt(val, 10)
		case float32:
			out[k] = strconv.FormatFloat(float64(val), 'g', -1, 32)
		case float64:
			out[k] = strconv.FormatFloat(val, 'g', -1, 64)
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out
}

// Unflatten converts a flat string map back into a Map. Values that parse as
// bool, int or float are restored to those types; everything else stays a
// string. The engine's reserved keys are always kept as strings so that
// identifier-shaped values (e.g. a numeric source id) survive round trips.
func Unflatten(flat map[string]string) Map {
	out := make(Map, len(flat))
	for k, s := range flat {
		if k == KeyTier || k == KeySourceID || k == KeyParentID {
			out[k] = s
			continue
		}
		if b, err := strconv.ParseBool(s); err == nil && (s == "true" || s == "false") {
			out[k] = b
			continue
		}
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			out[k] = i
			continue
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			out[k] = f
			continue
		}
		out[k] = s
	}
	return out
}

// String returns the value for key if it is a string, or "" otherwise.
func String(m Map, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Keys returns the map's keys in sorted order.
func Keys(m Map) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

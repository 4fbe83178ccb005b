// Package raw wraps decoded upstream JSON in total get-or-default
// accessors, so model construction never fails on missing, null, or
// wrong-typed fields.
package raw

import (
	"encoding/json"
	"strconv"
)

// Object is one JSON object from an upstream payload.
type Object map[string]any

// FromAny converts a decoded JSON value into an Object; anything that
// is not an object becomes an empty Object.
func FromAny(v any) Object {
	if m, ok := v.(map[string]any); ok {
		return Object(m)
	}
	return Object{}
}

// Decode parses b into an Object. Invalid JSON or non-object payloads
// yield an empty Object.
func Decode(b []byte) Object {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return Object{}
	}
	return FromAny(v)
}

// Str returns the string at key, or "".
func (o Object) Str(key string) string {
	s, _ := o[key].(string)
	return s
}

// StrOr returns the string at key, or def when absent/empty.
func (o Object) StrOr(key, def string) string {
	if s := o.Str(key); s != "" {
		return s
	}
	return def
}

// ID returns the value at key rendered as a string identifier. Jira
// serves ids both as strings and as numbers depending on the endpoint.
func (o Object) ID(key string) string {
	switch v := o[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	default:
		return ""
	}
}

// Int returns the value at key coerced to int. Non-numeric or absent
// input coerces to 0, never an error.
func (o Object) Int(key string) int {
	switch v := o[key].(type) {
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// Bool returns the bool at key, or def when absent or mistyped.
func (o Object) Bool(key string, def bool) bool {
	if b, ok := o[key].(bool); ok {
		return b
	}
	return def
}

// Obj returns the nested object at key. Absent or mistyped values yield
// an empty Object; Has distinguishes the two when it matters.
func (o Object) Obj(key string) Object {
	return FromAny(o[key])
}

// Has reports whether key holds a structured (object) value.
func (o Object) Has(key string) bool {
	_, ok := o[key].(map[string]any)
	return ok
}

// List returns the objects in the array at key, skipping non-objects.
func (o Object) List(key string) []Object {
	items, ok := o[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Object, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			out = append(out, Object(m))
		}
	}
	return out
}

// Strings returns the string elements of the array at key.
func (o Object) Strings(key string) []string {
	items, ok := o[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

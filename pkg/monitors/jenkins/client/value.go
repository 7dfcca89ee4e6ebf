package client

import (
	"encoding/json"
	"math"
)

// Kind is the JSON type held by a Value
type Kind int

const (
	// KindNull is a JSON null or a missing value
	KindNull Kind = iota
	// KindObject is a JSON object
	KindObject
	// KindArray is a JSON array
	KindArray
	// KindNumber is a JSON number
	KindNumber
	// KindString is a JSON string
	KindString
	// KindBool is a JSON boolean
	KindBool
)

// Value wraps a decoded JSON document so that fields can be walked without
// type assertions.  Every accessor is total: asking for something that isn't
// there, or that has a different shape, returns the zero value of the
// requested type instead of failing.
type Value struct {
	raw interface{}
}

// EmptyValue is what the client returns when a query fails
func EmptyValue() Value {
	return Value{raw: map[string]interface{}{}}
}

// NewValue wraps an already decoded JSON document (as produced by
// encoding/json when decoding into an interface{})
func NewValue(raw interface{}) Value {
	return Value{raw: raw}
}

// Kind returns the JSON type of the value
func (v Value) Kind() Kind {
	switch v.raw.(type) {
	case map[string]interface{}:
		return KindObject
	case []interface{}:
		return KindArray
	case float64, json.Number, int, int64:
		return KindNumber
	case string:
		return KindString
	case bool:
		return KindBool
	default:
		return KindNull
	}
}

// Get returns the field `key` of an object, or a null Value
func (v Value) Get(key string) Value {
	if m, ok := v.raw.(map[string]interface{}); ok {
		return Value{raw: m[key]}
	}
	return Value{}
}

// Index returns the i-th element of an array, or a null Value
func (v Value) Index(i int) Value {
	if a, ok := v.raw.([]interface{}); ok && i >= 0 && i < len(a) {
		return Value{raw: a[i]}
	}
	return Value{}
}

// Items returns the elements of an array.  Anything else has no items.
func (v Value) Items() []Value {
	a, ok := v.raw.([]interface{})
	if !ok {
		return nil
	}
	out := make([]Value, len(a))
	for i := range a {
		out[i] = Value{raw: a[i]}
	}
	return out
}

// Len is the number of elements of an array or fields of an object, 0 for
// every other kind.
func (v Value) Len() int {
	switch t := v.raw.(type) {
	case []interface{}:
		return len(t)
	case map[string]interface{}:
		return len(t)
	}
	return 0
}

// Int returns a number truncated toward zero.  Strings are not coerced.
func (v Value) Int() int64 {
	switch t := v.raw.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0
		}
		return int64(t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return int64(f)
		}
	case int:
		return int64(t)
	case int64:
		return t
	}
	return 0
}

// Str returns the string content, or "" for non-strings
func (v Value) Str() string {
	if s, ok := v.raw.(string); ok {
		return s
	}
	return ""
}

// Truthy follows the usual dynamic-language rules: null, false, 0, "" and
// empty collections are false, everything else is true.
func (v Value) Truthy() bool {
	switch t := v.raw.(type) {
	case bool:
		return t
	case string:
		return t != ""
	case []interface{}:
		return len(t) > 0
	case map[string]interface{}:
		return len(t) > 0
	case nil:
		return false
	}
	if v.Kind() == KindNumber {
		return v.Int() != 0 || v.float() != 0
	}
	return false
}

// IsEmpty is true for null values and empty objects/arrays, which is what a
// failed query looks like.
func (v Value) IsEmpty() bool {
	switch v.Kind() {
	case KindNull:
		return true
	case KindObject, KindArray:
		return v.Len() == 0
	}
	return false
}

// Raw gives access to the underlying decoded document
func (v Value) Raw() interface{} {
	return v.raw
}

func (v Value) float() float64 {
	switch t := v.raw.(type) {
	case float64:
		return t
	case json.Number:
		f, _ := t.Float64()
		return f
	}
	return float64(v.Int())
}

package ast

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ValueKind identifies which variant of the Value union is populated.
type ValueKind string

const (
	KindAbsent ValueKind = "absent"
	KindString ValueKind = "string"
	KindNumber ValueKind = "number"
	KindBool   ValueKind = "bool"
	KindArray  ValueKind = "array"
	KindObject ValueKind = "object"
)

// Value is a tagged-union answer/variable value. Exactly one variant field
// is meaningful, selected by Kind. The zero Value is absent.
type Value struct {
	Kind ValueKind

	Str  string
	Num  float64
	Bool bool
	Arr  []Value
	Obj  map[string]Value
}

// AnswerMap maps question codes to answer values. Absent keys and explicit
// absent values are equivalent for all pipeline components.
type AnswerMap map[string]Value

// Get returns the value for code, or an absent Value when the key is missing.
func (m AnswerMap) Get(code string) Value {
	if v, ok := m[code]; ok {
		return v
	}
	return Absent()
}

// Absent returns the absent value.
func Absent() Value {
	return Value{Kind: KindAbsent}
}

// String returns a string value.
func String(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// Number returns a numeric value.
func Number(f float64) Value {
	return Value{Kind: KindNumber, Num: f}
}

// Boolean returns a boolean value.
func Boolean(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// Array returns an array value.
func Array(elems ...Value) Value {
	return Value{Kind: KindArray, Arr: elems}
}

// Strings returns an array value built from plain strings.
func Strings(ss ...string) Value {
	elems := make([]Value, len(ss))
	for i, s := range ss {
		elems[i] = String(s)
	}
	return Value{Kind: KindArray, Arr: elems}
}

// Object returns an object value.
func Object(fields map[string]Value) Value {
	return Value{Kind: KindObject, Obj: fields}
}

// FromAny converts a dynamically typed value (as produced by YAML or JSON
// decoding) into a Value. Unrecognised types map to absent.
func FromAny(v interface{}) Value {
	switch val := v.(type) {
	case nil:
		return Absent()
	case string:
		return String(val)
	case bool:
		return Boolean(val)
	case float64:
		return Number(val)
	case float32:
		return Number(float64(val))
	case int:
		return Number(float64(val))
	case int64:
		return Number(float64(val))
	case uint64:
		return Number(float64(val))
	case []interface{}:
		elems := make([]Value, len(val))
		for i, e := range val {
			elems[i] = FromAny(e)
		}
		return Value{Kind: KindArray, Arr: elems}
	case map[string]interface{}:
		fields := make(map[string]Value, len(val))
		for k, e := range val {
			fields[k] = FromAny(e)
		}
		return Value{Kind: KindObject, Obj: fields}
	default:
		return Absent()
	}
}

// FromYAML converts a value decoded from YAML into a Value, normalizing
// YAML's integer and non-string-keyed map representations first.
func FromYAML(v interface{}) Value {
	return FromAny(normalizeYAML(v))
}

// IsAbsent reports whether the value is absent.
func (v Value) IsAbsent() bool {
	return v.Kind == KindAbsent || v.Kind == ""
}

// IsEmpty reports whether the value is absent or an empty string/array/object.
// Used by answer validation: an empty answer does not satisfy a required question.
func (v Value) IsEmpty() bool {
	switch v.Kind {
	case KindString:
		return strings.TrimSpace(v.Str) == ""
	case KindArray:
		return len(v.Arr) == 0
	case KindObject:
		return len(v.Obj) == 0
	case KindNumber, KindBool:
		return false
	default:
		return true
	}
}

// Truthy reports whether the value is truthy in template conditionals:
// absent is false, booleans are themselves, numbers are true unless zero,
// strings/arrays/objects are true unless empty.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindString:
		return v.Str != ""
	case KindNumber:
		return v.Num != 0
	case KindBool:
		return v.Bool
	case KindArray:
		return len(v.Arr) > 0
	case KindObject:
		return len(v.Obj) > 0
	default:
		return false
	}
}

// AsNumber coerces the value to a number. Numeric strings convert; all
// other kinds report false.
func (v Value) AsNumber() (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Num, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Equal reports deep value equality. Absent equals only absent.
func (v Value) Equal(other Value) bool {
	if v.IsAbsent() || other.IsAbsent() {
		return v.IsAbsent() && other.IsAbsent()
	}
	if v.Kind != other.Kind {
		// Numeric strings compare numerically against numbers, matching the
		// loose comparison the wizard applies to select answers.
		if a, ok := v.AsNumber(); ok {
			if b, ok2 := other.AsNumber(); ok2 {
				return a == b
			}
		}
		return false
	}
	switch v.Kind {
	case KindString:
		return v.Str == other.Str
	case KindNumber:
		return v.Num == other.Num
	case KindBool:
		return v.Bool == other.Bool
	case KindArray:
		if len(v.Arr) != len(other.Arr) {
			return false
		}
		for i := range v.Arr {
			if !v.Arr[i].Equal(other.Arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.Obj) != len(other.Obj) {
			return false
		}
		for k, a := range v.Obj {
			b, ok := other.Obj[k]
			if !ok || !a.Equal(b) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Contains reports whether an array value contains elem. Non-array values
// never contain anything.
func (v Value) Contains(elem Value) bool {
	if v.Kind != KindArray {
		return false
	}
	for _, e := range v.Arr {
		if e.Equal(elem) {
			return true
		}
	}
	return false
}

// Field returns the named field of an object value, or absent.
func (v Value) Field(name string) Value {
	if v.Kind != KindObject {
		return Absent()
	}
	if f, ok := v.Obj[name]; ok {
		return f
	}
	return Absent()
}

// Render returns the value formatted for interpolation into document prose.
// Absent renders as the empty string; arrays are comma separated.
func (v Value) Render() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindArray:
		parts := make([]string, len(v.Arr))
		for i, e := range v.Arr {
			parts[i] = e.Render()
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// MarshalJSON encodes the value as its native JSON representation
// (string, number, boolean, array, object, or null for absent).
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.toAny())
}

// UnmarshalJSON decodes a native JSON value into the tagged union.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = FromAny(raw)
	return nil
}

// MarshalYAML encodes the value as its native YAML representation.
func (v Value) MarshalYAML() (interface{}, error) {
	return v.toAny(), nil
}

// UnmarshalYAML decodes a native YAML value into the tagged union.
func (v *Value) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	*v = FromAny(normalizeYAML(raw))
	return nil
}

// toAny converts the value back to a dynamically typed representation.
func (v Value) toAny() interface{} {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return v.Num
	case KindBool:
		return v.Bool
	case KindArray:
		elems := make([]interface{}, len(v.Arr))
		for i, e := range v.Arr {
			elems[i] = e.toAny()
		}
		return elems
	case KindObject:
		fields := make(map[string]interface{}, len(v.Obj))
		for k, e := range v.Obj {
			fields[k] = e.toAny()
		}
		return fields
	default:
		return nil
	}
}

// normalizeYAML converts YAML's map[interface{}]interface{} and integer
// types into the JSON-compatible shapes FromAny expects.
func normalizeYAML(v interface{}) interface{} {
	switch val := v.(type) {
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, e := range val {
			m[fmt.Sprint(k)] = normalizeYAML(e)
		}
		return m
	case map[string]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, e := range val {
			m[k] = normalizeYAML(e)
		}
		return m
	case []interface{}:
		s := make([]interface{}, len(val))
		for i, e := range val {
			s[i] = normalizeYAML(e)
		}
		return s
	default:
		return v
	}
}

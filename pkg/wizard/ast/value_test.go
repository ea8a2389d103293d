package ast

import (
	"encoding/json"
	"testing"
)

// TestValue_Equal tests deep equality across kinds including the loose
// numeric-string comparison.
func TestValue_Equal(t *testing.T) {
	tests := []struct {
		name string
		a    Value
		b    Value
		want bool
	}{
		{name: "equal strings", a: String("retail"), b: String("retail"), want: true},
		{name: "different strings", a: String("retail"), b: String("wholesale"), want: false},
		{name: "equal numbers", a: Number(42), b: Number(42), want: true},
		{name: "number vs numeric string", a: Number(10), b: String("10"), want: true},
		{name: "number vs non-numeric string", a: Number(10), b: String("ten"), want: false},
		{name: "equal booleans", a: Boolean(true), b: Boolean(true), want: true},
		{name: "boolean vs string", a: Boolean(true), b: String("true"), want: false},
		{name: "absent equals absent", a: Absent(), b: Absent(), want: true},
		{name: "absent vs string", a: Absent(), b: String(""), want: false},
		{name: "zero value equals absent", a: Value{}, b: Absent(), want: true},
		{name: "equal arrays", a: Strings("a", "b"), b: Strings("a", "b"), want: true},
		{name: "arrays order matters", a: Strings("a", "b"), b: Strings("b", "a"), want: false},
		{name: "arrays different length", a: Strings("a"), b: Strings("a", "b"), want: false},
		{
			name: "equal objects",
			a:    Object(map[string]Value{"k": Number(1)}),
			b:    Object(map[string]Value{"k": Number(1)}),
			want: true,
		},
		{
			name: "objects different field",
			a:    Object(map[string]Value{"k": Number(1)}),
			b:    Object(map[string]Value{"k": Number(2)}),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
			// Equality is symmetric.
			if got := tt.b.Equal(tt.a); got != tt.want {
				t.Errorf("Equal() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestValue_Contains tests array membership, including the non-array cases.
func TestValue_Contains(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		elem Value
		want bool
	}{
		{name: "member present", v: Strings("retail", "professional"), elem: String("retail"), want: true},
		{name: "member missing", v: Strings("retail"), elem: String("wholesale"), want: false},
		{name: "scalar never contains", v: String("retail"), elem: String("retail"), want: false},
		{name: "absent never contains", v: Absent(), elem: String("retail"), want: false},
		{name: "numeric member loose match", v: Array(Number(5)), elem: String("5"), want: true},
		{name: "empty array", v: Array(), elem: String("x"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Contains(tt.elem); got != tt.want {
				t.Errorf("Contains() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValue_IsEmpty(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{name: "absent", v: Absent(), want: true},
		{name: "empty string", v: String(""), want: true},
		{name: "whitespace string", v: String("   "), want: true},
		{name: "non-empty string", v: String("x"), want: false},
		{name: "zero number not empty", v: Number(0), want: false},
		{name: "false not empty", v: Boolean(false), want: false},
		{name: "empty array", v: Array(), want: true},
		{name: "non-empty array", v: Strings("a"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValue_Truthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{name: "absent", v: Absent(), want: false},
		{name: "true", v: Boolean(true), want: true},
		{name: "false", v: Boolean(false), want: false},
		{name: "zero", v: Number(0), want: false},
		{name: "nonzero", v: Number(-1), want: true},
		{name: "empty string", v: String(""), want: false},
		{name: "string", v: String("no"), want: true},
		{name: "empty array", v: Array(), want: false},
		{name: "array", v: Strings("a"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Truthy(); got != tt.want {
				t.Errorf("Truthy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValue_Render(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{name: "string", v: String("MLRO"), want: "MLRO"},
		{name: "integer-valued number", v: Number(30), want: "30"},
		{name: "fractional number", v: Number(2.5), want: "2.5"},
		{name: "boolean", v: Boolean(true), want: "true"},
		{name: "array comma separated", v: Strings("a", "b", "c"), want: "a, b, c"},
		{name: "absent renders empty", v: Absent(), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Render(); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestValue_JSONRoundTrip verifies values survive JSON encode/decode with
// their native representation.
func TestValue_JSONRoundTrip(t *testing.T) {
	original := Object(map[string]Value{
		"name":     String("Acme"),
		"count":    Number(3),
		"flag":     Boolean(true),
		"channels": Strings("online", "branch"),
	})

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded Value
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !decoded.Equal(original) {
		t.Errorf("round trip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestAnswerMap_Get(t *testing.T) {
	m := AnswerMap{"q1": String("yes")}

	if got := m.Get("q1"); !got.Equal(String("yes")) {
		t.Errorf("Get(q1) = %+v, want string yes", got)
	}
	if got := m.Get("missing"); !got.IsAbsent() {
		t.Errorf("Get(missing) = %+v, want absent", got)
	}
}

func TestFromYAML_NormalizesIntegers(t *testing.T) {
	v := FromYAML(map[interface{}]interface{}{
		"limit": 10,
		"tags":  []interface{}{int64(1), "two"},
	})

	if v.Kind != KindObject {
		t.Fatalf("Kind = %v, want object", v.Kind)
	}
	if got := v.Field("limit"); !got.Equal(Number(10)) {
		t.Errorf("limit = %+v, want number 10", got)
	}
	tags := v.Field("tags")
	if !tags.Contains(Number(1)) || !tags.Contains(String("two")) {
		t.Errorf("tags = %+v, want [1, two]", tags)
	}
}

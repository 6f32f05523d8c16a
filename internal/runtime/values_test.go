package runtime

import (
	"testing"

	"github.com/lunar-lang/lunar/internal/ast"
)

func TestTruthy(t *testing.T) {
	tests := []struct {
		value Value
		want  bool
	}{
		{Nil{}, false},
		{Bool(false), false},
		{Bool(true), true},
		{Int(0), true},
		{Float(0), true},
		{String(""), true},
		{&Function{Decl: &ast.Function{}}, true},
	}

	for _, tt := range tests {
		if got := Truthy(tt.value); got != tt.want {
			t.Fatalf("Truthy(%s) expected=%v, got=%v", Inspect(tt.value), tt.want, got)
		}
	}
}

func TestKindNames(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{Nil{}, "nil"},
		{Int(1), "number"},
		{Float(1.5), "number"},
		{String("s"), "string"},
		{Bool(true), "boolean"},
		{&Function{Decl: &ast.Function{Name: "f"}}, "function"},
	}

	for _, tt := range tests {
		if got := tt.value.Kind().String(); got != tt.want {
			t.Fatalf("expected=%q, got=%q", tt.want, got)
		}
	}

	if !SameType(Int(1), Float(2)) {
		t.Fatalf("integers and floats should share the number type")
	}
	if SameType(Int(1), String("1")) {
		t.Fatalf("numbers and strings should not share a type")
	}
}

func TestInspect(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{Nil{}, "nil"},
		{Int(-4), "-4"},
		{Float(2.5), "2.5"},
		{Float(3), "3"},
		{String("hi"), `"hi"`},
		{Bool(false), "false"},
		{&Function{Decl: &ast.Function{Name: "sq"}}, "function: sq"},
		{&Function{Decl: &ast.Function{}}, "function: anonymous"},
	}

	for _, tt := range tests {
		if got := Inspect(tt.value); got != tt.want {
			t.Fatalf("expected=%q, got=%q", tt.want, got)
		}
	}
}

func TestFromLiteral(t *testing.T) {
	tests := []struct {
		literal any
		want    Value
	}{
		{nil, Nil{}},
		{int64(7), Int(7)},
		{1.25, Float(1.25)},
		{"x", String("x")},
		{true, Bool(true)},
		{Int(3), Int(3)},
	}

	for _, tt := range tests {
		got, ok := FromLiteral(tt.literal)
		if !ok || got != tt.want {
			t.Fatalf("FromLiteral(%v) expected=%v, got=%v (ok=%v)", tt.literal, tt.want, got, ok)
		}
	}

	if _, ok := FromLiteral(struct{}{}); ok {
		t.Fatalf("expected unsupported literal to be rejected")
	}
}

package runtime

import (
	"strconv"

	"github.com/lunar-lang/lunar/internal/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindInteger
	KindFloat
	KindString
	KindBool
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindInteger, KindFloat:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Value is a runtime value. The set is closed: Nil, Int, Float, String, Bool
// and *Function.
type Value interface {
	Kind() Kind
	String() string
}

type (
	Nil    struct{}
	Int    int64
	Float  float64
	String string
	Bool   bool
)

// Function is a function value. It captures no environment: calls run in the
// caller's frame stack.
type Function struct {
	Decl *ast.Function
}

func (Nil) Kind() Kind        { return KindNil }
func (Int) Kind() Kind        { return KindInteger }
func (Float) Kind() Kind      { return KindFloat }
func (String) Kind() Kind     { return KindString }
func (Bool) Kind() Kind       { return KindBool }
func (*Function) Kind() Kind  { return KindFunction }
func (Nil) String() string    { return "nil" }
func (v Int) String() string  { return strconv.FormatInt(int64(v), 10) }
func (v Bool) String() string { return strconv.FormatBool(bool(v)) }

func (v Float) String() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 64)
}

// String returns the raw text; use Quote for a source-like rendering.
func (v String) String() string { return string(v) }

func (f *Function) String() string {
	if f.Decl == nil || f.Decl.Name == "" {
		return "function: anonymous"
	}
	return "function: " + f.Decl.Name
}

// Arity is the number of declared parameters.
func (f *Function) Arity() int {
	return len(f.Decl.Params)
}

// Truthy reports whether v counts as true in a condition: anything except
// boolean false and nil.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case nil, Nil:
		return false
	case Bool:
		return bool(v)
	default:
		return true
	}
}

// IsNumber reports whether v is an Int or a Float.
func IsNumber(v Value) bool {
	switch v.(type) {
	case Int, Float:
		return true
	default:
		return false
	}
}

// SameType reports whether a and b share a runtime type, with Int and Float
// both counting as number.
func SameType(a, b Value) bool {
	return a.Kind().String() == b.Kind().String()
}

// FromLiteral converts a literal payload into a runtime value.
func FromLiteral(v any) (Value, bool) {
	switch v := v.(type) {
	case nil:
		return Nil{}, true
	case Value:
		return v, true
	case int64:
		return Int(v), true
	case float64:
		return Float(v), true
	case string:
		return String(v), true
	case bool:
		return Bool(v), true
	case *ast.Function:
		return &Function{Decl: v}, true
	default:
		return nil, false
	}
}

// Inspect renders v for display, quoting strings.
func Inspect(v Value) string {
	if s, ok := v.(String); ok {
		return strconv.Quote(string(s))
	}
	if v == nil {
		return "nil"
	}
	return v.String()
}

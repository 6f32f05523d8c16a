package interp

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/lunar-lang/lunar/internal/ast"
	"github.com/lunar-lang/lunar/internal/lexer"
	"github.com/lunar-lang/lunar/internal/runtime"
)

func (i *Interpreter) evalExpr(expr ast.Expr) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		v, ok := runtime.FromLiteral(e.Value)
		if !ok {
			return nil, unsupportedf("", e.Span(), "unsupported literal %T", e.Value)
		}
		return v, nil

	case *ast.Ident:
		v, ok := i.env.Get(e.Name)
		if !ok {
			return nil, nameErrorf(e.Name, e.Span(), "undefined variable %q", e.Name)
		}
		return v, nil

	case *ast.GroupedExpr:
		return i.evalExpr(e.Inner)

	case *ast.BinaryExpr:
		left, err := i.evalExpr(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := i.evalExpr(e.Right)
		if err != nil {
			return nil, err
		}
		return binary(e.Op, left, right, e.Span())

	case *ast.UnaryExpr:
		operand, err := i.evalExpr(e.Operand)
		if err != nil {
			return nil, err
		}
		return unary(e.Op, operand, e.Span())

	case *ast.Function:
		return &runtime.Function{Decl: e}, nil

	case *ast.CallExpr:
		return i.call(e)

	default:
		return nil, unsupportedf("", expr.Span(), "cannot evaluate %T", expr)
	}
}

// binary applies op to two already evaluated operands.
func binary(op lexer.Token, left, right runtime.Value, span lexer.Span) (runtime.Value, error) {
	sym := op.Lexeme

	switch op.Type {
	case lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT:
		if !runtime.IsNumber(left) || !runtime.IsNumber(right) {
			return nil, typeErrorf(sym, span,
				"operator '%s' expects numbers, got %s and %s", sym, left.Kind(), right.Kind())
		}
		return arithmetic(op.Type, sym, left, right, span)

	case lexer.DOTDOT:
		l, lok := left.(runtime.String)
		r, rok := right.(runtime.String)
		if !lok || !rok {
			return nil, typeErrorf(sym, span,
				"operator '%s' expects strings, got %s and %s", sym, left.Kind(), right.Kind())
		}
		return l + r, nil

	case lexer.EQUALS, lexer.NEQ, lexer.LESS, lexer.LEQ, lexer.GREATER, lexer.GEQ:
		cmp, err := compare(sym, left, right, span)
		if err != nil {
			return nil, err
		}
		switch op.Type {
		case lexer.EQUALS:
			return runtime.Bool(cmp == 0), nil
		case lexer.NEQ:
			return runtime.Bool(cmp != 0), nil
		case lexer.LESS:
			return runtime.Bool(cmp < 0), nil
		case lexer.LEQ:
			return runtime.Bool(cmp <= 0), nil
		case lexer.GREATER:
			return runtime.Bool(cmp > 0), nil
		default:
			return runtime.Bool(cmp >= 0), nil
		}

	case lexer.AND:
		return runtime.Bool(runtime.Truthy(left) && runtime.Truthy(right)), nil

	case lexer.OR:
		return runtime.Bool(runtime.Truthy(left) || runtime.Truthy(right)), nil

	default:
		return nil, unsupportedf(sym, span, "unknown binary operator '%s'", sym)
	}
}

func unary(op lexer.Token, operand runtime.Value, span lexer.Span) (runtime.Value, error) {
	sym := op.Lexeme

	switch op.Type {
	case lexer.HASH:
		s, ok := operand.(runtime.String)
		if !ok {
			return nil, typeErrorf(sym, span, "operator '#' expects a string, got %s", operand.Kind())
		}
		return runtime.Int(utf8.RuneCountInString(string(s))), nil

	case lexer.MINUS:
		switch v := operand.(type) {
		case runtime.Int:
			if v == math.MinInt64 {
				return -runtime.Float(v), nil
			}
			return -v, nil
		case runtime.Float:
			return -v, nil
		}
		return nil, typeErrorf(sym, span, "operator '-' expects a number, got %s", operand.Kind())

	case lexer.NOT:
		switch v := operand.(type) {
		case runtime.Nil:
			return runtime.Bool(false), nil
		case runtime.Bool:
			return !v, nil
		}
		return runtime.Bool(true), nil

	default:
		return nil, unsupportedf(sym, span, "unknown unary operator '%s'", sym)
	}
}

// arithmetic assumes both operands are numbers. Two integers stay integral
// except under '/', which always yields a float, and on int64 overflow, where
// the result is computed as a float instead.
func arithmetic(tt lexer.TokenType, sym string, left, right runtime.Value, span lexer.Span) (runtime.Value, error) {
	if (tt == lexer.SLASH || tt == lexer.PERCENT) && numberSign(right) == 0 {
		return nil, &RuntimeError{
			Kind:    DivisionByZeroError,
			Message: "attempt to divide by zero with '" + sym + "'",
			Op:      sym,
			Span:    span,
		}
	}

	l, lok := left.(runtime.Int)
	r, rok := right.(runtime.Int)
	if lok && rok {
		switch tt {
		case lexer.PLUS:
			if n, ok := addInts(l, r); ok {
				return n, nil
			}
		case lexer.MINUS:
			if n, ok := subInts(l, r); ok {
				return n, nil
			}
		case lexer.STAR:
			if n, ok := mulInts(l, r); ok {
				return n, nil
			}
		case lexer.PERCENT:
			m := l % r
			if m != 0 && (m < 0) != (r < 0) {
				m += r
			}
			return m, nil
		}
	}

	a, b := toFloat(left), toFloat(right)
	switch tt {
	case lexer.PLUS:
		return runtime.Float(a + b), nil
	case lexer.MINUS:
		return runtime.Float(a - b), nil
	case lexer.STAR:
		return runtime.Float(a * b), nil
	case lexer.SLASH:
		return runtime.Float(a / b), nil
	default:
		return runtime.Float(a - math.Floor(a/b)*b), nil
	}
}

// compare orders two numbers or two strings. Anything else, including a
// number against a string, is a type error.
func compare(sym string, left, right runtime.Value, span lexer.Span) (int, error) {
	orderable := func(v runtime.Value) bool {
		return runtime.IsNumber(v) || v.Kind() == runtime.KindString
	}
	if !orderable(left) || !orderable(right) || !runtime.SameType(left, right) {
		return 0, typeErrorf(sym, span,
			"operator '%s' cannot compare %s with %s", sym, left.Kind(), right.Kind())
	}

	if l, ok := left.(runtime.String); ok {
		return strings.Compare(string(l), string(right.(runtime.String))), nil
	}
	return compareNumbers(left, right), nil
}

func compareNumbers(left, right runtime.Value) int {
	l, lok := left.(runtime.Int)
	r, rok := right.(runtime.Int)
	if lok && rok {
		switch {
		case l < r:
			return -1
		case l > r:
			return 1
		}
		return 0
	}

	a, b := toFloat(left), toFloat(right)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// addInts, subInts and mulInts report false when the result does not fit in
// an int64.
func addInts(l, r runtime.Int) (runtime.Int, bool) {
	s := l + r
	return s, (l^s)&(r^s) >= 0
}

func subInts(l, r runtime.Int) (runtime.Int, bool) {
	d := l - r
	return d, (l^r)&(l^d) >= 0
}

func mulInts(l, r runtime.Int) (runtime.Int, bool) {
	if l == 0 || r == 0 {
		return 0, true
	}
	if (l == -1 && r == math.MinInt64) || (r == -1 && l == math.MinInt64) {
		return 0, false
	}
	p := l * r
	return p, p/r == l
}

func numberSign(v runtime.Value) int {
	switch n := v.(type) {
	case runtime.Int:
		return compareNumbers(n, runtime.Int(0))
	case runtime.Float:
		return compareNumbers(n, runtime.Float(0))
	}
	return 0
}

func toFloat(v runtime.Value) float64 {
	switch n := v.(type) {
	case runtime.Int:
		return float64(n)
	case runtime.Float:
		return float64(n)
	}
	return math.NaN()
}

package interp

import (
	"errors"
	"fmt"

	"github.com/lunar-lang/lunar/internal/diag"
	"github.com/lunar-lang/lunar/internal/lexer"
)

// ErrorKind classifies a fatal runtime fault.
type ErrorKind int

const (
	TypeError ErrorKind = iota
	NameError
	ArityError
	UnsupportedOperationError
	DivisionByZeroError
)

func (k ErrorKind) String() string {
	switch k {
	case TypeError:
		return "TypeError"
	case NameError:
		return "NameError"
	case ArityError:
		return "ArityError"
	case UnsupportedOperationError:
		return "UnsupportedOperationError"
	case DivisionByZeroError:
		return "DivisionByZeroError"
	default:
		return "RuntimeError"
	}
}

func (k ErrorKind) diagnosticCode() diag.Code {
	switch k {
	case TypeError:
		return diag.CodeRuntimeTypeError
	case NameError:
		return diag.CodeRuntimeNameError
	case ArityError:
		return diag.CodeRuntimeArityError
	case UnsupportedOperationError:
		return diag.CodeRuntimeUnsupportedOperation
	case DivisionByZeroError:
		return diag.CodeRuntimeDivisionByZero
	default:
		return diag.Code("RUNTIME_UNKNOWN_ERROR")
	}
}

// ErrBusy is returned when an Interpreter is asked to evaluate while another
// evaluation already owns its environment.
var ErrBusy = errors.New("interpreter is already evaluating")

// RuntimeError aborts an evaluation. Op carries the operator for operator
// faults and Name the identifier or function for name and arity faults.
type RuntimeError struct {
	Kind    ErrorKind
	Message string
	Op      string
	Name    string
	Span    lexer.Span
}

func (e *RuntimeError) Error() string {
	msg := e.Kind.String() + ": " + e.Message
	if e.Span.Line == 0 {
		return msg
	}
	return e.Span.ToDiag().String() + ": " + msg
}

// ToDiagnostic converts a runtime error into a shared diagnostic structure.
func (e *RuntimeError) ToDiagnostic() diag.Diagnostic {
	d := diag.Diagnostic{
		Stage:    diag.StageRuntime,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Kind.String() + ": " + e.Message,
		Span:     e.Span.ToDiag(),
	}
	switch e.Kind {
	case TypeError:
		if e.Op == ".." {
			d = d.WithHelp("values are never converted implicitly; `..` joins two strings")
		} else {
			d = d.WithHelp("values are never converted implicitly")
		}
	case NameError:
		d = d.WithNote(fmt.Sprintf("`%s` is not bound in any enclosing scope", e.Name))
	}
	return d
}

func typeErrorf(op string, span lexer.Span, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Kind:    TypeError,
		Message: fmt.Sprintf(format, args...),
		Op:      op,
		Span:    span,
	}
}

func nameErrorf(name string, span lexer.Span, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Kind:    NameError,
		Message: fmt.Sprintf(format, args...),
		Name:    name,
		Span:    span,
	}
}

func unsupportedf(op string, span lexer.Span, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Kind:    UnsupportedOperationError,
		Message: fmt.Sprintf(format, args...),
		Op:      op,
		Span:    span,
	}
}

package diag

import (
	"errors"
	"fmt"
)

// Stage identifies which interpreter phase produced the diagnostic.
type Stage string

const (
	StageLexer   Stage = "lexer"
	StageParser  Stage = "parser"
	StageRuntime Stage = "runtime"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// Lexer errors
	CodeLexerUnterminatedString Code = "LEXER_UNTERMINATED_STRING"
	CodeLexerIllegalRune        Code = "LEXER_ILLEGAL_RUNE"
	CodeLexerMalformedNumber    Code = "LEXER_MALFORMED_NUMBER"

	// Parser errors
	CodeParseUnexpectedToken Code = "PARSE_UNEXPECTED_TOKEN"

	// Runtime errors
	CodeRuntimeTypeError            Code = "RUNTIME_TYPE_ERROR"
	CodeRuntimeNameError            Code = "RUNTIME_NAME_ERROR"
	CodeRuntimeArityError           Code = "RUNTIME_ARITY_ERROR"
	CodeRuntimeUnsupportedOperation Code = "RUNTIME_UNSUPPORTED_OPERATION"
	CodeRuntimeDivisionByZero       Code = "RUNTIME_DIVISION_BY_ZERO"
)

// Span represents a location in source code.
type Span struct {
	Filename string
	Line     int
	Column   int
	Start    int
	End      int
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Diagnostic is a fatal error description surfaced to end-users.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Span     Span
	Notes    []string // Additional notes to display
	Help     string   // Help text
}

// WithNote adds a note to the diagnostic.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithHelp adds help text to the diagnostic.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}

// Diagnoser is implemented by every stage error.
type Diagnoser interface {
	error
	ToDiagnostic() Diagnostic
}

// FromError converts err into a Diagnostic. Errors that do not carry their own
// diagnostic become a plain error without location.
func FromError(err error) Diagnostic {
	var d Diagnoser
	if errors.As(err, &d) {
		return d.ToDiagnostic()
	}
	return Diagnostic{
		Severity: SeverityError,
		Message:  err.Error(),
	}
}

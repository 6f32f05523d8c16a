package parser

import (
	"errors"
	"fmt"

	"github.com/lunar-lang/lunar/internal/diag"
	"github.com/lunar-lang/lunar/internal/lexer"
)

// ParseError reports an unexpected token: what the grammar expected at that
// point, the token actually found and its position.
type ParseError struct {
	Expected string // a token kind such as "END", or a description such as "expression"
	Found    lexer.Token
	Message  string
	Span     lexer.Span
}

func newParseError(expected string, found lexer.Token, span lexer.Span) ParseError {
	msg := fmt.Sprintf("expected %s, found %s", expected, describeToken(found))
	return ParseError{
		Expected: expected,
		Found:    found,
		Message:  msg,
		Span:     span,
	}
}

func (e ParseError) Error() string {
	if e.Span.Line == 0 {
		return e.Message
	}
	return e.Span.ToDiag().String() + ": " + e.Message
}

// ToDiagnostic converts a parse error into a shared diagnostic structure.
func (e ParseError) ToDiagnostic() diag.Diagnostic {
	d := diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: diag.SeverityError,
		Code:     diag.CodeParseUnexpectedToken,
		Message:  e.Message,
		Span:     e.Span.ToDiag(),
	}
	if e.Found.Type == lexer.EOF {
		d = d.WithHelp("the input ended early; check for a missing `end` or `)`")
	}
	return d
}

func describeToken(tok lexer.Token) string {
	if tok.Type == lexer.EOF {
		return "end of input"
	}
	return fmt.Sprintf("%s `%s`", tok.Type, tok.Lexeme)
}

// IsIncomplete reports whether err was caused by the input ending before a
// construct was closed, i.e. more input could make it parse.
func IsIncomplete(err error) bool {
	var perr ParseError
	if errors.As(err, &perr) {
		return perr.Found.Type == lexer.EOF
	}
	var lerr lexer.LexerError
	if errors.As(err, &lerr) {
		return lerr.Kind == lexer.ErrUnterminatedString
	}
	return false
}

package diag_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lunar-lang/lunar/internal/diag"
)

func TestFormatterSnippet(t *testing.T) {
	var buf bytes.Buffer
	f := diag.NewFormatter(&buf)
	f.SetColor(false)
	f.AddSource("main.lun", "x = 1\ny = x + \"a\"\n")

	d := diag.Diagnostic{
		Stage:    diag.StageRuntime,
		Severity: diag.SeverityError,
		Code:     diag.CodeRuntimeTypeError,
		Message:  "TypeError: operator '+' expects numbers, got number and string",
		Span:     diag.Span{Filename: "main.lun", Line: 2, Column: 5, Start: 10, End: 17},
	}.WithHelp("values are never converted implicitly")

	f.Format(d)

	want := strings.Join([]string{
		"error[RUNTIME_TYPE_ERROR]: TypeError: operator '+' expects numbers, got number and string",
		" --> main.lun:2:5",
		"  |",
		"2 | y = x + \"a\"",
		"  |     ^^^^^^^",
		"help: values are never converted implicitly",
		"",
	}, "\n")

	if got := buf.String(); got != want {
		t.Fatalf("expected=\n%s\ngot=\n%s", want, got)
	}
}

func TestFormatterWithoutSource(t *testing.T) {
	var buf bytes.Buffer
	f := diag.NewFormatter(&buf)
	f.SetColor(false)

	f.Format(diag.Diagnostic{
		Severity: diag.SeverityError,
		Code:     diag.CodeParseUnexpectedToken,
		Message:  "expected END, found end of input",
		Span:     diag.Span{Line: 4, Column: 1},
	}.WithNote("while parsing a while loop"))

	want := "error[PARSE_UNEXPECTED_TOKEN]: expected END, found end of input\n" +
		"  --> 4:1\n" +
		"  = note: while parsing a while loop\n"

	if got := buf.String(); got != want {
		t.Fatalf("expected=%q, got=%q", want, got)
	}
}

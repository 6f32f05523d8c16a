package parser_test

import (
	"errors"
	"testing"

	"github.com/lunar-lang/lunar/internal/ast"
	"github.com/lunar-lang/lunar/internal/lexer"
	"github.com/lunar-lang/lunar/internal/parser"
)

func parseDump(t *testing.T, src string) string {
	t.Helper()
	program, err := parser.ParseProgram(src)
	if err != nil {
		t.Fatalf("ParseProgram(%q) failed: %v", src, err)
	}
	return ast.Dump(program)
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "global assignment",
			input: `x = 1`,
			want:  `(program (block (assign x 1)))`,
		},
		{
			name:  "local assignment",
			input: `local s = "hi"`,
			want:  `(program (block (local s "hi")))`,
		},
		{
			name:  "call statement",
			input: `print(1, x)`,
			want:  `(program (block (call print 1 x)))`,
		},
		{
			name:  "expression statement",
			input: `1 + 2`,
			want:  `(program (block (expr (+ 1 2))))`,
		},
		{
			name:  "semicolons",
			input: `a = 1;; b = 2;`,
			want:  `(program (block (assign a 1) (assign b 2)))`,
		},
		{
			name:  "return",
			input: `return nil`,
			want:  `(program (block (return nil)))`,
		},
		{
			name:  "bare return",
			input: `function f() return end`,
			want:  `(program (block (function f () (block (return nil)))))`,
		},
		{
			name:  "function",
			input: `function square(n) return n * n end`,
			want:  `(program (block (function square (n) (block (return (* n n))))))`,
		},
		{
			name:  "local function",
			input: `local function add(a, b) return a + b end`,
			want:  `(program (block (local-function add (a b) (block (return (+ a b))))))`,
		},
		{
			name:  "anonymous function value",
			input: `f = function(x) return x end`,
			want:  `(program (block (assign f (function (x) (block (return x))))))`,
		},
		{
			name:  "while",
			input: `while i < 1 do local k = 2; i = i + k end`,
			want:  `(program (block (while (< i 1) (block (local k 2) (assign i (+ i k))))))`,
		},
		{
			name:  "if else",
			input: `if x then y = 1 else y = 2 end`,
			want:  `(program (block (if x (block (assign y 1)) (block (assign y 2)))))`,
		},
		{
			name:  "elseif",
			input: `if a then x = 1 elseif b then x = 2 else x = 3 end`,
			want:  `(program (block (if a (block (assign x 1)) (block (if b (block (assign x 2)) (block (assign x 3)))))))`,
		},
		{
			name:  "for with step",
			input: `for i = 10, 1, -1 do n = n + i end`,
			want:  `(program (block (for (local i 10) 1 (- 1) (block (assign n (+ n i))))))`,
		},
		{
			name:  "for without step",
			input: `for i = 1, 3 do end`,
			want:  `(program (block (for (local i 1) 3 (block))))`,
		},
		{
			name:  "empty program",
			input: "-- nothing here\n",
			want:  `(program)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseDump(t, tt.input); got != tt.want {
				t.Fatalf("expected=%q, got=%q", tt.want, got)
			}
		})
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`1 + 2 * 3`, `(+ 1 (* 2 3))`},
		{`(1 + 2) * 3`, `(* (group (+ 1 2)) 3)`},
		{`1 - 2 - 3`, `(- (- 1 2) 3)`},
		{`a or b and c`, `(or a (and b c))`},
		{`a == b < c`, `(== a (< b c))`},
		{`not a == b`, `(== (not a) b)`},
		{`- - x`, `(- (- x))`},
		{`#s .. "x" >= 2 % 3`, `(>= (.. (# s) "x") (% 2 3))`},
		{`x ~= f(1, g(2)) or true`, `(or (~= x (call f 1 (call g 2))) true)`},
		{`5 * (2 + 3) and not true`, `(and (* 5 (group (+ 2 3))) (not true))`},
		{`1.5 / 2`, `(/ 1.5 2)`},
	}

	for _, tt := range tests {
		expr, err := parser.New(tt.input).ParseExpression()
		if err != nil {
			t.Fatalf("ParseExpression(%q) failed: %v", tt.input, err)
		}
		if got := ast.Dump(expr); got != tt.want {
			t.Fatalf("%q - expected=%q, got=%q", tt.input, tt.want, got)
		}
	}
}

func TestParseDeterministic(t *testing.T) {
	src := `
local function fib(n)
	if n < 2 then return n end
	return fib(n - 1) + fib(n - 2)
end
total = 0
for i = 1, 10 do total = total + fib(i) end
`
	first, err := parser.ParseProgram(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := parser.ParseProgram(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a, b := ast.Dump(first), ast.Dump(second); a != b {
		t.Fatalf("expected=%q, got=%q", a, b)
	}
	if a, b := ast.Fingerprint(first), ast.Fingerprint(second); a != b {
		t.Fatalf("fingerprints differ: %x vs %x", a, b)
	}
}

func TestNewFromTokens(t *testing.T) {
	tokens, err := lexer.Tokenize(`square(5)`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Drop EOF; the parser supplies it.
	tokens = tokens[:len(tokens)-1]

	program, err := parser.NewFromTokens(tokens).ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := ast.Dump(program), `(program (block (call square 5)))`; got != want {
		t.Fatalf("expected=%q, got=%q", want, got)
	}
}

func TestParseSpans(t *testing.T) {
	program, err := parser.ParseProgram("x = 1\nif x then\n  y = x + 2\nend", parser.WithFilename("s.lun"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stmts := program.Blocks[0].Stmts
	ifStmt, ok := stmts[1].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected *ast.IfStmt, got %T", stmts[1])
	}

	span := ifStmt.Span()
	if span.Filename != "s.lun" || span.Line != 2 || span.Column != 1 {
		t.Fatalf("unexpected if span %+v", span)
	}
	if span.End != 31 {
		t.Fatalf("expected if span to end at 31, got %d", span.End)
	}

	assign := ifStmt.Then.Stmts[0].(*ast.AssignStmt)
	add := assign.Value.(*ast.BinaryExpr)
	if s := add.Span(); s.Line != 3 || s.Column != 7 || s.End-s.Start != 5 {
		t.Fatalf("unexpected binary span %+v", s)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input      string
		expected   string
		found      lexer.TokenType
		line, col  int
		incomplete bool
	}{
		{`x = `, "expression", lexer.EOF, 1, 5, true},
		{`while x do y = 1`, "END", lexer.EOF, 1, 17, true},
		{`if x y = 1 end`, "THEN", lexer.IDENT, 1, 6, false},
		{`end`, "EOF", lexer.END, 1, 1, false},
		{"x = 1\nelse", "EOF", lexer.ELSE, 2, 1, false},
		{`f(1 2)`, "COMMA", lexer.NUMBER, 1, 5, false},
		{`local function (a) end`, "IDENT", lexer.LPAREN, 1, 16, false},
		{`val x = 1`, "expression", lexer.VAL, 1, 1, false},
		{`t = {}`, "expression", lexer.LBRACE, 1, 5, false},
		{`for i = 1 do end`, "COMMA", lexer.DO, 1, 11, false},
	}

	for _, tt := range tests {
		_, err := parser.ParseProgram(tt.input)

		var perr parser.ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("%q: expected ParseError, got %T (%v)", tt.input, err, err)
		}
		if perr.Expected != tt.expected {
			t.Fatalf("%q: expected=%q, got=%q", tt.input, tt.expected, perr.Expected)
		}
		if perr.Found.Type != tt.found {
			t.Fatalf("%q: found wrong. expected=%q, got=%q", tt.input, tt.found, perr.Found.Type)
		}
		if perr.Span.Line != tt.line || perr.Span.Column != tt.col {
			t.Fatalf("%q: expected %d:%d, got %d:%d", tt.input, tt.line, tt.col, perr.Span.Line, perr.Span.Column)
		}
		if got := parser.IsIncomplete(err); got != tt.incomplete {
			t.Fatalf("%q: IsIncomplete expected=%v, got=%v", tt.input, tt.incomplete, got)
		}
	}
}

func TestParseLexErrorSurfaces(t *testing.T) {
	_, err := parser.ParseProgram(`s = "open`)

	var lexErr lexer.LexerError
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected LexerError, got %T (%v)", err, err)
	}
	if !parser.IsIncomplete(err) {
		t.Fatalf("an unterminated string should be reported as incomplete input")
	}
}

func TestParseExpressionTrailingInput(t *testing.T) {
	_, err := parser.New(`1 + 2 3`).ParseExpression()

	var perr parser.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %T (%v)", err, err)
	}
	if perr.Expected != "EOF" || perr.Found.Lexeme != "3" {
		t.Fatalf("unexpected error %v", perr)
	}
	if got, want := perr.Error(), "1:7: expected EOF, found NUMBER `3`"; got != want {
		t.Fatalf("expected=%q, got=%q", want, got)
	}
}

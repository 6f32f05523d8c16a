package ast

import (
	"testing"

	"github.com/lunar-lang/lunar/internal/lexer"
)

func op(tt lexer.TokenType, lexeme string) lexer.Token {
	return lexer.Token{Type: tt, Lexeme: lexeme}
}

func sampleProgram(span lexer.Span) *Program {
	sum := NewBinaryExpr(NewIdent("n", span), op(lexer.STAR, "*"), NewIdent("n", span), span)
	body := NewBlock([]Stmt{NewReturnStmt(sum, span)}, span)
	fn := NewFunction("square", []string{"n"}, body, false, span)
	call := NewCallExpr(NewIdent("square", span), []Expr{NewLiteral(int64(5), span)}, span)
	loop := NewWhileStmt(
		NewUnaryExpr(op(lexer.NOT, "not"), NewLiteral(true, span), span),
		NewBlock([]Stmt{NewAssignStmt(NewIdent("k", span), NewLiteral("s", span), true, span)}, span),
		span,
	)
	return NewProgram([]*Block{NewBlock([]Stmt{fn, call, loop}, span)}, span)
}

func TestDump(t *testing.T) {
	got := Dump(sampleProgram(lexer.Span{}))
	want := `(program (block (function square (n) (block (return (* n n)))) (call square 5) (while (not true) (block (local k "s")))))`
	if got != want {
		t.Fatalf("expected=%q, got=%q", want, got)
	}
}

func TestFormatLiteral(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{nil, "nil"},
		{int64(-3), "-3"},
		{2.5, "2.5"},
		{"a\"b", `"a\"b"`},
		{false, "false"},
	}
	for _, tt := range tests {
		if got := FormatLiteral(tt.value); got != tt.want {
			t.Fatalf("expected=%q, got=%q", tt.want, got)
		}
	}
}

func TestFingerprintIgnoresSpans(t *testing.T) {
	a := sampleProgram(lexer.Span{})
	b := sampleProgram(lexer.Span{Filename: "x.lun", Line: 9, Column: 4, Start: 80, End: 90})

	if Fingerprint(a) != Fingerprint(b) {
		t.Fatalf("fingerprints differ for trees that only differ in spans")
	}
}

func TestFingerprintDistinguishesStructure(t *testing.T) {
	span := lexer.Span{}
	local := NewBlock([]Stmt{NewAssignStmt(NewIdent("x", span), NewLiteral(int64(1), span), true, span)}, span)
	global := NewBlock([]Stmt{NewAssignStmt(NewIdent("x", span), NewLiteral(int64(1), span), false, span)}, span)
	other := NewBlock([]Stmt{NewAssignStmt(NewIdent("x", span), NewLiteral(int64(2), span), true, span)}, span)

	if Fingerprint(local) == Fingerprint(global) {
		t.Fatalf("local and global assignment hash alike")
	}
	if Fingerprint(local) == Fingerprint(other) {
		t.Fatalf("different literals hash alike")
	}
}

func TestWalkVisitsAllNodes(t *testing.T) {
	var kinds []string
	Walk(sampleProgram(lexer.Span{}), func(n Node) bool {
		switch n.(type) {
		case *Function:
			kinds = append(kinds, "function")
		case *CallExpr:
			kinds = append(kinds, "call")
		case *Literal:
			kinds = append(kinds, "literal")
		case *AssignStmt:
			kinds = append(kinds, "assign")
		}
		return true
	})

	want := []string{"function", "call", "literal", "literal", "assign", "literal"}
	if len(kinds) != len(want) {
		t.Fatalf("expected=%v, got=%v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("expected=%v, got=%v", want, kinds)
		}
	}
}

func TestWalkPrunes(t *testing.T) {
	count := 0
	Walk(sampleProgram(lexer.Span{}), func(n Node) bool {
		count++
		_, isFn := n.(*Function)
		return !isFn
	})

	// program, block, function, call, square, 5, while, not, true, block, assign, k, "s"
	if count != 13 {
		t.Fatalf("expected=%d, got=%d", 13, count)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/lunar-lang/lunar/internal/ast"
	"github.com/lunar-lang/lunar/internal/interp"
	"github.com/lunar-lang/lunar/internal/lexer"
	"github.com/lunar-lang/lunar/internal/parser"
	"github.com/lunar-lang/lunar/internal/runtime"
)

func (a *app) readSource(command string, args []string) (string, string, bool) {
	if len(args) != 1 {
		fmt.Fprintf(a.stderr, "Usage: lunar %s <file>\n", command)
		return "", "", false
	}
	filename := args[0]
	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(a.stderr, "lunar: %v\n", err)
		return "", "", false
	}
	a.formatter.AddSource(filename, string(src))
	return filename, string(src), true
}

func (a *app) runRun(args []string) int {
	filename, src, ok := a.readSource("run", args)
	if !ok {
		return 1
	}

	ip := interp.New(interp.WithLogger(a.logger), interp.WithFilename(filename))
	result, err := ip.Eval(src)
	if err != nil {
		a.report(err)
		return 1
	}

	if _, isNil := result.(runtime.Nil); !isNil {
		fmt.Fprintln(a.stdout, runtime.Inspect(result))
	}
	return 0
}

func (a *app) runTokens(args []string) int {
	filename, src, ok := a.readSource("tokens", args)
	if !ok {
		return 1
	}

	l := lexer.New(src)
	l.SetFilename(filename)
	tokens, err := l.Tokenize()
	for _, tok := range tokens {
		fmt.Fprintf(a.stdout, "%d:%d\t%s\t%s\n", tok.Span.Line, tok.Span.Column, tok.Type, tok.Lexeme)
	}
	if err != nil {
		a.report(err)
		return 1
	}
	return 0
}

func (a *app) runAST(args []string) int {
	filename, src, ok := a.readSource("ast", args)
	if !ok {
		return 1
	}

	program, err := parser.ParseProgram(src, parser.WithFilename(filename))
	if err != nil {
		a.report(err)
		return 1
	}

	fmt.Fprintln(a.stdout, ast.Dump(program))
	fmt.Fprintf(a.stdout, "fingerprint: %016x\n", ast.Fingerprint(program))
	return 0
}

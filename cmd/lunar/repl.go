package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/lunar-lang/lunar/internal/interp"
	"github.com/lunar-lang/lunar/internal/parser"
	"github.com/lunar-lang/lunar/internal/runtime"
)

const replSource = "<repl>"

func (a *app) runREPL() int {
	fmt.Fprintln(a.stdout, "Lunar REPL. :vars lists globals, :reset clears them, :quit exits.")

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(a.cfg.History); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := interp.New(interp.WithLogger(a.logger), interp.WithFilename(replSource))

	for {
		code, ok := a.readInput(ln)
		if !ok {
			fmt.Fprintln(a.stdout)
			break
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			if done := a.replCommand(ip, trimmed); done {
				break
			}
			continue
		}

		a.formatter.AddSource(replSource, code)
		v, err := ip.Eval(code)
		if err != nil {
			a.report(err)
			continue
		}
		fmt.Fprintln(a.stdout, runtime.Inspect(v))
	}

	if a.cfg.History != "" {
		if f, err := os.Create(a.cfg.History); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}
	return 0
}

// readInput accumulates lines until the buffer parses or fails for a reason
// other than running out of input. ok is false on EOF.
func (a *app) readInput(ln *liner.State) (code string, ok bool) {
	var b strings.Builder

	for {
		prompt := a.cfg.Prompt
		if b.Len() > 0 {
			prompt = a.cfg.ContinuationPrompt
		}

		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl-C drops the pending input.
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		// A blank line submits an incomplete buffer so its error is shown.
		if _, err := parser.ParseProgram(src); err != nil && parser.IsIncomplete(err) && line != "" {
			continue
		}
		return src, true
	}
}

// replCommand handles :quit, :vars and :reset.
func (a *app) replCommand(ip *interp.Interpreter, line string) (exit bool) {
	switch strings.Fields(line)[0] {
	case ":quit", ":q":
		return true
	case ":vars":
		env := ip.Env()
		for _, name := range env.Globals() {
			v, _ := env.Get(name)
			fmt.Fprintf(a.stdout, "%s = %s\n", name, runtime.Inspect(v))
		}
	case ":reset":
		if err := ip.Reset(); err != nil {
			a.report(err)
			break
		}
		fmt.Fprintln(a.stdout, "environment cleared")
	default:
		fmt.Fprintf(a.stderr, "unknown command %s\n", line)
	}
	return false
}

package interp

import (
	"io"
	"log/slog"

	"github.com/tevino/abool/v2"

	"github.com/lunar-lang/lunar/internal/ast"
	"github.com/lunar-lang/lunar/internal/parser"
	"github.com/lunar-lang/lunar/internal/runtime"
)

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger routes evaluation trace records to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Interpreter) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithEnvironment evaluates against env instead of a fresh environment.
func WithEnvironment(env *runtime.Environment) Option {
	return func(i *Interpreter) {
		if env != nil {
			i.env = env
		}
	}
}

// WithFilename attributes positions in evaluated source to name.
func WithFilename(name string) Option {
	return func(i *Interpreter) {
		i.filename = name
	}
}

// Interpreter evaluates programs against one Environment that persists across
// calls to Eval. It is not safe for concurrent use; overlapping evaluations
// are refused with ErrBusy.
type Interpreter struct {
	env      *runtime.Environment
	logger   *slog.Logger
	filename string
	busy     *abool.AtomicBool
}

// New creates an interpreter with an empty global frame.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		env:    runtime.NewEnvironment(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		busy:   abool.New(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Env returns the environment the interpreter evaluates against.
func (i *Interpreter) Env() *runtime.Environment {
	return i.env
}

// Reset discards every binding of the interpreter's environment, including
// one supplied through WithEnvironment. It returns ErrBusy during an
// evaluation.
func (i *Interpreter) Reset() error {
	if !i.busy.SetToIf(false, true) {
		return ErrBusy
	}
	defer i.busy.UnSet()

	i.env.Clear()
	return nil
}

// Eval parses and evaluates source as a program.
func (i *Interpreter) Eval(source string) (runtime.Value, error) {
	var opts []parser.Option
	if i.filename != "" {
		opts = append(opts, parser.WithFilename(i.filename))
	}
	program, err := parser.ParseProgram(source, opts...)
	if err != nil {
		return nil, err
	}
	return i.EvalProgram(program)
}

// EvalProgram evaluates a parsed program. The result is the value of a
// top-level return if one executes, otherwise the value of the last
// top-level expression or call statement, otherwise nil.
func (i *Interpreter) EvalProgram(program *ast.Program) (runtime.Value, error) {
	if !i.busy.SetToIf(false, true) {
		return nil, ErrBusy
	}
	defer i.busy.UnSet()

	var result runtime.Value = runtime.Nil{}
	for _, block := range program.Blocks {
		out, err := i.execBlock(block, true)
		if err != nil {
			i.logger.Debug("evaluation failed", "error", err)
			return nil, err
		}
		if out.value != nil {
			result = out.value
		}
		if out.returned {
			break
		}
	}
	return result, nil
}

// EvalExpression evaluates a single expression in the current environment.
func (i *Interpreter) EvalExpression(expr ast.Expr) (runtime.Value, error) {
	if !i.busy.SetToIf(false, true) {
		return nil, ErrBusy
	}
	defer i.busy.UnSet()

	v, err := i.evalExpr(expr)
	if err != nil {
		i.logger.Debug("evaluation failed", "error", err)
		return nil, err
	}
	return v, nil
}

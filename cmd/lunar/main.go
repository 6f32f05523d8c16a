package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"git.sr.ht/~sircmpwn/getopt"

	"github.com/lunar-lang/lunar/internal/config"
	"github.com/lunar-lang/lunar/internal/diag"
)

// app carries the state shared by every subcommand.
type app struct {
	cfg       config.Config
	logger    *slog.Logger
	formatter *diag.Formatter
	stdout    io.Writer
	stderr    io.Writer
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: lunar [-c config] [-v] [-C] <command> [args]\n")
	fmt.Fprintf(w, "\nCommands:\n")
	fmt.Fprintf(w, "  run <file>        Evaluate a Lunar source file\n")
	fmt.Fprintf(w, "  repl              Start an interactive session\n")
	fmt.Fprintf(w, "  tokens <file>     Print the token stream of a file\n")
	fmt.Fprintf(w, "  ast <file>        Print the syntax tree of a file\n")
	fmt.Fprintf(w, "  test [path...]    Run test scripts\n")
	fmt.Fprintf(w, "\nOptions:\n")
	fmt.Fprintf(w, "  -c path   configuration file\n")
	fmt.Fprintf(w, "  -v        trace evaluation to stderr\n")
	fmt.Fprintf(w, "  -C        disable coloured diagnostics\n")
	fmt.Fprintf(w, "  -h        show this help\n")
}

func main() {
	os.Exit(realMain(os.Args, os.Stdout, os.Stderr))
}

func realMain(argv []string, stdout, stderr io.Writer) int {
	opts, optind, err := getopt.Getopts(argv, "c:vCh")
	if err != nil {
		fmt.Fprintf(stderr, "lunar: %v\n", err)
		usage(stderr)
		return 2
	}

	var (
		configPath string
		verbose    bool
		noColor    bool
	)
	for _, opt := range opts {
		switch opt.Option {
		case 'c':
			configPath = opt.Value
		case 'v':
			verbose = true
		case 'C':
			noColor = true
		case 'h':
			usage(stdout)
			return 0
		}
	}

	args := argv[optind:]
	if len(args) < 1 {
		usage(stderr)
		return 2
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "lunar: config: %v\n", err)
		return 1
	}

	a := newApp(cfg, verbose, noColor, stdout, stderr)

	command, rest := args[0], args[1:]
	switch command {
	case "run":
		return a.runRun(rest)
	case "repl":
		return a.runREPL()
	case "tokens":
		return a.runTokens(rest)
	case "ast":
		return a.runAST(rest)
	case "test":
		return a.runTest(rest)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		usage(stderr)
		return 2
	}
}

func newApp(cfg config.Config, verbose, noColor bool, stdout, stderr io.Writer) *app {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if verbose || cfg.Trace {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	formatter := diag.NewFormatter(stderr)
	switch {
	case noColor || cfg.Color == config.ColorNever:
		formatter.SetColor(false)
	case cfg.Color == config.ColorAlways:
		formatter.SetColor(true)
	}

	return &app{
		cfg:       cfg,
		logger:    logger,
		formatter: formatter,
		stdout:    stdout,
		stderr:    stderr,
	}
}

// report prints err as a diagnostic.
func (a *app) report(err error) {
	a.formatter.Format(diag.FromError(err))
}

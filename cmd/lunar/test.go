package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lunar-lang/lunar/internal/interp"
	"github.com/lunar-lang/lunar/internal/runtime"
)

// TestResult represents the result of running a single test
type TestResult struct {
	Name     string
	Passed   bool
	Error    error
	Duration time.Duration
}

// testFuncPrefix marks global functions the runner calls one by one after the
// script itself has run.
const testFuncPrefix = "test_"

// runTest executes the test command
func (a *app) runTest(args []string) int {
	if len(args) == 0 {
		args = []string{"."}
	}

	var total, failed int
	for _, arg := range args {
		t, f, err := a.runAllTests(arg)
		if err != nil {
			fmt.Fprintf(a.stderr, "Error accessing path %s: %v\n", arg, err)
			return 1
		}
		total += t
		failed += f
	}

	fmt.Fprintf(a.stdout, "\nTest Results: %d total, %d passed, %d failed\n", total, total-failed, failed)
	if failed > 0 {
		return 1
	}
	return 0
}

// runAllTests discovers and runs all tests in the given directory or file
func (a *app) runAllTests(path string) (total, failed int, err error) {
	testFiles, err := findTestFiles(path, a.cfg.TestExtension)
	if err != nil {
		return 0, 0, err
	}

	if len(testFiles) == 0 {
		fmt.Fprintf(a.stdout, "No test files found in %s\n", path)
		return 0, 0, nil
	}

	fmt.Fprintf(a.stdout, "Running tests in %s...\n\n", path)

	for _, testFile := range testFiles {
		for _, result := range a.runTestFile(testFile) {
			total++
			if result.Passed {
				fmt.Fprintf(a.stdout, "  ✓ %s (%s)\n", result.Name, result.Duration.Round(time.Microsecond))
				continue
			}
			failed++
			fmt.Fprintf(a.stdout, "  ✗ %s\n", result.Name)
			if result.Error != nil {
				a.report(result.Error)
			}
		}
	}

	return total, failed, nil
}

// findTestFiles finds the scripts with extension ext under path. A path
// naming a single file is returned as is.
func findTestFiles(path, ext string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var testFiles []string
	err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Skip hidden directories
		if info.IsDir() && p != path && strings.HasPrefix(info.Name(), ".") {
			return filepath.SkipDir
		}

		if !info.IsDir() && strings.HasSuffix(p, ext) {
			testFiles = append(testFiles, p)
		}
		return nil
	})

	return testFiles, err
}

// runTestFile evaluates a script in a fresh interpreter. The script is a test
// of its own; each global test_ function it defines is then called as a
// further test against the same environment.
func (a *app) runTestFile(filename string) []TestResult {
	name := filepath.Base(filename)

	src, err := os.ReadFile(filename)
	if err != nil {
		return []TestResult{{Name: name, Error: fmt.Errorf("failed to read file: %w", err)}}
	}
	a.formatter.AddSource(filename, string(src))

	ip := interp.New(interp.WithLogger(a.logger), interp.WithFilename(filename))

	results := []TestResult{runCase(name, func() (runtime.Value, error) {
		return ip.Eval(string(src))
	})}
	if !results[0].Passed {
		return results
	}

	for _, fn := range findTestFunctions(ip.Env()) {
		results = append(results, runCase(name+":"+fn, func() (runtime.Value, error) {
			return ip.Eval(fn + "()")
		}))
	}

	return results
}

// findTestFunctions lists the zero-parameter global functions whose names
// start with test_.
func findTestFunctions(env *runtime.Environment) []string {
	var names []string
	for _, name := range env.Globals() {
		if !strings.HasPrefix(name, testFuncPrefix) {
			continue
		}
		v, _ := env.Get(name)
		if fn, ok := v.(*runtime.Function); ok && fn.Arity() == 0 {
			names = append(names, name)
		}
	}
	return names
}

// runCase passes when eval succeeds with any result other than false.
func runCase(name string, eval func() (runtime.Value, error)) TestResult {
	start := time.Now()
	v, err := eval()
	result := TestResult{Name: name, Error: err, Duration: time.Since(start)}

	if err == nil {
		if b, ok := v.(runtime.Bool); ok && !bool(b) {
			result.Error = fmt.Errorf("%s returned false", name)
		} else {
			result.Passed = true
		}
	}
	return result
}

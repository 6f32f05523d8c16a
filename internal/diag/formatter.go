package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Formatter formats diagnostics with a source code snippet under the header.
type Formatter struct {
	w           io.Writer
	sourceCache map[string]string // Cache of source files by filename

	severity map[Severity]*color.Color
	bold     *color.Color
	gutter   *color.Color
	caret    *color.Color
}

// NewFormatter creates a new diagnostic formatter writing to w. Colour output
// follows the terminal detection of fatih/color until SetColor is called.
func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{
		w:           w,
		sourceCache: make(map[string]string),
		severity: map[Severity]*color.Color{
			SeverityError:   color.New(color.FgRed, color.Bold),
			SeverityWarning: color.New(color.FgYellow, color.Bold),
			SeverityNote:    color.New(color.FgCyan, color.Bold),
		},
		bold:   color.New(color.Bold),
		gutter: color.New(color.FgBlue, color.Bold),
		caret:  color.New(color.FgRed, color.Bold),
	}
}

// SetColor forces colour output on or off.
func (f *Formatter) SetColor(enabled bool) {
	for _, c := range f.colors() {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

func (f *Formatter) colors() []*color.Color {
	out := []*color.Color{f.bold, f.gutter, f.caret}
	for _, c := range f.severity {
		out = append(out, c)
	}
	return out
}

// AddSource registers in-memory source text for filename, e.g. REPL input.
func (f *Formatter) AddSource(filename, src string) {
	f.sourceCache[filename] = src
}

// LoadSource loads source code for a file (cached).
func (f *Formatter) LoadSource(filename string) (string, error) {
	if filename == "" {
		return "", nil
	}
	if src, ok := f.sourceCache[filename]; ok {
		return src, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	src := string(data)
	f.sourceCache[filename] = src
	return src, nil
}

// Format prints a diagnostic: header, location, source line with a caret
// underline, then notes and help.
func (f *Formatter) Format(d Diagnostic) {
	if !d.Span.IsValid() {
		f.formatSimple(d)
		return
	}

	src, err := f.LoadSource(d.Span.Filename)
	if err != nil || src == "" {
		f.formatSimple(d)
		return
	}

	lines := strings.Split(src, "\n")
	if d.Span.Line > len(lines) {
		f.formatSimple(d)
		return
	}

	f.printHeader(d)
	f.printSnippet(d, lines)
	f.printHelp(d)
}

// printHeader prints the error header (error[CODE]: message).
func (f *Formatter) printHeader(d Diagnostic) {
	severity := d.Severity
	if severity == "" {
		severity = SeverityError
	}
	sc, ok := f.severity[severity]
	if !ok {
		sc = f.severity[SeverityError]
	}

	if d.Code != "" {
		sc.Fprintf(f.w, "%s[%s]", severity, d.Code)
	} else {
		sc.Fprintf(f.w, "%s", severity)
	}
	f.bold.Fprintf(f.w, ": %s\n", d.Message)
}

func (f *Formatter) printSnippet(d Diagnostic, lines []string) {
	lineContent := strings.TrimRight(lines[d.Span.Line-1], "\r")
	lineNumStr := fmt.Sprintf("%d", d.Span.Line)
	pad := strings.Repeat(" ", len(lineNumStr))

	f.gutter.Fprintf(f.w, "%s--> ", pad)
	fmt.Fprintf(f.w, "%s\n", d.Span.String())
	f.gutter.Fprintf(f.w, "%s |\n", pad)
	f.gutter.Fprintf(f.w, "%s | ", lineNumStr)
	fmt.Fprintf(f.w, "%s\n", lineContent)

	width := d.Span.End - d.Span.Start
	if width < 1 {
		width = 1
	}
	lineRunes := []rune(lineContent)
	start := d.Span.Column - 1
	if start > len(lineRunes) {
		start = len(lineRunes)
	}
	if start+width > len(lineRunes)+1 {
		width = len(lineRunes) + 1 - start
	}

	// keep tabs so the caret lines up with the echoed source
	var prefix strings.Builder
	for _, r := range lineRunes[:start] {
		if r == '\t' {
			prefix.WriteRune('\t')
		} else {
			prefix.WriteRune(' ')
		}
	}

	f.gutter.Fprintf(f.w, "%s | ", pad)
	fmt.Fprint(f.w, prefix.String())
	f.caret.Fprintf(f.w, "%s\n", strings.Repeat("^", width))
}

// printHelp prints notes and help text.
func (f *Formatter) printHelp(d Diagnostic) {
	for _, note := range d.Notes {
		fmt.Fprintf(f.w, "  = note: %s\n", note)
	}
	if d.Help != "" {
		f.bold.Fprintf(f.w, "help")
		fmt.Fprintf(f.w, ": %s\n", d.Help)
	}
}

// formatSimple formats a diagnostic without source code (fallback).
func (f *Formatter) formatSimple(d Diagnostic) {
	f.printHeader(d)
	if d.Span.IsValid() {
		f.gutter.Fprintf(f.w, "  --> ")
		fmt.Fprintf(f.w, "%s\n", d.Span.String())
	}
	f.printHelp(d)
}

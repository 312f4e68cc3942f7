package driver

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/arjpeg/helix/pkg/source"
)

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiRed   = "\x1b[31m"
	ansiBlue  = "\x1b[34m"
)

// Renderer prints diagnostics with the offending source line and a caret
// underline beneath the span.
type Renderer struct {
	Sources *source.Map
	Color   bool
}

// NewRenderer resolves mode against w to decide on color.
func NewRenderer(sources *source.Map, mode ColorMode, w io.Writer) *Renderer {
	return &Renderer{Sources: sources, Color: colorEnabled(mode, w)}
}

func colorEnabled(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (r *Renderer) paint(code, text string) string {
	if !r.Color {
		return text
	}
	return code + text + ansiReset
}

// Render writes diag to w. Without a registered source it falls back to the
// one-line description.
func (r *Renderer) Render(w io.Writer, diag Diagnostic) error {
	header := r.paint(ansiBold+ansiRed, string(diag.Severity)) + r.paint(ansiBold, fmt.Sprintf("[%s]: %s", diag.Stage, diag.Message))
	file, ok := r.Sources.File(diag.Span.Source)
	if !ok {
		_, err := fmt.Fprintf(w, "%s\n", header)
		return err
	}

	loc := file.Locate(diag.Span.Start)
	line := file.Line(loc.Line)
	gutter := strconv.Itoa(loc.Line)
	pad := strings.Repeat(" ", len(gutter))
	bar := r.paint(ansiBlue, "|")

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", header)
	fmt.Fprintf(&b, "%s%s %s:%d:%d\n", pad, r.paint(ansiBlue, "-->"), file.Name, loc.Line, loc.Column+1)
	fmt.Fprintf(&b, "%s %s\n", pad, bar)
	fmt.Fprintf(&b, "%s %s %s\n", r.paint(ansiBlue, gutter), bar, line)
	fmt.Fprintf(&b, "%s %s %s%s\n", pad, bar, caretIndent(line, loc.Column), r.paint(ansiBold+ansiRed, Underline(line, loc.Column, diag.Span.Len())))
	_, err := io.WriteString(w, b.String())
	return err
}

// caretIndent keeps tabs so the caret lines up under tab-indented code.
func caretIndent(line string, column int) string {
	if column > len(line) {
		column = len(line)
	}
	return strings.Map(func(r rune) rune {
		if r == '\t' {
			return '\t'
		}
		return ' '
	}, line[:column])
}

// Underline returns the carets for a span of length n starting at column,
// clipped to the end of the line and never shorter than one caret.
func Underline(line string, column, n int) string {
	if rest := len(line) - column; n > rest {
		n = rest
	}
	if n < 1 {
		n = 1
	}
	return strings.Repeat("^", n)
}

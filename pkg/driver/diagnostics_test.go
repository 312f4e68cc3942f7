package driver

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestDiagnosticFromEachStage(t *testing.T) {
	cases := []struct {
		text   string
		stage  Stage
		kind   string
		line   int
		column int
	}{
		{"let a = 1\nlet b = 2.3.4", StageLexer, "malformed number", 2, 9},
		{"print (1 + 2", StageParser, "unclosed parenthesis", 1, 7},
		{"let a = 1\n\n  a / 0", StageRuntime, "division by zero", 3, 3},
	}
	for _, tc := range cases {
		session := NewSession(nil, &bytes.Buffer{}, nil)
		_, err := session.Run("main.hx", tc.text)
		if err == nil {
			t.Fatalf("%q: expected an error", tc.text)
		}
		diag, ok := session.Diagnose(err)
		if !ok {
			t.Fatalf("%q: error %v not recognised", tc.text, err)
		}
		if diag.Stage != tc.stage || diag.Kind != tc.kind {
			t.Fatalf("%q: unexpected diagnostic %#v", tc.text, diag)
		}
		if diag.Location.Path != "main.hx" || diag.Location.Line != tc.line || diag.Location.Column != tc.column {
			t.Fatalf("%q: unexpected location %#v", tc.text, diag.Location)
		}
	}
}

func TestDiagnosticFromForeignError(t *testing.T) {
	if _, ok := DiagnosticFromError(errors.New("boom"), nil); ok {
		t.Fatalf("plain errors should not become diagnostics")
	}
}

func TestDescribeDiagnostic(t *testing.T) {
	diag := Diagnostic{
		Severity: SeverityError,
		Stage:    StageParser,
		Message:  "unexpected end of file, expected '}'",
		Location: DiagnosticLocation{Path: "loop.hx", Line: 4, Column: 2},
	}
	if got := DescribeDiagnostic(diag); got != "parser: loop.hx:4:2 unexpected end of file, expected '}'" {
		t.Fatalf("unexpected description %q", got)
	}
	diag.Location = DiagnosticLocation{}
	if got := DescribeDiagnostic(diag); got != "parser: unexpected end of file, expected '}'" {
		t.Fatalf("unexpected description %q", got)
	}
}

func TestRendererDrawsCaret(t *testing.T) {
	session := NewSession(nil, &bytes.Buffer{}, nil)
	_, err := session.Run("main.hx", "let x = 1\nlet y = x + z")
	diag, ok := session.Diagnose(err)
	if !ok {
		t.Fatalf("expected runtime diagnostic, got %v", err)
	}
	var out bytes.Buffer
	r := &Renderer{Sources: session.Sources()}
	if err := r.Render(&out, diag); err != nil {
		t.Fatalf("render: %v", err)
	}
	want := strings.Join([]string{
		"error[runtime]: undefined variable 'z'",
		" --> main.hx:2:13",
		"  |",
		"2 | let y = x + z",
		"  |             ^",
		"",
	}, "\n")
	if out.String() != want {
		t.Fatalf("unexpected render\n got:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestRendererColorAndTabs(t *testing.T) {
	session := NewSession(nil, &bytes.Buffer{}, nil)
	_, err := session.Run("tabs.hx", "while 1 {\n\tbreak 2\n}")
	diag, ok := session.Diagnose(err)
	if !ok {
		t.Fatalf("expected parser diagnostic, got %v", err)
	}
	var out bytes.Buffer
	r := NewRenderer(session.Sources(), ColorAlways, &out)
	if err := r.Render(&out, diag); err != nil {
		t.Fatalf("render: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, ansiRed) {
		t.Fatalf("expected ANSI color codes in %q", text)
	}
	if !strings.Contains(text, ansiReset+" \t      "+ansiBold+ansiRed+"^"+ansiReset) {
		t.Fatalf("caret should be indented past the tab, got %q", text)
	}
}

func TestUnderline(t *testing.T) {
	if got := Underline("abc", 1, 10); got != "^^" {
		t.Fatalf("underline should clip to the line, got %q", got)
	}
	if got := Underline("abc", 3, 0); got != "^" {
		t.Fatalf("empty spans still get one caret, got %q", got)
	}
}

func TestNewRendererRespectsMode(t *testing.T) {
	var buf bytes.Buffer
	if NewRenderer(nil, ColorAuto, &buf).Color {
		t.Fatalf("non-terminal writers should not be colored in auto mode")
	}
	if NewRenderer(nil, ColorNever, &buf).Color {
		t.Fatalf("never mode must disable color")
	}
}

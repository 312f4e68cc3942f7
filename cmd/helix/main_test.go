package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/arjpeg/helix/pkg/driver"
	"github.com/arjpeg/helix/pkg/runtime"
	"github.com/arjpeg/helix/pkg/source"
)

func TestParseCommand(t *testing.T) {
	cases := map[string]replCommand{
		"!quit":    cmdQuit,
		"  !q  ":   cmdQuit,
		"!HELP":    cmdHelp,
		"!v":       cmdVersion,
		"!licence": cmdLicense,
		"!license": cmdLicense,
	}
	for input, want := range cases {
		got, ok := parseCommand(input)
		if !ok || got != want {
			t.Fatalf("parseCommand(%q) = %v, %v; want %v", input, got, ok, want)
		}
	}
	for _, input := range []string{"!true", "print 1", "!", "quit"} {
		if _, ok := parseCommand(input); ok {
			t.Fatalf("parseCommand(%q) should not be a command", input)
		}
	}
}

func TestRunCommandQuit(t *testing.T) {
	var out bytes.Buffer
	if err := runCommand(&out, cmdQuit); !errors.Is(err, errQuit) {
		t.Fatalf("expected errQuit, got %v", err)
	}
	if err := runCommand(&out, cmdVersion); err != nil {
		t.Fatalf("version: %v", err)
	}
	if got := out.String(); got != cliToolVersion+"\n" {
		t.Fatalf("version output = %q", got)
	}
}

func TestNeedsMoreInput(t *testing.T) {
	more := []string{
		"if true {",
		"fn f(a,",
		"print (1 + 2",
		"while x < 3 {\n  x = x + 1",
		`let s = "abc`,
		"1 +",
	}
	for _, text := range more {
		if !needsMoreInput(text) {
			t.Fatalf("expected %q to need more input", text)
		}
	}
	done := []string{
		"print 1",
		"if true { print 1 }",
		"1 + )",
		"let 1 = 2",
		"print @",
	}
	for _, text := range done {
		if needsMoreInput(text) {
			t.Fatalf("expected %q to be complete", text)
		}
	}
}

func TestInputBufferJoinsContinuedLines(t *testing.T) {
	session := driver.NewSession(nil, io.Discard, nil)
	inputs := [][]string{
		{"let total = (1 +", "2)"},
		{"fn add(a,", "b) {", "  return a + b", "}"},
		{"let s = \"two", "lines\""},
		{"total = add(total,", "  10) *", "  2"},
	}
	var buffer inputBuffer
	for _, lines := range inputs {
		for i, line := range lines {
			text, complete := buffer.add(line)
			last := i == len(lines)-1
			if complete != last {
				t.Fatalf("after %q: complete = %v, want %v", line, complete, last)
			}
			if !complete {
				continue
			}
			if _, err := session.Run(source.Anonymous, text); err != nil {
				t.Fatalf("run %q: %v", text, err)
			}
		}
		if !buffer.empty() {
			t.Fatalf("buffer should be empty after %q", lines)
		}
	}

	val, err := session.Run(source.Anonymous, "total")
	if err != nil {
		t.Fatalf("run total: %v", err)
	}
	if val != (runtime.IntegerValue{Val: 26}) {
		t.Fatalf("total = %#v, want 26", val)
	}
	val, err = session.Run(source.Anonymous, "s")
	if err != nil {
		t.Fatalf("run s: %v", err)
	}
	if val != (runtime.StringValue{Val: "two\nlines"}) {
		t.Fatalf("s = %#v", val)
	}
}

func TestInputBufferReset(t *testing.T) {
	var buffer inputBuffer
	if _, complete := buffer.add("print (1 +"); complete {
		t.Fatalf("open parenthesis should wait for more input")
	}
	buffer.reset()
	text, complete := buffer.add("print 2")
	if !complete || text != "print 2" {
		t.Fatalf("add after reset = %q, %v", text, complete)
	}
}

func TestEchoSkipsNull(t *testing.T) {
	var out bytes.Buffer
	echo(&out, runtime.Null)
	echo(&out, nil)
	echo(&out, runtime.StringValue{Val: "hi"})
	echo(&out, runtime.IntegerValue{Val: 4})
	if got := out.String(); got != "\"hi\"\n4\n" {
		t.Fatalf("echo output = %q", got)
	}
}

func TestRunExitCodes(t *testing.T) {
	if code := run([]string{"--version"}); code != 0 {
		t.Fatalf("version exit code = %d", code)
	}
	if code := run([]string{"--bogus"}); code != 1 {
		t.Fatalf("unknown flag exit code = %d", code)
	}
	if code := run([]string{"run"}); code != 1 {
		t.Fatalf("run without file exit code = %d", code)
	}

	dir := t.TempDir()
	good := filepath.Join(dir, "good.hx")
	if err := os.WriteFile(good, []byte("let x = 2\nx * 3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	bad := filepath.Join(dir, "bad.hx")
	if err := os.WriteFile(bad, []byte("print y\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg := filepath.Join(dir, "helix.yml")
	if err := os.WriteFile(cfg, []byte("diagnostics:\n  color: never\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if code := run([]string{"run", "--config", cfg, good}); code != 0 {
		t.Fatalf("run good exit code = %d", code)
	}
	if code := run([]string{"run", "--config", cfg, bad}); code != 1 {
		t.Fatalf("run bad exit code = %d", code)
	}
	if code := run([]string{"tokens", "--config", cfg, good}); code != 0 {
		t.Fatalf("tokens exit code = %d", code)
	}
	if code := run([]string{"ast", "--config", cfg, "-json", good}); code != 0 {
		t.Fatalf("ast exit code = %d", code)
	}
}

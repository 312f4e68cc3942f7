package driver

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
repl:
  prompt: "helix> "
  echo_results: false
diagnostics:
  color: Never
interpreter:
  max_call_depth: 64
log:
  level: debug
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.REPL.Prompt != "helix> " || cfg.REPL.EchoResults {
		t.Fatalf("unexpected repl config %#v", cfg.REPL)
	}
	if cfg.REPL.Continuation != ".. " {
		t.Fatalf("unset keys should keep defaults, got %q", cfg.REPL.Continuation)
	}
	if cfg.Diagnostics.Color != ColorNever {
		t.Fatalf("unexpected color mode %q", cfg.Diagnostics.Color)
	}
	if cfg.Interpreter.MaxCallDepth != 64 {
		t.Fatalf("unexpected max call depth %d", cfg.Interpreter.MaxCallDepth)
	}
	if level, err := ParseLogLevel(cfg.Log.Level); err != nil || level != slog.LevelDebug {
		t.Fatalf("unexpected log level %q (%v)", cfg.Log.Level, err)
	}
	if cfg.Path != path {
		t.Fatalf("expected path %q, got %q", path, cfg.Path)
	}
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "repl:\n  promt: \"> \"\n")
	if _, err := LoadConfig(path); err == nil || !strings.Contains(err.Error(), "promt") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestLoadConfigEmptyFile(t *testing.T) {
	path := writeConfig(t, "")
	if _, err := LoadConfig(path); err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("expected empty file error, got %v", err)
	}
}

func TestParseConfigValidation(t *testing.T) {
	_, err := ParseConfig([]byte(`
diagnostics:
  color: rainbow
interpreter:
  max_call_depth: 0
log:
  level: loud
`))
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(validation.Issues) != 3 {
		t.Fatalf("expected 3 issues, got %v", validation.Issues)
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestFindConfig(t *testing.T) {
	path := writeConfig(t, "log:\n  level: info\n")
	found, ok := FindConfig(filepath.Dir(path))
	if !ok || found != path {
		t.Fatalf("expected to find %q, got %q", path, found)
	}
	if _, ok := FindConfig(t.TempDir()); ok {
		t.Fatalf("empty directory should have no config")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/.helix_history"); got != filepath.Join(home, ".helix_history") {
		t.Fatalf("unexpected expansion %q", got)
	}
	if got := ExpandHome("/tmp/h"); got != "/tmp/h" {
		t.Fatalf("absolute path should be unchanged, got %q", got)
	}
}

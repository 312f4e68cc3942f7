package driver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arjpeg/helix/pkg/interpreter"
)

// ConfigFileName is looked up in the working directory when no path is given.
const ConfigFileName = ".helix.yml"

// ColorMode selects when diagnostics are colorized.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config holds the user-tunable settings of the CLI and REPL.
type Config struct {
	Path        string
	REPL        REPLConfig
	Diagnostics DiagnosticsConfig
	Interpreter InterpreterConfig
	Log         LogConfig
}

type REPLConfig struct {
	Prompt       string
	Continuation string
	HistoryFile  string
	EchoResults  bool
}

type DiagnosticsConfig struct {
	Color ColorMode
}

type InterpreterConfig struct {
	MaxCallDepth int
}

type LogConfig struct {
	Level string
}

type configFile struct {
	REPL        *replFile        `yaml:"repl"`
	Diagnostics *diagnosticsFile `yaml:"diagnostics"`
	Interpreter *interpreterFile `yaml:"interpreter"`
	Log         *logFile         `yaml:"log"`
}

type replFile struct {
	Prompt       *string `yaml:"prompt"`
	Continuation *string `yaml:"continuation"`
	HistoryFile  *string `yaml:"history_file"`
	EchoResults  *bool   `yaml:"echo_results"`
}

type diagnosticsFile struct {
	Color *string `yaml:"color"`
}

type interpreterFile struct {
	MaxCallDepth *int `yaml:"max_call_depth"`
}

type logFile struct {
	Level *string `yaml:"level"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		REPL: REPLConfig{
			Prompt:       ">> ",
			Continuation: ".. ",
			HistoryFile:  "~/.helix_history",
			EchoResults:  true,
		},
		Diagnostics: DiagnosticsConfig{Color: ColorAuto},
		Interpreter: InterpreterConfig{MaxCallDepth: interpreter.DefaultMaxCallDepth},
		Log:         LogConfig{Level: "warn"},
	}
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadConfig parses a config file from disk, returning validated settings
// layered over the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	cfg, err := decodeConfig(file, absPath)
	if err != nil {
		return nil, err
	}
	cfg.Path = absPath
	return cfg, nil
}

// ParseConfig decodes config YAML held in memory.
func ParseConfig(data []byte) (*Config, error) {
	return decodeConfig(bytes.NewReader(data), "<config>")
}

func decodeConfig(r io.Reader, name string) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: %s is empty", name)
		}
		return nil, fmt.Errorf("config: parse %s: %w", name, err)
	}

	cfg := raw.toConfig()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (raw configFile) toConfig() *Config {
	cfg := DefaultConfig()
	if r := raw.REPL; r != nil {
		if r.Prompt != nil {
			cfg.REPL.Prompt = *r.Prompt
		}
		if r.Continuation != nil {
			cfg.REPL.Continuation = *r.Continuation
		}
		if r.HistoryFile != nil {
			cfg.REPL.HistoryFile = *r.HistoryFile
		}
		if r.EchoResults != nil {
			cfg.REPL.EchoResults = *r.EchoResults
		}
	}
	if d := raw.Diagnostics; d != nil && d.Color != nil {
		cfg.Diagnostics.Color = ColorMode(strings.ToLower(strings.TrimSpace(*d.Color)))
	}
	if i := raw.Interpreter; i != nil && i.MaxCallDepth != nil {
		cfg.Interpreter.MaxCallDepth = *i.MaxCallDepth
	}
	if l := raw.Log; l != nil && l.Level != nil {
		cfg.Log.Level = strings.ToLower(strings.TrimSpace(*l.Level))
	}
	return cfg
}

func (c *Config) validate() error {
	var errs ValidationError
	switch c.Diagnostics.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs.Issues = append(errs.Issues, fmt.Sprintf("diagnostics.color must be auto, always or never (got %q)", c.Diagnostics.Color))
	}
	if c.Interpreter.MaxCallDepth < 1 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("interpreter.max_call_depth must be positive (got %d)", c.Interpreter.MaxCallDepth))
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		errs.Issues = append(errs.Issues, err.Error())
	}
	if c.REPL.Prompt == "" {
		errs.Issues = append(errs.Issues, "repl.prompt must be a non-empty string")
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// ParseLogLevel maps a config level name onto slog.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log.level must be debug, info, warn or error (got %q)", level)
	}
}

// FindConfig returns the config file in dir, if there is one.
func FindConfig(dir string) (string, bool) {
	candidate := filepath.Join(dir, ConfigFileName)
	info, err := os.Stat(candidate)
	if err != nil || info.IsDir() {
		return "", false
	}
	return candidate, true
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

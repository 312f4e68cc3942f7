// Package driver wires the lexer, parser and interpreter into a pipeline and
// carries the configuration and diagnostics shared by the CLI and REPL.
package driver

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/arjpeg/helix/pkg/ast"
	"github.com/arjpeg/helix/pkg/interpreter"
	"github.com/arjpeg/helix/pkg/lexer"
	"github.com/arjpeg/helix/pkg/parser"
	"github.com/arjpeg/helix/pkg/runtime"
	"github.com/arjpeg/helix/pkg/source"
)

// Session runs successive source buffers against one interpreter so that
// bindings persist between them. Every buffer is registered in the session's
// source map for diagnostics.
type Session struct {
	sources *source.Map
	interp  *interpreter.Interpreter
	logger  *slog.Logger
}

// NewSession builds a session. A nil cfg uses DefaultConfig; a nil logger
// discards output.
func NewSession(cfg *Config, out io.Writer, logger *slog.Logger) *Session {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		sources: source.NewMap(),
		interp: interpreter.New(
			interpreter.WithOutput(out),
			interpreter.WithLogger(logger),
			interpreter.WithMaxCallDepth(cfg.Interpreter.MaxCallDepth),
		),
		logger: logger,
	}
}

// Sources exposes the registry used to resolve diagnostic spans.
func (s *Session) Sources() *source.Map {
	return s.sources
}

// Interpreter exposes the session's interpreter.
func (s *Session) Interpreter() *interpreter.Interpreter {
	return s.interp
}

// Tokenize registers text under name and scans it.
func (s *Session) Tokenize(name, text string) ([]lexer.Token, error) {
	file := s.sources.Add(name, text)
	return s.tokenize(file)
}

func (s *Session) tokenize(file *source.File) ([]lexer.Token, error) {
	start := time.Now()
	tokens, err := lexer.Tokenize(file.Text, file.ID)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("tokenized", "source", file.Name, "tokens", len(tokens), "elapsed", time.Since(start))
	return tokens, nil
}

// Parse registers text under name, then scans and parses it.
func (s *Session) Parse(name, text string) (*ast.Program, error) {
	file := s.sources.Add(name, text)
	return s.parse(file)
}

func (s *Session) parse(file *source.File) (*ast.Program, error) {
	tokens, err := s.tokenize(file)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	program, err := parser.Parse(tokens)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("parsed", "source", file.Name, "statements", len(program.Body), "elapsed", time.Since(start))
	return program, nil
}

// Run pushes text through the whole pipeline. The first error from any stage
// is returned unchanged.
func (s *Session) Run(name, text string) (runtime.Value, error) {
	file := s.sources.Add(name, text)
	program, err := s.parse(file)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	value, err := s.interp.EvaluateProgram(program)
	s.logger.Debug("evaluated", "source", file.Name, "elapsed", time.Since(start), "ok", err == nil)
	return value, err
}

// RunFile reads path and runs its contents.
func (s *Session) RunFile(path string) (runtime.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return s.Run(path, string(data))
}

// Diagnose converts a pipeline error into a diagnostic against this
// session's sources.
func (s *Session) Diagnose(err error) (Diagnostic, bool) {
	return DiagnosticFromError(err, s.sources)
}

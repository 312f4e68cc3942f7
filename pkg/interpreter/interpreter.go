// Package interpreter evaluates Helix syntax trees by walking them.
package interpreter

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/arjpeg/helix/pkg/ast"
	"github.com/arjpeg/helix/pkg/runtime"
)

// DefaultMaxCallDepth bounds nested function calls.
const DefaultMaxCallDepth = 1000

// Interpreter drives evaluation of Helix AST nodes. It owns a persistent
// scope stack so successive EvaluateProgram calls share global bindings.
type Interpreter struct {
	scopes       *runtime.ScopeStack
	out          io.Writer
	logger       *slog.Logger
	maxCallDepth int
	depth        int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput sets where `print` writes. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		if w != nil {
			i.out = w
		}
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Interpreter) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithMaxCallDepth bounds nested calls; values < 1 keep the default.
func WithMaxCallDepth(depth int) Option {
	return func(i *Interpreter) {
		if depth > 0 {
			i.maxCallDepth = depth
		}
	}
}

// New returns an interpreter with an empty global frame.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		scopes:       runtime.NewScopeStack(),
		out:          os.Stdout,
		logger:       slog.New(slog.DiscardHandler),
		maxCallDepth: DefaultMaxCallDepth,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Scopes returns the interpreter's persistent scope stack.
func (i *Interpreter) Scopes() *runtime.ScopeStack {
	return i.scopes
}

// EvaluateProgram runs a program against the persistent scope stack and
// returns the value of its last statement.
func (i *Interpreter) EvaluateProgram(program *ast.Program) (runtime.Value, error) {
	i.logger.Debug("evaluating program", "statements", len(program.Body))
	value, err := i.Evaluate(program, i.scopes)
	if err != nil {
		i.logger.Debug("evaluation failed", "error", err)
	}
	return value, err
}

// Evaluate runs node against scopes. A program runs in the current innermost
// frame; any other statement is evaluated as-is. Break, continue or return
// escaping node become errors.
func (i *Interpreter) Evaluate(node ast.Node, scopes *runtime.ScopeStack) (runtime.Value, error) {
	var (
		c   completion
		err error
	)
	switch n := node.(type) {
	case *ast.Program:
		c, err = i.evaluateStatements(n.Body, scopes)
	case ast.Statement:
		c, err = i.evaluateStatement(n, scopes)
	default:
		return nil, fmt.Errorf("unsupported node type: %s", node.NodeType())
	}
	if err != nil {
		return nil, err
	}
	if c.kind != completionNormal {
		return nil, escaped(c)
	}
	return c.value, nil
}

// Evaluate runs node against scopes with a default interpreter.
func Evaluate(node ast.Node, scopes *runtime.ScopeStack) (runtime.Value, error) {
	return New().Evaluate(node, scopes)
}

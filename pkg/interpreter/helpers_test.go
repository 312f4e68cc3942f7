package interpreter

import (
	"bytes"
	"testing"

	"github.com/arjpeg/helix/pkg/lexer"
	"github.com/arjpeg/helix/pkg/parser"
	"github.com/arjpeg/helix/pkg/runtime"
)

// runSource tokenizes, parses and evaluates text on a fresh interpreter,
// returning the result plus everything printed.
func runSource(t *testing.T, text string, opts ...Option) (runtime.Value, string, error) {
	t.Helper()
	var out bytes.Buffer
	interp := New(append([]Option{WithOutput(&out)}, opts...)...)
	val, err := runOn(t, interp, text)
	return val, out.String(), err
}

func runOn(t *testing.T, interp *Interpreter, text string) (runtime.Value, error) {
	t.Helper()
	tokens, err := lexer.Tokenize(text, 1)
	if err != nil {
		t.Fatalf("tokenize %q: %v", text, err)
	}
	prog, err := parser.Parse(tokens)
	if err != nil {
		t.Fatalf("parse %q: %v", text, err)
	}
	return interp.EvaluateProgram(prog)
}

package interpreter

import (
	"github.com/arjpeg/helix/pkg/ast"
	"github.com/arjpeg/helix/pkg/runtime"
)

type completionKind int

const (
	completionNormal completionKind = iota
	completionBreak
	completionContinue
	completionReturn
)

// completion is the outcome of a statement. Anything but completionNormal
// unwinds enclosing blocks until a loop or call consumes it; origin is the
// statement that started the unwind.
type completion struct {
	kind   completionKind
	value  runtime.Value
	origin ast.Node
}

func normal(v runtime.Value) completion {
	return completion{kind: completionNormal, value: v}
}

// escaped converts a non-local completion that reached a boundary with no
// loop or function to consume it.
func escaped(c completion) error {
	span := c.origin.Span()
	switch c.kind {
	case completionBreak:
		return &RuntimeError{Kind: BreakOutsideLoop, Span: span}
	case completionContinue:
		return &RuntimeError{Kind: ContinueOutsideLoop, Span: span}
	default:
		return &RuntimeError{Kind: ReturnOutsideFunction, Span: span}
	}
}

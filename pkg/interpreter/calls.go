package interpreter

import (
	"github.com/arjpeg/helix/pkg/ast"
	"github.com/arjpeg/helix/pkg/runtime"
)

func (i *Interpreter) evaluateCallExpression(call *ast.CallExpression, scopes *runtime.ScopeStack) (runtime.Value, error) {
	callee, err := i.evaluateExpression(call.Callee, scopes)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, argExpr := range call.Arguments {
		arg, err := i.evaluateExpression(argExpr, scopes)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	switch fn := callee.(type) {
	case *runtime.FunctionValue:
		return i.callFunction(call, fn, args)
	case *runtime.NativeFunctionValue:
		return i.callNative(call, fn, args)
	default:
		return nil, &RuntimeError{Kind: NotCallable, Span: call.Callee.Span(), Left: callee.Kind()}
	}
}

// callFunction runs the body over the captured frames plus one frame of
// parameters. The result is the returned value, or the body's value.
func (i *Interpreter) callFunction(call *ast.CallExpression, fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, error) {
	if len(args) != len(fn.Params) {
		return nil, &RuntimeError{Kind: ArityMismatch, Span: call.Span(), Name: fn.Name, Expected: len(fn.Params), Got: len(args)}
	}
	if i.depth >= i.maxCallDepth {
		return nil, &RuntimeError{Kind: CallDepthExceeded, Span: call.Span(), Name: fn.Name, Limit: i.maxCallDepth}
	}
	i.depth++
	defer func() { i.depth-- }()
	i.logger.Debug("call", "function", fn.Name, "depth", i.depth)

	frames := runtime.NewScopeStackFrom(fn.Closure)
	frames.Push()
	for idx, name := range fn.Params {
		frames.Declare(name, args[idx])
	}
	c, err := i.evaluateBlock(fn.Body, frames)
	if err != nil {
		return nil, err
	}
	switch c.kind {
	case completionNormal, completionReturn:
		return c.value, nil
	default:
		return nil, escaped(c)
	}
}

func (i *Interpreter) callNative(call *ast.CallExpression, fn *runtime.NativeFunctionValue, args []runtime.Value) (runtime.Value, error) {
	if fn.Arity >= 0 && len(args) != fn.Arity {
		return nil, &RuntimeError{Kind: ArityMismatch, Span: call.Span(), Name: fn.Name, Expected: fn.Arity, Got: len(args)}
	}
	val, err := fn.Impl(args)
	if err != nil {
		return nil, &RuntimeError{Kind: InvalidArgument, Span: call.Span(), Name: fn.Name, Detail: err.Error()}
	}
	return val, nil
}

package interpreter

import (
	"fmt"

	"github.com/arjpeg/helix/pkg/runtime"
)

// builtins resolve when no scope frame binds the name, so user bindings
// shadow them.
var builtins = map[string]*runtime.NativeFunctionValue{}

func registerBuiltin(name string, arity int, impl runtime.NativeFunction) {
	builtins[name] = &runtime.NativeFunctionValue{Name: name, Arity: arity, Impl: impl}
}

func init() {
	registerBuiltin("len", 1, func(args []runtime.Value) (runtime.Value, error) {
		s, ok := args[0].(runtime.StringValue)
		if !ok {
			return nil, fmt.Errorf("expected a string, got %s", args[0].Kind())
		}
		return runtime.IntegerValue{Val: int64(len(s.Val))}, nil
	})
	registerBuiltin("str", 1, func(args []runtime.Value) (runtime.Value, error) {
		return runtime.StringValue{Val: runtime.Display(args[0])}, nil
	})
	registerBuiltin("type", 1, func(args []runtime.Value) (runtime.Value, error) {
		return runtime.StringValue{Val: args[0].Kind().String()}, nil
	})
}

func lookupBuiltin(name string) (runtime.Value, bool) {
	fn, ok := builtins[name]
	if !ok {
		return nil, false
	}
	return fn, true
}

func builtinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	return names
}

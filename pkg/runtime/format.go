package runtime

import (
	"strconv"
	"strings"

	"github.com/arjpeg/helix/pkg/ast"
)

// Display renders the form written by `print`.
func Display(v Value) string {
	switch val := v.(type) {
	case IntegerValue:
		return strconv.FormatInt(val.Val, 10)
	case FloatValue:
		return ast.FormatFloat(val.Val)
	case StringValue:
		return val.Val
	case BoolValue:
		return strconv.FormatBool(val.Val)
	case *FunctionValue:
		return "<fn " + val.Name + "(" + strings.Join(val.Params, ", ") + ")>"
	case *NativeFunctionValue:
		return "<native fn " + val.Name + ">"
	case nil:
		return "<nil>"
	default:
		return "null"
	}
}

// Inspect is Display with strings quoted, for echoing results.
func Inspect(v Value) string {
	if s, ok := v.(StringValue); ok {
		return strconv.Quote(s.Val)
	}
	return Display(v)
}

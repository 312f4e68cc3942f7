package runtime

import (
	"fmt"

	"github.com/arjpeg/helix/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
	KindString
	KindBool
	KindFunction
	KindNativeFunction
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "native function"
	case KindNull:
		return "null"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsNumeric reports whether values of this kind take part in arithmetic.
func (k Kind) IsNumeric() bool {
	return k == KindInteger || k == KindFloat
}

// Value is implemented by every runtime value. Values are immutable.
type Value interface {
	Kind() Kind
}

type IntegerValue struct {
	Val int64
}

func (IntegerValue) Kind() Kind { return KindInteger }

type FloatValue struct {
	Val float64
}

func (FloatValue) Kind() Kind { return KindFloat }

type StringValue struct {
	Val string
}

func (StringValue) Kind() Kind { return KindString }

type BoolValue struct {
	Val bool
}

func (BoolValue) Kind() Kind { return KindBool }

type NullValue struct{}

func (NullValue) Kind() Kind { return KindNull }

// FunctionValue is a user-defined function. Body is shared with the tree it
// was parsed from; Closure holds the scope frames live at definition time.
type FunctionValue struct {
	Name    string
	Params  []string
	Body    *ast.Block
	Closure []*Frame
}

func (*FunctionValue) Kind() Kind { return KindFunction }

// NativeFunction is the signature of a host-implemented builtin.
type NativeFunction func(args []Value) (Value, error)

// NativeFunctionValue wraps a builtin. Arity < 0 accepts any argument count.
type NativeFunctionValue struct {
	Name  string
	Arity int
	Impl  NativeFunction
}

func (*NativeFunctionValue) Kind() Kind { return KindNativeFunction }

// Null is the shared null value.
var Null Value = NullValue{}

// Truthy maps any value to a boolean for conditions and logical operators.
// Numbers are truthy when non-zero, strings when non-empty, functions always
// and null never.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case IntegerValue:
		return val.Val != 0
	case FloatValue:
		return val.Val != 0
	case StringValue:
		return val.Val != ""
	case BoolValue:
		return val.Val
	case *FunctionValue, *NativeFunctionValue:
		return true
	default:
		return false
	}
}

// IsZero reports whether v is a numeric zero of either kind.
func IsZero(v Value) bool {
	switch val := v.(type) {
	case IntegerValue:
		return val.Val == 0
	case FloatValue:
		return val.Val == 0
	default:
		return false
	}
}

func toFloat(v Value) float64 {
	switch val := v.(type) {
	case IntegerValue:
		return float64(val.Val)
	case FloatValue:
		return val.Val
	default:
		return 0
	}
}

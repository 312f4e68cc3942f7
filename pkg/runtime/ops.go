package runtime

import (
	"errors"
	"strings"

	"github.com/arjpeg/helix/pkg/ast"
)

type binaryKey struct {
	op    ast.BinaryOperator
	left  Kind
	right Kind
}

type unaryKey struct {
	op   ast.UnaryOperator
	kind Kind
}

type binaryFunc func(left, right Value) Value

type unaryFunc func(operand Value) Value

var (
	binaryTable = make(map[binaryKey]binaryFunc)
	unaryTable  = make(map[unaryKey]unaryFunc)
)

var allKinds = []Kind{KindInteger, KindFloat, KindString, KindBool, KindFunction, KindNativeFunction, KindNull}

func registerBinary(op ast.BinaryOperator, left, right Kind, fn binaryFunc) {
	binaryTable[binaryKey{op: op, left: left, right: right}] = fn
}

func registerUnary(op ast.UnaryOperator, kind Kind, fn unaryFunc) {
	unaryTable[unaryKey{op: op, kind: kind}] = fn
}

// MaxStringLength bounds the byte length of a string built by repetition.
const MaxStringLength = 1 << 26

var (
	// ErrUnsupportedOperands reports an operator with no entry for the
	// operand kinds.
	ErrUnsupportedOperands = errors.New("unsupported operand kinds")
	ErrDivisionByZero      = errors.New("division by zero")
	ErrStringTooLong       = errors.New("string too long")
)

// BinaryOp applies op to two evaluated operands. Integer division truncates
// toward zero. Division of numbers by a zero of either kind is
// ErrDivisionByZero, and a repetition longer than MaxStringLength is
// ErrStringTooLong.
func BinaryOp(op ast.BinaryOperator, left, right Value) (Value, error) {
	fn, ok := binaryTable[binaryKey{op: op, left: left.Kind(), right: right.Kind()}]
	if !ok {
		return nil, ErrUnsupportedOperands
	}
	switch op {
	case ast.BinaryDivide:
		if IsZero(right) {
			return nil, ErrDivisionByZero
		}
	case ast.BinaryMultiply:
		if s, count, ok := repetitionOperands(left, right); ok && !repetitionFits(len(s), count) {
			return nil, ErrStringTooLong
		}
	}
	return fn(left, right), nil
}

// UnaryOp applies op to an evaluated operand.
func UnaryOp(op ast.UnaryOperator, operand Value) (Value, bool) {
	fn, ok := unaryTable[unaryKey{op: op, kind: operand.Kind()}]
	if !ok {
		return nil, false
	}
	return fn(operand), true
}

// SupportsBinary reports whether op is registered for the kind pair.
func SupportsBinary(op ast.BinaryOperator, left, right Kind) bool {
	_, ok := binaryTable[binaryKey{op: op, left: left, right: right}]
	return ok
}

// Equal compares two values of any kinds. Integers and floats compare by
// numeric value; functions compare by identity.
func Equal(left, right Value) bool {
	if left.Kind().IsNumeric() && right.Kind().IsNumeric() {
		if l, ok := left.(IntegerValue); ok {
			if r, ok := right.(IntegerValue); ok {
				return l.Val == r.Val
			}
		}
		return toFloat(left) == toFloat(right)
	}
	if left.Kind() != right.Kind() {
		return false
	}
	switch l := left.(type) {
	case StringValue:
		return l.Val == right.(StringValue).Val
	case BoolValue:
		return l.Val == right.(BoolValue).Val
	case NullValue:
		return true
	case *FunctionValue:
		return l == right.(*FunctionValue)
	case *NativeFunctionValue:
		return l == right.(*NativeFunctionValue)
	default:
		return false
	}
}

type intOp func(a, b int64) int64

type floatOp func(a, b float64) float64

func registerArithmetic(op ast.BinaryOperator, ints intOp, floats floatOp) {
	registerBinary(op, KindInteger, KindInteger, func(l, r Value) Value {
		return IntegerValue{Val: ints(l.(IntegerValue).Val, r.(IntegerValue).Val)}
	})
	mixed := func(l, r Value) Value {
		return FloatValue{Val: floats(toFloat(l), toFloat(r))}
	}
	registerBinary(op, KindInteger, KindFloat, mixed)
	registerBinary(op, KindFloat, KindInteger, mixed)
	registerBinary(op, KindFloat, KindFloat, mixed)
}

func registerComparison(op ast.BinaryOperator, cmp func(c int) bool) {
	numeric := func(l, r Value) Value {
		if li, ok := l.(IntegerValue); ok {
			if ri, ok := r.(IntegerValue); ok {
				return BoolValue{Val: cmp(compareInts(li.Val, ri.Val))}
			}
		}
		return BoolValue{Val: cmp(compareFloats(toFloat(l), toFloat(r)))}
	}
	for _, left := range []Kind{KindInteger, KindFloat} {
		for _, right := range []Kind{KindInteger, KindFloat} {
			registerBinary(op, left, right, numeric)
		}
	}
	registerBinary(op, KindString, KindString, func(l, r Value) Value {
		return BoolValue{Val: cmp(strings.Compare(l.(StringValue).Val, r.(StringValue).Val))}
	})
}

func compareInts(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareFloats orders NaN as unordered: every comparison except != is false.
func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	case a == b:
		return 0
	default:
		return 2
	}
}

func repetitionOperands(left, right Value) (string, int64, bool) {
	if s, ok := left.(StringValue); ok {
		if n, ok := right.(IntegerValue); ok {
			return s.Val, n.Val, true
		}
	}
	if n, ok := left.(IntegerValue); ok {
		if s, ok := right.(StringValue); ok {
			return s.Val, n.Val, true
		}
	}
	return "", 0, false
}

// repetitionFits reports whether size*count stays within MaxStringLength
// without computing the product.
func repetitionFits(size int, count int64) bool {
	if size == 0 || count <= 0 {
		return true
	}
	return count <= MaxStringLength/int64(size)
}

func repeat(s string, count int64) Value {
	if count <= 0 {
		return StringValue{}
	}
	return StringValue{Val: strings.Repeat(s, int(count))}
}

func init() {
	registerArithmetic(ast.BinaryAdd,
		func(a, b int64) int64 { return a + b },
		func(a, b float64) float64 { return a + b })
	registerArithmetic(ast.BinarySubtract,
		func(a, b int64) int64 { return a - b },
		func(a, b float64) float64 { return a - b })
	registerArithmetic(ast.BinaryMultiply,
		func(a, b int64) int64 { return a * b },
		func(a, b float64) float64 { return a * b })
	registerArithmetic(ast.BinaryDivide,
		func(a, b int64) int64 { return a / b },
		func(a, b float64) float64 { return a / b })

	registerBinary(ast.BinaryAdd, KindString, KindString, func(l, r Value) Value {
		return StringValue{Val: l.(StringValue).Val + r.(StringValue).Val}
	})
	registerBinary(ast.BinaryMultiply, KindString, KindInteger, func(l, r Value) Value {
		return repeat(l.(StringValue).Val, r.(IntegerValue).Val)
	})
	registerBinary(ast.BinaryMultiply, KindInteger, KindString, func(l, r Value) Value {
		return repeat(r.(StringValue).Val, l.(IntegerValue).Val)
	})

	registerComparison(ast.BinaryLess, func(c int) bool { return c == -1 })
	registerComparison(ast.BinaryLessEqual, func(c int) bool { return c == -1 || c == 0 })
	registerComparison(ast.BinaryGreater, func(c int) bool { return c == 1 })
	registerComparison(ast.BinaryGreaterEqual, func(c int) bool { return c == 1 || c == 0 })

	for _, left := range allKinds {
		for _, right := range allKinds {
			registerBinary(ast.BinaryEqual, left, right, func(l, r Value) Value {
				return BoolValue{Val: Equal(l, r)}
			})
			registerBinary(ast.BinaryNotEqual, left, right, func(l, r Value) Value {
				return BoolValue{Val: !Equal(l, r)}
			})
		}
	}

	registerUnary(ast.UnaryOperatorNegate, KindInteger, func(v Value) Value {
		return IntegerValue{Val: -v.(IntegerValue).Val}
	})
	registerUnary(ast.UnaryOperatorNegate, KindFloat, func(v Value) Value {
		return FloatValue{Val: -v.(FloatValue).Val}
	})
	for _, kind := range allKinds {
		registerUnary(ast.UnaryOperatorPlus, kind, func(v Value) Value { return v })
		registerUnary(ast.UnaryOperatorNot, kind, func(v Value) Value { return BoolValue{Val: !Truthy(v)} })
	}
}

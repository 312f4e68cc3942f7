package runtime

import (
	"errors"
	"math"
	"testing"

	"github.com/arjpeg/helix/pkg/ast"
)

func TestTruthy(t *testing.T) {
	fn := &FunctionValue{Name: "f"}
	cases := []struct {
		value Value
		want  bool
	}{
		{IntegerValue{Val: 0}, false},
		{IntegerValue{Val: -3}, true},
		{FloatValue{Val: 0}, false},
		{FloatValue{Val: 0.1}, true},
		{StringValue{}, false},
		{StringValue{Val: "x"}, true},
		{BoolValue{Val: true}, true},
		{BoolValue{}, false},
		{fn, true},
		{&NativeFunctionValue{Name: "len"}, true},
		{Null, false},
	}
	for _, tc := range cases {
		if got := Truthy(tc.value); got != tc.want {
			t.Fatalf("Truthy(%s) = %v, want %v", Inspect(tc.value), got, tc.want)
		}
	}
}

func TestDisplay(t *testing.T) {
	cases := []struct {
		value Value
		want  string
	}{
		{IntegerValue{Val: 42}, "42"},
		{FloatValue{Val: 4}, "4.0"},
		{FloatValue{Val: 0.5}, "0.5"},
		{StringValue{Val: "hi"}, "hi"},
		{BoolValue{Val: false}, "false"},
		{Null, "null"},
		{&FunctionValue{Name: "add", Params: []string{"a", "b"}}, "<fn add(a, b)>"},
		{&NativeFunctionValue{Name: "len"}, "<native fn len>"},
	}
	for _, tc := range cases {
		if got := Display(tc.value); got != tc.want {
			t.Fatalf("Display = %q, want %q", got, tc.want)
		}
	}
	if got := Inspect(StringValue{Val: "a\"b"}); got != `"a\"b"` {
		t.Fatalf("unexpected inspect output %q", got)
	}
}

func TestScopeStackShadowingAndPop(t *testing.T) {
	s := NewScopeStack()
	s.Declare("x", IntegerValue{Val: 1})
	s.Push()
	s.Declare("x", IntegerValue{Val: 2})
	s.Declare("y", IntegerValue{Val: 3})
	if v, _ := s.Lookup("x"); v.(IntegerValue).Val != 2 {
		t.Fatalf("expected inner binding, got %v", v)
	}
	s.Pop()
	if v, _ := s.Lookup("x"); v.(IntegerValue).Val != 1 {
		t.Fatalf("expected outer binding after pop, got %v", v)
	}
	if _, ok := s.Lookup("y"); ok {
		t.Fatalf("inner binding should not survive pop")
	}
	s.Pop()
	if s.Depth() != 1 {
		t.Fatalf("outermost frame must not be popped, depth %d", s.Depth())
	}
}

func TestScopeStackAssign(t *testing.T) {
	s := NewScopeStack()
	s.Declare("count", IntegerValue{Val: 0})
	s.Push()
	if !s.Assign("count", IntegerValue{Val: 5}) {
		t.Fatalf("assign should find outer binding")
	}
	if s.Assign("missing", Null) {
		t.Fatalf("assign to undeclared name should fail")
	}
	s.Pop()
	if v, _ := s.Lookup("count"); v.(IntegerValue).Val != 5 {
		t.Fatalf("outer binding not updated: %v", v)
	}
}

func TestScopeStackSharedFrames(t *testing.T) {
	s := NewScopeStack()
	captured := NewScopeStackFrom(s.Frames())
	s.Declare("late", BoolValue{Val: true})
	if _, ok := captured.Lookup("late"); !ok {
		t.Fatalf("captured frames should observe later bindings")
	}
	captured.Push()
	captured.Declare("param", Null)
	if _, ok := s.Lookup("param"); ok {
		t.Fatalf("frames pushed on a derived stack must not leak")
	}
	names := captured.Names()
	if len(names) != 2 || names[0] != "late" || names[1] != "param" {
		t.Fatalf("unexpected names %v", names)
	}
}

func TestBinaryArithmetic(t *testing.T) {
	cases := []struct {
		op          ast.BinaryOperator
		left, right Value
		want        Value
	}{
		{ast.BinaryAdd, IntegerValue{Val: 2}, IntegerValue{Val: 2}, IntegerValue{Val: 4}},
		{ast.BinaryAdd, IntegerValue{Val: 2}, FloatValue{Val: 0.5}, FloatValue{Val: 2.5}},
		{ast.BinarySubtract, FloatValue{Val: 1}, IntegerValue{Val: 3}, FloatValue{Val: -2}},
		{ast.BinaryMultiply, IntegerValue{Val: 6}, IntegerValue{Val: 7}, IntegerValue{Val: 42}},
		{ast.BinaryDivide, IntegerValue{Val: 7}, IntegerValue{Val: 2}, IntegerValue{Val: 3}},
		{ast.BinaryDivide, IntegerValue{Val: -7}, IntegerValue{Val: 2}, IntegerValue{Val: -3}},
		{ast.BinaryDivide, IntegerValue{Val: 7}, FloatValue{Val: 2}, FloatValue{Val: 3.5}},
		{ast.BinaryAdd, StringValue{Val: "ab"}, StringValue{Val: "cd"}, StringValue{Val: "abcd"}},
		{ast.BinaryMultiply, StringValue{Val: "ab"}, IntegerValue{Val: 3}, StringValue{Val: "ababab"}},
		{ast.BinaryMultiply, IntegerValue{Val: 2}, StringValue{Val: "x"}, StringValue{Val: "xx"}},
		{ast.BinaryMultiply, StringValue{Val: "x"}, IntegerValue{Val: -1}, StringValue{Val: ""}},
	}
	for _, tc := range cases {
		got, err := BinaryOp(tc.op, tc.left, tc.right)
		if err != nil {
			t.Fatalf("%s %s %s: %v", tc.left.Kind(), tc.op, tc.right.Kind(), err)
		}
		if got != tc.want {
			t.Fatalf("%s %s %s = %#v, want %#v", Inspect(tc.left), tc.op, Inspect(tc.right), got, tc.want)
		}
	}
}

func TestBinaryComparisons(t *testing.T) {
	cases := []struct {
		op          ast.BinaryOperator
		left, right Value
		want        bool
	}{
		{ast.BinaryLess, IntegerValue{Val: 1}, IntegerValue{Val: 2}, true},
		{ast.BinaryLessEqual, IntegerValue{Val: 2}, FloatValue{Val: 2}, true},
		{ast.BinaryGreater, FloatValue{Val: 2.5}, IntegerValue{Val: 2}, true},
		{ast.BinaryGreaterEqual, StringValue{Val: "a"}, StringValue{Val: "b"}, false},
		{ast.BinaryLess, StringValue{Val: "apple"}, StringValue{Val: "banana"}, true},
		{ast.BinaryLess, FloatValue{Val: math.NaN()}, IntegerValue{Val: 1}, false},
		{ast.BinaryEqual, IntegerValue{Val: 1}, FloatValue{Val: 1}, true},
		{ast.BinaryEqual, StringValue{Val: "1"}, IntegerValue{Val: 1}, false},
		{ast.BinaryEqual, Null, Null, true},
		{ast.BinaryNotEqual, BoolValue{Val: true}, Null, true},
	}
	for _, tc := range cases {
		got, err := BinaryOp(tc.op, tc.left, tc.right)
		if err != nil {
			t.Fatalf("%s %s %s: %v", tc.left.Kind(), tc.op, tc.right.Kind(), err)
		}
		if got.(BoolValue).Val != tc.want {
			t.Fatalf("%s %s %s = %v, want %v", Inspect(tc.left), tc.op, Inspect(tc.right), got, tc.want)
		}
	}
}

func TestBinaryUnsupportedCombinations(t *testing.T) {
	cases := []struct {
		op          ast.BinaryOperator
		left, right Value
	}{
		{ast.BinaryAdd, StringValue{Val: "a"}, IntegerValue{Val: 1}},
		{ast.BinarySubtract, StringValue{Val: "a"}, StringValue{Val: "b"}},
		{ast.BinaryMultiply, StringValue{Val: "a"}, FloatValue{Val: 2}},
		{ast.BinaryLess, BoolValue{}, BoolValue{}},
		{ast.BinaryAdd, Null, IntegerValue{}},
	}
	for _, tc := range cases {
		if _, err := BinaryOp(tc.op, tc.left, tc.right); !errors.Is(err, ErrUnsupportedOperands) {
			t.Fatalf("%s %s %s should not be supported, got %v", tc.left.Kind(), tc.op, tc.right.Kind(), err)
		}
	}
}

func TestBinaryDivisionByZero(t *testing.T) {
	for _, right := range []Value{IntegerValue{}, FloatValue{}} {
		for _, left := range []Value{IntegerValue{Val: 1}, FloatValue{Val: 1}} {
			if _, err := BinaryOp(ast.BinaryDivide, left, right); !errors.Is(err, ErrDivisionByZero) {
				t.Fatalf("%s / %s: expected division by zero, got %v", Inspect(left), Inspect(right), err)
			}
		}
	}
	if _, err := BinaryOp(ast.BinaryDivide, StringValue{Val: "a"}, IntegerValue{}); !errors.Is(err, ErrUnsupportedOperands) {
		t.Fatalf("string / 0 should be unsupported, got %v", err)
	}
}

func TestRepetitionLimit(t *testing.T) {
	cases := []struct {
		left, right Value
	}{
		{StringValue{Val: "ab"}, IntegerValue{Val: math.MaxInt64}},
		{IntegerValue{Val: math.MaxInt64}, StringValue{Val: "ab"}},
		{StringValue{Val: "a"}, IntegerValue{Val: 100000000000}},
		{StringValue{Val: "ab"}, IntegerValue{Val: MaxStringLength/2 + 1}},
	}
	for _, tc := range cases {
		if _, err := BinaryOp(ast.BinaryMultiply, tc.left, tc.right); !errors.Is(err, ErrStringTooLong) {
			t.Fatalf("%s * %s: expected string too long, got %v", Inspect(tc.left), Inspect(tc.right), err)
		}
	}

	got, err := BinaryOp(ast.BinaryMultiply, StringValue{Val: "ab"}, IntegerValue{Val: MaxStringLength / 2})
	if err != nil {
		t.Fatalf("repetition at the limit: %v", err)
	}
	if n := len(got.(StringValue).Val); n != MaxStringLength {
		t.Fatalf("expected %d bytes, got %d", MaxStringLength, n)
	}
	if got, err := BinaryOp(ast.BinaryMultiply, StringValue{}, IntegerValue{Val: math.MaxInt64}); err != nil || got != (StringValue{}) {
		t.Fatalf("empty string repetition = %v, %v", got, err)
	}
}

func TestFunctionEqualityIsIdentity(t *testing.T) {
	a := &FunctionValue{Name: "f"}
	b := &FunctionValue{Name: "f"}
	if !Equal(a, a) || Equal(a, b) {
		t.Fatalf("functions should compare by identity")
	}
}

func TestUnaryOps(t *testing.T) {
	if v, ok := UnaryOp(ast.UnaryOperatorNegate, IntegerValue{Val: 3}); !ok || v != (IntegerValue{Val: -3}) {
		t.Fatalf("unexpected negation %v", v)
	}
	if v, ok := UnaryOp(ast.UnaryOperatorNegate, FloatValue{Val: 1.5}); !ok || v != (FloatValue{Val: -1.5}) {
		t.Fatalf("unexpected negation %v", v)
	}
	if _, ok := UnaryOp(ast.UnaryOperatorNegate, StringValue{Val: "x"}); ok {
		t.Fatalf("negating a string should be unsupported")
	}
	if v, ok := UnaryOp(ast.UnaryOperatorNot, StringValue{}); !ok || v != (BoolValue{Val: true}) {
		t.Fatalf("unexpected not %v", v)
	}
	if v, ok := UnaryOp(ast.UnaryOperatorPlus, StringValue{Val: "s"}); !ok || v != (StringValue{Val: "s"}) {
		t.Fatalf("unary plus should be identity, got %v", v)
	}
}

func TestIsZero(t *testing.T) {
	if !IsZero(IntegerValue{}) || !IsZero(FloatValue{Val: 0}) || IsZero(StringValue{}) || IsZero(FloatValue{Val: 1}) {
		t.Fatalf("IsZero misclassified a value")
	}
}

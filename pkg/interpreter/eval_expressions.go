package interpreter

import (
	"errors"
	"fmt"
	"sort"

	"github.com/arjpeg/helix/pkg/ast"
	"github.com/arjpeg/helix/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, scopes *runtime.ScopeStack) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.IntegerLiteral:
		return runtime.IntegerValue{Val: n.Value}, nil
	case *ast.FloatLiteral:
		return runtime.FloatValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.NullLiteral:
		return runtime.Null, nil
	case *ast.Identifier:
		return i.evaluateIdentifier(n, scopes)
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(n, scopes)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n, scopes)
	case *ast.CallExpression:
		return i.evaluateCallExpression(n, scopes)
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", node.NodeType())
	}
}

func (i *Interpreter) evaluateIdentifier(id *ast.Identifier, scopes *runtime.ScopeStack) (runtime.Value, error) {
	if val, ok := scopes.Lookup(id.Name); ok {
		return val, nil
	}
	if val, ok := lookupBuiltin(id.Name); ok {
		return val, nil
	}
	return nil, undefinedVariable(id, scopes)
}

func undefinedVariable(id *ast.Identifier, scopes *runtime.ScopeStack) error {
	candidates := append(scopes.Names(), builtinNames()...)
	sort.Strings(candidates)
	return &RuntimeError{
		Kind:       UndefinedVariable,
		Span:       id.Span(),
		Name:       id.Name,
		Suggestion: closestName(id.Name, candidates),
	}
}

func (i *Interpreter) evaluateUnaryExpression(expr *ast.UnaryExpression, scopes *runtime.ScopeStack) (runtime.Value, error) {
	operand, err := i.evaluateExpression(expr.Operand, scopes)
	if err != nil {
		return nil, err
	}
	val, ok := runtime.UnaryOp(expr.Operator, operand)
	if !ok {
		return nil, &RuntimeError{
			Kind:     InvalidUnaryExpression,
			Span:     expr.Span(),
			Operator: string(expr.Operator),
			Left:     operand.Kind(),
		}
	}
	return val, nil
}

func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression, scopes *runtime.ScopeStack) (runtime.Value, error) {
	switch expr.Operator {
	case ast.BinaryAnd:
		return i.evaluateLogicalAnd(expr, scopes)
	case ast.BinaryOr:
		return i.evaluateLogicalOr(expr, scopes)
	}

	left, err := i.evaluateExpression(expr.Left, scopes)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(expr.Right, scopes)
	if err != nil {
		return nil, err
	}
	val, err := runtime.BinaryOp(expr.Operator, left, right)
	switch {
	case err == nil:
		return val, nil
	case errors.Is(err, runtime.ErrDivisionByZero):
		return nil, &RuntimeError{Kind: DivisionByZero, Span: expr.Span()}
	case errors.Is(err, runtime.ErrStringTooLong):
		return nil, &RuntimeError{Kind: StringTooLong, Span: expr.Span(), Limit: runtime.MaxStringLength}
	default:
		return nil, &RuntimeError{
			Kind:     InvalidBinaryExpression,
			Span:     expr.Span(),
			Operator: string(expr.Operator),
			Left:     left.Kind(),
			Right:    right.Kind(),
		}
	}
}

// evaluateLogicalAnd yields false unless both operands are truthy, in which
// case it yields the right operand.
func (i *Interpreter) evaluateLogicalAnd(expr *ast.BinaryExpression, scopes *runtime.ScopeStack) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, scopes)
	if err != nil {
		return nil, err
	}
	if !runtime.Truthy(left) {
		return runtime.BoolValue{Val: false}, nil
	}
	right, err := i.evaluateExpression(expr.Right, scopes)
	if err != nil {
		return nil, err
	}
	if runtime.Truthy(right) {
		return right, nil
	}
	return runtime.BoolValue{Val: false}, nil
}

// evaluateLogicalOr yields the first truthy operand, else false.
func (i *Interpreter) evaluateLogicalOr(expr *ast.BinaryExpression, scopes *runtime.ScopeStack) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, scopes)
	if err != nil {
		return nil, err
	}
	if runtime.Truthy(left) {
		return left, nil
	}
	right, err := i.evaluateExpression(expr.Right, scopes)
	if err != nil {
		return nil, err
	}
	if runtime.Truthy(right) {
		return right, nil
	}
	return runtime.BoolValue{Val: false}, nil
}

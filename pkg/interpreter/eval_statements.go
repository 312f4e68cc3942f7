package interpreter

import (
	"fmt"

	"github.com/arjpeg/helix/pkg/ast"
	"github.com/arjpeg/helix/pkg/runtime"
)

func (i *Interpreter) evaluateStatement(node ast.Statement, scopes *runtime.ScopeStack) (completion, error) {
	switch n := node.(type) {
	case ast.Expression:
		val, err := i.evaluateExpression(n, scopes)
		if err != nil {
			return completion{}, err
		}
		return normal(val), nil
	case *ast.NoOp:
		return normal(runtime.Null), nil
	case *ast.AssignmentStatement:
		return i.evaluateAssignment(n, scopes)
	case *ast.Block:
		return i.evaluateBlock(n, scopes)
	case *ast.IfStatement:
		return i.evaluateIfStatement(n, scopes)
	case *ast.WhileLoop:
		return i.evaluateWhileLoop(n, scopes)
	case *ast.PrintStatement:
		return i.evaluatePrintStatement(n, scopes)
	case *ast.FunctionDefinition:
		return i.evaluateFunctionDefinition(n, scopes)
	case *ast.BreakStatement:
		return completion{kind: completionBreak, value: runtime.Null, origin: n}, nil
	case *ast.ContinueStatement:
		return completion{kind: completionContinue, value: runtime.Null, origin: n}, nil
	case *ast.ReturnStatement:
		return i.evaluateReturnStatement(n, scopes)
	default:
		return completion{}, fmt.Errorf("unsupported statement type: %s", node.NodeType())
	}
}

// evaluateStatements runs stmts in the current frame, stopping at the first
// non-normal completion.
func (i *Interpreter) evaluateStatements(stmts []ast.Statement, scopes *runtime.ScopeStack) (completion, error) {
	result := normal(runtime.Null)
	for _, stmt := range stmts {
		c, err := i.evaluateStatement(stmt, scopes)
		if err != nil {
			return completion{}, err
		}
		if c.kind != completionNormal {
			return c, nil
		}
		result = c
	}
	return result, nil
}

func (i *Interpreter) evaluateBlock(block *ast.Block, scopes *runtime.ScopeStack) (completion, error) {
	scopes.Push()
	defer scopes.Pop()
	return i.evaluateStatements(block.Body, scopes)
}

func (i *Interpreter) evaluateAssignment(assign *ast.AssignmentStatement, scopes *runtime.ScopeStack) (completion, error) {
	val, err := i.evaluateExpression(assign.Value, scopes)
	if err != nil {
		return completion{}, err
	}
	name := assign.Name.Name
	if assign.IsDeclaration {
		scopes.Declare(name, val)
		return normal(val), nil
	}
	if !scopes.Assign(name, val) {
		return completion{}, undefinedVariable(assign.Name, scopes)
	}
	return normal(val), nil
}

func (i *Interpreter) evaluateIfStatement(stmt *ast.IfStatement, scopes *runtime.ScopeStack) (completion, error) {
	cond, err := i.evaluateExpression(stmt.Condition, scopes)
	if err != nil {
		return completion{}, err
	}
	if runtime.Truthy(cond) {
		return i.evaluateBlock(stmt.Body, scopes)
	}
	if stmt.Else != nil {
		return i.evaluateStatement(stmt.Else, scopes)
	}
	return normal(runtime.Null), nil
}

func (i *Interpreter) evaluateWhileLoop(loop *ast.WhileLoop, scopes *runtime.ScopeStack) (completion, error) {
	for {
		cond, err := i.evaluateExpression(loop.Condition, scopes)
		if err != nil {
			return completion{}, err
		}
		if !runtime.Truthy(cond) {
			return normal(runtime.Null), nil
		}
		c, err := i.evaluateBlock(loop.Body, scopes)
		if err != nil {
			return completion{}, err
		}
		switch c.kind {
		case completionBreak:
			return normal(runtime.Null), nil
		case completionReturn:
			return c, nil
		}
	}
}

func (i *Interpreter) evaluatePrintStatement(stmt *ast.PrintStatement, scopes *runtime.ScopeStack) (completion, error) {
	val, err := i.evaluateExpression(stmt.Expression, scopes)
	if err != nil {
		return completion{}, err
	}
	if _, err := fmt.Fprintln(i.out, runtime.Display(val)); err != nil {
		return completion{}, fmt.Errorf("print: %w", err)
	}
	return normal(runtime.Null), nil
}

func (i *Interpreter) evaluateFunctionDefinition(def *ast.FunctionDefinition, scopes *runtime.ScopeStack) (completion, error) {
	fn := &runtime.FunctionValue{
		Name:    def.Name.Name,
		Params:  def.ParamNames(),
		Body:    def.Body,
		Closure: scopes.Frames(),
	}
	scopes.Declare(fn.Name, fn)
	return normal(fn), nil
}

func (i *Interpreter) evaluateReturnStatement(stmt *ast.ReturnStatement, scopes *runtime.ScopeStack) (completion, error) {
	var val runtime.Value = runtime.Null
	if stmt.Value != nil {
		v, err := i.evaluateExpression(stmt.Value, scopes)
		if err != nil {
			return completion{}, err
		}
		val = v
	}
	return completion{kind: completionReturn, value: val, origin: stmt}, nil
}

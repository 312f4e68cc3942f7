package ast

// Construction helpers for tests and tooling. Nodes built here carry zero spans.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(value)
}

func Flt(value float64) *FloatLiteral {
	return NewFloatLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Null() *NullLiteral {
	return NewNullLiteral()
}

func Un(operator UnaryOperator, operand Expression) *UnaryExpression {
	return NewUnaryExpression(operator, operand)
}

func Bin(operator string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(BinaryOperator(operator), left, right)
}

func Call(name string, args ...Expression) *CallExpression {
	return NewCallExpression(ID(name), args)
}

func CallExpr(callee Expression, args ...Expression) *CallExpression {
	return NewCallExpression(callee, args)
}

func Let(name string, value Expression) *AssignmentStatement {
	return NewAssignmentStatement(ID(name), value, true)
}

func Assign(name string, value Expression) *AssignmentStatement {
	return NewAssignmentStatement(ID(name), value, false)
}

func Blk(statements ...Statement) *Block {
	return NewBlock(statements)
}

func If(condition Expression, body *Block, elseBranch Statement) *IfStatement {
	return NewIfStatement(condition, body, elseBranch)
}

func While(condition Expression, body *Block) *WhileLoop {
	return NewWhileLoop(condition, body)
}

func Print(expr Expression) *PrintStatement {
	return NewPrintStatement(expr)
}

func Fn(name string, params []string, body ...Statement) *FunctionDefinition {
	ids := make([]*Identifier, len(params))
	for i, p := range params {
		ids[i] = ID(p)
	}
	return NewFunctionDefinition(ID(name), ids, Blk(body...))
}

func Brk() *BreakStatement {
	return NewBreakStatement()
}

func Cont() *ContinueStatement {
	return NewContinueStatement()
}

func Ret(value Expression) *ReturnStatement {
	return NewReturnStatement(value)
}

func Prog(statements ...Statement) *Program {
	return NewProgram(statements)
}

package ast

// Children returns the direct children of node in source order.
func Children(node Node) []Node {
	var out []Node
	add := func(children ...Node) {
		for _, c := range children {
			if c != nil {
				out = append(out, c)
			}
		}
	}
	switch n := node.(type) {
	case *Program:
		add(statementNodes(n.Body)...)
	case *Block:
		add(statementNodes(n.Body)...)
	case *UnaryExpression:
		add(n.Operand)
	case *BinaryExpression:
		add(n.Left, n.Right)
	case *CallExpression:
		add(n.Callee)
		for _, arg := range n.Arguments {
			add(arg)
		}
	case *AssignmentStatement:
		add(n.Name, n.Value)
	case *IfStatement:
		add(n.Condition, n.Body)
		if n.Else != nil {
			add(n.Else)
		}
	case *WhileLoop:
		add(n.Condition, n.Body)
	case *PrintStatement:
		add(n.Expression)
	case *FunctionDefinition:
		add(n.Name)
		for _, p := range n.Params {
			add(p)
		}
		add(n.Body)
	case *ReturnStatement:
		if n.Value != nil {
			add(n.Value)
		}
	}
	return out
}

// Walk visits node and its descendants depth-first. Returning false from fn
// skips the children of the current node.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	for _, child := range Children(node) {
		Walk(child, fn)
	}
}

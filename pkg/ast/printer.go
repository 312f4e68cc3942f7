package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders a node as an S-expression. Used by `helix ast` and tests.
func Dump(node Node) string {
	var b strings.Builder
	dump(&b, node)
	return b.String()
}

func dump(b *strings.Builder, node Node) {
	list := func(head string, children ...Node) {
		b.WriteString("(")
		b.WriteString(head)
		for _, child := range children {
			b.WriteString(" ")
			dump(b, child)
		}
		b.WriteString(")")
	}
	switch n := node.(type) {
	case nil:
		b.WriteString("<nil>")
	case *Program:
		list("program", statementNodes(n.Body)...)
	case *NoOp:
		b.WriteString("(noop)")
	case *Identifier:
		b.WriteString(n.Name)
	case *IntegerLiteral:
		b.WriteString(strconv.FormatInt(n.Value, 10))
	case *FloatLiteral:
		b.WriteString(FormatFloat(n.Value))
	case *StringLiteral:
		b.WriteString(strconv.Quote(n.Value))
	case *BooleanLiteral:
		b.WriteString(strconv.FormatBool(n.Value))
	case *NullLiteral:
		b.WriteString("null")
	case *UnaryExpression:
		list(string(n.Operator), n.Operand)
	case *BinaryExpression:
		list(string(n.Operator), n.Left, n.Right)
	case *CallExpression:
		children := []Node{n.Callee}
		for _, arg := range n.Arguments {
			children = append(children, arg)
		}
		list("call", children...)
	case *AssignmentStatement:
		head := "set"
		if n.IsDeclaration {
			head = "let"
		}
		list(head, n.Name, n.Value)
	case *Block:
		list("block", statementNodes(n.Body)...)
	case *IfStatement:
		if n.Else == nil {
			list("if", n.Condition, n.Body)
		} else {
			list("if", n.Condition, n.Body, n.Else)
		}
	case *WhileLoop:
		list("while", n.Condition, n.Body)
	case *PrintStatement:
		list("print", n.Expression)
	case *FunctionDefinition:
		fmt.Fprintf(b, "(fn %s (%s) ", n.Name.Name, strings.Join(n.ParamNames(), " "))
		dump(b, n.Body)
		b.WriteString(")")
	case *BreakStatement:
		b.WriteString("(break)")
	case *ContinueStatement:
		b.WriteString("(continue)")
	case *ReturnStatement:
		if n.Value == nil {
			b.WriteString("(return)")
		} else {
			list("return", n.Value)
		}
	default:
		fmt.Fprintf(b, "<%s>", node.NodeType())
	}
}

func statementNodes(stmts []Statement) []Node {
	out := make([]Node, len(stmts))
	for i, s := range stmts {
		out[i] = s
	}
	return out
}

// FormatFloat prints a float so it always reads back as a float literal.
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

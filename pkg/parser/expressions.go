package parser

import (
	"github.com/arjpeg/helix/pkg/ast"
	"github.com/arjpeg/helix/pkg/lexer"
)

// binaryLevels lists the binary operators from lowest to highest precedence.
// Every level is left-associative.
var binaryLevels = []map[lexer.Operator]ast.BinaryOperator{
	{lexer.OpOr: ast.BinaryOr},
	{lexer.OpAnd: ast.BinaryAnd},
	{lexer.OpEquals: ast.BinaryEqual, lexer.OpNotEquals: ast.BinaryNotEqual},
	{
		lexer.OpLess:         ast.BinaryLess,
		lexer.OpLessEqual:    ast.BinaryLessEqual,
		lexer.OpGreater:      ast.BinaryGreater,
		lexer.OpGreaterEqual: ast.BinaryGreaterEqual,
	},
	{lexer.OpPlus: ast.BinaryAdd, lexer.OpMinus: ast.BinarySubtract},
	{lexer.OpStar: ast.BinaryMultiply, lexer.OpSlash: ast.BinaryDivide},
}

var unaryOperators = map[lexer.Operator]ast.UnaryOperator{
	lexer.OpPlus:  ast.UnaryOperatorPlus,
	lexer.OpMinus: ast.UnaryOperatorNegate,
	lexer.OpNot:   ast.UnaryOperatorNot,
}

func (p *parser) parseExpression() (ast.Expression, error) {
	return p.parseLevel(0)
}

func (p *parser) parseLevel(level int) (ast.Expression, error) {
	if level == len(binaryLevels) {
		return p.parseUnary()
	}
	return p.parseBinary(binaryLevels[level], func() (ast.Expression, error) {
		return p.parseLevel(level + 1)
	})
}

// parseBinary parses operand (op operand)* and folds the chain to the left.
func (p *parser) parseBinary(ops map[lexer.Operator]ast.BinaryOperator, operand func() (ast.Expression, error)) (ast.Expression, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.Kind != lexer.KindOperator {
			return left, nil
		}
		op, ok := ops[tok.Op]
		if !ok {
			return left, nil
		}
		p.advance()
		p.skipTerminators()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = ast.WithSpan(ast.NewBinaryExpression(op, left, right), left.Span().Merge(right.Span()))
	}
}

func (p *parser) parseUnary() (ast.Expression, error) {
	tok := p.peek()
	if tok.Kind == lexer.KindOperator {
		if op, ok := unaryOperators[tok.Op]; ok {
			p.advance()
			err := p.enter(tok)
			defer p.leave()
			if err != nil {
				return nil, err
			}
			p.skipTerminators()
			operand, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			return ast.WithSpan(ast.NewUnaryExpression(op, operand), tok.Span.Merge(operand.Span())), nil
		}
	}
	return p.parseCall()
}

func (p *parser) parseCall() (ast.Expression, error) {
	expr, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.peek().IsParen(lexer.ShapeRound, true) {
		open := p.advance()
		args, closing, err := p.parseArguments(open)
		if err != nil {
			return nil, err
		}
		expr = ast.WithSpan(ast.NewCallExpression(expr, args), expr.Span().Merge(closing.Span))
	}
	return expr, nil
}

// parseArguments parses a call's argument list after its opening bracket
// through the closing one.
func (p *parser) parseArguments(open lexer.Token) ([]ast.Expression, lexer.Token, error) {
	err := p.enter(open)
	defer p.leave()
	if err != nil {
		return nil, open, err
	}
	p.parens++
	defer func() { p.parens-- }()

	var args []ast.Expression
	if !p.peek().IsParen(lexer.ShapeRound, false) {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, open, err
			}
			args = append(args, arg)
			if p.peek().Kind != lexer.KindComma {
				break
			}
			p.advance()
		}
	}
	closing, err := p.closeParen(open, "',' or ')'")
	if err != nil {
		return nil, open, err
	}
	return args, closing, nil
}

// closeParen consumes the `)` matching open.
func (p *parser) closeParen(open lexer.Token, expected string) (lexer.Token, error) {
	tok := p.peek()
	switch {
	case tok.IsParen(lexer.ShapeRound, false):
		return p.advance(), nil
	case tok.Kind == lexer.KindEOF:
		return tok, &Error{Kind: UnclosedParenthesis, Span: open.Span.Merge(tok.Span), incomplete: true}
	default:
		return tok, p.unexpected(tok, expected)
	}
}

func (p *parser) parseAtom() (ast.Expression, error) {
	tok := p.peek()
	switch tok.Kind {
	case lexer.KindInteger:
		p.advance()
		return ast.WithSpan(ast.NewIntegerLiteral(tok.Int), tok.Span), nil
	case lexer.KindFloat:
		p.advance()
		return ast.WithSpan(ast.NewFloatLiteral(tok.Float), tok.Span), nil
	case lexer.KindString:
		p.advance()
		return ast.WithSpan(ast.NewStringLiteral(tok.Text), tok.Span), nil
	case lexer.KindIdentifier:
		p.advance()
		return ast.WithSpan(ast.NewIdentifier(tok.Text), tok.Span), nil
	case lexer.KindKeyword:
		switch tok.Keyword {
		case lexer.KwTrue, lexer.KwFalse:
			p.advance()
			return ast.WithSpan(ast.NewBooleanLiteral(tok.Keyword == lexer.KwTrue), tok.Span), nil
		case lexer.KwNull:
			p.advance()
			return ast.WithSpan(ast.NewNullLiteral(), tok.Span), nil
		}
	case lexer.KindOperator:
		return nil, &Error{Kind: InvalidUnaryOperator, Span: tok.Span, Found: tok.Op.String()}
	case lexer.KindParen:
		switch {
		case tok.IsParen(lexer.ShapeRound, true):
			return p.parseGroup()
		case tok.IsParen(lexer.ShapeRound, false):
			return nil, &Error{Kind: UnmatchedClosingParenthesis, Span: tok.Span}
		}
	}
	return nil, p.unexpected(tok, "an expression")
}

// parseGroup parses a parenthesized expression. The inner node's span is
// widened to cover the parentheses.
func (p *parser) parseGroup() (ast.Expression, error) {
	open := p.advance()
	err := p.enter(open)
	defer p.leave()
	if err != nil {
		return nil, err
	}
	p.parens++
	defer func() { p.parens-- }()

	inner, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	closing, err := p.closeParen(open, "')'")
	if err != nil {
		return nil, err
	}
	ast.SetSpan(inner, open.Span.Merge(closing.Span))
	return inner, nil
}

package parser

import (
	"github.com/arjpeg/helix/pkg/ast"
	"github.com/arjpeg/helix/pkg/lexer"
)

func (p *parser) parseStatement() (ast.Statement, error) {
	tok := p.peek()
	if tok.IsParen(lexer.ShapeCurly, true) {
		return p.parseBlock()
	}
	if tok.Kind != lexer.KindKeyword {
		return p.parseExpressionStatement()
	}
	switch tok.Keyword {
	case lexer.KwIf:
		return p.parseIf()
	case lexer.KwWhile:
		return p.parseWhile()
	case lexer.KwPrint:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return ast.WithSpan(ast.NewPrintStatement(expr), tok.Span.Merge(expr.Span())), nil
	case lexer.KwBreak:
		p.advance()
		return ast.WithSpan(ast.NewBreakStatement(), tok.Span), nil
	case lexer.KwContinue:
		p.advance()
		return ast.WithSpan(ast.NewContinueStatement(), tok.Span), nil
	case lexer.KwReturn:
		return p.parseReturn()
	case lexer.KwLet:
		return p.parseLet()
	case lexer.KwFn:
		return p.parseFunctionDefinition()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *parser) parseBlock() (*ast.Block, error) {
	open, err := p.expect(isParen(lexer.ShapeCurly, true), "'{'")
	if err != nil {
		return nil, err
	}
	err = p.enter(open)
	defer p.leave()
	if err != nil {
		return nil, err
	}
	p.blocks++
	defer func() { p.blocks-- }()

	var body []ast.Statement
	p.skipTerminators()
	for !p.peek().IsParen(lexer.ShapeCurly, false) {
		if p.atEOF() {
			return nil, p.unexpected(p.peek(), "'}'")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
		if err := p.endStatement(true); err != nil {
			return nil, err
		}
		p.skipTerminators()
	}
	closing := p.advance()
	return ast.WithSpan(ast.NewBlock(body), open.Span.Merge(closing.Span)), nil
}

func (p *parser) parseIf() (*ast.IfStatement, error) {
	ifTok := p.advance()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	span := ifTok.Span.Merge(body.Span())

	// `else` may sit on a later line; only then are the newlines consumed.
	mark := p.pos
	p.skipTerminators()
	if !p.peek().IsKeyword(lexer.KwElse) {
		p.pos = mark
		return ast.WithSpan(ast.NewIfStatement(cond, body, nil), span), nil
	}
	p.advance()

	var elseBranch ast.Statement
	if next := p.peek(); next.IsKeyword(lexer.KwIf) {
		err = p.enter(next)
		defer p.leave()
		if err != nil {
			return nil, err
		}
		elseBranch, err = p.parseIf()
	} else {
		elseBranch, err = p.parseBlock()
	}
	if err != nil {
		return nil, err
	}
	return ast.WithSpan(ast.NewIfStatement(cond, body, elseBranch), span.Merge(elseBranch.Span())), nil
}

func (p *parser) parseWhile() (*ast.WhileLoop, error) {
	whileTok := p.advance()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.WithSpan(ast.NewWhileLoop(cond, body), whileTok.Span.Merge(body.Span())), nil
}

func (p *parser) parseReturn() (*ast.ReturnStatement, error) {
	retTok := p.advance()
	next := p.peek()
	if next.Kind == lexer.KindTerminator || next.Kind == lexer.KindEOF || next.IsParen(lexer.ShapeCurly, false) {
		return ast.WithSpan(ast.NewReturnStatement(nil), retTok.Span), nil
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.WithSpan(ast.NewReturnStatement(value), retTok.Span.Merge(value.Span())), nil
}

func (p *parser) parseIdentifier() (*ast.Identifier, error) {
	tok, err := p.expect(isIdentifier, "an identifier")
	if err != nil {
		return nil, err
	}
	return ast.WithSpan(ast.NewIdentifier(tok.Text), tok.Span), nil
}

func (p *parser) parseLet() (*ast.AssignmentStatement, error) {
	letTok := p.advance()
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(isOperator(lexer.OpAssign), "'='"); err != nil {
		return nil, err
	}
	p.skipTerminators()
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.WithSpan(ast.NewAssignmentStatement(name, value, true), letTok.Span.Merge(value.Span())), nil
}

func (p *parser) parseFunctionDefinition() (*ast.FunctionDefinition, error) {
	fnTok := p.advance()
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.WithSpan(ast.NewFunctionDefinition(name, params, body), fnTok.Span.Merge(body.Span())), nil
}

// parseParameters parses a parenthesized list of distinct parameter names.
func (p *parser) parseParameters() ([]*ast.Identifier, error) {
	if _, err := p.expect(isParen(lexer.ShapeRound, true), "'('"); err != nil {
		return nil, err
	}
	p.parens++
	defer func() { p.parens-- }()

	var params []*ast.Identifier
	seen := make(map[string]bool)
	if !p.peek().IsParen(lexer.ShapeRound, false) {
		for {
			tok := p.peek()
			param, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			if seen[param.Name] {
				return nil, &Error{Kind: UnexpectedToken, Span: tok.Span, Found: "duplicate parameter '" + param.Name + "'", Expected: "a unique parameter name"}
			}
			seen[param.Name] = true
			params = append(params, param)
			if p.peek().Kind == lexer.KindComma {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expect(isParen(lexer.ShapeRound, false), "',' or ')'"); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *parser) parseExpressionStatement() (ast.Statement, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.peek().Is(lexer.OpAssign) {
		return expr, nil
	}
	target, ok := expr.(*ast.Identifier)
	if !ok {
		return nil, &Error{Kind: InvalidAssignmentTarget, Span: expr.Span(), Target: expr}
	}
	p.advance()
	p.skipTerminators()
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.WithSpan(ast.NewAssignmentStatement(target, value, false), target.Span().Merge(value.Span())), nil
}

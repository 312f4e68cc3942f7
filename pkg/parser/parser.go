// Package parser builds an AST from a token stream by recursive descent.
package parser

import (
	"github.com/arjpeg/helix/pkg/ast"
	"github.com/arjpeg/helix/pkg/lexer"
	"github.com/arjpeg/helix/pkg/source"
)

// Parse consumes the whole token stream and returns the program it encodes.
// A stream without a trailing EOF token is treated as if it had one.
func Parse(tokens []lexer.Token) (*ast.Program, error) {
	p := newParser(tokens)
	return p.parseProgram()
}

// MaxNestingDepth bounds how deeply groups, calls, unary operators and
// blocks may nest.
const MaxNestingDepth = 1000

type parser struct {
	tokens []lexer.Token
	pos    int

	// parens counts open round brackets; terminators inside them are
	// skipped. blocks counts open curly brackets.
	parens int
	blocks int
	depth  int
}

func newParser(tokens []lexer.Token) *parser {
	if n := len(tokens); n == 0 || tokens[n-1].Kind != lexer.KindEOF {
		var end source.Span
		if n > 0 {
			last := tokens[n-1].Span
			end = source.NewSpan(last.End, last.End, last.Source)
		}
		tokens = append(tokens[:n:n], lexer.Token{Kind: lexer.KindEOF, Span: end})
	}
	return &parser{tokens: tokens}
}

// peek never runs past the trailing EOF token.
func (p *parser) peek() lexer.Token {
	if p.parens > 0 {
		for p.pos < len(p.tokens)-1 && p.tokens[p.pos].Kind == lexer.KindTerminator {
			p.pos++
		}
	}
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *parser) advance() lexer.Token {
	tok := p.peek()
	if tok.Kind != lexer.KindEOF {
		p.pos++
	}
	return tok
}

func (p *parser) atEOF() bool {
	return p.peek().Kind == lexer.KindEOF
}

func (p *parser) skipTerminators() {
	for p.peek().Kind == lexer.KindTerminator {
		p.advance()
	}
}

// expect consumes the next token if match accepts it.
func (p *parser) expect(match func(lexer.Token) bool, expected string) (lexer.Token, error) {
	tok := p.peek()
	if match(tok) {
		return p.advance(), nil
	}
	return tok, p.unexpected(tok, expected)
}

func (p *parser) unexpected(tok lexer.Token, expected string) error {
	if tok.Kind == lexer.KindEOF {
		return &Error{Kind: UnexpectedEOF, Span: tok.Span, Expected: expected, incomplete: p.continuable()}
	}
	return &Error{Kind: UnexpectedToken, Span: tok.Span, Found: tok.Describe(), Expected: expected}
}

// continuable reports whether the statement being parsed could go on past
// a newline: inside brackets, or right after an operator.
func (p *parser) continuable() bool {
	if p.parens > 0 || p.blocks > 0 {
		return true
	}
	for i := p.pos - 1; i >= 0; i-- {
		if p.tokens[i].Kind != lexer.KindTerminator {
			return p.tokens[i].Kind == lexer.KindOperator
		}
	}
	return false
}

// enter records one more level of nesting at tok. Callers defer leave even
// when enter fails.
func (p *parser) enter(tok lexer.Token) error {
	p.depth++
	if p.depth > MaxNestingDepth {
		return &Error{Kind: NestingTooDeep, Span: tok.Span}
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

func isParen(shape lexer.Shape, open bool) func(lexer.Token) bool {
	return func(tok lexer.Token) bool { return tok.IsParen(shape, open) }
}

func isOperator(op lexer.Operator) func(lexer.Token) bool {
	return func(tok lexer.Token) bool { return tok.Is(op) }
}

func isIdentifier(tok lexer.Token) bool {
	return tok.Kind == lexer.KindIdentifier
}

func (p *parser) parseProgram() (*ast.Program, error) {
	var body []ast.Statement
	p.skipTerminators()
	for !p.atEOF() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
		if err := p.endStatement(false); err != nil {
			return nil, err
		}
		p.skipTerminators()
	}

	eof := p.peek().Span
	if len(body) == 0 {
		return ast.WithSpan(ast.NewProgram([]ast.Statement{ast.WithSpan(ast.NewNoOp(), eof)}), eof), nil
	}
	span := body[0].Span().Merge(body[len(body)-1].Span())
	return ast.WithSpan(ast.NewProgram(body), span), nil
}

// endStatement requires a terminator after a statement. End of input always
// ends a statement; a closing brace also does inside a block.
func (p *parser) endStatement(inBlock bool) error {
	tok := p.peek()
	switch {
	case tok.Kind == lexer.KindTerminator:
		p.advance()
		return nil
	case tok.Kind == lexer.KindEOF:
		return nil
	case inBlock && tok.IsParen(lexer.ShapeCurly, false):
		return nil
	case inBlock:
		return p.unexpected(tok, "newline, ';' or '}'")
	case tok.IsParen(lexer.ShapeRound, false):
		return &Error{Kind: UnmatchedClosingParenthesis, Span: tok.Span}
	default:
		return p.unexpected(tok, "newline, ';' or end of input")
	}
}

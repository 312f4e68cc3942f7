// Package lexer turns source text into a flat token stream.
package lexer

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/arjpeg/helix/pkg/source"
)

// Tokenize scans text in one pass. The stream always ends with an EOF token.
// The first lexical error aborts the scan and no tokens are returned.
func Tokenize(text string, id source.ID) ([]Token, error) {
	l := &lexer{cursor: NewCursor(text), id: id}
	tokens := make([]Token, 0, len(text)/2+1)
	for {
		l.skipBlanks()
		if l.cursor.Done() {
			break
		}
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	end := l.cursor.Pos()
	tokens = append(tokens, Token{Kind: KindEOF, Span: source.NewSpan(end, end, id)})
	return tokens, nil
}

type lexer struct {
	cursor *Cursor
	id     source.ID
}

func (l *lexer) span(start int) source.Span {
	return source.NewSpan(start, l.cursor.Pos(), l.id)
}

func isBlank(r rune) bool {
	return r != '\n' && unicode.IsSpace(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

func (l *lexer) skipBlanks() {
	l.cursor.AdvanceWhile(isBlank)
}

func (l *lexer) next() (Token, error) {
	start := l.cursor.Pos()
	r, _ := l.cursor.Peek()
	switch {
	case isDigit(r):
		return l.number()
	case r == '"':
		return l.str()
	case isIdentStart(r):
		return l.word(), nil
	}

	l.cursor.Advance()
	simple := func(kind Kind) (Token, error) {
		return Token{Kind: kind, Span: l.span(start)}, nil
	}
	op := func(op Operator) (Token, error) {
		return Token{Kind: KindOperator, Op: op, Span: l.span(start)}, nil
	}
	paren := func(shape Shape, open bool) (Token, error) {
		return Token{Kind: KindParen, Shape: shape, Open: open, Span: l.span(start)}, nil
	}

	switch r {
	case '\n', ';':
		return simple(KindTerminator)
	case ',':
		return simple(KindComma)
	case '(':
		return paren(ShapeRound, true)
	case ')':
		return paren(ShapeRound, false)
	case '{':
		return paren(ShapeCurly, true)
	case '}':
		return paren(ShapeCurly, false)
	case '+':
		return op(OpPlus)
	case '-':
		return op(OpMinus)
	case '*':
		return op(OpStar)
	case '/':
		return op(OpSlash)
	case '=':
		if l.cursor.AdvanceIf('=') {
			return op(OpEquals)
		}
		return op(OpAssign)
	case '!':
		if l.cursor.AdvanceIf('=') {
			return op(OpNotEquals)
		}
		return op(OpNot)
	case '<':
		if l.cursor.AdvanceIf('=') {
			return op(OpLessEqual)
		}
		return op(OpLess)
	case '>':
		if l.cursor.AdvanceIf('=') {
			return op(OpGreaterEqual)
		}
		return op(OpGreater)
	case '&':
		if l.cursor.AdvanceIf('&') {
			return op(OpAnd)
		}
	case '|':
		if l.cursor.AdvanceIf('|') {
			return op(OpOr)
		}
	}
	return Token{}, l.unknown(start)
}

func (l *lexer) unknown(start int) error {
	l.cursor.AdvanceWhile(func(r rune) bool { return !unicode.IsSpace(r) })
	span := l.span(start)
	return &Error{Kind: UnknownSymbol, Span: span, Text: l.cursor.Slice(span.Start, span.End)}
}

func (l *lexer) number() (Token, error) {
	start := l.cursor.Pos()
	l.cursor.AdvanceWhile(isDigit)
	isFloat := false
	if l.cursor.AdvanceIf('.') {
		isFloat = true
		l.cursor.AdvanceWhile(isDigit)
		if l.cursor.PeekIs('.') {
			l.cursor.AdvanceWhile(func(r rune) bool { return isDigit(r) || r == '.' })
			span := l.span(start)
			return Token{}, &Error{
				Kind:   MalformedNumber,
				Span:   span,
				Text:   l.cursor.Slice(span.Start, span.End),
				Detail: "too many decimal points",
			}
		}
	}
	span := l.span(start)
	text := l.cursor.Slice(span.Start, span.End)
	if isFloat {
		val, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Token{}, &Error{Kind: MalformedNumber, Span: span, Text: text, Detail: "float out of range"}
		}
		return Token{Kind: KindFloat, Float: val, Span: span}, nil
	}
	val, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Token{}, &Error{Kind: MalformedNumber, Span: span, Text: text, Detail: "integer out of range"}
	}
	return Token{Kind: KindInteger, Int: val, Span: span}, nil
}

func (l *lexer) str() (Token, error) {
	start := l.cursor.Pos()
	l.cursor.Advance()
	var b strings.Builder
	for {
		r, ok := l.cursor.Advance()
		if !ok {
			span := l.span(start)
			return Token{}, &Error{Kind: UnterminatedString, Span: span, Text: l.cursor.Slice(span.Start, span.End)}
		}
		switch r {
		case '"':
			return Token{Kind: KindString, Text: b.String(), Span: l.span(start)}, nil
		case '\\':
			esc, ok := l.cursor.Advance()
			if !ok {
				continue
			}
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '"', '\\':
				b.WriteRune(esc)
			default:
				b.WriteByte('\\')
				b.WriteRune(esc)
			}
		default:
			b.WriteRune(r)
		}
	}
}

func (l *lexer) word() Token {
	start := l.cursor.Pos()
	text := l.cursor.AdvanceWhile(isIdentPart)
	span := l.span(start)
	if kw, ok := LookupKeyword(text); ok {
		return Token{Kind: KindKeyword, Keyword: kw, Span: span}
	}
	return Token{Kind: KindIdentifier, Text: text, Span: span}
}

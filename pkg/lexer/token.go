package lexer

import (
	"fmt"
	"strconv"

	"github.com/arjpeg/helix/pkg/source"
)

// Kind classifies a token.
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
	KindString
	KindIdentifier
	KindKeyword
	KindOperator
	KindParen
	KindComma
	KindTerminator
	KindEOF
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindIdentifier:
		return "identifier"
	case KindKeyword:
		return "keyword"
	case KindOperator:
		return "operator"
	case KindParen:
		return "parenthesis"
	case KindComma:
		return "comma"
	case KindTerminator:
		return "terminator"
	case KindEOF:
		return "end of file"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Operator enumerates the operator tokens.
type Operator int

const (
	OpPlus Operator = iota
	OpMinus
	OpStar
	OpSlash
	OpEquals
	OpNotEquals
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpAnd
	OpOr
	OpNot
	OpAssign
)

var operatorSymbols = [...]string{
	OpPlus:         "+",
	OpMinus:        "-",
	OpStar:         "*",
	OpSlash:        "/",
	OpEquals:       "==",
	OpNotEquals:    "!=",
	OpLess:         "<",
	OpLessEqual:    "<=",
	OpGreater:      ">",
	OpGreaterEqual: ">=",
	OpAnd:          "&&",
	OpOr:           "||",
	OpNot:          "!",
	OpAssign:       "=",
}

func (o Operator) String() string {
	if o >= 0 && int(o) < len(operatorSymbols) {
		return operatorSymbols[o]
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// IsUnary reports whether the operator may prefix an operand.
func (o Operator) IsUnary() bool {
	return o == OpPlus || o == OpMinus || o == OpNot
}

// IsBinary reports whether the operator joins two operands.
func (o Operator) IsBinary() bool {
	return o != OpNot && o != OpAssign
}

// Keyword enumerates reserved words.
type Keyword int

const (
	KwTrue Keyword = iota
	KwFalse
	KwNull
	KwLet
	KwIf
	KwElse
	KwPrint
	KwWhile
	KwFn
	KwBreak
	KwContinue
	KwReturn
)

var keywordNames = [...]string{
	KwTrue:     "true",
	KwFalse:    "false",
	KwNull:     "null",
	KwLet:      "let",
	KwIf:       "if",
	KwElse:     "else",
	KwPrint:    "print",
	KwWhile:    "while",
	KwFn:       "fn",
	KwBreak:    "break",
	KwContinue: "continue",
	KwReturn:   "return",
}

var keywords = func() map[string]Keyword {
	out := make(map[string]Keyword, len(keywordNames))
	for kw, name := range keywordNames {
		out[name] = Keyword(kw)
	}
	return out
}()

func (k Keyword) String() string {
	if k >= 0 && int(k) < len(keywordNames) {
		return keywordNames[k]
	}
	return fmt.Sprintf("Keyword(%d)", int(k))
}

// LookupKeyword reports whether word is reserved.
func LookupKeyword(word string) (Keyword, bool) {
	kw, ok := keywords[word]
	return kw, ok
}

// Shape distinguishes round parentheses from curly braces.
type Shape int

const (
	ShapeRound Shape = iota
	ShapeCurly
)

func (s Shape) symbol(open bool) string {
	switch {
	case s == ShapeRound && open:
		return "("
	case s == ShapeRound:
		return ")"
	case open:
		return "{"
	default:
		return "}"
	}
}

// Token is a classified lexeme. Only the payload field matching Kind is set.
type Token struct {
	Kind Kind
	Span source.Span

	Int     int64
	Float   float64
	Text    string
	Keyword Keyword
	Op      Operator
	Shape   Shape
	Open    bool
}

// Is reports whether the token is the operator op.
func (t Token) Is(op Operator) bool {
	return t.Kind == KindOperator && t.Op == op
}

// IsKeyword reports whether the token is the keyword kw.
func (t Token) IsKeyword(kw Keyword) bool {
	return t.Kind == KindKeyword && t.Keyword == kw
}

// IsParen reports whether the token is the given bracket.
func (t Token) IsParen(shape Shape, open bool) bool {
	return t.Kind == KindParen && t.Shape == shape && t.Open == open
}

// Symbol renders the token the way it appeared in source.
func (t Token) Symbol() string {
	switch t.Kind {
	case KindInteger:
		return strconv.FormatInt(t.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(t.Float, 'g', -1, 64)
	case KindString:
		return strconv.Quote(t.Text)
	case KindIdentifier:
		return t.Text
	case KindKeyword:
		return t.Keyword.String()
	case KindOperator:
		return t.Op.String()
	case KindParen:
		return t.Shape.symbol(t.Open)
	case KindComma:
		return ","
	case KindTerminator:
		return "newline"
	default:
		return "end of file"
	}
}

// Describe names the token for "expected X, found Y" diagnostics.
func (t Token) Describe() string {
	switch t.Kind {
	case KindInteger, KindFloat, KindString:
		return fmt.Sprintf("%s literal %s", t.Kind, t.Symbol())
	case KindIdentifier:
		return fmt.Sprintf("identifier '%s'", t.Text)
	case KindKeyword:
		return fmt.Sprintf("keyword '%s'", t.Keyword)
	case KindTerminator, KindEOF:
		return t.Symbol()
	default:
		return fmt.Sprintf("'%s'", t.Symbol())
	}
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%s) @ %s", t.Kind, t.Symbol(), t.Span)
}

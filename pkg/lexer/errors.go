package lexer

import (
	"errors"
	"fmt"

	"github.com/arjpeg/helix/pkg/source"
)

// ErrorKind enumerates lexical failures.
type ErrorKind int

const (
	UnknownSymbol ErrorKind = iota
	MalformedNumber
	UnterminatedString
)

var (
	ErrUnknownSymbol      = errors.New("unknown symbol")
	ErrMalformedNumber    = errors.New("malformed number")
	ErrUnterminatedString = errors.New("unterminated string")
)

func (k ErrorKind) String() string {
	return k.sentinel().Error()
}

func (k ErrorKind) sentinel() error {
	switch k {
	case MalformedNumber:
		return ErrMalformedNumber
	case UnterminatedString:
		return ErrUnterminatedString
	default:
		return ErrUnknownSymbol
	}
}

// Error is a lexical failure. Text holds the offending source run.
type Error struct {
	Kind   ErrorKind
	Span   source.Span
	Text   string
	Detail string
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnknownSymbol:
		return fmt.Sprintf("unknown symbol '%s'", e.Text)
	case MalformedNumber:
		if e.Detail != "" {
			return fmt.Sprintf("malformed number '%s': %s", e.Text, e.Detail)
		}
		return fmt.Sprintf("malformed number '%s'", e.Text)
	default:
		return "unterminated string literal"
	}
}

// Unwrap exposes the kind sentinel so callers can use errors.Is.
func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}

// ErrorSpan returns the span the error points at.
func (e *Error) ErrorSpan() source.Span {
	return e.Span
}

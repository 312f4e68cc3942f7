package parser

import (
	"errors"
	"fmt"

	"github.com/arjpeg/helix/pkg/ast"
	"github.com/arjpeg/helix/pkg/source"
)

// ErrorKind enumerates syntactic failures.
type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota
	UnexpectedEOF
	UnclosedParenthesis
	UnmatchedClosingParenthesis
	InvalidUnaryOperator
	InvalidAssignmentTarget
	NestingTooDeep
)

var (
	ErrUnexpectedToken         = errors.New("unexpected token")
	ErrUnexpectedEOF           = errors.New("unexpected end of file")
	ErrUnclosedParen           = errors.New("unclosed parenthesis")
	ErrUnmatchedClosingParen   = errors.New("unmatched closing parenthesis")
	ErrInvalidUnaryOperator    = errors.New("invalid unary operator")
	ErrInvalidAssignmentTarget = errors.New("invalid assignment target")
	ErrNestingTooDeep          = errors.New("nesting too deep")
)

var kindSentinels = [...]error{
	UnexpectedToken:             ErrUnexpectedToken,
	UnexpectedEOF:               ErrUnexpectedEOF,
	UnclosedParenthesis:         ErrUnclosedParen,
	UnmatchedClosingParenthesis: ErrUnmatchedClosingParen,
	InvalidUnaryOperator:        ErrInvalidUnaryOperator,
	InvalidAssignmentTarget:     ErrInvalidAssignmentTarget,
	NestingTooDeep:              ErrNestingTooDeep,
}

func (k ErrorKind) String() string {
	if k >= 0 && int(k) < len(kindSentinels) {
		return kindSentinels[k].Error()
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a syntactic failure. Found and Expected describe tokens for
// unexpected-token and end-of-file errors; Target holds the rejected node of
// an invalid assignment.
type Error struct {
	Kind     ErrorKind
	Span     source.Span
	Found    string
	Expected string
	Target   ast.Node

	// incomplete marks an end of input reached where a newline and more
	// tokens could still continue the statement.
	incomplete bool
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnexpectedToken:
		return fmt.Sprintf("unexpected %s, expected %s", e.Found, e.Expected)
	case UnexpectedEOF:
		return fmt.Sprintf("unexpected end of file, expected %s", e.Expected)
	case InvalidUnaryOperator:
		return fmt.Sprintf("'%s' cannot be used as a unary operator", e.Found)
	case InvalidAssignmentTarget:
		if e.Target != nil {
			return fmt.Sprintf("cannot assign to %s; only identifiers are assignable", ast.Dump(e.Target))
		}
		return e.Kind.String()
	case NestingTooDeep:
		return fmt.Sprintf("nesting exceeds the maximum depth of %d", MaxNestingDepth)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	if e.Kind >= 0 && int(e.Kind) < len(kindSentinels) {
		return kindSentinels[e.Kind]
	}
	return nil
}

// ErrorSpan returns the span the error points at.
func (e *Error) ErrorSpan() source.Span {
	return e.Span
}

// IsIncomplete reports whether err only says the input ended too early
// inside a bracket or after an operator, so appending another line could
// still make it parse.
func IsIncomplete(err error) bool {
	var perr *Error
	return errors.As(err, &perr) && perr.incomplete
}

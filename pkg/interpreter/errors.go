package interpreter

import (
	"errors"
	"fmt"

	"github.com/arjpeg/helix/pkg/runtime"
	"github.com/arjpeg/helix/pkg/source"
)

// ErrorKind enumerates runtime failures.
type ErrorKind int

const (
	InvalidBinaryExpression ErrorKind = iota
	InvalidUnaryExpression
	DivisionByZero
	UndefinedVariable
	BreakOutsideLoop
	ContinueOutsideLoop
	ReturnOutsideFunction
	NotCallable
	ArityMismatch
	CallDepthExceeded
	InvalidArgument
	StringTooLong
)

var (
	ErrInvalidBinaryExpression = errors.New("invalid binary expression")
	ErrInvalidUnaryExpression  = errors.New("invalid unary expression")
	ErrDivisionByZero          = errors.New("division by zero")
	ErrUndefinedVariable       = errors.New("undefined variable")
	ErrBreakOutsideLoop        = errors.New("break outside of a loop")
	ErrContinueOutsideLoop     = errors.New("continue outside of a loop")
	ErrReturnOutsideFunction   = errors.New("return outside of a function")
	ErrNotCallable             = errors.New("value is not callable")
	ErrArityMismatch           = errors.New("wrong number of arguments")
	ErrCallDepthExceeded       = errors.New("maximum call depth exceeded")
	ErrInvalidArgument         = errors.New("invalid argument")
	ErrStringTooLong           = errors.New("string too long")
)

var kindSentinels = [...]error{
	InvalidBinaryExpression: ErrInvalidBinaryExpression,
	InvalidUnaryExpression:  ErrInvalidUnaryExpression,
	DivisionByZero:          ErrDivisionByZero,
	UndefinedVariable:       ErrUndefinedVariable,
	BreakOutsideLoop:        ErrBreakOutsideLoop,
	ContinueOutsideLoop:     ErrContinueOutsideLoop,
	ReturnOutsideFunction:   ErrReturnOutsideFunction,
	NotCallable:             ErrNotCallable,
	ArityMismatch:           ErrArityMismatch,
	CallDepthExceeded:       ErrCallDepthExceeded,
	InvalidArgument:         ErrInvalidArgument,
	StringTooLong:           ErrStringTooLong,
}

func (k ErrorKind) String() string {
	if k >= 0 && int(k) < len(kindSentinels) {
		return kindSentinels[k].Error()
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// RuntimeError is an evaluation failure. Which context fields are set
// depends on Kind: Operator with Left (and Right) for operator errors, Name
// for variables and calls, Expected and Got for arity.
type RuntimeError struct {
	Kind ErrorKind
	Span source.Span

	Operator   string
	Left       runtime.Kind
	Right      runtime.Kind
	Name       string
	Suggestion string
	Expected   int
	Got        int
	Limit      int
	Detail     string
}

func (e *RuntimeError) Error() string {
	switch e.Kind {
	case InvalidBinaryExpression:
		return fmt.Sprintf("invalid binary expression: cannot apply '%s' to %s and %s", e.Operator, e.Left, e.Right)
	case InvalidUnaryExpression:
		return fmt.Sprintf("invalid unary expression: cannot apply '%s' to %s", e.Operator, e.Left)
	case UndefinedVariable:
		if e.Suggestion != "" {
			return fmt.Sprintf("undefined variable '%s'; did you mean '%s'?", e.Name, e.Suggestion)
		}
		return fmt.Sprintf("undefined variable '%s'", e.Name)
	case BreakOutsideLoop:
		return "'break' used outside of a loop"
	case ContinueOutsideLoop:
		return "'continue' used outside of a loop"
	case ReturnOutsideFunction:
		return "'return' used outside of a function"
	case NotCallable:
		return fmt.Sprintf("value of kind %s is not callable", e.Left)
	case ArityMismatch:
		return fmt.Sprintf("function '%s' expects %d argument(s), got %d", e.Name, e.Expected, e.Got)
	case CallDepthExceeded:
		return fmt.Sprintf("maximum call depth of %d exceeded", e.Limit)
	case InvalidArgument:
		return fmt.Sprintf("%s: %s", e.Name, e.Detail)
	case StringTooLong:
		return fmt.Sprintf("string too long: repetition would exceed %d bytes", e.Limit)
	default:
		return e.Kind.String()
	}
}

func (e *RuntimeError) Unwrap() error {
	if e.Kind >= 0 && int(e.Kind) < len(kindSentinels) {
		return kindSentinels[e.Kind]
	}
	return nil
}

// ErrorSpan returns the span the error points at.
func (e *RuntimeError) ErrorSpan() source.Span {
	return e.Span
}

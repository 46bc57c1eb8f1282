package object

import (
	"fmt"
	"strings"
)

type ErrorKind uint8

const (
	_ ErrorKind = iota
	UndefinedVariable
	UnknownOperation
	InvalidOperation
	MalformedNode
	InvalidRepetition
	NonTerminatingLoop
	MaxDepthExceeded
)

var kindNames = [...]string{
	UndefinedVariable:  "undefined variable",
	UnknownOperation:   "unknown operation",
	InvalidOperation:   "invalid operation",
	MalformedNode:      "malformed node",
	InvalidRepetition:  "invalid repetition",
	NonTerminatingLoop: "non terminating loop",
	MaxDepthExceeded:   "max depth exceeded",
}

func (k ErrorKind) String() string {
	if int(k) >= len(kindNames) || kindNames[k] == "" {
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
	return kindNames[k]
}

// Error is the single evaluation error type. Stack holds the names of the
// operations being evaluated when the error happened, innermost first.
type Error struct {
	Kind  ErrorKind
	Value string // message
	Stack []string
}

func (e *Error) Error() string {
	out := strings.Builder{}
	out.WriteString(e.Kind.String())
	if e.Value != "" {
		out.WriteString(": ")
		out.WriteString(e.Value)
	}
	if len(e.Stack) > 0 {
		out.WriteString(" (in ")
		out.WriteString(strings.Join(e.Stack, " < "))
		out.WriteString(")")
	}
	return out.String()
}

// Is makes any error match the sentinel of the same kind with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Value == ""
}

// Sentinels, for errors.Is().
var (
	ErrUndefinedVariable  = &Error{Kind: UndefinedVariable}
	ErrUnknownOperation   = &Error{Kind: UnknownOperation}
	ErrInvalidOperation   = &Error{Kind: InvalidOperation}
	ErrMalformedNode      = &Error{Kind: MalformedNode}
	ErrInvalidRepetition  = &Error{Kind: InvalidRepetition}
	ErrNonTerminatingLoop = &Error{Kind: NonTerminatingLoop}
	ErrMaxDepthExceeded   = &Error{Kind: MaxDepthExceeded}
)

func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Value: fmt.Sprintf(format, args...)}
}

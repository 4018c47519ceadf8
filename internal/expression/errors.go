package expression

import (
	"errors"
	"fmt"
)

// ErrorKind classifies evaluation failures. Each kind is itself an error,
// so callers can test for a kind with errors.Is(err, ErrDivisionByZero).
type ErrorKind int

const (
	ErrSyntax ErrorKind = iota + 1
	ErrMalformedLiteral
	ErrUnbalancedParentheses
	ErrUnknownIdentifier
	ErrDivisionByZero
	ErrOverflow
	ErrDomain
	ErrCircularReference
)

var kindNames = map[ErrorKind]string{
	ErrSyntax:                "syntax error",
	ErrMalformedLiteral:      "malformed literal",
	ErrUnbalancedParentheses: "unbalanced parentheses",
	ErrUnknownIdentifier:     "unknown identifier",
	ErrDivisionByZero:        "division by zero",
	ErrOverflow:              "numeric overflow",
	ErrDomain:                "operand out of domain",
	ErrCircularReference:     "circular reference",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

func (k ErrorKind) Error() string { return k.String() }

// Error describes why an expression could not be evaluated.
type Error struct {
	Kind   ErrorKind
	Expr   string // Expression being evaluated
	Pos    int    // Byte offset of the failure, -1 if unknown
	Detail string // Offending token or identifier
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Detail != "" {
		msg += " " + quote(e.Detail)
	}
	if e.Pos >= 0 {
		return fmt.Sprintf("%s at offset %d in %s", msg, e.Pos, quote(e.Expr))
	}
	return fmt.Sprintf("%s in %s", msg, quote(e.Expr))
}

// Unwrap returns the error kind.
func (e *Error) Unwrap() error { return e.Kind }

// KindOf returns the kind of an evaluation error, or 0 if err is not one.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var k ErrorKind
	if errors.As(err, &k) {
		return k
	}
	return 0
}

func quote(s string) string {
	return "\"" + s + "\""
}

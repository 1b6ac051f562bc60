package wiring

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedInstruction       = errors.New("malformed instruction")
	ErrInvalidArity               = errors.New("invalid number of tokens")
	ErrUnrecognizedUnaryOperator  = errors.New("unrecognized unary operator")
	ErrUnrecognizedBinaryOperator = errors.New("unrecognized binary operator")
	ErrUnrecognizedShiftOperator  = errors.New("unrecognized shift operator")
	ErrInvalidNumber              = errors.New("invalid number")
	ErrEmptyTarget                = errors.New("empty target signal")
)

// ParseError reports why an instruction could not be parsed. Kind is one of the
// sentinel errors above and is matched with errors.Is.
type ParseError struct {
	Kind  error
	Input string
	Token string
}

func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("parse %q: %v: %q", e.Input, e.Kind, e.Token)
	}
	return fmt.Sprintf("parse %q: %v", e.Input, e.Kind)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// LineError attaches a 1-based line number to an error raised while reading a program.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

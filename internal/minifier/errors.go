package minifier

import (
	"errors"
	"fmt"
)

var (
	// ErrUnterminatedString is reported when a line break or the end of input
	// occurs inside a quoted string.
	ErrUnterminatedString = errors.New("unterminated string literal")

	// ErrUnterminatedRegexLiteral is reported when a line break or the end of
	// input occurs inside a /.../ literal.
	ErrUnterminatedRegexLiteral = errors.New("unterminated regular expression literal")

	// ErrUnterminatedComment is reported when the end of input is reached
	// inside a block comment.
	ErrUnterminatedComment = errors.New("unterminated comment")
)

// SyntaxError wraps one of the Err* faults with the line on which the
// offending construct started.
type SyntaxError struct {
	Err  error
	Line int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

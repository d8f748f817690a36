package syntax

import (
	"errors"
	"fmt"
)

// Parse failures. An *Error returned by Parse unwraps to exactly one of these.
var (
	// ErrMissingParen indicates a '(' without a matching ')'.
	ErrMissingParen = errors.New("missing closing )")

	// ErrMissingBracket indicates a '[' without a closing ']'.
	ErrMissingBracket = errors.New("missing closing ]")

	// ErrInvalidEscape indicates a backslash that is not followed by a
	// metacharacter or a second backslash.
	ErrInvalidEscape = errors.New("invalid escape sequence")

	// ErrUnexpectedParen indicates a ')' that closes nothing.
	ErrUnexpectedParen = errors.New("unexpected )")

	// ErrUnexpectedBracket indicates a ']' outside a bracket expression.
	ErrUnexpectedBracket = errors.New("unexpected ]")

	// ErrMissingRepeatArgument indicates '*', '+' or '?' with nothing to repeat.
	ErrMissingRepeatArgument = errors.New("missing argument to repetition operator")

	// ErrPatternTooLarge indicates a pattern whose tree exceeds the node limit.
	ErrPatternTooLarge = errors.New("pattern too large")
)

// Error describes a pattern that failed to parse.
type Error struct {
	Pattern string
	Pos     int // byte offset of the offending input
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Pos < len(e.Pattern) {
		return fmt.Sprintf("error parsing pattern %q at offset %d (%q): %v",
			e.Pattern, e.Pos, e.Pattern[e.Pos], e.Err)
	}
	return fmt.Sprintf("error parsing pattern %q at offset %d: %v", e.Pattern, e.Pos, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *Error) Unwrap() error {
	return e.Err
}

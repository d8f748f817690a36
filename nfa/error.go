// Package nfa provides a Thompson NFA (Non-deterministic Finite Automaton)
// over bytes and a PikeVM that simulates it.
//
// The NFA is compiled from a syntax.Node pattern tree by continuation passing:
// every subtree is compiled knowing the state it must continue to, so no
// forward references need patching except the loop entry of a repetition.
// The PikeVM runs all active threads in lockstep, one byte at a time, which
// bounds every search by (number of states) × (haystack length).
package nfa

import (
	"errors"
	"fmt"
)

// Common NFA errors
var (
	// ErrInvalidPattern indicates a pattern tree the compiler cannot lower,
	// such as a nil node or a concatenation with the wrong arity.
	ErrInvalidPattern = errors.New("invalid pattern tree")

	// ErrTooManyStates indicates the NFA would outgrow the configured state
	// limit or the StateID range.
	ErrTooManyStates = errors.New("too many NFA states")
)

// CompileError wraps compilation errors with additional context
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("NFA compilation failed for pattern %s: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("NFA compilation failed: %v", e.Err)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}

// BuildError represents an error during NFA construction via the Builder API
type BuildError struct {
	Message string
	StateID StateID
	Err     error // sentinel cause, if any
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("NFA build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("NFA build error: %s", e.Message)
}

// Unwrap returns the underlying error
func (e *BuildError) Unwrap() error {
	return e.Err
}

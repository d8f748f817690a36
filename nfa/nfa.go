package nfa

import (
	"fmt"
	"strings"
)

// StateID uniquely identifies an NFA state.
// This is a 32-bit unsigned integer for compact representation.
type StateID uint32

// InvalidState marks an unset state reference, e.g. a loop split that has not
// been patched yet.
const InvalidState StateID = 0xFFFFFFFF

// NumSlots is the number of save slots tracked per thread: slot 0 records
// where the match starts and slot 1 where it ends.
const NumSlots = 2

// StateKind identifies the type of NFA state and determines which fields are valid.
type StateKind uint8

const (
	// StateMatch is the accepting state. It has no transitions.
	StateMatch StateKind = iota

	// StateByteSet consumes one byte if it is in the state's set, then moves
	// to next.
	StateByteSet

	// StateSplit consumes nothing and continues in both left and right.
	// The left branch has priority.
	StateSplit

	// StateSave consumes nothing, records the current offset in a save slot,
	// then moves to next.
	StateSave
)

// String returns a human-readable representation of the StateKind
func (k StateKind) String() string {
	switch k {
	case StateMatch:
		return "Match"
	case StateByteSet:
		return "ByteSet"
	case StateSplit:
		return "Split"
	case StateSave:
		return "Save"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// State represents a single NFA state with its transitions.
// The state's kind determines which fields are valid.
type State struct {
	kind StateKind

	// For ByteSet: the accepted bytes.
	set ByteSet

	// For ByteSet and Save: the successor state.
	next StateID

	// For Split: the preferred and the fallback successor.
	left, right StateID

	// For Save: which slot to write.
	slot uint8
}

// Kind returns the state's type
func (s *State) Kind() StateKind {
	return s.kind
}

// IsMatch returns true if this is a match state
func (s *State) IsMatch() bool {
	return s.kind == StateMatch
}

// ByteSet returns the accepted bytes and the successor of a ByteSet state.
// Returns (empty set, InvalidState) for other kinds.
func (s *State) ByteSet() (ByteSet, StateID) {
	if s.kind == StateByteSet {
		return s.set, s.next
	}
	return ByteSet{}, InvalidState
}

// Split returns the two target states for Split states.
// Returns (InvalidState, InvalidState) for non-Split states.
func (s *State) Split() (left, right StateID) {
	if s.kind == StateSplit {
		return s.left, s.right
	}
	return InvalidState, InvalidState
}

// Save returns the slot and successor of a Save state.
// Returns (0, InvalidState) for other kinds.
func (s *State) Save() (slot int, next StateID) {
	if s.kind == StateSave {
		return int(s.slot), s.next
	}
	return 0, InvalidState
}

// String returns a human-readable representation of the state
func (s *State) String() string {
	switch s.kind {
	case StateMatch:
		return "Match"
	case StateByteSet:
		return fmt.Sprintf("ByteSet %v -> %d", s.set, s.next)
	case StateSplit:
		return fmt.Sprintf("Split -> [%d, %d]", s.left, s.right)
	case StateSave:
		return fmt.Sprintf("Save(%d) -> %d", s.slot, s.next)
	default:
		return s.kind.String()
	}
}

// NFA is a compiled Thompson NFA over bytes.
//
// States live in a dense arena and refer to each other by StateID, so the
// cycles introduced by repetition need no shared ownership. An NFA is
// immutable once built and may be used by any number of concurrent searches.
type NFA struct {
	// states contains all NFA states indexed by StateID
	states []State

	// start is the entry state.
	start StateID

	// prefixOK reports whether a match may end before the end of the haystack.
	prefixOK bool

	// anchored reports whether the pattern had a leading '^'. Unanchored
	// NFAs begin with a lazy any-byte loop.
	anchored bool
}

// Start returns the starting state ID of the NFA
func (n *NFA) Start() StateID {
	return n.start
}

// State returns the state with the given ID.
// Returns nil if the ID is invalid.
func (n *NFA) State(id StateID) *State {
	if int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// States returns the total number of states in the NFA
func (n *NFA) States() int {
	return len(n.states)
}

// PrefixOK reports whether a match is allowed to stop short of the end of
// the haystack, i.e. whether the pattern did not end in '$'.
func (n *NFA) PrefixOK() bool {
	return n.prefixOK
}

// IsAnchored returns true if the pattern must match at the start of input
func (n *NFA) IsAnchored() bool {
	return n.anchored
}

// String returns a human-readable representation of the NFA
func (n *NFA) String() string {
	return fmt.Sprintf("NFA{states: %d, start: %d, anchored: %v, prefixOK: %v}",
		len(n.states), n.start, n.anchored, n.prefixOK)
}

// Dump renders every state on its own line, marking the start state.
func (n *NFA) Dump() string {
	var sb strings.Builder
	sb.WriteString(n.String())
	sb.WriteByte('\n')
	for i := range n.states {
		marker := "  "
		if StateID(i) == n.start {
			marker = "> "
		}
		fmt.Fprintf(&sb, "%s%04d: %s\n", marker, i, n.states[i].String())
	}
	return sb.String()
}

package nfa

import (
	"fmt"
)

// Builder constructs NFAs incrementally using a low-level API.
// This provides full control over NFA construction and is used by the Compiler.
type Builder struct {
	states []State
	start  StateID
	limit  int

	// overflow is set once the arena outgrows the limit or the StateID
	// range; later additions are dropped and Build reports ErrTooManyStates.
	overflow bool
}

// NewBuilder creates a new NFA builder with default capacity
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a new NFA builder with specified initial capacity
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		states: make([]State, 0, capacity),
		start:  InvalidState,
	}
}

// SetLimit caps the number of states the builder will hold. A limit of zero
// or less only caps at the StateID range.
func (b *Builder) SetLimit(limit int) {
	b.limit = limit
}

// Overflowed reports whether an addition was dropped for exceeding the limit.
func (b *Builder) Overflowed() bool {
	return b.overflow
}

func (b *Builder) add(s State) StateID {
	if b.overflow || (b.limit > 0 && len(b.states) >= b.limit) ||
		uint64(len(b.states)) >= uint64(InvalidState) {
		b.overflow = true
		return InvalidState
	}
	id := StateID(len(b.states))
	b.states = append(b.states, s)
	return id
}

// AddMatch adds a match (accepting) state and returns its ID
func (b *Builder) AddMatch() StateID {
	return b.add(State{kind: StateMatch})
}

// AddByteSet adds a state that consumes one byte from set and moves to next.
func (b *Builder) AddByteSet(set ByteSet, next StateID) StateID {
	return b.add(State{kind: StateByteSet, set: set, next: next})
}

// AddSplit adds a state with epsilon transitions to two states. The left
// target has priority over the right one.
func (b *Builder) AddSplit(left, right StateID) StateID {
	return b.add(State{kind: StateSplit, left: left, right: right})
}

// AddSave adds a state recording the current input offset into slot, then
// moving to next. slot must be less than NumSlots.
func (b *Builder) AddSave(slot int, next StateID) StateID {
	if slot < 0 || slot >= NumSlots {
		// Kept out of range on purpose so Validate reports it.
		return b.add(State{kind: StateSave, slot: NumSlots, next: next})
	}
	return b.add(State{kind: StateSave, slot: uint8(slot), next: next})
}

// PatchSplit updates the left and right targets of a Split state
func (b *Builder) PatchSplit(stateID StateID, left, right StateID) error {
	if int(stateID) >= len(b.states) {
		return &BuildError{
			Message: "state ID out of bounds",
			StateID: stateID,
		}
	}

	s := &b.states[stateID]
	if s.kind != StateSplit {
		return &BuildError{
			Message: fmt.Sprintf("expected Split state, got %s", s.kind),
			StateID: stateID,
		}
	}

	s.left = left
	s.right = right
	return nil
}

// SetStart sets the starting state for the NFA
func (b *Builder) SetStart(start StateID) {
	b.start = start
}

// States returns the current number of states
func (b *Builder) States() int {
	return len(b.states)
}

// Validate checks that the NFA is well-formed:
// - Start state is valid
// - All state references point to valid states
// - Save slots are in range
func (b *Builder) Validate() error {
	if b.overflow {
		return &BuildError{Message: "state limit exceeded", StateID: InvalidState, Err: ErrTooManyStates}
	}
	if b.start == InvalidState {
		return &BuildError{Message: "start state not set", StateID: InvalidState}
	}
	if int(b.start) >= len(b.states) {
		return &BuildError{
			Message: "start state out of bounds",
			StateID: b.start,
		}
	}

	for i, s := range b.states {
		id := StateID(i)
		switch s.kind {
		case StateByteSet, StateSave:
			if int(s.next) >= len(b.states) {
				return &BuildError{
					Message: fmt.Sprintf("invalid next state %d", s.next),
					StateID: id,
				}
			}
			if s.kind == StateSave && s.slot >= NumSlots {
				return &BuildError{
					Message: fmt.Sprintf("invalid save slot %d", s.slot),
					StateID: id,
				}
			}
		case StateSplit:
			if int(s.left) >= len(b.states) {
				return &BuildError{
					Message: fmt.Sprintf("invalid left state %d", s.left),
					StateID: id,
				}
			}
			if int(s.right) >= len(b.states) {
				return &BuildError{
					Message: fmt.Sprintf("invalid right state %d", s.right),
					StateID: id,
				}
			}
		}
	}

	return nil
}

// Build finalizes and returns the constructed NFA.
// Options can be provided to set the anchoring flags.
func (b *Builder) Build(opts ...BuildOption) (*NFA, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	nfa := &NFA{
		states:   b.states,
		start:    b.start,
		prefixOK: true,
	}
	for _, opt := range opts {
		opt(nfa)
	}
	return nfa, nil
}

// BuildOption is a functional option for configuring the built NFA
type BuildOption func(*NFA)

// WithAnchored records whether the pattern had a leading '^'.
func WithAnchored(anchored bool) BuildOption {
	return func(n *NFA) {
		n.anchored = anchored
	}
}

// WithPrefixOK sets whether a match may end before the end of the haystack.
func WithPrefixOK(prefixOK bool) BuildOption {
	return func(n *NFA) {
		n.prefixOK = prefixOK
	}
}

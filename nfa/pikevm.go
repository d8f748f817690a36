package nfa

import (
	"github.com/coregx/egrep/internal/sparse"
)

// PikeVM implements the Pike VM algorithm for NFA execution.
// It simulates the NFA by maintaining the set of active states and advancing
// all of them in lockstep over the haystack, so no input byte is ever read
// twice and no backtracking occurs.
//
// Match priority follows a single rule for both IsMatch and Search: within a
// frontier, the thread inserted first has the highest priority. Epsilon
// closure explores the left branch of a Split before the right one, so the
// left side of an alternation and the body of a greedy loop win ties, and the
// lazy any-byte prefix of an unanchored pattern makes earlier starts win.
//
// Thread safety: a PikeVM only reads its NFA. The methods without a state
// argument allocate a fresh PikeVMState per call; the *WithState variants let
// callers reuse one, but a PikeVMState must never be shared by concurrent
// searches.
type PikeVM struct {
	nfa *NFA
}

// PikeVMState holds mutable per-search state for PikeVM.
// This struct should be pooled (via sync.Pool) for concurrent usage.
// Each goroutine must use its own PikeVMState instance.
type PikeVMState struct {
	// Frontiers for boolean matching: just state IDs.
	ids     []StateID
	nextIDs []StateID

	// Frontiers for Search: state IDs plus save slots.
	queue     []thread
	nextQueue []thread

	// visited holds every state already expanded into the frontier under
	// construction, including Split and Save states, which keeps epsilon
	// cycles finite and each state to at most one thread per step.
	visited *sparse.Set

	// Explicit stacks for epsilon closure.
	idStack     []StateID
	threadStack []thread
}

// thread is one active position in the NFA during Search.
type thread struct {
	state StateID
	slots [NumSlots]int
}

// NewPikeVM creates a new PikeVM for executing the given NFA
func NewPikeVM(nfa *NFA) *PikeVM {
	return &PikeVM{nfa: nfa}
}

// NFA returns the automaton this PikeVM executes.
func (p *PikeVM) NFA() *NFA {
	return p.nfa
}

// NewState returns a PikeVMState sized for this PikeVM's NFA.
func (p *PikeVM) NewState() *PikeVMState {
	state := &PikeVMState{}
	p.initState(state)
	return state
}

// initState makes state ready for a search over p.nfa, reusing its buffers
// when they are large enough.
func (p *PikeVM) initState(state *PikeVMState) {
	capacity := p.nfa.States()
	if capacity < 16 {
		capacity = 16
	}

	if state.visited == nil {
		state.visited = sparse.New(capacity)
	} else {
		state.visited.Resize(capacity)
	}
	if cap(state.queue) < capacity {
		state.ids = make([]StateID, 0, capacity)
		state.nextIDs = make([]StateID, 0, capacity)
		state.queue = make([]thread, 0, capacity)
		state.nextQueue = make([]thread, 0, capacity)
	}
	state.ids = state.ids[:0]
	state.nextIDs = state.nextIDs[:0]
	state.queue = state.queue[:0]
	state.nextQueue = state.nextQueue[:0]
	state.idStack = state.idStack[:0]
	state.threadStack = state.threadStack[:0]
}

// IsMatch reports whether the NFA matches the haystack.
//
// With a prefix-OK NFA this returns as soon as any thread accepts; otherwise
// only a thread accepting after the whole haystack has been consumed counts.
func (p *PikeVM) IsMatch(haystack []byte) bool {
	return p.IsMatchWithState(haystack, 0, p.NewState())
}

// IsMatchAt is like IsMatch but starts the automaton at offset at, as if the
// haystack began there. The end of the haystack is unchanged.
func (p *PikeVM) IsMatchAt(haystack []byte, at int) bool {
	return p.IsMatchWithState(haystack, at, p.NewState())
}

// IsMatchWithState is IsMatchAt using caller-provided scratch state.
func (p *PikeVM) IsMatchWithState(haystack []byte, at int, state *PikeVMState) bool {
	if at < 0 || at > len(haystack) {
		return false
	}
	p.initState(state)

	states := p.nfa.states
	prefixOK := p.nfa.prefixOK

	cur := p.addState(state, state.ids, p.nfa.start)
	next := state.nextIDs
	for pos := at; len(cur) > 0; pos++ {
		atEnd := pos == len(haystack)

		state.visited.Clear()
		next = next[:0]
		for _, id := range cur {
			s := &states[id]
			switch s.kind {
			case StateMatch:
				if prefixOK || atEnd {
					return true
				}
			case StateByteSet:
				if !atEnd && s.set.Contains(haystack[pos]) {
					next = p.addState(state, next, s.next)
				}
			}
		}

		if atEnd {
			break
		}
		cur, next = next, cur
	}
	return false
}

// Search finds the highest-priority match in the haystack.
// Returns (start, end, true) if a match is found, or (-1, -1, false) if not.
func (p *PikeVM) Search(haystack []byte) (int, int, bool) {
	return p.SearchWithState(haystack, 0, p.NewState())
}

// SearchAt is like Search but starts the automaton at offset at. Returned
// offsets are relative to the full haystack.
func (p *PikeVM) SearchAt(haystack []byte, at int) (int, int, bool) {
	return p.SearchWithState(haystack, at, p.NewState())
}

// SearchWithState is SearchAt using caller-provided scratch state.
//
// Each step walks the frontier in priority order. An acceptable Match thread
// becomes the best match so far and every lower-priority thread of that step
// is dropped; the higher-priority threads ahead of it keep running and may
// still replace it with a longer match. The search ends when the frontier
// empties or the synthetic step after the last byte has run.
func (p *PikeVM) SearchWithState(haystack []byte, at int, state *PikeVMState) (int, int, bool) {
	if at < 0 || at > len(haystack) {
		return -1, -1, false
	}
	p.initState(state)

	states := p.nfa.states
	prefixOK := p.nfa.prefixOK
	start, end, found := -1, -1, false

	var slots [NumSlots]int
	cur := p.addThread(state, state.queue, thread{state: p.nfa.start, slots: slots}, at)
	next := state.nextQueue
	for pos := at; len(cur) > 0; pos++ {
		atEnd := pos == len(haystack)

		state.visited.Clear()
		next = next[:0]
	frontier:
		for _, t := range cur {
			s := &states[t.state]
			switch s.kind {
			case StateMatch:
				if !prefixOK && !atEnd {
					continue
				}
				start, end, found = t.slots[0], t.slots[1], true
				break frontier
			case StateByteSet:
				if !atEnd && s.set.Contains(haystack[pos]) {
					next = p.addThread(state, next, thread{state: s.next, slots: t.slots}, pos+1)
				}
			}
		}

		if atEnd {
			break
		}
		cur, next = next, cur
	}
	return start, end, found
}

// addState appends the epsilon closure of id to list, in priority order.
// Only ByteSet and Match states are appended.
func (p *PikeVM) addState(state *PikeVMState, list []StateID, id StateID) []StateID {
	stack := append(state.idStack[:0], id)
	for len(stack) > 0 {
		id = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !state.visited.Insert(uint32(id)) {
			continue
		}

		s := &p.nfa.states[id]
		switch s.kind {
		case StateSplit:
			// Pushed in reverse so the left branch is expanded first.
			stack = append(stack, s.right, s.left)
		case StateSave:
			stack = append(stack, s.next)
		default:
			list = append(list, id)
		}
	}
	state.idStack = stack
	return list
}

// addThread appends the epsilon closure of t to list, in priority order,
// recording pos into the slot of every Save state passed on the way.
func (p *PikeVM) addThread(state *PikeVMState, list []thread, t thread, pos int) []thread {
	stack := append(state.threadStack[:0], t)
	for len(stack) > 0 {
		t = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !state.visited.Insert(uint32(t.state)) {
			continue
		}

		s := &p.nfa.states[t.state]
		switch s.kind {
		case StateSplit:
			stack = append(stack,
				thread{state: s.right, slots: t.slots},
				thread{state: s.left, slots: t.slots},
			)
		case StateSave:
			t.slots[s.slot] = pos
			t.state = s.next
			stack = append(stack, t)
		default:
			list = append(list, t)
		}
	}
	state.threadStack = stack
	return list
}

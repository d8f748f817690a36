package meta

import (
	"sync"

	"github.com/coregx/egrep/nfa"
)

// SearchState holds per-search mutable state for thread-safe concurrent searches.
// This struct should be obtained from a sync.Pool to enable safe concurrent usage
// of the same compiled Engine from multiple goroutines.
//
// Usage pattern:
//
//	state := engine.getSearchState()
//	defer engine.putSearchState(state)
//	// use state for search operations
//
// Thread safety: Each goroutine must use its own SearchState instance.
type SearchState struct {
	// pikevm holds the PikeVM frontiers and visited set. The PikeVM itself
	// is immutable and shared by all searches.
	pikevm *nfa.PikeVMState
}

// newSearchState creates a new SearchState with buffers sized for vm.
func newSearchState(vm *nfa.PikeVM) *SearchState {
	return &SearchState{
		pikevm: vm.NewState(),
	}
}

// searchStatePool manages a pool of SearchState instances for thread-safe reuse.
// This follows the stdlib regexp pattern of using sync.Pool for concurrent safety.
type searchStatePool struct {
	pool sync.Pool
	vm   *nfa.PikeVM
}

// newSearchStatePool creates a pool of states for the given PikeVM.
func newSearchStatePool(vm *nfa.PikeVM) *searchStatePool {
	p := &searchStatePool{vm: vm}
	p.pool = sync.Pool{
		New: func() any {
			return newSearchState(p.vm)
		},
	}
	return p
}

// get retrieves a SearchState from the pool, creating one if necessary.
func (p *searchStatePool) get() *SearchState {
	return p.pool.Get().(*SearchState)
}

// put returns a SearchState to the pool for reuse.
// PikeVM state is reset when the next search begins.
func (p *searchStatePool) put(state *SearchState) {
	if state == nil {
		return
	}
	p.pool.Put(state)
}

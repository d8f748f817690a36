package meta

import (
	"sync/atomic"
)

// FindIndices returns the match bounds as (start, end, true), or
// (-1, -1, false) if there is no match. It does not allocate a Match.
func (e *Engine) FindIndices(haystack []byte) (int, int, bool) {
	at := e.candidate(haystack)
	if at < 0 {
		return -1, -1, false
	}

	state := e.getSearchState()
	defer e.putSearchState(state)

	atomic.AddUint64(&e.stats.NFASearches, 1)
	start, end, found := e.pikevm.SearchWithState(haystack, at, state.pikevm)
	e.recordCandidate(found)
	return start, end, found
}

package meta

import (
	"sync/atomic"
)

// Find returns the highest-priority match in the haystack, or nil if there
// is none.
//
// The match starts as early as possible; among matches with that start,
// alternation and repetition priority decide the end (the left alternative
// wins, greedy loops prefer more input).
//
// Example:
//
//	engine, _ := meta.Compile("a|ab")
//	match := engine.Find([]byte("xab"))
//	println(match.Start(), match.End()) // 1, 2
func (e *Engine) Find(haystack []byte) *Match {
	at := e.candidate(haystack)
	if at < 0 {
		return nil
	}

	state := e.getSearchState()
	defer e.putSearchState(state)

	atomic.AddUint64(&e.stats.NFASearches, 1)
	start, end, found := e.pikevm.SearchWithState(haystack, at, state.pikevm)
	e.recordCandidate(found)
	if !found {
		return nil
	}
	return NewMatch(start, end, haystack)
}

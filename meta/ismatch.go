package meta

import (
	"sync/atomic"
)

// IsMatch returns true if the pattern matches anywhere in the haystack, or,
// for a pattern ending in '$', at the end of the haystack.
//
// This is optimized for boolean matching:
//   - A prefilter miss rejects the haystack without running the PikeVM
//   - A complete prefilter hit is a match when matches may end early
//   - Otherwise the PikeVM stops at the first acceptable match
//
// Example:
//
//	engine, _ := meta.Compile("hello")
//	if engine.IsMatch([]byte("say hello world")) {
//	    println("matches!")
//	}
func (e *Engine) IsMatch(haystack []byte) bool {
	at := e.candidate(haystack)
	if at < 0 {
		return false
	}
	if e.prefilter != nil && e.prefilter.IsComplete() && e.flags.PrefixOK {
		e.recordCandidate(true)
		return true
	}

	state := e.getSearchState()
	defer e.putSearchState(state)

	atomic.AddUint64(&e.stats.NFASearches, 1)
	matched := e.pikevm.IsMatchWithState(haystack, at, state.pikevm)
	e.recordCandidate(matched)
	return matched
}

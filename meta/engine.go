package meta

import (
	"sync/atomic"

	"github.com/coregx/egrep/nfa"
	"github.com/coregx/egrep/prefilter"
	"github.com/coregx/egrep/syntax"
)

// Engine is the meta-engine that runs a compiled pattern.
//
// The Engine:
//  1. Holds the compiled NFA and a shared PikeVM
//  2. Holds the prefilter, if the strategy uses one
//  3. Hands out pooled per-search state
//
// Thread safety: The Engine uses a sync.Pool internally to provide thread-safe
// concurrent access. Multiple goroutines can safely call IsMatch and Find on
// the same Engine instance concurrently. The NFA, PikeVM and prefilter are
// immutable after compilation.
//
// Example:
//
//	engine, err := meta.Compile("(foo|bar)[0123456789]+")
//	if err != nil {
//	    return err
//	}
//
//	haystack := []byte("test foo123 end")
//	match := engine.Find(haystack)
//	if match != nil {
//	    println(match.String()) // "foo123"
//	}
type Engine struct {
	// IMPORTANT: stats MUST be first field for proper 8-byte alignment on 32-bit platforms.
	// This ensures atomic operations on uint64 fields work correctly.
	stats Stats

	nfa       *nfa.NFA
	pikevm    *nfa.PikeVM
	prefilter prefilter.Prefilter
	strategy  Strategy

	pattern string
	tree    *syntax.Node
	flags   syntax.Flags
	config  Config

	pool *searchStatePool
}

// Stats tracks execution statistics for performance analysis.
type Stats struct {
	// NFASearches counts PikeVM runs
	NFASearches uint64

	// PrefilterRejects counts haystacks rejected without running the PikeVM
	PrefilterRejects uint64

	// PrefilterHits counts prefilter candidates confirmed as matches
	PrefilterHits uint64

	// PrefilterMisses counts prefilter candidates that didn't match
	PrefilterMisses uint64
}

// Strategy returns the execution strategy selected for this engine.
//
// Example:
//
//	strategy := engine.Strategy()
//	println(strategy.String()) // "UsePrefilter"
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// Pattern returns the source pattern, or "" for engines built by CompileTree.
func (e *Engine) Pattern() string {
	return e.pattern
}

// Tree returns the parsed pattern tree. It must not be modified.
func (e *Engine) Tree() *syntax.Node {
	return e.tree
}

// NFA returns the compiled automaton.
func (e *Engine) NFA() *nfa.NFA {
	return e.nfa
}

// Prefilter returns the prefilter in use, or nil.
func (e *Engine) Prefilter() prefilter.Prefilter {
	return e.prefilter
}

// Config returns the configuration the engine was compiled with.
func (e *Engine) Config() Config {
	return e.config
}

// IsStartAnchored returns true if the pattern is anchored at the start (^).
// Start-anchored patterns can only match at position 0.
func (e *Engine) IsStartAnchored() bool {
	return e.flags.Anchored
}

// PrefixOK reports whether a match may end before the end of the haystack,
// i.e. the pattern did not end in '$'.
func (e *Engine) PrefixOK() bool {
	return e.flags.PrefixOK
}

// Stats returns a snapshot of execution statistics.
//
// Example:
//
//	stats := engine.Stats()
//	println("NFA searches:", stats.NFASearches)
func (e *Engine) Stats() Stats {
	return Stats{
		NFASearches:      atomic.LoadUint64(&e.stats.NFASearches),
		PrefilterRejects: atomic.LoadUint64(&e.stats.PrefilterRejects),
		PrefilterHits:    atomic.LoadUint64(&e.stats.PrefilterHits),
		PrefilterMisses:  atomic.LoadUint64(&e.stats.PrefilterMisses),
	}
}

// ResetStats resets execution statistics to zero.
func (e *Engine) ResetStats() {
	atomic.StoreUint64(&e.stats.NFASearches, 0)
	atomic.StoreUint64(&e.stats.PrefilterRejects, 0)
	atomic.StoreUint64(&e.stats.PrefilterHits, 0)
	atomic.StoreUint64(&e.stats.PrefilterMisses, 0)
}

// getSearchState retrieves a SearchState from the pool.
// Caller must call putSearchState when done.
func (e *Engine) getSearchState() *SearchState {
	return e.pool.get()
}

// putSearchState returns a SearchState to the pool.
func (e *Engine) putSearchState(state *SearchState) {
	e.pool.put(state)
}

// candidate runs the prefilter, if any. It returns the offset to start the
// PikeVM at, or -1 if the haystack cannot match.
func (e *Engine) candidate(haystack []byte) int {
	if e.prefilter == nil {
		return 0
	}
	pos := e.prefilter.Find(haystack, 0)
	if pos < 0 {
		atomic.AddUint64(&e.stats.PrefilterRejects, 1)
	}
	return pos
}

// recordCandidate counts whether a prefilter candidate was confirmed.
func (e *Engine) recordCandidate(matched bool) {
	if e.prefilter == nil {
		return
	}
	if matched {
		atomic.AddUint64(&e.stats.PrefilterHits, 1)
	} else {
		atomic.AddUint64(&e.stats.PrefilterMisses, 1)
	}
}

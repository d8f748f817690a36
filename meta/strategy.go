package meta

import (
	"github.com/coregx/egrep/prefilter"
	"github.com/coregx/egrep/syntax"
)

// Strategy represents the execution strategy for matching.
//
// Strategy selection is automatic based on pattern analysis.
type Strategy int

const (
	// UseNFA uses only the NFA (PikeVM) engine.
	// Selected for:
	//   - Anchored patterns (^), which can only match at position 0
	//   - Patterns with neither a finite prefix literal set nor a small
	//     set of leading bytes (e.g. `.x`, `a?`)
	//   - When EnablePrefilter is false in config
	UseNFA Strategy = iota

	// UsePrefilter runs a literal prefilter first. A miss rejects the
	// haystack outright; a hit starts the PikeVM at the candidate.
	// Selected for:
	//   - Unanchored patterns whose matches all begin with one of a small
	//     set of literals (e.g., `foo[01]*`, `(get|put)x`)
	//   - Unanchored patterns whose matches can only begin with a few
	//     distinct bytes (e.g., `(a|b)*abb`)
	UsePrefilter
)

// String returns a human-readable representation of the Strategy.
func (s Strategy) String() string {
	switch s {
	case UseNFA:
		return "UseNFA"
	case UsePrefilter:
		return "UsePrefilter"
	default:
		return "Unknown"
	}
}

// SelectStrategy chooses the execution strategy for a compiled pattern.
func SelectStrategy(flags syntax.Flags, pf prefilter.Prefilter, config Config) Strategy {
	if !config.EnablePrefilter || flags.Anchored || pf == nil {
		return UseNFA
	}
	return UsePrefilter
}

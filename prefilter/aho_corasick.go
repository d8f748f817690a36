package prefilter

import (
	"strconv"
	"strings"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/egrep/literal"
)

// ahoCorasickPrefilter finds the first occurrence of any of several
// literals.
//
// The automaton stops at the earliest match end, and the literal it reports
// there need not be the one that starts first: with "abcd" and "bc", the
// haystack "abcd" reports "bc" at 1. Any occurrence ends no earlier, so it
// starts at or after End minus the longest literal, and Find returns that.
//
// Example patterns:
//
//	/foo|bar|baz/      → reject lines without any of the three
//	/(get|put)[xy]/    → four literals: getx, gety, putx, puty
type ahoCorasickPrefilter struct {
	automaton *ahocorasick.Automaton
	patterns  [][]byte
	maxLen    int
	complete  bool
}

// newAhoCorasickPrefilter builds an automaton over every literal in seq.
func newAhoCorasickPrefilter(seq *literal.Seq) (Prefilter, error) {
	builder := ahocorasick.NewBuilder()
	complete := true
	maxLen := 0
	patterns := make([][]byte, 0, seq.Len())
	for i := 0; i < seq.Len(); i++ {
		lit := seq.Get(i)
		builder.AddPattern(lit.Bytes)
		patterns = append(patterns, lit.Bytes)
		maxLen = max(maxLen, len(lit.Bytes))
		complete = complete && lit.Complete
	}

	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &ahoCorasickPrefilter{
		automaton: auto,
		patterns:  patterns,
		maxLen:    maxLen,
		complete:  complete,
	}, nil
}

// Find implements Prefilter.Find.
func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	m := p.automaton.Find(haystack, start)
	if m == nil {
		return -1
	}
	return max(start, m.End-p.maxLen)
}

// IsComplete implements Prefilter.IsComplete.
func (p *ahoCorasickPrefilter) IsComplete() bool {
	return p.complete
}

// HeapBytes implements Prefilter.HeapBytes.
// The automaton does not expose its size; the pattern bytes are a lower bound.
func (p *ahoCorasickPrefilter) HeapBytes() int {
	n := 0
	for _, pat := range p.patterns {
		n += len(pat)
	}
	return n
}

func (p *ahoCorasickPrefilter) String() string {
	quoted := make([]string, len(p.patterns))
	for i, pat := range p.patterns {
		quoted[i] = quote(pat)
	}
	return "aho-corasick(" + strings.Join(quoted, ", ") + ")"
}

func quote(b []byte) string {
	return strconv.Quote(string(b))
}

// Package prefilter provides fast candidate filtering for pattern search using
// extracted literal sequences.
//
// A prefilter is used to quickly skip or reject input that cannot possibly
// contain a match, so the PikeVM only runs where a match may start. It is
// built from the prefix literal set of a pattern: every match must begin with
// one of those literals.
//
// The package selects a strategy from the literal set:
//   - Single byte → memchr (bytes.IndexByte)
//   - Single substring, or a shared prefix of all literals → memmem (bytes.Index)
//   - Several single bytes → a byte set lookup table
//   - Several literals → Aho-Corasick (github.com/coregx/ahocorasick)
//
// Example usage:
//
//	re, _, _ := syntax.Parse("^(hello|world)")
//	prefixes := literal.New(literal.DefaultConfig()).ExtractPrefixes(re)
//	pf := prefilter.NewBuilder(prefixes, 1).Build()
//
//	pos := pf.Find([]byte("foo hello bar"), 0)
//	// pos == 4: "hello" starts there
//	pos = pf.Find([]byte("nothing here"), 0)
//	// pos == -1
package prefilter

import (
	"bytes"

	"github.com/coregx/egrep/literal"
)

// Prefilter is used to find where a match could begin before running the
// full automaton.
//
// Key methods:
//   - Find: returns a lower bound on the start of any match
//   - IsComplete: indicates if a candidate alone proves a match exists
//   - HeapBytes: returns memory usage for profiling
type Prefilter interface {
	// Find returns a position p >= start such that no match begins in
	// [start, p), or -1 if no match can begin at or after start.
	//
	// Substring prefilters return the exact position of the first literal
	// occurrence. Multi-literal prefilters may return start itself when a
	// literal occurs somewhere in haystack[start:].
	//
	// Parameters:
	//   haystack - the byte buffer to search
	//   start - the starting position (must be >= 0 and <= len(haystack))
	Find(haystack []byte, start int) int

	// IsComplete returns true if every literal in the prefilter is a complete
	// string of the pattern's language, so that a candidate found by Find
	// proves that some match exists, provided matches may end before the
	// end of the haystack.
	IsComplete() bool

	// HeapBytes returns the number of bytes of heap memory used by this prefilter.
	//
	// Simple prefilters (memchr, memmem) only hold their needle. The
	// Aho-Corasick prefilter reports an estimate from its patterns.
	HeapBytes() int

	// String names the strategy, for diagnostics.
	String() string
}

// Builder constructs the optimal prefilter from extracted literals.
//
// The selection is based on:
//   - Number of literals (after minimization)
//   - Length of literals and of their common prefix
//   - Completeness flag
//
// Example:
//
//	builder := prefilter.NewBuilder(prefixes, 1)
//	pf := builder.Build()
//	if pf != nil {
//	    pos := pf.Find(haystack, 0)
//	}
type Builder struct {
	prefixes      *literal.Seq
	minLiteralLen int
}

// NewBuilder creates a new prefilter builder from a prefix literal sequence.
//
// Parameters:
//
//	prefixes - literals one of which begins every match (from ExtractPrefixes)
//	minLiteralLen - shortest literal worth searching for; shorter sets
//	                build no prefilter
//
// prefixes may be nil, indicating no literals were extracted.
func NewBuilder(prefixes *literal.Seq, minLiteralLen int) *Builder {
	if minLiteralLen < 1 {
		minLiteralLen = 1
	}
	return &Builder{
		prefixes:      prefixes,
		minLiteralLen: minLiteralLen,
	}
}

// Build constructs the best prefilter for the given literals.
//
// Returns nil if no effective prefilter can be built: the set is empty
// (infinite), contains the empty string, or its literals are shorter than
// the minimum length.
//
// The selection logic:
//  1. Minimize: drop literals that have a shorter literal as a prefix
//  2. One literal of one byte → memchr
//  3. One longer literal → memmem
//  4. Several literals sharing a long enough prefix → memchr/memmem on it
//  5. Several literals of one byte each → byte set
//  6. Several literals → Aho-Corasick
//  7. Otherwise → nil
func (b *Builder) Build() Prefilter {
	return selectPrefilter(b.prefixes, b.minLiteralLen)
}

// selectPrefilter chooses the best prefilter strategy for seq.
func selectPrefilter(prefixes *literal.Seq, minLiteralLen int) Prefilter {
	if !prefixes.IsFinite() || prefixes.HasEmpty() {
		return nil
	}

	seq := prefixes.Clone()
	seq.Minimize()
	if seq.MinLen() < minLiteralLen {
		return nil
	}

	if seq.Len() == 1 {
		lit := seq.Get(0)
		return newSubstringPrefilter(lit.Bytes, lit.Complete)
	}

	// Every match begins with the common prefix, so it can stand in for the
	// whole set. It is never complete.
	if lcp := seq.LongestCommonPrefix(); len(lcp) >= minLiteralLen {
		return newSubstringPrefilter(lcp, false)
	}

	if members, complete, ok := singleBytes(seq); ok {
		return NewByteSet(members, complete)
	}

	pf, err := newAhoCorasickPrefilter(seq)
	if err != nil {
		return nil
	}
	return pf
}

// singleBytes returns the bytes of seq if every literal is one byte long.
func singleBytes(seq *literal.Seq) (members []byte, complete bool, ok bool) {
	complete = true
	for i := 0; i < seq.Len(); i++ {
		lit := seq.Get(i)
		if lit.Len() != 1 {
			return nil, false, false
		}
		members = append(members, lit.Bytes[0])
		complete = complete && lit.Complete
	}
	return members, complete, true
}

func newSubstringPrefilter(needle []byte, complete bool) Prefilter {
	if len(needle) == 1 {
		return newMemchrPrefilter(needle[0], complete)
	}
	return newMemmemPrefilter(needle, complete)
}

// memchrPrefilter searches for a single byte.
//
// Example patterns:
//
//	/a.*/         → search for 'a'
//	/[x]y*/       → search for 'x'
type memchrPrefilter struct {
	needle   byte
	complete bool
}

// newMemchrPrefilter creates a new memchr prefilter.
//
// Parameters:
//
//	needle - the byte to search for
//	complete - true if finding this byte is sufficient for a match
func newMemchrPrefilter(needle byte, complete bool) Prefilter {
	return &memchrPrefilter{
		needle:   needle,
		complete: complete,
	}
}

// Find implements Prefilter.Find using bytes.IndexByte.
func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}

	idx := bytes.IndexByte(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}

	// Return absolute position in haystack
	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *memchrPrefilter) IsComplete() bool {
	return p.complete
}

// HeapBytes implements Prefilter.HeapBytes.
// Returns 0 as no heap allocation is needed.
func (p *memchrPrefilter) HeapBytes() int {
	return 0
}

func (p *memchrPrefilter) String() string {
	return "memchr(" + quote([]byte{p.needle}) + ")"
}

// memmemPrefilter searches for a single substring.
//
// Example patterns:
//
//	/hello/       → search for "hello"
//	/foo|foobar/  → after minimization → search for "foo"
//	/help|hello/  → common prefix → search for "hel"
type memmemPrefilter struct {
	needle   []byte
	complete bool
}

// newMemmemPrefilter creates a new memmem prefilter.
// The needle slice is copied to prevent aliasing issues.
func newMemmemPrefilter(needle []byte, complete bool) Prefilter {
	needleCopy := make([]byte, len(needle))
	copy(needleCopy, needle)

	return &memmemPrefilter{
		needle:   needleCopy,
		complete: complete,
	}
}

// Find implements Prefilter.Find using bytes.Index.
func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start > len(haystack)-len(p.needle) {
		return -1
	}

	idx := bytes.Index(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}

	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *memmemPrefilter) IsComplete() bool {
	return p.complete
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *memmemPrefilter) HeapBytes() int {
	return len(p.needle)
}

func (p *memmemPrefilter) String() string {
	return "memmem(" + quote(p.needle) + ")"
}

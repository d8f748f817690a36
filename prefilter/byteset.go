package prefilter

// byteSetPrefilter finds the first byte that can begin a match.
//
// It serves prefix sets made of single bytes, e.g. `[xyz]+q`, and patterns
// whose prefix literal set is infinite but whose matches can only start with
// a few distinct bytes, e.g. `(a|b)*abb`.
type byteSetPrefilter struct {
	table    [256]bool
	members  []byte
	complete bool
}

// NewByteSet creates a prefilter that finds the first occurrence of any of
// the given bytes. complete reports whether each byte alone is a match.
// Returns nil if members is empty.
//
// Example:
//
//	pf := prefilter.NewByteSet([]byte("0123456789"), false)
//	pos := pf.Find([]byte("port 8080"), 0)
//	// pos == 5
func NewByteSet(members []byte, complete bool) Prefilter {
	if len(members) == 0 {
		return nil
	}

	p := &byteSetPrefilter{complete: complete}
	for _, b := range members {
		if !p.table[b] {
			p.table[b] = true
			p.members = append(p.members, b)
		}
	}
	return p
}

// Find returns the index of the first member byte at or after start.
func (p *byteSetPrefilter) Find(haystack []byte, start int) int {
	if start < 0 {
		return -1
	}
	for i := start; i < len(haystack); i++ {
		if p.table[haystack[i]] {
			return i
		}
	}
	return -1
}

// IsComplete implements Prefilter.IsComplete.
func (p *byteSetPrefilter) IsComplete() bool {
	return p.complete
}

// HeapBytes returns the size of the member list.
func (p *byteSetPrefilter) HeapBytes() int {
	return len(p.members)
}

func (p *byteSetPrefilter) String() string {
	return "byteset(" + quote(p.members) + ")"
}

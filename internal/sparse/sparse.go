// Package sparse provides a sparse set for tracking which NFA states a search
// frontier already holds.
//
// Insertion, membership and clearing are all O(1), and iteration follows
// insertion order, which the PikeVM relies on for thread priority.
package sparse

// Set is a set of uint32 values in the range [0, Cap()).
//
// The sparse array maps a value to its position in dense; a value is present
// only if that position is in range and dense points back at it, so neither
// array ever needs zeroing between uses.
type Set struct {
	sparse []uint32
	dense  []uint32
}

// New creates a set that can hold values below capacity.
func New(capacity int) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds v and reports whether it was absent.
// Panics if v >= Cap().
func (s *Set) Insert(v uint32) bool {
	if s.Contains(v) {
		return false
	}
	s.sparse[v] = uint32(len(s.dense)) //nolint:gosec // len(dense) < cap, which fits in uint32
	s.dense = append(s.dense, v)
	return true
}

// Contains reports whether v is in the set. Out-of-range values are never
// members.
func (s *Set) Contains(v uint32) bool {
	if uint64(v) >= uint64(len(s.sparse)) {
		return false
	}
	i := s.sparse[v]
	return uint64(i) < uint64(len(s.dense)) && s.dense[i] == v
}

// Clear empties the set without releasing memory.
func (s *Set) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.dense)
}

// Cap returns the exclusive upper bound on storable values.
func (s *Set) Cap() int {
	return len(s.sparse)
}

// Resize empties the set and makes room for values below capacity,
// reallocating only when it grows.
func (s *Set) Resize(capacity int) {
	if capacity > len(s.sparse) {
		s.sparse = make([]uint32, capacity)
		s.dense = make([]uint32, 0, capacity)
		return
	}
	s.Clear()
}

// Values returns the members in insertion order.
// The returned slice is valid until the next mutation.
func (s *Set) Values() []uint32 {
	return s.dense
}

package nfa

import (
	"math/bits"
	"strconv"
	"strings"
)

// byteSetWords is the number of 64-bit buckets needed to cover all 256 byte values.
const byteSetWords = 256 / 64

// ByteSet is a membership set over the 256 possible byte values.
//
// ByteSet has value semantics: assigning or passing a ByteSet copies it, and the
// copy is independent of the original. The zero value is the empty set.
//
// Every operation is O(1) and total over the byte range.
type ByteSet struct {
	bits [byteSetWords]uint64
}

// EmptyByteSet returns a set with no members.
func EmptyByteSet() ByteSet {
	return ByteSet{}
}

// FullByteSet returns a set containing every byte value.
func FullByteSet() ByteSet {
	return ByteSet{bits: [byteSetWords]uint64{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}}
}

// SingletonByteSet returns a set whose only member is b.
func SingletonByteSet(b byte) ByteSet {
	var s ByteSet
	s.Insert(b)
	return s
}

// Insert adds b to the set.
func (s *ByteSet) Insert(b byte) {
	s.bits[b>>6] |= 1 << (b & 63)
}

// Remove deletes b from the set.
func (s *ByteSet) Remove(b byte) {
	s.bits[b>>6] &^= 1 << (b & 63)
}

// Contains reports whether b is a member of the set.
func (s ByteSet) Contains(b byte) bool {
	return s.bits[b>>6]>>(b&63)&1 == 1
}

// Complement returns the set of bytes not in s.
func (s ByteSet) Complement() ByteSet {
	for i := range s.bits {
		s.bits[i] = ^s.bits[i]
	}
	return s
}

// Len returns the number of members.
func (s ByteSet) Len() int {
	n := 0
	for _, w := range s.bits {
		n += bits.OnesCount64(w)
	}
	return n
}

// IsEmpty reports whether the set has no members.
func (s ByteSet) IsEmpty() bool {
	return s.bits == [byteSetWords]uint64{}
}

// IsFull reports whether every byte value is a member.
func (s ByteSet) IsFull() bool {
	return s.bits == FullByteSet().bits
}

// Bytes returns the members in ascending order.
func (s ByteSet) Bytes() []byte {
	out := make([]byte, 0, s.Len())
	for i, w := range s.bits {
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			out = append(out, byte(i*64+tz))
			w &= w - 1
		}
	}
	return out
}

// String renders the set for debugging, e.g. `[abc]`, `[^\n]` or `any`.
func (s ByteSet) String() string {
	switch {
	case s.IsFull():
		return "any"
	case s.IsEmpty():
		return "[]"
	}

	var sb strings.Builder
	members := s.Bytes()
	if len(members) > 128 {
		sb.WriteString("[^")
		c := s.Complement()
		members = c.Bytes()
	} else {
		sb.WriteByte('[')
	}
	for _, b := range members {
		sb.WriteString(quoteByte(b))
	}
	sb.WriteByte(']')
	return sb.String()
}

// quoteByte renders b as itself when printable, otherwise as a Go escape.
func quoteByte(b byte) string {
	if b >= 0x20 && b < 0x7f && b != '\\' {
		return string(rune(b))
	}
	q := strconv.QuoteRuneToASCII(rune(b))
	return q[1 : len(q)-1]
}

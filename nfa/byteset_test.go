package nfa

import (
	"testing"
)

func TestByteSet_Empty(t *testing.T) {
	s := EmptyByteSet()
	if !s.IsEmpty() {
		t.Error("EmptyByteSet should be empty")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	for b := 0; b < 256; b++ {
		if s.Contains(byte(b)) {
			t.Fatalf("empty set contains %#x", b)
		}
	}

	var zero ByteSet
	if zero != s {
		t.Error("zero value should equal EmptyByteSet")
	}
}

func TestByteSet_Full(t *testing.T) {
	s := FullByteSet()
	if !s.IsFull() {
		t.Error("FullByteSet should be full")
	}
	if s.Len() != 256 {
		t.Errorf("Len() = %d, want 256", s.Len())
	}
	for b := 0; b < 256; b++ {
		if !s.Contains(byte(b)) {
			t.Fatalf("full set is missing %#x", b)
		}
	}
}

func TestByteSet_Singleton(t *testing.T) {
	for _, b := range []byte{0x00, 'a', 0x3f, 0x40, 0x7f, 0x80, 0xff} {
		s := SingletonByteSet(b)
		if s.Len() != 1 {
			t.Errorf("SingletonByteSet(%#x).Len() = %d, want 1", b, s.Len())
		}
		if !s.Contains(b) {
			t.Errorf("SingletonByteSet(%#x) does not contain its member", b)
		}
		if s.Contains(b + 1) {
			t.Errorf("SingletonByteSet(%#x) contains %#x", b, b+1)
		}
	}
}

func TestByteSet_InsertRemove(t *testing.T) {
	var s ByteSet
	s.Insert('a')
	s.Insert('a')
	s.Insert(0xff)
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}

	s.Remove('a')
	if s.Contains('a') {
		t.Error("'a' still present after Remove")
	}
	s.Remove('z')
	if s.Len() != 1 || !s.Contains(0xff) {
		t.Errorf("unexpected contents after Remove: %v", s)
	}
}

func TestByteSet_Complement(t *testing.T) {
	var s ByteSet
	for _, b := range []byte("abcd") {
		s.Insert(b)
	}

	c := s.Complement()
	if c.Len() != 252 {
		t.Errorf("Complement().Len() = %d, want 252", c.Len())
	}
	for b := 0; b < 256; b++ {
		if s.Contains(byte(b)) == c.Contains(byte(b)) {
			t.Fatalf("byte %#x in both or neither of set and complement", b)
		}
	}
	if c.Complement() != s {
		t.Error("double complement should restore the set")
	}
	if !EmptyByteSet().Complement().IsFull() {
		t.Error("complement of empty should be full")
	}
}

func TestByteSet_ValueSemantics(t *testing.T) {
	a := SingletonByteSet('x')
	b := a
	b.Insert('y')
	if a.Contains('y') {
		t.Error("mutating a copy changed the original")
	}
}

func TestByteSet_Bytes(t *testing.T) {
	var s ByteSet
	for _, b := range []byte{'z', 0x00, 'a', 0xff} {
		s.Insert(b)
	}
	got := s.Bytes()
	want := []byte{0x00, 'a', 'z', 0xff}
	if string(got) != string(want) {
		t.Errorf("Bytes() = %q, want %q", got, want)
	}
}

func TestByteSet_String(t *testing.T) {
	var abc ByteSet
	for _, b := range []byte("abc") {
		abc.Insert(b)
	}

	tests := []struct {
		name string
		set  ByteSet
		want string
	}{
		{"empty", EmptyByteSet(), "[]"},
		{"full", FullByteSet(), "any"},
		{"single", SingletonByteSet('a'), "[a]"},
		{"several", abc, "[abc]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.set.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}

	// Large sets render as a negation.
	neg := abc.Complement().String()
	if neg != "[^abc]" {
		t.Errorf("complement String() = %q, want %q", neg, "[^abc]")
	}
}

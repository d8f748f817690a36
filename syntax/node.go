// Package syntax parses egrep patterns into pattern trees.
//
// The accepted language is a restricted subset of POSIX extended regular
// expressions over bytes:
//
//	pattern        := '^'? alternation '$'?
//	alternation    := concatenation ('|' concatenation)*
//	concatenation  := repetition*
//	repetition     := atom ('*' | '+' | '?')*
//	atom           := '\' meta | '.' | bracket | '(' alternation ')' | byte
//	bracket        := '[' '^'? ']'? (not ']')* ']'
//
// Repetition sugar is expanded while parsing (X+ becomes X X*, X? becomes X|ε),
// so the resulting tree only uses the operators listed in Op.
package syntax

import (
	"strconv"
	"strings"
)

// Op identifies the kind of a pattern tree node.
type Op uint8

const (
	// OpLiteral matches the single byte Node.Byte.
	OpLiteral Op = iota + 1

	// OpClass matches one byte from Node.Class, or one byte outside it when
	// Node.Negated is set.
	OpClass

	// OpConcat matches Sub[0] followed by Sub[1].
	OpConcat

	// OpAlternate matches Sub[0] or Sub[1]. Sub[0] has priority.
	OpAlternate

	// OpRepeat matches Sub[0] zero or more times, preferring more.
	OpRepeat

	// OpNonGreedyRepeat matches Sub[0] zero or more times, preferring fewer.
	OpNonGreedyRepeat

	// OpSave brackets Sub[0] with the whole-match start and end positions.
	OpSave

	// OpWild matches any byte.
	OpWild

	// OpEmpty matches the empty string.
	OpEmpty
)

// String returns the constructor name of the operator.
func (op Op) String() string {
	switch op {
	case OpLiteral:
		return "Literal"
	case OpClass:
		return "Class"
	case OpConcat:
		return "Concat"
	case OpAlternate:
		return "Or"
	case OpRepeat:
		return "Repeat"
	case OpNonGreedyRepeat:
		return "NonGreedyRepeat"
	case OpSave:
		return "Save"
	case OpWild:
		return "Wild"
	case OpEmpty:
		return "Empty"
	default:
		return "Op(" + strconv.Itoa(int(op)) + ")"
	}
}

// Node is a node of a pattern tree.
//
// Which fields are meaningful depends on Op: Byte for OpLiteral, Class and
// Negated for OpClass, one element of Sub for the repetitions and OpSave, two
// for OpConcat and OpAlternate. A node exclusively owns its children; trees are
// never shared or cyclic.
type Node struct {
	Op      Op
	Byte    byte
	Negated bool
	Class   []byte
	Sub     []*Node
}

// Literal returns a node matching the byte b.
func Literal(b byte) *Node {
	return &Node{Op: OpLiteral, Byte: b}
}

// Class returns a bracket expression node. The members are copied.
func Class(negated bool, members []byte) *Node {
	class := make([]byte, len(members))
	copy(class, members)
	return &Node{Op: OpClass, Negated: negated, Class: class}
}

// Concat returns a node matching x then y.
func Concat(x, y *Node) *Node {
	return &Node{Op: OpConcat, Sub: []*Node{x, y}}
}

// Alternate returns a node matching x or y, preferring x.
func Alternate(x, y *Node) *Node {
	return &Node{Op: OpAlternate, Sub: []*Node{x, y}}
}

// Repeat returns a greedy zero-or-more repetition of x.
func Repeat(x *Node) *Node {
	return &Node{Op: OpRepeat, Sub: []*Node{x}}
}

// NonGreedyRepeat returns a lazy zero-or-more repetition of x.
func NonGreedyRepeat(x *Node) *Node {
	return &Node{Op: OpNonGreedyRepeat, Sub: []*Node{x}}
}

// Save returns a node recording the match boundaries around x.
func Save(x *Node) *Node {
	return &Node{Op: OpSave, Sub: []*Node{x}}
}

// Wild returns a node matching any byte.
func Wild() *Node {
	return &Node{Op: OpWild}
}

// Empty returns a node matching the empty string.
func Empty() *Node {
	return &Node{Op: OpEmpty}
}

// Clone returns a deep copy of the tree rooted at n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Op: n.Op, Byte: n.Byte, Negated: n.Negated}
	if n.Class != nil {
		c.Class = make([]byte, len(n.Class))
		copy(c.Class, n.Class)
	}
	if n.Sub != nil {
		c.Sub = make([]*Node, len(n.Sub))
		for i, sub := range n.Sub {
			c.Sub[i] = sub.Clone()
		}
	}
	return c
}

// Equal reports whether two trees have the same shape and payload.
func (n *Node) Equal(m *Node) bool {
	if n == nil || m == nil {
		return n == m
	}
	if n.Op != m.Op || len(n.Sub) != len(m.Sub) {
		return false
	}
	switch n.Op {
	case OpLiteral:
		if n.Byte != m.Byte {
			return false
		}
	case OpClass:
		if n.Negated != m.Negated || string(n.Class) != string(m.Class) {
			return false
		}
	}
	for i := range n.Sub {
		if !n.Sub[i].Equal(m.Sub[i]) {
			return false
		}
	}
	return true
}

// String renders the tree in constructor notation, for example
// Save(Concat(Literal('a'),Wild)).
func (n *Node) String() string {
	var sb strings.Builder
	n.writeTo(&sb)
	return sb.String()
}

func (n *Node) writeTo(sb *strings.Builder) {
	if n == nil {
		sb.WriteString("<nil>")
		return
	}
	sb.WriteString(n.Op.String())
	switch n.Op {
	case OpWild, OpEmpty:
		return
	case OpLiteral:
		sb.WriteByte('(')
		sb.WriteString(strconv.QuoteRuneToASCII(rune(n.Byte)))
		sb.WriteByte(')')
		return
	case OpClass:
		sb.WriteByte('(')
		if n.Negated {
			sb.WriteByte('^')
		}
		sb.WriteString(strconv.QuoteToASCII(string(n.Class)))
		sb.WriteByte(')')
		return
	}
	sb.WriteByte('(')
	for i, sub := range n.Sub {
		if i > 0 {
			sb.WriteByte(',')
		}
		sub.writeTo(sb)
	}
	sb.WriteByte(')')
}

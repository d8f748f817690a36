package nfa

import (
	"github.com/coregx/egrep/syntax"
)

// FirstBytes returns the set of bytes a non-empty match of re can begin with.
//
// ok is false if re can match the empty string: such a match begins with no
// byte at all, so the set cannot bound where matches start.
//
// For example, for (a|b)*abb the set is {a, b}; for x?y it is {x, y}.
func FirstBytes(re *syntax.Node) (set ByteSet, ok bool) {
	if re == nil {
		return EmptyByteSet(), false
	}
	nullable := firstBytes(re, &set)
	return set, !nullable
}

// firstBytes adds the first bytes of re to set and reports whether re can
// match the empty string.
func firstBytes(re *syntax.Node, set *ByteSet) bool {
	switch re.Op {
	case syntax.OpLiteral:
		set.Insert(re.Byte)
		return false

	case syntax.OpClass:
		members := EmptyByteSet()
		for _, b := range re.Class {
			members.Insert(b)
		}
		if re.Negated {
			members = members.Complement()
		}
		for _, b := range members.Bytes() {
			set.Insert(b)
		}
		return false

	case syntax.OpWild:
		*set = FullByteSet()
		return false

	case syntax.OpEmpty:
		return true

	case syntax.OpSave:
		return firstBytes(re.Sub[0], set)

	case syntax.OpConcat:
		if !firstBytes(re.Sub[0], set) {
			return false
		}
		return firstBytes(re.Sub[1], set)

	case syntax.OpAlternate:
		left := firstBytes(re.Sub[0], set)
		right := firstBytes(re.Sub[1], set)
		return left || right

	case syntax.OpRepeat, syntax.OpNonGreedyRepeat:
		firstBytes(re.Sub[0], set)
		return true

	default:
		// Unknown node: claim every byte and nullability.
		*set = FullByteSet()
		return true
	}
}

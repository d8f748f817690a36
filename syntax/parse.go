package syntax

// Flags carries what the parser learned about the pattern's anchors.
type Flags struct {
	// PrefixOK is true unless the pattern ends in an unescaped '$'. When set,
	// a match may end before the end of the haystack.
	PrefixOK bool

	// Anchored is true if the pattern starts with '^'. Unanchored patterns are
	// parsed with an implicit lazy any-byte loop in front of them.
	Anchored bool
}

// IsMeta reports whether c is a metacharacter that must be escaped with a
// backslash to match literally.
func IsMeta(c byte) bool {
	switch c {
	case '?', '+', '*', '|', '(', ')', '.', '^', '$', '[', ']':
		return true
	}
	return false
}

// Parse parses pattern into a pattern tree.
//
// The whole pattern is wrapped in a Save node so that the compiled automaton
// records where the match starts and ends. Unless the pattern starts with '^',
// the saved tree is preceded by NonGreedyRepeat(Wild), which lets a single
// pass of the automaton find a match starting anywhere in the haystack.
//
// Parsing is total over well-formed patterns; malformed patterns yield an
// *Error. Trees larger than DefaultMaxNodes fail with ErrPatternTooLarge.
func Parse(pattern string) (*Node, Flags, error) {
	return ParseWithLimit(pattern, DefaultMaxNodes)
}

// DefaultMaxNodes is the tree size limit used by Parse.
const DefaultMaxNodes = 1 << 16

// ParseWithLimit is like Parse but fails with ErrPatternTooLarge once the
// tree would hold more than maxNodes nodes. A limit of zero or less means no
// limit. Repetition with '+' copies its operand, so nested groups can grow
// the tree exponentially in the pattern length.
func ParseWithLimit(pattern string, maxNodes int) (*Node, Flags, error) {
	p := &parser{input: pattern, maxNodes: maxNodes}

	var flags Flags
	if p.more() && p.peek() == '^' {
		flags.Anchored = true
		p.pos++
	}

	body, err := p.parseAlternation()
	if err != nil {
		return nil, Flags{}, err
	}

	flags.PrefixOK = true
	if p.more() {
		if p.atEndAnchor() {
			flags.PrefixOK = false
			p.pos++
		} else {
			// parseAlternation only stops early at a ')' with no group open.
			return nil, Flags{}, p.errorf(p.pos, ErrUnexpectedParen)
		}
	}

	root := Save(body)
	if !flags.Anchored {
		root = Concat(NonGreedyRepeat(Wild()), root)
	}
	return root, flags, nil
}

// MustParse is like Parse but panics if the pattern cannot be parsed.
// It is meant for tests and for patterns known to be valid.
func MustParse(pattern string) (*Node, Flags) {
	re, flags, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return re, flags
}

type parser struct {
	input    string
	pos      int
	maxNodes int
	nodes    int
}

func (p *parser) more() bool {
	return p.pos < len(p.input)
}

func (p *parser) peek() byte {
	return p.input[p.pos]
}

// atEndAnchor reports whether the parser sits on a '$' that is the last byte
// of the pattern. Any other '$' is a literal.
func (p *parser) atEndAnchor() bool {
	return p.pos == len(p.input)-1 && p.input[p.pos] == '$'
}

func (p *parser) errorf(pos int, err error) *Error {
	return &Error{Pattern: p.input, Pos: pos, Err: err}
}

// grow accounts for n new tree nodes. The error points at the last byte
// read.
func (p *parser) grow(n int) error {
	p.nodes += n
	if p.maxNodes > 0 && p.nodes > p.maxNodes {
		return p.errorf(min(p.pos, len(p.input)-1), ErrPatternTooLarge)
	}
	return nil
}

// parseAlternation handles concat ('|' concat)*, folding to the left.
func (p *parser) parseAlternation() (*Node, error) {
	left, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	for p.more() && p.peek() == '|' {
		p.pos++
		right, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		if err := p.grow(1); err != nil {
			return nil, err
		}
		left = Alternate(left, right)
	}
	return left, nil
}

// parseConcat handles a possibly empty run of repetitions, folding to the left.
func (p *parser) parseConcat() (*Node, error) {
	var node *Node
	for p.more() {
		if c := p.peek(); c == '|' || c == ')' || p.atEndAnchor() {
			break
		}
		rep, err := p.parseRepetition()
		if err != nil {
			return nil, err
		}
		if node == nil {
			node = rep
		} else {
			if err := p.grow(1); err != nil {
				return nil, err
			}
			node = Concat(node, rep)
		}
	}
	if node == nil {
		return Empty(), nil
	}
	return node, nil
}

// parseRepetition handles atom ('*' | '+' | '?')*.
func (p *parser) parseRepetition() (*Node, error) {
	node, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if err := p.grow(1); err != nil {
		return nil, err
	}
	for p.more() {
		op := p.peek()
		if op != '*' && op != '+' && op != '?' {
			return node, nil
		}
		if node, err = p.repeat(node, op); err != nil {
			return nil, err
		}
		p.pos++
	}
	return node, nil
}

// repeat applies the postfix operator op to node.
//
// A repetition of a repetition collapses: X** is X*, X++ is X+, X?? is X?,
// and any two different operators make X*. This holds through groups, so
// ((a+)+)+ stays as small as a+.
func (p *parser) repeat(node *Node, op byte) (*Node, error) {
	if body, inner, ok := splitRepetition(node); ok {
		if inner == op {
			return node, nil
		}
		if err := p.grow(1); err != nil {
			return nil, err
		}
		return Repeat(body), nil
	}

	switch op {
	case '*':
		if err := p.grow(1); err != nil {
			return nil, err
		}
		return Repeat(node), nil
	case '?':
		if err := p.grow(2); err != nil {
			return nil, err
		}
		return Alternate(node, Empty()), nil
	default:
		// Checked before cloning so an oversized copy is never built.
		if err := p.grow(2 + countNodes(node)); err != nil {
			return nil, err
		}
		return Concat(node, Repeat(node.Clone())), nil
	}
}

// splitRepetition recognizes the trees built for X*, X+ and X?, returning X
// and the operator.
func splitRepetition(n *Node) (body *Node, op byte, ok bool) {
	switch n.Op {
	case OpRepeat:
		return n.Sub[0], '*', true
	case OpConcat:
		if loop := n.Sub[1]; loop.Op == OpRepeat && n.Sub[0].Equal(loop.Sub[0]) {
			return n.Sub[0], '+', true
		}
	case OpAlternate:
		if n.Sub[1].Op == OpEmpty {
			return n.Sub[0], '?', true
		}
	}
	return nil, 0, false
}

func countNodes(n *Node) int {
	count := 1
	for _, sub := range n.Sub {
		count += countNodes(sub)
	}
	return count
}

func (p *parser) parseAtom() (*Node, error) {
	start := p.pos
	c := p.peek()
	switch c {
	case '\\':
		if start+1 >= len(p.input) {
			return nil, p.errorf(start, ErrInvalidEscape)
		}
		if e := p.input[start+1]; IsMeta(e) || e == '\\' {
			p.pos += 2
			return Literal(e), nil
		}
		return nil, p.errorf(start, ErrInvalidEscape)
	case '.':
		p.pos++
		return Wild(), nil
	case '[':
		return p.parseBracket()
	case '(':
		p.pos++
		inner, err := p.parseAlternation()
		if err != nil {
			return nil, err
		}
		if !p.more() || p.peek() != ')' {
			return nil, p.errorf(start, ErrMissingParen)
		}
		p.pos++
		return inner, nil
	case ']':
		return nil, p.errorf(start, ErrUnexpectedBracket)
	case '*', '+', '?':
		return nil, p.errorf(start, ErrMissingRepeatArgument)
	default:
		// Includes '^' past the start of the pattern and '$' before its end.
		p.pos++
		return Literal(c), nil
	}
}

// parseBracket handles '[' '^'? ']'? (not ']')* ']'. There are no ranges,
// character classes, equivalence classes or collating symbols: '-', '[:' and
// friends are plain members.
func (p *parser) parseBracket() (*Node, error) {
	start := p.pos
	p.pos++

	negated := false
	if p.more() && p.peek() == '^' {
		negated = true
		p.pos++
	}

	var members []byte
	if p.more() && p.peek() == ']' {
		members = append(members, ']')
		p.pos++
	}
	for p.more() && p.peek() != ']' {
		members = append(members, p.peek())
		p.pos++
	}
	if !p.more() {
		return nil, p.errorf(start, ErrMissingBracket)
	}
	p.pos++
	return Class(negated, members), nil
}

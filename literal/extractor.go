package literal

import (
	"github.com/coregx/egrep/syntax"
)

// ExtractorConfig configures literal extraction limits.
//
// These limits prevent excessive extraction from complex patterns:
//   - MaxLiterals: prevents memory bloat from alternations like (a|b|c|d|...)
//   - MaxLiteralLen: caps how far a prefix is grown through a concatenation
//   - MaxClassSize: prevents expanding large bracket expressions
type ExtractorConfig struct {
	// MaxLiterals limits the number of literals in any intermediate set.
	// A union that would exceed it gives up; a concatenation that would
	// exceed it keeps its shorter left-hand prefixes instead. Default: 64.
	MaxLiterals int

	// MaxLiteralLen limits the length of each extracted literal. Longer
	// literals are truncated and marked incomplete. Default: 64.
	MaxLiteralLen int

	// MaxClassSize limits the size of bracket expressions to expand.
	// [abc] is expanded to ["a", "b", "c"]; larger classes yield no
	// prefix. Default: 10.
	MaxClassSize int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	}
}

// Extractor extracts prefix literal sets from pattern trees.
//
// The result of ExtractPrefixes is a Seq such that every string matched by
// the pattern begins with at least one of its literals. An empty Seq means no
// such finite set could be found, which happens for repetition, '.', negated
// bracket expressions, or when a limit is hit.
//
// Example:
//
//	re, _, _ := syntax.Parse("^(hello|world)")
//	extractor := literal.New(literal.DefaultConfig())
//	prefixes := extractor.ExtractPrefixes(re)
//	// prefixes = ["hello", "world"]
type Extractor struct {
	config ExtractorConfig
}

// New creates a new Extractor with the given configuration.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// ExtractPrefixes extracts prefix literals from the pattern tree.
//
// Handles these node kinds:
//   - OpLiteral: the byte itself, complete
//   - OpEmpty: the empty string, complete
//   - OpClass: each member, when not negated and small enough
//   - OpSave: the sub-expression
//   - OpAlternate: union of both sides
//   - OpConcat: complete left literals extended by every right literal
//   - OpRepeat, OpNonGreedyRepeat, OpWild: no finite prefix set
//
// Examples:
//
//	"^hello"        → ["hello"]
//	"^(foo|bar)"    → ["foo", "bar"]
//	"^[abc]test"    → ["atest", "btest", "ctest"]
//	"^hello.*world" → ["hello"] (incomplete)
//	"^a?b"          → ["ab", "b"]
//	"^.*foo"        → []
func (e *Extractor) ExtractPrefixes(re *syntax.Node) *Seq {
	if re == nil {
		return NewSeq()
	}

	switch re.Op {
	case syntax.OpLiteral:
		return NewSeq(NewLiteral([]byte{re.Byte}, true))

	case syntax.OpEmpty:
		return NewSeq(NewLiteral([]byte{}, true))

	case syntax.OpClass:
		if re.Negated {
			return NewSeq()
		}
		return e.expandClass(re.Class)

	case syntax.OpSave:
		if len(re.Sub) != 1 {
			return NewSeq()
		}
		return e.ExtractPrefixes(re.Sub[0])

	case syntax.OpAlternate:
		if len(re.Sub) != 2 {
			return NewSeq()
		}
		return e.union(e.ExtractPrefixes(re.Sub[0]), e.ExtractPrefixes(re.Sub[1]))

	case syntax.OpConcat:
		if len(re.Sub) != 2 {
			return NewSeq()
		}
		return e.concat(e.ExtractPrefixes(re.Sub[0]), re.Sub[1])

	default:
		// OpRepeat, OpNonGreedyRepeat, OpWild
		return NewSeq()
	}
}

// union returns every literal of both sets. An infinite side, or a result
// over MaxLiterals, makes the union infinite.
func (e *Extractor) union(left, right *Seq) *Seq {
	if !left.IsFinite() || !right.IsFinite() {
		return NewSeq()
	}
	if left.Len()+right.Len() > e.config.MaxLiterals {
		return NewSeq()
	}
	lits := make([]Literal, 0, left.Len()+right.Len())
	lits = append(lits, left.literals...)
	lits = append(lits, right.literals...)
	return NewSeq(lits...)
}

// concat extends each complete literal of left by the prefixes of right.
// Incomplete literals are already prefixes of the whole concatenation and
// pass through unchanged.
func (e *Extractor) concat(left *Seq, right *syntax.Node) *Seq {
	if !left.IsFinite() {
		return left
	}

	anyComplete := false
	for _, lit := range left.literals {
		if lit.Complete {
			anyComplete = true
			break
		}
	}
	if !anyComplete {
		return left
	}

	suffixes := e.ExtractPrefixes(right)
	if !suffixes.IsFinite() {
		return markIncomplete(left)
	}

	var lits []Literal
	for _, l := range left.literals {
		if !l.Complete {
			lits = append(lits, l)
			continue
		}
		for _, r := range suffixes.literals {
			if len(lits) >= e.config.MaxLiterals {
				// Too many combinations: fall back to the left prefixes,
				// which still begin every match.
				return markIncomplete(left)
			}
			lits = append(lits, e.join(l.Bytes, r))
		}
	}
	return NewSeq(lits...)
}

// join appends r to prefix, truncating to MaxLiteralLen.
func (e *Extractor) join(prefix []byte, r Literal) Literal {
	b := make([]byte, 0, len(prefix)+len(r.Bytes))
	b = append(b, prefix...)
	b = append(b, r.Bytes...)
	if len(b) > e.config.MaxLiteralLen {
		return NewLiteral(b[:e.config.MaxLiteralLen], false)
	}
	return NewLiteral(b, r.Complete)
}

// expandClass expands a bracket expression's members to single-byte
// literals, or returns an empty Seq when there are more than MaxClassSize
// distinct members.
func (e *Extractor) expandClass(members []byte) *Seq {
	var seen [256]bool
	var lits []Literal
	for _, b := range members {
		if seen[b] {
			continue
		}
		seen[b] = true
		lits = append(lits, NewLiteral([]byte{b}, true))
		if len(lits) > e.config.MaxClassSize || len(lits) > e.config.MaxLiterals {
			return NewSeq()
		}
	}
	return NewSeq(lits...)
}

// markIncomplete returns a copy of s with every literal marked incomplete.
func markIncomplete(s *Seq) *Seq {
	lits := make([]Literal, s.Len())
	for i, lit := range s.literals {
		lits[i] = NewLiteral(lit.Bytes, false)
	}
	return NewSeq(lits...)
}

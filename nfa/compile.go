package nfa

import (
	"errors"
	"fmt"

	"github.com/coregx/egrep/syntax"
)

// Compiler lowers syntax.Node pattern trees into Thompson NFAs.
type Compiler struct {
	builder   *Builder
	maxStates int
}

// DefaultMaxStates is the state limit used by NewCompiler.
const DefaultMaxStates = 1 << 16

// NewCompiler creates a new NFA compiler limited to DefaultMaxStates states.
func NewCompiler() *Compiler {
	return NewCompilerWithLimit(DefaultMaxStates)
}

// NewCompilerWithLimit creates a compiler whose NFAs hold at most maxStates
// states. A limit of zero or less only caps at the StateID range.
func NewCompilerWithLimit(maxStates int) *Compiler {
	return &Compiler{maxStates: maxStates}
}

// Compile is shorthand for NewCompiler().Compile(re, flags).
func Compile(re *syntax.Node, flags syntax.Flags) (*NFA, error) {
	return NewCompiler().Compile(re, flags)
}

// CompileWithLimit is shorthand for NewCompilerWithLimit(maxStates).Compile(re, flags).
func CompileWithLimit(re *syntax.Node, flags syntax.Flags, maxStates int) (*NFA, error) {
	return NewCompilerWithLimit(maxStates).Compile(re, flags)
}

// Compile lowers a parsed pattern tree into an NFA.
//
// Lowering is total for trees produced by syntax.Parse; the error return only
// fires for hand-built trees that break the Node invariants.
func (c *Compiler) Compile(re *syntax.Node, flags syntax.Flags) (*NFA, error) {
	c.builder = NewBuilder()
	c.builder.SetLimit(c.maxStates)

	match := c.builder.AddMatch()
	start, err := c.compile(re, match)
	if err != nil {
		if errors.Is(err, ErrTooManyStates) {
			// The tree can be huge; don't render it.
			return nil, &CompileError{Err: err}
		}
		return nil, &CompileError{Pattern: re.String(), Err: err}
	}
	c.builder.SetStart(start)

	nfa, err := c.builder.Build(
		WithAnchored(flags.Anchored),
		WithPrefixOK(flags.PrefixOK),
	)
	if err != nil {
		return nil, &CompileError{Err: err}
	}
	return nfa, nil
}

// compile emits the states for re so that a successful match of re continues
// in dest, and returns the entry state of those states.
func (c *Compiler) compile(re *syntax.Node, dest StateID) (StateID, error) {
	if c.builder.Overflowed() {
		return InvalidState, ErrTooManyStates
	}
	if re == nil {
		return InvalidState, fmt.Errorf("%w: nil node", ErrInvalidPattern)
	}
	if err := checkArity(re); err != nil {
		return InvalidState, err
	}

	switch re.Op {
	case syntax.OpLiteral:
		return c.builder.AddByteSet(SingletonByteSet(re.Byte), dest), nil

	case syntax.OpClass:
		var set ByteSet
		for _, b := range re.Class {
			set.Insert(b)
		}
		if re.Negated {
			set = set.Complement()
		}
		return c.builder.AddByteSet(set, dest), nil

	case syntax.OpWild:
		return c.builder.AddByteSet(FullByteSet(), dest), nil

	case syntax.OpEmpty:
		return dest, nil

	case syntax.OpConcat:
		second, err := c.compile(re.Sub[1], dest)
		if err != nil {
			return InvalidState, err
		}
		return c.compile(re.Sub[0], second)

	case syntax.OpAlternate:
		left, err := c.compile(re.Sub[0], dest)
		if err != nil {
			return InvalidState, err
		}
		right, err := c.compile(re.Sub[1], dest)
		if err != nil {
			return InvalidState, err
		}
		return c.builder.AddSplit(left, right), nil

	case syntax.OpRepeat, syntax.OpNonGreedyRepeat:
		return c.compileLoop(re.Sub[0], dest, re.Op == syntax.OpRepeat)

	case syntax.OpSave:
		exit := c.builder.AddSave(1, dest)
		body, err := c.compile(re.Sub[0], exit)
		if err != nil {
			return InvalidState, err
		}
		return c.builder.AddSave(0, body), nil

	default:
		return InvalidState, fmt.Errorf("%w: unknown op %v", ErrInvalidPattern, re.Op)
	}
}

// compileLoop emits a zero-or-more loop around body. The loop entry is a
// Split allocated before the body so the body can continue back into it.
// A greedy loop prefers re-entering the body; a lazy one prefers dest.
func (c *Compiler) compileLoop(body *syntax.Node, dest StateID, greedy bool) (StateID, error) {
	entry := c.builder.AddSplit(InvalidState, InvalidState)
	if entry == InvalidState {
		return InvalidState, ErrTooManyStates
	}
	inner, err := c.compile(body, entry)
	if err != nil {
		return InvalidState, err
	}
	if greedy {
		err = c.builder.PatchSplit(entry, inner, dest)
	} else {
		err = c.builder.PatchSplit(entry, dest, inner)
	}
	if err != nil {
		return InvalidState, err
	}
	return entry, nil
}

func checkArity(re *syntax.Node) error {
	want := 0
	switch re.Op {
	case syntax.OpConcat, syntax.OpAlternate:
		want = 2
	case syntax.OpRepeat, syntax.OpNonGreedyRepeat, syntax.OpSave:
		want = 1
	}
	if len(re.Sub) != want {
		return fmt.Errorf("%w: %v with %d operands", ErrInvalidPattern, re.Op, len(re.Sub))
	}
	return nil
}

package meta

import (
	"errors"

	"github.com/coregx/egrep/literal"
	"github.com/coregx/egrep/nfa"
	"github.com/coregx/egrep/prefilter"
	"github.com/coregx/egrep/syntax"
)

// Compile compiles a pattern string into an executable Engine.
//
// Steps:
//  1. Parse pattern into a syntax.Node tree and flags
//  2. Compile the tree to a Thompson NFA
//  3. Build a prefilter from prefix literals or leading bytes (if the pattern is unanchored)
//  4. Select strategy and create the Engine
//
// Example:
//
//	engine, err := meta.Compile("hello.*world")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Engine, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.MinLiteralLen = 2
//	engine, err := meta.CompileWithConfig("(ab|cd)*e", config)
func CompileWithConfig(pattern string, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	re, flags, err := syntax.ParseWithLimit(pattern, config.MaxStates)
	if err != nil {
		return nil, &CompileError{
			Pattern: pattern,
			Err:     err,
		}
	}

	engine, err := CompileTree(re, flags, config)
	if err != nil {
		return nil, &CompileError{
			Pattern: pattern,
			Err:     err,
		}
	}
	engine.pattern = pattern
	return engine, nil
}

// CompileTree builds an Engine from an already parsed pattern tree.
// The tree is retained, not copied.
func CompileTree(re *syntax.Node, flags syntax.Flags, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	nfaEngine, err := nfa.CompileWithLimit(re, flags, config.MaxStates)
	if err != nil {
		return nil, err
	}

	pf := buildPrefilter(re, flags, config)
	strategy := SelectStrategy(flags, pf, config)
	if strategy != UsePrefilter {
		pf = nil
	}

	vm := nfa.NewPikeVM(nfaEngine)
	return &Engine{
		nfa:       nfaEngine,
		pikevm:    vm,
		prefilter: pf,
		strategy:  strategy,
		tree:      re,
		flags:     flags,
		config:    config,
		pool:      newSearchStatePool(vm),
	}, nil
}

// maxFirstBytes bounds the leading byte set of a byte-set prefilter. Larger
// sets match most of any haystack.
const maxFirstBytes = 64

// buildPrefilter extracts the prefix literals of an unanchored pattern body
// and builds a prefilter from them. When the literal set is infinite, the
// bytes that can begin a match are used instead. Returns nil when neither
// applies.
func buildPrefilter(re *syntax.Node, flags syntax.Flags, config Config) prefilter.Prefilter {
	if !config.EnablePrefilter || flags.Anchored {
		return nil
	}

	body := unanchoredBody(re)
	if body == nil {
		return nil
	}

	extractorConfig := literal.DefaultConfig()
	extractorConfig.MaxLiterals = config.MaxLiterals
	prefixes := literal.New(extractorConfig).ExtractPrefixes(body)
	if prefixes.IsFinite() {
		return prefilter.NewBuilder(prefixes, config.MinLiteralLen).Build()
	}

	set, ok := nfa.FirstBytes(body)
	if !ok || set.Len() > maxFirstBytes {
		return nil
	}
	return prefilter.NewByteSet(set.Bytes(), false)
}

// unanchoredBody returns the Save node of a tree of the form
// Concat(NonGreedyRepeat(Wild), Save(body)), or nil for any other shape.
func unanchoredBody(re *syntax.Node) *syntax.Node {
	if re == nil || re.Op != syntax.OpConcat || len(re.Sub) != 2 {
		return nil
	}
	loop, body := re.Sub[0], re.Sub[1]
	if loop.Op != syntax.OpNonGreedyRepeat || len(loop.Sub) != 1 || loop.Sub[0].Op != syntax.OpWild {
		return nil
	}
	if body.Op != syntax.OpSave {
		return nil
	}
	return body
}

// CompileError represents a pattern compilation error.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface.
// Syntax errors are returned as-is; they already name the pattern.
func (e *CompileError) Error() string {
	var syntaxErr *syntax.Error
	if errors.As(e.Err, &syntaxErr) {
		return e.Err.Error()
	}
	return "egrep: compiling " + e.Pattern + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}

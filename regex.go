// Package egrep provides a small POSIX-ERE-like regular expression engine
// and the matcher behind the egrep command.
//
// The supported syntax is deliberately restricted:
//   - Literal bytes, '.' (any byte) and bracket lists like [abc] or [^abc]
//   - Grouping with ( ), alternation with |
//   - Repetition with *, + and ?
//   - A leading ^ and a trailing $ as anchors on the whole pattern
//   - A backslash escapes a metacharacter or another backslash
//
// Matching is byte oriented and runs in O(pattern * input) time: patterns
// compile to a Thompson NFA executed by a Pike VM, with a literal prefilter
// in front of it when every match must begin with one of a few literals.
//
// Basic usage:
//
//	m, err := egrep.Compile(`(foo|bar)[0123456789]+`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if m.MatchString("test foo123 end") {
//	    fmt.Println("matched!")
//	}
//
//	match := m.FindString("test foo123 end")
//	fmt.Println(match.Start(), match.End()) // 5 11
//
// A Matcher is safe for concurrent use by multiple goroutines.
package egrep

import (
	"github.com/coregx/egrep/meta"
	"github.com/coregx/egrep/syntax"
)

// Matcher represents a compiled pattern.
//
// Example:
//
//	m := egrep.MustCompile(`hello`)
//	if m.Match([]byte("hello world")) {
//	    println("matched!")
//	}
type Matcher struct {
	engine  *meta.Engine
	pattern string
}

// Match is a located match: a half-open byte range of the haystack.
type Match = meta.Match

// Compile compiles a pattern.
// Returns an error if the pattern is invalid; the error unwraps to one of the
// syntax package sentinels (syntax.ErrMissingParen and so on).
//
// Example:
//
//	m, err := egrep.Compile(`^ab*c$`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Matcher, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile compiles a pattern and panics if it fails.
//
// This is useful for patterns known to be valid at compile time.
func MustCompile(pattern string) *Matcher {
	m, err := Compile(pattern)
	if err != nil {
		panic("egrep: Compile(`" + pattern + "`): " + err.Error())
	}
	return m
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := egrep.DefaultConfig()
//	config.EnablePrefilter = false
//	m, err := egrep.CompileWithConfig("foo|bar", config)
func CompileWithConfig(pattern string, config meta.Config) (*Matcher, error) {
	engine, err := meta.CompileWithConfig(pattern, config)
	if err != nil {
		return nil, err
	}

	return &Matcher{
		engine:  engine,
		pattern: pattern,
	}, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() meta.Config {
	return meta.DefaultConfig()
}

// QuoteMeta returns a string that escapes all pattern metacharacters
// inside the argument text; the returned string is a pattern matching
// the literal text.
//
// Example:
//
//	escaped := egrep.QuoteMeta("1+1=2?")
//	// escaped = `1\+1=2\?`
func QuoteMeta(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, len(s)+n)
	j := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i]) {
			buf[j] = '\\'
			j++
		}
		buf[j] = s[i]
		j++
	}
	return string(buf)
}

func isSpecial(c byte) bool {
	return c == '\\' || syntax.IsMeta(c)
}

// Match reports whether b contains a match of the pattern.
// A pattern ending in '$' must match at the end of b.
func (m *Matcher) Match(b []byte) bool {
	return m.engine.IsMatch(b)
}

// MatchString reports whether s contains a match of the pattern.
func (m *Matcher) MatchString(s string) bool {
	return m.Match([]byte(s))
}

// Find returns the leftmost match in b, or nil if there is none.
// Among matches with the same start, the left alternative wins and
// repetition is greedy.
//
// Example:
//
//	m := egrep.MustCompile(`a|ab`)
//	match := m.Find([]byte("xab"))
//	// match.Start() == 1, match.End() == 2
func (m *Matcher) Find(b []byte) *Match {
	return m.engine.Find(b)
}

// FindString is like Find but for a string.
func (m *Matcher) FindString(s string) *Match {
	return m.Find([]byte(s))
}

// FindIndex returns a two-element slice holding the bounds of the leftmost
// match in b, or nil if there is none.
func (m *Matcher) FindIndex(b []byte) []int {
	start, end, found := m.engine.FindIndices(b)
	if !found {
		return nil
	}
	return []int{start, end}
}

// FindStringIndex is like FindIndex but for a string.
func (m *Matcher) FindStringIndex(s string) []int {
	return m.FindIndex([]byte(s))
}

// String returns the source pattern.
func (m *Matcher) String() string {
	return m.pattern
}

// PrefixOK reports whether a match may end before the end of the haystack.
// It is false for patterns ending in '$'.
func (m *Matcher) PrefixOK() bool {
	return m.engine.PrefixOK()
}

// Anchored reports whether the pattern starts with '^'.
func (m *Matcher) Anchored() bool {
	return m.engine.IsStartAnchored()
}

// Engine returns the underlying meta engine, for inspection (strategy,
// automaton dump, statistics).
func (m *Matcher) Engine() *meta.Engine {
	return m.engine
}

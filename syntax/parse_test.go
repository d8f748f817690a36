package syntax

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lit(c byte) *Node { return Literal(c) }

func unanchored(n *Node) *Node {
	return Concat(NonGreedyRepeat(Wild()), Save(n))
}

func TestParse_Shapes(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		want     *Node
		prefixOK bool
	}{
		{"simple concat", "^abc$",
			Save(Concat(Concat(lit('a'), lit('b')), lit('c'))), false},
		{"simple parens", "^a(bc)$",
			Save(Concat(lit('a'), Concat(lit('b'), lit('c')))), false},
		{"simple alter", "^a|b$",
			Save(Alternate(lit('a'), lit('b'))), false},
		{"alter parens", "^a|(bc)$",
			Save(Alternate(lit('a'), Concat(lit('b'), lit('c')))), false},
		{"nested parens left", "^a|(b(cd)|e)$",
			Save(Alternate(lit('a'),
				Alternate(Concat(lit('b'), Concat(lit('c'), lit('d'))), lit('e')))), false},
		{"nested parens right", "^a|(b(cd|e))$",
			Save(Alternate(lit('a'),
				Concat(lit('b'), Alternate(Concat(lit('c'), lit('d')), lit('e'))))), false},
		{"alternation folds left", "^a|b|c",
			Save(Alternate(Alternate(lit('a'), lit('b')), lit('c'))), true},
		{"unanchored", "a", unanchored(lit('a')), true},
		{"unanchored front", "a$", unanchored(lit('a')), false},
		{"unanchored back", "^a", Save(lit('a')), true},
		{"char class", "^[abcd]$", Save(Class(false, []byte("abcd"))), false},
		{"char class bracket", "^[]abcd]$", Save(Class(false, []byte("]abcd"))), false},
		{"negated class", "^[^abcd]$", Save(Class(true, []byte("abcd"))), false},
		{"negated class bracket", "^[^]123]$", Save(Class(true, []byte("]123"))), false},
		{"class without ranges", "^[a-c]", Save(Class(false, []byte("a-c"))), true},
		{"class keeps backslash", `^[\.]`, Save(Class(false, []byte(`\.`))), true},
		{"star", "^a*", Save(Repeat(lit('a'))), true},
		{"plus", "^a+", Save(Concat(lit('a'), Repeat(lit('a')))), true},
		{"quest", "^a?", Save(Alternate(lit('a'), Empty())), true},
		{"stacked suffixes", "^a*?", Save(Repeat(lit('a'))), true},
		{"wild", "^.", Save(Wild()), true},
		{"empty pattern", "", unanchored(Empty()), true},
		{"only start anchor", "^", Save(Empty()), true},
		{"only end anchor", "$", unanchored(Empty()), false},
		{"both anchors", "^$", Save(Empty()), false},
		{"empty group", "^()", Save(Empty()), true},
		{"empty alternative", "^a|", Save(Alternate(lit('a'), Empty())), true},
		{"caret not at start is literal", "a^", unanchored(Concat(lit('a'), lit('^'))), true},
		{"caret in group is literal", "^(^a)", Save(Concat(lit('^'), lit('a'))), true},
		{"dollar not at end is literal", "^a$b", Save(Concat(Concat(lit('a'), lit('$')), lit('b'))), true},
		{"dollar in group is literal", "^(a$)", Save(Concat(lit('a'), lit('$'))), true},
		{"escaped dollar at end", `^a\$`, Save(Concat(lit('a'), lit('$'))), true},
		{"escaped meta", `^\.\*\[\]\(\)\|\?\+\^`, nil, true},
		{"escaped backslash", `^\\`, Save(lit('\\')), true},
		{"braces are literal", "^a{2}", Save(Concat(Concat(Concat(lit('a'), lit('{')), lit('2')), lit('}'))), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, flags, err := Parse(tt.pattern)
			require.NoError(t, err)
			if tt.want != nil {
				assert.True(t, tt.want.Equal(got), "Parse(%q) = %s, want %s", tt.pattern, got, tt.want)
			}
			assert.Equal(t, tt.prefixOK, flags.PrefixOK)
			assert.Equal(t, len(tt.pattern) > 0 && tt.pattern[0] == '^', flags.Anchored)
		})
	}
}

func TestParse_EscapedMetacharacters(t *testing.T) {
	re, _, err := Parse(`^\.\*\[\]\(\)\|\?\+\^\$x`)
	require.NoError(t, err)

	// Walk the left-folded concatenation back to front.
	var got []byte
	n := re.Sub[0]
	for n.Op == OpConcat {
		require.Equal(t, OpLiteral, n.Sub[1].Op)
		got = append([]byte{n.Sub[1].Byte}, got...)
		n = n.Sub[0]
	}
	require.Equal(t, OpLiteral, n.Op)
	got = append([]byte{n.Byte}, got...)
	assert.Equal(t, `.*[]()|?+^$x`, string(got))
}

func TestParse_EscapedBackslash(t *testing.T) {
	re, _, err := Parse(`^a\\b`)
	require.NoError(t, err)
	want := Save(Concat(Concat(lit('a'), lit('\\')), lit('b')))
	assert.True(t, want.Equal(re), "got %s", re)

	// Only metacharacters and the backslash itself may follow a backslash.
	_, _, err = Parse(`\\\n`)
	assert.True(t, errors.Is(err, ErrInvalidEscape), "got %v", err)
}

func TestParse_PlusClonesOperand(t *testing.T) {
	re, _, err := Parse("^(ab)+")
	require.NoError(t, err)

	body := re.Sub[0]
	require.Equal(t, OpConcat, body.Op)
	first, loop := body.Sub[0], body.Sub[1]
	require.Equal(t, OpRepeat, loop.Op)
	assert.True(t, first.Equal(loop.Sub[0]))
	assert.NotSame(t, first, loop.Sub[0], "X+ must not share X between both positions")
}

func TestParse_StackedRepetition(t *testing.T) {
	a := lit('a')
	plus := Concat(a, Repeat(a.Clone()))
	tests := []struct {
		pattern string
		want    *Node
	}{
		{"^a**", Repeat(a)},
		{"^a++", plus},
		{"^a??", Alternate(a, Empty())},
		{"^a+*", Repeat(a)},
		{"^a*+", Repeat(a)},
		{"^a?*", Repeat(a)},
		{"^a+?", Repeat(a)},
		{"^a?+", Repeat(a)},
		{"^(a+)+", plus},
		{"^((a+)+)+", plus},
		{"^(a*)?", Repeat(a)},
		{"^(ab)++", Concat(Concat(a, lit('b')), Repeat(Concat(a, lit('b'))))},
		{"^a" + strings.Repeat("+", 40), plus},
		{"^" + strings.Repeat("(", 30) + "a" + strings.Repeat(")+", 30), plus},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			re, _, err := Parse(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, Save(tt.want).String(), re.String())
		})
	}
}

func TestParse_TooLarge(t *testing.T) {
	// Each level repeats everything inside it, and (Xb)+ does not collapse.
	nested := "a"
	for i := 0; i < 30; i++ {
		nested = "(" + nested + "b)+"
	}

	_, _, err := Parse(nested)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPatternTooLarge), "got %v", err)
	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Less(t, perr.Pos, len(nested))

	long := strings.Repeat("x", 100)
	_, _, err = ParseWithLimit(long, 50)
	assert.True(t, errors.Is(err, ErrPatternTooLarge), "got %v", err)

	_, _, err = ParseWithLimit(long, 0)
	assert.NoError(t, err)

	_, _, err = ParseWithLimit("(ab)+(ab)+", 1000)
	assert.NoError(t, err)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		pattern string
		err     error
		pos     int
	}{
		{"(", ErrMissingParen, 0},
		{"ab(cd", ErrMissingParen, 2},
		{"a(b(c)", ErrMissingParen, 1},
		{"(a$", ErrMissingParen, 0},
		{"[", ErrMissingBracket, 0},
		{"a[bc", ErrMissingBracket, 1},
		{"[]", ErrMissingBracket, 0},
		{"[^]", ErrMissingBracket, 0},
		{`\`, ErrInvalidEscape, 0},
		{`ab\`, ErrInvalidEscape, 2},
		{`\a`, ErrInvalidEscape, 0},
		{`x\d`, ErrInvalidEscape, 1},
		{")", ErrUnexpectedParen, 0},
		{"ab)c", ErrUnexpectedParen, 2},
		{"]", ErrUnexpectedBracket, 0},
		{"(a])", ErrUnexpectedBracket, 2},
		{"*", ErrMissingRepeatArgument, 0},
		{"a|+", ErrMissingRepeatArgument, 2},
		{"(?a)", ErrMissingRepeatArgument, 1},
		{"^*", ErrMissingRepeatArgument, 1},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			re, _, err := Parse(tt.pattern)
			require.Error(t, err)
			assert.Nil(t, re)
			assert.True(t, errors.Is(err, tt.err), "got %v, want %v", err, tt.err)

			var perr *Error
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.pos, perr.Pos)
			assert.Equal(t, tt.pattern, perr.Pattern)
			assert.Contains(t, perr.Error(), tt.err.Error())
		})
	}
}

func TestNode_String(t *testing.T) {
	re, _ := MustParse("^a(bc)$")
	assert.Equal(t, "Save(Concat(Literal('a'),Concat(Literal('b'),Literal('c'))))", re.String())

	re, _ = MustParse("[^x.]?")
	assert.Equal(t, `Concat(NonGreedyRepeat(Wild),Save(Or(Class(^"x."),Empty)))`, re.String())
}

func TestNode_CloneIsDeep(t *testing.T) {
	orig := Concat(Class(false, []byte("ab")), Repeat(lit('c')))
	c := orig.Clone()
	require.True(t, orig.Equal(c))

	c.Sub[0].Class[0] = 'z'
	c.Sub[1].Sub[0].Byte = 'q'
	assert.Equal(t, byte('a'), orig.Sub[0].Class[0])
	assert.Equal(t, byte('c'), orig.Sub[1].Sub[0].Byte)
	assert.False(t, orig.Equal(c))
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("(") })
}

func FuzzParse(f *testing.F) {
	for _, seed := range []string{"", "^a(bc)$", "[]a]|b*", `\.\\`, "((a|b)+c?)*$", "[^"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, pattern string) {
		re, _, err := Parse(pattern)
		if err != nil {
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("Parse(%q) returned %T, want *Error", pattern, err)
			}
			if perr.Pos < 0 || perr.Pos >= len(pattern) {
				t.Fatalf("Parse(%q) error position %d out of range", pattern, perr.Pos)
			}
			return
		}
		if re == nil || !re.Equal(re.Clone()) {
			t.Fatalf("Parse(%q) produced an inconsistent tree", pattern)
		}
	})
}

package meta

import (
	"errors"
	"strings"
	"testing"

	"github.com/coregx/egrep/nfa"
	"github.com/coregx/egrep/syntax"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		field   string
		wantErr bool
	}{
		{"default", func(*Config) {}, "", false},
		{"min literal len zero", func(c *Config) { c.MinLiteralLen = 0 }, "MinLiteralLen", true},
		{"min literal len too large", func(c *Config) { c.MinLiteralLen = 65 }, "MinLiteralLen", true},
		{"max literals zero", func(c *Config) { c.MaxLiterals = 0 }, "MaxLiterals", true},
		{"max literals too large", func(c *Config) { c.MaxLiterals = 1001 }, "MaxLiterals", true},
		{"max states too small", func(c *Config) { c.MaxStates = 15 }, "MaxStates", true},
		{"max states too large", func(c *Config) { c.MaxStates = 1<<24 + 1 }, "MaxStates", true},
		{"max states checked without prefilter", func(c *Config) {
			c.EnablePrefilter = false
			c.MaxStates = 0
		}, "MaxStates", true},
		{"prefilter disabled skips ranges", func(c *Config) {
			c.EnablePrefilter = false
			c.MinLiteralLen = 0
			c.MaxLiterals = 0
		}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(&config)

			err := config.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var ce *ConfigError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.field, ce.Field)
			assert.Contains(t, err.Error(), "egrep: invalid config: "+tt.field)
		})
	}
}

func TestCompileWithConfig_InvalidConfig(t *testing.T) {
	config := DefaultConfig()
	config.MaxLiterals = -1

	engine, err := CompileWithConfig("foo", config)
	assert.Nil(t, engine)
	var ce *ConfigError
	assert.True(t, errors.As(err, &ce))
}

func TestConfig_MinLiteralLen(t *testing.T) {
	config := DefaultConfig()
	config.MinLiteralLen = 4

	engine, err := CompileWithConfig("abc", config)
	require.NoError(t, err)
	assert.Equal(t, UseNFA, engine.Strategy())

	engine, err = CompileWithConfig("abcd", config)
	require.NoError(t, err)
	assert.Equal(t, UsePrefilter, engine.Strategy())
}

func TestConfig_MaxLiterals(t *testing.T) {
	config := DefaultConfig()
	config.MaxLiterals = 2

	// Too many literals: fall back to the leading byte set.
	engine, err := CompileWithConfig("a|b|c", config)
	require.NoError(t, err)
	assert.Equal(t, UsePrefilter, engine.Strategy())
	assert.Equal(t, `byteset("abc")`, engine.Prefilter().String())
	assert.True(t, engine.IsMatch([]byte("xc")))
}

func TestConfig_MaxStates(t *testing.T) {
	config := DefaultConfig()
	config.MaxStates = 64

	_, err := CompileWithConfig(strings.Repeat("x", 100), config)
	require.Error(t, err)
	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.True(t, errors.Is(err, syntax.ErrPatternTooLarge), "got %v", err)

	// The tree fits but its NFA does not.
	re, flags, err := syntax.ParseWithLimit(strings.Repeat("x", 60), 0)
	require.NoError(t, err)
	_, err = CompileTree(re, flags, config)
	assert.True(t, errors.Is(err, nfa.ErrTooManyStates), "got %v", err)

	engine, err := CompileWithConfig(strings.Repeat("x", 20), config)
	require.NoError(t, err)
	assert.True(t, engine.IsMatch([]byte(strings.Repeat("x", 20))))
}

func TestCompile_NestedRepetition(t *testing.T) {
	engine, err := Compile("a" + strings.Repeat("+", 40))
	require.NoError(t, err)
	assert.True(t, engine.IsMatch([]byte("aaa")))
	assert.False(t, engine.IsMatch([]byte("bbb")))

	engine, err = Compile(strings.Repeat("(", 30) + "a" + strings.Repeat(")+", 30))
	require.NoError(t, err)
	assert.True(t, engine.IsMatch([]byte("xa")))

	nested := "a"
	for i := 0; i < 30; i++ {
		nested = "(" + nested + "b)+"
	}
	_, err = Compile(nested)
	var ce *CompileError
	require.True(t, errors.As(err, &ce), "got %v", err)
	assert.True(t, errors.Is(err, syntax.ErrPatternTooLarge), "got %v", err)
}

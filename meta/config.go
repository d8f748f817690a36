// Package meta implements the engine that ties the pieces of a compiled
// pattern together.
//
// The engine coordinates two components:
//   - Prefilter: fast literal-based rejection and skipping (optional)
//   - NFA (PikeVM): the automaton that decides every match
//
// Strategy selection is based on:
//   - Anchoring (a leading '^' leaves nothing to skip)
//   - Prefilter availability (a finite prefix literal set, or a small set of
//     leading bytes, enables it)
//
// The meta-engine provides the API the root package wraps, hiding prefilter
// selection and per-search state pooling from users.
package meta

import "github.com/coregx/egrep/nfa"

// Config controls meta-engine behavior and performance characteristics.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.EnablePrefilter = false // Force NFA-only execution
//	engine, err := meta.CompileWithConfig("foo|bar", config)
type Config struct {
	// EnablePrefilter enables literal-based prefiltering.
	// When false, no prefilter is used even if literals are available.
	// Default: true
	EnablePrefilter bool

	// MinLiteralLen is the minimum length for prefilter literals.
	// Shorter literals may have too many false positives.
	// Default: 1
	MinLiteralLen int

	// MaxLiterals limits the number of literals to extract for prefiltering.
	// Patterns whose prefix set is larger get no prefilter.
	// Default: 64
	MaxLiterals int

	// MaxStates bounds both the parsed tree and the compiled NFA. Patterns
	// that would exceed it fail with nfa.ErrTooManyStates or
	// syntax.ErrPatternTooLarge.
	// Default: nfa.DefaultMaxStates
	MaxStates int
}

// DefaultConfig returns a configuration with sensible defaults.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.MinLiteralLen = 3 // Skip single-byte prefilters
func DefaultConfig() Config {
	return Config{
		EnablePrefilter: true,
		MinLiteralLen:   1, // Allow single-byte prefilters (memchr)
		MaxLiterals:     64,
		MaxStates:       nfa.DefaultMaxStates,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of range.
//
// Valid ranges:
//   - MaxStates: 16 to 16,777,216
//   - MinLiteralLen: 1 to 64 (only when EnablePrefilter is set)
//   - MaxLiterals: 1 to 1,000 (only when EnablePrefilter is set)
//
// Example:
//
//	config := meta.Config{EnablePrefilter: true} // MinLiteralLen 0: invalid!
//	if err := config.Validate(); err != nil {
//	    log.Fatal(err)
//	}
func (c Config) Validate() error {
	if c.MaxStates < 16 || c.MaxStates > 1<<24 {
		return &ConfigError{
			Field:   "MaxStates",
			Message: "must be between 16 and 16,777,216",
		}
	}

	if !c.EnablePrefilter {
		return nil
	}

	if c.MinLiteralLen < 1 || c.MinLiteralLen > 64 {
		return &ConfigError{
			Field:   "MinLiteralLen",
			Message: "must be between 1 and 64",
		}
	}
	if c.MaxLiterals < 1 || c.MaxLiterals > 1_000 {
		return &ConfigError{
			Field:   "MaxLiterals",
			Message: "must be between 1 and 1,000",
		}
	}

	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "egrep: invalid config: " + e.Field + ": " + e.Message
}

package fuzzyfa

import (
	"errors"

	"github.com/coregx/fuzzyfa/levenshtein"
)

// Config controls how matchers and sets are built.
//
// Example:
//
//	config := fuzzyfa.DefaultConfig()
//	config.Distance = 2
//	m, err := fuzzyfa.CompileWithConfig("kitten", config)
type Config struct {
	// Distance is the maximum edit distance (insertions, deletions and
	// substitutions) between a pattern and an accepted word.
	// Default: 1
	Distance int

	// MaxPatternLen bounds the pattern length, in UTF-16 code units, for
	// which a Set reuses cached automaton shapes.
	// Default: 64
	MaxPatternLen int

	// EnablePrefilter lets a Set reject words that share no exact piece
	// with any pattern before running the automaton. It is silently off
	// when some pattern is shorter than Distance+1.
	// Default: true
	EnablePrefilter bool

	// UseCache builds Set automata through a shape cache instead of
	// running subset construction for every pattern.
	// Default: true
	UseCache bool
}

// DefaultConfig returns a configuration for edit distance 1 with the cache
// and the prefilter enabled.
func DefaultConfig() Config {
	return Config{
		Distance:        1,
		MaxPatternLen:   64,
		EnablePrefilter: true,
		UseCache:        true,
	}
}

// Validate checks that Distance is in [0, levenshtein.MaxDistance] and
// MaxPatternLen in [0, levenshtein.MaxPatternLenLimit].
func (c Config) Validate() error {
	err := c.cacheConfig().Validate()
	var ce *levenshtein.ConfigError
	if errors.As(err, &ce) {
		return &ConfigError{Field: ce.Field, Message: ce.Message}
	}
	return err
}

func (c Config) cacheConfig() levenshtein.Config {
	return levenshtein.Config{
		Distance:      c.Distance,
		MaxPatternLen: c.MaxPatternLen,
	}
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "fuzzyfa: invalid config: " + e.Field + ": " + e.Message
}

package levenshtein

import "strconv"

// Config configures a Cache.
type Config struct {
	// Distance is the maximum edit distance of every automaton the cache
	// returns.
	//
	// Default: 1
	Distance int

	// MaxPatternLen is the longest pattern, in UTF-16 code units, whose
	// automaton shape is cached. Longer patterns are built directly.
	//
	// Default: 64
	MaxPatternLen int
}

// Limits accepted by Validate.
const (
	// MaxDistance is the largest supported edit distance. Automaton size
	// grows exponentially with it.
	MaxDistance = 8

	// MaxPatternLenLimit is the largest accepted MaxPatternLen.
	MaxPatternLenLimit = 1024
)

// DefaultConfig returns a configuration for distance 1 and patterns of up to
// 64 code units.
func DefaultConfig() Config {
	return Config{
		Distance:      1,
		MaxPatternLen: 64,
	}
}

// Validate checks that Distance is in [0, MaxDistance] and MaxPatternLen in
// [0, MaxPatternLenLimit].
func (c Config) Validate() error {
	if c.Distance < 0 || c.Distance > MaxDistance {
		return &ConfigError{
			Field:   "Distance",
			Message: "must be between 0 and " + strconv.Itoa(MaxDistance),
		}
	}
	if c.MaxPatternLen < 0 || c.MaxPatternLen > MaxPatternLenLimit {
		return &ConfigError{
			Field:   "MaxPatternLen",
			Message: "must be between 0 and " + strconv.Itoa(MaxPatternLenLimit),
		}
	}
	return nil
}

// WithDistance returns a copy of c with the given distance.
func (c Config) WithDistance(distance int) Config {
	c.Distance = distance
	return c
}

// WithMaxPatternLen returns a copy of c with the given cache bound.
func (c Config) WithMaxPatternLen(n int) Config {
	c.MaxPatternLen = n
	return c
}

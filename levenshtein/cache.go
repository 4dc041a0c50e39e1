// Package levenshtein serves Levenshtein automata from a cache of automaton
// shapes.
//
// Two Levenshtein DFAs of the same distance built for patterns of the same
// length are isomorphic when neither pattern repeats a character: they
// differ only in which character labels which edge. The Cache therefore
// builds one template per pattern length, over the placeholder alphabet
// 'a', 'b', 'c', ..., and serves a pattern by relabeling a copy of the
// template with the pattern's own characters. Patterns with a repeated
// character, or longer than the configured bound, are built directly.
//
// Example:
//
//	cache, _ := levenshtein.NewCache(levenshtein.DefaultConfig())
//	d := cache.Get("cat")  // builds the length-3 template
//	d.Test("cart")         // true
//	cache.Get("dog")       // reuses it
package levenshtein

import (
	"slices"
	"sync"

	"github.com/coregx/fuzzyfa/dfa"
	"github.com/coregx/fuzzyfa/internal/conv"
	"github.com/coregx/fuzzyfa/nfa"
)

// Stats counts how patterns were served.
type Stats struct {
	// Unique is the number of patterns served from a template.
	Unique uint64

	// Hits is the number of those that found their template already built.
	Hits uint64

	// Builds is the number of templates built.
	Builds uint64

	// Bypassed is the number of patterns built directly, because they
	// repeat a character or exceed MaxPatternLen.
	Bypassed uint64
}

// Cache maps pattern lengths to template automata.
//
// A Cache is safe for concurrent use. The automata it returns are fresh
// copies owned by the caller.
type Cache struct {
	mu        sync.Mutex
	config    Config
	templates map[int]*dfa.Array
	stats     Stats
}

// NewCache creates an empty cache. It returns a *ConfigError if config is
// invalid.
func NewCache(config Config) (*Cache, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Cache{
		config:    config,
		templates: make(map[int]*dfa.Array),
	}, nil
}

// Distance returns the edit distance of the automata the cache returns.
func (c *Cache) Distance() int {
	return c.config.Distance
}

// Get returns a deterministic automaton accepting the words within the
// configured distance of pattern. Panics if pattern contains U+0000.
func (c *Cache) Get(pattern string) *dfa.Array {
	return c.GetUnits(dfa.Units(pattern))
}

// GetUnits is Get over pre-encoded code units.
func (c *Cache) GetUnits(pattern []uint16) *dfa.Array {
	if slices.Contains(pattern, uint16(dfa.Any)) {
		panic("levenshtein: pattern contains U+0000")
	}
	if len(pattern) > c.config.MaxPatternLen || !UniqueLetters(pattern) {
		c.mu.Lock()
		c.stats.Bypassed++
		c.mu.Unlock()
		return nfa.LevenshteinUnits(pattern, c.config.Distance).DFA()
	}

	template := c.template(len(pattern))
	return dfa.Relabel(template, func(l dfa.Label) dfa.Label {
		return dfa.Label(pattern[l-placeholder(0)])
	})
}

// template returns the shared automaton for patterns of the given length,
// building it on first use.
func (c *Cache) template(length int) *dfa.Array {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.Unique++
	if t, ok := c.templates[length]; ok {
		c.stats.Hits++
		return t
	}

	placeholders := make([]uint16, length)
	for i := range placeholders {
		placeholders[i] = uint16(placeholder(i))
	}
	t := nfa.LevenshteinUnits(placeholders, c.config.Distance).DFA()
	c.templates[length] = t
	c.stats.Builds++
	return t
}

// Len returns the number of cached templates.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.templates)
}

// Stats returns a snapshot of the counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// placeholder is the template label standing for pattern position i.
func placeholder(i int) dfa.Label {
	return dfa.Label(conv.IntToUint16('a' + i))
}

// UniqueLetters reports whether no code unit occurs twice in units.
func UniqueLetters(units []uint16) bool {
	if len(units) <= 64 {
		for i := 1; i < len(units); i++ {
			if slices.Contains(units[:i], units[i]) {
				return false
			}
		}
		return true
	}
	seen := make(map[uint16]struct{}, len(units))
	for _, u := range units {
		if _, dup := seen[u]; dup {
			return false
		}
		seen[u] = struct{}{}
	}
	return true
}

package fuzzyfa

import (
	"errors"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/coregx/fuzzyfa/dfa"
	"github.com/coregx/fuzzyfa/levenshtein"
	"github.com/coregx/fuzzyfa/nfa"
	"github.com/coregx/fuzzyfa/prefilter"
)

// Set is a dictionary of patterns answering which of them lie within the
// configured distance of a word.
//
// All patterns are folded into one DFA by union, with each accepting state
// labeled by the indices of the patterns it accepts for. A lookup is a
// single pass over the word, optionally preceded by a pigeonhole prefilter
// scan.
//
// A Set is safe to use concurrently from multiple goroutines.
type Set struct {
	automaton *dfa.Array
	patterns  []string
	filter    prefilter.Prefilter
	config    Config
	cache     levenshtein.Stats
	stats     Stats
}

// Stats holds lookup counters of a Set.
type Stats struct {
	// Lookups is the number of Lookup and Match calls.
	Lookups uint64

	// PrefilterRejects is the number of lookups answered by the prefilter
	// without running the automaton.
	PrefilterRejects uint64

	// Matches is the number of lookups that found at least one pattern.
	Matches uint64
}

// NewSet builds a set from patterns. Pattern i is reported as index i.
func NewSet(patterns []string, config Config) (*Set, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	for _, p := range patterns {
		if strings.IndexByte(p, 0) >= 0 {
			return nil, ErrInvalidPattern
		}
	}

	s := &Set{
		automaton: dfa.New(),
		patterns:  slices.Clone(patterns),
		config:    config,
	}

	var cache *levenshtein.Cache
	if config.UseCache {
		var err error
		cache, err = levenshtein.NewCache(config.cacheConfig())
		if err != nil {
			return nil, err
		}
	}

	units := make([][]uint16, len(patterns))
	var composer dfa.Composer
	for i, p := range patterns {
		units[i] = dfa.Units(p)

		var d *dfa.Array
		if cache != nil {
			d = cache.GetUnits(units[i])
			for _, st := range d.Accepting() {
				d.AcceptValue(st, i)
			}
		} else {
			d = nfa.LevenshteinUnits(units[i], config.Distance, nfa.WithValue(i)).DFA()
		}
		composer.Union(s.automaton, d)
	}
	if cache != nil {
		s.cache = cache.Stats()
	}

	if config.EnablePrefilter {
		ph, err := prefilter.NewPigeonhole(units, config.Distance)
		switch {
		case err == nil:
			s.filter = ph
		case !errors.Is(err, prefilter.ErrShortPattern):
			return nil, err
		}
	}
	return s, nil
}

// Lookup returns the sorted indices of the patterns within distance of
// word, or nil if there are none.
func (s *Set) Lookup(word string) []int {
	return s.LookupUnits(dfa.Units(word))
}

// LookupUnits is like Lookup for a word given as UTF-16 code units.
func (s *Set) LookupUnits(word []uint16) []int {
	atomic.AddUint64(&s.stats.Lookups, 1)
	if s.filter != nil && !s.filter.Candidate(word) {
		atomic.AddUint64(&s.stats.PrefilterRejects, 1)
		return nil
	}

	st := dfa.ParseUnits(s.automaton, word)
	if st == dfa.DeadState || !s.automaton.Accepts(st) {
		return nil
	}
	atomic.AddUint64(&s.stats.Matches, 1)
	found := slices.Clone(s.automaton.Values(st))
	slices.Sort(found)
	return slices.Compact(found)
}

// Match reports whether any pattern is within distance of word.
func (s *Set) Match(word string) bool {
	return len(s.Lookup(word)) > 0
}

// Pattern returns pattern i.
func (s *Set) Pattern(i int) string {
	return s.patterns[i]
}

// Len returns the number of patterns.
func (s *Set) Len() int {
	return len(s.patterns)
}

// Size returns the number of states of the combined automaton.
func (s *Set) Size() int {
	return s.automaton.Size()
}

// Prefiltered reports whether lookups go through the pigeonhole prefilter.
func (s *Set) Prefiltered() bool {
	return s.filter != nil
}

// Stats returns a snapshot of the lookup counters.
func (s *Set) Stats() Stats {
	return Stats{
		Lookups:          atomic.LoadUint64(&s.stats.Lookups),
		PrefilterRejects: atomic.LoadUint64(&s.stats.PrefilterRejects),
		Matches:          atomic.LoadUint64(&s.stats.Matches),
	}
}

// CacheStats returns how the shape cache served the patterns while the set
// was built. It is zero when Config.UseCache is off.
func (s *Set) CacheStats() levenshtein.Stats {
	return s.cache
}

// Distance returns the maximum edit distance of the set.
func (s *Set) Distance() int {
	return s.config.Distance
}

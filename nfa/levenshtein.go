package nfa

import (
	"fmt"
	"slices"

	"github.com/coregx/fuzzyfa/dfa"
)

// Option configures automaton construction.
type Option func(*options)

type options struct {
	value    int
	hasValue bool
}

// WithValue attaches value to every accepting state of the built automaton.
func WithValue(value int) Option {
	return func(o *options) {
		o.value = value
		o.hasValue = true
	}
}

// Levenshtein builds an NFA accepting exactly the words within edit distance
// maxDistance of pattern, counting insertions, deletions and substitutions
// (transpositions cost two edits).
//
// Panics if maxDistance is negative or pattern contains U+0000, which is
// reserved for the wildcard.
func Levenshtein(pattern string, maxDistance int, opts ...Option) *NFA {
	return LevenshteinUnits(dfa.Units(pattern), maxDistance, opts...)
}

// LevenshteinUnits is Levenshtein over pre-encoded code units.
//
// The states form a grid with one column per pattern position and one row per
// number of edits spent. Columns are built left to right and only the two most
// recent ones are kept, since an edge never spans more than one column. For
// cell (j, i):
//   - a c edge from (j-1, i) is a match
//   - a wildcard edge from (j-1, i-1) is a substitution
//   - an epsilon edge from (j-1, i-1) is a deletion from the word
//   - a wildcard edge from (j, i-1) is an insertion into the word
//
// The last column is accepting in every row.
func LevenshteinUnits(pattern []uint16, maxDistance int, opts ...Option) *NFA {
	if maxDistance < 0 {
		panic(fmt.Sprintf("nfa: negative edit distance %d", maxDistance))
	}
	if slices.Contains(pattern, uint16(dfa.Any)) {
		panic("nfa: pattern contains U+0000")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	n := New()
	prev := make([]dfa.StateID, maxDistance+1)
	cur := make([]dfa.StateID, maxDistance+1)

	// insertions before the first pattern character
	prev[0] = StartState
	for i := 1; i <= maxDistance; i++ {
		prev[i] = n.NewState()
		n.AddDefaultTransition(prev[i-1], prev[i])
	}

	for _, u := range pattern {
		c := dfa.Label(u)
		cur[0] = n.NewState()
		n.AddTransition(prev[0], c, cur[0])
		for i := 1; i <= maxDistance; i++ {
			cur[i] = n.NewState()
			n.AddDefaultTransition(cur[i-1], cur[i])
			n.AddDefaultTransition(prev[i-1], cur[i])
			n.AddEpsilonTransition(prev[i-1], cur[i])
			n.AddTransition(prev[i], c, cur[i])
		}
		prev, cur = cur, prev
	}

	for _, s := range prev {
		if o.hasValue {
			n.AcceptValue(s, o.value)
		} else {
			n.Accept(s)
		}
	}
	return n
}

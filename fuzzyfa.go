// Package fuzzyfa matches words against patterns within a bounded
// Levenshtein distance using deterministic finite automata.
//
// A pattern and a distance K compile into a DFA that accepts exactly the
// words reachable from the pattern with at most K insertions, deletions and
// substitutions of UTF-16 code units. Matching a word is then one table
// lookup per code unit, independent of K.
//
// Basic usage:
//
//	m, err := fuzzyfa.Compile("kitten", 2)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m.Match("sitten") // true
//	m.Match("sitting") // false, three edits
//
// Many patterns at once:
//
//	set, err := fuzzyfa.NewSet([]string{"apple", "apply", "ample"}, fuzzyfa.DefaultConfig())
//	set.Lookup("appla") // [0 1]
//
// The building blocks live in subpackages: dfa (automaton contracts, the
// array-backed DFA, union and concatenation), nfa (Levenshtein NFAs and
// subset construction), levenshtein (the shape cache) and prefilter.
package fuzzyfa

import (
	"errors"
	"strconv"
	"strings"

	"github.com/coregx/fuzzyfa/dfa"
	"github.com/coregx/fuzzyfa/nfa"
)

// ErrInvalidPattern is returned for patterns containing U+0000, which is
// reserved for the wildcard label.
var ErrInvalidPattern = errors.New("fuzzyfa: pattern contains U+0000")

// Matcher is a compiled approximate pattern.
//
// A Matcher is safe to use concurrently from multiple goroutines.
//
// Example:
//
//	m := fuzzyfa.MustCompile("cat", 1)
//	if m.Match("cart") {
//	    println("matched!")
//	}
type Matcher struct {
	automaton *dfa.Array
	pattern   string
	distance  int
}

// Compile builds a matcher accepting the words within distance edits of
// pattern.
//
// Example:
//
//	m, err := fuzzyfa.Compile("color", 1)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string, distance int) (*Matcher, error) {
	config := DefaultConfig()
	config.Distance = distance
	return CompileWithConfig(pattern, config)
}

// MustCompile is like Compile but panics if the pattern or distance is
// invalid.
//
// Example:
//
//	var colour = fuzzyfa.MustCompile("colour", 1)
func MustCompile(pattern string, distance int) *Matcher {
	m, err := Compile(pattern, distance)
	if err != nil {
		panic("fuzzyfa: Compile(`" + pattern + "`, " + strconv.Itoa(distance) + "): " + err.Error())
	}
	return m
}

// CompileWithConfig compiles pattern using config.Distance. The other
// fields of config only affect sets.
func CompileWithConfig(pattern string, config Config) (*Matcher, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if strings.IndexByte(pattern, 0) >= 0 {
		return nil, ErrInvalidPattern
	}

	return &Matcher{
		automaton: nfa.Levenshtein(pattern, config.Distance).DFA(),
		pattern:   pattern,
		distance:  config.Distance,
	}, nil
}

// Match reports whether word is within the matcher's distance of its
// pattern.
func (m *Matcher) Match(word string) bool {
	return m.automaton.Test(word)
}

// MatchUnits is like Match for a word given as UTF-16 code units.
func (m *Matcher) MatchUnits(word []uint16) bool {
	s := dfa.ParseUnits(m.automaton, word)
	return s != dfa.DeadState && m.automaton.Accepts(s)
}

// Distance returns the maximum edit distance the matcher accepts.
func (m *Matcher) Distance() int {
	return m.distance
}

// Automaton returns the matcher's DFA. It must not be modified; use
// dfa.NewFrom for a writable copy.
func (m *Matcher) Automaton() dfa.Automaton {
	return m.automaton
}

// String returns the source pattern.
func (m *Matcher) String() string {
	return m.pattern
}

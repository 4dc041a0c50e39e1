// Package prefilter provides cheap rejection tests run before an automaton.
//
// A prefilter answers "can this word possibly be accepted?". A false answer
// is definitive and lets the caller skip the automaton; a true answer only
// means the automaton must decide.
package prefilter

import "errors"

// ErrShortPattern is returned when a pattern is too short to be split into
// the pieces a pigeonhole prefilter needs.
var ErrShortPattern = errors.New("prefilter: pattern shorter than distance+1")

// Prefilter rejects words that cannot match.
type Prefilter interface {
	// Candidate reports whether word may match. false is definitive.
	Candidate(word []uint16) bool
}

// Package dfa provides deterministic finite automata over 16-bit code units.
//
// States are dense integer indices assigned from 0 (the start state). Every
// state has a list of outgoing edges sorted by label; the wildcard label Any
// matches every code unit that the state does not list explicitly and sorts
// before all concrete labels.
//
// The package defines two contracts:
//   - Automaton: read-only access used for matching and as a composition input
//   - Writable: an Automaton that can grow, used as the target of Union and
//     Concat
//
// Array is the concrete mutable implementation. Parse and Test give every
// Automaton word matching for free.
//
// Basic usage:
//
//	a := dfa.New()
//	s := a.NewState()
//	a.Connect(dfa.StartState, 'x', s)
//	a.Accept(s)
//	a.Test("x") // true
//
// Automata are safe for concurrent reads. Mutation must be serialized
// against all readers by the caller.
package dfa

import (
	"unicode/utf16"
)

// Label is the input symbol of an edge: a UTF-16 code unit, or Any.
type Label uint16

// Any is the wildcard label. The code unit 0 is reserved for it.
const Any Label = 0

// StateID identifies a state of an automaton.
type StateID int32

const (
	// StartState is the state every match begins in.
	StartState StateID = 0

	// DeadState is returned when no transition exists. It never accepts.
	DeadState StateID = -1
)

// Automaton is the read-only contract satisfied by deterministic automata.
type Automaton interface {
	// Size returns the number of states.
	Size() int

	// Step returns the target of the edge labeled c leaving state, or
	// DeadState. Wildcard fallback is not applied: callers that want it
	// look up Any explicitly.
	Step(state StateID, c Label) StateID

	// Label returns the label of the nth edge of state. Any, if present,
	// is edge 0; the rest are in ascending order.
	Label(state StateID, n int) Label

	// Target returns the target of the nth edge of state.
	Target(state StateID, n int) StateID

	// Labels returns the number of edges leaving state.
	Labels(state StateID) int

	// Accepts reports whether state is accepting. Accepts(DeadState) is
	// false.
	Accepts(state StateID) bool
}

// Writable is an Automaton that can be extended in place.
type Writable interface {
	Automaton

	// NewState appends a state without edges and returns its index.
	NewState() StateID

	// Connect adds the edge source -c-> target, replacing an existing edge
	// with the same label. Panics on an invalid state index.
	Connect(source StateID, c Label, target StateID)

	// CopyWithOutgoingEdges appends a state whose edges are a copy of the
	// edges of state. Acceptance is not copied.
	CopyWithOutgoingEdges(state StateID) StateID

	// Accept marks state as accepting.
	Accept(state StateID)

	// Reject clears the accepting mark (and any values) of state.
	Reject(state StateID)
}

// Valued is implemented by automata whose accepting states carry values,
// such as the index of the pattern a state accepts for.
type Valued interface {
	Values(state StateID) []int
}

// ValueWriter is implemented by writable automata that can store accept
// values.
type ValueWriter interface {
	AcceptValue(state StateID, value int)
}

// DefaultTarget implements Automaton.Target in terms of Label and Step, for
// automata that do not store targets by edge position.
func DefaultTarget(a Automaton, state StateID, n int) StateID {
	return a.Step(state, a.Label(state, n))
}

// CopyWithOutgoingEdges implements Writable.CopyWithOutgoingEdges in terms of
// NewState and Connect.
func CopyWithOutgoingEdges(w Writable, state StateID) StateID {
	s := w.NewState()
	for n, edges := 0, w.Labels(state); n < edges; n++ {
		w.Connect(s, w.Label(state, n), w.Target(state, n))
	}
	return s
}

// next steps on c, falling back to the wildcard edge.
func next(a Automaton, state StateID, c Label) StateID {
	t := a.Step(state, c)
	if t == DeadState {
		t = a.Step(state, Any)
	}
	return t
}

// Parse runs word from StartState and returns the state reached, or
// DeadState as soon as a code unit has no transition. Each character is
// matched exactly first and by the wildcard edge otherwise. Characters outside
// the Basic Multilingual Plane are fed as their two surrogate units.
func Parse(a Automaton, word string) StateID {
	state := StartState
	for _, r := range word {
		if r >= 0x10000 {
			hi, lo := utf16.EncodeRune(r)
			if state = next(a, state, Label(hi)); state == DeadState {
				return DeadState
			}
			r = lo
		}
		if state = next(a, state, Label(r)); state == DeadState {
			return DeadState
		}
	}
	return state
}

// ParseUnits is Parse over pre-encoded code units.
func ParseUnits(a Automaton, word []uint16) StateID {
	state := StartState
	for _, u := range word {
		if state = next(a, state, Label(u)); state == DeadState {
			return DeadState
		}
	}
	return state
}

// Test reports whether a accepts word.
func Test(a Automaton, word string) bool {
	s := Parse(a, word)
	return s != DeadState && a.Accepts(s)
}

// Units encodes s as UTF-16 code units.
func Units(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

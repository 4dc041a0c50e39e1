// Package nfa builds nondeterministic finite automata over 16-bit code units,
// most notably Levenshtein automata, and converts them to deterministic
// automata by subset construction.
//
// An NFA state may have any number of edges per label, wildcard edges
// (dfa.Any, matching every code unit) and epsilon edges (taken without
// consuming input).
//
// Basic usage:
//
//	n := nfa.Levenshtein("cat", 1)
//	n.Test("cart")   // true: one insertion
//	d := n.DFA()     // *dfa.Array accepting the same language
//	d.Test("cast")   // true
package nfa

import (
	"fmt"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bitset"

	"github.com/coregx/fuzzyfa/dfa"
	"github.com/coregx/fuzzyfa/internal/conv"
	"github.com/coregx/fuzzyfa/internal/sparse"
)

// StartState is the state every simulation begins in.
const StartState dfa.StateID = 0

// alphabetSize is the number of distinct code units.
const alphabetSize = 1 << 16

// edge is an NFA transition. Epsilon edges ignore label.
type edge struct {
	label   dfa.Label
	epsilon bool
	target  dfa.StateID
}

// NFA is a nondeterministic automaton under construction or in use.
//
// Building is not safe for concurrent use. Once built, Test and DFA may be
// called from several goroutines.
type NFA struct {
	states    [][]edge
	alphabet  *bitset.BitSet
	accepting *dfa.StateLabels[int]

	// *simulation buffers reused by TestUnits
	pool sync.Pool
}

// simulation is the per-call state of TestUnits.
type simulation struct {
	sets  *sparse.Pair
	stack []dfa.StateID
}

// New returns an NFA with a single, non-accepting start state.
func New() *NFA {
	n := &NFA{
		alphabet:  bitset.New(alphabetSize),
		accepting: dfa.NewStateLabels[int](),
	}
	n.NewState()
	return n
}

func (n *NFA) check(state dfa.StateID) {
	if state < 0 || int(state) >= len(n.states) {
		panic(fmt.Sprintf("nfa: state %d out of range [0, %d)", state, len(n.states)))
	}
}

// NewState appends a state and returns its index.
func (n *NFA) NewState() dfa.StateID {
	n.states = append(n.states, make([]edge, 0, 1))
	return dfa.StateID(conv.IntToInt32(len(n.states) - 1))
}

// Size returns the number of states.
func (n *NFA) Size() int {
	return len(n.states)
}

// AddTransition adds source -c-> target. A c of dfa.Any adds a wildcard
// edge.
func (n *NFA) AddTransition(source dfa.StateID, c dfa.Label, target dfa.StateID) {
	n.check(source)
	n.check(target)
	if c != dfa.Any {
		n.alphabet.Set(uint(c))
	}
	n.states[source] = append(n.states[source], edge{label: c, target: target})
}

// AddDefaultTransition adds a wildcard edge from source to target.
func (n *NFA) AddDefaultTransition(source, target dfa.StateID) {
	n.AddTransition(source, dfa.Any, target)
}

// AddEpsilonTransition adds an edge taken without consuming input.
func (n *NFA) AddEpsilonTransition(source, target dfa.StateID) {
	n.check(source)
	n.check(target)
	n.states[source] = append(n.states[source], edge{epsilon: true, target: target})
}

// Accept marks state as accepting.
func (n *NFA) Accept(state dfa.StateID) {
	n.check(state)
	n.accepting.Mark(state)
}

// AcceptValue marks state as accepting and attaches value to it.
func (n *NFA) AcceptValue(state dfa.StateID, value int) {
	n.check(state)
	n.accepting.Put(state, value)
}

// Accepts reports whether state is accepting.
func (n *NFA) Accepts(state dfa.StateID) bool {
	return n.accepting.Has(state)
}

// Values returns the values attached to an accepting state.
func (n *NFA) Values(state dfa.StateID) []int {
	return n.accepting.Values(state)
}

// Alphabet returns the concrete labels used by any edge, in ascending order.
func (n *NFA) Alphabet() []dfa.Label {
	labels := make([]dfa.Label, 0, n.alphabet.Count())
	for i, ok := n.alphabet.NextSet(0); ok; i, ok = n.alphabet.NextSet(i + 1) {
		labels = append(labels, dfa.Label(i))
	}
	return labels
}

// Test reports whether the NFA accepts word, simulating all active states in
// parallel.
func (n *NFA) Test(word string) bool {
	return n.TestUnits(dfa.Units(word))
}

// TestUnits is Test over pre-encoded code units.
func (n *NFA) TestUnits(word []uint16) bool {
	sim := n.acquire()
	defer n.pool.Put(sim)
	sets := sim.sets

	sim.stack = n.closure(sets.Current, StartState, sim.stack)
	for _, u := range word {
		c := dfa.Label(u)
		for _, s := range sets.Current.Values() {
			for _, e := range n.states[s] {
				if !e.epsilon && (e.label == c || e.label == dfa.Any) {
					sim.stack = n.closure(sets.Next, e.target, sim.stack)
				}
			}
		}
		if sets.Next.IsEmpty() {
			return false
		}
		sets.Swap()
	}

	for _, s := range sets.Current.Values() {
		if n.accepting.Has(dfa.StateID(s)) {
			return true
		}
	}
	return false
}

// acquire returns cleared simulation buffers sized for the current number of
// states. States may have been added since the buffers were last used.
func (n *NFA) acquire() *simulation {
	size := conv.IntToUint32(len(n.states))
	sim, ok := n.pool.Get().(*simulation)
	if !ok {
		return &simulation{sets: sparse.NewPair(size)}
	}
	if sim.sets.Current.Capacity() < len(n.states) {
		sim.sets.Current.Resize(size)
		sim.sets.Next.Resize(size)
	}
	sim.sets.Current.Clear()
	sim.sets.Next.Clear()
	return sim
}

// closure adds state and everything reachable from it over epsilon edges to
// set. stack is scratch space and is returned for reuse.
func (n *NFA) closure(set *sparse.SparseSet, state dfa.StateID, stack []dfa.StateID) []dfa.StateID {
	if !set.Insert(uint32(state)) {
		return stack
	}
	stack = append(stack[:0], state)
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range n.states[s] {
			if e.epsilon && set.Insert(uint32(e.target)) {
				stack = append(stack, e.target)
			}
		}
	}
	return stack
}

// String renders one line per state, e.g. "2*: 'a' -> 3, * -> 4, ε -> 5".
func (n *NFA) String() string {
	var sb strings.Builder
	for i, edges := range n.states {
		fmt.Fprintf(&sb, "%d", i)
		if n.accepting.Has(dfa.StateID(i)) {
			sb.WriteByte('*')
		}
		sb.WriteByte(':')
		for k, e := range edges {
			if k > 0 {
				sb.WriteByte(',')
			}
			switch {
			case e.epsilon:
				fmt.Fprintf(&sb, " ε -> %d", e.target)
			case e.label == dfa.Any:
				fmt.Fprintf(&sb, " * -> %d", e.target)
			default:
				fmt.Fprintf(&sb, " %q -> %d", rune(e.label), e.target)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

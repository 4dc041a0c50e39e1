package dfa

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// transition packs an edge into one word: the label in bits 32..47 and the
// target state in the low 32 bits. Ordering transitions numerically orders
// them by label, so a sorted edge list has Any first.
type transition uint64

func pack(c Label, target StateID) transition {
	return transition(uint64(c)<<32 | uint64(uint32(target)))
}

func (t transition) label() Label {
	return Label(t >> 32)
}

func (t transition) target() StateID {
	return StateID(int32(uint32(t)))
}

func compareLabel(t transition, c Label) int {
	return cmp.Compare(t.label(), c)
}

// Array is a mutable deterministic automaton. Each state owns a sorted slice
// of packed transitions; accepting states and their values live in a
// StateLabels table.
//
// Array implements Automaton, Writable, Valued and ValueWriter.
type Array struct {
	states    [][]transition
	accepting *StateLabels[int]

	// number of edges targeting StartState
	toStart int
}

// New returns an automaton with a single, non-accepting start state.
func New() *Array {
	a := &Array{accepting: NewStateLabels[int]()}
	a.NewState()
	return a
}

// NewFrom returns a structural copy of parent: same states, edges and
// acceptance. Values are copied when parent implements Valued.
func NewFrom(parent Automaton) *Array {
	return Relabel(parent, nil)
}

// Relabel returns a copy of template in which every concrete label c is
// replaced by mapLabel(c). Any is never passed to mapLabel. Targets are kept,
// and each state's edges are re-sorted by their new labels. A nil mapLabel
// copies labels unchanged.
//
// Panics if mapLabel sends two labels of one state to the same label, or
// sends a concrete label to Any.
func Relabel(template Automaton, mapLabel func(Label) Label) *Array {
	size := template.Size()
	a := &Array{
		states:    make([][]transition, size),
		accepting: NewStateLabels[int](),
	}
	valued, _ := template.(Valued)

	for i := 0; i < size; i++ {
		state := StateID(i)
		n := template.Labels(state)
		edges := make([]transition, n)
		for k := 0; k < n; k++ {
			c := template.Label(state, k)
			if c != Any && mapLabel != nil {
				if c = mapLabel(c); c == Any {
					panic(fmt.Sprintf("dfa: relabel maps a concrete label of state %d to Any", state))
				}
			}
			edges[k] = pack(c, template.Target(state, k))
			if edges[k].target() == StartState {
				a.toStart++
			}
		}
		slices.Sort(edges)
		for k := 1; k < n; k++ {
			if edges[k].label() == edges[k-1].label() {
				panic(fmt.Sprintf("dfa: relabel merges two edges of state %d", state))
			}
		}
		a.states[i] = edges

		if template.Accepts(state) {
			a.accepting.Mark(state)
			if valued != nil {
				for _, v := range valued.Values(state) {
					a.accepting.Put(state, v)
				}
			}
		}
	}
	return a
}

func (a *Array) check(state StateID) {
	if state < 0 || int(state) >= len(a.states) {
		panic(fmt.Sprintf("dfa: state %d out of range [0, %d)", state, len(a.states)))
	}
}

// Size returns the number of states.
func (a *Array) Size() int {
	return len(a.states)
}

// NewState appends a state without edges.
func (a *Array) NewState() StateID {
	a.states = append(a.states, nil)
	return StateID(len(a.states) - 1)
}

// Connect adds source -c-> target, replacing an existing c edge of source.
func (a *Array) Connect(source StateID, c Label, target StateID) {
	a.check(source)
	a.check(target)

	if target == StartState {
		a.toStart++
	}
	edges := a.states[source]
	i, found := slices.BinarySearchFunc(edges, c, compareLabel)
	if found {
		if edges[i].target() == StartState {
			a.toStart--
		}
		edges[i] = pack(c, target)
		return
	}
	a.states[source] = slices.Insert(edges, i, pack(c, target))
}

// Step returns the target of the c edge of state, or DeadState.
// Panics if state is out of range, DeadState included.
func (a *Array) Step(state StateID, c Label) StateID {
	a.check(state)
	edges := a.states[state]
	if i, found := slices.BinarySearchFunc(edges, c, compareLabel); found {
		return edges[i].target()
	}
	return DeadState
}

// CopyWithOutgoingEdges appends a state with a copy of the edges of state.
func (a *Array) CopyWithOutgoingEdges(state StateID) StateID {
	a.check(state)
	edges := slices.Clone(a.states[state])
	for _, t := range edges {
		if t.target() == StartState {
			a.toStart++
		}
	}
	a.states = append(a.states, edges)
	return StateID(len(a.states) - 1)
}

// Label returns the label of the nth edge of state.
func (a *Array) Label(state StateID, n int) Label {
	a.check(state)
	return a.states[state][n].label()
}

// Target returns the target of the nth edge of state.
func (a *Array) Target(state StateID, n int) StateID {
	a.check(state)
	return a.states[state][n].target()
}

// Labels returns the number of edges of state.
func (a *Array) Labels(state StateID) int {
	a.check(state)
	return len(a.states[state])
}

// edgesToStart returns the number of edges targeting StartState.
func (a *Array) edgesToStart() int {
	return a.toStart
}

// Accepts reports whether state is accepting.
func (a *Array) Accepts(state StateID) bool {
	return state >= 0 && a.accepting.Has(state)
}

// Accept marks state as accepting.
func (a *Array) Accept(state StateID) {
	a.check(state)
	a.accepting.Mark(state)
}

// AcceptValue marks state as accepting and attaches value to it.
// Values already attached are not duplicated.
func (a *Array) AcceptValue(state StateID, value int) {
	a.check(state)
	if !slices.Contains(a.accepting.Values(state), value) {
		a.accepting.Put(state, value)
	}
}

// Reject clears the accepting mark and values of state.
func (a *Array) Reject(state StateID) {
	a.check(state)
	a.accepting.Remove(state)
}

// Values returns the values attached to state.
func (a *Array) Values(state StateID) []int {
	if state < 0 {
		return nil
	}
	return a.accepting.Values(state)
}

// Accepting returns the accepting states in ascending order.
func (a *Array) Accepting() []StateID {
	return a.accepting.Keys()
}

// Parse runs word and returns the reached state or DeadState.
func (a *Array) Parse(word string) StateID {
	return Parse(a, word)
}

// Test reports whether word is accepted.
func (a *Array) Test(word string) bool {
	return Test(a, word)
}

// Union merges other into a, so that a accepts the words of either
// automaton, and returns a.
func (a *Array) Union(other Automaton) *Array {
	return Union(a, other)
}

// Concat rewires a to accept the concatenation of its language with the
// language of other, and returns a.
func (a *Array) Concat(other Automaton) *Array {
	return Concat(a, other)
}

// String renders one line per state, e.g. "1*: * -> 2, 'a' -> 3", where the
// star after the index marks an accepting state.
func (a *Array) String() string {
	var sb strings.Builder
	for i, edges := range a.states {
		state := StateID(i)
		fmt.Fprintf(&sb, "%d", i)
		if a.Accepts(state) {
			sb.WriteByte('*')
			if vs := a.Values(state); len(vs) > 0 {
				fmt.Fprintf(&sb, "%v", vs)
			}
		}
		sb.WriteByte(':')
		for k, t := range edges {
			if k > 0 {
				sb.WriteByte(',')
			}
			if t.label() == Any {
				fmt.Fprintf(&sb, " * -> %d", t.target())
			} else {
				fmt.Fprintf(&sb, " %q -> %d", rune(t.label()), t.target())
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

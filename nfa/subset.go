package nfa

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/coregx/fuzzyfa/dfa"
	"github.com/coregx/fuzzyfa/internal/graph"
	"github.com/coregx/fuzzyfa/internal/stateset"
)

// DFA converts the NFA to an equivalent deterministic automaton by subset
// construction.
//
// Each deterministic state stands for an epsilon-closed set of NFA states;
// the start state stands for the closure of StartState. A state gets a
// wildcard edge to the image of its set under wildcard edges (if not empty),
// and an edge per alphabet label only where the image under that label
// differs from the wildcard image. A state accepts iff its set contains an
// accepting NFA state, and carries the values of all of them.
func (n *NFA) DFA() *dfa.Array {
	b := subsetBuilder{
		nfa:     n,
		result:  dfa.New(),
		index:   make(map[string]dfa.StateID),
		subsets: make(map[string]*bitset.BitSet),
	}

	start := b.newSet()
	b.closure(start, StartState)
	startKey := stateset.Key(start)
	b.index[startKey] = dfa.StartState
	b.subsets[startKey] = start

	alphabet := n.Alphabet()
	var w graph.Walker[string]
	w.Walk(startKey, func(key string, out []string) []string {
		return b.expand(key, alphabet, out)
	})
	return b.result
}

type subsetBuilder struct {
	nfa     *NFA
	result  *dfa.Array
	index   map[string]dfa.StateID
	subsets map[string]*bitset.BitSet
	stack   []dfa.StateID
}

func (b *subsetBuilder) newSet() *bitset.BitSet {
	return bitset.New(uint(len(b.nfa.states)))
}

func (b *subsetBuilder) expand(key string, alphabet []dfa.Label, out []string) []string {
	states := b.subsets[key]
	source := b.index[key]

	for i, ok := states.NextSet(0); ok; i, ok = states.NextSet(i + 1) {
		s := dfa.StateID(i)
		if !b.nfa.accepting.Has(s) {
			continue
		}
		b.result.Accept(source)
		for _, v := range b.nfa.accepting.Values(s) {
			b.result.AcceptValue(source, v)
		}
	}

	anyImage := b.step(states, dfa.Any)
	if anyImage.Any() {
		var target dfa.StateID
		target, out = b.intern(anyImage, out)
		b.result.Connect(source, dfa.Any, target)
	}

	for _, c := range alphabet {
		image := b.step(states, c)
		if image.Equal(anyImage) {
			continue
		}
		var target dfa.StateID
		target, out = b.intern(image, out)
		b.result.Connect(source, c, target)
	}
	return out
}

// intern returns the deterministic state for set, creating it and queueing
// its key if the set is new.
func (b *subsetBuilder) intern(set *bitset.BitSet, out []string) (dfa.StateID, []string) {
	key := stateset.Key(set)
	if id, ok := b.index[key]; ok {
		return id, out
	}
	id := b.result.NewState()
	b.index[key] = id
	b.subsets[key] = set
	return id, append(out, key)
}

// step returns the epsilon-closed image of states under c. For c == dfa.Any
// only wildcard edges are followed.
func (b *subsetBuilder) step(states *bitset.BitSet, c dfa.Label) *bitset.BitSet {
	image := b.newSet()
	for i, ok := states.NextSet(0); ok; i, ok = states.NextSet(i + 1) {
		for _, e := range b.nfa.states[i] {
			if !e.epsilon && (e.label == c || e.label == dfa.Any) {
				b.closure(image, e.target)
			}
		}
	}
	return image
}

func (b *subsetBuilder) closure(set *bitset.BitSet, state dfa.StateID) {
	if set.Test(uint(state)) {
		return
	}
	set.Set(uint(state))
	b.stack = append(b.stack[:0], state)
	for len(b.stack) > 0 {
		s := b.stack[len(b.stack)-1]
		b.stack = b.stack[:len(b.stack)-1]
		for _, e := range b.nfa.states[s] {
			if e.epsilon && !set.Test(uint(e.target)) {
				set.Set(uint(e.target))
				b.stack = append(b.stack, e.target)
			}
		}
	}
}

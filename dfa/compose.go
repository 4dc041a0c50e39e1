package dfa

import (
	"slices"

	"github.com/coregx/fuzzyfa/internal/graph"
	"github.com/coregx/fuzzyfa/internal/stateset"
)

// Composer implements Union and Concat of deterministic automata.
//
// Both operations merge a read-only automaton (other) into a writable one
// (self) with a single breadth-first walk over pairs of states. A pair is a
// state of self (or DeadState) and a set of states of other, and stands for
// the union of their languages. Pairs are packed into one uint64 (self state
// in the high half, interned set ID in the low half) that serves as the walk
// key and as the memoization key for the state that represents the pair.
//
// self is modified in place: the roots of the merge are rewritten, every
// other pair gets a new state (a copy of its self state's edges when it has
// one), and states of self that are not merged with anything keep being
// shared. States are only added, never removed. The work done is bounded by
// the merged region: states of self outside it are never visited.
//
// A Composer keeps its scratch buffers between calls. It is not safe for
// concurrent use.
type Composer struct {
	walker graph.Walker[uint64]
	other  Automaton
	concat bool

	// merged state for each pair
	memo map[uint64]StateID

	// set of other states a self state stands for in place, if not empty;
	// during Concat its keys are exactly the formerly accepting states
	home map[StateID]int32

	// interned sets of other states; sets[0] is the empty set
	sets   [][]StateID
	setIDs map[string]int32

	// edges, values and acceptance of self states rewritten in place
	saved map[StateID]savedState

	roots   []StateID
	labels  []Label
	members []StateID
	edgeBuf []transition
	keyBuf  []byte
}

type savedState struct {
	edges   []transition
	values  []int
	accepts bool
}

// startEdges is implemented by automata that count the edges entering
// StartState, which lets Union skip scanning for them.
type startEdges interface {
	edgesToStart() int
}

// acceptingLister is implemented by automata that can list their accepting
// states without a scan.
type acceptingLister interface {
	Accepting() []StateID
}

const emptySet int32 = 0

func packPair(s StateID, set int32) uint64 {
	return uint64(uint32(s))<<32 | uint64(uint32(set))
}

func unpackPair(k uint64) (StateID, int32) {
	return StateID(int32(uint32(k >> 32))), int32(uint32(k))
}

// Union merges other into self so that self accepts a word iff self or other
// accepted it before the call. It returns self.
func Union[W Writable](self W, other Automaton) W {
	var c Composer
	c.Union(self, other)
	return self
}

// Concat rewires self so that it accepts a word iff the word splits into a
// prefix accepted by self and a suffix accepted by other. It returns self.
func Concat[W Writable](self W, other Automaton) W {
	var c Composer
	c.Concat(self, other)
	return self
}

// Union is the reusable form of the package function Union.
func (c *Composer) Union(self Writable, other Automaton) Writable {
	c.reset(self, other)
	c.detachStart(self)

	c.members = append(c.members[:0], StartState)
	c.home[StartState] = c.intern(c.members)
	c.merge(self, StartState)
	return self
}

// Concat is the reusable form of the package function Concat.
func (c *Composer) Concat(self Writable, other Automaton) Writable {
	c.reset(self, other)
	c.concat = true

	c.members = append(c.members[:0], StartState)
	start := c.intern(c.members)

	// every accepting state of self now continues into other
	c.roots = c.roots[:0]
	if l, ok := self.(acceptingLister); ok {
		c.roots = append(c.roots, l.Accepting()...)
	} else {
		for i, size := 0, self.Size(); i < size; i++ {
			if self.Accepts(StateID(i)) {
				c.roots = append(c.roots, StateID(i))
			}
		}
	}
	for _, s := range c.roots {
		self.Reject(s)
		c.home[s] = start
	}
	for _, root := range c.roots {
		c.merge(self, root)
	}
	return self
}

func (c *Composer) reset(self Writable, other Automaton) {
	if sa, ok := self.(*Array); ok {
		if oa, ok := other.(*Array); ok && sa == oa {
			other = NewFrom(oa)
		}
	}
	c.other = other
	c.concat = false
	c.walker.Reset()

	if c.memo == nil {
		c.memo = make(map[uint64]StateID)
		c.home = make(map[StateID]int32)
		c.setIDs = make(map[string]int32)
		c.saved = make(map[StateID]savedState)
	}
	clear(c.memo)
	clear(c.home)
	clear(c.setIDs)
	clear(c.saved)
	c.sets = append(c.sets[:0], nil)
	c.setIDs[""] = emptySet
}

// detachStart moves the incoming edges of the start state of self to a copy
// of it, so that the start state can be rewritten without changing what the
// paths that loop back to it accept.
func (c *Composer) detachStart(self Writable) {
	if se, ok := self.(startEdges); ok && se.edgesToStart() == 0 {
		return
	}
	size := self.Size()
	incoming := false
	for i := 0; i < size && !incoming; i++ {
		for n, edges := 0, self.Labels(StateID(i)); n < edges; n++ {
			if self.Target(StateID(i), n) == StartState {
				incoming = true
				break
			}
		}
	}
	if !incoming {
		return
	}

	orig := self.CopyWithOutgoingEdges(StartState)
	if self.Accepts(StartState) {
		self.Accept(orig)
		c.copyValues(self, orig, c.selfValues(self, StartState))
	}
	for i, size := 0, self.Size(); i < size; i++ {
		s := StateID(i)
		for n, edges := 0, self.Labels(s); n < edges; n++ {
			if self.Target(s, n) == StartState {
				self.Connect(s, self.Label(s, n), orig)
			}
		}
	}
}

// wasAccepting reports whether s accepted before the operation started.
func (c *Composer) wasAccepting(self Writable, s StateID) bool {
	if c.concat {
		_, root := c.home[s]
		return root
	}
	if sv, ok := c.saved[s]; ok {
		return sv.accepts
	}
	return self.Accepts(s)
}

func (c *Composer) merge(self Writable, root StateID) {
	key := packPair(root, c.home[root])
	c.memo[key] = root
	c.walker.Walk(key, func(k uint64, out []uint64) []uint64 {
		return c.mergeStep(self, k, out)
	})
}

// mergeStep gives the state of the pair k the edges and acceptance of the
// union of its parts and returns the pairs that still need merging.
func (c *Composer) mergeStep(self Writable, k uint64, out []uint64) []uint64 {
	s, set := unpackPair(k)
	r := c.memo[k]
	members := c.sets[set]

	var edges []transition
	if s != DeadState {
		edges = c.original(self, s)
		if r == s {
			// rewritten in place: later copies must see the old edges
			c.saved[s] = savedState{
				edges:   slices.Clone(edges),
				values:  slices.Clone(c.selfValues(self, s)),
				accepts: self.Accepts(s),
			}
			edges = c.saved[s].edges
		}
	}

	c.mergeAcceptance(self, r, s, members)

	c.labels = c.labels[:0]
	for _, t := range edges {
		if t.label() != Any {
			c.labels = append(c.labels, t.label())
		}
	}
	for _, o := range members {
		for n, count := 0, c.other.Labels(o); n < count; n++ {
			if l := c.other.Label(o, n); l != Any {
				c.labels = append(c.labels, l)
			}
		}
	}
	slices.Sort(c.labels)
	c.labels = slices.Compact(c.labels)

	anySelf := stepEdges(edges, Any)
	anySet := c.stepOther(members, Any, anySelf)
	if anySelf != DeadState || anySet != emptySet {
		var target StateID
		target, out = c.resolve(self, anySelf, anySet, out)
		self.Connect(r, Any, target)
	}

	for _, l := range c.labels {
		ts := stepEdges(edges, l)
		if ts == DeadState {
			ts = anySelf
		}
		tset := c.stepOther(members, l, ts)
		if ts == anySelf && tset == anySet && self.Step(r, l) == DeadState {
			// the wildcard edge already leads to the same pair
			continue
		}
		var target StateID
		target, out = c.resolve(self, ts, tset, out)
		self.Connect(r, l, target)
	}
	return out
}

func (c *Composer) mergeAcceptance(self Writable, r, s StateID, members []StateID) {
	if s != DeadState && !c.concat && c.wasAccepting(self, s) {
		self.Accept(r)
		c.copyValues(self, r, c.selfValues(self, s))
	}
	valued, _ := c.other.(Valued)
	for _, o := range members {
		if !c.other.Accepts(o) {
			continue
		}
		self.Accept(r)
		if valued != nil {
			c.copyValues(self, r, valued.Values(o))
		}
	}
}

// resolve returns the state standing for the pair (s, set), allocating it
// and queueing the pair on first sight.
func (c *Composer) resolve(self Writable, s StateID, set int32, out []uint64) (StateID, []uint64) {
	home := emptySet
	if s != DeadState {
		home = c.home[s]
	}
	if s != DeadState && set == home {
		return s, out
	}

	key := packPair(s, set)
	if r, ok := c.memo[key]; ok {
		return r, out
	}

	var r StateID
	if _, rewritten := c.saved[s]; s != DeadState && !rewritten {
		r = self.CopyWithOutgoingEdges(s)
	} else {
		r = self.NewState()
	}
	c.memo[key] = r
	return r, append(out, key)
}

// stepOther returns the interned set of other states reached from members on
// l (with wildcard fallback). During Concat the start of other joins the set
// whenever the self side lands on a formerly accepting state.
func (c *Composer) stepOther(members []StateID, l Label, selfTarget StateID) int32 {
	c.members = c.members[:0]
	for _, o := range members {
		t := c.other.Step(o, l)
		if t == DeadState && l != Any {
			t = c.other.Step(o, Any)
		}
		if t != DeadState {
			c.members = append(c.members, t)
		}
	}
	if _, root := c.home[selfTarget]; c.concat && root {
		c.members = append(c.members, StartState)
	}
	return c.intern(c.members)
}

func (c *Composer) intern(members []StateID) int32 {
	members, c.keyBuf = stateset.AppendSortedKey(c.keyBuf[:0], members)
	if id, ok := c.setIDs[string(c.keyBuf)]; ok {
		return id
	}
	id := int32(len(c.sets))
	c.sets = append(c.sets, slices.Clone(members))
	c.setIDs[string(c.keyBuf)] = id
	return id
}

// original returns the edges s had before the operation started.
func (c *Composer) original(self Writable, s StateID) []transition {
	if sv, ok := c.saved[s]; ok {
		return sv.edges
	}
	c.edgeBuf = c.edgeBuf[:0]
	for n, count := 0, self.Labels(s); n < count; n++ {
		c.edgeBuf = append(c.edgeBuf, pack(self.Label(s, n), self.Target(s, n)))
	}
	return c.edgeBuf
}

func (c *Composer) selfValues(self Writable, s StateID) []int {
	if sv, ok := c.saved[s]; ok {
		return sv.values
	}
	if v, ok := self.(Valued); ok {
		return v.Values(s)
	}
	return nil
}

func (c *Composer) copyValues(self Writable, r StateID, values []int) {
	if len(values) == 0 {
		return
	}
	if w, ok := self.(ValueWriter); ok {
		for _, v := range values {
			w.AcceptValue(r, v)
		}
	}
}

// stepEdges looks up c in a sorted edge list.
func stepEdges(edges []transition, c Label) StateID {
	if i, found := slices.BinarySearchFunc(edges, c, compareLabel); found {
		return edges[i].target()
	}
	return DeadState
}

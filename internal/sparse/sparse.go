// Package sparse provides a sparse set of NFA state indices.
//
// A sparse set supports O(1) insertion, membership testing and clearing while
// keeping a dense list of its elements in insertion order. NFA simulation uses
// it to track the active state set and the epsilon closure being expanded,
// where clearing between input characters must not cost O(states).
package sparse

// SparseSet is a set of uint32 values below a fixed capacity.
// The sparse array maps a value to its index in the dense array; stale
// entries are harmless because membership is cross-checked against dense.
type SparseSet struct {
	sparse []uint32
	dense  []uint32
}

// NewSparseSet creates a set that can hold values in [0, capacity).
func NewSparseSet(capacity uint32) *SparseSet {
	return &SparseSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds value to the set and reports whether it was newly added.
// Panics if value >= Capacity().
func (s *SparseSet) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

// Contains reports whether value is in the set.
func (s *SparseSet) Contains(value uint32) bool {
	if uint64(value) >= uint64(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return uint64(idx) < uint64(len(s.dense)) && s.dense[idx] == value
}

// Clear removes all elements in O(1).
func (s *SparseSet) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of elements.
func (s *SparseSet) Len() int {
	return len(s.dense)
}

// IsEmpty reports whether the set has no elements.
func (s *SparseSet) IsEmpty() bool {
	return len(s.dense) == 0
}

// Capacity returns the exclusive upper bound on storable values.
func (s *SparseSet) Capacity() int {
	return len(s.sparse)
}

// Resize changes the capacity. Growing keeps the elements, shrinking clears
// the set.
func (s *SparseSet) Resize(capacity uint32) {
	if int(capacity) >= len(s.sparse) {
		grown := make([]uint32, capacity)
		copy(grown, s.sparse)
		s.sparse = grown
		return
	}
	s.sparse = s.sparse[:capacity]
	s.dense = s.dense[:0]
}

// Values returns the elements in insertion order.
// The returned slice is valid until the next mutation.
func (s *SparseSet) Values() []uint32 {
	return s.dense
}

// Pair is a double buffer of sparse sets for step-by-step simulation:
// Current holds the active states, Next collects the successors.
type Pair struct {
	Current *SparseSet
	Next    *SparseSet
}

// NewPair creates two sets of the same capacity.
func NewPair(capacity uint32) *Pair {
	return &Pair{
		Current: NewSparseSet(capacity),
		Next:    NewSparseSet(capacity),
	}
}

// Swap exchanges Current and Next and clears the new Next.
func (p *Pair) Swap() {
	p.Current, p.Next = p.Next, p.Current
	p.Next.Clear()
}

package dfa

import (
	"maps"
	"slices"
)

// StateLabels maps states to zero or more attached values. A state that has
// been put with no values is still present, which is how automata mark
// accepting states that carry no payload.
type StateLabels[V any] struct {
	values map[StateID][]V
}

// NewStateLabels creates an empty table.
func NewStateLabels[V any]() *StateLabels[V] {
	return &StateLabels[V]{values: make(map[StateID][]V, 4)}
}

// Mark makes state present without attaching a value.
func (l *StateLabels[V]) Mark(state StateID) {
	if _, ok := l.values[state]; !ok {
		l.values[state] = nil
	}
}

// Put attaches value to state, marking it present.
func (l *StateLabels[V]) Put(state StateID, value V) {
	l.values[state] = append(l.values[state], value)
}

// Values returns the values attached to state, or nil.
func (l *StateLabels[V]) Values(state StateID) []V {
	return l.values[state]
}

// Has reports whether state is present.
func (l *StateLabels[V]) Has(state StateID) bool {
	_, ok := l.values[state]
	return ok
}

// Remove drops state and its values.
func (l *StateLabels[V]) Remove(state StateID) {
	delete(l.values, state)
}

// Keys returns the present states in ascending order.
func (l *StateLabels[V]) Keys() []StateID {
	return slices.Sorted(maps.Keys(l.values))
}

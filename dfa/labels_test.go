package dfa

import (
	"slices"
	"testing"
)

func TestStateLabels(t *testing.T) {
	l := NewStateLabels[string]()
	if len(l.Keys()) != 0 {
		t.Fatalf("Keys() = %v, want empty", l.Keys())
	}

	l.Mark(3)
	l.Put(1, "x")
	l.Put(1, "y")
	l.Mark(1)

	if !l.Has(3) || !l.Has(1) || l.Has(2) {
		t.Errorf("Has: got 3=%v 1=%v 2=%v, want true true false", l.Has(3), l.Has(1), l.Has(2))
	}
	if got := l.Values(3); len(got) != 0 {
		t.Errorf("Values(3) = %v, want empty", got)
	}
	if got, want := l.Values(1), []string{"x", "y"}; !slices.Equal(got, want) {
		t.Errorf("Values(1) = %v, want %v", got, want)
	}
	if got, want := l.Keys(), []StateID{1, 3}; !slices.Equal(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}

	l.Remove(1)
	if l.Has(1) || !slices.Equal(l.Keys(), []StateID{3}) {
		t.Errorf("after Remove(1): Has(1) = %v, Keys() = %v", l.Has(1), l.Keys())
	}
}

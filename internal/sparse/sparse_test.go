package sparse

import (
	"testing"
)

func TestSparseSet_Basic(t *testing.T) {
	s := NewSparseSet(100)

	if !s.IsEmpty() {
		t.Error("new set should be empty")
	}
	if s.Contains(0) {
		t.Error("empty set should not contain 0")
	}

	if !s.Insert(5) {
		t.Error("first insert should return true")
	}
	if !s.Contains(5) {
		t.Error("set should contain 5 after insert")
	}
	if s.Insert(5) {
		t.Error("duplicate insert should return false")
	}
	if s.Len() != 1 {
		t.Errorf("len should be 1, got %d", s.Len())
	}

	s.Insert(10)
	s.Insert(3)
	s.Insert(7)
	if s.Len() != 4 {
		t.Errorf("len should be 4, got %d", s.Len())
	}

	s.Clear()
	if !s.IsEmpty() {
		t.Error("set should be empty after clear")
	}
	if s.Contains(5) {
		t.Error("cleared set should not contain 5")
	}
}

func TestSparseSet_InsertionOrder(t *testing.T) {
	s := NewSparseSet(100)
	s.Insert(5)
	s.Insert(2)
	s.Insert(8)
	s.Insert(1)

	expected := []uint32{5, 2, 8, 1}
	values := s.Values()
	if len(values) != len(expected) {
		t.Fatalf("expected %d values, got %d", len(expected), len(values))
	}
	for i, v := range values {
		if v != expected[i] {
			t.Errorf("at index %d: expected %d, got %d", i, expected[i], v)
		}
	}
}

func TestSparseSet_OutOfRange(t *testing.T) {
	s := NewSparseSet(4)
	if s.Contains(4) || s.Contains(1000) {
		t.Error("values beyond capacity are never members")
	}
}

func TestSparseSet_CrossValidation(t *testing.T) {
	// stale sparse entries must not produce false positives
	s := NewSparseSet(100)
	s.Insert(5)
	s.Insert(10)
	s.Clear()

	if s.Contains(5) || s.Contains(10) {
		t.Error("cleared set should not contain old values")
	}

	s.Insert(3)
	if !s.Contains(3) {
		t.Error("should contain 3")
	}
	if s.Contains(5) || s.Contains(10) {
		t.Error("should not contain old values")
	}
}

func TestSparseSet_Resize(t *testing.T) {
	s := NewSparseSet(10)
	s.Insert(5)
	s.Insert(7)

	s.Resize(100)
	if s.Capacity() != 100 {
		t.Errorf("capacity should be 100, got %d", s.Capacity())
	}
	if !s.Contains(5) || !s.Contains(7) {
		t.Error("should preserve elements after grow")
	}
	s.Insert(99)
	if !s.Contains(99) {
		t.Error("grown set should accept 99")
	}

	s.Resize(50)
	if s.Len() != 0 {
		t.Errorf("shrink should clear, len=%d", s.Len())
	}
}

func TestPair_Swap(t *testing.T) {
	p := NewPair(100)
	p.Current.Insert(1)
	p.Next.Insert(10)
	p.Next.Insert(11)

	p.Swap()

	if !p.Current.Contains(10) || !p.Current.Contains(11) {
		t.Error("after swap, Current should hold the successors")
	}
	if !p.Next.IsEmpty() {
		t.Error("after swap, Next should be empty")
	}
}

func BenchmarkSparseSet_Insert(b *testing.B) {
	s := NewSparseSet(1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Clear()
		for j := uint32(0); j < 100; j++ {
			s.Insert(j)
		}
	}
}

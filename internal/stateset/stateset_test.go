package stateset

import (
	"slices"
	"testing"

	"github.com/bits-and-blooms/bitset"
)

func TestKey_IgnoresCapacity(t *testing.T) {
	small := bitset.New(8).Set(1).Set(5)
	large := bitset.New(4096).Set(5).Set(1)

	if Key(small) != Key(large) {
		t.Error("equal members must give equal keys")
	}
	if Key(small) == Key(bitset.New(8).Set(1)) {
		t.Error("different members must give different keys")
	}
	if Key(bitset.New(16)) != "" {
		t.Error("empty set should have the empty key")
	}
}

func TestAppendSortedKey(t *testing.T) {
	members, key := AppendSortedKey(nil, []int32{7, 2, 7, 3})
	if !slices.Equal(members, []int32{2, 3, 7}) {
		t.Errorf("members = %v, want [2 3 7]", members)
	}

	_, other := AppendSortedKey(make([]byte, 0, 64), []int32{3, 7, 2})
	if string(key) != string(other) {
		t.Error("permutations must give equal keys")
	}

	_, different := AppendSortedKey(nil, []int32{2, 3})
	if string(key) == string(different) {
		t.Error("different sets must give different keys")
	}

	type state int32
	got, _ := AppendSortedKey(nil, []state{-1, 4, -1})
	if !slices.Equal(got, []state{-1, 4}) {
		t.Errorf("named int32 members = %v, want [-1 4]", got)
	}
}

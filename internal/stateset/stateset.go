// Package stateset builds canonical map keys for sets of automaton states.
//
// Subset construction identifies a deterministic state by the set of NFA
// states it stands for, and composition identifies a merged state by a set of
// states of the second operand. Both need a comparable identity for a set,
// which Go maps only provide for value types: the set is encoded as the
// little-endian bytes of its sorted members.
package stateset

import (
	"encoding/binary"
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// Key returns the canonical key of the members of b. Two bitsets with the
// same members have equal keys regardless of their allocated length.
func Key(b *bitset.BitSet) string {
	buf := make([]byte, 0, 4*b.Count())
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(i))
	}
	return string(buf)
}

// AppendSortedKey sorts and deduplicates members in place, appends their
// canonical key to dst and returns the shortened members and the extended
// dst. Looking the key up as m[string(dst)] does not allocate.
func AppendSortedKey[T ~int32](dst []byte, members []T) ([]T, []byte) {
	slices.Sort(members)
	members = slices.Compact(members)
	for _, m := range members {
		dst = binary.LittleEndian.AppendUint32(dst, uint32(m))
	}
	return members, dst
}

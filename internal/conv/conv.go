// Package conv provides checked integer narrowing for automaton indices and
// code units.
//
// State indices are stored as int32 and labels as uint16. Narrowing a value
// that does not fit indicates a programming error (an automaton grown past
// its addressable size, or a label outside the 16-bit range), so these
// helpers panic instead of returning an error.
package conv

import "math"

// IntToInt32 converts an int to int32.
// Panics if n is outside the int32 range.
//
//go:inline
func IntToInt32(n int) int32 {
	if n < math.MinInt32 || n > math.MaxInt32 {
		panic("integer overflow: int value out of int32 range")
	}
	return int32(n)
}

// IntToUint32 converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// uint comparison keeps this correct on 32-bit platforms
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// IntToUint16 converts an int to uint16.
// Panics if n < 0 or n > math.MaxUint16.
//
//go:inline
func IntToUint16(n int) uint16 {
	if n < 0 || n > math.MaxUint16 {
		panic("integer overflow: int value out of uint16 range")
	}
	return uint16(n)
}

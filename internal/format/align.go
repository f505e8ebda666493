// Package format holds the power-of-two arithmetic and the free-list link
// word codec shared by the pools and the arena.
package format

import "math/bits"

// Power-of-two utilities used by the size-class registry and the arena.
// Every block size handed out by the pools is a power of two, which keeps
// blocks naturally aligned for any Go scalar type.

// PtrSize is the size of the free-list link word and therefore the smallest
// block any pool will carve.
const PtrSize = 8

// Log2Ceil returns the smallest k such that 1<<k >= n.
//
// Example:
//
//	Log2Ceil(1) = 0
//	Log2Ceil(5) = 3
//	Log2Ceil(8) = 3
//	Log2Ceil(9) = 4
func Log2Ceil(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// IsPow2 reports whether n is a positive power of two.
func IsPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// CeilDiv returns ceil(n / d) for n >= 0, d > 0.
func CeilDiv(n, d int) int {
	return (n + d - 1) / d
}

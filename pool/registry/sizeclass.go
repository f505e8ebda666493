package registry

import (
	"fmt"

	"github.com/joshuapare/poolkit/internal/format"
)

const (
	// minClassKey is log2 of the smallest block (the link word size).
	minClassKey = 3

	// MaxClassKey is the largest class key. Class sizes stay representable
	// as a positive int.
	MaxClassKey = 62

	// numClassSlots is the size of the fixed class table.
	numClassSlots = MaxClassKey + 1
)

// ClassOf returns the class key and block size serving a request of size
// bytes. Sizes below 8 (including zero and negatives) map to the 8-byte class.
//
// Example:
//
//	ClassOf(1)  = 3, 8
//	ClassOf(5)  = 3, 8
//	ClassOf(8)  = 3, 8
//	ClassOf(9)  = 4, 16
//
// ClassOf panics when size exceeds the largest class.
func ClassOf(size int) (key, classSize int) {
	key = format.Log2Ceil(max(size, format.PtrSize))
	if key < minClassKey {
		key = minClassKey
	}
	if key > MaxClassKey {
		panic(fmt.Sprintf("registry: size %d exceeds largest class", size))
	}
	return key, 1 << key
}

// Capacity returns the block count of a class under budget.
func Capacity(budget, classSize int) int {
	return max(budget/classSize, 1)
}

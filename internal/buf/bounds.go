// Package buf contains overflow-safe size arithmetic shared by the allocators.
package buf

import (
	"fmt"
	"math"
)

// MulOverflowSafe multiplies two non-negative ints, returning ok = false when
// the result would overflow int or either operand is negative.
func MulOverflowSafe(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// ArrayBytes returns count * elemSize, the byte length of an array request.
//
//	n, err := buf.ArrayBytes(count, int(unsafe.Sizeof(v)))
//	if err != nil {
//	    return fmt.Errorf("allocate: %w", err)
//	}
func ArrayBytes(count, elemSize int) (int, error) {
	if count < 0 {
		return 0, fmt.Errorf("negative count: %d", count)
	}
	if elemSize < 0 {
		return 0, fmt.Errorf("negative element size: %d", elemSize)
	}
	total, ok := MulOverflowSafe(count, elemSize)
	if !ok {
		return 0, fmt.Errorf("overflow: count=%d * elemSize=%d", count, elemSize)
	}
	return total, nil
}

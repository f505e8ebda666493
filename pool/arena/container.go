package arena

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/joshuapare/poolkit/internal/extent"
)

// container is one contiguous buffer of blocks and its occupancy bitmap.
type container struct {
	buf     []byte
	ext     extent.Extent
	used    *bitset.BitSet // bit i set = block i allocated
	release func() error

	capacity       int // blocks
	remaining      int // unset bits
	firstAvailable int // no free block below this index
}

func newContainer(data []byte, release func() error, capacity int) *container {
	return &container{
		buf:       data,
		ext:       extent.Of(data),
		used:      bitset.New(uint(capacity)),
		release:   release,
		capacity:  capacity,
		remaining: capacity,
	}
}

// empty reports whether every block is free.
func (c *container) empty() bool {
	return c.remaining == c.capacity
}

// findRun returns the start of the first run of n free blocks at or after
// the cursor.
func (c *container) findRun(n int) (int, bool) {
	run := 0
	for i := c.firstAvailable; i < c.capacity; i++ {
		if c.used.Test(uint(i)) {
			run = 0
			if c.capacity-i-1 < n {
				break
			}
			continue
		}
		run++
		if run == n {
			return i - n + 1, true
		}
	}
	return 0, false
}

// mark allocates blocks [start, start+n).
func (c *container) mark(start, n int) {
	for i := start; i < start+n; i++ {
		c.used.Set(uint(i))
	}
	c.remaining -= n
	if start <= c.firstAvailable && c.firstAvailable < start+n {
		c.firstAvailable = c.nextClear(start + n)
	}
}

// unmark frees blocks [start, start+n).
func (c *container) unmark(start, n int) {
	for i := start; i < start+n; i++ {
		c.used.Clear(uint(i))
	}
	c.remaining += n
	if start < c.firstAvailable {
		c.firstAvailable = start
	}
}

// allocated reports whether every block in [start, start+n) is set.
func (c *container) allocated(start, n int) bool {
	if start < 0 || n <= 0 || start+n > c.capacity {
		return false
	}
	for i := start; i < start+n; i++ {
		if !c.used.Test(uint(i)) {
			return false
		}
	}
	return true
}

// nextClear returns the first free block at or after i, or capacity.
func (c *container) nextClear(i int) int {
	if i >= c.capacity {
		return c.capacity
	}
	next, ok := c.used.NextClear(uint(i))
	if !ok || int(next) >= c.capacity {
		return c.capacity
	}
	return int(next)
}

// slice returns the view of n bytes starting at block start.
func (c *container) slice(start, blockSize, n int) []byte {
	off := start * blockSize
	end := off + n
	return c.buf[off:end:end]
}

// ContainerInfo describes one live container.
type ContainerInfo struct {
	Capacity       int // blocks
	Remaining      int // free blocks
	FirstAvailable int // scan cursor
	Bytes          int // backing buffer size
}

func (c *container) info() ContainerInfo {
	return ContainerInfo{
		Capacity:       c.capacity,
		Remaining:      c.remaining,
		FirstAvailable: c.firstAvailable,
		Bytes:          len(c.buf),
	}
}

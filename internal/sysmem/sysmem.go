// Package sysmem provides the backing buffers the pools and arena carve
// their blocks from.
//
// Two sources exist: the Go heap (Heap) and pages reserved directly from the
// operating system (Pages). OS pages live outside the garbage-collected heap,
// so they are never moved, scanned or reclaimed until explicitly released.
package sysmem

// Reserver returns a zeroed buffer of exactly size bytes together with the
// function that gives it back. The release function is safe to call more
// than once.
type Reserver func(size int) ([]byte, func() error, error)

func noopRelease() error { return nil }

// Heap reserves size bytes from the Go heap. Release only drops the
// reservation; the collector reclaims the memory once nothing refers to it.
func Heap(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, noopRelease, nil
	}
	return make([]byte, size), noopRelease, nil
}

// Pages reserves size bytes of anonymous, read-write memory from the
// operating system. On platforms without a page reservation primitive it
// falls back to Heap.
func Pages(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, noopRelease, nil
	}
	return reservePages(size)
}

// OrHeap returns r, or Heap when r is nil.
func OrHeap(r Reserver) Reserver {
	if r == nil {
		return Heap
	}
	return r
}

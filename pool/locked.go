package pool

import (
	"sync"
)

// LockedPool is a mutex-protected wrapper around Pool for shared use.
// Every call holds the pool's own lock for its whole duration.
type LockedPool struct {
	mu sync.Mutex
	p  *Pool
}

// NewLocked creates a shared pool; see New for the parameters.
func NewLocked(size, count int, opts ...Option) (*LockedPool, error) {
	p, err := New(size, count, opts...)
	if err != nil {
		return nil, err
	}
	return &LockedPool{p: p}, nil
}

// Alloc thread-safely returns one block.
func (l *LockedPool) Alloc() []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.p.Alloc()
}

// Free thread-safely returns a block.
func (l *LockedPool) Free(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.p.Free(b)
}

// Info thread-safely returns a snapshot of the counters.
func (l *LockedPool) Info() PoolInfo {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.p.Info()
}

// BlockSize returns the size of every block. It is fixed at construction.
func (l *LockedPool) BlockSize() int {
	return l.p.info.Size
}

// Owns thread-safely reports whether b lies inside the backing buffer.
func (l *LockedPool) Owns(b []byte) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.p.Owns(b)
}

// FreeBlocks thread-safely returns the number of blocks on the free list.
func (l *LockedPool) FreeBlocks() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.p.FreeBlocks()
}

// Close thread-safely releases the pool.
func (l *LockedPool) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.p.Close()
}

var _ BlockAllocator = (*LockedPool)(nil)

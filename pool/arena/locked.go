package arena

import "sync"

// LockedArena is a mutex-protected wrapper around Arena for shared use.
type LockedArena struct {
	mu sync.Mutex
	a  *Arena
}

// NewLocked creates a shared arena; see New for the configuration.
func NewLocked(cfg Config) (*LockedArena, error) {
	a, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return &LockedArena{a: a}, nil
}

// Allocate thread-safely allocates need bytes.
func (l *LockedArena) Allocate(need int) []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Allocate(need)
}

// Deallocate thread-safely returns an allocation.
func (l *LockedArena) Deallocate(b []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Deallocate(b)
}

// BlockSize returns the allocation granule. It is fixed at construction.
func (l *LockedArena) BlockSize() int {
	return l.a.blockSize
}

// Stats thread-safely returns a snapshot of the counters.
func (l *LockedArena) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Stats()
}

// Containers thread-safely describes the live containers.
func (l *LockedArena) Containers() []ContainerInfo {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Containers()
}

// Close thread-safely releases the arena.
func (l *LockedArena) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Close()
}

var _ Allocator = (*LockedArena)(nil)

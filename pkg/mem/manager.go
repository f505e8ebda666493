package mem

import (
	"errors"
	"sync/atomic"

	"github.com/joshuapare/poolkit/pkg/types"
	"github.com/joshuapare/poolkit/pool"
	"github.com/joshuapare/poolkit/pool/arena"
	"github.com/joshuapare/poolkit/pool/registry"
)

// Manager owns one size-class registry and one block arena.
type Manager struct {
	cfg    types.Config
	reg    *registry.Registry
	arena  arena.Allocator
	closed atomic.Bool
}

// Stats is a snapshot of a manager's pools and arena.
type Stats struct {
	Pools []pool.PoolInfo // ordered by block size
	Arena arena.Stats
}

// New creates a manager. Zero fields of cfg take their defaults; invalid
// values yield an error matching types.ErrInvalidConfig.
func New(cfg types.Config) (*Manager, error) {
	cfg, err := cfg.Normalize()
	if err != nil {
		return nil, err
	}

	shared := cfg.Mode == types.ModeShared
	reserve := cfg.Backing.Reserver()

	acfg := arena.Config{
		BlockSize:     cfg.ArenaBlockSize,
		InitialBlocks: cfg.ArenaInitialBlocks,
		Reserver:      reserve,
	}
	var ar arena.Allocator
	if shared {
		ar, err = arena.NewLocked(acfg)
	} else {
		ar, err = arena.New(acfg)
	}
	if err != nil {
		return nil, types.Wrap(types.ErrInvalidConfig, "arena", err)
	}

	return &Manager{
		cfg: cfg,
		reg: registry.New(registry.Config{
			Budget:   cfg.Budget,
			Shared:   shared,
			Reserver: reserve,
			Hook:     cfg.OnPoolClose,
		}),
		arena: ar,
	}, nil
}

// Config returns the normalized configuration.
func (m *Manager) Config() types.Config {
	return m.cfg
}

// Alloc returns size bytes with len == cap == size. Sizes up to the budget
// come from the size-class registry; larger ones from the Go heap.
// Alloc(0) returns nil.
func (m *Manager) Alloc(size int) []byte {
	m.panicIfClosed()
	if size <= 0 {
		return nil
	}
	if size > m.cfg.Budget {
		return make([]byte, size)
	}
	b := m.reg.Get(size).Alloc()
	return b[:size:size]
}

// Free returns memory obtained from Alloc. The pool is chosen by cap(b), so
// b must not be resliced to a different capacity. Free(nil) is a no-op.
func (m *Manager) Free(b []byte) {
	if cap(b) == 0 {
		return
	}
	m.panicIfClosed()
	if cap(b) > m.cfg.Budget {
		return
	}
	m.reg.Get(cap(b)).Free(b)
}

// Stats returns a snapshot of every pool and the arena.
func (m *Manager) Stats() Stats {
	return Stats{
		Pools: m.reg.Infos(),
		Arena: m.arena.Stats(),
	}
}

// Close tears down the registry (each pool reporting to the close hook) and
// then the arena. Calling Close again is a no-op; any other use afterwards
// panics with types.ErrClosed.
func (m *Manager) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	return errors.Join(m.reg.Close(), m.arena.Close())
}

func (m *Manager) panicIfClosed() {
	if m.closed.Load() {
		panic(types.ErrClosed)
	}
}

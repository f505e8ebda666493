package mem

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/joshuapare/poolkit/pkg/types"
)

// Group owns one unlocked Manager per worker. Worker i's manager is created
// on first use and must only be used by that worker; memory must be freed
// on the worker that allocated it.
type Group struct {
	cfg    types.Config
	slots  []groupSlot
	closed atomic.Bool
}

type groupSlot struct {
	once sync.Once
	m    *Manager
	err  error
}

// NewGroup creates a group of n workers. cfg.Mode is forced to
// types.ModeLocal.
func NewGroup(n int, cfg types.Config) (*Group, error) {
	if n <= 0 {
		return nil, types.Wrap(types.ErrInvalidConfig, fmt.Sprintf("group size %d", n), nil)
	}
	cfg.Mode = types.ModeLocal
	cfg, err := cfg.Normalize()
	if err != nil {
		return nil, err
	}
	return &Group{cfg: cfg, slots: make([]groupSlot, n)}, nil
}

// Len returns the number of workers.
func (g *Group) Len() int {
	return len(g.slots)
}

// Worker returns worker i's manager, creating it on first call.
func (g *Group) Worker(i int) (*Manager, error) {
	if i < 0 || i >= len(g.slots) {
		return nil, fmt.Errorf("mem: worker %d out of range [0, %d)", i, len(g.slots))
	}
	if g.closed.Load() {
		return nil, types.ErrClosed
	}
	s := &g.slots[i]
	s.once.Do(func() {
		s.m, s.err = New(g.cfg)
	})
	if s.m == nil && s.err == nil {
		// Close won the race and sealed the slot.
		return nil, types.ErrClosed
	}
	return s.m, s.err
}

// Stats returns the stats of every created worker, indexed by worker.
// Workers not yet created have zero Stats.
//
// Call only while workers are idle.
func (g *Group) Stats() []Stats {
	out := make([]Stats, len(g.slots))
	for i := range g.slots {
		if m := g.slots[i].m; m != nil {
			out[i] = m.Stats()
		}
	}
	return out
}

// Close tears down every created manager in worker order. Workers must
// have stopped using their managers.
func (g *Group) Close() error {
	if g.closed.Swap(true) {
		return nil
	}
	var errs []error
	for i := range g.slots {
		s := &g.slots[i]
		s.once.Do(func() {}) // no manager is created after Close
		if s.m == nil {
			continue
		}
		if err := s.m.Close(); err != nil {
			errs = append(errs, fmt.Errorf("worker %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

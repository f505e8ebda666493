package registry

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/joshuapare/poolkit/internal/logger"
	"github.com/joshuapare/poolkit/internal/sysmem"
	"github.com/joshuapare/poolkit/pool"
)

// DefaultBudget is the per-class reservation used when Config.Budget is zero.
const DefaultBudget = 1 << 16

const useAfterClose = "registry: use after Close()"

// Config configures a Registry.
type Config struct {
	// Budget bounds each class's backing buffer: a class of size s gets
	// Budget/s blocks (at least one). Default: DefaultBudget.
	Budget int

	// Shared selects lock-guarded pools and serialized class creation.
	// When false the registry must be confined to one goroutine.
	Shared bool

	// Reserver provides backing buffers. Default: sysmem.Heap.
	Reserver sysmem.Reserver

	// Hook receives each pool's final counters at Close.
	// Default: pool.DefaultHook. Use NoHook to disable reporting.
	Hook pool.Hook
}

// NoHook is a teardown hook that ignores every report.
func NoHook(pool.PoolInfo) {}

// slot holds one class's pool in the class table.
type slot struct {
	a pool.BlockAllocator
}

// Registry owns one block pool per size class.
type Registry struct {
	budget  int
	shared  bool
	reserve sysmem.Reserver
	hook    pool.Hook

	mu      sync.Mutex // serializes class creation and Close in shared mode
	classes [numClassSlots]atomic.Pointer[slot]
	closed  atomic.Bool
}

// New creates an empty registry. Pools are created lazily by Get.
func New(cfg Config) *Registry {
	if cfg.Budget <= 0 {
		cfg.Budget = DefaultBudget
	}
	if cfg.Hook == nil {
		cfg.Hook = pool.DefaultHook
	}
	return &Registry{
		budget:  cfg.Budget,
		shared:  cfg.Shared,
		reserve: sysmem.OrHeap(cfg.Reserver),
		hook:    cfg.Hook,
	}
}

// Budget returns the per-class reservation budget in bytes.
func (r *Registry) Budget() int { return r.budget }

// Shared reports whether the registry runs in shared (locked) mode.
func (r *Registry) Shared() bool { return r.shared }

// Get returns the pool serving requests of size bytes, creating it on first
// use.
func (r *Registry) Get(size int) pool.BlockAllocator {
	key, classSize := ClassOf(size)
	if s := r.classes[key].Load(); s != nil {
		return s.a
	}
	return r.create(key, classSize)
}

// Lookup returns the pool for size only if its class already exists.
func (r *Registry) Lookup(size int) (pool.BlockAllocator, bool) {
	key, _ := ClassOf(size)
	if s := r.classes[key].Load(); s != nil {
		return s.a, true
	}
	return nil, false
}

// create inserts the pool for key. In shared mode the registry mutex is held
// and the table re-checked so concurrent first requests agree on one pool.
func (r *Registry) create(key, classSize int) pool.BlockAllocator {
	if r.shared {
		r.mu.Lock()
		defer r.mu.Unlock()
		if s := r.classes[key].Load(); s != nil {
			return s.a
		}
	}
	if r.closed.Load() {
		panic(useAfterClose)
	}

	count := Capacity(r.budget, classSize)
	a, err := r.newPool(classSize, count)
	if err != nil {
		// Reservation failed: keep the class usable with an empty pool so
		// every request takes the fault path to the Go heap.
		logger.Warn("registry: reserve failed, class served from heap",
			"class", key, "size", classSize, "count", count, "err", err)
		a, _ = r.newPool(classSize, 0, pool.WithReserver(sysmem.Heap))
	}

	r.classes[key].Store(&slot{a: a})
	logger.Debug("registry: class created", "class", key, "size", classSize, "count", count)
	return a
}

func (r *Registry) newPool(size, count int, extra ...pool.Option) (pool.BlockAllocator, error) {
	opts := append([]pool.Option{pool.WithHook(r.notifyClose), pool.WithReserver(r.reserve)}, extra...)
	if r.shared {
		return pool.NewLocked(size, count, opts...)
	}
	return pool.New(size, count, opts...)
}

// notifyClose forwards a closing pool's report to the current hook.
func (r *Registry) notifyClose(info pool.PoolInfo) {
	if h := r.hook; h != nil {
		h(info)
	}
}

// SetHook replaces the teardown hook for every pool, including pools
// already created. A nil hook disables reporting.
//
// NOT safe to call concurrently with Close.
func (r *Registry) SetHook(h pool.Hook) {
	r.hook = h
}

// Pools returns a read-only snapshot of the class table, keyed by class key.
func (r *Registry) Pools() map[int]pool.BlockAllocator {
	out := make(map[int]pool.BlockAllocator)
	for key := range r.classes {
		if s := r.classes[key].Load(); s != nil {
			out[key] = s.a
		}
	}
	return out
}

// Infos returns every pool's counters ordered by block size.
func (r *Registry) Infos() []pool.PoolInfo {
	var out []pool.PoolInfo
	for key := range r.classes {
		if s := r.classes[key].Load(); s != nil {
			out = append(out, s.a.Info())
		}
	}
	return out
}

// Close tears down every pool in ascending class order, each reporting to
// the hook. It is the registry's single teardown point; later calls are
// no-ops and Get afterwards panics.
func (r *Registry) Close() error {
	if r.shared {
		r.mu.Lock()
		defer r.mu.Unlock()
	}
	if r.closed.Swap(true) {
		return nil
	}

	var errs []error
	for key := range r.classes {
		s := r.classes[key].Swap(nil)
		if s == nil {
			continue
		}
		if err := s.a.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

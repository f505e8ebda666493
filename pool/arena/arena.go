package arena

import (
	"errors"
	"fmt"
	"slices"

	"github.com/joshuapare/poolkit/internal/buf"
	"github.com/joshuapare/poolkit/internal/extent"
	"github.com/joshuapare/poolkit/internal/format"
	"github.com/joshuapare/poolkit/internal/logger"
	"github.com/joshuapare/poolkit/internal/sysmem"
)

const (
	// DefaultBlockSize is the block size used when Config.BlockSize is zero.
	DefaultBlockSize = 16

	// DefaultInitialBlocks is the first container's size when
	// Config.InitialBlocks is zero.
	DefaultInitialBlocks = 256
)

// Config configures an Arena.
type Config struct {
	// BlockSize is the allocation granule in bytes: a power of two >= 8.
	// Default: DefaultBlockSize.
	BlockSize int

	// InitialBlocks is the minimum size of a container created while the
	// arena is empty. Default: DefaultInitialBlocks.
	InitialBlocks int

	// Reserver provides container buffers. Default: sysmem.Heap.
	Reserver sysmem.Reserver
}

// Stats is a snapshot of the arena's counters.
type Stats struct {
	BlockSize      int
	Containers     int // live containers
	CapacityBlocks int // capacity of live containers; drops only on eviction
	UsedBlocks     int // blocks held by live allocations
	PeakBlocks     int // high-water mark of UsedBlocks
	PeakContainers int // high-water mark of Containers
	LiveAllocs     int // outstanding allocations
}

// Allocator is the contract shared by Arena and LockedArena.
type Allocator interface {
	Allocate(need int) []byte
	Deallocate(b []byte) error
	BlockSize() int
	Stats() Stats
	Containers() []ContainerInfo
	Close() error
}

// Arena serves variable-length allocations as runs of contiguous blocks.
//
// NOT thread-safe. Use LockedArena when the arena is shared.
type Arena struct {
	blockSize     int
	initialBlocks int
	reserve       sysmem.Reserver

	containers []*container

	capacityBlocks int
	usedBlocks     int
	peakBlocks     int
	peakContainers int
	liveAllocs     int

	closed bool
}

// New creates an empty arena. No memory is reserved until the first
// Allocate.
func New(cfg Config) (*Arena, error) {
	if cfg.BlockSize == 0 {
		cfg.BlockSize = DefaultBlockSize
	}
	if cfg.BlockSize < format.PtrSize || !format.IsPow2(cfg.BlockSize) {
		return nil, fmt.Errorf("%w: got %d", ErrBlockSize, cfg.BlockSize)
	}
	if cfg.InitialBlocks < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInitialBlocks, cfg.InitialBlocks)
	}
	if cfg.InitialBlocks == 0 {
		cfg.InitialBlocks = DefaultInitialBlocks
	}
	return &Arena{
		blockSize:     cfg.BlockSize,
		initialBlocks: cfg.InitialBlocks,
		reserve:       sysmem.OrHeap(cfg.Reserver),
	}, nil
}

// BlockSize returns the allocation granule.
func (a *Arena) BlockSize() int {
	return a.blockSize
}

// Allocate returns need bytes backed by ceil(need/BlockSize) contiguous
// blocks. The slice has len == cap == need. need <= 0 returns nil.
//
// Allocate only fails when the Go heap is exhausted.
func (a *Arena) Allocate(need int) []byte {
	a.panicIfClosed()
	if need <= 0 {
		return nil
	}
	blocks := format.CeilDiv(need, a.blockSize)

	for _, c := range a.containers {
		if c.remaining < blocks {
			continue
		}
		if start, ok := c.findRun(blocks); ok {
			return a.take(c, start, blocks, need)
		}
	}

	c := a.grow(blocks)
	return a.take(c, 0, blocks, need)
}

// take marks a run in c and updates the arena counters.
func (a *Arena) take(c *container, start, blocks, need int) []byte {
	c.mark(start, blocks)
	a.usedBlocks += blocks
	if a.usedBlocks > a.peakBlocks {
		a.peakBlocks = a.usedBlocks
	}
	a.liveAllocs++
	return c.slice(start, a.blockSize, need)
}

// grow appends a container large enough for blocks.
func (a *Arena) grow(blocks int) *container {
	capacity := max(a.capacityBlocks/2, blocks)
	if len(a.containers) == 0 {
		capacity = max(a.initialBlocks, blocks)
	}

	size, ok := buf.MulOverflowSafe(capacity, a.blockSize)
	if !ok {
		panic(fmt.Errorf("%w: %d blocks of %d bytes", ErrTooLarge, capacity, a.blockSize))
	}

	data, release, err := a.reserve(size)
	if err != nil {
		logger.Warn("arena: reserve failed, container served from heap",
			"blocks", capacity, "bytes", size, "err", err)
		data, release, _ = sysmem.Heap(size)
	}

	c := newContainer(data, release, capacity)
	a.containers = append(a.containers, c)
	a.capacityBlocks += capacity
	a.peakContainers = max(a.peakContainers, len(a.containers))

	logger.Debug("arena: container added",
		"blocks", capacity, "containers", len(a.containers), "total", a.capacityBlocks)
	return c
}

// Deallocate returns an allocation made by Allocate. A nil or empty slice is
// a no-op. Slices that no container holds yield ErrNotOwned and leave the
// arena unchanged.
func (a *Arena) Deallocate(b []byte) error {
	a.panicIfClosed()
	if cap(b) == 0 {
		return nil
	}

	addr := extent.Addr(b)
	for i, c := range a.containers {
		off, ok := c.ext.Offset(addr)
		if !ok {
			continue
		}
		start := off / a.blockSize
		blocks := format.CeilDiv(cap(b), a.blockSize)
		if off%a.blockSize != 0 || !c.allocated(start, blocks) {
			return fmt.Errorf("%w: %d blocks at block %d", ErrNotAllocated, blocks, start)
		}

		a.usedBlocks -= blocks
		a.liveAllocs--
		c.unmark(start, blocks)
		if c.empty() {
			a.evict(i)
		}
		return nil
	}
	return ErrNotOwned
}

// evict releases container i, which holds no live allocations.
func (a *Arena) evict(i int) {
	c := a.containers[i]
	a.containers = slices.Delete(a.containers, i, i+1)
	a.capacityBlocks -= c.capacity

	if c.release != nil {
		if err := c.release(); err != nil {
			logger.Warn("arena: release container", "blocks", c.capacity, "err", err)
		}
	}
	logger.Debug("arena: container evicted",
		"blocks", c.capacity, "containers", len(a.containers), "total", a.capacityBlocks)
}

// Stats returns a snapshot of the arena's counters.
func (a *Arena) Stats() Stats {
	return Stats{
		BlockSize:      a.blockSize,
		Containers:     len(a.containers),
		CapacityBlocks: a.capacityBlocks,
		UsedBlocks:     a.usedBlocks,
		PeakBlocks:     a.peakBlocks,
		PeakContainers: a.peakContainers,
		LiveAllocs:     a.liveAllocs,
	}
}

// Containers describes the live containers in creation order.
func (a *Arena) Containers() []ContainerInfo {
	out := make([]ContainerInfo, len(a.containers))
	for i, c := range a.containers {
		out[i] = c.info()
	}
	return out
}

// Close releases every container. Containers still holding allocations are
// reported as a leak warning. Calling Close again is a no-op.
func (a *Arena) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true

	if len(a.containers) > 0 {
		logger.Warn("arena: closed with live allocations",
			"containers", len(a.containers),
			"used_blocks", a.usedBlocks,
			"allocs", a.liveAllocs)
	}

	var errs []error
	for _, c := range a.containers {
		if c.release == nil {
			continue
		}
		if err := c.release(); err != nil {
			errs = append(errs, fmt.Errorf("arena: release %d-block container: %w", c.capacity, err))
		}
	}
	a.containers = nil
	a.capacityBlocks = 0
	return errors.Join(errs...)
}

func (a *Arena) panicIfClosed() {
	if a.closed {
		panic(useAfterClose)
	}
}

var _ Allocator = (*Arena)(nil)

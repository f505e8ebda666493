package pool

import (
	"fmt"

	"github.com/joshuapare/poolkit/internal/buf"
	"github.com/joshuapare/poolkit/internal/extent"
	"github.com/joshuapare/poolkit/internal/format"
	"github.com/joshuapare/poolkit/internal/sysmem"
)

// BlockAllocator is the contract shared by the thread-confined Pool and the
// mutex-guarded LockedPool.
type BlockAllocator interface {
	// Alloc returns one block of BlockSize bytes. It never fails: an empty
	// free list is served from the Go heap and counted as a fault.
	Alloc() []byte

	// Free returns a block obtained from Alloc on the same allocator.
	Free(b []byte)

	// Info returns a snapshot of the allocator's counters.
	Info() PoolInfo

	// BlockSize returns the fixed size of every block.
	BlockSize() int

	// Owns reports whether b lies inside the pre-reserved backing buffer.
	Owns(b []byte) bool

	// Close releases the backing buffer and reports the final counters to
	// the teardown hook.
	Close() error
}

// Option customizes pool construction.
type Option func(*options)

type options struct {
	hook    Hook
	reserve sysmem.Reserver
}

// WithHook sets the teardown hook. A nil hook disables reporting.
func WithHook(h Hook) Option {
	return func(o *options) { o.hook = h }
}

// WithReserver sets the source of the backing buffer (default sysmem.Heap).
func WithReserver(r sysmem.Reserver) Option {
	return func(o *options) { o.reserve = sysmem.OrHeap(r) }
}

// Pool is a fixed-capacity free list of equal-sized blocks.
//
// NOT thread-safe. Use LockedPool when the pool is shared.
type Pool struct {
	buf     []byte
	ext     extent.Extent
	head    int // first free block, format.NoLink when the list is empty
	free    int // blocks currently on the free list
	info    PoolInfo
	hook    Hook
	release func() error
	closed  bool
}

// New reserves size*count bytes up front and threads every block onto the
// free list.
//
// Parameters:
//   - size: bytes per block, at least 8 so a free block can hold its link word
//   - count: number of blocks; 0 yields a pool where every Alloc faults
func New(size, count int, opts ...Option) (*Pool, error) {
	if size < format.PtrSize {
		return nil, fmt.Errorf("%w: got %d", ErrBlockSize, size)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBlockCount, count)
	}
	total, ok := buf.MulOverflowSafe(size, count)
	if !ok {
		return nil, fmt.Errorf("%w: %d*%d", ErrTooLarge, size, count)
	}

	o := options{hook: DefaultHook, reserve: sysmem.Heap}
	for _, opt := range opts {
		opt(&o)
	}

	data, release, err := o.reserve(total)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReserve, err)
	}

	p := &Pool{
		buf:     data,
		ext:     extent.Of(data),
		head:    format.NoLink,
		info:    PoolInfo{Size: size, Count: count},
		hook:    o.hook,
		release: release,
	}
	p.thread()
	return p, nil
}

// thread links block i to block i+1, the last block ending the list.
func (p *Pool) thread() {
	n := p.info.Count
	for i := 0; i < n; i++ {
		next := i + 1
		if next == n {
			next = format.NoLink
		}
		format.PutLink(p.block(i), next)
	}
	if n > 0 {
		p.head = 0
	}
	p.free = n
}

// block returns the full-capacity view of block i.
func (p *Pool) block(i int) []byte {
	off := i * p.info.Size
	end := off + p.info.Size
	return p.buf[off:end:end]
}

// Alloc pops the head of the free list, or serves the request from the Go
// heap and counts a fault when the list is empty.
func (p *Pool) Alloc() []byte {
	p.panicIfClosed()

	p.info.Cur++
	if p.info.Cur > p.info.Peak {
		p.info.Peak = p.info.Cur
	}

	if p.head != format.NoLink {
		b := p.block(p.head)
		p.head = format.ReadLink(b)
		p.free--
		return b
	}

	p.info.Fault++
	return make([]byte, p.info.Size)
}

// Free pushes b back onto the free list when its address lies inside the
// backing buffer. Any other slice is taken to be a fault-path allocation and
// is dropped for the collector. Free(nil) is a no-op.
func (p *Pool) Free(b []byte) {
	if b == nil {
		return
	}
	p.panicIfClosed()

	if idx, ok := p.ext.Index(extent.Addr(b), p.info.Size); ok && idx < p.info.Count {
		blk := p.block(idx)
		format.PutLink(blk, p.head)
		p.head = idx
		p.free++
	}
	p.info.Cur--
}

// Info returns a snapshot of the pool's counters.
func (p *Pool) Info() PoolInfo {
	return p.info
}

// BlockSize returns the size of every block.
func (p *Pool) BlockSize() int {
	return p.info.Size
}

// Owns reports whether b lies inside the backing buffer.
func (p *Pool) Owns(b []byte) bool {
	return p.ext.Owns(b)
}

// Extent returns the address range of the backing buffer.
func (p *Pool) Extent() extent.Extent {
	return p.ext
}

// FreeBlocks returns the number of blocks on the free list.
func (p *Pool) FreeBlocks() int {
	return p.free
}

// Close releases the backing buffer and reports the final counters to the
// hook. Calling Close again is a no-op.
func (p *Pool) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true

	info := p.info
	var err error
	if p.release != nil {
		if rerr := p.release(); rerr != nil {
			err = fmt.Errorf("pool: release %d-byte blocks: %w", info.Size, rerr)
		}
	}
	p.buf = nil
	p.ext = extent.Extent{}
	p.head = format.NoLink
	p.free = 0

	notify(p.hook, info)
	return err
}

// panicIfClosed panics if the pool has been closed.
func (p *Pool) panicIfClosed() {
	if p.closed {
		panic(useAfterClose)
	}
}

var _ BlockAllocator = (*Pool)(nil)

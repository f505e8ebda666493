// Package pool implements the fixed-size block pool: one pre-reserved buffer
// carved into equal power-of-two blocks and handed out through an intrusive
// free list.
//
// # Overview
//
// A Pool owns a single backing buffer of Size*Count bytes. Free blocks are
// chained through their own first word (see internal/format link words), so
// the free list costs no memory beyond the blocks themselves.
//
//	p, err := pool.New(32, 1024)
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	b := p.Alloc() // len(b) == 32
//	...
//	p.Free(b)
//
// # Faults
//
// When the free list is empty, Alloc does not fail. It counts a fault and
// serves the block from the Go heap instead. Free recognizes such blocks by
// address: anything outside the pool's owned extent is simply dropped and
// left to the collector.
//
// # Thread Safety
//
// Pool is not thread-safe and must stay confined to one goroutine.
// LockedPool wraps a Pool with a per-pool mutex for shared use. Both satisfy
// BlockAllocator.
//
// # Teardown
//
// Close releases the backing buffer and reports the final PoolInfo to the
// pool's Hook exactly once. A panicking hook is recovered and ignored.
//
// # Contracts
//
// Free must receive a slice returned by Alloc on the same pool. Passing a
// slice from another pool whose address happens to fall inside this pool's
// extent corrupts the free list; the ownership test is an address range
// check, not a type tag. Blocks hold raw bytes; the collector does not scan
// them for pointers.
package pool

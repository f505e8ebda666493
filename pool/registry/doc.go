// Package registry maps request sizes to power-of-two size classes and owns
// one block pool per class.
//
// # Size Classes
//
// A request of n bytes is served by the class whose block size is the
// smallest power of two >= max(n, 8). Eight bytes is the floor because a
// free block must hold its free-list link word:
//
//	Key 3:    1 -    8 bytes
//	Key 4:    9 -   16 bytes
//	Key 5:   17 -   32 bytes
//	...
//	Key k:  2^(k-1)+1 - 2^k bytes
//
// Pools are created on first use with capacity Budget/classSize blocks (at
// least one) and live until Close.
//
// # Concurrency
//
// In shared mode every pool is a pool.LockedPool, the class table is read
// with atomic loads (lookups of existing classes take no lock) and creation
// of a new class is serialized by a registry mutex distinct from the pool
// locks. In local mode nothing is locked and the registry must stay confined
// to a single goroutine.
package registry

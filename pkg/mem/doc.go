/*
Package mem provides pooled allocation of small objects and arrays on top of
the size-class registry and the block arena.

# Quick Start

	m, err := mem.New(types.DefaultConfig())
	if err != nil {
	    log.Fatal(err)
	}
	defer m.Close()

	b := m.Alloc(24) // served by the 32-byte class
	defer m.Free(b)

# Typed Objects

NewObject and DeleteObject place one value of a pointer-free type in pooled storage:

	type point struct{ X, Y float64 }

	p := mem.NewObject(m, point{1, 2})
	p.X += 1
	mem.DeleteObject(m, p)

Types containing Go pointers (strings, slices, maps, pointers, interfaces)
are rejected with a panic matching types.ErrPointerType: the garbage
collector never scans pooled memory, so anything they point to could be
reclaimed while still referenced.

# Arrays

Allocator[T] adapts the manager for element arrays. Single elements come
from the registry; arrays of two or more elements are carved from the arena
as one contiguous run:

	a := mem.For[uint32](m)
	s := a.Allocate(100)
	defer a.Deallocate(s)

Vec[T] is a growable container built on Allocator[T].

# Thread Safety

With types.ModeShared (the default) one Manager may be used from any number
of goroutines. With types.ModeLocal nothing is locked; use a Group to give
each worker its own Manager, and free memory only on the worker that
allocated it.

# Teardown

Close is the single teardown point. Each pool reports its final counters to
Config.OnPoolClose (by default a four-line report on stderr), and the arena
logs a warning if allocations are still live.
*/
package mem

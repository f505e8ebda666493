package mem

import (
	"unsafe"

	"github.com/joshuapare/poolkit/internal/buf"
	"github.com/joshuapare/poolkit/pkg/types"
)

// Allocator hands out []T backed by a manager. One element comes from the
// size-class registry; two or more are one contiguous arena run.
//
// An Allocator is a small value; copies share the manager.
type Allocator[T any] struct {
	m    *Manager
	elem int
}

// For returns the allocator for T on m. It panics with types.ErrPointerType
// when T holds pointers.
func For[T any](m *Manager) Allocator[T] {
	var zero T
	elem := int(unsafe.Sizeof(zero))
	if elem > 0 {
		mustBePointerFree[T]()
	}
	return Allocator[T]{m: m, elem: elem}
}

// Manager returns the backing manager.
func (a Allocator[T]) Manager() *Manager {
	return a.m
}

// Allocate returns n elements with len == cap == n. The contents are
// unspecified. Allocate(0) returns nil.
func (a Allocator[T]) Allocate(n int) []T {
	if n <= 0 {
		return nil
	}
	if a.elem == 0 {
		return make([]T, n)
	}
	if n == 1 {
		b := a.m.Alloc(a.elem)
		return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), 1)
	}

	size, err := buf.ArrayBytes(n, a.elem)
	if err != nil {
		panic(err)
	}
	a.m.panicIfClosed()
	b := a.m.arena.Allocate(size)
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n)
}

// Deallocate returns s, which must be a slice from Allocate with its
// original capacity. Returning an array the arena does not own panics with
// an error matching types.ErrNotOwned.
func (a Allocator[T]) Deallocate(s []T) {
	if cap(s) == 0 || a.elem == 0 {
		return
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), cap(s)*a.elem)
	if cap(s) == 1 {
		a.m.Free(b)
		return
	}

	a.m.panicIfClosed()
	if err := a.m.arena.Deallocate(b); err != nil {
		panic(types.Wrap(types.ErrNotOwned, "arena", err))
	}
}

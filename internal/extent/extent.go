// Package extent describes the address range owned by a backing buffer and
// answers ownership questions about slices handed out from it.
//
// Allocators never expose raw pointer arithmetic; instead each backing
// buffer is summarized once as an Extent and every free path asks the
// extent whether (and where) a slice lives inside it.
//
// An Extent stores a raw address, so it may only describe memory that never
// moves: Go heap allocations or pages mapped outside the Go heap. A buffer
// that lives on a goroutine stack is copied when the stack grows, leaving
// the recorded address stale.
package extent

import "unsafe"

// Extent is the half-open address range [Base, Base+Len).
type Extent struct {
	Base uintptr
	Len  int
}

// Of returns the extent covering the full capacity of b.
// A nil or zero-capacity slice yields the empty extent.
func Of(b []byte) Extent {
	if cap(b) == 0 {
		return Extent{}
	}
	return Extent{Base: Addr(b), Len: cap(b)}
}

// Addr returns the address of the first element of b, or 0 when b has no
// backing storage.
func Addr(b []byte) uintptr {
	if cap(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}

// Empty reports whether the extent covers no bytes.
func (e Extent) Empty() bool {
	return e.Len == 0
}

// End returns the exclusive upper bound of the extent.
func (e Extent) End() uintptr {
	return e.Base + uintptr(e.Len)
}

// Contains reports whether addr lies inside [Base, End).
func (e Extent) Contains(addr uintptr) bool {
	return !e.Empty() && addr >= e.Base && addr < e.End()
}

// Offset returns addr's byte offset from Base and whether addr is inside
// the extent.
func (e Extent) Offset(addr uintptr) (int, bool) {
	if !e.Contains(addr) {
		return 0, false
	}
	return int(addr - e.Base), true
}

// Index returns the index of the stride-sized slot that contains addr.
// ok is false when addr is outside the extent.
func (e Extent) Index(addr uintptr, stride int) (int, bool) {
	off, ok := e.Offset(addr)
	if !ok || stride <= 0 {
		return 0, false
	}
	return off / stride, true
}

// Owns reports whether b starts inside the extent.
func (e Extent) Owns(b []byte) bool {
	return e.Contains(Addr(b))
}

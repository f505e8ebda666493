package mem

// Vec is a growable array of T whose storage comes from an Allocator.
// The zero Vec is not usable; create one with NewVec.
//
// NOT thread-safe.
type Vec[T any] struct {
	alloc Allocator[T]
	items []T // full-capacity storage
	n     int
}

// NewVec returns an empty vector on m with room for capacity elements.
func NewVec[T any](m *Manager, capacity int) *Vec[T] {
	v := &Vec[T]{alloc: For[T](m)}
	if capacity > 0 {
		v.items = v.alloc.Allocate(capacity)
	}
	return v
}

// Len returns the number of elements.
func (v *Vec[T]) Len() int { return v.n }

// Cap returns the number of elements the current storage holds.
func (v *Vec[T]) Cap() int { return cap(v.items) }

// At returns element i. It panics when i is out of range.
func (v *Vec[T]) At(i int) T {
	return v.items[:v.n][i]
}

// Set replaces element i. It panics when i is out of range.
func (v *Vec[T]) Set(i int, x T) {
	v.items[:v.n][i] = x
}

// Items returns the elements. The slice aliases pooled storage and is only
// valid until the next Append or Release.
func (v *Vec[T]) Items() []T {
	return v.items[:v.n:v.n]
}

// Append adds xs to the end, moving the storage when it is full. xs may
// alias the vector's own items.
func (v *Vec[T]) Append(xs ...T) {
	var old []T
	if need := v.n + len(xs); need > cap(v.items) {
		old = v.grow(need)
	}
	v.n += copy(v.items[v.n:cap(v.items)], xs)
	v.alloc.Deallocate(old)
}

// grow moves the elements to larger storage and returns the old storage,
// which the caller frees once nothing reads from it.
func (v *Vec[T]) grow(need int) []T {
	newCap := max(2*cap(v.items), need, 4)
	items := v.alloc.Allocate(newCap)
	copy(items, v.items[:v.n])
	old := v.items
	v.items = items
	return old
}

// Release returns the storage and empties the vector. The vector can be
// reused afterwards.
func (v *Vec[T]) Release() {
	v.alloc.Deallocate(v.items)
	v.items = nil
	v.n = 0
}

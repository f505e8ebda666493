package mem

import (
	"reflect"
	"sync"
	"unsafe"

	"github.com/joshuapare/poolkit/pkg/types"
)

// NewObject allocates pooled storage for one T and stores v in it.
// T must be pointer-free; zero-size types never touch the pools.
func NewObject[T any](m *Manager, v T) *T {
	size := unsafe.Sizeof(v)
	if size == 0 {
		return new(T)
	}
	mustBePointerFree[T]()

	b := m.Alloc(int(size))
	p := (*T)(unsafe.Pointer(unsafe.SliceData(b)))
	*p = v
	return p
}

// DeleteObject zeroes *p and returns its storage. DeleteObject(m, nil) is a no-op.
// p must come from NewObject on the same manager.
func DeleteObject[T any](m *Manager, p *T) {
	if p == nil {
		return
	}
	size := unsafe.Sizeof(*p)
	if size == 0 {
		return
	}
	var zero T
	*p = zero
	m.Free(unsafe.Slice((*byte)(unsafe.Pointer(p)), size))
}

// pointerFree caches the verdict per type.
var pointerFree sync.Map // reflect.Type -> bool

// mustBePointerFree panics with types.ErrPointerType when T holds pointers.
func mustBePointerFree[T any]() {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if v, ok := pointerFree.Load(t); ok {
		if !v.(bool) {
			panic(types.Wrap(types.ErrPointerType, t.String(), nil))
		}
		return
	}
	ok := !hasPointers(t)
	pointerFree.Store(t, ok)
	if !ok {
		panic(types.Wrap(types.ErrPointerType, t.String(), nil))
	}
}

// hasPointers reports whether values of t contain anything the garbage
// collector must trace.
func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

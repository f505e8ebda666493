package extent

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// pinned keeps test buffers reachable from a global so they are heap
// allocated; stack buffers move when the stack grows.
var pinned [][]byte

func heapBytes(n int) []byte {
	b := make([]byte, n)
	pinned = append(pinned, b)
	return b
}

func TestOfAndContains(t *testing.T) {
	buf := heapBytes(64)
	e := Of(buf)

	require.False(t, e.Empty())
	require.Equal(t, 64, e.Len)
	require.Equal(t, Addr(buf), e.Base)
	require.Equal(t, e.Base+64, e.End())

	require.True(t, e.Contains(e.Base))
	require.True(t, e.Contains(e.Base+63))
	require.False(t, e.Contains(e.Base+64), "upper bound is exclusive")
	require.False(t, e.Contains(e.Base-1))
}

func TestIndex(t *testing.T) {
	buf := heapBytes(8 * 16)
	e := Of(buf)

	for i := 0; i < 16; i++ {
		idx, ok := e.Index(Addr(buf[i*8:]), 8)
		require.True(t, ok)
		require.Equal(t, i, idx)
	}

	// Interior byte maps to its containing slot.
	idx, ok := e.Index(Addr(buf[8*3+5:]), 8)
	require.True(t, ok)
	require.Equal(t, 3, idx)

	other := heapBytes(8)
	_, ok = e.Index(Addr(other), 8)
	require.False(t, ok)

	_, ok = e.Index(e.Base, 0)
	require.False(t, ok, "zero stride is rejected")
}

func TestEmptyExtent(t *testing.T) {
	var e Extent
	require.True(t, e.Empty())
	require.False(t, e.Contains(0))
	require.Equal(t, Extent{}, Of(nil))
	require.Equal(t, uintptr(0), Addr(nil))
	require.False(t, Of(make([]byte, 4)).Owns(nil))
}

func TestOwnsSubslice(t *testing.T) {
	buf := heapBytes(32)
	e := Of(buf[:8])
	require.Equal(t, 32, e.Len, "extent covers capacity, not length")
	require.True(t, e.Owns(buf[31:]))
	require.False(t, e.Owns(heapBytes(1)))
}

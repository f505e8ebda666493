package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/poolkit/internal/extent"
)

func TestLockedPool_Concurrent(t *testing.T) {
	const (
		workers = 8
		rounds  = 2000
		hold    = 4
	)
	l, err := NewLocked(16, workers*hold, WithHook(nil))
	require.NoError(t, err)
	defer l.Close()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(id byte) {
			defer wg.Done()
			held := make([][]byte, 0, hold)
			for i := 0; i < rounds; i++ {
				b := l.Alloc()
				for j := range b {
					b[j] = id
				}
				held = append(held, b)
				if len(held) == hold {
					for _, h := range held {
						for j := range h {
							if h[j] != id {
								t.Errorf("block shared between workers")
								return
							}
						}
						l.Free(h)
					}
					held = held[:0]
				}
			}
			for _, h := range held {
				l.Free(h)
			}
		}(byte(w + 1))
	}
	wg.Wait()

	info := l.Info()
	require.Equal(t, 0, info.Cur)
	require.LessOrEqual(t, info.Peak, workers*hold)
	require.Equal(t, 0, info.Fault, "capacity covers every worker's hold")
	require.Equal(t, workers*hold, l.FreeBlocks())
}

func TestLockedPool_Contract(t *testing.T) {
	var got []PoolInfo
	l, err := NewLocked(32, 2, WithHook(func(i PoolInfo) { got = append(got, i) }))
	require.NoError(t, err)

	require.Equal(t, 32, l.BlockSize())
	a := l.Alloc()
	b := l.Alloc()
	c := l.Alloc()
	require.True(t, l.Owns(a))
	require.True(t, l.Owns(b))
	require.False(t, l.Owns(c))
	require.NotEqual(t, extent.Addr(a), extent.Addr(b))

	l.Free(a)
	require.NoError(t, l.Close())
	require.Len(t, got, 1)
	require.Equal(t, 2, got[0].Cur)
	require.Equal(t, 1, got[0].Fault)

	_, err = NewLocked(1, 1)
	require.ErrorIs(t, err, ErrBlockSize)
}

package pool

import (
	"bytes"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/poolkit/internal/extent"
	"github.com/joshuapare/poolkit/internal/sysmem"
)

// newTestPool creates a pool whose close report is discarded.
func newTestPool(t testing.TB, size, count int, opts ...Option) *Pool {
	t.Helper()
	opts = append([]Option{WithHook(nil)}, opts...)
	p, err := New(size, count, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestNew_Validation(t *testing.T) {
	_, err := New(4, 10)
	require.ErrorIs(t, err, ErrBlockSize)

	_, err = New(8, -1)
	require.ErrorIs(t, err, ErrBlockCount)

	_, err = New(math.MaxInt/2, 4)
	require.ErrorIs(t, err, ErrTooLarge)

	p, err := New(8, 0, WithHook(nil))
	require.NoError(t, err)
	require.Equal(t, 0, p.FreeBlocks())
	require.NoError(t, p.Close())
}

func TestNew_ReserveFailure(t *testing.T) {
	boom := func(int) ([]byte, func() error, error) {
		return nil, nil, bytes.ErrTooLarge
	}
	_, err := New(16, 4, WithReserver(boom))
	require.ErrorIs(t, err, ErrReserve)
	require.ErrorIs(t, err, bytes.ErrTooLarge)
}

// Test_FaultCounting exhausts a four-block pool and checks the fifth block
// comes from the heap.
func Test_FaultCounting(t *testing.T) {
	p := newTestPool(t, 16, 4)

	blocks := make([][]byte, 0, 5)
	for i := 0; i < 5; i++ {
		blocks = append(blocks, p.Alloc())
	}

	info := p.Info()
	require.Equal(t, 1, info.Fault)
	require.Equal(t, 5, info.Cur)
	require.Equal(t, 5, info.Peak)

	for i := 0; i < 4; i++ {
		require.True(t, p.Owns(blocks[i]), "block %d should be resident", i)
	}
	require.False(t, p.Owns(blocks[4]), "fault block must lie outside the backing buffer")
	require.Len(t, blocks[4], 16)

	for _, b := range blocks {
		p.Free(b)
	}
	require.Equal(t, 0, p.Info().Cur)
	require.Equal(t, 4, p.FreeBlocks(), "fault block is not pushed onto the free list")
	require.Equal(t, 1, p.Info().Fault, "fault count never decreases")
}

// Test_Distinctness checks that outstanding blocks never overlap.
func Test_Distinctness(t *testing.T) {
	const size, count = 32, 64
	p := newTestPool(t, size, count)

	seen := make(map[uintptr]bool, count)
	for i := 0; i < count; i++ {
		b := p.Alloc()
		require.Len(t, b, size)
		require.Equal(t, size, cap(b), "capacity must not reach into the next block")

		addr := extent.Addr(b)
		require.False(t, seen[addr], "address handed out twice")
		seen[addr] = true

		// Stamp the block; neighbours must never see it.
		for j := range b {
			b[j] = byte(i)
		}
	}

	base := p.Extent().Base
	for addr := range seen {
		require.Zero(t, (addr-base)%size, "block must start on a block boundary")
	}
	require.Equal(t, 0, p.FreeBlocks())
	require.Equal(t, 0, p.Info().Fault)
}

// Test_RoundTrip checks counters return to their prior state after an
// Alloc immediately followed by Free.
func Test_RoundTrip(t *testing.T) {
	p := newTestPool(t, 8, 4)

	held := p.Alloc()
	before := p.Info()
	freeBefore := p.FreeBlocks()

	b := p.Alloc()
	p.Free(b)

	after := p.Info()
	require.Equal(t, before.Cur, after.Cur)
	require.Equal(t, freeBefore, p.FreeBlocks())
	require.Equal(t, before.Fault, after.Fault)

	p.Free(held)
	require.Equal(t, 0, p.Info().Cur)
}

// Test_LIFOReuse checks the most recently freed block is handed out next.
func Test_LIFOReuse(t *testing.T) {
	p := newTestPool(t, 8, 4)
	a := p.Alloc()
	b := p.Alloc()
	p.Free(a)
	require.Equal(t, extent.Addr(a), extent.Addr(p.Alloc()))
	p.Free(b)
	require.Equal(t, extent.Addr(b), extent.Addr(p.Alloc()))
}

// Test_PeakMonotonic drives a random alloc/free sequence and checks Peak
// tracks the maximum Cur observed and never decreases.
func Test_PeakMonotonic(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	p := newTestPool(t, 16, 32)

	var live [][]byte
	maxCur, lastPeak := 0, 0
	for i := 0; i < 5000; i++ {
		if len(live) == 0 || r.Intn(3) != 0 {
			live = append(live, p.Alloc())
		} else {
			k := r.Intn(len(live))
			p.Free(live[k])
			live[k] = live[len(live)-1]
			live = live[:len(live)-1]
		}

		info := p.Info()
		require.Equal(t, len(live), info.Cur)
		if info.Cur > maxCur {
			maxCur = info.Cur
		}
		require.GreaterOrEqual(t, info.Peak, lastPeak, "peak decreased at step %d", i)
		require.Equal(t, maxCur, info.Peak)
		lastPeak = info.Peak
	}

	for _, b := range live {
		p.Free(b)
	}
	require.Equal(t, 0, p.Info().Cur)
	require.Equal(t, 32, p.FreeBlocks())
}

// Test_InteriorPointerFree checks that a resliced block still maps back to
// its own block.
func Test_InteriorPointerFree(t *testing.T) {
	p := newTestPool(t, 32, 2)
	b := p.Alloc()
	p.Free(b[8:])
	require.Equal(t, 2, p.FreeBlocks())
	require.Equal(t, extent.Addr(b), extent.Addr(p.Alloc()))
}

func TestFree_Nil(t *testing.T) {
	p := newTestPool(t, 8, 1)
	p.Free(nil)
	require.Equal(t, 0, p.Info().Cur)
}

func TestClose_ReportsOnce(t *testing.T) {
	var reports []PoolInfo
	p, err := New(64, 8, WithHook(func(info PoolInfo) {
		reports = append(reports, info)
	}))
	require.NoError(t, err)

	p.Alloc()
	p.Alloc()
	p.Free(p.Alloc())

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	require.Len(t, reports, 1)
	require.Equal(t, PoolInfo{Size: 64, Count: 8, Cur: 2, Peak: 3, Fault: 0}, reports[0])
	require.Equal(t, 2, reports[0].Leaked())
}

func TestClose_PanickingHookIsDiscarded(t *testing.T) {
	p, err := New(8, 2, WithHook(func(PoolInfo) { panic("hook failure") }))
	require.NoError(t, err)
	require.NotPanics(t, func() {
		require.NoError(t, p.Close())
	})
}

func TestUseAfterClose(t *testing.T) {
	p, err := New(8, 2, WithHook(nil))
	require.NoError(t, err)
	b := p.Alloc()
	require.NoError(t, p.Close())

	require.PanicsWithValue(t, useAfterClose, func() { p.Alloc() })
	require.PanicsWithValue(t, useAfterClose, func() { p.Free(b) })
}

func TestPagesBacking(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping page reservation in short mode")
	}
	p := newTestPool(t, 64, 128, WithReserver(sysmem.Pages))

	b := p.Alloc()
	require.True(t, p.Owns(b))
	for i := range b {
		b[i] = 0x5a
	}
	p.Free(b)
	require.Equal(t, 128, p.FreeBlocks())
}

func BenchmarkPool_AllocFree(b *testing.B) {
	p := newTestPool(b, 8, 1024)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p.Free(p.Alloc())
	}
}

func BenchmarkHeap_AllocFree(b *testing.B) {
	b.ReportAllocs()
	var sink []byte
	for i := 0; i < b.N; i++ {
		sink = make([]byte, 8)
	}
	_ = sink
}

package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrintInfo(t *testing.T) {
	var out bytes.Buffer
	PrintInfo(&out, PoolInfo{Size: 8, Count: 8192, Cur: 3, Peak: 1500, Fault: 2})

	want := "[poolkit] Memory pool with 8,192 8-byte blocks\n" +
		"[poolkit]  Leaked: 3 blocks\n" +
		"[poolkit]  Peak usage: 1,500 blocks\n" +
		"[poolkit]  Block fault: 2 times\n"
	require.Equal(t, want, out.String())
}

func TestNotify(t *testing.T) {
	called := 0
	notify(func(PoolInfo) { called++ }, PoolInfo{})
	require.Equal(t, 1, called)

	require.NotPanics(t, func() { notify(nil, PoolInfo{}) })
	require.NotPanics(t, func() {
		notify(func(PoolInfo) { panic(bytes.ErrTooLarge) }, PoolInfo{Size: 8})
	})
}

package format

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLog2Ceil(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{-3, 0},
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 2},
		{5, 3},
		{8, 3},
		{9, 4},
		{4096, 12},
		{4097, 13},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Log2Ceil(tt.n), "Log2Ceil(%d)", tt.n)
	}
}

func TestIsPow2(t *testing.T) {
	require.True(t, IsPow2(1))
	require.True(t, IsPow2(64))
	require.False(t, IsPow2(0))
	require.False(t, IsPow2(-8))
	require.False(t, IsPow2(24))
}

func TestCeilDiv(t *testing.T) {
	require.Equal(t, 0, CeilDiv(0, 16))
	require.Equal(t, 1, CeilDiv(1, 16))
	require.Equal(t, 1, CeilDiv(16, 16))
	require.Equal(t, 2, CeilDiv(17, 16))
}

func TestLinkWord(t *testing.T) {
	block := make([]byte, 16)
	require.Equal(t, NoLink, ReadLink(block), "zeroed word is end of list")

	PutLink(block, 0)
	require.Equal(t, 0, ReadLink(block))

	PutLink(block, 41)
	require.Equal(t, 41, ReadLink(block))
	require.Equal(t, uint64(42), binary.LittleEndian.Uint64(block))

	PutLink(block, NoLink)
	require.Equal(t, NoLink, ReadLink(block))
}

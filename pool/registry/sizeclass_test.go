package registry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassOf(t *testing.T) {
	tests := []struct {
		size      int
		key       int
		classSize int
	}{
		{-1, 3, 8},
		{0, 3, 8},
		{1, 3, 8},
		{5, 3, 8},
		{8, 3, 8},
		{9, 4, 16},
		{16, 4, 16},
		{17, 5, 32},
		{100, 7, 128},
		{4096, 12, 4096},
		{4097, 13, 8192},
	}
	for _, tt := range tests {
		key, size := ClassOf(tt.size)
		require.Equal(t, tt.key, key, "size %d", tt.size)
		require.Equal(t, tt.classSize, size, "size %d", tt.size)
	}
}

func TestClassOf_Largest(t *testing.T) {
	key, size := ClassOf(1 << MaxClassKey)
	require.Equal(t, MaxClassKey, key)
	require.Equal(t, 1<<MaxClassKey, size)

	require.Panics(t, func() { ClassOf(1<<MaxClassKey + 1) })
}

func TestCapacity(t *testing.T) {
	require.Equal(t, 8192, Capacity(1<<16, 8))
	require.Equal(t, 1, Capacity(1<<16, 1<<16))
	require.Equal(t, 1, Capacity(1<<16, 1<<20))
}

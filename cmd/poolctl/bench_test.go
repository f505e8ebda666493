package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBenchCommand(t *testing.T) {
	for _, mode := range []string{"shared", "local"} {
		t.Run(mode, func(t *testing.T) {
			resetFlags()
			benchIters = 2000
			benchWindow = 16
			benchWorkers = 2
			benchMode = mode

			out, err := captureOutput(t, runBench)
			require.NoError(t, err)
			require.Contains(t, out, "ns/op")
			require.Contains(t, out, "[poolkit] Memory pool with 2,048 32-byte blocks")
			require.Contains(t, out, "Leaked: 0 blocks")
		})
	}
}

func TestBenchCommand_JSON(t *testing.T) {
	resetFlags()
	jsonOut = true
	benchIters = 1000
	benchSize = 100
	benchRandom = true
	benchMode = "local"
	benchWorkers = 3

	out, err := captureOutput(t, runBench)
	require.NoError(t, err)

	var report BenchReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Equal(t, "local", report.Mode)
	require.Equal(t, 3, report.Workers)
	require.NotEmpty(t, report.Pools)
	for _, info := range report.Pools {
		require.Zero(t, info.Cur, "%d-byte pool", info.Size)
		require.LessOrEqual(t, info.Size, 128)
	}
}

func TestBenchCommand_InvalidFlags(t *testing.T) {
	resetFlags()
	benchMode = "threadlocal"
	_, err := captureOutput(t, runBench)
	require.Error(t, err)

	resetFlags()
	benchIters = 0
	_, err = captureOutput(t, runBench)
	require.Error(t, err)
}

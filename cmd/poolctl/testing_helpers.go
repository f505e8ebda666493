package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/joshuapare/poolkit/pool/arena"
	"github.com/joshuapare/poolkit/pkg/types"
)

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	// Drain concurrently so large outputs cannot fill the pipe.
	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.Bytes()
	}()

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout
	out := <-done
	r.Close()

	return string(out), fnErr
}

// resetFlags restores every flag to its default.
func resetFlags() {
	verbose, quiet, jsonOut = false, false, false
	budget = types.DefaultBudget

	benchIters, benchSize, benchWindow, benchWorkers = 1_000_000, 24, 64, 1
	benchMode, benchRandom, benchSeed = "shared", false, 1

	arenaBlock, arenaInitial = arena.DefaultBlockSize, arena.DefaultInitialBlocks
	arenaOps, arenaMax, arenaSeed = 10_000, 256, 1
}

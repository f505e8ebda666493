package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/joshuapare/poolkit/pool/arena"
)

var (
	arenaBlock   int
	arenaInitial int
	arenaOps     int
	arenaMax     int
	arenaSeed    int64
)

func init() {
	cmd := newArenaCmd()
	cmd.Flags().IntVar(&arenaBlock, "block", arena.DefaultBlockSize, "Block size in bytes (power of two >= 8)")
	cmd.Flags().IntVar(&arenaInitial, "initial", arena.DefaultInitialBlocks, "Blocks in the first container")
	cmd.Flags().IntVar(&arenaOps, "ops", 10_000, "Allocate/deallocate operations")
	cmd.Flags().IntVar(&arenaMax, "max", 256, "Largest request in bytes")
	cmd.Flags().Int64Var(&arenaSeed, "seed", 1, "Random seed")
	rootCmd.AddCommand(cmd)
}

func newArenaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arena",
		Short: "Simulate a variable-length workload on the block arena",
		Long: `The arena command runs a random mix of allocations (1 to --max bytes)
and deallocations on a block arena, then frees everything that is still
live. It reports the arena counters after the workload and after the drain;
a drained arena has released every container.

Example:
  poolctl arena
  poolctl arena --block 64 --initial 1024 --ops 100000
  poolctl arena --seed 7 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArena()
		},
	}
	return cmd
}

// ArenaReport is the result of one arena simulation.
type ArenaReport struct {
	Ops        int                   `json:"ops"`
	Allocs     int                   `json:"allocs"`
	Frees      int                   `json:"frees"`
	Workload   arena.Stats           `json:"workload"`
	Containers []arena.ContainerInfo `json:"containers"`
	Drained    arena.Stats           `json:"drained"`
}

func runArena() error {
	if arenaOps < 0 || arenaMax <= 0 {
		return fmt.Errorf("ops must be non-negative and max positive")
	}
	a, err := arena.New(arena.Config{BlockSize: arenaBlock, InitialBlocks: arenaInitial})
	if err != nil {
		return err
	}
	defer a.Close()

	report := ArenaReport{Ops: arenaOps}
	rng := rand.New(rand.NewSource(arenaSeed))
	var live [][]byte
	for i := 0; i < arenaOps; i++ {
		if len(live) == 0 || rng.Intn(5) < 3 {
			live = append(live, a.Allocate(1+rng.Intn(arenaMax)))
			report.Allocs++
			continue
		}
		j := rng.Intn(len(live))
		if err := a.Deallocate(live[j]); err != nil {
			return fmt.Errorf("deallocate: %w", err)
		}
		live[j] = live[len(live)-1]
		live = live[:len(live)-1]
		report.Frees++
	}

	report.Workload = a.Stats()
	report.Containers = a.Containers()

	for _, b := range live {
		if err := a.Deallocate(b); err != nil {
			return fmt.Errorf("drain: %w", err)
		}
	}
	report.Drained = a.Stats()

	if jsonOut {
		return printJSON(report)
	}
	printArenaReport(report)
	return nil
}

func printArenaReport(r ArenaReport) {
	printInfo("Operations: %d (%d allocs, %d frees)\n", r.Ops, r.Allocs, r.Frees)
	printInfo("\nAfter workload:\n")
	printArenaStats(r.Workload)
	for i, c := range r.Containers {
		printVerbose("  container %d: %d blocks, %d free, cursor %d\n",
			i, c.Capacity, c.Remaining, c.FirstAvailable)
	}
	printInfo("\nAfter drain:\n")
	printArenaStats(r.Drained)
}

func printArenaStats(s arena.Stats) {
	printInfo("  Block size:      %d bytes\n", s.BlockSize)
	printInfo("  Containers:      %d (peak %d)\n", s.Containers, s.PeakContainers)
	printInfo("  Blocks:          %d used of %d (peak %d)\n", s.UsedBlocks, s.CapacityBlocks, s.PeakBlocks)
	printInfo("  Live allocs:     %d\n", s.LiveAllocs)
}

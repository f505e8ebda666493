package main

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/poolkit/pkg/mem"
	"github.com/joshuapare/poolkit/pkg/types"
	"github.com/joshuapare/poolkit/pool"
)

var (
	benchIters   int
	benchSize    int
	benchWindow  int
	benchWorkers int
	benchMode    string
	benchRandom  bool
	benchSeed    int64
)

func init() {
	cmd := newBenchCmd()
	cmd.Flags().IntVar(&benchIters, "iters", 1_000_000, "Alloc/free pairs per worker")
	cmd.Flags().IntVar(&benchSize, "size", 24, "Request size in bytes (upper bound with --random)")
	cmd.Flags().IntVar(&benchWindow, "window", 64, "Allocations kept live before each is freed")
	cmd.Flags().IntVar(&benchWorkers, "workers", 1, "Concurrent workers")
	cmd.Flags().StringVar(&benchMode, "mode", "shared", "Thread-safety mode: shared or local")
	cmd.Flags().BoolVar(&benchRandom, "random", false, "Draw request sizes uniformly from [1, size]")
	cmd.Flags().Int64Var(&benchSeed, "seed", 1, "Random seed for --random")
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare pooled alloc/free churn with the Go heap",
		Long: `The bench command churns allocations through a memory manager and
through the Go heap, keeping a sliding window of live allocations, and
reports the time per alloc/free pair together with the final pool counters.

In shared mode all workers use one manager; in local mode each worker owns
its own manager.

Example:
  poolctl bench
  poolctl bench --size 100 --random --iters 500000
  poolctl bench --mode local --workers 4 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench()
		},
	}
	return cmd
}

// BenchReport is the result of one bench run.
type BenchReport struct {
	Mode        string          `json:"mode"`
	Workers     int             `json:"workers"`
	Iters       int             `json:"iters"`
	Size        int             `json:"size"`
	Random      bool            `json:"random"`
	PoolNsPerOp float64         `json:"pool_ns_per_op"`
	HeapNsPerOp float64         `json:"heap_ns_per_op"`
	Pools       []pool.PoolInfo `json:"pools"`
}

func runBench() error {
	mode, err := types.ParseMode(benchMode)
	if err != nil {
		return err
	}
	if benchIters <= 0 || benchSize <= 0 || benchWindow <= 0 || benchWorkers <= 0 {
		return fmt.Errorf("iters, size, window and workers must be positive")
	}

	var (
		mu    sync.Mutex
		infos []pool.PoolInfo
	)
	cfg := baseConfig()
	cfg.Mode = mode
	cfg.OnPoolClose = func(info pool.PoolInfo) {
		mu.Lock()
		infos = append(infos, info)
		mu.Unlock()
	}

	printVerbose("Benchmark: %d workers, %d iterations, %s mode\n", benchWorkers, benchIters, mode)

	poolDur, err := benchManagers(cfg)
	if err != nil {
		return err
	}
	heapDur := runWorkers(benchWorkers, func(w int) {
		churn(benchSeed+int64(w), func(n int) []byte { return make([]byte, n) }, func([]byte) {})
	})

	ops := float64(benchIters * benchWorkers)
	report := BenchReport{
		Mode:        mode.String(),
		Workers:     benchWorkers,
		Iters:       benchIters,
		Size:        benchSize,
		Random:      benchRandom,
		PoolNsPerOp: float64(poolDur.Nanoseconds()) / ops,
		HeapNsPerOp: float64(heapDur.Nanoseconds()) / ops,
		Pools:       infos,
	}

	if jsonOut {
		return printJSON(report)
	}
	printBenchReport(report)
	return nil
}

// benchManagers runs the churn on managers built from cfg and closes them,
// which reports every pool to cfg.OnPoolClose.
func benchManagers(cfg types.Config) (time.Duration, error) {
	if cfg.Mode == types.ModeLocal {
		g, err := mem.NewGroup(benchWorkers, cfg)
		if err != nil {
			return 0, err
		}
		for w := 0; w < benchWorkers; w++ {
			if _, err := g.Worker(w); err != nil {
				_ = g.Close()
				return 0, err
			}
		}
		d := runWorkers(benchWorkers, func(w int) {
			m, _ := g.Worker(w)
			churn(benchSeed+int64(w), m.Alloc, m.Free)
		})
		return d, g.Close()
	}

	m, err := mem.New(cfg)
	if err != nil {
		return 0, err
	}
	d := runWorkers(benchWorkers, func(w int) {
		churn(benchSeed+int64(w), m.Alloc, m.Free)
	})
	return d, m.Close()
}

// runWorkers runs fn on n goroutines and returns the wall time.
func runWorkers(n int, fn func(w int)) time.Duration {
	var wg sync.WaitGroup
	start := time.Now()
	for w := 0; w < n; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			fn(w)
		}(w)
	}
	wg.Wait()
	return time.Since(start)
}

// churn performs benchIters alloc/free pairs with a sliding window of live
// allocations, then frees the window.
func churn(seed int64, alloc func(int) []byte, free func([]byte)) {
	rng := rand.New(rand.NewSource(seed))
	window := make([][]byte, benchWindow)
	for i := 0; i < benchIters; i++ {
		slot := i % benchWindow
		if window[slot] != nil {
			free(window[slot])
		}
		n := benchSize
		if benchRandom {
			n = 1 + rng.Intn(benchSize)
		}
		b := alloc(n)
		b[0] = byte(i)
		window[slot] = b
	}
	for _, b := range window {
		if b != nil {
			free(b)
		}
	}
}

func printBenchReport(r BenchReport) {
	printInfo("Mode:     %s (%d workers)\n", r.Mode, r.Workers)
	printInfo("Requests: %d x %d bytes", r.Iters, r.Size)
	if r.Random {
		printInfo(" (random)")
	}
	printInfo("\n")
	printInfo("Pool:     %.1f ns/op\n", r.PoolNsPerOp)
	printInfo("Heap:     %.1f ns/op\n", r.HeapNsPerOp)
	if r.PoolNsPerOp > 0 {
		printInfo("Speedup:  %.2fx\n", r.HeapNsPerOp/r.PoolNsPerOp)
	}
	if len(r.Pools) == 0 {
		return
	}
	printInfo("\n")
	w := infoWriter()
	for _, info := range r.Pools {
		pool.PrintInfo(w, info)
	}
}

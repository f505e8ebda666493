package pool

import (
	"io"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/poolkit/internal/logger"
)

// PoolInfo is a snapshot of one pool's counters.
type PoolInfo struct {
	Size  int // bytes per block
	Count int // block capacity of the backing buffer
	Cur   int // outstanding allocations
	Peak  int // high-water mark of Cur
	Fault int // allocations served by the Go heap because the free list was empty
}

// Leaked returns the number of blocks still outstanding. At teardown this is
// the leak count.
func (i PoolInfo) Leaked() int { return i.Cur }

// Hook receives a pool's final counters when the pool is closed.
type Hook func(PoolInfo)

// DefaultHook prints the pool report to stderr.
func DefaultHook(info PoolInfo) {
	PrintInfo(os.Stderr, info)
}

// printer groups digits the way diagnostics are usually read ("1,024").
var printer = message.NewPrinter(language.English)

// PrintInfo writes the four-line teardown report for info to w:
//
//	[poolkit] Memory pool with 8,192 8-byte blocks
//	[poolkit]  Leaked: 0 blocks
//	[poolkit]  Peak usage: 312 blocks
//	[poolkit]  Block fault: 0 times
func PrintInfo(w io.Writer, info PoolInfo) {
	printer.Fprintf(w, "[poolkit] Memory pool with %d %d-byte blocks\n", info.Count, info.Size)
	printer.Fprintf(w, "[poolkit]  Leaked: %d blocks\n", info.Cur)
	printer.Fprintf(w, "[poolkit]  Peak usage: %d blocks\n", info.Peak)
	printer.Fprintf(w, "[poolkit]  Block fault: %d times\n", info.Fault)
}

// notify hands info to h. Teardown must never fail because of a diagnostic
// hook, so a panic inside h is recovered and discarded.
func notify(h Hook, info PoolInfo) {
	if h == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("pool close hook panicked", "size", info.Size, "panic", r)
		}
	}()
	h(info)
}

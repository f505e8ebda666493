package types

import (
	"fmt"
	"strings"

	"github.com/joshuapare/poolkit/internal/format"
	"github.com/joshuapare/poolkit/internal/sysmem"
	"github.com/joshuapare/poolkit/pool"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindConfig    ErrKind = iota // invalid configuration value
	ErrKindOwnership                // memory returned to an allocator that does not own it
	ErrKindType                     // type unsuitable for pooled storage
	ErrKindState                    // invalid operation for current state (e.g., closed)
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindConfig:
		return "config"
	case ErrKindOwnership:
		return "ownership"
	case ErrKindType:
		return "type"
	case ErrKindState:
		return "state"
	default:
		return fmt.Sprintf("ErrKind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Sentinels commonly returned by implementations.
var (
	// ErrInvalidConfig indicates a Config value out of range.
	ErrInvalidConfig = &Error{Kind: ErrKindConfig, Msg: "invalid allocator config"}
	// ErrNotOwned indicates memory freed to an allocator that did not hand it out.
	ErrNotOwned = &Error{Kind: ErrKindOwnership, Msg: "memory not owned by allocator"}
	// ErrPointerType indicates a type containing Go pointers was used with
	// pooled storage, which the garbage collector does not scan.
	ErrPointerType = &Error{Kind: ErrKindType, Msg: "type contains pointers"}
	// ErrClosed indicates use of a manager after Close.
	ErrClosed = &Error{Kind: ErrKindState, Msg: "allocator is closed"}
)

// Wrap annotates sentinel with detail and an optional cause. The result
// matches sentinel (and cause) under errors.Is.
func Wrap(sentinel *Error, detail string, cause error) error {
	switch {
	case cause == nil && detail == "":
		return sentinel
	case cause == nil:
		return fmt.Errorf("%w (%s)", sentinel, detail)
	case detail == "":
		return fmt.Errorf("%w: %w", sentinel, cause)
	default:
		return fmt.Errorf("%w (%s): %w", sentinel, detail, cause)
	}
}

// -----------------------------------------------------------------------------
// Configuration
// -----------------------------------------------------------------------------

// Mode selects the thread-safety strategy.
type Mode int

const (
	// ModeShared: one manager shared by all goroutines. Every pool and the
	// arena take their own lock; class lookups are lock-free.
	ModeShared Mode = iota
	// ModeLocal: no locks. Each worker owns its own manager (see mem.Group)
	// and must free only what it allocated.
	ModeLocal
)

func (m Mode) String() string {
	switch m {
	case ModeShared:
		return "shared"
	case ModeLocal:
		return "local"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "shared" or "local" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shared", "":
		return ModeShared, nil
	case "local":
		return ModeLocal, nil
	}
	return 0, Wrap(ErrInvalidConfig, fmt.Sprintf("unknown mode %q", s), nil)
}

// Backing selects where backing buffers come from.
type Backing int

const (
	// BackingHeap reserves buffers from the Go heap.
	BackingHeap Backing = iota
	// BackingOS reserves anonymous pages from the operating system, outside
	// the garbage-collected heap.
	BackingOS
)

func (b Backing) String() string {
	switch b {
	case BackingHeap:
		return "heap"
	case BackingOS:
		return "os"
	default:
		return fmt.Sprintf("Backing(%d)", int(b))
	}
}

// Reserver returns the buffer source for b.
func (b Backing) Reserver() sysmem.Reserver {
	if b == BackingOS {
		return sysmem.Pages
	}
	return sysmem.Heap
}

// Config controls a memory manager.
type Config struct {
	// Budget is both the pooling threshold and the per-class reservation:
	// requests up to Budget bytes are pooled, and a class of size s reserves
	// Budget/s blocks (at least one). Larger requests go to the Go heap.
	// Zero selects DefaultBudget.
	Budget int

	// Mode selects shared (locked) or local (lock-free, per-worker) operation.
	Mode Mode

	// Backing selects the source of pool and arena buffers.
	Backing Backing

	// ArenaBlockSize is the arena's allocation granule: a power of two >= 8.
	// Zero selects DefaultArenaBlockSize.
	ArenaBlockSize int

	// ArenaInitialBlocks is the size of the first arena container.
	// Zero selects DefaultArenaInitialBlocks.
	ArenaInitialBlocks int

	// OnPoolClose receives every pool's final counters at Close.
	// Nil selects pool.DefaultHook, which prints a report to stderr.
	OnPoolClose pool.Hook
}

// DefaultConfig returns a Config with every default filled in.
func DefaultConfig() Config {
	return Config{
		Budget:             DefaultBudget,
		Mode:               ModeShared,
		Backing:            BackingHeap,
		ArenaBlockSize:     DefaultArenaBlockSize,
		ArenaInitialBlocks: DefaultArenaInitialBlocks,
		OnPoolClose:        pool.DefaultHook,
	}
}

// Normalize fills zero fields with defaults and validates the result.
// Invalid values yield an error matching ErrInvalidConfig.
func (c Config) Normalize() (Config, error) {
	if c.Budget == 0 {
		c.Budget = DefaultBudget
	}
	if c.ArenaBlockSize == 0 {
		c.ArenaBlockSize = DefaultArenaBlockSize
	}
	if c.ArenaInitialBlocks == 0 {
		c.ArenaInitialBlocks = DefaultArenaInitialBlocks
	}
	if c.OnPoolClose == nil {
		c.OnPoolClose = pool.DefaultHook
	}

	switch {
	case c.Budget < 0 || c.Budget > MaxBudget:
		return c, Wrap(ErrInvalidConfig, fmt.Sprintf("budget %d out of range [1, %d]", c.Budget, MaxBudget), nil)
	case c.Mode != ModeShared && c.Mode != ModeLocal:
		return c, Wrap(ErrInvalidConfig, "unknown "+c.Mode.String(), nil)
	case c.Backing != BackingHeap && c.Backing != BackingOS:
		return c, Wrap(ErrInvalidConfig, "unknown "+c.Backing.String(), nil)
	case c.ArenaBlockSize < format.PtrSize || !format.IsPow2(c.ArenaBlockSize):
		return c, Wrap(ErrInvalidConfig, fmt.Sprintf("arena block size %d is not a power of two >= 8", c.ArenaBlockSize), nil)
	case c.ArenaInitialBlocks < 0:
		return c, Wrap(ErrInvalidConfig, fmt.Sprintf("arena initial blocks %d is negative", c.ArenaInitialBlocks), nil)
	}
	return c, nil
}

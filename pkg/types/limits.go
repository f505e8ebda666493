package types

// ============================================================================
// Allocator Limits
// ============================================================================

const (
	// DefaultBudget is the default pooling threshold and per-class
	// reservation (64 KiB): the 8-byte class holds 8,192 blocks, the
	// 64 KiB class holds one.
	DefaultBudget = 64 << 10

	// MaxBudget caps Budget so the largest pooled class (the next power of
	// two above Budget) stays a valid size class.
	MaxBudget = 1 << 30

	// DefaultArenaBlockSize is the default arena allocation granule.
	DefaultArenaBlockSize = 16

	// DefaultArenaInitialBlocks is the default size of the first arena
	// container (4 KiB with the default granule).
	DefaultArenaInitialBlocks = 256
)

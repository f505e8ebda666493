package arena

import "errors"

var (
	// ErrBlockSize indicates a block size that is not a power of two >= 8.
	ErrBlockSize = errors.New("arena: block size must be a power of two >= 8")

	// ErrInitialBlocks indicates a negative initial container size.
	ErrInitialBlocks = errors.New("arena: initial blocks must not be negative")

	// ErrNotOwned indicates a deallocated slice that no container holds.
	ErrNotOwned = errors.New("arena: slice not owned by any container")

	// ErrNotAllocated indicates a run that is not (fully) allocated, usually a
	// double free or a resliced allocation.
	ErrNotAllocated = errors.New("arena: block run not allocated")

	// ErrTooLarge indicates a container size that overflows int.
	ErrTooLarge = errors.New("arena: container size overflows")
)

const useAfterClose = "arena: use after Close()"

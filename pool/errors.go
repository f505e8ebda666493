package pool

import "errors"

var (
	// ErrBlockSize indicates a block size too small to hold the free-list link word.
	ErrBlockSize = errors.New("pool: block size must be at least 8 bytes")

	// ErrBlockCount indicates a negative block count.
	ErrBlockCount = errors.New("pool: block count must not be negative")

	// ErrTooLarge indicates that size*count overflows int.
	ErrTooLarge = errors.New("pool: size*count overflows")

	// ErrReserve indicates that the backing buffer could not be reserved.
	ErrReserve = errors.New("pool: reserve failed")
)

// useAfterClose is the panic message for operations on a closed pool.
const useAfterClose = "pool: use after Close()"

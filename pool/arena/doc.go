// Package arena implements a growable arena of fixed-size blocks serving
// variable-length, multi-block allocations.
//
// # Layout
//
// The arena is an ordered list of containers. Each container is one
// contiguous buffer of blocks plus an occupancy bitmap:
//
//	container 0: [####....##......]  capacity 16, remaining 10
//	container 1: [........]          capacity 8,  remaining 8 (evicted)
//
// An allocation of n bytes takes ceil(n/BlockSize) consecutive free blocks
// from a single container. Runs never span containers.
//
// # Placement
//
// Containers are scanned in creation order. A container is skipped when it
// has fewer free blocks than needed; otherwise its bitmap is scanned from
// the firstAvailable cursor for a long enough run. When no container fits,
// a new one is appended with max(capacityBlocks/2, needed) blocks (the first
// container gets max(InitialBlocks, needed)) and the run is placed at its
// start.
//
// # Reclamation
//
// Deallocate clears the run's bits and pulls the cursor back to the run
// start. A container whose blocks are all free again is released
// immediately, so an idle arena holds no memory.
//
// # Concurrency
//
// Arena is NOT thread-safe. LockedArena wraps it with a mutex.
package arena

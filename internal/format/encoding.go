package format

import "encoding/binary"

// Link word codec for intrusive free lists.
//
// A free block stores the index of the next free block in its first
// PtrSize bytes (little-endian). The value is index+1 so that a zeroed
// word means "end of list". The allocator owns this word for as long as
// the block is free; it is overwritten freely by the caller after Alloc.

// NoLink is the decoded link value marking the end of a free list.
const NoLink = -1

// PutLink writes the link to next (NoLink for end of list) into block.
func PutLink(block []byte, next int) {
	binary.LittleEndian.PutUint64(block[:PtrSize], uint64(next+1))
}

// ReadLink decodes the link word stored at the start of block.
func ReadLink(block []byte) int {
	return int(binary.LittleEndian.Uint64(block[:PtrSize])) - 1
}

// File: pipe/allocator.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Storage allocators. Platform-specific mappings live in allocator_mmap.go.

package pipe

// Allocator provides zeroed storage blocks for channels.
type Allocator interface {
	// Alloc returns a zeroed block of exactly size bytes.
	Alloc(size int) ([]byte, error)
	// Free releases a block previously returned by Alloc.
	Free(b []byte)
}

// HeapAllocator allocates storage on the Go heap.
type HeapAllocator struct{}

// Alloc implements Allocator.
func (HeapAllocator) Alloc(size int) ([]byte, error) {
	return make([]byte, size), nil
}

// Free is a no-op; the garbage collector reclaims the block.
func (HeapAllocator) Free([]byte) {}

//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

// File: pipe/allocator_stub.go
// Author: momentics <momentics@gmail.com>
//
// Heap fallback where anonymous mappings are unavailable.

package pipe

// NewMmapAllocator falls back to the heap on this platform.
func NewMmapAllocator() Allocator {
	return HeapAllocator{}
}

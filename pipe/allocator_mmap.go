//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

// File: pipe/allocator_mmap.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Anonymous private mappings as channel storage.

package pipe

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// MmapAllocator backs storage with anonymous mappings outside the Go heap.
type MmapAllocator struct{}

// NewMmapAllocator returns the mapping allocator for this platform.
func NewMmapAllocator() Allocator {
	return MmapAllocator{}
}

// Alloc maps size zero-filled bytes. Zero-size requests skip the syscall.
func (MmapAllocator) Alloc(size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("mmap: negative size %d", size)
	}
	if size == 0 {
		return []byte{}, nil
	}
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap %d bytes: %w", size, err)
	}
	return b, nil
}

// Free unmaps b. b must be the exact slice returned by Alloc.
func (MmapAllocator) Free(b []byte) {
	if len(b) == 0 {
		return
	}
	_ = unix.Munmap(b)
}

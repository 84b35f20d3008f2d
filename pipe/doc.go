// Package pipe
// Author: momentics <momentics@gmail.com>
//
// Fixed-capacity, mutex-protected circular byte channel.
//
// A Channel starts uninitialized. Init allocates its storage exactly once;
// Write and Read move bytes in and out without ever blocking: a write that
// does not fit fails with api.ErrInsufficientSpace and a read asking for
// more than is resident fails with api.ErrWouldBlock. Close releases the
// storage and returns the channel to the uninitialized state.
//
// Read and write positions are kept as monotonic byte counters. The
// physical offset into storage is derived with a modulo at copy time and
// every copy is split in two when it crosses the end of storage.
package pipe

// Package api
// Author: momentics <momentics@gmail.com>
//
// Channel contract: fixed-capacity byte ring with explicit init/close lifecycle.

package api

// ChannelStatus enumerates the lifecycle state of a Channel.
type ChannelStatus int

const (
	ChannelUninitialized ChannelStatus = iota
	ChannelInitialized
)

func (s ChannelStatus) String() string {
	switch s {
	case ChannelInitialized:
		return "initialized"
	default:
		return "uninitialized"
	}
}

// ChannelState is a point-in-time snapshot used by debug probes.
type ChannelState struct {
	Status     ChannelStatus
	Capacity   uint64 // usable payload bytes
	WriteIndex uint64 // total bytes ever written (monotonic)
	ReadIndex  uint64 // total bytes ever read (monotonic)
	Used       uint64 // WriteIndex - ReadIndex
}

// Channel is the non-blocking byte pipe contract.
type Channel interface {
	// Init allocates storage of extra usable bytes. Fails if already initialized.
	Init(extra uint64) error

	// Write copies n bytes of p into the ring or fails without side effects.
	Write(p []byte, n uint64) (uint64, error)

	// Read returns exactly n unread bytes or fails with ErrWouldBlock.
	Read(n uint64) ([]byte, error)

	// ReadInto copies exactly n unread bytes into dst.
	ReadInto(dst []byte, n uint64) (uint64, error)

	// Snapshot reports the current state.
	Snapshot() ChannelState

	// Close releases storage and returns the channel to the uninitialized state.
	Close() error
}

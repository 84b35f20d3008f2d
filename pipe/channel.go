// File: pipe/channel.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Channel is a single fixed-capacity byte ring guarded by one mutex.
// Every operation holds the lock across its whole check/copy/advance
// sequence, so no caller ever observes a partially updated index pair.

package pipe

import (
	"log/slog"
	"sync"

	"github.com/momentics/hioload-pipe/api"
)

// Ensure compile-time interface compliance.
var _ api.Channel = (*Channel)(nil)

// Channel implements api.Channel.
type Channel struct {
	mu       sync.Mutex
	state    api.ChannelStatus
	storage  []byte
	capacity uint64
	widx     uint64 // total bytes written, never wrapped
	ridx     uint64 // total bytes read, never wrapped

	maxSize    uint64
	headerSize uint64
	alloc      Allocator
	log        *slog.Logger
}

// New returns an uninitialized channel without storage.
func New(opts ...Option) *Channel {
	c := &Channel{
		maxSize:    DefaultMaxSize,
		headerSize: DefaultHeaderSize,
		alloc:      HeapAllocator{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = defaultLogger()
	}
	return c
}

// MaxExtra returns the largest extra size Init accepts.
func (c *Channel) MaxExtra() uint64 {
	if c.headerSize > c.maxSize {
		return 0
	}
	return c.maxSize - c.headerSize
}

// Init allocates extra bytes of zeroed storage and makes the channel usable.
func (c *Channel) Init(extra uint64) error {
	if c.headerSize > c.maxSize || extra > c.maxSize-c.headerSize {
		return api.ErrInvalidArgument.
			WithContext("requested", extra).
			WithContext("max", c.MaxExtra())
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != api.ChannelUninitialized {
		return api.ErrInvalidArgument.WithContext("state", c.state.String())
	}

	buf, err := c.alloc.Alloc(int(extra))
	if err != nil {
		return api.ErrOutOfMemory.
			WithContext("size", extra).
			WithContext("cause", err.Error())
	}

	c.storage = buf
	c.capacity = extra
	c.widx = 0
	c.ridx = 0
	c.state = api.ChannelInitialized

	c.log.Info("initialized pipe", "capacity", c.capacity)
	return nil
}

// Write copies the first n bytes of p into the ring.
// Nothing is mutated unless all n bytes fit.
func (c *Channel) Write(p []byte, n uint64) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != api.ChannelInitialized {
		return 0, api.ErrInvalidState
	}
	if free := c.capacity - (c.widx - c.ridx); n > free {
		return 0, api.ErrInsufficientSpace.
			WithContext("requested", n).
			WithContext("free", free)
	}
	if n > uint64(len(p)) {
		return 0, api.ErrFault.
			WithContext("requested", n).
			WithContext("source_len", len(p))
	}

	c.copyIn(c.widx, p[:n])
	c.widx += n
	return n, nil
}

// Read removes exactly n bytes and returns them in a fresh slice.
func (c *Channel) Read(n uint64) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkReadable(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	c.copyOut(c.ridx, out)
	c.ridx += n
	return out, nil
}

// ReadInto removes exactly n bytes into dst[:n].
func (c *Channel) ReadInto(dst []byte, n uint64) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkReadable(n); err != nil {
		return 0, err
	}
	if n > uint64(len(dst)) {
		return 0, api.ErrFault.
			WithContext("requested", n).
			WithContext("dest_len", len(dst))
	}
	c.copyOut(c.ridx, dst[:n])
	c.ridx += n
	return n, nil
}

func (c *Channel) checkReadable(n uint64) error {
	if c.state != api.ChannelInitialized {
		return api.ErrInvalidState
	}
	if avail := c.widx - c.ridx; n > avail {
		return api.ErrWouldBlock.
			WithContext("requested", n).
			WithContext("available", avail)
	}
	return nil
}

// copyIn stores src at logical position pos. len(src) <= capacity.
func (c *Channel) copyIn(pos uint64, src []byte) {
	if len(src) == 0 {
		return
	}
	off := pos % c.capacity
	n := copy(c.storage[off:], src)
	copy(c.storage, src[n:])
}

// copyOut loads len(dst) bytes from logical position pos.
func (c *Channel) copyOut(pos uint64, dst []byte) {
	if len(dst) == 0 {
		return
	}
	off := pos % c.capacity
	n := copy(dst, c.storage[off:])
	copy(dst[n:], c.storage)
}

// Capacity returns the usable payload size, 0 when uninitialized.
func (c *Channel) Capacity() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.capacity
}

// Len returns the number of unread bytes.
func (c *Channel) Len() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.widx - c.ridx
}

// Free returns the number of bytes a write can currently accept.
func (c *Channel) Free() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.capacity - (c.widx - c.ridx)
}

// State returns the lifecycle state.
func (c *Channel) State() api.ChannelStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot implements api.Channel.
func (c *Channel) Snapshot() api.ChannelState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return api.ChannelState{
		Status:     c.state,
		Capacity:   c.capacity,
		WriteIndex: c.widx,
		ReadIndex:  c.ridx,
		Used:       c.widx - c.ridx,
	}
}

// Close releases storage and resets the channel. Safe to call repeatedly.
func (c *Channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.storage != nil {
		c.alloc.Free(c.storage)
		c.storage = nil
	}
	c.capacity = 0
	c.widx = 0
	c.ridx = 0
	c.state = api.ChannelUninitialized
	return nil
}

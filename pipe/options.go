// File: pipe/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pipe

import (
	"log/slog"

	"github.com/momentics/hioload-pipe/internal/logging"
)

const (
	// DefaultMaxSize bounds the total allocation: header plus payload.
	DefaultMaxSize uint64 = 0x1000

	// DefaultHeaderSize is the bookkeeping overhead charged against
	// DefaultMaxSize: size, storage pointer and two indices.
	DefaultHeaderSize uint64 = 32
)

// Option customizes a Channel.
type Option func(*Channel)

// WithMaxSize overrides the total allocation limit.
func WithMaxSize(n uint64) Option {
	return func(c *Channel) {
		c.maxSize = n
	}
}

// WithHeaderSize overrides the per-channel bookkeeping overhead.
func WithHeaderSize(n uint64) Option {
	return func(c *Channel) {
		c.headerSize = n
	}
}

// WithAllocator selects the storage allocator.
func WithAllocator(a Allocator) Option {
	return func(c *Channel) {
		if a != nil {
			c.alloc = a
		}
	}
}

// WithLogger replaces the component logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Channel) {
		if l != nil {
			c.log = l
		}
	}
}

func defaultLogger() *slog.Logger {
	return logging.For(logging.ComponentPipe)
}

// File: device/config.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package device

import "github.com/momentics/hioload-pipe/pipe"

// Config keys published through api.Control. Updating them applies to the
// next opened session.
const (
	KeyMaxSize    = "pipe.max_size"
	KeyHeaderSize = "pipe.header_size"
)

// Config holds device parameters.
type Config struct {
	MaxSize       uint64 // Total allocation limit, header included
	HeaderSize    uint64 // Bookkeeping overhead charged per channel
	UseMmap       bool   // Back channel storage with anonymous mappings
	EnableMetrics bool   // Record byte and error counters
	EnableDebug   bool   // Register pipe.state / pipe.session probes
	QueueDepth    int    // Dispatcher pending request limit; 0 means unbounded
	WorkerCPU     int    // CPU for the dispatcher worker thread; -1 disables pinning
}

// DefaultConfig returns default configuration values.
func DefaultConfig() *Config {
	return &Config{
		MaxSize:       pipe.DefaultMaxSize,    // 4 KiB total
		HeaderSize:    pipe.DefaultHeaderSize, // 32-byte header
		UseMmap:       false,                  // Heap storage
		EnableMetrics: true,
		EnableDebug:   true,
		QueueDepth:    256,
		WorkerCPU:     -1,
	}
}

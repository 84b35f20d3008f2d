// File: internal/session/session.go
// Package session
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// One open session of the pipe device: identity, the channel it owns,
// caller attributes and cancellation.

package session

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/momentics/hioload-pipe/pipe"
)

var seq atomic.Uint64

// NextID returns a process-unique session identifier.
func NextID() string {
	return fmt.Sprintf("pipe-%d", seq.Add(1))
}

// Session owns exactly one channel for its lifetime.
type Session struct {
	id     string
	ch     *pipe.Channel
	opened time.Time
	attrs  *attrStore
	done   chan struct{}
	once   sync.Once
}

// New creates a session owning ch.
func New(id string, ch *pipe.Channel) *Session {
	return &Session{
		id:     id,
		ch:     ch,
		opened: time.Now(),
		attrs:  newAttrStore(),
		done:   make(chan struct{}),
	}
}

// ID returns the unique session identifier.
func (s *Session) ID() string {
	return s.id
}

// Channel returns the owned channel.
func (s *Session) Channel() *pipe.Channel {
	return s.ch
}

// Opened returns the session start time.
func (s *Session) Opened() time.Time {
	return s.opened
}

// Set records a caller attribute such as the remote address.
func (s *Session) Set(key string, value any) {
	s.attrs.Set(key, value)
}

// Get fetches a caller attribute.
func (s *Session) Get(key string) (any, bool) {
	return s.attrs.Get(key)
}

// Attrs returns a copy of all caller attributes.
func (s *Session) Attrs() map[string]any {
	return s.attrs.Snapshot()
}

// Cancel releases the channel storage and signals Done; idempotent.
func (s *Session) Cancel() {
	s.once.Do(func() {
		_ = s.ch.Close()
		close(s.done)
	})
}

// Done returns a channel closed upon cancellation.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// File: server/options.go
// Package server defines functional options for the WebSocket shell.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

// Option customizes server initialization.
type Option func(*Server)

// WithAllowedOrigins restricts the Origin header accepted at upgrade.
// With no origins configured every caller is permitted.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		for _, o := range origins {
			s.allowed[o] = struct{}{}
		}
	}
}

// WithReadLimit caps the size of one inbound message.
func WithReadLimit(n int64) Option {
	return func(s *Server) {
		s.readLimit = n
	}
}

// WithBufferSizes overrides the upgrader I/O buffer sizes.
func WithBufferSizes(read, write int) Option {
	return func(s *Server) {
		s.upgrader.ReadBufferSize = read
		s.upgrader.WriteBufferSize = write
	}
}

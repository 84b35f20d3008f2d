// File: internal/logging/log.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Component-scoped structured logging shared by the pipe, device and server layers.

package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Component identifies a subsystem for log filtering.
type Component string

const (
	ComponentPipe   Component = "pipe"
	ComponentDevice Component = "device"
	ComponentServer Component = "server"
)

// Format specifies the output format for logging.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

var (
	level = new(slog.LevelVar)

	mu     sync.RWMutex
	logger *slog.Logger
)

func init() {
	level.Set(slog.LevelWarn)
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// SetLevel sets the minimum level for the default logger.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// Level returns the current minimum level.
func Level() slog.Level {
	return level.Level()
}

// ParseLevel maps debug/info/warn/error to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// SetLogger replaces the default logger.
func SetLogger(l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// SetFormat rebuilds the default logger writing to w in the given format.
func SetFormat(w io.Writer, f Format) {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	switch f {
	case FormatJSON:
		h = slog.NewJSONHandler(w, opts)
	default:
		h = slog.NewTextHandler(w, opts)
	}
	SetLogger(slog.New(h))
}

// For returns the default logger tagged with component.
func For(c Component) *slog.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	return l.With("component", string(c))
}

// File: api/control.go
// Package api defines Control interface.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Control is the device's management surface: runtime limits, counters
// and on-demand probes.
type Control interface {
	// GetConfig returns a snapshot of all config keys.
	GetConfig() map[string]any
	// SetConfig merges cfg and notifies reload listeners.
	SetConfig(cfg map[string]any) error
	// Stats merges metrics with "debug."-prefixed probe output.
	Stats() map[string]any
	OnReload(fn func())
	// SetMetric stores a gauge.
	SetMetric(key string, value any)
	// AddMetric increments an int64 counter.
	AddMetric(key string, delta int64)
	RegisterDebugProbe(name string, fn func() any)
}

// Package api
// Author: momentics
//
// Live debug support: probes report channel and platform state on demand.

package api

// Debug exposes runtime introspection.
type Debug interface {
	// DumpState evaluates every registered probe.
	DumpState() map[string]any

	// RegisterProbe registers or replaces a named probe.
	RegisterProbe(name string, fn func() any)
}

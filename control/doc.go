// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime configuration, metrics and debug introspection for the pipe device.
//
// Provides concurrent-safe state handling primitives including:
//   - Snapshot config reads with reload listeners
//   - Gauge and counter metrics
//   - Lazily evaluated debug probes
//
// Platform probes are build-tag-partitioned.
package control

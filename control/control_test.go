// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

package control_test

import (
	"sync"
	"testing"

	"github.com/momentics/hioload-pipe/control"
)

func TestMetricsRegistry_Basic(t *testing.T) {
	reg := control.NewMetricsRegistry()
	reg.Set("foo.count", int64(42))
	reg.Set("bar.status", "ok")

	metrics := reg.GetSnapshot()
	if metrics["foo.count"] != int64(42) {
		t.Error("MetricsRegistry: value mismatch")
	}
	if metrics["bar.status"] != "ok" {
		t.Error("MetricsRegistry: string value mismatch")
	}
	if reg.Updated().IsZero() {
		t.Error("MetricsRegistry: update time not recorded")
	}
}

func TestMetricsRegistry_AddConcurrent(t *testing.T) {
	reg := control.NewMetricsRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				reg.Add("pipe.bytes_written", 2)
			}
		}()
	}
	wg.Wait()
	if v, _ := reg.Get("pipe.bytes_written"); v != int64(16000) {
		t.Errorf("counter = %v, want 16000", v)
	}
}

func TestConfigStore_ListenersRunInOrder(t *testing.T) {
	cs := control.NewConfigStore()
	var order []int
	cs.OnReload(func() { order = append(order, 1) })
	cs.OnReload(func() {
		// Listeners may read the store without deadlocking.
		if _, ok := cs.Get("pipe.max_size"); !ok {
			t.Error("listener saw stale config")
		}
		order = append(order, 2)
	})
	cs.SetConfig(map[string]any{"pipe.max_size": 2048})
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("listener order = %v", order)
	}
}

func TestConfigStore_GetUint64(t *testing.T) {
	cs := control.NewConfigStore()
	cs.SetConfig(map[string]any{
		"u64":  uint64(7),
		"int":  8,
		"neg":  -1,
		"f":    float64(9),
		"str":  "10",
		"bad":  "ten",
		"bool": true,
	})
	tests := []struct {
		key  string
		want uint64
		ok   bool
	}{
		{"u64", 7, true},
		{"int", 8, true},
		{"neg", 0, false},
		{"f", 9, true},
		{"str", 10, true},
		{"bad", 0, false},
		{"bool", 0, false},
		{"missing", 0, false},
	}
	for _, tt := range tests {
		got, ok := cs.GetUint64(tt.key)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("GetUint64(%q) = %d, %v; want %d, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDebugProbes_DumpState(t *testing.T) {
	dp := control.NewDebugProbes()
	control.RegisterPlatformProbes(dp)
	dp.RegisterProbe("pipe.state", func() any { return "initialized" })

	state := dp.DumpState()
	if state["pipe.state"] != "initialized" {
		t.Errorf("probe value = %v", state["pipe.state"])
	}
	if n, ok := state["platform.cpus"].(int); !ok || n < 1 {
		t.Errorf("platform.cpus = %v", state["platform.cpus"])
	}
	if _, ok := state["platform.page_size"]; !ok {
		t.Error("platform.page_size probe missing")
	}
}

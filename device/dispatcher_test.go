// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

package device_test

import (
	"context"
	"encoding/binary"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/momentics/hioload-pipe/api"
	"github.com/momentics/hioload-pipe/device"
)

func TestDispatcher_FIFO(t *testing.T) {
	_, h := openDevice(t, nil)
	d := device.NewDispatcher(h, 0)
	defer d.Close()

	ctx := context.Background()
	if _, err := d.Submit(ctx, device.Request{Cmd: device.CmdInit, Size: 1024}); err != nil {
		t.Fatal(err)
	}
	for i := uint32(0); i < 100; i++ {
		buf := binary.BigEndian.AppendUint32(nil, i)
		if _, err := d.Submit(ctx, device.Request{Cmd: device.CmdWrite, Size: 4, Buffer: buf}); err != nil {
			t.Fatal(err)
		}
	}
	for i := uint32(0); i < 100; i++ {
		buf := make([]byte, 4)
		if _, err := d.Submit(ctx, device.Request{Cmd: device.CmdRead, Size: 4, Buffer: buf}); err != nil {
			t.Fatal(err)
		}
		if got := binary.BigEndian.Uint32(buf); got != i {
			t.Fatalf("read %d, want %d", got, i)
		}
	}
	if d.Executed() != 201 {
		t.Errorf("Executed() = %d, want 201", d.Executed())
	}
}

func TestDispatcher_ConcurrentCallers(t *testing.T) {
	_, h := openDevice(t, nil)
	if err := h.Init(4000); err != nil {
		t.Fatal(err)
	}
	d := device.NewDispatcher(h, 0)
	defer d.Close()

	const callers, each = 8, 50
	var wg sync.WaitGroup
	for c := 0; c < callers; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < each; i++ {
				if _, err := d.Submit(context.Background(), device.Request{Cmd: device.CmdWrite, Size: 8, Buffer: make([]byte, 8)}); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
	if got := h.State().Used; got != callers*each*8 {
		t.Errorf("Used = %d, want %d", got, callers*each*8)
	}
}

func TestDispatcher_CloseFailsLaterSubmits(t *testing.T) {
	_, h := openDevice(t, nil)
	d := device.NewDispatcher(h, 0)
	d.Close()
	d.Close()
	if _, err := d.Submit(context.Background(), device.Request{Cmd: device.CmdInit, Size: 1}); !errors.Is(err, api.ErrClosed) {
		t.Errorf("Submit after Close = %v, want ErrClosed", err)
	}
}

func TestDispatcher_CancelledContext(t *testing.T) {
	_, h := openDevice(t, nil)
	d := device.NewDispatcher(h, 0)
	defer d.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// Either the worker won the race and ran it, or the request was dropped.
	_, err := d.Submit(ctx, device.Request{Cmd: device.CmdInit, Size: 32})
	if err != nil && !errors.Is(err, context.Canceled) {
		t.Fatalf("Submit = %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for d.Pending() > 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if d.Pending() != 0 {
		t.Errorf("abandoned request still pending")
	}
	if _, err := d.Submit(context.Background(), device.Request{Cmd: device.CmdRead, Size: 0, Buffer: nil}); err != nil && !errors.Is(err, api.ErrInvalidState) {
		t.Errorf("follow-up Submit = %v", err)
	}
}

func TestDispatcher_QueueDepth(t *testing.T) {
	_, h := openDevice(t, nil)
	d := device.NewDispatcher(h, 1)
	defer d.Close()

	// With depth 1 a burst of parallel submits is either served or refused
	// with ErrBusy; nothing else is acceptable.
	var wg sync.WaitGroup
	var mu sync.Mutex
	busy := 0
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := d.Submit(context.Background(), device.Request{Cmd: device.CmdRead, Size: 0})
			switch {
			case errors.Is(err, api.ErrBusy):
				mu.Lock()
				busy++
				mu.Unlock()
			case err != nil && !errors.Is(err, api.ErrInvalidState):
				t.Errorf("Submit = %v", err)
			}
		}()
	}
	wg.Wait()
	t.Logf("%d of 32 submits refused", busy)
}

func TestDispatcher_PinnedWorker(t *testing.T) {
	_, h := openDevice(t, nil)
	// Pinning failures are logged, never fatal to the worker.
	d := device.NewDispatcher(h, 0, device.WithWorkerCPU(0))
	defer d.Close()

	if _, err := d.Submit(context.Background(), device.Request{Cmd: device.CmdInit, Size: 16}); err != nil {
		t.Fatal(err)
	}
	if h.State().Capacity != 16 {
		t.Errorf("capacity = %d, want 16", h.State().Capacity)
	}
}

// File: device/dispatcher.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Dispatcher serializes requests from many goroutines onto one handle.
// Requests wait in a FIFO and a single worker executes them in order.

package device

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-pipe/affinity"
	"github.com/momentics/hioload-pipe/api"
	"github.com/momentics/hioload-pipe/internal/logging"
)

const (
	stateQueued int32 = iota
	stateRunning
	stateAbandoned
)

type result struct {
	n   uint64
	err error
}

type pending struct {
	req   Request
	state atomic.Int32
	resp  chan result
}

// Dispatcher executes Requests against a Handle in submission order.
type Dispatcher struct {
	h     *Handle
	depth int
	cpu   int

	mu     sync.Mutex
	cond   *sync.Cond
	q      *queue.Queue
	closed bool
	done   chan struct{}

	executed atomic.Int64
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithWorkerCPU pins the worker goroutine's thread to cpu. Negative values
// leave scheduling to the runtime.
func WithWorkerCPU(cpu int) DispatcherOption {
	return func(d *Dispatcher) { d.cpu = cpu }
}

// NewDispatcher starts the worker goroutine. depth bounds the number of
// waiting requests; 0 means unbounded.
func NewDispatcher(h *Handle, depth int, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		h:     h,
		depth: depth,
		cpu:   -1,
		q:     queue.New(),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.cond = sync.NewCond(&d.mu)
	go d.run()
	return d
}

// Submit enqueues req and waits for its result. If ctx ends while req is
// still queued, req is dropped and ctx.Err() returned; once the worker has
// picked it up Submit waits for completion, so Buffer is never touched
// after Submit returns.
func (d *Dispatcher) Submit(ctx context.Context, req Request) (uint64, error) {
	p := &pending{req: req, resp: make(chan result, 1)}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return 0, api.ErrClosed
	}
	if d.depth > 0 && d.q.Length() >= d.depth {
		d.mu.Unlock()
		return 0, api.ErrBusy.WithContext("queue_depth", d.depth)
	}
	d.q.Add(p)
	d.cond.Signal()
	d.mu.Unlock()

	select {
	case r := <-p.resp:
		return r.n, r.err
	case <-ctx.Done():
		if p.state.CompareAndSwap(stateQueued, stateAbandoned) {
			return 0, ctx.Err()
		}
		r := <-p.resp
		return r.n, r.err
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	if d.cpu >= 0 {
		if err := affinity.Pin(d.cpu); err != nil {
			logging.For(logging.ComponentDevice).Warn("worker not pinned", "cpu", d.cpu, "err", err)
		}
	}
	for {
		d.mu.Lock()
		for d.q.Length() == 0 && !d.closed {
			d.cond.Wait()
		}
		if d.closed {
			d.mu.Unlock()
			return
		}
		p := d.q.Remove().(*pending)
		d.mu.Unlock()

		if !p.state.CompareAndSwap(stateQueued, stateRunning) {
			continue
		}
		n, err := d.h.Ioctl(p.req)
		d.executed.Add(1)
		p.resp <- result{n: n, err: err}
	}
}

// Pending returns the number of queued requests, abandoned ones included.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.q.Length()
}

// Executed returns the number of requests run so far.
func (d *Dispatcher) Executed() int64 {
	return d.executed.Load()
}

// Close stops the worker after the in-flight request and fails every
// queued request with api.ErrClosed. It does not close the handle.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		<-d.done
		return
	}
	d.closed = true
	for d.q.Length() > 0 {
		p := d.q.Remove().(*pending)
		if p.state.CompareAndSwap(stateQueued, stateRunning) {
			p.resp <- result{err: api.ErrClosed}
		}
	}
	d.cond.Broadcast()
	d.mu.Unlock()
	<-d.done
}

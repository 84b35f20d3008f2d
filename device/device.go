// File: device/device.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Device owns at most one open session. Re-opening without a close is
// rejected so storage is never dropped without being released.

package device

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-pipe/adapters"
	"github.com/momentics/hioload-pipe/api"
	"github.com/momentics/hioload-pipe/control"
	"github.com/momentics/hioload-pipe/internal/logging"
	"github.com/momentics/hioload-pipe/internal/session"
	"github.com/momentics/hioload-pipe/pipe"
)

// Device is the pipe device.
type Device struct {
	mu      sync.Mutex
	cfg     Config
	current *session.Session

	ctrl    api.Control
	metrics bool
	log     *slog.Logger
}

// New constructs a device. A nil cfg selects DefaultConfig and a nil ctrl
// creates a private control adapter.
func New(cfg *Config, ctrl api.Control) *Device {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if ctrl == nil {
		ctrl = adapters.NewControlAdapter()
	}
	d := &Device{
		cfg:     *cfg,
		ctrl:    ctrl,
		metrics: cfg.EnableMetrics,
		log:     logging.For(logging.ComponentDevice),
	}

	_ = ctrl.SetConfig(map[string]any{
		KeyMaxSize:    cfg.MaxSize,
		KeyHeaderSize: cfg.HeaderSize,
	})
	ctrl.OnReload(d.reload)

	if cfg.EnableDebug {
		ctrl.RegisterDebugProbe("pipe.state", func() any {
			if s := d.Current(); s != nil {
				return s.Channel().Snapshot()
			}
			return api.ChannelState{}
		})
		ctrl.RegisterDebugProbe("pipe.session", func() any {
			if s := d.Current(); s != nil {
				return s.ID()
			}
			return ""
		})
	}
	return d
}

// reload picks up limit changes for the next session.
func (d *Device) reload() {
	cfg := d.ctrl.GetConfig()
	d.mu.Lock()
	defer d.mu.Unlock()
	if v, ok := control.Uint64(cfg[KeyMaxSize]); ok {
		d.cfg.MaxSize = v
	}
	if v, ok := control.Uint64(cfg[KeyHeaderSize]); ok {
		d.cfg.HeaderSize = v
	}
	d.log.Debug("limits reloaded", "max_size", d.cfg.MaxSize, "header_size", d.cfg.HeaderSize)
}

// Control exposes config, metrics and debug probes.
func (d *Device) Control() api.Control {
	return d.ctrl
}

// Config returns a copy of the effective configuration.
func (d *Device) Config() Config {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg
}

// Current returns the open session, or nil.
func (d *Device) Current() *session.Session {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// Open starts a session with a fresh uninitialized channel.
func (d *Device) Open() (*Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.current != nil {
		return nil, api.ErrBusy.WithContext("session", d.current.ID())
	}

	opts := []pipe.Option{
		pipe.WithMaxSize(d.cfg.MaxSize),
		pipe.WithHeaderSize(d.cfg.HeaderSize),
	}
	if d.cfg.UseMmap {
		opts = append(opts, pipe.WithAllocator(pipe.NewMmapAllocator()))
	}
	s := session.New(session.NextID(), pipe.New(opts...))
	d.current = s

	if d.metrics {
		d.ctrl.AddMetric("pipe.sessions_opened", 1)
	}
	d.log.Debug("session opened", "session", s.ID())
	return &Handle{dev: d, sess: s}, nil
}

func (d *Device) release(s *session.Session) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current == s {
		d.current = nil
	}
}

// Handle is the caller's view of an open session.
type Handle struct {
	dev    *Device
	sess   *session.Session
	closed atomic.Bool
}

// ID returns the session identifier.
func (h *Handle) ID() string {
	return h.sess.ID()
}

// Session returns the underlying session.
func (h *Handle) Session() *session.Session {
	return h.sess
}

// State snapshots the session channel.
func (h *Handle) State() api.ChannelState {
	return h.sess.Channel().Snapshot()
}

// Init allocates the channel storage.
func (h *Handle) Init(extra uint64) error {
	if h.closed.Load() {
		return api.ErrClosed
	}
	err := h.sess.Channel().Init(extra)
	if err == nil && h.dev.metrics {
		h.dev.ctrl.SetMetric("pipe.capacity", extra)
	}
	h.record(0, "", err)
	return err
}

// Write copies the first n bytes of p into the channel.
func (h *Handle) Write(p []byte, n uint64) (uint64, error) {
	if h.closed.Load() {
		return 0, api.ErrClosed
	}
	w, err := h.sess.Channel().Write(p, n)
	h.record(w, "pipe.bytes_written", err)
	return w, err
}

// Read returns exactly n bytes from the channel.
func (h *Handle) Read(n uint64) ([]byte, error) {
	if h.closed.Load() {
		return nil, api.ErrClosed
	}
	out, err := h.sess.Channel().Read(n)
	h.record(uint64(len(out)), "pipe.bytes_read", err)
	return out, err
}

// ReadInto copies exactly n bytes from the channel into dst.
func (h *Handle) ReadInto(dst []byte, n uint64) (uint64, error) {
	if h.closed.Load() {
		return 0, api.ErrClosed
	}
	r, err := h.sess.Channel().ReadInto(dst, n)
	h.record(r, "pipe.bytes_read", err)
	return r, err
}

func (h *Handle) record(n uint64, key string, err error) {
	if !h.dev.metrics {
		return
	}
	if err != nil {
		h.dev.ctrl.AddMetric("pipe.errors."+api.CodeOf(err).String(), 1)
		return
	}
	if key != "" && n > 0 {
		h.dev.ctrl.AddMetric(key, int64(n))
	}
}

// Close releases the channel and frees the device for the next Open.
// Safe to call repeatedly.
func (h *Handle) Close() error {
	if !h.closed.CompareAndSwap(false, true) {
		return nil
	}
	h.sess.Cancel()
	h.dev.release(h.sess)
	h.dev.log.Debug("session closed", "session", h.sess.ID())
	return nil
}

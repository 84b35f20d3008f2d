// File: server/server.go
// Package server exposes the pipe device over WebSocket.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// One connection is one device session. The session is opened before the
// upgrade so a busy device is reported as HTTP 503. Each binary message is
// decoded into a device request, run through the session dispatcher and
// answered with one binary response.

package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/momentics/hioload-pipe/api"
	"github.com/momentics/hioload-pipe/device"
	"github.com/momentics/hioload-pipe/internal/logging"
	"github.com/momentics/hioload-pipe/pool"
	"github.com/momentics/hioload-pipe/protocol"
)

// Server is an http.Handler serving the pipe protocol.
type Server struct {
	dev       *device.Device
	upgrader  websocket.Upgrader
	allowed   map[string]struct{}
	readLimit int64
	buffers   *pool.BytePool
	log       *slog.Logger
}

var _ http.Handler = (*Server)(nil)

// New builds a server for dev.
func New(dev *device.Device, opts ...Option) *Server {
	s := &Server{
		dev:     dev,
		allowed: make(map[string]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		log: logging.For(logging.ComponentServer),
	}
	s.upgrader.CheckOrigin = s.checkOrigin
	for _, o := range opts {
		o(s)
	}
	s.buffers = pool.NewBytePool(int(dev.Config().MaxSize))
	return s
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.allowed) == 0 {
		return true
	}
	_, ok := s.allowed[r.Header.Get("Origin")]
	return ok
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.checkOrigin(r) {
		http.Error(w, "origin not permitted", http.StatusForbidden)
		return
	}

	h, err := s.dev.Open()
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, api.ErrBusy) {
			status = http.StatusServiceUnavailable
		}
		http.Error(w, err.Error(), status)
		return
	}
	defer h.Close()
	h.Session().Set("remote", r.RemoteAddr)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		s.log.Debug("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()

	cfg := s.dev.Config()
	limit := s.readLimit
	if limit <= 0 {
		limit = int64(cfg.MaxSize) + protocol.HeaderLen
	}
	conn.SetReadLimit(limit)

	disp := device.NewDispatcher(h, cfg.QueueDepth, device.WithWorkerCPU(cfg.WorkerCPU))
	defer disp.Close()

	s.log.Info("session started", "session", h.ID(), "remote", r.RemoteAddr)
	s.serve(r, conn, disp, cfg.MaxSize)
	s.log.Info("session ended", "session", h.ID())
}

func (s *Server) serve(r *http.Request, conn *websocket.Conn, disp *device.Dispatcher, maxRead uint64) {
	for {
		mt, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warn("read failed", "err", err)
			}
			return
		}

		var resp []byte
		if mt != websocket.BinaryMessage {
			resp = protocol.EncodeResponse(0, nil, api.ErrInvalidArgument)
		} else {
			resp = s.handle(r, disp, msg, maxRead)
		}

		if err := conn.WriteMessage(websocket.BinaryMessage, resp); err != nil {
			s.log.Warn("write failed", "err", err)
			return
		}
	}
}

func (s *Server) handle(r *http.Request, disp *device.Dispatcher, msg []byte, maxRead uint64) []byte {
	req, err := protocol.DecodeRequest(msg)
	if err != nil {
		return protocol.EncodeResponse(0, nil, err)
	}
	// Reads above the device limit can never be satisfied; the channel
	// rejects them as would-block before touching the nil buffer.
	if req.Cmd == device.CmdRead && req.Size <= maxRead {
		req.Buffer = s.buffers.GetBuffer(int(req.Size))
		defer s.buffers.PutBuffer(req.Buffer)
	}
	n, err := disp.Submit(r.Context(), req)
	var payload []byte
	if err == nil && req.Cmd == device.CmdRead {
		payload = req.Buffer[:n]
	}
	return protocol.EncodeResponse(n, payload, err)
}

// File: client/client.go
// Package client provides a WebSocket client for the pipe device shell.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Requests are strictly request/response; the client serializes callers so
// responses are matched to requests by order.

package client

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/momentics/hioload-pipe/api"
	"github.com/momentics/hioload-pipe/device"
	"github.com/momentics/hioload-pipe/protocol"
)

// Config holds client parameters.
type Config struct {
	URL          string        // ws:// or wss:// endpoint
	Header       http.Header   // extra handshake headers, e.g. Origin
	WriteTimeout time.Duration // per-request write deadline (0 = none)
	ReadTimeout  time.Duration // per-response read deadline (0 = none)
}

// Client is one device session held over a WebSocket.
type Client struct {
	cfg  Config
	mu   sync.Mutex
	conn *websocket.Conn
}

// Dial opens a session. A busy device surfaces as websocket.ErrBadHandshake
// with HTTP 503 in the returned response.
func Dial(ctx context.Context, cfg Config) (*Client, *http.Response, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, cfg.URL, cfg.Header)
	if err != nil {
		return nil, resp, err
	}
	return &Client{cfg: cfg, conn: conn}, resp, nil
}

// Do sends req and waits for its response. For reads the payload is returned.
func (c *Client) Do(req device.Request) (uint64, []byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfg.WriteTimeout > 0 {
		c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
	}
	if err := c.conn.WriteMessage(websocket.BinaryMessage, protocol.EncodeRequest(req)); err != nil {
		return 0, nil, err
	}
	if c.cfg.ReadTimeout > 0 {
		c.conn.SetReadDeadline(time.Now().Add(c.cfg.ReadTimeout))
	}
	_, msg, err := c.conn.ReadMessage()
	if err != nil {
		return 0, nil, err
	}
	return protocol.DecodeResponse(msg)
}

// Init allocates the remote channel.
func (c *Client) Init(extra uint64) error {
	_, _, err := c.Do(device.Request{Cmd: device.CmdInit, Size: extra})
	return err
}

// Write sends all of p.
func (c *Client) Write(p []byte) (uint64, error) {
	n, _, err := c.Do(device.Request{Cmd: device.CmdWrite, Size: uint64(len(p)), Buffer: p})
	return n, err
}

// Read fetches exactly n bytes or fails with api.ErrWouldBlock.
func (c *Client) Read(n uint64) ([]byte, error) {
	_, payload, err := c.Do(device.Request{Cmd: device.CmdRead, Size: n})
	if err != nil {
		return nil, err
	}
	if uint64(len(payload)) != n {
		return nil, api.NewError(api.ErrCodeInternal, "short read payload").
			WithContext("requested", n).
			WithContext("received", len(payload))
	}
	return payload, nil
}

// Close ends the session.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return c.conn.Close()
}

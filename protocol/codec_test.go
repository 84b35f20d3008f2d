package protocol_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/momentics/hioload-pipe/api"
	"github.com/momentics/hioload-pipe/device"
	"github.com/momentics/hioload-pipe/protocol"
)

func TestRequestFraming(t *testing.T) {
	tests := []struct {
		name    string
		req     device.Request
		wantLen int
		wantBuf int
	}{
		{"init", device.Request{Cmd: device.CmdInit, Size: 64}, protocol.HeaderLen, 0},
		{"write", device.Request{Cmd: device.CmdWrite, Size: 3, Buffer: []byte("abc")}, protocol.HeaderLen + 3, 3},
		{"read drops buffer", device.Request{Cmd: device.CmdRead, Size: 5, Buffer: []byte("zzzzzzzz")}, protocol.HeaderLen, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := protocol.EncodeRequest(tt.req)
			if len(msg) != tt.wantLen {
				t.Fatalf("encoded len = %d, want %d", len(msg), tt.wantLen)
			}
			got, err := protocol.DecodeRequest(msg)
			if err != nil {
				t.Fatal(err)
			}
			if got.Cmd != tt.req.Cmd || got.Size != tt.req.Size || len(got.Buffer) != tt.wantBuf {
				t.Errorf("decoded %+v", got)
			}
		})
	}
}

func TestDecodeRequestEdgeCases(t *testing.T) {
	if _, err := protocol.DecodeRequest([]byte{2, 0, 0}); !errors.Is(err, api.ErrInvalidArgument) {
		t.Errorf("short frame = %v, want ErrInvalidArgument", err)
	}
	msg := protocol.EncodeRequest(device.Request{Cmd: device.CmdWrite, Size: 10, Buffer: []byte("abc")})
	req, err := protocol.DecodeRequest(msg)
	if err != nil {
		t.Fatal(err)
	}
	// Declared size and payload may disagree; the channel reports the fault.
	if req.Size != 10 || string(req.Buffer) != "abc" {
		t.Errorf("decoded %+v", req)
	}
}

func TestResponseFraming(t *testing.T) {
	msg := protocol.EncodeResponse(4, []byte("data"), nil)
	n, payload, err := protocol.DecodeResponse(msg)
	if err != nil || n != 4 || !bytes.Equal(payload, []byte("data")) {
		t.Errorf("ok response = %d %q %v", n, payload, err)
	}

	msg = protocol.EncodeResponse(9, []byte("ignored"), api.ErrWouldBlock.WithContext("requested", 9))
	if len(msg) != protocol.HeaderLen {
		t.Errorf("error response carried payload: %d bytes", len(msg))
	}
	n, _, err = protocol.DecodeResponse(msg)
	if !errors.Is(err, api.ErrWouldBlock) || n != 0 {
		t.Errorf("error response = %d, %v", n, err)
	}

	if _, _, err := protocol.DecodeResponse([]byte{0}); api.CodeOf(err) != api.ErrCodeInternal {
		t.Errorf("short response = %v", err)
	}
}

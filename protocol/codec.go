// File: protocol/codec.go
// Package protocol implements the binary message codec of the pipe shell.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Request:  op:uint8 | size:uint64 | payload (write only)
// Response: code:uint8 | n:uint64  | payload (successful read only)
// All integers are big-endian.

package protocol

import (
	"encoding/binary"

	"github.com/momentics/hioload-pipe/api"
	"github.com/momentics/hioload-pipe/device"
)

// HeaderLen is the fixed prefix of every request and response.
const HeaderLen = 9

// EncodeRequest serializes req. Buffer is carried for writes only.
func EncodeRequest(req device.Request) []byte {
	var payload []byte
	if req.Cmd == device.CmdWrite {
		payload = req.Buffer
	}
	out := make([]byte, HeaderLen, HeaderLen+len(payload))
	out[0] = byte(req.Cmd)
	binary.BigEndian.PutUint64(out[1:], req.Size)
	return append(out, payload...)
}

// DecodeRequest parses msg. Write payloads alias msg; read requests come
// back with a nil Buffer for the caller to supply.
func DecodeRequest(msg []byte) (device.Request, error) {
	if len(msg) < HeaderLen {
		return device.Request{}, api.ErrInvalidArgument.WithContext("frame_len", len(msg))
	}
	req := device.Request{
		Cmd:  device.Command(msg[0]),
		Size: binary.BigEndian.Uint64(msg[1:HeaderLen]),
	}
	if req.Cmd == device.CmdWrite {
		req.Buffer = msg[HeaderLen:]
	}
	return req, nil
}

// EncodeResponse serializes an operation outcome.
func EncodeResponse(n uint64, payload []byte, err error) []byte {
	code := api.CodeOf(err)
	if code != api.ErrCodeOK {
		payload = nil
		n = 0
	}
	out := make([]byte, HeaderLen, HeaderLen+len(payload))
	out[0] = byte(code)
	binary.BigEndian.PutUint64(out[1:], n)
	return append(out, payload...)
}

// DecodeResponse parses msg into byte count, payload and the error
// reconstructed from the status code.
func DecodeResponse(msg []byte) (uint64, []byte, error) {
	if len(msg) < HeaderLen {
		return 0, nil, api.NewError(api.ErrCodeInternal, "short response").WithContext("frame_len", len(msg))
	}
	n := binary.BigEndian.Uint64(msg[1:HeaderLen])
	return n, msg[HeaderLen:], api.ErrorFromCode(api.ErrorCode(msg[0]))
}

// File: device/ioctl.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Command codes and parameter block for opaque request routing.

package device

import (
	"fmt"

	"github.com/momentics/hioload-pipe/api"
)

// Command selects the channel operation a Request targets.
type Command uint8

const (
	CmdInit  Command = 1
	CmdWrite Command = 2
	CmdRead  Command = 3
)

func (c Command) String() string {
	switch c {
	case CmdInit:
		return "init"
	case CmdWrite:
		return "write"
	case CmdRead:
		return "read"
	default:
		return fmt.Sprintf("cmd(%d)", uint8(c))
	}
}

// Request is the parameter block routed by Ioctl.
//
// For CmdInit, Size is the extra byte size and Buffer is ignored.
// For CmdWrite, Size bytes are taken from Buffer.
// For CmdRead, Size bytes are stored into Buffer in place.
type Request struct {
	Cmd    Command
	Size   uint64
	Buffer []byte
}

// Ioctl routes req to the matching channel operation and returns the byte
// count moved (0 for init).
func (h *Handle) Ioctl(req Request) (uint64, error) {
	switch req.Cmd {
	case CmdInit:
		return 0, h.Init(req.Size)
	case CmdWrite:
		return h.Write(req.Buffer, req.Size)
	case CmdRead:
		return h.ReadInto(req.Buffer, req.Size)
	default:
		return 0, api.ErrInvalidArgument.WithContext("cmd", req.Cmd.String())
	}
}

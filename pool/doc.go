// Package pool
// Author: momentics <momentics@gmail.com>
//
// Reusable byte buffers. The WebSocket shell borrows read destinations
// from a BytePool sized to the device limit instead of allocating one per
// request.
package pool

// Package device
// Author: momentics <momentics@gmail.com>
//
// The pipe device: a thin shell that owns the single channel for the
// lifetime of a session and routes init/write/read requests into it.
//
// Open starts a session and returns a Handle; a second Open before the
// handle is closed fails with api.ErrBusy. Handle.Close releases the
// channel storage. Requests can be issued directly on the Handle, through
// the ioctl-style Request/Ioctl pair, or through a Dispatcher that
// serializes callers from many goroutines in FIFO order.
package device

// Package session
// Author: momentics <momentics@gmail.com>
//
// Session lifecycle for the pipe device. A session is created on open,
// owns the single channel instance and releases its storage on cancel.

package session

// Package api
// Author: momentics <momentics@gmail.com>
//
// Error taxonomy shared by the pipe channel, the device shell and the wire codec.

package api

import (
	"errors"
	"fmt"
)

// ErrorCode represents specific error conditions in the library.
// Values are stable: they travel on the wire as a single status byte.
type ErrorCode uint8

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeInvalidState
	ErrCodeOutOfMemory
	ErrCodeInsufficientSpace
	ErrCodeWouldBlock
	ErrCodeFault
	ErrCodeBusy
	ErrCodeClosed
	ErrCodeInternal
)

var codeNames = [...]string{
	ErrCodeOK:                "ok",
	ErrCodeInvalidArgument:   "invalid_argument",
	ErrCodeInvalidState:      "invalid_state",
	ErrCodeOutOfMemory:       "out_of_memory",
	ErrCodeInsufficientSpace: "insufficient_space",
	ErrCodeWouldBlock:        "would_block",
	ErrCodeFault:             "fault",
	ErrCodeBusy:              "busy",
	ErrCodeClosed:            "closed",
	ErrCodeInternal:          "internal",
}

// String returns the snake_case name used in metric keys.
func (c ErrorCode) String() string {
	if int(c) < len(codeNames) {
		return codeNames[c]
	}
	return "unknown"
}

// Common errors used across the library. Compare with errors.Is; any
// *Error carrying the same code matches.
var (
	ErrInvalidArgument   = NewError(ErrCodeInvalidArgument, "invalid argument")
	ErrInvalidState      = NewError(ErrCodeInvalidState, "channel not initialized")
	ErrOutOfMemory       = NewError(ErrCodeOutOfMemory, "out of memory")
	ErrInsufficientSpace = NewError(ErrCodeInsufficientSpace, "insufficient space")
	ErrWouldBlock        = NewError(ErrCodeWouldBlock, "operation would block")
	ErrFault             = NewError(ErrCodeFault, "bad buffer")
	ErrBusy              = NewError(ErrCodeBusy, "device busy")
	ErrClosed            = NewError(ErrCodeClosed, "handle closed")
)

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithContext returns a copy of the error with key set to value.
// The receiver is never mutated, so sentinels stay shareable.
func (e *Error) WithContext(key string, value any) *Error {
	ctx := make(map[string]any, len(e.Context)+1)
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &Error{Code: e.Code, Message: e.Message, Context: ctx}
}

// CodeOf extracts the ErrorCode carried by err.
// nil maps to ErrCodeOK and foreign errors to ErrCodeInternal.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ErrCodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}

// ErrorFromCode rebuilds a sentinel-compatible error from a wire status.
func ErrorFromCode(code ErrorCode) error {
	switch code {
	case ErrCodeOK:
		return nil
	case ErrCodeInvalidArgument:
		return ErrInvalidArgument
	case ErrCodeInvalidState:
		return ErrInvalidState
	case ErrCodeOutOfMemory:
		return ErrOutOfMemory
	case ErrCodeInsufficientSpace:
		return ErrInsufficientSpace
	case ErrCodeWouldBlock:
		return ErrWouldBlock
	case ErrCodeFault:
		return ErrFault
	case ErrCodeBusy:
		return ErrBusy
	case ErrCodeClosed:
		return ErrClosed
	default:
		return NewError(ErrCodeInternal, "internal error")
	}
}

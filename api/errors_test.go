package api

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := ErrWouldBlock.WithContext("requested", 8)
	if !errors.Is(err, ErrWouldBlock) {
		t.Fatal("contextual error should match its sentinel")
	}
	if errors.Is(err, ErrFault) {
		t.Fatal("different codes must not match")
	}
	wrapped := fmt.Errorf("read: %w", err)
	if !errors.Is(wrapped, ErrWouldBlock) {
		t.Fatal("wrapped error lost its code")
	}
}

func TestWithContextDoesNotMutate(t *testing.T) {
	a := ErrInsufficientSpace.WithContext("free", 3)
	b := a.WithContext("requested", 9)
	if len(ErrInsufficientSpace.Context) != 0 {
		t.Fatalf("sentinel mutated: %v", ErrInsufficientSpace.Context)
	}
	if len(a.Context) != 1 || len(b.Context) != 2 {
		t.Fatalf("contexts = %v / %v", a.Context, b.Context)
	}
	if !strings.Contains(b.Error(), "requested") {
		t.Errorf("message %q misses context", b.Error())
	}
	if ErrFault.Error() != "bad buffer" {
		t.Errorf("plain message = %q", ErrFault.Error())
	}
}

func TestCodeOf(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorCode
	}{
		{nil, ErrCodeOK},
		{ErrBusy, ErrCodeBusy},
		{fmt.Errorf("wrap: %w", ErrClosed), ErrCodeClosed},
		{errors.New("foreign"), ErrCodeInternal},
	}
	for _, c := range cases {
		if got := CodeOf(c.err); got != c.want {
			t.Errorf("CodeOf(%v) = %v, want %v", c.err, got, c.want)
		}
	}
}

func TestErrorFromCodeRoundTrip(t *testing.T) {
	if ErrorFromCode(ErrCodeOK) != nil {
		t.Fatal("ok must map to nil")
	}
	for c := ErrCodeInvalidArgument; c <= ErrCodeInternal; c++ {
		err := ErrorFromCode(c)
		if CodeOf(err) != c {
			t.Errorf("code %v came back as %v", c, CodeOf(err))
		}
	}
	if CodeOf(ErrorFromCode(200)) != ErrCodeInternal {
		t.Error("unknown codes should map to internal")
	}
}

func TestErrorCodeString(t *testing.T) {
	if ErrCodeInsufficientSpace.String() != "insufficient_space" {
		t.Errorf("got %q", ErrCodeInsufficientSpace.String())
	}
	if ErrorCode(99).String() != "unknown" {
		t.Errorf("got %q", ErrorCode(99).String())
	}
}

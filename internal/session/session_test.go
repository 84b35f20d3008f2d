package session_test

import (
	"errors"
	"testing"

	"github.com/momentics/hioload-pipe/api"
	"github.com/momentics/hioload-pipe/internal/session"
	"github.com/momentics/hioload-pipe/pipe"
)

func TestSessionCancelReleasesChannel(t *testing.T) {
	ch := pipe.New()
	if err := ch.Init(64); err != nil {
		t.Fatal(err)
	}
	s := session.New(session.NextID(), ch)
	s.Set("remote", "127.0.0.1:1")

	select {
	case <-s.Done():
		t.Fatal("Done closed before Cancel")
	default:
	}

	s.Cancel()
	s.Cancel()

	select {
	case <-s.Done():
	default:
		t.Fatal("Done not closed after Cancel")
	}
	if ch.State() != api.ChannelUninitialized {
		t.Error("channel still initialized after Cancel")
	}
	if _, err := ch.Read(0); !errors.Is(err, api.ErrInvalidState) {
		t.Errorf("Read after Cancel = %v", err)
	}
	if v, _ := s.Get("remote"); v != "127.0.0.1:1" {
		t.Errorf("attr = %v", v)
	}
}

func TestNextIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := session.NextID()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

package session

import (
	"errors"
	"testing"
	"time"
)

func TestChannelSendAndReceive(t *testing.T) {
	c := NewChannel()
	defer c.Close()

	if err := c.Send(Event{Type: EventValue, Text: "hello"}); err != nil {
		t.Fatalf("Send() error: %v", err)
	}

	select {
	case ev := <-c.Events():
		if ev.Type != EventValue || ev.Text != "hello" {
			t.Errorf("got event %+v, want value/hello", ev)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("expected event on channel")
	}
}

func TestChannelSendAfterClose(t *testing.T) {
	c := NewChannel()
	c.Close()

	if err := c.Send(Event{Type: EventValue, Text: "late"}); !errors.Is(err, ErrSubscriberGone) {
		t.Fatalf("Send() after Close = %v, want ErrSubscriberGone", err)
	}
}

func TestChannelSendFullBuffer(t *testing.T) {
	c := NewChannel()
	defer c.Close()

	var err error
	for i := 0; i < cap(c.events)+1; i++ {
		err = c.Send(Event{Type: EventValue, Text: "x"})
	}
	if !errors.Is(err, ErrSubscriberGone) {
		t.Fatalf("Send() on full buffer = %v, want ErrSubscriberGone", err)
	}
}

func TestChannelCloseIsIdempotent(t *testing.T) {
	c := NewChannel()
	c.Close()
	c.Close()

	select {
	case <-c.Done():
		// closed exactly once, Done observable
	default:
		t.Fatal("Done should be closed")
	}
}

func TestChannelIDsAreUnique(t *testing.T) {
	a := NewChannel()
	b := NewChannel()
	defer a.Close()
	defer b.Close()

	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("channel IDs should be unique and non-empty, got %q and %q", a.ID(), b.ID())
	}
}

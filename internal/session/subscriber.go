package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrSubscriberGone reports that a subscriber can no longer accept events,
// either because it was closed or because its buffer is full. The registry
// treats both the same way: the subscriber is dropped.
var ErrSubscriberGone = errors.New("session: subscriber gone")

// Subscriber is the delivery sink for one observer connection. Send must
// never block; a non-nil error marks the subscriber as gone and the caller
// removes it from the session. Close is idempotent and signals termination
// to whoever drains the sink.
type Subscriber interface {
	Send(Event) error
	Close()
}

// Channel is the channel-backed Subscriber used by SSE connections. Events
// are buffered so a publish never waits on a slow connection; the transport
// goroutine drains Events until Done is closed.
type Channel struct {
	id     string
	events chan Event
	done   chan struct{}
	once   sync.Once
}

// NewChannel creates a Channel with a fresh correlation ID.
func NewChannel() *Channel {
	return &Channel{
		id:     uuid.New().String(),
		events: make(chan Event, 16),
		done:   make(chan struct{}),
	}
}

// ID returns the correlation ID used in logs.
func (c *Channel) ID() string { return c.id }

// Events is the receive side drained by the transport.
func (c *Channel) Events() <-chan Event { return c.events }

// Done is closed when the Channel is closed, either by its owning stream
// or by the registry evicting the session.
func (c *Channel) Done() <-chan struct{} { return c.done }

// Send enqueues an event without blocking. A closed Channel or a full
// buffer returns ErrSubscriberGone.
func (c *Channel) Send(ev Event) error {
	select {
	case <-c.done:
		return ErrSubscriberGone
	default:
	}
	select {
	case c.events <- ev:
		return nil
	default:
		return ErrSubscriberGone
	}
}

// Close marks the Channel terminated. Safe to call more than once.
func (c *Channel) Close() {
	c.once.Do(func() { close(c.done) })
}

// Package session implements the in-memory session registry and its
// per-session publish/subscribe fan-out. A session holds at most one text
// value (last write wins) and a set of subscriber channels; publishes are
// delivered best-effort to every live subscriber.
package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

var (
	// ErrNotFound reports that no session exists for the given ID; it may
	// have expired or never been created.
	ErrNotFound = errors.New("session: not found")
	// ErrEmptyText reports that a publish carried blank text. It is a
	// caller-side validation failure, distinct from ErrNotFound.
	ErrEmptyText = errors.New("session: empty text")
)

// Generator produces opaque unique session identifiers. The registry does
// not enforce uniqueness beyond map-key semantics; collision resistance is
// the generator's contract.
type Generator func() (string, error)

// Session is one session's state. The mutex guards the value and the
// subscriber set; long-lived stream delivery happens outside it.
type Session struct {
	id        string
	createdAt time.Time

	mu    sync.Mutex
	value string
	subs  map[Subscriber]struct{}
}

// ID returns the session's identifier.
func (s *Session) ID() string { return s.id }

// CreatedAt returns the session's creation time.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Value returns the most recently published text, or "" before the first
// publish.
func (s *Session) Value() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// HasValue reports whether the session holds a non-empty text.
func (s *Session) HasValue() bool {
	return s.Value() != ""
}

// deliver pushes ev to every subscriber, dropping and closing any that
// refuse it. Callers must hold s.mu.
func (s *Session) deliver(ev Event) {
	for sub := range s.subs {
		if err := sub.Send(ev); err != nil {
			delete(s.subs, sub)
			sub.Close()
		}
	}
}

// closeAll force-closes and removes every subscriber.
func (s *Session) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for sub := range s.subs {
		sub.Close()
		delete(s.subs, sub)
	}
}

// Registry owns the session map. It is created empty at process start and
// torn down with Close at shutdown; nothing survives a restart.
type Registry struct {
	gen Generator

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates an empty Registry using gen for session IDs.
func NewRegistry(gen Generator) *Registry {
	return &Registry{
		gen:      gen,
		sessions: make(map[string]*Session),
	}
}

// Create inserts a new session with no value and returns its ID.
func (r *Registry) Create() (string, error) {
	id, err := r.gen()
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}

	s := &Session{
		id:        id,
		createdAt: time.Now(),
		subs:      make(map[Subscriber]struct{}),
	}

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()
	return id, nil
}

// Get returns the session for id, if it exists. Pure lookup, no side
// effects.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Publish sets the session's value and delivers a value event to every
// current subscriber. Blank text (after trimming) is rejected with
// ErrEmptyText before anything is looked up or mutated. Delivery is
// best-effort per subscriber: one that refuses the event is dropped and
// closed without affecting the others or the publisher.
func (r *Registry) Publish(id, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}

	s, ok := r.Get(id)
	if !ok {
		return ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = text
	s.deliver(Event{Type: EventValue, Text: text})
	return nil
}

// Subscribe registers sub with the session and returns the current value
// in the same critical section, so the caller's snapshot and the live
// events it will receive form one consistent sequence.
func (r *Registry) Subscribe(id string, sub Subscriber) (string, error) {
	s, ok := r.Get(id)
	if !ok {
		return "", ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[sub] = struct{}{}
	return s.value, nil
}

// Unsubscribe removes sub from the session's subscriber set. Removing a
// subscriber that is not present, or from a session that no longer exists,
// is a no-op.
func (r *Registry) Unsubscribe(id string, sub Subscriber) {
	s, ok := r.Get(id)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, sub)
}

// SweepExpired evicts every session older than maxAge, force-closing its
// subscribers so active streams observe termination. Returns the number of
// sessions evicted. Safe to run concurrently with any other registry
// operation.
func (r *Registry) SweepExpired(maxAge time.Duration) int {
	now := time.Now()

	r.mu.Lock()
	var expired []*Session
	for id, s := range r.sessions {
		if now.Sub(s.createdAt) >= maxAge {
			expired = append(expired, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range expired {
		s.closeAll()
	}
	return len(expired)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Close tears the registry down at process shutdown: every session is
// evicted and every subscriber channel force-closed.
func (r *Registry) Close() {
	r.SweepExpired(0)
}

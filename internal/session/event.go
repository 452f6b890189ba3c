package session

// EventType discriminates the records pushed to stream subscribers.
type EventType string

const (
	// EventConnected confirms the stream is live and names the session.
	EventConnected EventType = "connected"
	// EventValue carries the session's current text.
	EventValue EventType = "value"
)

// Event is one self-describing record delivered through a subscriber
// channel. Keepalive markers are not Events; the transport emits them
// out-of-band.
type Event struct {
	Type      EventType `json:"type"`
	SessionID string    `json:"sessionId,omitempty"`
	Text      string    `json:"text,omitempty"`
}

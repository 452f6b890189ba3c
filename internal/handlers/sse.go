package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/textdrop/backend/internal/session"
)

// StreamHandler serves Server-Sent Events streams that deliver session text
// updates to connected desktop clients.
type StreamHandler struct {
	registry  *session.Registry
	keepalive time.Duration
}

// NewStreamHandler creates a StreamHandler backed by the given registry.
// keepalive is the interval between comment frames that keep intermediary
// proxies from closing an idle connection.
func NewStreamHandler(registry *session.Registry, keepalive time.Duration) *StreamHandler {
	return &StreamHandler{
		registry:  registry,
		keepalive: keepalive,
	}
}

// Stream opens an SSE connection scoped to a session. It sends a "connected"
// event, then the current text as a "value" event if one exists, then a
// "value" event for each subsequent publish, interleaved with keepalive
// comments, until the client disconnects or the session is evicted.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	if _, ok := h.registry.Get(sessionID); !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	sub := session.NewChannel()
	defer sub.Close()

	writeEvent(w, flusher, session.Event{Type: session.EventConnected, SessionID: sessionID})

	snapshot, err := h.registry.Subscribe(sessionID, sub)
	if err != nil {
		// Evicted between lookup and subscribe; the connected event is the
		// last thing this stream says.
		return
	}
	defer h.registry.Unsubscribe(sessionID, sub)

	if snapshot != "" {
		writeEvent(w, flusher, session.Event{Type: session.EventValue, Text: snapshot})
	}

	slog.Debug("stream opened",
		slog.String("session_id", sessionID),
		slog.String("subscriber_id", sub.ID()))

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done():
			// Session evicted or registry shut down.
			return
		case ev := <-sub.Events():
			writeEvent(w, flusher, ev)
		case <-keepalive.C:
			fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()
		}
	}
}

// writeEvent frames ev as a data-only SSE record and flushes it.
func writeEvent(w io.Writer, flusher http.Flusher, ev session.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", data)
	flusher.Flush()
}

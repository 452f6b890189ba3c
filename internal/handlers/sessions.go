package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/textdrop/backend/internal/config"
	"github.com/textdrop/backend/internal/models"
	"github.com/textdrop/backend/internal/qr"
	"github.com/textdrop/backend/internal/session"
)

// SessionHandler manages session lifecycle: creation, existence checks, and
// text submission.
type SessionHandler struct {
	registry *session.Registry
	cfg      *config.Config
}

// NewSessionHandler creates a SessionHandler with the required dependencies.
func NewSessionHandler(registry *session.Registry, cfg *config.Config) *SessionHandler {
	return &SessionHandler{
		registry: registry,
		cfg:      cfg,
	}
}

// Create provisions a new session and returns its ID, the URL a phone
// should open, and that URL rendered as a QR code data URL. The request
// body is optional; it may carry a baseUrl override for deployments behind
// a different public origin.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	baseURL := strings.TrimSuffix(req.BaseURL, "/")
	if baseURL == "" {
		baseURL = strings.TrimSuffix(h.cfg.BaseURL, "/")
	}

	sessionID, err := h.registry.Create()
	if err != nil {
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to create session", err)
		return
	}

	sessionURL := baseURL + "/s/" + sessionID

	qrCodeDataURL, err := qr.DataURL(sessionURL)
	if err != nil {
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to create session", err)
		return
	}

	writeJSON(w, http.StatusCreated, models.CreateSessionResponse{
		SessionID:     sessionID,
		SessionURL:    sessionURL,
		QRCodeDataURL: qrCodeDataURL,
	})
}

// Status reports whether a session is live, when it was created, and
// whether it already holds text. Unknown IDs answer 404 with exists:false
// so clients can branch on either the status code or the body.
func (h *SessionHandler) Status(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	s, ok := h.registry.Get(sessionID)
	if !ok {
		writeJSON(w, http.StatusNotFound, models.SessionStatusResponse{Exists: false})
		return
	}

	createdAt := s.CreatedAt()
	writeJSON(w, http.StatusOK, models.SessionStatusResponse{
		Exists:    true,
		CreatedAt: &createdAt,
		HasText:   s.HasValue(),
	})
}

// PublishText submits text to a session and fans it out to every connected
// stream. Blank text is a validation error, distinct from an unknown or
// expired session.
func (h *SessionHandler) PublishText(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	var req models.PublishTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.registry.Publish(sessionID, req.Text)
	switch {
	case errors.Is(err, session.ErrEmptyText):
		writeError(w, http.StatusBadRequest, "text is required")
	case errors.Is(err, session.ErrNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case err != nil:
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to publish text", err)
	default:
		writeJSON(w, http.StatusOK, models.PublishTextResponse{Status: "ok"})
	}
}

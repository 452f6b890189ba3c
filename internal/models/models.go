package models

import "time"

// Session management
type CreateSessionRequest struct {
	BaseURL string `json:"baseUrl,omitempty"`
}

type CreateSessionResponse struct {
	SessionID     string `json:"sessionId"`
	SessionURL    string `json:"sessionUrl"`
	QRCodeDataURL string `json:"qrCodeDataUrl"`
}

type SessionStatusResponse struct {
	Exists    bool       `json:"exists"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	HasText   bool       `json:"hasText"`
}

// Text submission
type PublishTextRequest struct {
	Text string `json:"text"`
}

type PublishTextResponse struct {
	Status string `json:"status"`
}

// Error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

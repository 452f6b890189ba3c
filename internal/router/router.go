package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/textdrop/backend/internal/config"
	"github.com/textdrop/backend/internal/handlers"
	"github.com/textdrop/backend/internal/middleware"
	"github.com/textdrop/backend/internal/session"
)

func New(cfg *config.Config, registry *session.Registry) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewRealIPMiddleware(cfg.TrustedProxies).Handler)
	r.Use(middleware.RequestContextMiddleware)
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	// Handlers
	sessionHandler := handlers.NewSessionHandler(registry, cfg)
	streamHandler := handlers.NewStreamHandler(registry, cfg.KeepaliveInterval)

	// Rate limiter for session creation and text submission
	writeRateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute)

	// Routes
	r.Route("/api", func(r chi.Router) {
		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})

		// Session management
		r.Route("/sessions", func(r chi.Router) {
			// Create session (desktop client, renders the QR code)
			r.With(writeRateLimiter.Middleware).Post("/", sessionHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(middleware.SessionContextMiddleware)

				// Existence / status probe
				r.Get("/", sessionHandler.Status)

				// Text submission (mobile client)
				r.With(writeRateLimiter.Middleware).Post("/text", sessionHandler.PublishText)

				// SSE stream (desktop client)
				r.Get("/events", streamHandler.Stream)
			})
		})
	})

	return r
}

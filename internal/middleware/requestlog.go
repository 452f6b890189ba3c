package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/textdrop/backend/internal/logging"
)

// RequestContextMiddleware adds request attributes to context early in the middleware chain.
func RequestContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attrs := &logging.RequestAttrs{
			Method: r.Method,
			Path:   r.URL.Path,
			IP:     logging.ExtractClientIP(r),
		}
		ctx := logging.WithRequestAttrs(r.Context(), attrs)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionContextMiddleware records the session ID from the route in the
// request attributes so error and security logs can name the session.
func SessionContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chi.URLParam(r, "id"); id != "" {
			r = r.WithContext(logging.WithSessionID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
)

// APIKey returns a middleware that gates mutating routes behind a static
// shared secret in the X-Api-Key header.
//
// When no key is configured the check is bypassed entirely (open access) —
// a deliberate demo-grade simplification, not an access-control boundary.
// The caller is expected to log loudly at startup when that is the case.
//
// The comparison is constant-time so the response latency leaks nothing
// about how much of a guessed key matched.
func APIKey(key string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if key == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("X-Api-Key")
			if subtle.ConstantTimeCompare([]byte(token), []byte(key)) != 1 {
				logger.Warn("rejected request with invalid api key",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized","message":"Invalid or missing token"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

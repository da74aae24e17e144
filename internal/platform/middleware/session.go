package middleware

import (
	"context"
	"log/slog"
	"net/http"
)

// SessionValidator verifies a session token and returns the username it was
// issued for.
type SessionValidator interface {
	Validate(tokenString string) (string, error)
}

type usernameKey struct{}

// GetUsername retrieves the authenticated username from the context.
func GetUsername(ctx context.Context) string {
	if username, ok := ctx.Value(usernameKey{}).(string); ok {
		return username
	}
	return ""
}

// WithUsername returns a context carrying the authenticated username.
// Exported for handler tests.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey{}, username)
}

// RequireSession authenticates requests via the session cookie and injects the
// username into the request context. Requests without a valid session get a
// 401 JSON envelope.
func RequireSession(cookieName string, validator SessionValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				unauthorized(w, "Session required")
				return
			}

			username, err := validator.Validate(cookie.Value)
			if err != nil {
				logger.WarnContext(r.Context(), "unauthorized access - invalid session",
					"error", err,
					"request_id", GetRequestID(r.Context()),
				)
				unauthorized(w, "Invalid or expired session")
				return
			}

			ctx := WithUsername(r.Context(), username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"ok":false,"error":"unauthorized","msg":"` + description + `"}`))
}

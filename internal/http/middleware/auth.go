package middleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

// userKey holds the authenticated username in the request context.
const userKey contextKey = "auth.user"

// TokenVerifier validates a bearer token and returns its subject.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// RequireAuth rejects requests that do not carry a valid bearer token.
func RequireAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			username, err := verifier.VerifyToken(token)
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Username returns the authenticated username, if any.
func Username(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(userKey).(string)
	return username, ok
}

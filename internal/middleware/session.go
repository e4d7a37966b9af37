package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Amreshcodee/itemhub/internal/model"
	"github.com/Amreshcodee/itemhub/internal/session"
)

// UserKey is the context key for the authenticated username.
const UserKey contextKey = "user"

// Session returns a middleware that resolves the session cookie and, when
// valid, annotates the request context with the username. Requests without
// a valid session pass through unauthenticated.
func Session(sessions *session.Manager) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := session.FromRequest(r)
			if token != "" {
				if username, ok := sessions.Username(token); ok {
					ctx := context.WithValue(r.Context(), UserKey, username)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireUser returns a middleware that rejects requests lacking an
// authenticated user with a 401 response.
func RequireUser() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := UserFromContext(r.Context()); !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(model.ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Authentication required",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserFromContext returns the authenticated username stored by Session.
func UserFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UserKey).(string)
	return username, ok && username != ""
}

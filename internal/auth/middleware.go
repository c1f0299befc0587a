package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/joestump/pagegen/internal/store"
)

type contextKey string

const UserContextKey contextKey = "user"

// WithUser returns a copy of ctx carrying u.
func WithUser(ctx context.Context, u *store.User) context.Context {
	return context.WithValue(ctx, UserContextKey, u)
}

// UserFromContext retrieves the authenticated user from the context.
func UserFromContext(ctx context.Context) *store.User {
	u, _ := ctx.Value(UserContextKey).(*store.User)
	return u
}

// RequireCapability returns a middleware that rejects users lacking c with
// 403. Must be used after Authenticate.
func RequireCapability(c store.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !UserFromContext(r.Context()).Can(c) {
				writeAuthError(w, http.StatusForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeAuthError writes the API error envelope with the unauthorized code.
func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   msg,
		"code":    "unauthorized",
	})
}

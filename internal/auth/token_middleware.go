package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/joestump/pagegen/internal/store"
)

// UserLookup resolves token owners.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*store.User, error)
}

// BearerTokenMiddleware authenticates API requests via Bearer token.
type BearerTokenMiddleware struct {
	tokens TokenStore
	users  UserLookup
	log    *zap.Logger
}

// NewBearerTokenMiddleware creates a new BearerTokenMiddleware.
func NewBearerTokenMiddleware(ts TokenStore, us UserLookup, log *zap.Logger) *BearerTokenMiddleware {
	if log == nil {
		log = zap.NewNop()
	}
	return &BearerTokenMiddleware{tokens: ts, users: us, log: log}
}

// Authenticate extracts and validates a Bearer token. A valid token puts its
// owner on the request context and schedules a last_used_at update; a
// missing, unknown, revoked or expired token yields 401.
func (m *BearerTokenMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		plaintext, ok := bearerToken(r)
		if !ok {
			writeAuthError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		rec, err := m.tokens.GetByHash(r.Context(), HashToken(plaintext))
		if err != nil || !rec.Active(time.Now()) {
			writeAuthError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		user, err := m.users.GetByID(r.Context(), rec.UserID)
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		go func(id string) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := m.tokens.UpdateLastUsed(ctx, id); err != nil {
				m.log.Debug("update token last_used_at", zap.String("token_id", id), zap.Error(err))
			}
		}(rec.ID)

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	return tok, tok != ""
}

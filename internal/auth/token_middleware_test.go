package auth_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/joestump/pagegen/internal/auth"
	"github.com/joestump/pagegen/internal/store"
)

// mockTokenStore is a test double implementing auth.TokenStore.
type mockTokenStore struct {
	getByHash      func(ctx context.Context, hash string) (*auth.TokenRecord, error)
	updateLastUsed func(ctx context.Context, id string) error
}

func (m *mockTokenStore) Create(ctx context.Context, userID, name, tokenHash string, expiresAt *time.Time) (*auth.TokenRecord, error) {
	return nil, nil
}

func (m *mockTokenStore) GetByHash(ctx context.Context, hash string) (*auth.TokenRecord, error) {
	return m.getByHash(ctx, hash)
}

func (m *mockTokenStore) ListByUser(ctx context.Context, userID string) ([]*auth.TokenRecord, error) {
	return nil, nil
}

func (m *mockTokenStore) Revoke(ctx context.Context, id, userID string) error {
	return nil
}

func (m *mockTokenStore) UpdateLastUsed(ctx context.Context, id string) error {
	if m.updateLastUsed != nil {
		return m.updateLastUsed(ctx, id)
	}
	return nil
}

type mockUsers map[string]*store.User

func (m mockUsers) GetByID(_ context.Context, id string) (*store.User, error) {
	if u, ok := m[id]; ok {
		return u, nil
	}
	return nil, store.ErrNotFound
}

// okHandler echoes the authenticated user's email.
func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if u := auth.UserFromContext(r.Context()); u != nil {
			w.Write([]byte(u.Email))
		}
	})
}

func singleToken(hash string, rec *auth.TokenRecord) *mockTokenStore {
	return &mockTokenStore{
		getByHash: func(_ context.Context, h string) (*auth.TokenRecord, error) {
			if h == hash {
				return rec, nil
			}
			return nil, store.ErrNotFound
		},
	}
}

var editor = &store.User{ID: "user-1", Email: "editor@example.com", Role: store.RoleEditor}

func TestBearerTokenMiddleware_ValidToken(t *testing.T) {
	plaintext, hash, _ := auth.GenerateToken()
	used := make(chan string, 1)

	ts := singleToken(hash, &auth.TokenRecord{ID: "token-1", UserID: editor.ID, TokenHash: hash})
	ts.updateLastUsed = func(_ context.Context, id string) error {
		used <- id
		return nil
	}

	mw := auth.NewBearerTokenMiddleware(ts, mockUsers{editor.ID: editor}, nil)
	req := httptest.NewRequest("POST", "/api/v1/generate", nil)
	req.Header.Set("Authorization", "Bearer "+plaintext)
	rec := httptest.NewRecorder()
	mw.Authenticate(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.String() != editor.Email {
		t.Errorf("body = %q, want %q", rec.Body.String(), editor.Email)
	}
	select {
	case id := <-used:
		if id != "token-1" {
			t.Errorf("UpdateLastUsed id = %q", id)
		}
	case <-time.After(2 * time.Second):
		t.Error("UpdateLastUsed was not called")
	}
}

func TestBearerTokenMiddleware_Rejections(t *testing.T) {
	plaintext, hash, _ := auth.GenerateToken()
	now := time.Now()

	tests := []struct {
		name   string
		header string
		token  *auth.TokenRecord
		users  mockUsers
	}{
		{name: "no header", header: ""},
		{name: "basic scheme", header: "Basic abc"},
		{name: "empty bearer", header: "Bearer "},
		{name: "unknown token", header: "Bearer pg_unknown"},
		{
			name:   "revoked",
			header: "Bearer " + plaintext,
			token:  &auth.TokenRecord{ID: "t", UserID: editor.ID, RevokedAt: sql.NullTime{Time: now, Valid: true}},
			users:  mockUsers{editor.ID: editor},
		},
		{
			name:   "expired",
			header: "Bearer " + plaintext,
			token:  &auth.TokenRecord{ID: "t", UserID: editor.ID, ExpiresAt: sql.NullTime{Time: now.Add(-time.Hour), Valid: true}},
			users:  mockUsers{editor.ID: editor},
		},
		{
			name:   "owner missing",
			header: "Bearer " + plaintext,
			token:  &auth.TokenRecord{ID: "t", UserID: "ghost"},
			users:  mockUsers{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := singleToken(hash, tt.token)
			if tt.token == nil {
				ts = singleToken("", nil)
			}
			mw := auth.NewBearerTokenMiddleware(ts, tt.users, nil)

			req := httptest.NewRequest("GET", "/api/v1/history", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			mw.Authenticate(okHandler()).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
			}
			var body map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["success"] != false || body["code"] != "unauthorized" {
				t.Errorf("body = %v", body)
			}
		})
	}
}

func TestRequireCapability(t *testing.T) {
	tests := []struct {
		name string
		user *store.User
		cap  store.Capability
		want int
	}{
		{"anonymous", nil, store.CapEditPages, http.StatusForbidden},
		{"author can edit", &store.User{Role: store.RoleAuthor}, store.CapEditPages, http.StatusOK},
		{"author cannot publish", &store.User{Role: store.RoleAuthor}, store.CapPublishPages, http.StatusForbidden},
		{"editor cannot manage options", &store.User{Role: store.RoleEditor}, store.CapManageOptions, http.StatusForbidden},
		{"admin manages options", &store.User{Role: store.RoleAdmin}, store.CapManageOptions, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.user != nil {
				req = req.WithContext(auth.WithUser(req.Context(), tt.user))
			}
			rec := httptest.NewRecorder()
			auth.RequireCapability(tt.cap)(okHandler()).ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

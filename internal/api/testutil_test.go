package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/joestump/pagegen/internal/api"
	"github.com/joestump/pagegen/internal/auth"
	"github.com/joestump/pagegen/internal/generate"
	"github.com/joestump/pagegen/internal/llm"
	"github.com/joestump/pagegen/internal/store"
	"github.com/joestump/pagegen/internal/testutil"
)

// testEnv holds all stores and helpers needed for API integration tests.
type testEnv struct {
	Router    http.Handler
	Documents *store.DocumentStore
	Meta      *store.MetaStore
	Terms     *store.TermStore
	History   *store.HistoryStore
	Tokens    *auth.SQLTokenStore
	conn      func(t *testing.T, email, role string) *store.User
}

// newTestEnv creates an in-memory SQLite test database, runs migrations,
// and wires up the full API router with real stores. client may be nil.
func newTestEnv(t *testing.T, client *llm.Client) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)

	docs := store.NewDocumentStore(db)
	meta := store.NewMetaStore(db)
	terms := store.NewTermStore(db)
	history := store.NewHistoryStore(db)
	users := store.NewUserStore(db)
	ts := auth.NewSQLTokenStore(db)

	deps := generate.Deps{Documents: docs, Meta: meta, Terms: terms, History: history}
	if client != nil {
		deps.LLM = client
	}
	svc := generate.New(deps, generate.Options{
		BaseURL:         "http://pages.test",
		SiteName:        "Pages",
		MaxCombinations: 4,
	})

	router := api.NewAPIRouter(api.Deps{
		BearerAuth: auth.NewBearerTokenMiddleware(ts, users, nil),
		Generator:  svc,
		Documents:  docs,
		Meta:       meta,
		Terms:      terms,
		History:    history,
		Tokens:     ts,
		LLM:        client,
	})
	return &testEnv{
		Router:    router,
		Documents: docs,
		Meta:      meta,
		Terms:     terms,
		History:   history,
		Tokens:    ts,
		conn: func(t *testing.T, email, role string) *store.User {
			return testutil.SeedUser(t, db, email, role)
		},
	}
}

// seedUser creates a user and returns it with a plaintext Bearer token.
func seedUser(t *testing.T, env *testEnv, email, role string) (*store.User, string) {
	t.Helper()
	u := env.conn(t, email, role)
	plaintext, hash, err := auth.GenerateToken()
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if _, err := env.Tokens.Create(context.Background(), u.ID, "test-token", hash, nil); err != nil {
		t.Fatalf("create token: %v", err)
	}
	return u, plaintext
}

// do sends a JSON request through the router.
func do(t *testing.T, env *testEnv, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

// seedTemplate stores a page template with a Yoast description.
func seedTemplate(t *testing.T, env *testEnv, author *store.User) *store.Document {
	t.Helper()
	ctx := context.Background()
	doc, err := env.Documents.Create(ctx, store.NewDocument{
		Type:     "page",
		Status:   store.StatusPublish,
		Title:    "[keyword] in [location]",
		Body:     "<h1>[keyword] in [location]</h1><p>Find [keyword] near [location].</p>",
		AuthorID: author.ID,
	})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	if err := env.Meta.SetMeta(ctx, doc.ID, "_yoast_wpseo_metadesc", store.TextValue("Top [keyword] in [location].")); err != nil {
		t.Fatalf("set meta: %v", err)
	}
	return doc
}

// Package api implements the JSON API mounted at /api/v1.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/joestump/pagegen/internal/auth"
	"github.com/joestump/pagegen/internal/generate"
	"github.com/joestump/pagegen/internal/llm"
	"github.com/joestump/pagegen/internal/store"
)

// Deps holds all dependencies required to build the API router.
// LLM may be nil when no provider could be configured.
type Deps struct {
	BearerAuth *auth.BearerTokenMiddleware
	Generator  *generate.Service
	Documents  *store.DocumentStore
	Meta       *store.MetaStore
	Terms      *store.TermStore
	History    *store.HistoryStore
	Tokens     auth.TokenStore
	LLM        *llm.Client
	Types      []string
	Logger     *zap.Logger
}

// NewAPIRouter creates a chi sub-router for /api/v1.
// All routes require Bearer token authentication and return application/json.
func NewAPIRouter(deps Deps) chi.Router {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if len(deps.Types) == 0 {
		deps.Types = []string{"page", "post"}
	}

	r := chi.NewRouter()
	r.Use(jsonContentType)
	r.Use(deps.BearerAuth.Authenticate)

	registerGenerateRoutes(r, deps.Generator)
	registerTemplateRoutes(r, deps.Documents, deps.Generator, deps.Types)
	registerDocumentRoutes(r, deps)
	registerHistoryRoutes(r, deps.History)
	registerLLMRoutes(r, deps.LLM, deps.Logger)
	registerTokenRoutes(r, deps.Tokens)

	return r
}

// jsonContentType is a middleware that sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

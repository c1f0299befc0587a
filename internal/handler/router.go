// Package handler assembles the HTTP router: the JSON API, the public
// document view, Swagger UI, health and metrics.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/joestump/pagegen/docs/swagger"
	"github.com/joestump/pagegen/internal/build"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	API       http.Handler
	Documents *DocumentHandler
}

// NewRouter assembles the full chi router with all middleware and routes.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Get("/healthz", healthz)
	r.Handle("/metrics", promhttp.Handler())

	// Swagger UI, no auth required.
	r.Get("/api/docs/*", httpSwagger.WrapHandler)
	r.Mount("/api/v1", deps.API)

	r.Get("/p/{slug}", deps.Documents.Show)

	return r
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"version": build.Version,
		"commit":  build.Commit,
	})
}

package api

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/pagegen/internal/errcode"
	"github.com/joestump/pagegen/internal/generate"
	"github.com/joestump/pagegen/internal/store"
)

type templatesAPIHandler struct {
	docs  *store.DocumentStore
	svc   *generate.Service
	types []string
}

func registerTemplateRoutes(r chi.Router, docs *store.DocumentStore, svc *generate.Service, types []string) {
	h := &templatesAPIHandler{docs: docs, svc: svc, types: types}
	r.Get("/templates", h.List)
	r.Get("/templates/{id}", h.Get)
}

// List returns the documents of the generation types, optionally filtered
// by the type query parameter.
//
// @Summary      List templates
// @Description  Returns every document of the configured generation types usable as a template.
// @Tags         Templates
// @Produce      json
// @Param        type  query     string  false  "Restrict to one document type"
// @Success      200   {object}  TemplateListResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Security     BearerToken
// @Router       /templates [get]
func (h *templatesAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	types := h.types
	if t := r.URL.Query().Get("type"); t != "" {
		if !slices.Contains(h.types, t) {
			writeError(w, http.StatusBadRequest, "unsupported document type", errcode.BadRequest)
			return
		}
		types = []string{t}
	}

	resp := TemplateListResponse{Success: true, Templates: []*TemplateResponse{}}
	for _, t := range types {
		docs, err := h.docs.ListByType(r.Context(), t)
		if err != nil {
			writeErr(w, err)
			return
		}
		for _, d := range docs {
			resp.Templates = append(resp.Templates, h.toTemplate(d))
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single template's title and permalink.
//
// @Summary      Get a template
// @Tags         Templates
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  TemplateResponse
// @Failure      404  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /templates/{id} [get]
func (h *templatesAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.docs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	if !slices.Contains(h.types, d.Type) {
		writeError(w, http.StatusNotFound, "not found", errcode.NotFound)
		return
	}
	writeJSON(w, http.StatusOK, h.toTemplate(d))
}

func (h *templatesAPIHandler) toTemplate(d *store.Document) *TemplateResponse {
	return &TemplateResponse{
		ID:        d.ID,
		Title:     d.Title,
		Type:      d.Type,
		Status:    d.Status,
		Permalink: h.svc.ViewURL(d.Slug),
	}
}

package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/pagegen/internal/auth"
	"github.com/joestump/pagegen/internal/errcode"
	"github.com/joestump/pagegen/internal/generate"
	"github.com/joestump/pagegen/internal/store"
)

// documentsAPIHandler authors template documents. Every route requires
// edit_pages.
type documentsAPIHandler struct {
	docs  *store.DocumentStore
	meta  *store.MetaStore
	terms *store.TermStore
	svc   *generate.Service
}

func registerDocumentRoutes(r chi.Router, deps Deps) {
	h := &documentsAPIHandler{docs: deps.Documents, meta: deps.Meta, terms: deps.Terms, svc: deps.Generator}
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireCapability(store.CapEditPages))
		r.Post("/documents", h.Create)
		r.Get("/documents/{id}", h.Get)
		r.Put("/documents/{id}/meta/{key}", h.PutMeta)
		r.Put("/documents/{id}/terms/{taxonomy}", h.PutTerms)
	})
}

// Create inserts a document with optional metadata and terms.
//
// @Summary      Create a document
// @Description  Creates a document, typically a template. Terms are given by name per taxonomy and created when missing.
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Param        body  body      CreateDocumentRequest  true  "Document to create"
// @Success      201   {object}  DocumentResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Security     BearerToken
// @Router       /documents [post]
func (h *documentsAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDocumentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Type) == "" || strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "type and title are required", errcode.BadRequest)
		return
	}
	if req.Status == "" {
		req.Status = store.StatusDraft
	}
	if err := store.ValidateStatus(req.Status); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), errcode.BadRequest)
		return
	}
	if req.Slug != "" {
		if err := store.ValidateSlugFormat(req.Slug); err != nil {
			writeError(w, http.StatusBadRequest, err.Error(), errcode.BadRequest)
			return
		}
	}

	ctx := r.Context()
	taxonomies, err := h.terms.Taxonomies(ctx, req.Type)
	if err != nil {
		writeErr(w, err)
		return
	}
	for tax := range req.Terms {
		if !slices.Contains(taxonomies, tax) {
			writeError(w, http.StatusBadRequest, "taxonomy "+tax+" is not registered for "+req.Type, errcode.BadRequest)
			return
		}
	}

	doc, err := h.docs.Create(ctx, store.NewDocument{
		Type:     req.Type,
		Status:   req.Status,
		Title:    req.Title,
		Slug:     req.Slug,
		Body:     req.Body,
		Excerpt:  req.Excerpt,
		AuthorID: auth.UserFromContext(ctx).ID,
	})
	if err != nil {
		writeErr(w, err)
		return
	}

	if err := h.attach(ctx, doc.ID, req); err != nil {
		_ = h.docs.Delete(context.WithoutCancel(ctx), doc.ID)
		writeErr(w, err)
		return
	}

	resp, err := h.toDocument(ctx, doc)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *documentsAPIHandler) attach(ctx context.Context, id string, req CreateDocumentRequest) error {
	for key, v := range req.Meta {
		if err := h.meta.SetMeta(ctx, id, key, v); err != nil {
			return err
		}
	}
	for tax, names := range req.Terms {
		if err := h.setTermNames(ctx, id, tax, names); err != nil {
			return err
		}
	}
	return nil
}

// Get returns a document with its metadata and terms.
//
// @Summary      Get a document
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  DocumentResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /documents/{id} [get]
func (h *documentsAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.docs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	resp, err := h.toDocument(r.Context(), doc)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// PutMeta stores one metadata value. A JSON string body is stored as text,
// any other JSON value as a structure.
//
// @Summary      Set a metadata value
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Param        key  path      string  true  "Metadata key"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /documents/{id}/meta/{key} [put]
func (h *documentsAPIHandler) PutMeta(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	doc, err := h.docs.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 4<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", errcode.BadRequest)
		return
	}
	var v store.MetaValue
	if err := json.Unmarshal(body, &v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", errcode.BadRequest)
		return
	}
	if err := h.meta.SetMeta(ctx, doc.ID, chi.URLParam(r, "key"), v); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PutTerms replaces the document's terms in one taxonomy.
//
// @Summary      Set taxonomy terms
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Param        id        path      string           true  "Document ID"
// @Param        taxonomy  path      string           true  "Taxonomy"
// @Param        body      body      SetTermsRequest  true  "Term names"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /documents/{id}/terms/{taxonomy} [put]
func (h *documentsAPIHandler) PutTerms(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	doc, err := h.docs.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	var req SetTermsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tax := chi.URLParam(r, "taxonomy")
	taxonomies, err := h.terms.Taxonomies(ctx, doc.Type)
	if err != nil {
		writeErr(w, err)
		return
	}
	if !slices.Contains(taxonomies, tax) {
		writeError(w, http.StatusBadRequest, "taxonomy "+tax+" is not registered for "+doc.Type, errcode.BadRequest)
		return
	}
	if err := h.setTermNames(ctx, doc.ID, tax, req.Terms); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *documentsAPIHandler) setTermNames(ctx context.Context, docID, taxonomy string, names []string) error {
	ids := make([]string, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		t, err := h.terms.Upsert(ctx, taxonomy, name)
		if err != nil {
			return err
		}
		ids = append(ids, t.ID)
	}
	return h.terms.SetTerms(ctx, docID, taxonomy, ids)
}

func (h *documentsAPIHandler) toDocument(ctx context.Context, d *store.Document) (*DocumentResponse, error) {
	meta, err := h.meta.GetMeta(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	taxonomies, err := h.terms.Taxonomies(ctx, d.Type)
	if err != nil {
		return nil, err
	}
	terms := make(map[string][]string, len(taxonomies))
	for _, tax := range taxonomies {
		list, err := h.terms.ListTerms(ctx, d.ID, tax)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(list))
		for _, t := range list {
			names = append(names, t.Name)
		}
		terms[tax] = names
	}
	return &DocumentResponse{
		ID:        d.ID,
		Type:      d.Type,
		Status:    d.Status,
		Title:     d.Title,
		Slug:      d.Slug,
		Body:      d.Body,
		Excerpt:   d.Excerpt,
		AuthorID:  d.AuthorID,
		Permalink: h.svc.ViewURL(d.Slug),
		Meta:      meta,
		Terms:     terms,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/pagegen/internal/auth"
	"github.com/joestump/pagegen/internal/generate"
)

type generateAPIHandler struct {
	svc *generate.Service
}

func registerGenerateRoutes(r chi.Router, svc *generate.Service) {
	h := &generateAPIHandler{svc: svc}
	r.Post("/generate", h.Generate)
	r.Post("/preview", h.Preview)
	r.Post("/batch", h.Batch)
}

// Generate creates one document.
//
// @Summary      Generate a page
// @Description  Generates a draft document from a template (literal or rewrite strategy) or from scratch (procedural or ai strategy). Requires publish_pages.
// @Tags         Generation
// @Accept       json
// @Produce      json
// @Param        body  body      generate.Request  true  "Generation request"
// @Success      201   {object}  GenerateResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Failure      502   {object}  ErrorResponse
// @Failure      503   {object}  ErrorResponse
// @Failure      504   {object}  ErrorResponse
// @Security     BearerToken
// @Router       /generate [post]
func (h *generateAPIHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generate.Request
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.Generate(r.Context(), auth.UserFromContext(r.Context()), req)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, GenerateResponse{Success: true, Data: res})
}

// Preview renders a generation without persisting anything.
//
// @Summary      Preview a page
// @Description  Runs the same content path as generate and returns the content and meta description. Requires edit_pages.
// @Tags         Generation
// @Accept       json
// @Produce      json
// @Param        body  body      generate.Request  true  "Generation request"
// @Success      200   {object}  GenerateResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Failure      502   {object}  ErrorResponse
// @Security     BearerToken
// @Router       /preview [post]
func (h *generateAPIHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req generate.Request
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.Preview(r.Context(), auth.UserFromContext(r.Context()), req)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, GenerateResponse{Success: true, Data: res})
}

// Batch generates one document per location and skill set combination.
//
// @Summary      Generate a batch
// @Description  Generates every location x skill set combination in order. Rejected before any write when the combination count exceeds the configured maximum.
// @Tags         Generation
// @Accept       json
// @Produce      json
// @Param        body  body      generate.BatchRequest  true  "Batch request"
// @Success      200   {object}  BatchResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Security     BearerToken
// @Router       /batch [post]
func (h *generateAPIHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req generate.BatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.GenerateBatch(r.Context(), auth.UserFromContext(r.Context()), req)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, BatchResponse{Success: res.Status != generate.BatchFailed, Data: res})
}

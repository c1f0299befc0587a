package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/pagegen/internal/store"
)

type historyAPIHandler struct {
	history *store.HistoryStore
}

func registerHistoryRoutes(r chi.Router, history *store.HistoryStore) {
	h := &historyAPIHandler{history: history}
	r.Get("/history", h.List)
}

// List returns recent generations, or those of one template.
//
// @Summary      Generation history
// @Tags         Generation
// @Produce      json
// @Param        template_id  query     string  false  "Only generations derived from this template"
// @Param        limit        query     int     false  "Max results (default 50, max 200)"
// @Success      200          {object}  HistoryResponse
// @Failure      401          {object}  ErrorResponse
// @Security     BearerToken
// @Router       /history [get]
func (h *historyAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r)

	var (
		recs []*store.GenerationRecord
		err  error
	)
	if tid := r.URL.Query().Get("template_id"); tid != "" {
		recs, err = h.history.ListByTemplate(r.Context(), tid)
		if len(recs) > limit {
			recs = recs[:limit]
		}
	} else {
		recs, err = h.history.ListRecent(r.Context(), limit)
	}
	if err != nil {
		writeErr(w, err)
		return
	}

	resp := HistoryResponse{Success: true, History: make([]*HistoryEntry, 0, len(recs))}
	for _, rec := range recs {
		resp.History = append(resp.History, &HistoryEntry{
			ID:          rec.ID,
			DocumentID:  rec.DocumentID,
			TemplateID:  rec.TemplateID.String,
			Strategy:    rec.Strategy,
			Keyword:     rec.Keyword,
			Location:    rec.Location,
			SkillSet:    rec.SkillSet,
			UserID:      rec.UserID,
			GeneratedAt: rec.GeneratedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

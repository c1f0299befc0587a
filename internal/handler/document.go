package handler

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/joestump/pagegen/internal/generate"
	"github.com/joestump/pagegen/internal/seo"
	"github.com/joestump/pagegen/internal/store"
)

// DocumentFinder looks documents up by slug.
type DocumentFinder interface {
	GetBySlug(ctx context.Context, slug string) (*store.Document, error)
}

// DocumentHandler serves the public view of documents at /p/{slug}.
type DocumentHandler struct {
	docs     DocumentFinder
	meta     store.MetaStoreIface
	baseURL  string
	siteName string
	log      *zap.Logger
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(docs DocumentFinder, meta store.MetaStoreIface, baseURL, siteName string, log *zap.Logger) *DocumentHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &DocumentHandler{
		docs:     docs,
		meta:     meta,
		baseURL:  strings.TrimRight(baseURL, "/"),
		siteName: siteName,
		log:      log,
	}
}

type documentPage struct {
	SiteName       string
	Title          string
	Description    string
	URL            string
	NoIndex        bool
	StructuredData template.JS
	Body           template.HTML
}

type notFoundPage struct {
	SiteName string
	Slug     string
}

// Show renders a document with its SEO head: meta description, Open Graph
// tags and, for generated documents, the JSON-LD block. Drafts are served
// with noindex.
func (h *DocumentHandler) Show(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	doc, err := h.docs.GetBySlug(r.Context(), slug)
	if errors.Is(err, store.ErrNotFound) {
		render(w, http.StatusNotFound, "404.html", notFoundPage{SiteName: h.siteName, Slug: slug})
		return
	}
	if err != nil {
		h.log.Error("load document", zap.String("slug", slug), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	meta, err := h.meta.GetMeta(r.Context(), doc.ID)
	if err != nil {
		h.log.Error("load document meta", zap.String("document_id", doc.ID), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	render(w, http.StatusOK, "document.html", documentPage{
		SiteName:       h.siteName,
		Title:          doc.Title,
		Description:    description(doc, meta),
		URL:            h.baseURL + "/p/" + doc.Slug,
		NoIndex:        doc.Status != store.StatusPublish,
		StructuredData: structuredData(meta),
		Body:           template.HTML(doc.Body),
	})
}

// description prefers the generated description, then any SEO plugin
// description, then one derived from the body.
func description(doc *store.Document, meta store.Meta) string {
	if d := meta.Text(generate.MetaDescription); d != "" {
		return d
	}
	for _, key := range seo.DescriptionKeys() {
		if d := meta.Text(key); d != "" {
			return d
		}
	}
	return seo.Description(doc.Body, nil)
}

// structuredData re-encodes the stored JSON-LD so string values are escaped
// for a script element.
func structuredData(meta store.Meta) template.JS {
	v, ok := meta[generate.MetaStructuredData]
	if !ok || v.IsText() || len(v.Data) == 0 {
		return ""
	}
	var decoded any
	if err := json.Unmarshal(v.Data, &decoded); err != nil {
		return ""
	}
	b, err := json.Marshal(decoded)
	if err != nil {
		return ""
	}
	return template.JS(b)
}

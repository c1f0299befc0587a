package api

import (
	"time"

	"github.com/joestump/pagegen/internal/generate"
	"github.com/joestump/pagegen/internal/store"
)

// GenerateResponse wraps a generation or preview result.
type GenerateResponse struct {
	Success bool             `json:"success"`
	Data    *generate.Result `json:"data"`
}

// BatchResponse wraps a batch result. Success is false only when no
// combination could be generated.
type BatchResponse struct {
	Success bool                  `json:"success"`
	Data    *generate.BatchResult `json:"data"`
}

// TemplateResponse identifies a document usable as a template.
type TemplateResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	Permalink string `json:"permalink"`
}

// TemplateListResponse is the body of GET /api/v1/templates.
type TemplateListResponse struct {
	Success   bool                `json:"success"`
	Templates []*TemplateResponse `json:"templates"`
}

// CreateDocumentRequest is the request body for POST /api/v1/documents.
type CreateDocumentRequest struct {
	Type    string              `json:"type"`
	Status  string              `json:"status,omitempty"`
	Title   string              `json:"title"`
	Slug    string              `json:"slug,omitempty"`
	Body    string              `json:"body"`
	Excerpt string              `json:"excerpt,omitempty"`
	Meta    store.Meta          `json:"meta,omitempty" swaggertype:"object"`
	Terms   map[string][]string `json:"terms,omitempty"`
}

// DocumentResponse is the JSON representation of a single document.
type DocumentResponse struct {
	ID        string              `json:"id"`
	Type      string              `json:"type"`
	Status    string              `json:"status"`
	Title     string              `json:"title"`
	Slug      string              `json:"slug"`
	Body      string              `json:"body"`
	Excerpt   string              `json:"excerpt"`
	AuthorID  string              `json:"author_id"`
	Permalink string              `json:"permalink"`
	Meta      store.Meta          `json:"meta" swaggertype:"object"`
	Terms     map[string][]string `json:"terms"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// SetTermsRequest is the request body for PUT /api/v1/documents/{id}/terms/{taxonomy}.
// Terms are names; missing terms are created.
type SetTermsRequest struct {
	Terms []string `json:"terms"`
}

// HistoryEntry is one generation history row.
type HistoryEntry struct {
	ID          string    `json:"id"`
	DocumentID  string    `json:"document_id"`
	TemplateID  string    `json:"template_id,omitempty"`
	Strategy    string    `json:"strategy"`
	Keyword     string    `json:"keyword,omitempty"`
	Location    string    `json:"location,omitempty"`
	SkillSet    string    `json:"skill_set,omitempty"`
	UserID      string    `json:"user_id"`
	GeneratedAt time.Time `json:"generated_at"`
}

// HistoryResponse is the body of GET /api/v1/history.
type HistoryResponse struct {
	Success bool            `json:"success"`
	History []*HistoryEntry `json:"history"`
}

// LLMTestRequest optionally overrides the configured API key.
type LLMTestRequest struct {
	APIKey string `json:"api_key,omitempty"`
}

// LLMTestResponse reports a successful connection test.
type LLMTestResponse struct {
	Success  bool   `json:"success"`
	Provider string `json:"provider"`
	Message  string `json:"message"`
}

// CreateTokenRequest is the request body for POST /api/v1/tokens.
type CreateTokenRequest struct {
	Name      string     `json:"name"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// TokenResponse is the JSON representation of an API token (without the hash).
type TokenResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

// TokenCreatedResponse includes the plaintext token, shown only once.
type TokenCreatedResponse struct {
	TokenResponse
	Token string `json:"token"`
}

// TokenListResponse is the response for GET /api/v1/tokens.
type TokenListResponse struct {
	Tokens []*TokenResponse `json:"tokens"`
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	StatusDraft   = "draft"
	StatusPublish = "publish"
)

// maxSlugAttempts bounds the "-2", "-3", ... suffix search in Create.
const maxSlugAttempts = 50

// Document represents a row in the documents table.
type Document struct {
	ID        string    `db:"id"`
	Type      string    `db:"doc_type"`
	Status    string    `db:"status"`
	Title     string    `db:"title"`
	Slug      string    `db:"slug"`
	Body      string    `db:"body"`
	Excerpt   string    `db:"excerpt"`
	AuthorID  string    `db:"author_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewDocument holds the fields needed to insert a document.
// Slug is used as the base for a unique slug; it is derived from Title when empty.
type NewDocument struct {
	Type     string
	Status   string
	Title    string
	Slug     string
	Body     string
	Excerpt  string
	AuthorID string
}

// DocumentStore is the sqlx-backed implementation of DocumentStoreIface.
type DocumentStore struct {
	db *sqlx.DB
}

func NewDocumentStore(db *sqlx.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// q rebinds ? placeholders to the driver's native format ($1,$2,... for PostgreSQL).
func (s *DocumentStore) q(query string) string { return s.db.Rebind(query) }

// Create inserts a document. When the slug is taken a numeric suffix is
// appended ("austin-plumbers-2") until a free one is found.
func (s *DocumentStore) Create(ctx context.Context, d NewDocument) (*Document, error) {
	if d.Status == "" {
		d.Status = StatusDraft
	}
	if err := ValidateStatus(d.Status); err != nil {
		return nil, err
	}
	base := d.Slug
	if base == "" {
		base = DeriveSlug(d.Title)
	}
	if base == "" {
		base = "untitled"
	}

	id := uuid.New().String()
	now := time.Now().UTC()

	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		slug := base
		if attempt > 1 {
			slug = fmt.Sprintf("%s-%d", base, attempt)
		}
		_, err := s.db.ExecContext(ctx, s.q(`
			INSERT INTO documents (id, doc_type, status, title, slug, body, excerpt, author_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`), id, d.Type, d.Status, d.Title, slug, d.Body, d.Excerpt, d.AuthorID, now, now)
		if err == nil {
			return s.Get(ctx, id)
		}
		if !isUniqueConstraintError(err) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrSlugTaken, base)
}

// Get returns the document matching id, or ErrNotFound.
func (s *DocumentStore) Get(ctx context.Context, id string) (*Document, error) {
	var d Document
	err := s.db.GetContext(ctx, &d, s.q(`SELECT * FROM documents WHERE id = ?`), id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetBySlug returns the document matching slug, or ErrNotFound.
func (s *DocumentStore) GetBySlug(ctx context.Context, slug string) (*Document, error) {
	var d Document
	err := s.db.GetContext(ctx, &d, s.q(`SELECT * FROM documents WHERE slug = ?`), slug)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListByType returns all documents of docType ordered by title.
func (s *DocumentStore) ListByType(ctx context.Context, docType string) ([]*Document, error) {
	var docs []*Document
	err := s.db.SelectContext(ctx, &docs, s.q(`SELECT * FROM documents WHERE doc_type = ? ORDER BY title ASC`), docType)
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// Delete removes a document together with its metadata and term associations.
func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM document_meta WHERE document_id = ?`), id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM document_terms WHERE document_id = ?`), id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM documents WHERE id = ?`), id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Term represents a row in the terms table.
type Term struct {
	ID       string `db:"id"`
	Taxonomy string `db:"taxonomy"`
	Name     string `db:"name"`
	Slug     string `db:"slug"`
}

// TermStore is the sqlx-backed implementation of TaxonomyStoreIface.
type TermStore struct {
	db *sqlx.DB
}

func NewTermStore(db *sqlx.DB) *TermStore {
	return &TermStore{db: db}
}

func (s *TermStore) q(query string) string { return s.db.Rebind(query) }

// Taxonomies returns the taxonomies registered for docType, ordered by name.
func (s *TermStore) Taxonomies(ctx context.Context, docType string) ([]string, error) {
	var names []string
	err := s.db.SelectContext(ctx, &names, s.q(`
		SELECT taxonomy FROM taxonomy_types WHERE doc_type = ? ORDER BY taxonomy ASC
	`), docType)
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Upsert creates a term in taxonomy if none with the derived slug exists,
// or returns the existing one.
func (s *TermStore) Upsert(ctx context.Context, taxonomy, name string) (*Term, error) {
	slug := DeriveSlug(name)

	var existing Term
	err := s.db.GetContext(ctx, &existing, s.q(`SELECT * FROM terms WHERE taxonomy = ? AND slug = ?`), taxonomy, slug)
	if err == nil {
		return &existing, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	id := uuid.New().String()
	_, err = s.db.ExecContext(ctx, s.q(`
		INSERT INTO terms (id, taxonomy, name, slug) VALUES (?, ?, ?, ?)
	`), id, taxonomy, strings.TrimSpace(name), slug)
	if err != nil {
		// Race condition: another request inserted first. Re-fetch.
		if isUniqueConstraintError(err) {
			err = s.db.GetContext(ctx, &existing, s.q(`SELECT * FROM terms WHERE taxonomy = ? AND slug = ?`), taxonomy, slug)
			if err != nil {
				return nil, err
			}
			return &existing, nil
		}
		return nil, err
	}
	return &Term{ID: id, Taxonomy: taxonomy, Name: strings.TrimSpace(name), Slug: slug}, nil
}

// GetTerms returns the term IDs of taxonomy associated with documentID.
func (s *TermStore) GetTerms(ctx context.Context, documentID, taxonomy string) ([]string, error) {
	var ids []string
	err := s.db.SelectContext(ctx, &ids, s.q(`
		SELECT t.id FROM terms t
		INNER JOIN document_terms dt ON dt.term_id = t.id
		WHERE dt.document_id = ? AND t.taxonomy = ?
		ORDER BY t.name ASC
	`), documentID, taxonomy)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ListTerms returns the full terms of taxonomy associated with documentID.
func (s *TermStore) ListTerms(ctx context.Context, documentID, taxonomy string) ([]*Term, error) {
	var terms []*Term
	err := s.db.SelectContext(ctx, &terms, s.q(`
		SELECT t.* FROM terms t
		INNER JOIN document_terms dt ON dt.term_id = t.id
		WHERE dt.document_id = ? AND t.taxonomy = ?
		ORDER BY t.name ASC
	`), documentID, taxonomy)
	if err != nil {
		return nil, err
	}
	return terms, nil
}

// SetTerms replaces the documentID associations in taxonomy with termIDs.
// Associations in other taxonomies are left untouched.
func (s *TermStore) SetTerms(ctx context.Context, documentID, taxonomy string, termIDs []string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, tx.Rebind(`
		DELETE FROM document_terms WHERE document_id = ?
		AND term_id IN (SELECT id FROM terms WHERE taxonomy = ?)
	`), documentID, taxonomy)
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(termIDs))
	for _, id := range termIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		_, err = tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO document_terms (document_id, term_id) VALUES (?, ?)
		`), documentID, id)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

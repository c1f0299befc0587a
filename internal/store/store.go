package store

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrSlugTaken is returned when no unique slug could be allocated for a document.
	ErrSlugTaken = errors.New("slug is already taken")
)

// DocumentStoreIface exposes document persistence.
// The generation pipeline only reaches the database through these interfaces.
type DocumentStoreIface interface {
	Get(ctx context.Context, id string) (*Document, error)
	Create(ctx context.Context, d NewDocument) (*Document, error)
	Delete(ctx context.Context, id string) error
	ListByType(ctx context.Context, docType string) ([]*Document, error)
}

// MetaStoreIface exposes per-document key/value metadata.
type MetaStoreIface interface {
	GetMeta(ctx context.Context, documentID string) (Meta, error)
	SetMeta(ctx context.Context, documentID, key string, value MetaValue) error
}

// TaxonomyStoreIface exposes taxonomy term associations.
type TaxonomyStoreIface interface {
	Taxonomies(ctx context.Context, docType string) ([]string, error)
	GetTerms(ctx context.Context, documentID, taxonomy string) ([]string, error)
	SetTerms(ctx context.Context, documentID, taxonomy string, termIDs []string) error
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || // SQLite & PostgreSQL
		strings.Contains(msg, "duplicate key") || // PostgreSQL
		strings.Contains(msg, "duplicate entry") // MySQL
}

package migrations

// Document bodies and metadata values can exceed MySQL's 64KB TEXT limit
// (page-builder layout blobs routinely do), so the column type is chosen per
// dialect.

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateDocuments, downCreateDocuments)
}

func upCreateDocuments(ctx context.Context, tx *sql.Tx) error {
	longText := "TEXT"
	if dialect == "mysql" {
		longText = "LONGTEXT"
	}

	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS documents (
    id         VARCHAR(36)  PRIMARY KEY,
    doc_type   VARCHAR(32)  NOT NULL,
    status     VARCHAR(16)  NOT NULL DEFAULT 'draft',
    title      VARCHAR(512) NOT NULL,
    slug       VARCHAR(255) NOT NULL UNIQUE,
    body       %[1]s        NOT NULL,
    excerpt    %[1]s        NOT NULL,
    author_id  VARCHAR(36)  NOT NULL,
    created_at TIMESTAMP    NOT NULL,
    updated_at TIMESTAMP    NOT NULL
)`, longText),
		`CREATE INDEX documents_type_idx ON documents (doc_type)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS document_meta (
    document_id VARCHAR(36)  NOT NULL,
    meta_key    VARCHAR(255) NOT NULL,
    meta_value  %s           NOT NULL,
    value_kind  VARCHAR(16)  NOT NULL DEFAULT 'text',
    PRIMARY KEY (document_id, meta_key)
)`, longText),
		`CREATE TABLE IF NOT EXISTS terms (
    id       VARCHAR(36)  PRIMARY KEY,
    taxonomy VARCHAR(64)  NOT NULL,
    name     VARCHAR(255) NOT NULL,
    slug     VARCHAR(255) NOT NULL,
    UNIQUE (taxonomy, slug)
)`,
		`CREATE TABLE IF NOT EXISTS document_terms (
    document_id VARCHAR(36) NOT NULL,
    term_id     VARCHAR(36) NOT NULL,
    PRIMARY KEY (document_id, term_id)
)`,
		`CREATE TABLE IF NOT EXISTS taxonomy_types (
    taxonomy VARCHAR(64) NOT NULL,
    doc_type VARCHAR(32) NOT NULL,
    PRIMARY KEY (taxonomy, doc_type)
)`,
		`INSERT INTO taxonomy_types (taxonomy, doc_type) VALUES ('category', 'post')`,
		`INSERT INTO taxonomy_types (taxonomy, doc_type) VALUES ('post_tag', 'post')`,
		`INSERT INTO taxonomy_types (taxonomy, doc_type) VALUES ('page_category', 'page')`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create documents schema: %w", err)
		}
	}
	return nil
}

func downCreateDocuments(ctx context.Context, tx *sql.Tx) error {
	for _, table := range []string{"taxonomy_types", "document_terms", "terms", "document_meta", "documents"} {
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return err
		}
	}
	return nil
}

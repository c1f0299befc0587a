// Package migrations holds the Go migrations of the document store. The
// documents, document_meta and taxonomy tables need a long-text body column
// whose type differs per database, so they cannot live in a portable .sql file.
package migrations

// dialect is set by db.Migrate before goose runs the migrations.
var dialect string

// SetDialect records the goose dialect ("sqlite3", "postgres" or "mysql")
// that 00003_create_documents.go branches on.
func SetDialect(d string) {
	dialect = d
}

package testutil

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/joestump/pagegen/internal/db"
	"github.com/joestump/pagegen/internal/store"
)

// NewTestDB opens an in-memory SQLite DB and runs all goose migrations.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	// Shared cache so every pool connection sees the same in-memory database;
	// the test name keeps databases of parallel tests apart.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared&_pragma=busy_timeout(5000)"
	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open in-memory sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if err := db.Migrate(conn, "sqlite3"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

// SeedUser creates a user with role and returns it.
func SeedUser(t *testing.T, conn *sqlx.DB, email, role string) *store.User {
	t.Helper()
	u, err := store.NewUserStore(conn).Upsert(t.Context(), email, "Test User", role, "")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

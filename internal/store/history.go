package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// GenerationRecord represents a row in the generation_history table.
type GenerationRecord struct {
	ID          string         `db:"id"`
	DocumentID  string         `db:"document_id"`
	TemplateID  sql.NullString `db:"template_id"`
	Strategy    string         `db:"strategy"`
	Keyword     string         `db:"keyword"`
	Location    string         `db:"location"`
	SkillSet    string         `db:"skill_set"`
	UserID      string         `db:"user_id"`
	GeneratedAt time.Time      `db:"generated_at"`
}

// HistoryStore records every persisted generation.
type HistoryStore struct {
	db *sqlx.DB
}

func NewHistoryStore(db *sqlx.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

func (s *HistoryStore) q(query string) string { return s.db.Rebind(query) }

// Record inserts a generation history row. GeneratedAt defaults to now.
func (s *HistoryStore) Record(ctx context.Context, rec GenerationRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.GeneratedAt.IsZero() {
		rec.GeneratedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO generation_history (id, document_id, template_id, strategy, keyword, location, skill_set, user_id, generated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), rec.ID, rec.DocumentID, rec.TemplateID, rec.Strategy, rec.Keyword, rec.Location, rec.SkillSet, rec.UserID, rec.GeneratedAt)
	return err
}

// ListRecent returns the most recent generations, newest first.
func (s *HistoryStore) ListRecent(ctx context.Context, limit int) ([]*GenerationRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var recs []*GenerationRecord
	err := s.db.SelectContext(ctx, &recs, s.q(`
		SELECT * FROM generation_history ORDER BY generated_at DESC LIMIT ?
	`), limit)
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// ListByTemplate returns generations derived from templateID, newest first.
func (s *HistoryStore) ListByTemplate(ctx context.Context, templateID string) ([]*GenerationRecord, error) {
	var recs []*GenerationRecord
	err := s.db.SelectContext(ctx, &recs, s.q(`
		SELECT * FROM generation_history WHERE template_id = ? ORDER BY generated_at DESC
	`), templateID)
	if err != nil {
		return nil, err
	}
	return recs, nil
}

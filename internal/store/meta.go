package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// MetaKind distinguishes plain text metadata from serialized structures.
type MetaKind string

const (
	MetaText       MetaKind = "text"
	MetaStructured MetaKind = "structured"
)

// MetaValue is a single metadata value. Text values carry Text; structured
// values carry their JSON encoding in Data.
type MetaValue struct {
	Kind MetaKind
	Text string
	Data json.RawMessage
}

// Meta maps metadata keys to values for one document.
type Meta map[string]MetaValue

// TextValue returns a text MetaValue.
func TextValue(s string) MetaValue {
	return MetaValue{Kind: MetaText, Text: s}
}

// StructuredValue JSON-encodes v as a structured MetaValue.
func StructuredValue(v any) (MetaValue, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return MetaValue{}, fmt.Errorf("encode structured meta: %w", err)
	}
	return MetaValue{Kind: MetaStructured, Data: data}, nil
}

// IsText reports whether v holds plain text.
func (v MetaValue) IsText() bool { return v.Kind == MetaText }

// IsEmpty reports whether v carries no usable content.
func (v MetaValue) IsEmpty() bool {
	if v.IsText() {
		return v.Text == ""
	}
	return len(v.Data) == 0 || string(v.Data) == "null" || string(v.Data) == `""`
}

// String returns the text of a text value, or the raw JSON of a structured one.
func (v MetaValue) String() string {
	if v.IsText() {
		return v.Text
	}
	return string(v.Data)
}

// Text returns the text for key in m, or "" if absent or structured.
func (m Meta) Text(key string) string {
	v, ok := m[key]
	if !ok || !v.IsText() {
		return ""
	}
	return v.Text
}

// MarshalJSON encodes text values as JSON strings and structured values verbatim.
func (v MetaValue) MarshalJSON() ([]byte, error) {
	if v.IsText() {
		return json.Marshal(v.Text)
	}
	if len(v.Data) == 0 {
		return []byte("null"), nil
	}
	return v.Data, nil
}

// UnmarshalJSON treats a JSON string as text and anything else as a structure.
func (v *MetaValue) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = TextValue(s)
		return nil
	}
	if !json.Valid(b) {
		return errors.New("meta value is not valid JSON")
	}
	*v = MetaValue{Kind: MetaStructured, Data: append(json.RawMessage(nil), b...)}
	return nil
}

type metaRow struct {
	Key   string `db:"meta_key"`
	Value string `db:"meta_value"`
	Kind  string `db:"value_kind"`
}

// MetaStore is the sqlx-backed implementation of MetaStoreIface.
type MetaStore struct {
	db *sqlx.DB
}

func NewMetaStore(db *sqlx.DB) *MetaStore {
	return &MetaStore{db: db}
}

func (s *MetaStore) q(query string) string { return s.db.Rebind(query) }

// GetMeta returns every metadata value stored for documentID.
// A document without metadata yields an empty, non-nil map.
func (s *MetaStore) GetMeta(ctx context.Context, documentID string) (Meta, error) {
	var rows []metaRow
	err := s.db.SelectContext(ctx, &rows, s.q(`
		SELECT meta_key, meta_value, value_kind FROM document_meta WHERE document_id = ? ORDER BY meta_key ASC
	`), documentID)
	if err != nil {
		return nil, err
	}
	m := make(Meta, len(rows))
	for _, r := range rows {
		if MetaKind(r.Kind) == MetaStructured {
			m[r.Key] = MetaValue{Kind: MetaStructured, Data: json.RawMessage(r.Value)}
			continue
		}
		m[r.Key] = TextValue(r.Value)
	}
	return m, nil
}

// SetMeta stores value under key, replacing any previous value.
func (s *MetaStore) SetMeta(ctx context.Context, documentID, key string, value MetaValue) error {
	if key == "" {
		return errors.New("meta key must not be empty")
	}
	kind := value.Kind
	if kind == "" {
		kind = MetaText
	}

	// DELETE + INSERT instead of an upsert: ON CONFLICT is not portable to MySQL.
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, tx.Rebind(`
		DELETE FROM document_meta WHERE document_id = ? AND meta_key = ?
	`), documentID, key); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO document_meta (document_id, meta_key, meta_value, value_kind) VALUES (?, ?, ?, ?)
	`), documentID, key, value.String(), string(kind)); err != nil {
		return err
	}
	return tx.Commit()
}

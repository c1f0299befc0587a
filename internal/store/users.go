package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	RoleAdmin      = "admin"
	RoleEditor     = "editor"
	RoleAuthor     = "author"
	RoleSubscriber = "subscriber"
)

// Capability names an action a role may perform.
type Capability string

const (
	CapPublishPages  Capability = "publish_pages"
	CapEditPages     Capability = "edit_pages"
	CapManageOptions Capability = "manage_options"
)

var roleCapabilities = map[string][]Capability{
	RoleAdmin:      {CapPublishPages, CapEditPages, CapManageOptions},
	RoleEditor:     {CapPublishPages, CapEditPages},
	RoleAuthor:     {CapEditPages},
	RoleSubscriber: nil,
}

type User struct {
	ID          string    `db:"id"`
	Email       string    `db:"email"`
	DisplayName string    `db:"display_name"`
	Role        string    `db:"role"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Can reports whether the user's role grants c. A nil user has no capabilities.
func (u *User) Can(c Capability) bool {
	if u == nil {
		return false
	}
	for _, have := range roleCapabilities[u.Role] {
		if have == c {
			return true
		}
	}
	return false
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	_, ok := roleCapabilities[role]
	return ok
}

type UserStore struct {
	db *sqlx.DB
}

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) q(query string) string { return s.db.Rebind(query) }

// Upsert creates the user for email, or updates the display name and role of
// an existing one. adminEmail, when it matches email, forces the admin role.
func (s *UserStore) Upsert(ctx context.Context, email, displayName, role, adminEmail string) (*User, error) {
	if adminEmail != "" && email == adminEmail {
		role = RoleAdmin
	}
	if !ValidRole(role) {
		role = RoleSubscriber
	}
	now := time.Now().UTC()

	existing, err := s.GetByEmail(ctx, email)
	switch {
	case err == nil:
		_, err = s.db.ExecContext(ctx, s.q(`
			UPDATE users SET display_name = ?, role = ?, updated_at = ? WHERE id = ?
		`), displayName, role, now, existing.ID)
		if err != nil {
			return nil, err
		}
		return s.GetByID(ctx, existing.ID)
	case err != ErrNotFound:
		return nil, err
	}

	id := uuid.New().String()
	_, err = s.db.ExecContext(ctx, s.q(`
		INSERT INTO users (id, email, display_name, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`), id, email, displayName, role, now, now)
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// GetByEmail returns the user matching email, or ErrNotFound.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := s.db.GetContext(ctx, &u, s.q(`SELECT * FROM users WHERE email = ?`), email)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID returns the user matching id, or ErrNotFound.
func (s *UserStore) GetByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := s.db.GetContext(ctx, &u, s.q(`SELECT * FROM users WHERE id = ?`), id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListAll returns all users ordered by display name.
func (s *UserStore) ListAll(ctx context.Context) ([]*User, error) {
	var users []*User
	err := s.db.SelectContext(ctx, &users, `SELECT * FROM users ORDER BY display_name ASC`)
	if err != nil {
		return nil, err
	}
	return users, nil
}

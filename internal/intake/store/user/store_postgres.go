package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cccd-intake/internal/intake/models"
	"cccd-intake/internal/sentinel"
)

// PostgresStore persists users in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed user store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, fullname, role, created_at
		FROM users
		WHERE username = $1
	`
	user, err := scanUser(s.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q not found: %w", username, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return user, nil
}

// FindOrCreateByUsername atomically finds a user by username or creates it if
// not found. ON CONFLICT DO NOTHING plus a read-back keeps concurrent first
// logins from creating duplicates.
func (s *PostgresStore) FindOrCreateByUsername(ctx context.Context, username string) (*models.User, bool, error) {
	insert := `
		INSERT INTO users (username, fullname, role)
		VALUES ($1, $1, $2)
		ON CONFLICT (username) DO NOTHING
	`
	res, err := s.db.ExecContext(ctx, insert, username, models.DefaultRole)
	if err != nil {
		return nil, false, fmt.Errorf("insert user: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("insert user rows: %w", err)
	}

	user, err := s.FindByUsername(ctx, username)
	if err != nil {
		return nil, false, fmt.Errorf("find user after upsert: %w", err)
	}
	return user, inserted > 0, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Username, &user.Fullname, &user.Role, &user.CreatedAt); err != nil {
		return nil, err
	}
	return &user, nil
}

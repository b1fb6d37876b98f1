package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"auth-gateway/internal/db"
)

// PostgresStore persists sessions in the user_sessions table, so they
// survive process restarts and are shared across server instances.
type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (p *PostgresStore) Create(ctx context.Context, s Session) error {
	if s.ID == "" || s.Subject == "" {
		return fmt.Errorf("session: missing session id or subject")
	}

	_, err := p.db.ExecContext(ctx, `
		INSERT INTO user_sessions (id, subject, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`, s.ID, s.Subject, s.CreatedAt, s.ExpiresAt)

	if err != nil {
		return fmt.Errorf("session: create: %w", err)
	}
	return nil
}

func (p *PostgresStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	var s Session
	err := p.db.QueryRowContext(ctx, `
		SELECT id, subject, created_at, expires_at
		FROM user_sessions
		WHERE id = $1
	`, sessionID).Scan(&s.ID, &s.Subject, &s.CreatedAt, &s.ExpiresAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // not found
	}
	if err != nil {
		return nil, fmt.Errorf("session: get: %w", err)
	}

	return &s, nil
}

// DeleteExpired removes sessions whose expiry has passed and reports
// how many were removed. The redis backend needs no equivalent, its
// keys carry TTLs.
func (p *PostgresStore) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := p.db.ExecContext(ctx, `
		DELETE FROM user_sessions
		WHERE expires_at < NOW()
	`)
	if err != nil {
		return 0, fmt.Errorf("session: delete expired: %w", err)
	}
	return res.RowsAffected()
}

func (p *PostgresStore) Delete(ctx context.Context, sessionID string) error {
	_, err := p.db.ExecContext(ctx, `
		DELETE FROM user_sessions
		WHERE id = $1
	`, sessionID)

	if err != nil {
		return fmt.Errorf("session: delete: %w", err)
	}
	return nil
}

package credentials

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"auth-gateway/internal/db"

	"github.com/lib/pq"
)

// Normalize maps an email to its canonical lookup form. Every read and
// write against the store goes through this.
func Normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Store persists identity records keyed by normalized email.
type Store interface {
	Exists(ctx context.Context, email string) (bool, error)
	FindByEmail(ctx context.Context, email string) (*Identity, error)
	Create(ctx context.Context, email string, passwordHash string) (*Identity, error)
}

type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Exists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM users WHERE LOWER(email) = $1
		)
	`, Normalize(email)).Scan(&exists)
	return exists, err
}

// FindByEmail returns (nil, nil) when no identity matches.
func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*Identity, error) {
	var rec Identity
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE LOWER(email) = $1
	`, Normalize(email)).Scan(
		&rec.ID,
		&rec.Email,
		&rec.PasswordHash,
		&rec.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Create inserts a new identity. The unique index on LOWER(email)
// makes the duplicate check atomic with the insert: a racing insert
// for the same normalized email fails here with ErrDuplicateIdentity
// no matter what any earlier Exists call reported.
func (s *PostgresStore) Create(ctx context.Context, email string, passwordHash string) (*Identity, error) {
	rec := Identity{
		Email:        Normalize(email),
		PasswordHash: passwordHash,
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, rec.Email, rec.PasswordHash).Scan(&rec.ID, &rec.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return nil, ErrDuplicateIdentity
	}
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

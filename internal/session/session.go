package session

import (
	"context"
	"time"
)

// Session represents an authenticated session bound to a subject (the
// normalized email the session was established for).
type Session struct {
	ID        string    `json:"session_id"`
	Subject   string    `json:"subject"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"` // absolute expiry time
}

// Store defines how sessions are persisted. Implementations must be
// durable across process restarts and return (nil, nil) when no
// session matches the given ID. Only the Manager mutates sessions.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

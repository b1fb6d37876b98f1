package session

import (
	"context"
	"time"
)

// IdentityChecker reports whether the identity a session is bound to
// still exists. Satisfied by the credential store.
type IdentityChecker interface {
	Exists(ctx context.Context, email string) (bool, error)
}

// Manager owns the session lifecycle. All state lives in the Store;
// nothing is cached in memory, so multiple server instances stay
// consistent and a terminate on one instance is honored everywhere on
// the next read.
type Manager struct {
	store      Store
	identities IdentityChecker
	ttl        time.Duration
}

func NewManager(store Store, identities IdentityChecker, ttl time.Duration) *Manager {
	return &Manager{
		store:      store,
		identities: identities,
		ttl:        ttl,
	}
}

// Establish creates and persists a new session for subject. Any prior
// session handle held by the same client is terminated first, so a
// pre-login session ID never becomes valid post-login.
func (m *Manager) Establish(ctx context.Context, subject string, prior string) (*Session, error) {
	if prior != "" {
		if err := m.store.Delete(ctx, prior); err != nil {
			return nil, err
		}
	}

	id, err := GenerateID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s := Session{
		ID:        id,
		Subject:   subject,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	if err := m.store.Create(ctx, s); err != nil {
		return nil, err
	}

	return &s, nil
}

// Resolve returns the subject bound to sessionID, or "" when there is
// no live session. A session is live only while it exists, has not
// expired, and its subject still exists in the credential store; if
// the identity was removed out of band the session is terminated on
// the spot. Storage errors are returned so callers fail closed.
func (m *Manager) Resolve(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", nil
	}

	s, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if s == nil {
		return "", nil
	}

	if time.Now().After(s.ExpiresAt) {
		_ = m.store.Delete(ctx, sessionID)
		return "", nil
	}

	alive, err := m.identities.Exists(ctx, s.Subject)
	if err != nil {
		return "", err
	}
	if !alive {
		// identity removed out of band: force logout
		_ = m.store.Delete(ctx, sessionID)
		return "", nil
	}

	return s.Subject, nil
}

// Terminate deletes the session. Terminating an already-gone session
// is not an error.
func (m *Manager) Terminate(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return m.store.Delete(ctx, sessionID)
}

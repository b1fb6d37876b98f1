package credentials

import (
	"context"
	"errors"
	"strings"
	"time"

	"auth-gateway/internal/logger"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateIdentity  = errors.New("identity already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Notifier delivers the welcome notification after registration.
// Implementations must be safe to call from a separate goroutine.
type Notifier interface {
	Notify(ctx context.Context, email string) error
}

const notifyTimeout = 30 * time.Second

type Service struct {
	store    Store
	hasher   *Hasher
	notifier Notifier
}

func NewService(store Store, hasher *Hasher, notifier Notifier) *Service {
	return &Service{
		store:    store,
		hasher:   hasher,
		notifier: notifier,
	}
}

// Register creates a new identity and returns its subject (the
// normalized email). The session for the new identity is established
// by the caller, strictly after this returns: the identity must be
// durably stored before anything can log in as it.
func (s *Service) Register(
	ctx context.Context,
	email string,
	password string,
) (string, error) {

	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return "", ErrInvalidInput
	}

	email = Normalize(email)

	// 1. Friendly-path duplicate check. The unique index behind
	// Create stays the authority under concurrency.
	exists, err := s.store.Exists(ctx, email)
	if err != nil {
		return "", err
	}
	if exists {
		return "", ErrDuplicateIdentity
	}

	// 2. Hash password
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", err
	}

	// 3. Insert identity
	rec, err := s.store.Create(ctx, email, hash)
	if err != nil {
		return "", err
	}

	// 4. Welcome mail is best-effort: dispatched off the request path,
	// outcome logged, never surfaced to the caller.
	go s.sendWelcome(rec.Email)

	return rec.Email, nil
}

func (s *Service) sendWelcome(email string) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := s.notifier.Notify(ctx, email); err != nil {
		logger.Error("welcome notification failed", map[string]any{
			"email": email,
			"error": err.Error(),
		})
		return
	}

	logger.Info("welcome notification sent", map[string]any{
		"email": email,
	})
}

// Authenticate verifies an email + password pair and returns the
// subject on success. ErrUserNotFound and ErrInvalidCredentials are
// distinguished here; callers surface both as one generic failure so
// responses cannot be used to enumerate accounts.
func (s *Service) Authenticate(
	ctx context.Context,
	email string,
	password string,
) (string, error) {

	rec, err := s.store.FindByEmail(ctx, Normalize(email))
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", ErrUserNotFound
	}

	ok, err := s.hasher.Verify(rec.PasswordHash, password)
	if err != nil {
		// hasher fault, distinct from a plain mismatch
		return "", err
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	return rec.Email, nil
}

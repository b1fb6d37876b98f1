package credentials

import (
	"time"

	"github.com/google/uuid"
)

// Identity is a persisted email + password hash pair. Records are
// created once at registration and never updated.
type Identity struct {
	ID           uuid.UUID
	Email        string // stored normalized: trimmed, lowercase
	PasswordHash string
	CreatedAt    time.Time
}

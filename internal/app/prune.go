package app

import (
	"context"
	"time"

	"auth-gateway/internal/logger"
	"auth-gateway/internal/session"
)

const (
	pruneInterval = time.Hour
	pruneTimeout  = 30 * time.Second
)

// pruneSessions periodically clears expired rows from the postgres
// session table. Expired sessions are already unusable (Resolve
// rejects them), this only keeps the table from growing without bound.
func pruneSessions(store *session.PostgresStore, stop <-chan struct{}) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
			n, err := store.DeleteExpired(ctx)
			cancel()

			if err != nil {
				logger.Error("session prune failed", map[string]any{
					"error": err.Error(),
				})
				continue
			}
			if n > 0 {
				logger.Info("pruned expired sessions", map[string]any{
					"count": n,
				})
			}
		}
	}
}

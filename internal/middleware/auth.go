package middleware

import (
	"context"
	"net/http"

	"auth-gateway/internal/logger"
	"auth-gateway/internal/session"
)

// unexported, collision-proof context key
type subjectContextKeyType struct{}

var subjectKey = subjectContextKeyType{}

// SubjectFromContext extracts the authenticated subject from context.
func SubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectKey).(string)
	return subject, ok
}

// SessionResolver resolves a session handle to its subject. Satisfied
// by session.Manager.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (string, error)
}

type AuthMiddleware struct {
	Sessions SessionResolver
	LoginURL string // when set, unauthenticated requests redirect here instead of getting a 401
}

func NewAuthMiddleware(sessions SessionResolver, loginURL string) *AuthMiddleware {
	return &AuthMiddleware{
		Sessions: sessions,
		LoginURL: loginURL,
	}
}

func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Read session cookie
		cookie, err := r.Cookie(session.CookieName)
		if err != nil || cookie.Value == "" {
			a.unauthorized(w, r)
			return
		}

		// 2. Resolve session (expiry + identity liveness checks)
		subject, err := a.Sessions.Resolve(r.Context(), cookie.Value)
		if err != nil {
			// fail closed on storage errors
			logger.Error("session resolve failed", map[string]any{
				"error": err.Error(),
			})
			a.unauthorized(w, r)
			return
		}
		if subject == "" {
			a.unauthorized(w, r)
			return
		}

		// 3. Attach subject to context
		ctx := context.WithValue(r.Context(), subjectKey, subject)

		// 4. Continue request
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *AuthMiddleware) unauthorized(w http.ResponseWriter, r *http.Request) {
	if a.LoginURL != "" {
		http.Redirect(w, r, a.LoginURL, http.StatusFound)
		return
	}
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

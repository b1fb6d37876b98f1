package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"auth-gateway/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	sessions map[string]string
	err      error
}

func (f *fakeResolver) Resolve(ctx context.Context, sessionID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.sessions[sessionID], nil
}

func serveProtected(auth *AuthMiddleware, cookie *http.Cookie) (*httptest.ResponseRecorder, string) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = SubjectFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/secrets", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	auth.RequireAuth(next).ServeHTTP(w, req)
	return w, seen
}

func TestRequireAuthNoCookie(t *testing.T) {
	auth := NewAuthMiddleware(&fakeResolver{}, "")

	w, _ := serveProtected(auth, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthUnknownSession(t *testing.T) {
	auth := NewAuthMiddleware(&fakeResolver{sessions: map[string]string{}}, "")

	cookie := &http.Cookie{Name: session.CookieName, Value: "no-such-session"}
	w, _ := serveProtected(auth, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthFailsClosedOnStorageError(t *testing.T) {
	auth := NewAuthMiddleware(&fakeResolver{err: errors.New("connection reset")}, "")

	cookie := &http.Cookie{Name: session.CookieName, Value: "sess-live"}
	w, _ := serveProtected(auth, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthRedirectMode(t *testing.T) {
	auth := NewAuthMiddleware(&fakeResolver{}, "/login")

	w, _ := serveProtected(auth, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequireAuthAttachesSubject(t *testing.T) {
	resolver := &fakeResolver{sessions: map[string]string{"sess-live": "bob@test.com"}}
	auth := NewAuthMiddleware(resolver, "")

	cookie := &http.Cookie{Name: session.CookieName, Value: "sess-live"}
	w, subject := serveProtected(auth, cookie)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bob@test.com", subject)
}

func TestSubjectFromContextMissing(t *testing.T) {
	_, ok := SubjectFromContext(context.Background())
	assert.False(t, ok)
}

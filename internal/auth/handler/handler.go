package handler

import (
	"context"
	"net/http"

	"auth-gateway/internal/logger"
	"auth-gateway/internal/session"

	"github.com/gin-gonic/gin"
)

// CredentialService covers registration and credential verification.
// Satisfied by credentials.Service.
type CredentialService interface {
	Register(ctx context.Context, email string, password string) (string, error)
	Authenticate(ctx context.Context, email string, password string) (string, error)
}

// SessionManager covers the session lifecycle. Satisfied by
// session.Manager.
type SessionManager interface {
	Establish(ctx context.Context, subject string, prior string) (*session.Session, error)
	Resolve(ctx context.Context, sessionID string) (string, error)
	Terminate(ctx context.Context, sessionID string) error
}

type Handler struct {
	credentials CredentialService
	sessions    SessionManager
}

func NewHandler(credentials CredentialService, sessions SessionManager) *Handler {
	return &Handler{
		credentials: credentials,
		sessions:    sessions,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Index)
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.Login)
	r.GET("/register", h.RegisterPage)
	r.POST("/register", h.Register)
	r.GET("/logout", h.Logout)
}

func cookieOptions() session.CookieOptions {
	return session.CookieOptions{
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

// priorSessionID returns the session ID carried by the request cookie,
// if any. The value is opaque to the transport layer; only the session
// manager interprets it.
func priorSessionID(c *gin.Context) string {
	cookie, err := c.Request.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	return cookie.Value
}

// currentSubject resolves the request's session cookie to a subject,
// or "" when unauthenticated. Resolution errors read as
// unauthenticated (fail closed).
func (h *Handler) currentSubject(c *gin.Context) string {
	id := priorSessionID(c)
	if id == "" {
		return ""
	}

	subject, err := h.sessions.Resolve(c.Request.Context(), id)
	if err != nil {
		logger.Error("session resolve failed", map[string]any{
			"error": err.Error(),
		})
		return ""
	}
	return subject
}

// startSession establishes a session for subject, replacing any prior
// handle carried by the request, then redirects to the secrets page.
func (h *Handler) startSession(c *gin.Context, subject string) {
	sess, err := h.sessions.Establish(
		c.Request.Context(),
		subject,
		priorSessionID(c),
	)
	if err != nil {
		logger.Error("session establish failed", map[string]any{
			"subject": subject,
			"error":   err.Error(),
		})
		// the account itself is fine, send the user to log in
		c.Redirect(http.StatusFound, "/login")
		return
	}

	session.SetCookie(c.Writer, sess.ID, sess.ExpiresAt, cookieOptions())

	c.Redirect(http.StatusFound, "/secrets")
}

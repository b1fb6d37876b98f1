package handler

import (
	"net/http"

	"auth-gateway/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", nil)
}

func (h *Handler) LoginPage(c *gin.Context) {
	if h.currentSubject(c) != "" {
		c.Redirect(http.StatusFound, "/secrets")
		return
	}
	c.HTML(http.StatusOK, "login.html", nil)
}

func (h *Handler) RegisterPage(c *gin.Context) {
	if h.currentSubject(c) != "" {
		c.Redirect(http.StatusFound, "/secrets")
		return
	}
	c.HTML(http.StatusOK, "register.html", gin.H{
		"Message": c.Query("message"),
	})
}

// Secrets renders the protected page. It runs behind RequireAuth, so
// the subject is always present in the request context here.
func (h *Handler) Secrets(c *gin.Context) {
	subject, _ := middleware.SubjectFromContext(c.Request.Context())
	c.HTML(http.StatusOK, "secrets.html", gin.H{
		"Username": subject,
	})
}

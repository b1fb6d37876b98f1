package handler

import (
	"net/http"

	"auth-gateway/internal/logger"
	"auth-gateway/internal/session"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Logout(c *gin.Context) {
	if id := priorSessionID(c); id != "" {
		// best-effort: the cookie is cleared regardless
		if err := h.sessions.Terminate(c.Request.Context(), id); err != nil {
			logger.Error("session terminate failed", map[string]any{
				"error": err.Error(),
			})
		}
	}

	session.ClearCookie(c.Writer, cookieOptions())

	c.Redirect(http.StatusFound, "/")
}

package handler

import (
	"errors"
	"net/http"

	"auth-gateway/internal/auth/credentials"
	"auth-gateway/internal/logger"

	"github.com/gin-gonic/gin"
)

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	subject, err := h.credentials.Authenticate(
		c.Request.Context(),
		form.Username,
		form.Password,
	)

	if err != nil {
		// Unknown user and wrong password deliberately collapse into
		// the same response, so login failures cannot be used to
		// enumerate accounts. Anything else is an internal fault.
		if !errors.Is(err, credentials.ErrUserNotFound) &&
			!errors.Is(err, credentials.ErrInvalidCredentials) {
			logger.Error("authentication fault", map[string]any{
				"error": err.Error(),
			})
		}
		c.Redirect(http.StatusFound, "/login")
		return
	}

	h.startSession(c, subject)
}

package handler

import (
	"errors"
	"net/http"

	"auth-gateway/internal/auth/credentials"
	"auth-gateway/internal/logger"

	"github.com/gin-gonic/gin"
)

const invalidInputMessage = "invalid input. Please provide both username and password."

type registerForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

func (h *Handler) Register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{
			"Message": invalidInputMessage,
		})
		return
	}

	subject, err := h.credentials.Register(
		c.Request.Context(),
		form.Username,
		form.Password,
	)

	if err != nil {
		switch {
		case errors.Is(err, credentials.ErrInvalidInput):
			c.HTML(http.StatusBadRequest, "register.html", gin.H{
				"Message": invalidInputMessage,
			})
		case errors.Is(err, credentials.ErrDuplicateIdentity):
			c.HTML(http.StatusConflict, "register.html", gin.H{
				"Message": "Username already exists",
			})
		default:
			logger.Error("registration failed", map[string]any{
				"error": err.Error(),
			})
			c.HTML(http.StatusInternalServerError, "register.html", gin.H{
				"Message": "registration failed, please try again",
			})
		}
		return
	}

	// Session only after the identity write is confirmed.
	h.startSession(c, subject)
}

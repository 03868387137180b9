package handler

import (
	"errors"
	"net/http"

	"session-auth/internal/logger"
	"session-auth/internal/users"

	"github.com/gin-gonic/gin"
)

// ResetToken answers POST /reset_password with a fresh reset token for the
// registered email.
func (h *Handler) ResetToken(c *gin.Context) {
	email := c.PostForm("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email missing"})
		return
	}

	token, err := h.users.GetResetPasswordToken(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		logger.Error("reset token failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email":       email,
		"reset_token": token,
	})
}

// UpdatePassword answers PUT /reset_password.
func (h *Handler) UpdatePassword(c *gin.Context) {
	email := c.PostForm("email")
	token := c.PostForm("reset_token")
	password := c.PostForm("new_password")

	switch {
	case email == "":
		c.JSON(http.StatusBadRequest, gin.H{"error": "email missing"})
		return
	case token == "":
		c.JSON(http.StatusBadRequest, gin.H{"error": "reset_token missing"})
		return
	case password == "":
		c.JSON(http.StatusBadRequest, gin.H{"error": "new_password missing"})
		return
	}

	err := h.users.UpdatePassword(c.Request.Context(), email, token, password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidResetToken) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		logger.Error("password update failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	logger.Info("password updated", map[string]any{
		"ip": c.ClientIP(),
	})

	c.JSON(http.StatusOK, gin.H{
		"email":   email,
		"message": "Password updated",
	})
}

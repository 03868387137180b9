package handler

import (
	"net/http"
	"time"

	"session-auth/internal/logger"
	"session-auth/internal/session"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Login(c *gin.Context) {
	email := c.PostForm("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email missing"})
		return
	}

	password := c.PostForm("password")
	if password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password missing"})
		return
	}

	found, err := h.users.SearchByEmail(c.Request.Context(), email)
	if err != nil {
		logger.Error("user search failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if len(found) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no user found for this email"})
		return
	}

	for _, u := range found {
		if !u.IsValidPassword(password) {
			continue
		}

		sessionID, ok := h.sessions.CreateSession(c.Request.Context(), u.ID)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
			return
		}

		var expiresAt time.Time
		if h.sessionTTL > 0 {
			expiresAt = h.now().Add(h.sessionTTL)
		}
		session.SetCookie(c.Writer, sessionID, expiresAt, h.cookie)

		logger.Info("login success", map[string]any{
			"user_id": u.ID,
			"ip":      c.ClientIP(),
		})

		c.JSON(http.StatusOK, u)
		return
	}

	c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong password"})
}

package handler

import (
	"context"
	"net/http"
	"time"

	"session-auth/internal/auth"
	"session-auth/internal/logger"
	"session-auth/internal/session"
	"session-auth/internal/users"

	"github.com/gin-gonic/gin"
)

// UserService is the user collaborator the handlers depend on.
type UserService interface {
	Register(ctx context.Context, email, password string) (*users.User, error)
	Get(ctx context.Context, id string) (*users.User, error)
	SearchByEmail(ctx context.Context, email string) ([]*users.User, error)
	GetResetPasswordToken(ctx context.Context, email string) (string, error)
	UpdatePassword(ctx context.Context, email, resetToken, password string) error
}

type Handler struct {
	sessions   auth.SessionAuthenticator
	users      UserService
	cookie     session.CookieOptions
	sessionTTL time.Duration
	now        func() time.Time
}

// NewHandler wires the API handlers. sessions may be nil when the active
// authenticator does not issue sessions; the session routes are then not
// registered. Cookie expiry follows the authenticator's clock when it
// exposes one.
func NewHandler(
	sessions auth.SessionAuthenticator,
	userService UserService,
	cookie session.CookieOptions,
	sessionTTL time.Duration,
) *Handler {
	h := &Handler{
		sessions:   sessions,
		users:      userService,
		cookie:     cookie,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
	if c, ok := sessions.(interface{ Now() time.Time }); ok {
		h.now = c.Now
	}
	return h
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/status", h.status)
	r.GET("/unauthorized", h.unauthorized)
	r.GET("/forbidden", h.forbidden)

	r.POST("/users", h.Register)
	r.GET("/users/me", h.Me)

	r.POST("/reset_password", h.ResetToken)
	r.PUT("/reset_password", h.UpdatePassword)

	if h.sessions != nil {
		r.POST("/auth_session/login", h.Login)
		r.DELETE("/auth_session/logout", h.Logout)
	}
}

func (h *Handler) status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (h *Handler) unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
}

func (h *Handler) forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
}

func (h *Handler) Logout(c *gin.Context) {

	if !h.sessions.DestroySession(c.Request.Context(), auth.FromHTTP(c.Request)) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	logger.Info("session destroyed", map[string]any{
		"ip": c.ClientIP(),
	})

	session.ClearCookie(c.Writer, h.cookie)

	c.JSON(http.StatusOK, gin.H{})
}

package app

import (
	"context"
	"time"

	"session-auth/internal/auth"
	"session-auth/internal/auth/handler"
	"session-auth/internal/config"
	"session-auth/internal/logger"
	"session-auth/internal/middleware"
	"session-auth/internal/session"
	"session-auth/internal/users"

	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	userService := users.NewService(infra.DB)

	authenticator, err := auth.New(cfg.AuthType, auth.Deps{
		CookieName:      cfg.SessionName,
		SessionDuration: cfg.SessionTTL(),
		Users:           userService,
		Durable:         infra.Durable,
	})
	if err != nil {
		infra.Close()
		return nil, nil, err
	}

	logger.Info("authenticator ready", map[string]any{
		"auth_type": cfg.AuthType,
	})

	router := newRouter(authenticator, userService, cfg)

	return router, infra.Close, nil
}

// newRouter builds the API around an authenticator and user service.
func newRouter(authenticator auth.Authenticator, userService handler.UserService, cfg config.Config) *gin.Engine {
	sessions, _ := authenticator.(auth.SessionAuthenticator)

	apiHandler := handler.NewHandler(
		sessions,
		userService,
		session.CookieOptions{Name: cfg.SessionName},
		cfg.SessionTTL(),
	)

	authMiddleware := middleware.NewAuthMiddleware(
		authenticator,
		cfg.SessionName,
		middleware.DefaultExcludedPaths,
	)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	api := router.Group("/api/v1")
	api.Use(middleware.GinRequireAuth(authMiddleware))

	apiHandler.RegisterRoutes(api)

	return router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request", map[string]any{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		})
	}
}

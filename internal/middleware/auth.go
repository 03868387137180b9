package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"session-auth/internal/auth"
)

// unexported, collision-proof context key
type userIDContextKeyType struct{}

var userIDKey = userIDContextKeyType{}

// UserIDFromContext extracts the authenticated user ID from context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// ContextWithUserID returns ctx carrying userID.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// DefaultExcludedPaths are reachable without credentials.
var DefaultExcludedPaths = []string{
	"/api/v1/status/",
	"/api/v1/unauthorized/",
	"/api/v1/forbidden/",
	"/api/v1/auth_session/login/",
	"/api/v1/reset_password/",
}

type AuthMiddleware struct {
	Auth     auth.Authenticator
	Helpers  auth.Auth
	Excluded []string
}

// NewAuthMiddleware gates requests with authenticator. A nil authenticator
// lets every request through.
func NewAuthMiddleware(authenticator auth.Authenticator, cookieName string, excluded []string) *AuthMiddleware {
	return &AuthMiddleware{
		Auth:     authenticator,
		Helpers:  auth.NewAuth(cookieName),
		Excluded: excluded,
	}
}

func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.Auth == nil || !a.Helpers.RequireAuth(r.URL.Path, a.Excluded) {
			next.ServeHTTP(w, r)
			return
		}

		req := auth.FromHTTP(r)

		// 1. Credentials must be presented one way or another
		_, hasHeader := a.Helpers.AuthorizationHeader(req)
		_, hasCookie := a.Helpers.SessionCookie(req)
		if !hasHeader && !hasCookie {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		// 2. Resolve them to a user
		userID, ok := a.Auth.CurrentUser(r.Context(), req)
		if !ok {
			writeError(w, http.StatusForbidden, "Forbidden")
			return
		}

		// 3. Attach user_id to context
		next.ServeHTTP(w, r.WithContext(ContextWithUserID(r.Context(), userID)))
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

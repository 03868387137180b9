package auth

import (
	"context"
	"strings"

	"session-auth/internal/session"
)

// Authenticator resolves the user behind a request. It reports false,
// never an error, when the request is not authenticated.
type Authenticator interface {
	CurrentUser(ctx context.Context, r Request) (userID string, ok bool)
}

// SessionAuthenticator is an Authenticator that issues and revokes
// cookie-bound sessions.
type SessionAuthenticator interface {
	Authenticator
	CreateSession(ctx context.Context, userID string) (sessionID string, ok bool)
	UserIDForSessionID(ctx context.Context, sessionID string) (userID string, ok bool)
	DestroySession(ctx context.Context, r Request) bool
}

// Auth holds the request helpers shared by every authenticator.
type Auth struct {
	CookieName string
}

func NewAuth(cookieName string) Auth {
	if cookieName == "" {
		cookieName = session.DefaultCookieName
	}
	return Auth{CookieName: cookieName}
}

// RequireAuth reports whether path needs authentication. Paths compare
// slash-tolerant and an excluded entry ending in "*" matches by prefix.
func (a Auth) RequireAuth(path string, excluded []string) bool {
	if path == "" || len(excluded) == 0 {
		return true
	}

	path = withSlash(path)
	for _, p := range excluded {
		if prefix, ok := strings.CutSuffix(p, "*"); ok {
			if strings.HasPrefix(path, prefix) {
				return false
			}
			continue
		}
		if path == withSlash(p) {
			return false
		}
	}
	return true
}

func (a Auth) AuthorizationHeader(r Request) (string, bool) {
	if r == nil {
		return "", false
	}
	h := r.Header("Authorization")
	return h, h != ""
}

func (a Auth) SessionCookie(r Request) (string, bool) {
	if r == nil {
		return "", false
	}
	return r.Cookie(a.CookieName)
}

func withSlash(p string) string {
	if strings.HasSuffix(p, "/") {
		return p
	}
	return p + "/"
}

package auth

import (
	"context"
	"time"

	"session-auth/internal/logger"
	"session-auth/internal/session"
)

// SessionDBAuth records sessions in a durable store so they outlive the
// process. The durable store is the only session map it reads or writes;
// the wrapped authenticator's own store is left untouched.
type SessionDBAuth struct {
	exp     *SessionExpAuth
	durable session.Store
}

func NewSessionDBAuth(exp *SessionExpAuth, durable session.Store) *SessionDBAuth {
	return &SessionDBAuth{
		exp:     exp,
		durable: durable,
	}
}

func (a *SessionDBAuth) Now() time.Time {
	return a.exp.Now()
}

// CreateSession issues a session and persists it. If persisting fails no id
// is returned and nothing is left behind.
func (a *SessionDBAuth) CreateSession(ctx context.Context, userID string) (string, bool) {
	rec, ok := a.exp.base.newRecord(userID)
	if !ok {
		return "", false
	}

	if err := a.durable.Create(ctx, rec); err != nil {
		logger.Error("session persist failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return "", false
	}

	return rec.SessionID, true
}

func (a *SessionDBAuth) UserIDForSessionID(ctx context.Context, sessionID string) (string, bool) {
	if sessionID == "" {
		return "", false
	}

	rec, err := a.durable.Get(ctx, sessionID)
	if err != nil {
		logger.Error("persisted session lookup failed", map[string]any{
			"error": err.Error(),
		})
		return "", false
	}
	if rec == nil || !a.exp.fresh(*rec) {
		return "", false
	}
	return rec.UserID, true
}

func (a *SessionDBAuth) CurrentUser(ctx context.Context, r Request) (string, bool) {
	sessionID, ok := a.exp.base.SessionCookie(r)
	if !ok {
		return "", false
	}
	return a.UserIDForSessionID(ctx, sessionID)
}

// DestroySession removes the persisted record named by the request cookie,
// whichever process issued it.
func (a *SessionDBAuth) DestroySession(ctx context.Context, r Request) bool {
	sessionID, ok := a.exp.base.SessionCookie(r)
	if !ok {
		return false
	}

	removed, err := a.durable.Delete(ctx, sessionID)
	if err != nil {
		logger.Error("persisted session delete failed", map[string]any{
			"error": err.Error(),
		})
		return false
	}
	return removed
}

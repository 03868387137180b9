package auth

import (
	"context"
	"time"

	"session-auth/internal/session"
)

// SessionExpAuth rejects sessions older than a fixed duration. Stale
// records are ignored on read, not deleted.
type SessionExpAuth struct {
	base     *SessionAuth
	duration time.Duration
}

// NewSessionExpAuth wraps base. A duration <= 0 disables expiry.
func NewSessionExpAuth(base *SessionAuth, duration time.Duration) *SessionExpAuth {
	return &SessionExpAuth{
		base:     base,
		duration: duration,
	}
}

func (a *SessionExpAuth) SessionDuration() time.Duration {
	return a.duration
}

func (a *SessionExpAuth) Now() time.Time {
	return a.base.Now()
}

func (a *SessionExpAuth) CreateSession(ctx context.Context, userID string) (string, bool) {
	return a.base.CreateSession(ctx, userID)
}

func (a *SessionExpAuth) UserIDForSessionID(ctx context.Context, sessionID string) (string, bool) {
	rec, ok := a.base.lookup(ctx, sessionID)
	if !ok || !a.fresh(*rec) {
		return "", false
	}
	return rec.UserID, true
}

func (a *SessionExpAuth) CurrentUser(ctx context.Context, r Request) (string, bool) {
	sessionID, ok := a.base.SessionCookie(r)
	if !ok {
		return "", false
	}
	return a.UserIDForSessionID(ctx, sessionID)
}

// DestroySession removes the request's session if it is still live.
func (a *SessionExpAuth) DestroySession(ctx context.Context, r Request) bool {
	sessionID, ok := a.base.SessionCookie(r)
	if !ok {
		return false
	}
	if _, ok := a.UserIDForSessionID(ctx, sessionID); !ok {
		return false
	}
	return a.base.remove(ctx, sessionID)
}

// fresh reports whether rec is within its lifetime at the current time:
// created_at + duration >= now.
func (a *SessionExpAuth) fresh(rec session.Record) bool {
	if a.duration <= 0 {
		return true
	}
	return !rec.CreatedAt.Add(a.duration).Before(a.base.now())
}

package auth

import (
	"context"
	"time"

	"session-auth/internal/logger"
	"session-auth/internal/session"
)

type Option func(*SessionAuth)

// WithClock replaces time.Now as the source of session timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *SessionAuth) {
		if now != nil {
			a.now = now
		}
	}
}

// SessionAuth maps cookie-borne session ids to user ids through a Store.
type SessionAuth struct {
	Auth
	store session.Store
	now   func() time.Time
}

func NewSessionAuth(a Auth, store session.Store, opts ...Option) *SessionAuth {
	s := &SessionAuth{
		Auth:  a,
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now reports the current time on the authenticator's clock.
func (a *SessionAuth) Now() time.Time {
	return a.now()
}

func (a *SessionAuth) CreateSession(ctx context.Context, userID string) (string, bool) {
	rec, ok := a.issue(ctx, userID)
	if !ok {
		return "", false
	}
	return rec.SessionID, true
}

func (a *SessionAuth) UserIDForSessionID(ctx context.Context, sessionID string) (string, bool) {
	rec, ok := a.lookup(ctx, sessionID)
	if !ok {
		return "", false
	}
	return rec.UserID, true
}

func (a *SessionAuth) CurrentUser(ctx context.Context, r Request) (string, bool) {
	sessionID, ok := a.SessionCookie(r)
	if !ok {
		return "", false
	}
	return a.UserIDForSessionID(ctx, sessionID)
}

// DestroySession removes the session named by the request cookie. Only the
// first call for a given session reports true.
func (a *SessionAuth) DestroySession(ctx context.Context, r Request) bool {
	sessionID, ok := a.SessionCookie(r)
	if !ok {
		return false
	}
	return a.remove(ctx, sessionID)
}

// newRecord stamps a fresh session for userID without storing it.
func (a *SessionAuth) newRecord(userID string) (session.Record, bool) {
	if userID == "" {
		return session.Record{}, false
	}

	sessionID, err := session.GenerateID()
	if err != nil {
		logger.Error("session id generation failed", map[string]any{
			"error": err.Error(),
		})
		return session.Record{}, false
	}

	return session.Record{
		SessionID: sessionID,
		UserID:    userID,
		CreatedAt: a.now().UTC(),
	}, true
}

func (a *SessionAuth) issue(ctx context.Context, userID string) (session.Record, bool) {
	rec, ok := a.newRecord(userID)
	if !ok {
		return session.Record{}, false
	}

	if err := a.store.Create(ctx, rec); err != nil {
		logger.Error("session create failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return session.Record{}, false
	}

	return rec, true
}

func (a *SessionAuth) lookup(ctx context.Context, sessionID string) (*session.Record, bool) {
	if sessionID == "" {
		return nil, false
	}

	rec, err := a.store.Get(ctx, sessionID)
	if err != nil {
		logger.Error("session lookup failed", map[string]any{
			"error": err.Error(),
		})
		return nil, false
	}
	if rec == nil {
		return nil, false
	}
	return rec, true
}

func (a *SessionAuth) remove(ctx context.Context, sessionID string) bool {
	if sessionID == "" {
		return false
	}

	removed, err := a.store.Delete(ctx, sessionID)
	if err != nil {
		logger.Error("session delete failed", map[string]any{
			"error": err.Error(),
		})
		return false
	}
	return removed
}

package auth

import (
	"fmt"
	"time"

	"session-auth/internal/session"
)

const (
	TypeBasic      = "basic_auth"
	TypeSession    = "session_auth"
	TypeSessionExp = "session_exp_auth"
	TypeSessionDB  = "session_db_auth"
)

var (
	_ Authenticator        = (*BasicAuth)(nil)
	_ SessionAuthenticator = (*SessionAuth)(nil)
	_ SessionAuthenticator = (*SessionExpAuth)(nil)
	_ SessionAuthenticator = (*SessionDBAuth)(nil)
)

// Deps carries what the authenticators need from the application.
type Deps struct {
	CookieName      string
	SessionDuration time.Duration
	Users           UserSource
	// Sessions backs the in-process session map; a fresh MemoryStore is
	// used when nil.
	Sessions session.Store
	// Durable is required by session_db_auth.
	Durable session.Store
	Options []Option
}

// New builds the authenticator named by kind. An empty kind disables
// authentication and returns a nil Authenticator.
func New(kind string, deps Deps) (Authenticator, error) {
	base := NewAuth(deps.CookieName)

	sessions := deps.Sessions
	if sessions == nil {
		sessions = session.NewMemoryStore()
	}

	switch kind {
	case "":
		return nil, nil
	case TypeBasic:
		if deps.Users == nil {
			return nil, fmt.Errorf("auth: %s requires a user source", kind)
		}
		return NewBasicAuth(base, deps.Users), nil
	case TypeSession:
		return NewSessionAuth(base, sessions, deps.Options...), nil
	case TypeSessionExp:
		return NewSessionExpAuth(
			NewSessionAuth(base, sessions, deps.Options...),
			deps.SessionDuration,
		), nil
	case TypeSessionDB:
		if deps.Durable == nil {
			return nil, fmt.Errorf("auth: %s requires a durable session store", kind)
		}
		return NewSessionDBAuth(
			NewSessionExpAuth(
				NewSessionAuth(base, sessions, deps.Options...),
				deps.SessionDuration,
			),
			deps.Durable,
		), nil
	default:
		return nil, fmt.Errorf("auth: unknown auth type %q", kind)
	}
}

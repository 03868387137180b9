package session

import (
	"context"
	"errors"
	"time"
)

var ErrDuplicateID = errors.New("session: id already exists")

// Record maps a session id to the user that owns it.
// A record is created or deleted, never edited.
type Record struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (r Record) validate() error {
	if r.SessionID == "" || r.UserID == "" {
		return errors.New("session: missing session_id or user_id")
	}
	return nil
}

// Store owns session records. Get returns (nil, nil) for an unknown id and
// Delete reports whether a record was removed. Implementations must be safe
// for concurrent use.
type Store interface {
	Create(ctx context.Context, r Record) error
	Get(ctx context.Context, sessionID string) (*Record, error)
	Delete(ctx context.Context, sessionID string) (bool, error)
}

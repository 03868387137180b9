package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"session-auth/internal/db"
)

// uniqueViolation is the Postgres SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

// PostgresStore keeps records in the user_sessions table.
type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (p *PostgresStore) Create(ctx context.Context, r Record) error {
	if err := r.validate(); err != nil {
		return err
	}

	_, err := p.db.ExecContext(ctx, `
		INSERT INTO user_sessions (session_id, user_id, created_at)
		VALUES ($1, $2, $3)
	`, r.SessionID, r.UserID, r.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDuplicateID
	}
	if err != nil {
		return fmt.Errorf("session: insert: %w", err)
	}
	return nil
}

func (p *PostgresStore) Get(ctx context.Context, sessionID string) (*Record, error) {
	var r Record
	err := p.db.QueryRowContext(ctx, `
		SELECT session_id, user_id, created_at
		FROM user_sessions
		WHERE session_id = $1
	`, sessionID).Scan(&r.SessionID, &r.UserID, &r.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	r.CreatedAt = r.CreatedAt.UTC()
	return &r, nil
}

func (p *PostgresStore) Delete(ctx context.Context, sessionID string) (bool, error) {
	res, err := p.db.ExecContext(ctx, `
		DELETE FROM user_sessions WHERE session_id = $1
	`, sessionID)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

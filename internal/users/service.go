package users

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"session-auth/internal/db"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrEmptyEmail        = errors.New("email missing")
	ErrAlreadyRegistered = errors.New("email already registered")
)

type Service struct {
	db *db.DB
}

func NewService(db *db.DB) *Service {
	return &Service{db: db}
}

const userColumns = `id, email, password_hash, first_name, last_name, created_at, updated_at`

func (s *Service) Register(
	ctx context.Context,
	email string,
	password string,
) (*User, error) {

	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrEmptyEmail
	}

	// 1. Reject known emails
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM users WHERE LOWER(email) = LOWER($1)
		)
	`, email).Scan(&exists)

	if err != nil {
		return nil, err
	}

	if exists {
		return nil, ErrAlreadyRegistered
	}

	// 2. Hash password
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	// 3. Insert user
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING `+userColumns, email, hash)

	return scanUser(row)
}

// Get loads a user by id.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id::text = $1
	`, id)

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return u, err
}

// SearchByEmail returns every user registered with email.
func (s *Service) SearchByEmail(ctx context.Context, email string) ([]*User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

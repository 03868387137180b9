package users

import (
	"context"
	"errors"
	"strings"

	"session-auth/internal/utils"
)

var ErrInvalidResetToken = errors.New("invalid reset token")

const resetTokenBytes = 32

// GetResetPasswordToken issues a fresh reset token for the user registered
// with email, replacing any earlier one.
func (s *Service) GetResetPasswordToken(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", ErrEmptyEmail
	}

	token, err := utils.RandomString(resetTokenBytes)
	if err != nil {
		return "", err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET reset_token = $1, updated_at = NOW()
		WHERE LOWER(email) = LOWER($2)
	`, token, email)
	if err != nil {
		return "", err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", ErrNotFound
	}

	return token, nil
}

// UpdatePassword sets a new password for the user holding resetToken and
// consumes the token.
func (s *Service) UpdatePassword(
	ctx context.Context,
	email string,
	resetToken string,
	password string,
) error {

	if resetToken == "" {
		return ErrInvalidResetToken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET password_hash = $1, reset_token = NULL, updated_at = NOW()
		WHERE reset_token = $2 AND LOWER(email) = LOWER($3)
	`, hash, resetToken, strings.TrimSpace(email))
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInvalidResetToken
	}

	return nil
}

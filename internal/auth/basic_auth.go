package auth

import (
	"context"
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"session-auth/internal/logger"
	"session-auth/internal/users"
)

// UserSource finds users by email.
type UserSource interface {
	SearchByEmail(ctx context.Context, email string) ([]*users.User, error)
}

// BasicAuth authenticates every request from its Authorization header.
type BasicAuth struct {
	Auth
	users UserSource
}

func NewBasicAuth(a Auth, src UserSource) *BasicAuth {
	return &BasicAuth{Auth: a, users: src}
}

// ExtractBase64AuthorizationHeader returns the credentials part of a
// "Basic <credentials>" header.
func (b *BasicAuth) ExtractBase64AuthorizationHeader(header string) (string, bool) {
	encoded, ok := strings.CutPrefix(header, "Basic ")
	if !ok {
		return "", false
	}
	return encoded, true
}

func (b *BasicAuth) DecodeBase64AuthorizationHeader(encoded string) (string, bool) {
	if encoded == "" {
		return "", false
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || !utf8.Valid(raw) {
		return "", false
	}
	return string(raw), true
}

// ExtractUserCredentials splits "email:password" on the first colon, so
// passwords may contain colons.
func (b *BasicAuth) ExtractUserCredentials(decoded string) (email, password string, ok bool) {
	return strings.Cut(decoded, ":")
}

func (b *BasicAuth) UserObjectFromCredentials(ctx context.Context, email, password string) (*users.User, bool) {
	if email == "" || password == "" {
		return nil, false
	}

	found, err := b.users.SearchByEmail(ctx, email)
	if err != nil {
		logger.Error("basic auth user search failed", map[string]any{
			"error": err.Error(),
		})
		return nil, false
	}

	for _, u := range found {
		if u.IsValidPassword(password) {
			return u, true
		}
	}
	return nil, false
}

func (b *BasicAuth) CurrentUser(ctx context.Context, r Request) (string, bool) {
	header, ok := b.AuthorizationHeader(r)
	if !ok {
		return "", false
	}
	encoded, ok := b.ExtractBase64AuthorizationHeader(header)
	if !ok {
		return "", false
	}
	decoded, ok := b.DecodeBase64AuthorizationHeader(encoded)
	if !ok {
		return "", false
	}
	email, password, ok := b.ExtractUserCredentials(decoded)
	if !ok {
		return "", false
	}
	u, ok := b.UserObjectFromCredentials(ctx, email, password)
	if !ok {
		return "", false
	}
	return u.ID, true
}

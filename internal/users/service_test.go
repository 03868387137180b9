package users

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"session-auth/internal/db"
)

var columns = []string{"id", "email", "password_hash", "first_name", "last_name", "created_at", "updated_at"}

func newMockService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return NewService(&db.DB{DB: sqlDB}), mock
}

func TestRegister(t *testing.T) {
	s, mock := newMockService(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("bob@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (email, password_hash)")).
		WithArgs("bob@example.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("u-1", "bob@example.com", "hash", "", "", now, now))

	u, err := s.Register(context.Background(), " bob@example.com ", "b4l0u")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "bob@example.com", u.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterAlreadyRegistered(t *testing.T) {
	s, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := s.Register(context.Background(), "bob@example.com", "b4l0u")
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestRegisterValidation(t *testing.T) {
	s, mock := newMockService(t)

	_, err := s.Register(context.Background(), "  ", "pw")
	assert.ErrorIs(t, err, ErrEmptyEmail)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err = s.Register(context.Background(), "bob@example.com", "")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestGet(t *testing.T) {
	s, mock := newMockService(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("u-1", "bob@example.com", "hash", "Bob", "Dylan", now, now))

	u, err := s.Get(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Bob Dylan", u.DisplayName())
}

func TestGetNotFound(t *testing.T) {
	s, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchByEmail(t *testing.T) {
	s, mock := newMockService(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE LOWER(email) = LOWER($1)")).
		WithArgs("bob@example.com").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("u-1", "bob@example.com", "hash", "", "", now, now))

	found, err := s.SearchByEmail(context.Background(), "bob@example.com")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "u-1", found[0].ID)
}

func TestIsValidPassword(t *testing.T) {
	hash, err := HashPassword("b4l0u")
	require.NoError(t, err)

	u := &User{PasswordHash: hash}
	assert.True(t, u.IsValidPassword("b4l0u"))
	assert.False(t, u.IsValidPassword("t4rt1fl3tt3"))
	assert.False(t, u.IsValidPassword(""))

	var nilUser *User
	assert.False(t, nilUser.IsValidPassword("b4l0u"))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "a@b.c", (&User{Email: "a@b.c"}).DisplayName())
	assert.Equal(t, "Bob", (&User{FirstName: "Bob"}).DisplayName())
	assert.Equal(t, "Dylan", (&User{LastName: "Dylan"}).DisplayName())
}

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"session-auth/internal/auth"
	"session-auth/internal/config"
	"session-auth/internal/session"
	"session-auth/internal/users"
)

type stubUsers struct {
	user *users.User
}

func (s stubUsers) Register(context.Context, string, string) (*users.User, error) {
	return s.user, nil
}

func (s stubUsers) Get(_ context.Context, id string) (*users.User, error) {
	if id != s.user.ID {
		return nil, users.ErrNotFound
	}
	return s.user, nil
}

func (s stubUsers) SearchByEmail(_ context.Context, email string) ([]*users.User, error) {
	if email != s.user.Email {
		return nil, nil
	}
	return []*users.User{s.user}, nil
}

func (s stubUsers) GetResetPasswordToken(_ context.Context, email string) (string, error) {
	if email != s.user.Email {
		return "", users.ErrNotFound
	}
	return "reset-token", nil
}

func (s stubUsers) UpdatePassword(_ context.Context, email, resetToken, _ string) error {
	if email != s.user.Email || resetToken != "reset-token" {
		return users.ErrInvalidResetToken
	}
	return nil
}

func TestNewDurableStore(t *testing.T) {
	ctx := context.Background()

	store, closer, err := newDurableStore(ctx, config.Config{
		SessionStore: "file",
		SessionFile:  filepath.Join(t.TempDir(), "sessions.db"),
	}, nil)
	require.NoError(t, err)
	assert.IsType(t, &session.BoltStore{}, store)
	require.NoError(t, closer())

	mr := miniredis.RunT(t)
	store, closer, err = newDurableStore(ctx, config.Config{
		SessionStore: "redis",
		Redis:        config.RedisConfig{Addr: mr.Addr()},
	}, nil)
	require.NoError(t, err)
	assert.IsType(t, &session.RedisStore{}, store)
	require.NoError(t, closer())

	_, _, err = newDurableStore(ctx, config.Config{SessionStore: "postgres"}, nil)
	assert.Error(t, err)

	_, _, err = newDurableStore(ctx, config.Config{SessionStore: "memcached"}, nil)
	assert.Error(t, err)
}

func TestRouterSessionDBAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	hash, err := users.HashPassword("b4l0u")
	require.NoError(t, err)
	userService := stubUsers{user: &users.User{ID: "u-1", Email: "bob@hbtn.io", PasswordHash: hash}}

	cfg := config.Config{
		AuthType:        auth.TypeSessionDB,
		SessionName:     "_my_session_id",
		SessionDuration: 60,
		SessionStore:    "file",
		SessionFile:     filepath.Join(t.TempDir(), "sessions.db"),
	}

	durable, closer, err := newDurableStore(ctx, cfg, nil)
	require.NoError(t, err)
	defer closer()

	authenticator, err := auth.New(cfg.AuthType, auth.Deps{
		CookieName:      cfg.SessionName,
		SessionDuration: cfg.SessionTTL(),
		Users:           userService,
		Durable:         durable,
	})
	require.NoError(t, err)

	router := newRouter(authenticator, userService, cfg)

	form := url.Values{"email": {"bob@hbtn.io"}, "password": {"b4l0u"}}.Encode()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/auth_session/login", strings.NewReader(form))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.WithinDuration(t, authenticator.(*auth.SessionDBAuth).Now().Add(time.Minute), cookies[0].Expires, 5*time.Second)

	rec, err := durable.Get(ctx, cookies[0].Value)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "u-1", rec.UserID)

	r = httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	r.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bob@hbtn.io")
}

func TestRouterBasicAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hash, err := users.HashPassword("b4l0u")
	require.NoError(t, err)
	userService := stubUsers{user: &users.User{ID: "u-1", Email: "bob@hbtn.io", PasswordHash: hash}}

	cfg := config.Config{AuthType: auth.TypeBasic, SessionName: "_my_session_id"}
	authenticator, err := auth.New(cfg.AuthType, auth.Deps{Users: userService})
	require.NoError(t, err)

	router := newRouter(authenticator, userService, cfg)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	r.SetBasicAuth("bob@hbtn.io", "b4l0u")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)

	r = httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	r.SetBasicAuth("bob@hbtn.io", "wrong")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)

	r = httptest.NewRequest(http.MethodPost, "/api/v1/auth_session/login", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// reset is reachable without credentials
	form := url.Values{"email": {"bob@hbtn.io"}}.Encode()
	r = httptest.NewRequest(http.MethodPost, "/api/v1/reset_password", strings.NewReader(form))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"email":"bob@hbtn.io","reset_token":"reset-token"}`, w.Body.String())
}

package auth

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"session-auth/internal/session"
)

const cookie = "_my_session_id"

func newSessionAuth(t *testing.T) (*SessionAuth, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore()
	return NewSessionAuth(NewAuth(cookie), store), store
}

func TestCreateSessionThenLookup(t *testing.T) {
	ctx := context.Background()
	a, _ := newSessionAuth(t)

	for _, userID := range []string{"user-1", "e1f2", "42"} {
		sid, ok := a.CreateSession(ctx, userID)
		require.True(t, ok)
		assert.NotEqual(t, userID, sid)

		got, ok := a.UserIDForSessionID(ctx, sid)
		require.True(t, ok)
		assert.Equal(t, userID, got)
	}
}

func TestCreateSessionRejectsEmptyUser(t *testing.T) {
	a, store := newSessionAuth(t)

	sid, ok := a.CreateSession(context.Background(), "")
	assert.False(t, ok)
	assert.Empty(t, sid)
	assert.Zero(t, store.Len())
}

func TestCreateSessionStoreFailure(t *testing.T) {
	store := &failingStore{Store: session.NewMemoryStore(), failCreate: true}
	a := NewSessionAuth(NewAuth(cookie), store)

	_, ok := a.CreateSession(context.Background(), "user-1")
	assert.False(t, ok)
}

func TestUserIDForUnknownSession(t *testing.T) {
	ctx := context.Background()
	a, _ := newSessionAuth(t)

	_, ok := a.UserIDForSessionID(ctx, "")
	assert.False(t, ok)

	_, ok = a.UserIDForSessionID(ctx, "not-a-session")
	assert.False(t, ok)
}

func TestUserIDForSessionLookupFailure(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{Store: session.NewMemoryStore()}
	a := NewSessionAuth(NewAuth(cookie), store)

	sid, ok := a.CreateSession(ctx, "user-1")
	require.True(t, ok)

	store.failGet = true
	_, ok = a.UserIDForSessionID(ctx, sid)
	assert.False(t, ok)
}

func TestCurrentUser(t *testing.T) {
	ctx := context.Background()
	a, _ := newSessionAuth(t)

	sid, ok := a.CreateSession(ctx, "user-1")
	require.True(t, ok)

	_, ok = a.CurrentUser(ctx, nil)
	assert.False(t, ok)

	_, ok = a.CurrentUser(ctx, fakeRequest{})
	assert.False(t, ok)

	_, ok = a.CurrentUser(ctx, withCookie("other_cookie", sid))
	assert.False(t, ok)

	userID, ok := a.CurrentUser(ctx, withCookie(cookie, sid))
	require.True(t, ok)
	assert.Equal(t, "user-1", userID)
}

func TestDestroySession(t *testing.T) {
	ctx := context.Background()
	a, _ := newSessionAuth(t)

	sid, ok := a.CreateSession(ctx, "user-1")
	require.True(t, ok)
	req := withCookie(cookie, sid)

	assert.False(t, a.DestroySession(ctx, nil))
	assert.False(t, a.DestroySession(ctx, fakeRequest{}))
	assert.False(t, a.DestroySession(ctx, withCookie(cookie, "unknown")))

	assert.True(t, a.DestroySession(ctx, req))

	_, ok = a.UserIDForSessionID(ctx, sid)
	assert.False(t, ok)

	assert.False(t, a.DestroySession(ctx, req))
}

func TestDestroySessionKeepsOtherSessionsOfUser(t *testing.T) {
	ctx := context.Background()
	a, _ := newSessionAuth(t)

	first, ok := a.CreateSession(ctx, "user-1")
	require.True(t, ok)
	second, ok := a.CreateSession(ctx, "user-1")
	require.True(t, ok)

	require.True(t, a.DestroySession(ctx, withCookie(cookie, first)))

	userID, ok := a.UserIDForSessionID(ctx, second)
	require.True(t, ok)
	assert.Equal(t, "user-1", userID)
}

func TestDestroySessionConcurrent(t *testing.T) {
	ctx := context.Background()
	a, _ := newSessionAuth(t)

	sid, ok := a.CreateSession(ctx, "user-1")
	require.True(t, ok)
	req := withCookie(cookie, sid)

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if a.DestroySession(ctx, req) {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins)
}

func TestCreateSessionUniqueIDs(t *testing.T) {
	ctx := context.Background()
	a, store := newSessionAuth(t)

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		sid, ok := a.CreateSession(ctx, "user-1")
		require.True(t, ok)
		seen[sid] = struct{}{}
	}

	assert.Len(t, seen, 1000)
	assert.Equal(t, 1000, store.Len())
}

func TestSeparateInstancesDoNotShareSessions(t *testing.T) {
	ctx := context.Background()
	a, _ := newSessionAuth(t)
	b, _ := newSessionAuth(t)

	sid, ok := a.CreateSession(ctx, "user-1")
	require.True(t, ok)

	_, ok = b.UserIDForSessionID(ctx, sid)
	assert.False(t, ok)
}

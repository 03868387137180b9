package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"session-auth/internal/session"
)

type fakeRequest struct {
	cookies map[string]string
	headers map[string]string
}

func (f fakeRequest) Cookie(name string) (string, bool) {
	v, ok := f.cookies[name]
	return v, ok && v != ""
}

func (f fakeRequest) Header(name string) string {
	return f.headers[name]
}

func withCookie(name, value string) Request {
	return fakeRequest{cookies: map[string]string{name: value}}
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

var errStoreDown = errors.New("store unavailable")

// failingStore wraps a Store and fails the operations switched on.
type failingStore struct {
	session.Store
	failCreate, failGet, failDelete bool
}

func (f *failingStore) Create(ctx context.Context, r session.Record) error {
	if f.failCreate {
		return errStoreDown
	}
	return f.Store.Create(ctx, r)
}

func (f *failingStore) Get(ctx context.Context, id string) (*session.Record, error) {
	if f.failGet {
		return nil, errStoreDown
	}
	return f.Store.Get(ctx, id)
}

func (f *failingStore) Delete(ctx context.Context, id string) (bool, error) {
	if f.failDelete {
		return false, errStoreDown
	}
	return f.Store.Delete(ctx, id)
}

package httpapi

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/bnema/petcare-cli/internal/domain"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	mu      sync.Mutex
	session *domain.Session
	updates int
	clears  int
}

func newFakeSessions(access, refresh string) *fakeSessions {
	store := &fakeSessions{}
	if access != "" {
		store.session = &domain.Session{AccessToken: access, RefreshToken: refresh}
	}
	return store
}

func (f *fakeSessions) Load(context.Context) (domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.session == nil {
		return domain.Session{}, domain.ErrNoSession
	}
	return *f.session, nil
}

func (f *fakeSessions) Save(_ context.Context, session domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session = &session
	return nil
}

func (f *fakeSessions) UpdateTokens(_ context.Context, access, refresh string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.session == nil {
		return domain.ErrNoSession
	}
	f.session.AccessToken = access
	f.session.RefreshToken = refresh
	f.updates++
	return nil
}

func (f *fakeSessions) SaveUser(_ context.Context, user domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.session == nil {
		return domain.ErrNoSession
	}
	f.session.User = user
	return nil
}

func (f *fakeSessions) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session = nil
	f.clears++
	return nil
}

func (f *fakeSessions) snapshot() (*domain.Session, int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.session == nil {
		return nil, f.updates, f.clears
	}
	copied := *f.session
	return &copied, f.updates, f.clears
}

func newTestClient(t *testing.T, server *httptest.Server, sessions *fakeSessions) *Client {
	t.Helper()
	return newTestClientWithConfig(t, Config{BaseURL: server.URL}, sessions)
}

func newTestClientWithConfig(t *testing.T, cfg Config, sessions *fakeSessions) *Client {
	t.Helper()

	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	client, err := New(cfg, sessions)
	require.NoError(t, err)
	return client
}

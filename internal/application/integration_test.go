package application_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/bnema/petcare-cli/internal/adapters/httpapi"
	tomlrepo "github.com/bnema/petcare-cli/internal/adapters/repo/toml"
	"github.com/bnema/petcare-cli/internal/adapters/secrets/memory"
	"github.com/bnema/petcare-cli/internal/adapters/session"
	"github.com/bnema/petcare-cli/internal/application"
	"github.com/bnema/petcare-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backend struct {
	server    *httptest.Server
	refreshes atomic.Int32
	petReads  atomic.Int32
}

// newBackend serves a tiny pet API. The first /auth/me call answers 401 so
// that login exercises the refresh path end to end.
func newBackend(t *testing.T) *backend {
	t.Helper()

	b := &backend{}
	var meCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"token": "access-1", "refreshToken": "refresh-1"})
	})
	mux.HandleFunc("POST /api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		b.refreshes.Add(1)
		writeJSON(w, map[string]any{"token": "access-2", "refreshToken": "refresh-2"})
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if meCalls.Add(1) == 1 {
			http.Error(w, `{"message":"expired"}`, http.StatusUnauthorized)
			return
		}
		if r.Header.Get("Authorization") != "Bearer access-2" {
			http.Error(w, `{"message":"bad token"}`, http.StatusUnauthorized)
			return
		}
		writeJSON(w, map[string]any{"id": "u1", "name": "Ana", "role": "client"})
	})
	mux.HandleFunc("GET /api/pets", func(w http.ResponseWriter, r *http.Request) {
		b.petReads.Add(1)
		writeJSON(w, []map[string]any{
			{"id": "5", "name": "Rex", "species": "dog"},
			{"id": "6", "name": "Mia", "species": "cat"},
		})
	})
	b.server = httptest.NewServer(mux)
	t.Cleanup(b.server.Close)
	return b
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newStack(t *testing.T, baseURL string) (*session.Store, *httpapi.Client) {
	t.Helper()

	profiles, err := tomlrepo.NewRepository(filepath.Join(t.TempDir(), "profile.toml"))
	require.NoError(t, err)
	sessions, err := session.NewStore(memory.NewStore(), profiles, session.Options{})
	require.NoError(t, err)
	client, err := httpapi.New(httpapi.Config{BaseURL: baseURL}, sessions)
	require.NoError(t, err)
	return sessions, client
}

func TestLoginRefreshesAndCachesProfile(t *testing.T) {
	b := newBackend(t)
	sessions, client := newStack(t, b.server.URL+"/api")
	auth := application.NewAuthService(client, sessions)

	got, err := auth.Login(context.Background(), domain.Credentials{Email: "ana@example.com", Password: "pw"})
	require.NoError(t, err)

	assert.Equal(t, "access-2", got.AccessToken)
	assert.Equal(t, "refresh-2", got.RefreshToken)
	assert.Equal(t, "u1", got.User.ID)
	assert.Equal(t, int32(1), b.refreshes.Load())
}

func TestReadOnlyWrappersAreIdempotent(t *testing.T) {
	b := newBackend(t)
	_, client := newStack(t, b.server.URL+"/api")
	pets := application.NewPetService(client)

	first, err := pets.List(context.Background(), domain.PetFilter{})
	require.NoError(t, err)
	second, err := pets.List(context.Background(), domain.PetFilter{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 2)
	assert.Equal(t, int32(2), b.petReads.Load())
}

func TestLogoutClearsStoredSession(t *testing.T) {
	b := newBackend(t)
	sessions, client := newStack(t, b.server.URL+"/api")
	auth := application.NewAuthService(client, sessions)

	require.NoError(t, sessions.Save(context.Background(), domain.Session{AccessToken: "access-1", RefreshToken: "refresh-1"}))
	require.NoError(t, auth.Logout(context.Background()))

	_, err := sessions.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrNoSession)
}

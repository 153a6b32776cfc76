package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/petcare-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionPrintsBuildVersion(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestUnknownCommandFails(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "accounts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command \"accounts\"")
}

func TestInvalidBackendSurfacesConfigError(t *testing.T) {
	home := t.TempDir()
	t.Setenv("PC_STORE_BACKEND", "vault")

	_, _, err := executeCLI(t, home, "pets", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vault")
}

func TestLoginPersistsSessionAcrossInvocations(t *testing.T) {
	api := newFakeAPI(t)
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "login", "--email", "ana@example.com", "--password", "pw", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, "\"email\": \"ana@example.com\"")
	assert.NotContains(t, stdout, "access-1")

	stdout, _, err = executeCLI(t, home, "whoami")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Ana")
	assert.Contains(t, stdout, "[Client]")

	stdout, _, err = executeCLI(t, home, "pets", "list", "--species", "dog", "--json")
	require.NoError(t, err)
	assert.Contains(t, stdout, "\"name\": \"Rex\"")
	assert.Equal(t, "Bearer access-1", api.lastRequest().auth)
	assert.Equal(t, "species=dog", api.lastRequest().query)

	profile, err := os.ReadFile(filepath.Join(home, ".petcare", "profile.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(profile), "ana@example.com")
	assert.NotContains(t, string(profile), "access-1")
}

func TestLoginReadsPasswordFromStdin(t *testing.T) {
	api := newFakeAPI(t)
	home := t.TempDir()

	_, _, err := executeCLIWithInput(t, home, "pw\n", "login", "--email", "ana@example.com", "--password-stdin", "--json")
	require.NoError(t, err)
	assert.Equal(t, "pw", api.lastPassword())
}

func TestLoginRequiresPassword(t *testing.T) {
	newFakeAPI(t)
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "login", "--email", "ana@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password is required")
}

func TestLogoutForgetsSession(t *testing.T) {
	newFakeAPI(t)
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "login", "--email", "ana@example.com", "--password", "pw", "--json")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "logout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Logged out.")

	_, _, err = executeCLI(t, home, "whoami", "--json")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoSession)
	assert.Contains(t, describeError(err), "pc login")
}

func TestExpiredSessionSuggestsLogin(t *testing.T) {
	api := newFakeAPI(t)
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "login", "--email", "ana@example.com", "--password", "pw", "--json")
	require.NoError(t, err)

	api.expireTokens.Store(true)

	_, _, err = executeCLI(t, home, "pets", "list", "--json")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.Contains(t, describeError(err), "run `pc login`")

	_, statErr := os.Stat(filepath.Join(home, ".petcare", "profile.toml"))
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestPetsListShowsSpinnerAndRenderedOutput(t *testing.T) {
	api := newFakeAPI(t)
	api.delay.Store(int64(200 * time.Millisecond))
	home := t.TempDir()

	stdout, stderr, err := executeCLI(t, home, "pets", "list")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Loading pets")
	assert.Contains(t, stdout, "pets: 1")
	assert.Contains(t, stdout, "Rex (5)")
}

func TestAPICommandSendsRawRequest(t *testing.T) {
	api := newFakeAPI(t)
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "api", "put", "/pets/5", "--data", `{"name":"Rex"}`)
	require.NoError(t, err)
	assert.Contains(t, stdout, "\"name\": \"Rex\"")
	assert.Equal(t, http.MethodPut, api.lastRequest().method)
	assert.JSONEq(t, `{"name":"Rex"}`, api.lastRequest().body)
}

func TestAPICommandRejectsInvalidData(t *testing.T) {
	newFakeAPI(t)
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "api", "POST", "/pets", "--data", "{name:")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestServerErrorMessageIsSurfaced(t *testing.T) {
	newFakeAPI(t)
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "pets", "get", "404", "--json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pet not found")
}

func TestReportsRejectUnknownKind(t *testing.T) {
	newFakeAPI(t)
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "reports", "get", "profit", "--json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report type")
}

func TestFeedbackValidatesRatingBeforeSending(t *testing.T) {
	api := newFakeAPI(t)
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "feedback", "send", "--provider", "p1", "--rating", "7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rating must be between 1 and 5")
	assert.Equal(t, "", api.lastRequest().method)
}

func TestCampaignUpdateSendsOnlyGivenFields(t *testing.T) {
	api := newFakeAPI(t)
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "campaigns", "update", "c1", "--discount", "15", "--json")
	require.NoError(t, err)
	assert.Contains(t, stdout, "\"title\": \"Spring\"")
	assert.Equal(t, http.MethodPut, api.lastRequest().method)
	assert.JSONEq(t, `{"discount":15}`, api.lastRequest().body)
}

func TestVaccinationUpdateRequiresApplicationDate(t *testing.T) {
	api := newFakeAPI(t)
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "vaccinations", "update", "v1", "--vaccine", "rabies")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "applied")
	assert.Equal(t, "", api.lastRequest().method)
}

type fakeAPI struct {
	server       *httptest.Server
	delay        atomic.Int64
	expireTokens atomic.Bool
	last         atomic.Pointer[recordedRequest]
	password     atomic.Pointer[string]
}

type recordedRequest struct {
	method string
	auth   string
	query  string
	body   string
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()

	api := &fakeAPI{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&creds)
		api.password.Store(&creds.Password)
		writeTestJSON(w, http.StatusOK, `{"token":"access-1","refreshToken":"refresh-1","user":{"id":"u1","name":"Ana","email":"ana@example.com","role":"client"}}`)
	})
	mux.HandleFunc("POST /api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, http.StatusUnauthorized, `{"message":"refresh token revoked"}`)
	})
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/api/pets", func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, http.StatusOK, `[{"id":"5","name":"Rex","species":"dog"}]`)
	})
	mux.HandleFunc("/api/pets/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "404" {
			writeTestJSON(w, http.StatusNotFound, `{"message":"pet not found"}`)
			return
		}
		writeTestJSON(w, http.StatusOK, `{"id":"5","name":"Rex","species":"dog"}`)
	})

	mux.HandleFunc("PUT /api/campaigns/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, http.StatusOK, `{"id":"`+r.PathValue("id")+`","title":"Spring","discount":15,"status":"active"}`)
	})

	api.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := new(bytes.Buffer)
		_, _ = body.ReadFrom(r.Body)
		r.Body.Close()
		if !strings.HasPrefix(r.URL.Path, "/api/auth/") {
			api.last.Store(&recordedRequest{
				method: r.Method,
				auth:   r.Header.Get("Authorization"),
				query:  r.URL.RawQuery,
				body:   body.String(),
			})
		}
		r.Body = io.NopCloser(bytes.NewReader(body.Bytes()))

		time.Sleep(time.Duration(api.delay.Load()))
		if api.expireTokens.Load() && r.Header.Get("Authorization") != "" {
			writeTestJSON(w, http.StatusUnauthorized, `{"message":"token expired"}`)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(api.server.Close)

	t.Setenv("PC_API_BASE_URL", api.server.URL+"/api")
	return api
}

func (a *fakeAPI) lastRequest() recordedRequest {
	if req := a.last.Load(); req != nil {
		return *req
	}
	return recordedRequest{}
}

func (a *fakeAPI) lastPassword() string {
	if p := a.password.Load(); p != nil {
		return *p
	}
	return ""
}

func writeTestJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = fmt.Fprint(w, body)
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	return executeCLIWithInput(t, home, "", args...)
}

func executeCLIWithInput(t *testing.T, home string, input string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("PC_CONFIG", "")
	t.Setenv("PC_STORE_BACKEND", envOr("PC_STORE_BACKEND", "file"))

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetIn(strings.NewReader(input))
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

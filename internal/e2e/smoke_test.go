package e2e

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	server := newBackend(t)
	home := t.TempDir()
	binaryPath := buildBinary(t)

	_, stderr, err := runPC(t, binaryPath, home, server.URL,
		"login", "--email", "ana@example.com", "--password", "pw", "--json",
	)
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runPC(t, binaryPath, home, server.URL, "whoami")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Ana")

	stdout, stderr, err = runPC(t, binaryPath, home, server.URL, "pets", "list", "--json")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Rex")

	_, stderr, err = runPC(t, binaryPath, home, server.URL, "logout")
	require.NoError(t, err, "stderr: %s", stderr)

	_, stderr, err = runPC(t, binaryPath, home, server.URL, "whoami")
	require.Error(t, err)
	assert.Contains(t, stderr, "pc login")
}

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"token":"access-1","refreshToken":"refresh-1","user":{"id":"u1","name":"Ana","email":"ana@example.com","role":"client"}}`)
	})
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /api/pets", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-1" {
			http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		writeJSON(w, `[{"id":"5","name":"Rex","species":"dog"}]`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = fmt.Fprint(w, body)
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "pc-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/pc")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build pc binary: %s", string(output))
	return binaryPath
}

func runPC(t *testing.T, binaryPath, home, serverURL string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(),
		"HOME="+home,
		"PC_CONFIG=",
		"PC_STORE_BACKEND=file",
		"PC_API_BASE_URL="+serverURL+"/api",
	)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/petcare-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tokensKey = "petcare/session/tokens"

func TestStoreRejectsInvalidKeys(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	testCases := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "empty", key: "", wantErr: "secret key is empty"},
		{name: "whitespace", key: "   ", wantErr: "secret key is empty"},
		{name: "absolute", key: "/absolute/path", wantErr: "invalid secret key"},
		{name: "traversal", key: "../escape", wantErr: "invalid secret key"},
		{name: "dot", key: ".", wantErr: "invalid secret key"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := store.Put(context.Background(), tc.key, "value")
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestStoreKeepsTokensOwnerOnly(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)
	want := `{"access_token":"abc123"}`

	require.NoError(t, store.Put(context.Background(), tokensKey, want))

	got, err := store.Get(context.Background(), tokensKey)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	path, err := store.Path(tokensKey)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "petcare", "session", "tokens.secret"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, secretPerm, info.Mode().Perm())
}

func TestStorePutReplacesPreviousTokens(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	require.NoError(t, store.Put(context.Background(), tokensKey, "first"))
	require.NoError(t, store.Put(context.Background(), tokensKey, "second"))

	got, err := store.Get(context.Background(), tokensKey)
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestStoreGetRefusesReadableSecret(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	require.NoError(t, store.Put(context.Background(), tokensKey, "value"))

	path, err := store.Path(tokensKey)
	require.NoError(t, err)
	require.NoError(t, os.Chmod(path, 0o644))

	_, err = store.Get(context.Background(), tokensKey)
	require.ErrorIs(t, err, ErrInsecurePermissions)
	assert.ErrorContains(t, err, "0644")
}

func TestStoreGetMissingSecretReturnsNotFound(t *testing.T) {
	t.Parallel()

	_, err := NewStore(t.TempDir()).Get(context.Background(), tokensKey)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreDeletePrunesEmptyDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)

	require.NoError(t, store.Put(context.Background(), tokensKey, "value"))
	require.NoError(t, store.Delete(context.Background(), tokensKey))
	require.NoError(t, store.Delete(context.Background(), tokensKey))

	_, err := store.Get(context.Background(), tokensKey)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)

	_, err = os.Stat(filepath.Join(root, "petcare"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(root)
	assert.NoError(t, err)
}

func TestStoreDeleteKeepsSiblingSecrets(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	require.NoError(t, store.Put(context.Background(), tokensKey, "value"))
	require.NoError(t, store.Put(context.Background(), "petcare/session/other", "kept"))

	require.NoError(t, store.Delete(context.Background(), tokensKey))

	got, err := store.Get(context.Background(), "petcare/session/other")
	require.NoError(t, err)
	assert.Equal(t, "kept", got)
}

func TestStoreHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, store.Put(ctx, "k", "v"), context.Canceled)
	_, err := store.Get(ctx, "k")
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, store.Delete(ctx, "k"), context.Canceled)
}

package toml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/petcare-cli/internal/domain"
	"github.com/bnema/petcare-cli/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProfile() ports.Profile {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)
	return ports.Profile{
		SecretRef:  "petcare/session/tokens",
		LoggedInAt: now,
		UpdatedAt:  now.Add(time.Hour),
		User: domain.User{
			ID:        "u-1",
			Name:      "Ana",
			Email:     "ana@example.com",
			Role:      domain.RolePetshop,
			Phone:     "+55 11 99999-0000",
			AvatarURL: "https://cdn.example.com/ana.png",
		},
	}
}

func TestRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo, err := NewRepository(filepath.Join(t.TempDir(), "profile.toml"))
	require.NoError(t, err)

	profile := sampleProfile()
	require.NoError(t, repo.Save(context.Background(), profile))

	got, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, profile, got)
}

func TestRepositorySaveReplacesExistingProfile(t *testing.T) {
	t.Parallel()

	repo, err := NewRepository(filepath.Join(t.TempDir(), "profile.toml"))
	require.NoError(t, err)

	first := sampleProfile()
	second := sampleProfile()
	second.User.Name = "Ana Maria"
	second.User.Role = domain.RoleAdmin

	require.NoError(t, repo.Save(context.Background(), first))
	require.NoError(t, repo.Save(context.Background(), second))

	got, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", got.User.Name)
	assert.Equal(t, domain.RoleAdmin, got.User.Role)
}

func TestRepositoryMissingFileReturnsProfileNotFound(t *testing.T) {
	t.Parallel()

	repo, err := NewRepository(filepath.Join(t.TempDir(), "missing", "profile.toml"))
	require.NoError(t, err)

	_, err = repo.Get(context.Background())
	require.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestRepositoryClearRemovesFileAndIsIdempotent(t *testing.T) {
	t.Parallel()

	profilePath := filepath.Join(t.TempDir(), "profile.toml")
	repo, err := NewRepository(profilePath)
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), sampleProfile()))
	require.NoError(t, repo.Clear(context.Background()))
	require.NoError(t, repo.Clear(context.Background()))

	_, err = os.Stat(profilePath)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = repo.Get(context.Background())
	require.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestRepositorySaveCreatesDirectoryAndEnforcesPermissions(t *testing.T) {
	t.Parallel()

	profilePath := filepath.Join(t.TempDir(), ".petcare", "profile.toml")
	repo, err := NewRepository(profilePath)
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), sampleProfile()))

	info, err := os.Stat(profilePath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	dirInfo, err := os.Stat(filepath.Dir(profilePath))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())
}

func TestRepositoryEmptyPathIsRejected(t *testing.T) {
	t.Parallel()

	_, err := NewRepository("  ")
	require.ErrorContains(t, err, "profile path is empty")
}

func TestRepositoryMalformedTOMLReturnsError(t *testing.T) {
	t.Parallel()

	profilePath := filepath.Join(t.TempDir(), "profile.toml")
	require.NoError(t, os.WriteFile(profilePath, []byte("profile = ["), 0o600))

	repo, err := NewRepository(profilePath)
	require.NoError(t, err)

	_, err = repo.Get(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode profile file")
}

func TestRepositoryToleratesMissingOptionalFields(t *testing.T) {
	t.Parallel()

	profilePath := filepath.Join(t.TempDir(), "profile.toml")
	require.NoError(t, os.WriteFile(profilePath, []byte(strings.Join([]string{
		"version = 1",
		"",
		"[profile]",
		"secret_ref = \"petcare/session/tokens\"",
		"",
		"[profile.user]",
		"id = \"u-1\"",
		"name = \"Ana\"",
		"email = \"ana@example.com\"",
		"role = \"client\"",
		"",
	}, "\n")), 0o600))

	repo, err := NewRepository(profilePath)
	require.NoError(t, err)

	got, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.RoleClient, got.User.Role)
	assert.Empty(t, got.User.Phone)
	assert.True(t, got.LoggedInAt.IsZero())
}

func TestRepositorySaveCanceledContextReturnsContextError(t *testing.T) {
	t.Parallel()

	repo, err := NewRepository(filepath.Join(t.TempDir(), "profile.toml"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = repo.Save(ctx, sampleProfile())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRepositoryConcurrentSavesAcrossInstancesKeepFileReadable(t *testing.T) {
	t.Parallel()

	profilePath := filepath.Join(t.TempDir(), "profile.toml")

	newRepo := func() *Repository {
		repo, err := NewRepository(profilePath)
		require.NoError(t, err)
		return repo
	}

	repoA := newRepo()
	repoB := newRepo()

	const perRepoWrites = 50
	start := make(chan struct{})
	errCh := make(chan error, perRepoWrites*2)
	var wg sync.WaitGroup
	wg.Add(2)

	write := func(repo *Repository, prefix string) {
		defer wg.Done()
		<-start
		for i := 0; i < perRepoWrites; i++ {
			profile := sampleProfile()
			profile.User.ID = prefix + strconv.Itoa(i)
			errCh <- repo.Save(context.Background(), profile)
		}
	}

	go write(repoA, "a-")
	go write(repoB, "b-")

	close(start)
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	got, err := repoA.Get(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, got.User.ID)
}

func TestRepositorySaveSerializedTOMLIncludesVersion(t *testing.T) {
	t.Parallel()

	profilePath := filepath.Join(t.TempDir(), "profile.toml")
	repo, err := NewRepository(profilePath)
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), sampleProfile()))

	data, err := os.ReadFile(profilePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.NotContains(t, string(data), "access_token")
}

func TestRepositoryFutureSchemaVersionReturnsError(t *testing.T) {
	t.Parallel()

	profilePath := filepath.Join(t.TempDir(), "profile.toml")
	require.NoError(t, os.WriteFile(profilePath, []byte("version = 999\n"), 0o600))

	repo, err := NewRepository(profilePath)
	require.NoError(t, err)

	_, err = repo.Get(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported profile schema version")
}

package redis

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/bnema/petcare-cli/internal/domain"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCommander struct {
	mu     sync.Mutex
	values map[string]string
	err    error
}

func newFakeCommander() *fakeCommander {
	return &fakeCommander{values: map[string]string{}}
}

func (f *fakeCommander) Get(_ context.Context, key string) *goredis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return goredis.NewStringResult("", f.err)
	}
	value, ok := f.values[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(value, nil)
}

func (f *fakeCommander) Set(_ context.Context, key string, value interface{}, _ time.Duration) *goredis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return goredis.NewStatusResult("", f.err)
	}
	f.values[key] = value.(string)
	return goredis.NewStatusResult("OK", nil)
}

func (f *fakeCommander) Del(_ context.Context, keys ...string) *goredis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return goredis.NewIntResult(0, f.err)
	}
	var removed int64
	for _, key := range keys {
		if _, ok := f.values[key]; ok {
			delete(f.values, key)
			removed++
		}
	}
	return goredis.NewIntResult(removed, nil)
}

func TestStorePrefixesKeys(t *testing.T) {
	t.Parallel()

	client := newFakeCommander()
	store := NewStore(client, "")

	require.NoError(t, store.Put(context.Background(), "session/tokens", "value"))
	assert.Equal(t, "value", client.values["petcare:session/tokens"])
}

func TestStoreGetMissingKeyReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := NewStore(newFakeCommander(), "test:")

	_, err := store.Get(context.Background(), "session/tokens")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreRoundTripAndDelete(t *testing.T) {
	t.Parallel()

	store := NewStore(newFakeCommander(), "test:")
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", "v"))
	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	require.NoError(t, store.Delete(ctx, "k"))
	require.NoError(t, store.Delete(ctx, "k"))
	_, err = store.Get(ctx, "k")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreWrapsBackendErrors(t *testing.T) {
	t.Parallel()

	client := newFakeCommander()
	client.err = errors.New("connection refused")
	store := NewStore(client, "test:")

	_, err := store.Get(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, "redis get")
	assert.ErrorContains(t, store.Put(context.Background(), "k", "v"), "connection refused")
	assert.ErrorContains(t, store.Delete(context.Background(), "k"), "redis delete")
}

func TestNewStoreFromURLValidatesInput(t *testing.T) {
	t.Parallel()

	_, err := NewStoreFromURL("", "")
	require.ErrorContains(t, err, "redis url is required")

	_, err = NewStoreFromURL("http://not-redis", "")
	require.ErrorContains(t, err, "parse redis url")

	store, err := NewStoreFromURL("redis://localhost:6379/0", "")
	require.NoError(t, err)
	require.NoError(t, store.Close())
}

func TestStoreAgainstLiveRedis(t *testing.T) {
	url := os.Getenv("PC_TEST_REDIS_URL")
	if url == "" {
		t.Skip("PC_TEST_REDIS_URL not set")
	}

	store, err := NewStoreFromURL(url, "petcare-test:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "live", "value"))
	got, err := store.Get(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, "value", got)
	require.NoError(t, store.Delete(ctx, "live"))
}

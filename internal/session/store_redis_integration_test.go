//go:build integration

package session

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"vetgate/internal/remote"
	"vetgate/pkg/platform/sentinel"
)

func redisTestClient(t *testing.T) *redis.Client {
	t.Helper()
	url := os.Getenv("VETGATE_TEST_REDIS_URL")
	if url == "" {
		t.Skip("VETGATE_TEST_REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewRedisStore(redisTestClient(t))
	require.NoError(t, store.Clear(ctx))

	_, err := store.Load(ctx)
	require.ErrorIs(t, err, sentinel.ErrNotFound)

	saved := Session{
		ID:     "s-1",
		User:   remote.User{ID: "u-1", Email: "vet@example.com"},
		Tokens: remote.SessionTokens{AccessToken: "access-1", RefreshToken: "refresh-1"},
	}
	require.NoError(t, store.Save(ctx, saved))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, saved.ID, loaded.ID)
	require.Equal(t, saved.Tokens.RefreshToken, loaded.Tokens.RefreshToken)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Load(ctx)
	require.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestRedisStoreDropsCorruptState(t *testing.T) {
	ctx := context.Background()
	client := redisTestClient(t)
	store := NewRedisStore(client)

	require.NoError(t, client.Set(ctx, sessionKey, "{not json", 0).Err())

	_, err := store.Load(ctx)
	require.ErrorIs(t, err, sentinel.ErrNotFound)
	require.Equal(t, int64(0), client.Exists(ctx, sessionKey).Val())
}

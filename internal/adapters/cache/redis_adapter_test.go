package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/hospitalsite/internal/domain/providers"
	redisclient "github.com/zatekoja/hospitalsite/internal/infrastructure/clients/redis"
	"github.com/zatekoja/hospitalsite/pkg/config"
)

func TestRedisAdapter_Integration(t *testing.T) {
	host := os.Getenv("TEST_REDIS_HOST")
	if host == "" {
		t.Skip("Skipping integration test: TEST_REDIS_HOST not set")
	}

	ctx := context.Background()
	client, err := redisclient.NewClient(ctx, &config.RedisConfig{Host: host, Port: 6379})
	require.NoError(t, err)
	defer client.Close()

	adapter := NewRedisAdapter(client.Client())
	key := "test:" + t.Name()
	t.Cleanup(func() { _ = adapter.Delete(context.Background(), key) })

	_, err = adapter.Get(ctx, key)
	assert.ErrorIs(t, err, providers.ErrCacheMiss)

	require.NoError(t, adapter.Set(ctx, key, []byte(`{"count":6}`), time.Minute))

	got, err := adapter.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `{"count":6}`, string(got))

	ok, err := adapter.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	raw, err := client.Client().Exists(ctx, KeyPrefix+key).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), raw, "keys are namespaced")

	require.NoError(t, adapter.Delete(ctx, key))
	ok, err = adapter.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewClient_Unreachable(t *testing.T) {
	_, err := redisclient.NewClient(context.Background(), &config.RedisConfig{Host: "127.0.0.1", Port: 1})
	assert.Error(t, err)
}

package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"portfolio-backend/pkg/ratelimit"
	"portfolio-backend/pkg/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigOptions(t *testing.T) {
	t.Run("Should fail when URL is empty", func(t *testing.T) {
		_, err := redis.Config{}.Options()
		assert.ErrorIs(t, err, redis.ErrNotConfigured)
	})

	t.Run("Should add default port and read password from URL", func(t *testing.T) {
		opts, err := redis.Config{URL: "redis://:s3cret@cache.internal"}.Options()
		require.NoError(t, err)
		assert.Equal(t, "cache.internal:6379", opts.Addr)
		assert.Equal(t, "s3cret", opts.Password)
		assert.Nil(t, opts.TLSConfig)
	})

	t.Run("Should prefer explicit password and enable TLS for rediss", func(t *testing.T) {
		opts, err := redis.Config{URL: "rediss://:fromurl@cache.internal:6380", Password: "explicit"}.Options()
		require.NoError(t, err)
		assert.Equal(t, "cache.internal:6380", opts.Addr)
		assert.Equal(t, "explicit", opts.Password)
		assert.NotNil(t, opts.TLSConfig)
	})

	t.Run("Should reject unknown schemes", func(t *testing.T) {
		_, err := redis.Config{URL: "http://cache.internal"}.Options()
		assert.Error(t, err)
	})
}

// Runs against a real server only when REDIS_TEST_URL is set.
func TestRedisStoreIntegration(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}

	ctx := context.Background()
	client, err := redis.NewClient(ctx, redis.Config{URL: url})
	require.NoError(t, err)
	defer client.Close()

	key := "rl:test:" + time.Now().Format(time.RFC3339Nano)
	defer client.Del(ctx, key)

	limiter := ratelimit.NewLimiter(ratelimit.Config{Limit: 3, Window: time.Minute}, ratelimit.NewRedisStore(client))
	for i := 0; i < 3; i++ {
		res, err := limiter.Allow(ctx, key)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}
	res, err := limiter.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
}

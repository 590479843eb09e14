package redissvc

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keebstore/storefront/internal/session"
)

// Requires a running Redis; set STOREFRONT_TEST_REDIS_ADDR to enable.
func newTestService(t *testing.T) *RedisService {
	t.Helper()
	addr := os.Getenv("STOREFRONT_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("STOREFRONT_TEST_REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { rdb.Close() })

	svc := NewRedisService(rdb, time.Minute)
	require.NoError(t, svc.Ping(context.Background()))
	return svc
}

func TestKeyPrefix(t *testing.T) {
	assert.Equal(t, "storefront:session:abc", key("abc"))
}

func TestRedisSessionRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	id := uuid.NewString()
	t.Cleanup(func() { svc.Delete(ctx, id) })

	_, err := svc.Load(ctx, id)
	assert.ErrorIs(t, err, session.ErrNotFound)

	s := session.NewState(id)
	s.Filter = "keycaps"
	s.Flash("Order placed successfully! We will contact you soon.", false)
	require.NoError(t, svc.Save(ctx, s))

	got, err := svc.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, s, got)

	ttl, err := svc.Rdb().TTL(ctx, key(id)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, svc.Delete(ctx, id))
	_, err = svc.Load(ctx, id)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

package infra_test

import (
	"context"
	"testing"
	"time"

	"github.com/abhishek972986/porter-managment/internal/infra"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRedisTokenStore_RevokeAndExpire(t *testing.T) {
	mr, rdb := newTestRedis(t)
	store := infra.NewRedisTokenStore(rdb)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Minute))
	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked, "revocation should lapse with the token")
}

func TestRedisTokenStore_ExpiredTokenNotStored(t *testing.T) {
	mr, rdb := newTestRedis(t)
	store := infra.NewRedisTokenStore(rdb)

	require.NoError(t, store.Revoke(context.Background(), "jti-2", 0))
	assert.False(t, mr.Exists("revoked:jti-2"))
}

func TestNewRedis_PingsServer(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb, err := infra.NewRedis("redis://" + mr.Addr() + "/0")
	require.NoError(t, err)
	defer rdb.Close()

	_, err = infra.NewRedis("redis://127.0.0.1:1/0")
	assert.Error(t, err)
}

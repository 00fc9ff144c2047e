package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojas7/produtos/pkg/cache"
)

type item struct {
	ID    int64   `json:"id"`
	Price float64 `json:"price"`
}

func newStore(t *testing.T) (*cache.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store := cache.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	var got []item
	assert.False(t, store.Get(ctx, "listing", &got))

	require.NoError(t, store.Set(ctx, "listing", []item{{ID: 1, Price: 9.99}}, time.Minute))
	assert.True(t, mr.Exists("produtos:listing"))

	require.True(t, store.Get(ctx, "listing", &got))
	assert.Equal(t, []item{{ID: 1, Price: 9.99}}, got)

	mr.FastForward(2 * time.Minute)
	assert.False(t, store.Get(ctx, "listing", &got), "expired")
}

func TestRedisStoreDel(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, store.Del(ctx, "a"))
	assert.False(t, mr.Exists("produtos:a"))
	assert.NoError(t, store.Del(ctx))
}

func TestRedisStoreCorruptValueIsMiss(t *testing.T) {
	store, mr := newStore(t)
	require.NoError(t, mr.Set("produtos:bad", "{not json"))

	var got []item
	assert.False(t, store.Get(context.Background(), "bad", &got))
}

func TestNop(t *testing.T) {
	var s cache.Store = cache.Nop{}
	var got int
	assert.False(t, s.Get(context.Background(), "k", &got))
	assert.NoError(t, s.Set(context.Background(), "k", 1, time.Second))
	assert.NoError(t, s.Close())
}

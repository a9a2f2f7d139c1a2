package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedPrice struct {
	Suggested float64 `json:"suggested"`
	Term      string  `json:"term"`
}

func TestRedisPriceCache_RoundTripAndTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	c := NewRedisPriceCache(client)
	ctx := context.Background()

	var miss cachedPrice
	ok, err := c.Get(ctx, "abc", &miss)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "abc", cachedPrice{Suggested: 350, Term: "farol palio"}, time.Hour))
	assert.True(t, mr.Exists("price:abc"))

	var hit cachedPrice
	ok, err = c.Get(ctx, "abc", &hit)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, cachedPrice{Suggested: 350, Term: "farol palio"}, hit)

	mr.FastForward(2 * time.Hour)
	ok, err = c.Get(ctx, "abc", &hit)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisPriceCache_CorruptEntry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	require.NoError(t, mr.Set("price:bad", "not-json"))

	var dst cachedPrice
	_, err := NewRedisPriceCache(client).Get(context.Background(), "bad", &dst)
	assert.Error(t, err)
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/AleXx313/shareit/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisCache(t *testing.T) (*RedisSearchCache, *miniredis.Miniredis) {
	t.Helper()
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisSearchCache(client, time.Hour), s
}

func TestRedisSearchCache(t *testing.T) {
	cache, s := setupRedisCache(t)
	ctx := context.Background()

	items := []models.Item{
		{ID: 1, Name: "Drill", Description: "cordless", Available: true},
		{ID: 2, Name: "Drill Press", Description: "heavy", Available: true},
	}

	t.Run("MissThenHit", func(t *testing.T) {
		_, ok, err := cache.Get(ctx, "drill", 0, 10)
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, cache.Set(ctx, "drill", 0, 10, items))

		got, ok, err := cache.Get(ctx, "drill", 0, 10)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, items, got)
	})

	t.Run("DistinctPages", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "drill", 10, 10, items[:1]))

		got, ok, err := cache.Get(ctx, "drill", 10, 10)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Len(t, got, 1)
	})

	t.Run("InvalidateOrphansOldPages", func(t *testing.T) {
		require.NoError(t, cache.Invalidate(ctx))

		_, ok, err := cache.Get(ctx, "drill", 0, 10)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("TTLExpiry", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "saw", 0, 10, items))
		s.FastForward(2 * time.Hour)

		_, ok, err := cache.Get(ctx, "saw", 0, 10)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

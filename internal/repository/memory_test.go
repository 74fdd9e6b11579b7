package repository

import (
	"context"
	"testing"
	"time"

	"omservice/internal/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStatsCache(t *testing.T) {
	cache := NewMemoryStatsCache(time.Hour)
	ctx := context.Background()

	t.Run("SetAndGet", func(t *testing.T) {
		summary := &stats.Summary{TotalBookings: 3}
		require.NoError(t, cache.Set(ctx, summary))

		got, ok, err := cache.Get(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, summary, got)
	})

	t.Run("Invalidate", func(t *testing.T) {
		require.NoError(t, cache.Invalidate(ctx))

		_, ok, err := cache.Get(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("TTLExpiry", func(t *testing.T) {
		short := NewMemoryStatsCache(time.Millisecond)
		require.NoError(t, short.Set(ctx, &stats.Summary{TotalBookings: 1}))

		time.Sleep(5 * time.Millisecond)

		_, ok, err := short.Get(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

package repository

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"omservice/internal/stats"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context) (*stats.Summary, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*stats.Summary), args.Bool(1), args.Error(2)
}

func (m *mockCache) Set(ctx context.Context, summary *stats.Summary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

func (m *mockCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestFailoverStatsCache(t *testing.T) {
	primary := new(mockCache)
	fallback := new(mockCache)
	logger := zerolog.New(io.Discard)
	cache := NewFailoverStatsCache(primary, fallback, &logger)
	ctx := context.Background()

	summary := &stats.Summary{TotalBookings: 9}

	t.Run("PrimarySuccess", func(t *testing.T) {
		primary.On("Get", ctx).Return(summary, true, nil).Once()

		got, ok, err := cache.Get(ctx)
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, summary, got)
		primary.AssertExpectations(t)
	})

	t.Run("PrimaryFailFallbackSuccess", func(t *testing.T) {
		primary.On("Get", ctx).Return(nil, false, errors.New("fail")).Once()
		fallback.On("Get", ctx).Return(summary, true, nil).Once()

		got, ok, err := cache.Get(ctx)
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, summary, got)
		assert.True(t, cache.isDown.Load())
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("RecoveryAttempt", func(t *testing.T) {
		cache.isDown.Store(true)
		cache.lastCheck = time.Now().Add(-2 * time.Minute)

		primary.On("Get", ctx).Return(summary, true, nil).Once()

		got, ok, err := cache.Get(ctx)
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, summary, got)
		assert.False(t, cache.isDown.Load())
		primary.AssertExpectations(t)
	})

	t.Run("RecoveryAttemptFail", func(t *testing.T) {
		cache.isDown.Store(true)
		cache.lastCheck = time.Now().Add(-2 * time.Minute)

		primary.On("Get", ctx).Return(nil, false, errors.New("still fail")).Once()
		fallback.On("Get", ctx).Return(nil, false, nil).Once()

		_, ok, err := cache.Get(ctx)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.True(t, cache.isDown.Load())
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("SetSuccessWarmsFallback", func(t *testing.T) {
		cache.isDown.Store(false)
		primary.On("Set", ctx, summary).Return(nil).Once()
		fallback.On("Set", ctx, summary).Return(nil).Once()

		assert.NoError(t, cache.Set(ctx, summary))
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("SetFailover", func(t *testing.T) {
		cache.isDown.Store(false)
		primary.On("Set", ctx, summary).Return(errors.New("fail")).Once()
		fallback.On("Set", ctx, summary).Return(nil).Once()

		assert.NoError(t, cache.Set(ctx, summary))
		assert.True(t, cache.isDown.Load())
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("SetAlreadyDown", func(t *testing.T) {
		cache.isDown.Store(true)
		fallback.On("Set", ctx, summary).Return(nil).Once()

		assert.NoError(t, cache.Set(ctx, summary))
		fallback.AssertExpectations(t)
	})

	t.Run("InvalidateClearsBoth", func(t *testing.T) {
		cache.isDown.Store(false)
		primary.On("Invalidate", ctx).Return(nil).Once()
		fallback.On("Invalidate", ctx).Return(nil).Once()

		assert.NoError(t, cache.Invalidate(ctx))
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("InvalidateAlreadyDown", func(t *testing.T) {
		cache.isDown.Store(true)
		fallback.On("Invalidate", ctx).Return(nil).Once()

		assert.NoError(t, cache.Invalidate(ctx))
		fallback.AssertExpectations(t)
	})
}

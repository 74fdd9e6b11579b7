package repository

import (
	"context"
	"sync/atomic"
	"time"

	"omservice/internal/domain"
	"omservice/internal/stats"

	"github.com/rs/zerolog"
)

// FailoverStatsCache serves from the primary cache until it errors,
// then runs on the fallback and probes the primary again after a
// minute.
type FailoverStatsCache struct {
	primary   domain.StatsCache
	fallback  domain.StatsCache
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck time.Time
}

func NewFailoverStatsCache(primary, fallback domain.StatsCache, logger *zerolog.Logger) *FailoverStatsCache {
	return &FailoverStatsCache{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverStatsCache) Get(ctx context.Context) (*stats.Summary, bool, error) {
	if !r.isDown.Load() {
		summary, ok, err := r.primary.Get(ctx)
		if err == nil {
			return summary, ok, nil
		}
		r.logger.Error().Err(err).Msg("Primary stats cache failed, falling back to memory")
		r.isDown.Store(true)
		r.lastCheck = time.Now()
	}

	// Try to recover after 1 minute
	if r.isDown.Load() && time.Since(r.lastCheck) > time.Minute {
		summary, ok, err := r.primary.Get(ctx)
		if err == nil {
			r.isDown.Store(false)
			return summary, ok, nil
		}
		r.lastCheck = time.Now()
	}

	return r.fallback.Get(ctx)
}

func (r *FailoverStatsCache) Set(ctx context.Context, summary *stats.Summary) error {
	if !r.isDown.Load() {
		err := r.primary.Set(ctx, summary)
		if err == nil {
			// Keep the fallback warm so a failover still has data.
			_ = r.fallback.Set(ctx, summary)
			return nil
		}
		r.logger.Error().Err(err).Msg("Primary stats cache failed, falling back to memory")
		r.isDown.Store(true)
		r.lastCheck = time.Now()
	}

	return r.fallback.Set(ctx, summary)
}

func (r *FailoverStatsCache) Invalidate(ctx context.Context) error {
	_ = r.fallback.Invalidate(ctx)

	if !r.isDown.Load() {
		err := r.primary.Invalidate(ctx)
		if err == nil {
			return nil
		}
		r.logger.Error().Err(err).Msg("Primary stats cache failed, falling back to memory")
		r.isDown.Store(true)
		r.lastCheck = time.Now()
	}

	return nil
}

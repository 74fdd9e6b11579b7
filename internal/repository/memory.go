package repository

import (
	"context"
	"sync"
	"time"

	"omservice/internal/stats"
)

type MemoryStatsCache struct {
	mu        sync.RWMutex
	summary   *stats.Summary
	expiresAt time.Time
	ttl       time.Duration
}

func NewMemoryStatsCache(ttl time.Duration) *MemoryStatsCache {
	return &MemoryStatsCache{
		ttl: ttl,
	}
}

func (r *MemoryStatsCache) Get(ctx context.Context) (*stats.Summary, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.summary == nil || time.Now().After(r.expiresAt) {
		return nil, false, nil
	}
	return r.summary, true, nil
}

func (r *MemoryStatsCache) Set(ctx context.Context, summary *stats.Summary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summary = summary
	r.expiresAt = time.Now().Add(r.ttl)
	return nil
}

func (r *MemoryStatsCache) Invalidate(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summary = nil
	return nil
}

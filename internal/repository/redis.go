package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"omservice/internal/config"
	"omservice/internal/stats"

	"github.com/redis/go-redis/v9"
)

const statsCacheKey = "stats:summary"

type RedisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient создает новый клиент Redis на основе конфигурации
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	options := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}

	return redis.NewClient(options)
}

func NewRedisStatsCache(client *redis.Client, ttl time.Duration) *RedisStatsCache {
	return &RedisStatsCache{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisStatsCache) Get(ctx context.Context) (*stats.Summary, bool, error) {
	if r.client == nil {
		return nil, false, fmt.Errorf("redis client is nil")
	}
	val, err := r.client.Get(ctx, statsCacheKey).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get summary from redis: %w", err)
	}

	var summary stats.Summary
	if err := json.Unmarshal([]byte(val), &summary); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal summary: %w", err)
	}
	return &summary, true, nil
}

func (r *RedisStatsCache) Set(ctx context.Context, summary *stats.Summary) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	if err := r.client.Set(ctx, statsCacheKey, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set summary in redis: %w", err)
	}
	return nil
}

func (r *RedisStatsCache) Invalidate(ctx context.Context) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := r.client.Del(ctx, statsCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to delete summary from redis: %w", err)
	}
	return nil
}

// Ping проверяет соединение с Redis
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

// Close закрывает соединение с Redis
func Close(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}
	return nil
}

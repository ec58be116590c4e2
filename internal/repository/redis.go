package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/AleXx313/shareit/internal/config"
	"github.com/AleXx313/shareit/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisSearchCache stores item search pages under a generation-scoped
// key. Invalidation bumps the generation counter, orphaning every old
// page at once; the orphans expire with their TTL.
type RedisSearchCache struct {
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

func NewRedisSearchCache(client *redis.Client, ttl time.Duration) *RedisSearchCache {
	return &RedisSearchCache{
		client: client,
		ttl:    ttl,
	}
}

const generationKey = "item_search:gen"

func (r *RedisSearchCache) generation(ctx context.Context) (int64, error) {
	gen, err := r.client.Get(ctx, generationKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get cache generation: %w", err)
	}
	return gen, nil
}

func searchKey(gen int64, text string, from, size int) string {
	return fmt.Sprintf("item_search:%d:%s:%d:%d", gen, text, from, size)
}

func (r *RedisSearchCache) Get(ctx context.Context, text string, from, size int) ([]models.Item, bool, error) {
	if r.client == nil {
		return nil, false, fmt.Errorf("redis client is nil")
	}

	gen, err := r.generation(ctx)
	if err != nil {
		return nil, false, err
	}

	val, err := r.client.Get(ctx, searchKey(gen, text, from, size)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get search page from redis: %w", err)
	}

	var items []models.Item
	if err := json.Unmarshal([]byte(val), &items); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal search page: %w", err)
	}
	return items, true, nil
}

func (r *RedisSearchCache) Set(ctx context.Context, text string, from, size int, items []models.Item) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	gen, err := r.generation(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal search page: %w", err)
	}

	if err := r.client.Set(ctx, searchKey(gen, text, from, size), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set search page in redis: %w", err)
	}
	return nil
}

func (r *RedisSearchCache) Invalidate(ctx context.Context) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := r.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("failed to bump cache generation: %w", err)
	}
	return nil
}

package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "a2t:transcript:"

// ResultCache caches finished transcripts by file hash so identical files are
// never sent to a paid API twice.
type ResultCache interface {
	Get(ctx context.Context, fileHash string) (string, bool, error)
	Set(ctx context.Context, fileHash, transcript string) error
	Close() error
}

// RedisCache implements ResultCache on Redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to the Redis instance named by REDIS_ADDR
// (default localhost:6379). Entries expire after ttl; zero means keep forever.
func NewRedisCache(ttl time.Duration) (*RedisCache, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return &RedisCache{client: client, ttl: ttl}, nil
}

func (c *RedisCache) Get(ctx context.Context, fileHash string) (string, bool, error) {
	val, err := c.client.Get(ctx, keyPrefix+fileHash).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get failed: %w", err)
	}
	return val, true, nil
}

func (c *RedisCache) Set(ctx context.Context, fileHash, transcript string) error {
	if err := c.client.Set(ctx, keyPrefix+fileHash, transcript, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// NoopCache is used when no Redis instance is configured.
type NoopCache struct{}

func (NoopCache) Get(ctx context.Context, fileHash string) (string, bool, error) { return "", false, nil }
func (NoopCache) Set(ctx context.Context, fileHash, transcript string) error     { return nil }
func (NoopCache) Close() error                                                   { return nil }

// internal/common/database/redis.go
package database

import (
	"context"
	"fmt"
	"time"

	"asset-qualification-workers/internal/common/config"

	"github.com/redis/go-redis/v9"
)

// Portal read paths cache full asset records; the gateway invalidates the
// cached record whenever it persists a breakdown.
const assetCacheKeyPrefix = "asset:"

// RedisClient wraps the Redis client used as the portal's asset record cache.
type RedisClient struct {
	Client *redis.Client
}

// NewRedis creates a new Redis client.
func NewRedis(cfg config.RedisConfig) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	return &RedisClient{Client: rdb}, nil
}

// Ping tests the Redis connection.
func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *RedisClient) Close() error {
	if c.Client != nil {
		return c.Client.Close()
	}
	return nil
}

// AssetCacheKey builds the cache key for an asset record.
func AssetCacheKey(assetID string) string {
	return assetCacheKeyPrefix + assetID
}

// GetAsset returns the cached asset document, or redis.Nil if absent.
func (c *RedisClient) GetAsset(ctx context.Context, assetID string) (string, error) {
	return c.Client.Get(ctx, AssetCacheKey(assetID)).Result()
}

// SetAsset caches an asset document with the given TTL.
func (c *RedisClient) SetAsset(ctx context.Context, assetID string, doc []byte, ttl time.Duration) error {
	return c.Client.Set(ctx, AssetCacheKey(assetID), doc, ttl).Err()
}

// InvalidateAsset drops the cached record after a scoring write.
func (c *RedisClient) InvalidateAsset(ctx context.Context, assetID string) error {
	return c.Client.Del(ctx, AssetCacheKey(assetID)).Err()
}

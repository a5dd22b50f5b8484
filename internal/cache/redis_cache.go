package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Cheertaboi/delivery-date-service/internal/models"
)

// RedisSettingsCache shares cached settings between service replicas so an
// admin save invalidates every instance at once.
type RedisSettingsCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewRedisSettingsCache(client *redis.Client, ttl time.Duration) *RedisSettingsCache {
	return &RedisSettingsCache{client: client, key: "delivery:" + settingsKey, ttl: ttl}
}

// NewRedisClient connects to url, e.g. "redis://localhost:6379/0".
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// Get treats any Redis failure as a miss; the caller then reads the database.
func (c *RedisSettingsCache) Get(ctx context.Context) (*models.StoreSettings, bool) {
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("settings cache get: %v", err)
		}
		return nil, false
	}
	var s *models.StoreSettings
	if err := json.Unmarshal(raw, &s); err != nil {
		log.Printf("settings cache decode: %v", err)
		return nil, false
	}
	return s, true
}

func (c *RedisSettingsCache) Set(ctx context.Context, s *models.StoreSettings) {
	if c.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(s)
	if err != nil {
		log.Printf("settings cache encode: %v", err)
		return
	}
	if err := c.client.Set(ctx, c.key, raw, c.ttl).Err(); err != nil {
		log.Printf("settings cache set: %v", err)
	}
}

func (c *RedisSettingsCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		log.Printf("settings cache invalidate: %v", err)
	}
}

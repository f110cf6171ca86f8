package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"karigar/models"

	"github.com/go-redis/redis/v8"
)

// ServiceCache keeps recently read listings out of the database.
type ServiceCache interface {
	Get(ctx context.Context, id string) (*models.Service, bool)
	Set(ctx context.Context, service *models.Service) error
	Invalidate(ctx context.Context, id string) error
}

type RedisServiceCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisServiceCache caches services in client for ttl.
func NewRedisServiceCache(client *redis.Client, ttl time.Duration) *RedisServiceCache {
	return &RedisServiceCache{client: client, ttl: ttl}
}

const serviceCachePrefix = "listing:service:"

func serviceKey(id string) string {
	return fmt.Sprintf("%s%s", serviceCachePrefix, id)
}

// Get reports a miss for absent, unreadable or corrupt entries.
func (c *RedisServiceCache) Get(ctx context.Context, id string) (*models.Service, bool) {
	val, err := c.client.Get(ctx, serviceKey(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var service models.Service
	if err := json.Unmarshal(val, &service); err != nil {
		return nil, false
	}
	return &service, true
}

// Set caches service until the TTL runs out.
func (c *RedisServiceCache) Set(ctx context.Context, service *models.Service) error {
	data, err := json.Marshal(service)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, serviceKey(service.ID), data, c.ttl).Err()
}

// Invalidate drops the cached copy of service id.
func (c *RedisServiceCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, serviceKey(id)).Err()
}

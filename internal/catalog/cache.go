package catalog

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/patient-booking/internal/persistence"
)

const cacheKey = "catalog:v1"

// Cache stores the rendered catalog payload in Redis so repeated form loads
// skip re-serialization. Misses and Redis outages fall through to the source.
type Cache struct {
	redis  *persistence.Redis
	ttl    time.Duration
	logger *zap.Logger
}

// NewCache builds a cache around the shared Redis client.
func NewCache(redis *persistence.Redis, ttl time.Duration, logger *zap.Logger) *Cache {
	return &Cache{redis: redis, ttl: ttl, logger: logger}
}

// Get returns the cached payload, or ok=false on miss or error.
func (c *Cache) Get(ctx context.Context) ([]byte, bool) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return nil, false
	}
	payload, err := c.redis.Client.Get(ctx, cacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

// Set stores the payload. Failures are logged and ignored.
func (c *Cache) Set(ctx context.Context, payload []byte) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return
	}
	if err := c.redis.Client.Set(ctx, cacheKey, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("catalog cache write failed", zap.Error(err))
	}
}

// Package cache provides the Redis-backed day-workload cache.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/felixgeelhaar/studora/internal/insights/application/queries"
)

// DefaultWorkloadTTL keeps cached day workloads short-lived; item edits
// must become visible within minutes without explicit invalidation.
const DefaultWorkloadTTL = 5 * time.Minute

// RedisWorkloadCache caches day-workload summaries keyed by user and date.
// Every failure is swallowed and logged at debug level so an unreachable
// Redis only costs a recomputation.
type RedisWorkloadCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisWorkloadCache creates a RedisWorkloadCache with the default TTL.
func NewRedisWorkloadCache(client *redis.Client, logger *slog.Logger) *RedisWorkloadCache {
	return &RedisWorkloadCache{client: client, ttl: DefaultWorkloadTTL, logger: logger}
}

func workloadKey(userID uuid.UUID, day time.Time) string {
	return fmt.Sprintf("insights:workload:%s:%s", userID, day.Format("2006-01-02"))
}

// Get returns the cached workload for the user and day, if present.
func (c *RedisWorkloadCache) Get(ctx context.Context, userID uuid.UUID, day time.Time) (*queries.WorkloadDTO, bool) {
	payload, err := c.client.Get(ctx, workloadKey(userID, day)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.DebugContext(ctx, "workload cache read failed", "error", err)
		}
		return nil, false
	}

	var dto queries.WorkloadDTO
	if err := json.Unmarshal(payload, &dto); err != nil {
		c.logger.DebugContext(ctx, "workload cache entry corrupt", "error", err)
		return nil, false
	}
	return &dto, true
}

// Set stores the workload for the user and day.
func (c *RedisWorkloadCache) Set(ctx context.Context, userID uuid.UUID, day time.Time, workload *queries.WorkloadDTO) {
	payload, err := json.Marshal(workload)
	if err != nil {
		c.logger.DebugContext(ctx, "workload cache encode failed", "error", err)
		return
	}
	if err := c.client.Set(ctx, workloadKey(userID, day), payload, c.ttl).Err(); err != nil {
		c.logger.DebugContext(ctx, "workload cache write failed", "error", err)
	}
}

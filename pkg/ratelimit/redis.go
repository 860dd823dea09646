package ratelimit

import (
	"context"
	"fmt"
	"time"

	"studytrack-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter implements the sliding window over a Redis sorted set, one
// set per key, member score = request timestamp. Use it when the service
// runs more than one replica; MemoryLimiter state is per-process.
type RedisLimiter struct {
	client *redis.Client
	logger logger.ILogger
}

func NewRedisLimiter(client *redis.Client, log logger.ILogger) *RedisLimiter {
	return &RedisLimiter{client: client, logger: log}
}

func (l *RedisLimiter) Allow(key string, limit int, window time.Duration) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	redisKey := "ratelimit:" + key
	now := time.Now()
	cutoff := now.Add(-window).UnixNano()

	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", cutoff))
	countCmd := pipe.ZCard(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		// Fail open: a broken limiter backend must not take chat down.
		l.logger.Warn("ratelimit", "redis limiter unavailable, allowing request", map[string]interface{}{
			"error": err.Error(),
		})
		return true
	}

	if countCmd.Val() >= int64(limit) {
		return false
	}

	pipe = l.client.TxPipeline()
	pipe.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: now.UnixNano(),
	})
	pipe.Expire(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		l.logger.Warn("ratelimit", "failed to record request timestamp", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return true
}

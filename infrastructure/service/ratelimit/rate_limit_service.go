package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/yardops/yardops/application/port/inbound"
	"github.com/yardops/yardops/infrastructure/service/logger"
)

type Config struct {
	Enabled  bool
	RedisURL string
}

// New returns a Redis-backed rate limiter, or a no-op limiter when rate
// limiting is disabled in configuration.
func New(config Config, log logger.Logger) (inbound.RateLimitService, error) {
	if !config.Enabled {
		log.Info(context.Background(), "Rate limiting disabled", nil)
		return &noopRateLimitService{}, nil
	}

	opt, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRateLimitService{client: client, logger: log}, nil
}

// NewWithClient wires an existing Redis client, used by tests.
func NewWithClient(client *redis.Client, log logger.Logger) inbound.RateLimitService {
	return &redisRateLimitService{client: client, logger: log}
}

type redisRateLimitService struct {
	client *redis.Client
	logger logger.Logger
}

func (s *redisRateLimitService) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := s.client.Get(ctx, key).Int()
	if err != nil {
		if err == redis.Nil {
			return true, nil
		}
		return false, fmt.Errorf("failed to read rate limit counter: %w", err)
	}

	underLimit := count < limit
	if !underLimit {
		s.logger.Warn(ctx, "Rate limit reached", map[string]interface{}{
			"key":   key,
			"count": count,
			"limit": limit,
		})
	}
	return underLimit, nil
}

func (s *redisRateLimitService) Increment(ctx context.Context, key string, window time.Duration) error {
	pipeline := s.client.Pipeline()
	pipeline.Incr(ctx, key)
	pipeline.Expire(ctx, key, window)
	if _, err := pipeline.Exec(ctx); err != nil {
		return fmt.Errorf("failed to increment rate limit: %w", err)
	}
	return nil
}

func (s *redisRateLimitService) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to reset rate limit: %w", err)
	}
	return nil
}

// noopRateLimitService allows every request.
type noopRateLimitService struct{}

func (noopRateLimitService) CheckLimit(context.Context, string, int, time.Duration) (bool, error) {
	return true, nil
}

func (noopRateLimitService) Increment(context.Context, string, time.Duration) error { return nil }

func (noopRateLimitService) Reset(context.Context, string) error { return nil }

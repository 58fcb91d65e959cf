package inbound

import (
	"context"
	"time"
)

// RateLimitService throttles repeated login attempts per key (IP or user).
type RateLimitService interface {
	CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	Increment(ctx context.Context, key string, window time.Duration) error
	Reset(ctx context.Context, key string) error
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"backend/pkg/apperror"
)

// RateLimiter throttles sensitive operations per client using redis SETNX.
// A nil redis client disables limiting entirely.
type RateLimiter struct {
	rdb    *redis.Client
	window time.Duration
}

func NewRateLimiter(rdb *redis.Client, window time.Duration) *RateLimiter {
	return &RateLimiter{rdb: rdb, window: window}
}

// Allow reserves the key for the configured window. It returns
// ErrRateLimitExceeded when the key is already held. Redis outages fail
// open so auth keeps working without the limiter.
func (l *RateLimiter) Allow(ctx context.Context, action, clientIP string) error {
	if l == nil || l.rdb == nil {
		return nil
	}
	key := fmt.Sprintf("ratelimit:%s:%s", action, clientIP)
	ok, err := l.rdb.SetNX(ctx, key, 1, l.window).Result()
	if err != nil {
		return nil
	}
	if !ok {
		return apperror.ErrRateLimitExceeded
	}
	return nil
}

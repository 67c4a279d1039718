package service

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const throttleKeyPrefix = "login_attempts:"

// LoginThrottle counts failed login attempts per email in Redis and blocks
// further attempts once the limit is reached within the window. A nil
// throttle (or one without a Redis client) disables throttling entirely.
type LoginThrottle struct {
	client *redis.Client
	logger *zap.Logger
	limit  int
	window time.Duration
}

// NewLoginThrottle builds a throttle backed by the given Redis client.
func NewLoginThrottle(client *redis.Client, logger *zap.Logger, limit int, window time.Duration) *LoginThrottle {
	return &LoginThrottle{client: client, logger: logger, limit: limit, window: window}
}

// Allow reports whether a login attempt for the email may proceed. Redis
// outages fail open: an unreachable counter store must not lock every
// account out.
func (t *LoginThrottle) Allow(ctx context.Context, email string) error {
	if t == nil || t.client == nil || t.limit <= 0 {
		return nil
	}

	val, err := t.client.Get(ctx, throttleKeyPrefix+email).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		t.logger.Warn("login throttle unavailable", zap.Error(err))
		return nil
	}

	count, err := strconv.Atoi(val)
	if err != nil {
		return nil
	}
	if count >= t.limit {
		return ErrTooManyAttempts
	}
	return nil
}

// RecordFailure increments the failure counter and refreshes its expiry.
func (t *LoginThrottle) RecordFailure(ctx context.Context, email string) {
	if t == nil || t.client == nil || t.limit <= 0 {
		return
	}

	key := throttleKeyPrefix + email
	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, t.window)
	if _, err := pipe.Exec(ctx); err != nil {
		t.logger.Warn("login throttle record failed", zap.Error(err))
	}
}

// Reset clears the failure counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, email string) {
	if t == nil || t.client == nil {
		return
	}
	if err := t.client.Del(ctx, throttleKeyPrefix+email).Err(); err != nil {
		t.logger.Warn("login throttle reset failed", zap.Error(err))
	}
}

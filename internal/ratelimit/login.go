package ratelimit

import (
	"context"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/dashboard/internal/config"
)

const keyLoginAttempt = "auth:login:ip:"

// LoginLimiter bounds login attempts per client address. A nil limiter, or one
// built without redis, allows everything.
type LoginLimiter struct {
	bucket *TokenBucket
	rate   float64
	burst  int
}

func NewLoginLimiter(cfg config.Config, client *redis.Client) *LoginLimiter {
	perMinute := cfg.RateLimit.LoginPerMinute
	burst := cfg.RateLimit.LoginBurst
	if client == nil || perMinute <= 0 || burst <= 0 {
		return nil
	}
	return &LoginLimiter{
		bucket: NewTokenBucket(client),
		rate:   float64(perMinute) / 60,
		burst:  burst,
	}
}

func (l *LoginLimiter) Enabled() bool {
	return l != nil && l.bucket != nil
}

func (l *LoginLimiter) Allow(ctx context.Context, clientIP string) (Result, error) {
	if !l.Enabled() {
		return Result{Allowed: true}, nil
	}
	return l.bucket.Allow(ctx, keyLoginAttempt+strings.TrimSpace(clientIP), l.rate, l.burst)
}

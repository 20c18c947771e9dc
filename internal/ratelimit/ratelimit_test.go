package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/smallbiznis/dashboard/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginLimiterWithoutRedisAllows(t *testing.T) {
	limiter := NewLoginLimiter(config.Config{
		RateLimit: config.RateLimitConfig{LoginPerMinute: 10, LoginBurst: 5},
	}, nil)
	assert.Nil(t, limiter)
	assert.False(t, limiter.Enabled())

	res, err := limiter.Allow(context.Background(), "127.0.0.1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestTokenBucketRequiresClient(t *testing.T) {
	var bucket *TokenBucket
	_, err := bucket.Allow(context.Background(), "k", 1, 1)
	assert.Error(t, err)
}

func TestDecideRetryAfter(t *testing.T) {
	res := decide(false, 0, 0.5)
	assert.False(t, res.Allowed)
	assert.Equal(t, 2*time.Second, res.RetryAfter)

	res = decide(true, 3, 0.5)
	assert.True(t, res.Allowed)
	assert.Equal(t, 3, res.Remaining)
	assert.Zero(t, res.RetryAfter)
}

func TestBucketTTL(t *testing.T) {
	assert.Equal(t, time.Second, bucketTTL(0, 5))
	assert.Equal(t, 20*time.Second, bucketTTL(0.5, 5))
	assert.Equal(t, time.Second, bucketTTL(100, 1))
}

func TestScriptReplyConversion(t *testing.T) {
	assert.Equal(t, int64(1), toInt(int64(1)))
	assert.Equal(t, int64(7), toInt("7"))
	assert.Equal(t, 2.5, toFloat("2.5"))
	assert.Equal(t, float64(4), toFloat(int64(4)))
	assert.Zero(t, toFloat(nil))
}

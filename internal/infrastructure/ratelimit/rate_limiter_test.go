package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketExhaustion(t *testing.T) {
	bucket := NewTokenBucket(3, 1, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, _ := bucket.Allow()
		assert.True(t, allowed, "request %d should be within the burst", i)
	}

	allowed, wait := bucket.Allow()
	assert.False(t, allowed)
	assert.Greater(t, wait, time.Duration(0))
}

func TestTokenBucketRefill(t *testing.T) {
	bucket := NewTokenBucket(1, 1, 10*time.Millisecond)

	allowed, _ := bucket.Allow()
	assert.True(t, allowed)

	allowed, _ = bucket.Allow()
	assert.False(t, allowed)

	time.Sleep(15 * time.Millisecond)

	allowed, _ = bucket.Allow()
	assert.True(t, allowed, "bucket should refill after the interval")
}

func TestTokenBucketRefillCapsAtMax(t *testing.T) {
	bucket := NewTokenBucket(2, 5, 10*time.Millisecond)

	bucket.Allow()
	bucket.Allow()

	time.Sleep(30 * time.Millisecond)

	allowed, _ := bucket.Allow()
	assert.True(t, allowed)
	allowed, _ = bucket.Allow()
	assert.True(t, allowed)

	allowed, _ = bucket.Allow()
	assert.False(t, allowed, "refill must not exceed the bucket capacity")
}

func TestRateLimiterIsolatesUsersAndActions(t *testing.T) {
	rl := NewRateLimiter()

	for i := 0; i < 10; i++ {
		allowed, _ := rl.Allow("user-a", "create_chat")
		assert.True(t, allowed)
	}
	allowed, _ := rl.Allow("user-a", "create_chat")
	assert.False(t, allowed, "user-a exhausted create_chat")

	// Same user, different action.
	allowed, _ = rl.Allow("user-a", "send_message")
	assert.True(t, allowed)

	// Different user, same action.
	allowed, _ = rl.Allow("user-b", "create_chat")
	assert.True(t, allowed)
}

func TestRateLimiterCleanupDropsIdleBuckets(t *testing.T) {
	rl := NewRateLimiter()

	rl.Allow("user-a", "send_message")
	rl.buckets["user-a:send_message"].lastRefill = time.Now().Add(-2 * time.Hour)

	rl.Cleanup()

	rl.mutex.RLock()
	_, exists := rl.buckets["user-a:send_message"]
	rl.mutex.RUnlock()
	assert.False(t, exists)
}

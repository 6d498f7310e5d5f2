package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBucket(capacity float64, perSec float64, now time.Time) *bucket {
	return &bucket{
		capacity: capacity,
		perSec:   perSec,
		tokens:   capacity,
		refilled: now,
		lastSeen: now,
	}
}

func TestBucketBurstThenDeny(t *testing.T) {
	now := time.Now()
	b := testBucket(3, 1, now)

	for i := 0; i < 3; i++ {
		ok, _, _, _ := b.take(now)
		assert.True(t, ok, "request %d within burst", i+1)
	}

	ok, remaining, _, retryAfter := b.take(now)
	assert.False(t, ok)
	assert.Equal(t, 0, remaining)
	assert.Greater(t, retryAfter, time.Duration(0))
}

func TestBucketRefillsOverTime(t *testing.T) {
	now := time.Now()
	b := testBucket(2, 1, now) // one token per second

	b.take(now)
	b.take(now)
	ok, _, _, _ := b.take(now)
	require.False(t, ok, "bucket should be empty")

	// A simulated second later one token is back.
	later := now.Add(time.Second)
	ok, _, _, _ = b.take(later)
	assert.True(t, ok)
	ok, _, _, _ = b.take(later)
	assert.False(t, ok)
}

func TestBucketRefillCapsAtCapacity(t *testing.T) {
	now := time.Now()
	b := testBucket(2, 1, now)

	// A long idle stretch must not bank more than the capacity.
	later := now.Add(time.Hour)
	for i := 0; i < 2; i++ {
		ok, _, _, _ := b.take(later)
		assert.True(t, ok)
	}
	ok, _, _, _ := b.take(later)
	assert.False(t, ok)
}

func TestLimiterAllowCountsDown(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/cards/kirti-salon", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := limiter.Allow("127.0.0.1", "/cards/kirti-salon", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiterWhitelistAndBlacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"10.0.0.1": true},
		Blacklist:     map[string]bool{"10.0.0.2": true},
	})
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		allowed, _ := limiter.Allow("10.0.0.1", "/cards/kirti-salon", "GET")
		assert.True(t, allowed, "whitelisted client must never be throttled")
	}

	allowed, _ := limiter.Allow("10.0.0.2", "/cards/kirti-salon", "GET")
	assert.False(t, allowed, "blacklisted client must never pass")
}

func TestLimiterDisabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/cards/kirti-salon/generate", "POST")
		assert.True(t, allowed)
	}
}

func TestLimiterEndpointOverride(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "*/generate", Method: "POST", Limit: 5, Window: time.Hour, Burst: 5},
		},
	})
	defer limiter.Stop()

	// The generate route carries its own tight budget regardless of slug.
	for i := 0; i < 5; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/cards/sharma-dental/generate", "POST")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 5, info.Limit)
	}
	allowed, _ := limiter.Allow("127.0.0.1", "/cards/sharma-dental/generate", "POST")
	assert.False(t, allowed)

	// The public card read is still on the permissive default.
	allowed, info := limiter.Allow("127.0.0.1", "/cards/sharma-dental", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestLimiterBucketsAreIsolatedPerClient(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("1.1.1.1", "/cards/kirti-salon", "GET")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("1.1.1.1", "/cards/kirti-salon", "GET")
	require.False(t, allowed)

	// A different client has its own bucket.
	allowed, _ = limiter.Allow("2.2.2.2", "/cards/kirti-salon", "GET")
	assert.True(t, allowed)
}

func TestMatchEndpoint_Patterns(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "*/generate", Method: "POST", Limit: 30, Window: time.Minute},
		{Path: "/admin/cards/", Method: "DELETE", Limit: 100, Window: time.Minute},
		{Path: "/auth/login", Method: "POST", Limit: 20, Window: time.Minute},
	}

	// Health check is always unlimited.
	cfg := MatchEndpoint("/health", "GET", configs)
	require.NotNil(t, cfg)
	assert.Equal(t, 0, cfg.Limit)

	// Suffix match catches generate routes regardless of slug.
	cfg = MatchEndpoint("/cards/kirti-salon/generate", "POST", configs)
	require.NotNil(t, cfg)
	assert.Equal(t, 30, cfg.Limit)

	// Prefix match for admin card routes with an ID.
	cfg = MatchEndpoint("/admin/cards/42", "DELETE", configs)
	require.NotNil(t, cfg)
	assert.Equal(t, 100, cfg.Limit)

	// Exact match.
	cfg = MatchEndpoint("/auth/login", "POST", configs)
	require.NotNil(t, cfg)
	assert.Equal(t, 20, cfg.Limit)

	// Method mismatch falls through to nil.
	assert.Nil(t, MatchEndpoint("/cards/kirti-salon/generate", "GET", configs))
}

func TestLimiterConcurrentRequests(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed, _ := limiter.Allow("127.0.0.1", "/cards/kirti-salon", "GET")
			if allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, allowedCount)
}

func TestDropIdleBuckets(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	for i := 0; i < 4; i++ {
		limiter.Allow(fmt.Sprintf("10.1.0.%d", i+1), "/cards/kirti-salon", "GET")
	}

	limiter.mu.Lock()
	require.Len(t, limiter.buckets, 4)
	limiter.mu.Unlock()

	// A cutoff in the past keeps everything; one in the future drops it all.
	limiter.dropIdleBuckets(time.Now().Add(-time.Minute))
	limiter.mu.Lock()
	assert.Len(t, limiter.buckets, 4)
	limiter.mu.Unlock()

	limiter.dropIdleBuckets(time.Now().Add(time.Minute))
	limiter.mu.Lock()
	assert.Empty(t, limiter.buckets)
	limiter.mu.Unlock()
}

func TestNewLimiterNilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, info := limiter.Allow("127.0.0.1", "/cards/kirti-salon", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestLimiterStopIsIdempotent(t *testing.T) {
	limiter := NewLimiter(nil)
	limiter.Stop()
	limiter.Stop()
}

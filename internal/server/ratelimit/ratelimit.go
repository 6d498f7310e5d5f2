// Package ratelimit throttles API traffic with per-client token buckets.
// The generate and enrich endpoints are the expensive ones (each call may
// reach the LLM provider), so they carry much tighter limits than the rest
// of the API.
package ratelimit

import (
	"sync"
	"time"
)

// Buckets idle past this cutoff are dropped by the cleanup loop.
const idleBucketTTL = time.Hour

// Info describes the outcome of a rate-limit check, in the shape the
// X-RateLimit-* response headers need.
type Info struct {
	Allowed    int
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// bucket is a token bucket for one clientID:endpoint:method triple. Tokens
// refill continuously; a request spends one token. lastSeen lets the cleanup
// loop drop buckets for clients that went away.
type bucket struct {
	mu       sync.Mutex
	capacity float64
	perSec   float64
	tokens   float64
	refilled time.Time
	lastSeen time.Time
}

func (b *bucket) refillLocked(now time.Time) {
	elapsed := now.Sub(b.refilled).Seconds()
	if elapsed <= 0 {
		return
	}
	b.tokens += elapsed * b.perSec
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.refilled = now
}

// take spends one token if available and reports the bucket state either way.
func (b *bucket) take(now time.Time) (ok bool, remaining int, reset time.Time, retryAfter time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refillLocked(now)
	b.lastSeen = now

	if b.tokens >= 1 {
		b.tokens--
		return true, int(b.tokens), b.resetAtLocked(now), 0
	}

	reset = b.resetAtLocked(now)
	wait := time.Duration((1 - b.tokens) / b.perSec * float64(time.Second))
	return false, 0, reset, wait
}

// resetAtLocked estimates when the bucket refills completely.
func (b *bucket) resetAtLocked(now time.Time) time.Time {
	missing := b.capacity - b.tokens
	if missing <= 0 {
		return now
	}
	return now.Add(time.Duration(missing / b.perSec * float64(time.Second)))
}

// Limiter applies per-endpoint rate limits keyed by client ID.
type Limiter struct {
	cfg *Config

	mu      sync.Mutex
	buckets map[string]*bucket

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLimiter builds a limiter and starts its idle-bucket cleanup loop.
// A nil config gets permissive defaults.
func NewLimiter(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		cfg:     cfg,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Allow decides whether a request from clientID against endpoint/method may
// proceed. Whitelisted clients always pass, blacklisted clients never do, and
// endpoints without a matching config (or with a non-positive limit, such as
// the health check) are unlimited.
func (l *Limiter) Allow(clientID, endpoint, method string) (bool, Info) {
	if !l.cfg.Enabled || l.cfg.Whitelist[clientID] {
		return true, Info{Allowed: 1}
	}
	if l.cfg.Blacklist[clientID] {
		return false, Info{RetryAfter: l.cfg.DefaultWindow}
	}

	limit, window, burst := l.cfg.DefaultLimit, l.cfg.DefaultWindow, 0
	if ec := MatchEndpoint(endpoint, method, l.cfg.EndpointConfigs); ec != nil {
		limit, window, burst = ec.Limit, ec.Window, ec.Burst
	}
	if limit <= 0 {
		return true, Info{Allowed: 1}
	}
	if window <= 0 {
		window = time.Minute
	}

	b := l.bucketFor(clientID+":"+endpoint+":"+method, limit, window, burst)
	ok, remaining, reset, retryAfter := b.take(time.Now())

	info := Info{
		Limit:      limit,
		Remaining:  remaining,
		ResetTime:  reset,
		RetryAfter: retryAfter,
	}
	if ok {
		info.Allowed = 1
	}
	return ok, info
}

func (l *Limiter) bucketFor(key string, limit int, window time.Duration, burst int) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[key]; ok {
		return b
	}

	capacity := float64(limit)
	if burst > 0 {
		capacity = float64(burst)
	}
	now := time.Now()
	b := &bucket{
		capacity: capacity,
		perSec:   float64(limit) / window.Seconds(),
		tokens:   capacity,
		refilled: now,
		lastSeen: now,
	}
	l.buckets[key] = b
	return b
}

// Stop shuts down the cleanup loop. Safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *Limiter) cleanupLoop() {
	interval := l.cfg.CleanupInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.dropIdleBuckets(time.Now().Add(-idleBucketTTL))
		case <-l.stop:
			return
		}
	}
}

func (l *Limiter) dropIdleBuckets(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, b := range l.buckets {
		b.mu.Lock()
		idle := b.lastSeen.Before(cutoff)
		b.mu.Unlock()
		if idle {
			delete(l.buckets, key)
		}
	}
}

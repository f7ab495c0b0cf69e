package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RateLimiter counts events per key within a rolling TTL window. It is an
// injected abstraction: the in-memory store below is for single-process
// deployments, a shared-store implementation can replace it behind the
// same interface.
type RateLimiter interface {
	// Check reports whether the key is still under the limit
	Check(key string) bool
	// Increment records one event for the key
	Increment(key string)
	// Clear forgets the key (e.g. after a successful login)
	Clear(key string)
}

type memoryEntry struct {
	count     int
	expiresAt time.Time
}

// MemoryRateLimiter is a fixed-capacity TTL map guarded by a mutex
type MemoryRateLimiter struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry

	limit    int
	window   time.Duration
	capacity int
}

// NewMemoryRateLimiter creates a limiter allowing limit events per window
func NewMemoryRateLimiter(limit int, window time.Duration) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		entries:  make(map[string]*memoryEntry),
		limit:    limit,
		window:   window,
		capacity: 10000,
	}
}

func (r *MemoryRateLimiter) Check(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return true
	}
	return entry.count < r.limit
}

func (r *MemoryRateLimiter) Increment(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		if len(r.entries) >= r.capacity {
			r.evictExpired()
		}
		r.entries[key] = &memoryEntry{count: 1, expiresAt: time.Now().Add(r.window)}
		return
	}
	entry.count++
}

func (r *MemoryRateLimiter) Clear(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, key)
}

// evictExpired drops dead entries; called under the lock when the map is full
func (r *MemoryRateLimiter) evictExpired() {
	cutoff := time.Now()
	for key, entry := range r.entries {
		if cutoff.After(entry.expiresAt) {
			delete(r.entries, key)
		}
	}
}

// Locals keys under which the middleware exposes the limiter and the
// request's key, so handlers can reset the counter (successful login).
const (
	RateLimiterLocal    = "rateLimiter"
	RateLimiterKeyLocal = "rateLimitKey"
)

// RateLimitMiddleware rejects requests from clients over the limit,
// keyed by client IP
func RateLimitMiddleware(limiter RateLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.IP() + ":" + c.Path()
		if !limiter.Check(key) {
			return JsonResponse(c, fiber.StatusTooManyRequests, false, "Too many requests, try again later!", nil)
		}
		limiter.Increment(key)
		c.Locals(RateLimiterLocal, limiter)
		c.Locals(RateLimiterKeyLocal, key)
		return c.Next()
	}
}

// ClearRateLimit resets the request's rate-limit counter, if the request
// passed through RateLimitMiddleware
func ClearRateLimit(c *fiber.Ctx) {
	limiter, ok := c.Locals(RateLimiterLocal).(RateLimiter)
	if !ok {
		return
	}
	key, ok := c.Locals(RateLimiterKeyLocal).(string)
	if !ok {
		return
	}
	limiter.Clear(key)
}

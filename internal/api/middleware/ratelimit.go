package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ──────────────────────────────────────────────────────────────────────────────
// Per-client token bucket
// ──────────────────────────────────────────────────────────────────────────────

// clientBucket tracks one client's remaining allowance.
type clientBucket struct {
	tokens     float64
	lastRefill time.Time
}

// limiter refills each client's bucket continuously at rate tokens/second up
// to the burst capacity. A single mutex guards the map; contention is low at
// the request rates this service sees.
type limiter struct {
	mu      sync.Mutex
	clients map[string]*clientBucket
	rate    float64
	burst   float64
}

func newLimiter(rps int) *limiter {
	burst := float64(rps)
	if burst < 5 {
		burst = 5
	}
	return &limiter{
		clients: make(map[string]*clientBucket),
		rate:    float64(rps),
		burst:   burst,
	}
}

func (l *limiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.clients[key]
	if !ok {
		b = &clientBucket{tokens: l.burst, lastRefill: now}
		l.clients[key] = b
	}

	b.tokens += now.Sub(b.lastRefill).Seconds() * l.rate
	if b.tokens > l.burst {
		b.tokens = l.burst
	}
	b.lastRefill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// evictStale drops buckets idle longer than maxIdle so the map stays bounded.
func (l *limiter) evictStale(maxIdle time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := time.Now().Add(-maxIdle)
	for key, b := range l.clients {
		if b.lastRefill.Before(cutoff) {
			delete(l.clients, key)
		}
	}
}

// RateLimitMiddleware enforces a per-IP limit of rps requests per second.
// Clients over the limit receive 429 Too Many Requests.
func RateLimitMiddleware(rps int) gin.HandlerFunc {
	l := newLimiter(rps)

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			l.evictStale(10 * time.Minute)
		}
	}()

	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}

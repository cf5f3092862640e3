package middleware

import (
	"net/http"
	"sync"
	"time"
)

// Webhook traffic arrives one message per user action, so a sender hammering
// the endpoint is either a misconfigured gateway or abuse. Each sender IP
// gets a token bucket; buckets idle past staleAfter are pruned inline on the
// next request rather than by a background goroutine.
const (
	staleAfter     = 10 * time.Minute
	pruneEverySeen = 256
)

type tokenBucket struct {
	tokens   float64
	lastSeen time.Time
}

// RateLimiter tracks per-sender token buckets.
type RateLimiter struct {
	mu      sync.Mutex
	senders map[string]*tokenBucket
	rate    float64
	burst   float64
	seen    int
	now     func() time.Time
}

// NewRateLimiter allows rate requests per second with the given burst per
// sender.
func NewRateLimiter(rate float64, burst int) *RateLimiter {
	return &RateLimiter{
		senders: make(map[string]*tokenBucket),
		rate:    rate,
		burst:   float64(burst),
		now:     time.Now,
	}
}

// Allow reports whether another request from sender fits the limit.
func (rl *RateLimiter) Allow(sender string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.seen++
	if rl.seen%pruneEverySeen == 0 {
		rl.prune(now)
	}

	b, ok := rl.senders[sender]
	if !ok {
		b = &tokenBucket{tokens: rl.burst, lastSeen: now}
		rl.senders[sender] = b
	} else {
		b.tokens += now.Sub(b.lastSeen).Seconds() * rl.rate
		if b.tokens > rl.burst {
			b.tokens = rl.burst
		}
		b.lastSeen = now
	}

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (rl *RateLimiter) prune(now time.Time) {
	cutoff := now.Add(-staleAfter)
	for sender, b := range rl.senders {
		if b.lastSeen.Before(cutoff) {
			delete(rl.senders, sender)
		}
	}
}

// RateLimit rejects senders exceeding the configured rate with 429.
func RateLimit(rate float64, burst int) func(http.Handler) http.Handler {
	limiter := NewRateLimiter(rate, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sender := r.RemoteAddr
			// chi's RealIP middleware rewrites RemoteAddr behind a proxy,
			// but honor the header directly when present.
			if xri := r.Header.Get("X-Real-Ip"); xri != "" {
				sender = xri
			}
			if !limiter.Allow(sender) {
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

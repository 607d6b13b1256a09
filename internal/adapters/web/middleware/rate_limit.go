package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"
)

type rateLimiter struct {
	mu      sync.Mutex
	history map[string][]time.Time
	limit   int
	window  time.Duration
	lastGC  time.Time
}

// NewRateLimiter creates a sliding-window limiter allowing limit requests
// per client IP inside the window.
func NewRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		history: make(map[string][]time.Time),
		limit:   limit,
		window:  window,
		lastGC:  time.Now(),
	}
}

// Allow records a request from the given IP and reports whether it fits the
// window. Stale entries are pruned opportunistically so the map cannot grow
// without bound.
func (rl *rateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastGC) > rl.window {
		rl.gcLocked(now)
	}

	recent := pruneBefore(rl.history[ip], now.Add(-rl.window))
	if len(recent) >= rl.limit {
		rl.history[ip] = recent
		return false
	}
	rl.history[ip] = append(recent, now)
	return true
}

func (rl *rateLimiter) gcLocked(now time.Time) {
	cutoff := now.Add(-rl.window)
	for ip, times := range rl.history {
		recent := pruneBefore(times, cutoff)
		if len(recent) == 0 {
			delete(rl.history, ip)
		} else {
			rl.history[ip] = recent
		}
	}
	rl.lastGC = now
}

func pruneBefore(times []time.Time, cutoff time.Time) []time.Time {
	var recent []time.Time
	for _, t := range times {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}
	return recent
}

// RateLimitMiddleware rejects requests over the per-IP budget with 429.
func RateLimitMiddleware(limiter *rateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			if !limiter.Allow(ip) {
				http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

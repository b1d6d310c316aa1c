package api

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/wizallet/wizallet-be/internal/models"
	"golang.org/x/time/rate"
)

// visitorLimiter holds one client's token bucket and its last use, so stale
// entries can be pruned.
type visitorLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a per-IP token bucket. It guards the credential
// endpoints against brute forcing; authenticated routes are not limited.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitorLimiter
	rate     rate.Limit
	burst    int
}

// NewRateLimiter creates a RateLimiter allowing r requests per second with the
// given burst per client IP.
func NewRateLimiter(r rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitorLimiter),
		rate:     r,
		burst:    burst,
	}
}

// Middleware rejects requests over the budget with a 429.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			apiErr := models.NewRateLimitedError()
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(apiErr.Status)
			json.NewEncoder(w).Encode(apiErr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[ip]
	if !ok {
		rl.prune()
		v = &visitorLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

// prune drops buckets idle long enough to have refilled completely. Caller
// must hold the mutex.
func (rl *RateLimiter) prune() {
	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, ip)
		}
	}
}

// clientIP extracts the client address. The RealIP middleware has already
// rewritten RemoteAddr when the request came through a proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"

	"github.com/juju/ratelimit"
)

// RateLimiter reparte un token bucket por cliente (usuario autenticado o IP).
type RateLimiter struct {
	rate     float64
	capacity int64

	mu      sync.Mutex
	clients map[string]*ratelimit.Bucket
}

func NewRateLimiter(rate float64, capacity int64) *RateLimiter {
	return &RateLimiter{
		rate:     rate,
		capacity: capacity,
		clients:  make(map[string]*ratelimit.Bucket),
	}
}

func (rl *RateLimiter) bucket(key string) *ratelimit.Bucket {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.clients[key]
	if !ok {
		b = ratelimit.NewBucketWithRate(rl.rate, rl.capacity)
		rl.clients[key] = b
	}
	return b
}

// Prune descarta buckets llenos (clientes inactivos). Devuelve cuántos quedan.
func (rl *RateLimiter) Prune() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for k, b := range rl.clients {
		if b.Available() == b.Capacity() {
			delete(rl.clients, k)
		}
	}
	return len(rl.clients)
}

// Limit consume un token por request y responde 429 si no hay.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b := rl.bucket(clientKey(r))

		w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(rl.capacity, 10))
		if b.TakeAvailable(1) < 1 {
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("Retry-After", "1")
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(b.Available(), 10))
		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	if c, ok := GetClaims(r.Context()); ok {
		return "user:" + c.UserID
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"cityinfo-api/internal/config"
	"cityinfo-api/internal/pkg/errors"
)

// sweepThreshold is the number of tracked clients above which expired
// windows are dropped.
const sweepThreshold = 10000

type window struct {
	count int
	reset time.Time
}

// RateLimiter applies a fixed-window request limit per client address.
type RateLimiter struct {
	limit   int
	period  time.Duration
	clients map[string]*window
	mu      sync.Mutex
	now     func() time.Time
}

func NewRateLimiter(cfg *config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		limit:   cfg.Requests,
		period:  cfg.Window,
		clients: make(map[string]*window),
		now:     time.Now,
	}
}

func (rl *RateLimiter) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.limit <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		allowed, remaining, reset := rl.take(clientIP(r))

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

		if !allowed {
			WriteError(w, errors.NewAPIError("RATE_LIMITED", "Rate limit exceeded. Please retry later.", http.StatusTooManyRequests))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) take(client string) (allowed bool, remaining int, reset time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if len(rl.clients) > sweepThreshold {
		for key, win := range rl.clients {
			if now.After(win.reset) {
				delete(rl.clients, key)
			}
		}
	}

	win, exists := rl.clients[client]
	if !exists || now.After(win.reset) {
		win = &window{reset: now.Add(rl.period)}
		rl.clients[client] = win
	}

	if win.count >= rl.limit {
		return false, 0, win.reset
	}
	win.count++
	return true, rl.limit - win.count, win.reset
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

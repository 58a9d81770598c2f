package router

import (
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/myrteametrics/goldenbatch-api/pkg/utils/httputil"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const staleLimiterTTL = 10 * time.Minute

// RateLimitConfig sets the budget granted to each client address.
// A zero RPS disables the limiter.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles the command endpoints per client address
type RateLimiter struct {
	config RateLimitConfig

	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter returns a new per client rate limiter
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.Burst < 1 {
		config.Burst = 1
	}
	return &RateLimiter{
		config:   config,
		limiters: make(map[string]*limiterEntry),
		now:      time.Now,
	}
}

// Handler is the chi middleware rejecting the requests above the client budget
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	if rl.config.RPS <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientAddr(r)
		if !rl.Allow(client) {
			zap.L().Warn("Rate limit exceeded", zap.String("client", client), zap.String("path", r.URL.Path))
			w.Header().Set("Retry-After", "1")
			httputil.Error(w, r, httputil.ErrAPITooManyRequests, errors.New("rate limit exceeded"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Allow reports whether the client identified by key may run one more command
func (rl *RateLimiter) Allow(key string) bool {
	if rl.config.RPS <= 0 {
		return true
	}
	return rl.limiter(key).Allow()
}

func (rl *RateLimiter) limiter(client string) *rate.Limiter {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) > staleLimiterTTL {
		for key, entry := range rl.limiters {
			if now.Sub(entry.lastSeen) > staleLimiterTTL {
				delete(rl.limiters, key)
			}
		}
		rl.lastSweep = now
	}

	if entry, ok := rl.limiters[client]; ok {
		entry.lastSeen = now
		return entry.limiter
	}
	entry := &limiterEntry{
		limiter:  rate.NewLimiter(rate.Limit(rl.config.RPS), rl.config.Burst),
		lastSeen: now,
	}
	rl.limiters[client] = entry
	return entry.limiter
}

// clientAddr strips the port of the remote address, which chi RealIP already rewrote from proxy headers
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

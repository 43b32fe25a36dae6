package server

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"
)

const (
	// cleanupThreshold is the map size above which idle clients are pruned
	cleanupThreshold = 500
	// maxIdleAge is how long a client may stay silent before it is pruned
	maxIdleAge = 10 * time.Minute
)

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientRateLimiter hands out one token bucket per client IP
type ClientRateLimiter struct {
	clients map[string]*clientEntry
	mu      sync.Mutex
	r       rate.Limit
	b       int
	clock   clockwork.Clock
}

// NewClientRateLimiter allows r requests per second with bursts of b per client
func NewClientRateLimiter(r rate.Limit, b int, clock clockwork.Clock) *ClientRateLimiter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ClientRateLimiter{
		clients: make(map[string]*clientEntry),
		r:       r,
		b:       b,
		clock:   clock,
	}
}

// Allow reports whether the client at ip may make a request now
func (l *ClientRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	if len(l.clients) > cleanupThreshold {
		cutoff := now.Add(-maxIdleAge)
		for k, e := range l.clients {
			if e.lastSeen.Before(cutoff) {
				delete(l.clients, k)
			}
		}
	}

	e, ok := l.clients[ip]
	if !ok {
		e = &clientEntry{limiter: rate.NewLimiter(l.r, l.b)}
		l.clients[ip] = e
	}
	e.lastSeen = now

	return e.limiter.AllowN(now, 1)
}

// RateLimit rejects clients that exceed their budget with 429
func RateLimit(limiter *ClientRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !limiter.Allow(ip) {
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

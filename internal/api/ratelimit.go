package api

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// clientLimiter enforces the per-client synthesis quota. Limiters are keyed
// by client IP and created on first use.
type clientLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// newClientLimiter creates a limiter allowing requests per window per client.
func newClientLimiter(requests int, window time.Duration) *clientLimiter {
	return &clientLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(float64(requests) / window.Seconds()),
		burst:    requests,
	}
}

// allow reports whether the client may make another request now.
func (c *clientLimiter) allow(clientKey string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.limiters[clientKey]
	if !ok {
		l = rate.NewLimiter(c.limit, c.burst)
		c.limiters[clientKey] = l
	}
	return l.Allow()
}

// clientKey derives the rate-limit key from the request's remote address.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

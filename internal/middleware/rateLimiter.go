package middleware

import (
	"sync"

	"golang.org/x/time/rate"

	"github.com/cone-one/ragchat/internal/config"
)

var limiterInstance = newIPRateLimiter(rate.Limit(config.RATE_LIMIT_PER_SECOND), config.BURST_RATE_LIMIT_PER_SECOND)

// ipRateLimiter hands out one token bucket per client IP. The map is reset
// once it crosses maxTrackedIPs, losing some rate state is cheaper than
// growing without bound.
type ipRateLimiter struct {
	mu        sync.Mutex
	ips       map[string]*rate.Limiter
	rateLimit rate.Limit
	burstRate int
}

const maxTrackedIPs = 10_000

func newIPRateLimiter(r rate.Limit, b int) *ipRateLimiter {
	return &ipRateLimiter{ips: make(map[string]*rate.Limiter), rateLimit: r, burstRate: b}
}

func (i *ipRateLimiter) limiterFor(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	if len(i.ips) >= maxTrackedIPs {
		i.ips = make(map[string]*rate.Limiter)
	}

	limiter, exists := i.ips[ip]
	if !exists {
		limiter = rate.NewLimiter(i.rateLimit, i.burstRate)
		i.ips[ip] = limiter
	}
	return limiter
}

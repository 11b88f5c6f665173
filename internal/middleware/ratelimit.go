package middleware

import (
	"net/http"
	"sync"

	"auditservice/internal/errmsg"
	"auditservice/internal/utils"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/time/rate"
)

// IPRateLimiter keeps one token bucket per client IP.
// TODO: evict buckets for IPs that have been idle longer than a refill period.
type IPRateLimiter struct {
	ips   map[string]*rate.Limiter
	mu    sync.RWMutex
	limit rate.Limit
	burst int
}

// NewIPRateLimiter allows limit events per second with bursts of burst.
func NewIPRateLimiter(limit rate.Limit, burst int) *IPRateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &IPRateLimiter{
		ips:   make(map[string]*rate.Limiter),
		limit: limit,
		burst: burst,
	}
}

func (l *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	l.mu.RLock()
	lim, ok := l.ips[ip]
	l.mu.RUnlock()
	if ok {
		return lim
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if lim, ok = l.ips[ip]; ok {
		return lim
	}
	lim = rate.NewLimiter(l.limit, l.burst)
	l.ips[ip] = lim
	return lim
}

// Allow spends one token from ip's bucket.
func (l *IPRateLimiter) Allow(ip string) bool {
	return l.getLimiter(ip).Allow()
}

// WriteRateLimit answers 429 when a client IP creates events faster than l
// allows. Reads are never limited. A nil limiter disables the check.
func WriteRateLimit(l *IPRateLimiter) fiber.Handler {
	return func(c fiber.Ctx) error {
		if l == nil || c.Method() != http.MethodPost {
			return c.Next()
		}
		if !l.Allow(c.IP()) {
			return utils.StatusError(c, errmsg.TooManyRequests)
		}
		return c.Next()
	}
}

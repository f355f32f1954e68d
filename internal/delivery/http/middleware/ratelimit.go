package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	h "eventrsvp/internal/delivery/http/helpers"

	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL    = 10 * time.Minute
	limiterMaxEntries = 10000
)

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// IPRateLimiter keeps one token bucket per client IP.
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	now      func() time.Time
}

// NewIPRateLimiter allows r requests per second per IP with bursts of b.
func NewIPRateLimiter(r float64, b int) *IPRateLimiter {
	return &IPRateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(r),
		burst:    b,
		now:      time.Now,
	}
}

func (l *IPRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.limiters[ip]
	if !ok {
		if len(l.limiters) >= limiterMaxEntries {
			l.sweep(now)
		}
		entry = &limiterEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastAccess = now
	return entry.limiter.AllowN(now, 1)
}

// sweep drops idle entries, or the least recently used one when none are idle.
func (l *IPRateLimiter) sweep(now time.Time) {
	var oldestIP string
	var oldest time.Time
	for ip, e := range l.limiters {
		if now.Sub(e.lastAccess) > limiterIdleTTL {
			delete(l.limiters, ip)
			continue
		}
		if oldestIP == "" || e.lastAccess.Before(oldest) {
			oldestIP, oldest = ip, e.lastAccess
		}
	}
	if len(l.limiters) >= limiterMaxEntries {
		delete(l.limiters, oldestIP)
	}
}

// Limit wraps next and answers 429 once the caller's bucket is empty.
func (l *IPRateLimiter) Limit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientIP(r)) {
			w.Header().Set("Retry-After", "1")
			h.WriteJSONError(w, http.StatusTooManyRequests, h.ErrCodeTooManyRequests, "rate limit exceeded")
			return
		}
		next(w, r)
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

package http

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"blog-api/internal/handler/http/pathutil"
	"blog-api/internal/handler/http/respond"
	"blog-api/internal/observability/logging"
	"blog-api/internal/observability/metrics"
)

// bucket is one client's token bucket.
type bucket struct {
	*rate.Limiter
	seen time.Time
}

// RateLimiter keeps a token bucket per client IP. It sits in front of the
// sign-up and sign-in endpoints.
type RateLimiter struct {
	every rate.Limit
	burst int

	// TrustProxyHeaders makes X-Forwarded-For and X-Real-IP identify the
	// client. Enable only behind a proxy that overwrites them.
	TrustProxyHeaders bool

	mu      sync.Mutex
	buckets map[string]*bucket
	idle    time.Duration
	swept   time.Time
	now     func() time.Time
}

// NewRateLimiter refills perMinute tokens a minute and holds at most burst.
// Non-positive arguments are raised to 1.
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	perMinute, burst = max(perMinute, 1), max(burst, 1)
	return &RateLimiter{
		every:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   burst,
		buckets: make(map[string]*bucket),
		idle:    10 * time.Minute,
		swept:   time.Now(),
		now:     time.Now,
	}
}

// Limit answers 429 with Retry-After once the caller's bucket is empty.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := ClientIP(r, rl.TrustProxyHeaders)
		wait, ok := rl.take(client)
		if ok {
			next.ServeHTTP(w, r)
			return
		}

		route := pathutil.NormalizePath(r.URL.Path)
		metrics.RecordRateLimited(route)
		logging.FromContext(r.Context()).Warn("rate limit exceeded",
			slog.String("client_ip", client),
			slog.String("path", route),
			slog.Duration("retry_after", wait))

		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		respond.JSON(w, http.StatusTooManyRequests, map[string]string{"error": "too many requests"})
	})
}

// take consumes a token for client, or reports the wait until one is available.
func (rl *RateLimiter) take(client string) (time.Duration, bool) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.sweep(now)
	b, ok := rl.buckets[client]
	if !ok {
		b = &bucket{Limiter: rate.NewLimiter(rl.every, rl.burst)}
		rl.buckets[client] = b
	}
	b.seen = now

	if b.AllowN(now, 1) {
		return 0, true
	}
	res := b.ReserveN(now, 1)
	wait := res.DelayFrom(now)
	res.CancelAt(now)
	return wait, false
}

// sweep forgets clients idle for rl.idle. It runs at most once per rl.idle.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.swept) < rl.idle {
		return
	}
	rl.swept = now
	for k, b := range rl.buckets {
		if now.Sub(b.seen) >= rl.idle {
			delete(rl.buckets, k)
		}
	}
}

func (rl *RateLimiter) tracked() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.buckets)
}

// ClientIP identifies the caller. With trustProxy the first address of
// X-Forwarded-For wins, then X-Real-IP; malformed values are skipped.
// Otherwise only RemoteAddr counts.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if first, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ","); first != "" {
			if addr, err := netip.ParseAddr(strings.TrimSpace(first)); err == nil {
				return addr.Unmap().String()
			}
		}
		if addr, err := netip.ParseAddr(strings.TrimSpace(r.Header.Get("X-Real-IP"))); err == nil {
			return addr.Unmap().String()
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

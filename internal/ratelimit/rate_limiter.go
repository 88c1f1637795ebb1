package ratelimit

import (
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/wameed/portal/internal/syncx"
	"github.com/wameed/portal/pkg/log"
	"golang.org/x/time/rate"
)

// RateLimiter throttles requests with one token bucket per client key.
// Buckets that refilled completely are forgotten on the next sweep, so the
// number of tracked clients is bounded by the clients seen during the time
// needed to refill a bucket.
type RateLimiter struct {
	rate    rate.Limit
	burst   int
	clients syncx.Map[string, *rate.Limiter]

	sweepInterval time.Duration
	lastSweep     atomic.Int64
	now           func() time.Time
}

type GetClientKeyFunc func(r *http.Request) (string, error)

// RemoteAddr keys clients by the host part of the request remote address.
func RemoteAddr(r *http.Request) (string, error) {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "", errors.Wrapf(err, "could not parse remote address '%s'", r.RemoteAddr)
	}

	return host, nil
}

func (l *RateLimiter) Allow(key string) bool {
	now := l.now()

	l.sweep(now)

	limiter, exists := l.clients.Load(key)
	if !exists {
		limiter, _ = l.clients.LoadOrStore(key, rate.NewLimiter(l.rate, l.burst))
	}

	return limiter.AllowN(now, 1)
}

// sweep forgets the limiters whose bucket is full: a new limiter would
// behave the same way.
func (l *RateLimiter) sweep(now time.Time) {
	last := l.lastSweep.Load()
	if now.UnixNano()-last < int64(l.sweepInterval) {
		return
	}

	if !l.lastSweep.CompareAndSwap(last, now.UnixNano()) {
		return
	}

	l.clients.Range(func(key string, limiter *rate.Limiter) bool {
		if limiter.TokensAt(now) >= float64(l.burst) {
			l.clients.Delete(key)
		}

		return true
	})
}

func (l *RateLimiter) Middleware(getClientKey GetClientKeyFunc) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			clientKey, err := getClientKey(r)
			if err != nil {
				slog.ErrorContext(ctx, "could not retrieve client key", log.Error(errors.WithStack(err)))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			if !l.Allow(clientKey) {
				slog.WarnContext(ctx, "rate limit exceeded", slog.String("client", clientKey))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func New(rate rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		rate:          rate,
		burst:         burst,
		sweepInterval: time.Minute,
		now:           time.Now,
	}
}

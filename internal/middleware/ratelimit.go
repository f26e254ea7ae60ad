// AngelaMos | 2026
// ratelimit.go

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/carterperez-dev/templates/storefront/internal/config"
	"github.com/carterperez-dev/templates/storefront/internal/core"
	"github.com/carterperez-dev/templates/storefront/internal/metrics"
)

const (
	DefaultBucket  = "default"
	AuthBucket     = "auth"
	CheckoutBucket = "checkout"

	keyPrefix = "storefront:rl:"
)

// Bucket is a named budget for the exact paths it lists. Every client IP
// gets its own allowance inside each bucket.
type Bucket struct {
	Name  string
	Paths []string
	Limit redis_rate.Limit
}

type RateLimitConfig struct {
	Default redis_rate.Limit
	Buckets []Bucket
	Logger  *slog.Logger
}

// LimitsFromConfig charges credential endpoints and checkout against their
// own buckets so browsing traffic cannot starve or mask them.
func LimitsFromConfig(cfg config.RateLimitConfig) RateLimitConfig {
	return RateLimitConfig{
		Default: Window(cfg.Requests, cfg.Burst, cfg.Window),
		Buckets: []Bucket{
			{
				Name: AuthBucket,
				Paths: []string{
					"/api/v1/auth/login",
					"/api/v1/auth/register",
					"/api/v1/auth/forgot-password",
				},
				Limit: Window(cfg.AuthRequests, cfg.AuthRequests, cfg.Window),
			},
			{
				Name:  CheckoutBucket,
				Paths: []string{"/api/v1/product/braintree/payment"},
				Limit: Window(cfg.CheckoutRequests, cfg.CheckoutRequests, cfg.Window),
			},
		},
	}
}

// RateLimiter keeps its counters in redis and decides in-process while
// redis is unreachable. A nil client means in-process only.
type RateLimiter struct {
	redis  *redis_rate.Limiter
	local  *localLimiter
	def    Bucket
	byPath map[string]Bucket
	logger *slog.Logger
}

func NewRateLimiter(rdb *redis.Client, cfg RateLimitConfig) *RateLimiter {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	rl := &RateLimiter{
		local:  newLocalLimiter(time.Now),
		def:    Bucket{Name: DefaultBucket, Limit: cfg.Default},
		byPath: make(map[string]Bucket),
		logger: logger,
	}
	if rdb != nil {
		rl.redis = redis_rate.NewLimiter(rdb)
	}

	for _, b := range cfg.Buckets {
		for _, p := range b.Paths {
			rl.byPath[strings.TrimSuffix(p, "/")] = b
		}
	}
	return rl
}

func (rl *RateLimiter) bucketFor(path string) Bucket {
	if b, ok := rl.byPath[strings.TrimSuffix(path, "/")]; ok {
		return b
	}
	return rl.def
}

// Handler skips CORS preflights, which are answered further down the chain
// without touching any handler.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		b := rl.bucketFor(r.URL.Path)
		res := rl.allow(r.Context(), keyPrefix+b.Name+":"+ClientIP(r), b.Limit)

		setRateLimitHeaders(w, res)

		if res.Allowed == 0 {
			metrics.RateLimited.WithLabelValues(b.Name).Inc()
			writeRateLimitExceeded(w, res.RetryAfter)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(
	ctx context.Context,
	key string,
	limit redis_rate.Limit,
) *redis_rate.Result {
	if rl.redis != nil {
		res, err := rl.redis.Allow(ctx, key, limit)
		if err == nil {
			return res
		}
		metrics.RateLimitFallbacks.Inc()
		rl.logger.Debug("rate limiter using local fallback",
			"key", key,
			"error", err,
		)
	}
	return rl.local.allow(key, limit)
}

// ClientIP prefers the last X-Forwarded-For hop, which is the one appended
// by the proxy in front of the API.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		if ip := strings.TrimSpace(hops[len(hops)-1]); ip != "" {
			return ip
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func setRateLimitHeaders(w http.ResponseWriter, res *redis_rate.Result) {
	h := w.Header()
	h.Set("RateLimit-Limit", strconv.Itoa(res.Limit.Rate))
	h.Set("RateLimit-Remaining", strconv.Itoa(res.Remaining))
	h.Set("RateLimit-Reset", strconv.Itoa(ceilSeconds(res.ResetAfter)))
	h.Set("RateLimit-Policy", fmt.Sprintf("%d;w=%d",
		res.Limit.Rate, int(res.Limit.Period.Seconds())))
}

func writeRateLimitExceeded(w http.ResponseWriter, retryAfter time.Duration) {
	w.Header().Set("Retry-After", strconv.Itoa(max(ceilSeconds(retryAfter), 1)))
	core.Fail(w, http.StatusTooManyRequests, "Too many requests, please try again later", nil)
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds()))
}

// Window builds a limit of n requests per period with room for burst at
// once. A zero burst allows the whole window at once.
func Window(n, burst int, period time.Duration) redis_rate.Limit {
	if period <= 0 {
		period = time.Minute
	}
	if burst <= 0 {
		burst = n
	}
	return redis_rate.Limit{Rate: n, Burst: burst, Period: period}
}

const localIdleTTL = 10 * time.Minute

type localEntry struct {
	limiter *rate.Limiter
	seen    time.Time
}

// localLimiter is a per-key token bucket. Idle keys are swept during
// allow calls, so no background goroutine outlives the limiter.
type localLimiter struct {
	mu        sync.Mutex
	entries   map[string]*localEntry
	lastSweep time.Time
	now       func() time.Time
}

func newLocalLimiter(now func() time.Time) *localLimiter {
	return &localLimiter{
		entries:   make(map[string]*localEntry),
		lastSweep: now(),
		now:       now,
	}
}

func (l *localLimiter) allow(key string, limit redis_rate.Limit) *redis_rate.Result {
	now := l.now()
	perSecond := float64(limit.Rate) / limit.Period.Seconds()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > localIdleTTL {
		for k, e := range l.entries {
			if now.Sub(e.seen) > localIdleTTL {
				delete(l.entries, k)
			}
		}
		l.lastSweep = now
	}

	e, ok := l.entries[key]
	if !ok {
		e = &localEntry{limiter: rate.NewLimiter(rate.Limit(perSecond), limit.Burst)}
		l.entries[key] = e
	}
	e.seen = now

	res := &redis_rate.Result{Limit: limit, RetryAfter: -1}
	if e.limiter.AllowN(now, 1) {
		res.Allowed = 1
	}

	tokens := e.limiter.TokensAt(now)
	res.Remaining = max(int(tokens), 0)
	res.ResetAfter = secondsFor(float64(limit.Burst)-tokens, perSecond)
	if res.Allowed == 0 {
		res.RetryAfter = secondsFor(1-tokens, perSecond)
	}
	return res
}

func secondsFor(tokens, perSecond float64) time.Duration {
	if tokens <= 0 || perSecond <= 0 {
		return 0
	}
	return time.Duration(tokens / perSecond * float64(time.Second))
}

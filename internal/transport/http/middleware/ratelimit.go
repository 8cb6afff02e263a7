package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"lexlaboral/internal/transport/http/api"
	"lexlaboral/internal/transport/http/shared"
)

type RateLimitKeyFunc func(r *http.Request) string

type RateLimitOption func(*rateLimiter)

// RateLimitStore counts hits per key inside a fixed window. Hit returns the
// count including this hit and the time left until the window resets.
type RateLimitStore interface {
	Hit(ctx context.Context, key string, window time.Duration) (int, time.Duration, error)
}

type rateLimiter struct {
	limit  int
	window time.Duration
	prefix string
	keyFn  RateLimitKeyFunc
	store  RateLimitStore
}

func WithKeyFunc(fn RateLimitKeyFunc) RateLimitOption {
	return func(rl *rateLimiter) {
		if fn != nil {
			rl.keyFn = fn
		}
	}
}

// WithStore shares counters through store, e.g. Redis across replicas.
func WithStore(store RateLimitStore) RateLimitOption {
	return func(rl *rateLimiter) {
		if store != nil {
			rl.store = store
		}
	}
}

func RateLimit(limit int, window time.Duration, opts ...RateLimitOption) func(http.Handler) http.Handler {
	rl := newRateLimiter("global", limit, window, actorOrIPKey)
	for _, opt := range opts {
		opt(rl)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.enforce(w, r) {
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SensitiveRateLimit adds tighter per-caller budgets on top of the global
// limit for endpoints that process or look up identity documents.
func SensitiveRateLimit(baseLimit int, window time.Duration, opts ...RateLimitOption) func(http.Handler) http.Handler {
	lookup := newRateLimiter("lookup", max(baseLimit/4, 1), window, actorOrIPKey)
	documents := newRateLimiter("documents", max(baseLimit/2, 1), window, actorOrIPKey)
	for _, opt := range opts {
		opt(lookup)
		opt(documents)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch sensitiveRateScope(r) {
			case sensitiveScopeLookup:
				if !lookup.enforce(w, r) {
					return
				}
			case sensitiveScopeDocuments:
				if !documents.enforce(w, r) {
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func actorOrIPKey(r *http.Request) string {
	if user, ok := GetUser(r.Context()); ok && user.UserID != "" {
		return "user:" + user.TenantID + ":" + user.UserID
	}
	return "ip:" + shared.ClientIP(r)
}

func newRateLimiter(prefix string, limit int, window time.Duration, keyFn RateLimitKeyFunc) *rateLimiter {
	if keyFn == nil {
		keyFn = actorOrIPKey
	}
	return &rateLimiter{
		limit:  limit,
		window: window,
		prefix: prefix,
		keyFn:  keyFn,
		store:  NewMemoryRateLimitStore(),
	}
}

func (rl *rateLimiter) enforce(w http.ResponseWriter, r *http.Request) bool {
	if rl.limit <= 0 {
		return true
	}

	key := rl.keyFn(r)
	if key == "" {
		key = "ip:" + shared.ClientIP(r)
	}
	count, resetIn, err := rl.store.Hit(r.Context(), rl.prefix+":"+key, rl.window)
	if err != nil {
		slog.Warn("rate limit store failed, allowing request", "key", key, "err", err)
		return true
	}
	remaining := rl.limit - count
	resetSec := durationSeconds(resetIn)

	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(remaining, 0)))
	w.Header().Set("X-RateLimit-Reset", strconv.Itoa(resetSec))

	if count > rl.limit {
		w.Header().Set("Retry-After", strconv.Itoa(max(resetSec, 1)))
		slog.Warn("rate limit exceeded",
			"key", key,
			"scope", rl.prefix,
			"path", r.URL.Path,
			"method", r.Method,
			"limit", rl.limit,
			"windowSec", int(rl.window.Seconds()),
		)
		api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
		return false
	}
	return true
}

type rateBucket struct {
	count int
	reset time.Time
}

type MemoryRateLimitStore struct {
	mu      sync.Mutex
	clients map[string]*rateBucket
	now     func() time.Time
}

func NewMemoryRateLimitStore() *MemoryRateLimitStore {
	return &MemoryRateLimitStore{clients: map[string]*rateBucket{}, now: time.Now}
}

func (s *MemoryRateLimitStore) Hit(_ context.Context, key string, window time.Duration) (int, time.Duration, error) {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.clients[key]
	if !ok || now.After(bucket.reset) {
		s.sweep(now)
		bucket = &rateBucket{reset: now.Add(window)}
		s.clients[key] = bucket
	}
	bucket.count++
	return bucket.count, bucket.reset.Sub(now), nil
}

// sweep drops expired buckets so idle clients do not accumulate.
func (s *MemoryRateLimitStore) sweep(now time.Time) {
	for key, bucket := range s.clients {
		if now.After(bucket.reset) {
			delete(s.clients, key)
		}
	}
}

func durationSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	seconds := int(d.Seconds())
	if seconds <= 0 {
		return 1
	}
	return seconds
}

type sensitiveScope string

const (
	sensitiveScopeNone      sensitiveScope = ""
	sensitiveScopeLookup    sensitiveScope = "lookup"
	sensitiveScopeDocuments sensitiveScope = "documents"
)

func sensitiveRateScope(r *http.Request) sensitiveScope {
	if r == nil || r.Method != http.MethodPost {
		return sensitiveScopeNone
	}
	switch normalizedAPIPath(r.URL.Path) {
	case "/identity/lookup":
		return sensitiveScopeLookup
	case "/identity/extract", "/identity/combine", "/identity/validate":
		return sensitiveScopeDocuments
	}
	return sensitiveScopeNone
}

func normalizedAPIPath(path string) string {
	cleaned := strings.TrimSpace(path)
	cleaned = strings.TrimPrefix(cleaned, "/api/v1")
	cleaned = strings.TrimSuffix(cleaned, "/")
	if cleaned == "" {
		return "/"
	}
	if !strings.HasPrefix(cleaned, "/") {
		return "/" + cleaned
	}
	return cleaned
}

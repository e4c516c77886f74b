package api

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

const (
	// RequestIDHeader carries the request id in both directions
	RequestIDHeader = "X-Request-Id"

	// cleanupThreshold is the minimum map size before a cleanup pass runs.
	cleanupThreshold = 500
	// maxIdleAge is the duration after which an idle bucket is forgotten.
	maxIdleAge = 10 * time.Minute
)

// requestID echoes an incoming request id or assigns a new one
func (h *Handler) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = h.uuid.NewUUID()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// observe logs each request and records its latency against the matched
// route pattern, not the raw path.
func (h *Handler) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		h.metrics.ObserveRequest(r.Method, route, status, elapsed)
		h.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", elapsed,
			"request_id", w.Header().Get(RequestIDHeader),
		)
	})
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// SubmitLimiter keeps one token bucket per round and client address, so a
// client flooding one round can still answer another. Single and batch
// submissions to the same round share a bucket.
type SubmitLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

// NewSubmitLimiter creates a limiter refilling at limit tokens per second
func NewSubmitLimiter(limit rate.Limit, burst int) *SubmitLimiter {
	return &SubmitLimiter{
		buckets: make(map[string]*bucket),
		limit:   limit,
		burst:   burst,
		now:     time.Now,
	}
}

// Reserve takes a token for the round and client. When none is available it
// returns false and how long until one will be.
func (l *SubmitLimiter) Reserve(roundID, client string) (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.buckets) > cleanupThreshold {
		cutoff := now.Add(-maxIdleAge)
		for key, b := range l.buckets {
			if b.lastSeen.Before(cutoff) {
				delete(l.buckets, key)
			}
		}
	}

	key := roundID + "|" + client
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now

	res := b.limiter.ReserveN(now, 1)
	if !res.OK() {
		return maxIdleAge, false
	}
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return delay, false
	}
	return 0, true
}

// limitSubmissions answers 429 with a Retry-After header once a client runs
// out of tokens for the round in the path
func (h *Handler) limitSubmissions(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			client = r.RemoteAddr
		}
		roundID := chi.URLParam(r, "roundID")

		wait, ok := h.limiter.Reserve(roundID, client)
		if !ok {
			seconds := int(math.Ceil(wait.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			h.logger.WarnContext(r.Context(), "submission rate limited",
				"round_id", roundID,
				"client", client,
				"retry_after", seconds,
			)
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
			writeJSON(w, http.StatusTooManyRequests, &errorBody{
				Error:   "rate_limited",
				Message: fmt.Sprintf("too many submissions to round %s, retry in %ds", roundID, seconds),
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

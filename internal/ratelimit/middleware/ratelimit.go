// Package middleware enforces the rate limiter at the HTTP boundary.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"tempus/internal/platform/metrics"
	"tempus/internal/ratelimit/models"
	dErrors "tempus/pkg/domain-errors"
	"tempus/pkg/platform/httputil"
	"tempus/pkg/requestcontext"
)

// RateLimiter is the slice of the limiter the middleware consumes.
type RateLimiter interface {
	Check(ctx context.Context, identity string, class models.EndpointClass) (*models.RateLimitResult, error)
}

// Middleware throttles requests per endpoint class.
type Middleware struct {
	limiter  RateLimiter
	logger   *slog.Logger
	metrics  *metrics.Metrics
	disabled bool
}

// Option configures the Middleware.
type Option func(*Middleware)

// WithDisabled disables rate limiting entirely (for testing/demo mode).
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(mx *metrics.Metrics) Option {
	return func(m *Middleware) {
		m.metrics = mx
	}
}

// New builds the middleware.
func New(limiter RateLimiter, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{
		limiter: limiter,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.disabled {
		logger.Info("rate limiting disabled")
	}
	return m
}

// RateLimit throttles the wrapped handler under the given class budget.
// Authenticated callers are keyed by client ID so one client cannot starve
// another behind the same NAT; anonymous callers are keyed by IP.
//
// A limiter backend failure admits the request: degraded throttling beats
// a hard outage.
func (m *Middleware) RateLimit(class models.EndpointClass) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.disabled {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			identity := Identity(ctx)

			result, err := m.limiter.Check(ctx, identity, class)
			if err != nil {
				m.logger.ErrorContext(ctx, "rate limit check failed, admitting request",
					"error", err,
					"class", class,
					"request_id", requestcontext.RequestID(ctx),
				)
				if m.metrics != nil {
					m.metrics.RateLimitFailOpen.Inc()
				}
				next.ServeHTTP(w, r)
				return
			}

			addRateLimitHeaders(w, result)

			if !result.Allowed {
				if m.metrics != nil {
					m.metrics.IncRateLimit(class.String(), "denied")
				}
				m.logger.WarnContext(ctx, "rate limit exceeded",
					"class", class,
					"identity", identity,
					"request_id", requestcontext.RequestID(ctx),
				)
				w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
				httputil.WriteError(w, dErrors.New(dErrors.CodeTooManyRequests, "rate limit exceeded"))
				return
			}

			if m.metrics != nil {
				m.metrics.IncRateLimit(class.String(), "allowed")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Identity resolves the throttling identity for a request context.
func Identity(ctx context.Context) string {
	if clientID := requestcontext.ClientID(ctx); clientID != "" {
		return clientID
	}
	if ip := requestcontext.ClientIP(ctx); ip != "" {
		return ip
	}
	return "unknown"
}

func addRateLimitHeaders(w http.ResponseWriter, result *models.RateLimitResult) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

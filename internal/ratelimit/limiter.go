// Package ratelimit throttles callers per endpoint class over a sliding
// window. Identities are the authenticated client ID when present,
// otherwise the client IP.
package ratelimit

import (
	"context"
	"time"

	"tempus/internal/ratelimit/models"
)

// BucketStore is the persistence the limiter needs. Memory and Redis
// implementations live in store/bucket.
type BucketStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error)
	Reset(ctx context.Context, key string) error
	GetCurrentCount(ctx context.Context, key string, window time.Duration) (int, error)
}

// Limiter applies per-class budgets to caller identities.
type Limiter struct {
	store  BucketStore
	limits models.Limits
}

// NewLimiter builds a limiter over the given store and budgets.
func NewLimiter(store BucketStore, limits models.Limits) *Limiter {
	return &Limiter{store: store, limits: limits}
}

// Check consumes one request from the identity's budget for the class.
func (l *Limiter) Check(ctx context.Context, identity string, class models.EndpointClass) (*models.RateLimitResult, error) {
	limit := l.limits.For(class)
	key := models.BucketKey(class, identity)
	return l.store.Allow(ctx, key, limit.Requests, limit.Window)
}

// Status reports the identity's consumption across all classes without
// consuming anything. Serves the admin status endpoint.
func (l *Limiter) Status(ctx context.Context, identity string) ([]models.ClassStatus, error) {
	statuses := make([]models.ClassStatus, 0, len(models.Classes()))
	for _, class := range models.Classes() {
		limit := l.limits.For(class)
		key := models.BucketKey(class, identity)

		used, err := l.store.GetCurrentCount(ctx, key, limit.Window)
		if err != nil {
			return nil, err
		}

		remaining := limit.Requests - used
		if remaining < 0 {
			remaining = 0
		}
		statuses = append(statuses, models.ClassStatus{
			Class:     class,
			Limit:     limit.Requests,
			WindowSec: int(limit.Window / time.Second),
			Used:      used,
			Remaining: remaining,
		})
	}
	return statuses, nil
}

// Reset clears the identity's budget for one class. Admin escape hatch.
func (l *Limiter) Reset(ctx context.Context, identity string, class models.EndpointClass) error {
	return l.store.Reset(ctx, models.BucketKey(class, identity))
}

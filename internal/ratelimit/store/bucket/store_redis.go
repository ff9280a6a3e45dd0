package bucket

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"tempus/internal/ratelimit/models"
)

// RedisBucketStore implements the sliding window over a Redis sorted set
// per key: member = unique request ID, score = arrival time in
// nanoseconds. All replicas share one view of each bucket.
type RedisBucketStore struct {
	client redis.Cmdable
}

// NewRedisBucketStore creates a Redis-backed bucket store.
func NewRedisBucketStore(client redis.Cmdable) *RedisBucketStore {
	return &RedisBucketStore{client: client}
}

// Allow checks if a request is allowed and increments the counter.
func (s *RedisBucketStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error) {
	return s.AllowN(ctx, key, 1, limit, window)
}

// AllowN checks if a request costing 'cost' tokens is allowed.
//
// Two round trips: trim-and-count, then add-and-expire when admitted.
// Between them a concurrent request can admit past the limit by at most
// the number of in-flight checks, which is acceptable slack for request
// throttling.
func (s *RedisBucketStore) AllowN(ctx context.Context, key string, cost, limit int, window time.Duration) (*models.RateLimitResult, error) {
	now := time.Now()
	cutoff := now.Add(-window).UnixNano()

	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(cutoff, 10))
	countCmd := pipe.ZCard(ctx, key)
	oldestCmd := pipe.ZRangeWithScores(ctx, key, 0, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("ratelimit trim %s: %w", key, err)
	}

	count := int(countCmd.Val())
	resetAt := resetFromOldest(oldestCmd.Val(), now, window)

	if count+cost > limit {
		return &models.RateLimitResult{
			Allowed:    false,
			Limit:      limit,
			Remaining:  0,
			ResetAt:    resetAt,
			RetryAfter: retryAfterSeconds(now, resetAt),
		}, nil
	}

	members := make([]redis.Z, cost)
	for i := range members {
		members[i] = redis.Z{
			Score:  float64(now.UnixNano()),
			Member: uuid.NewString(),
		}
	}

	add := s.client.TxPipeline()
	add.ZAdd(ctx, key, members...)
	add.Expire(ctx, key, window)
	if _, err := add.Exec(ctx); err != nil {
		return nil, fmt.Errorf("ratelimit add %s: %w", key, err)
	}

	if count == 0 {
		resetAt = now.Add(window)
	}
	return &models.RateLimitResult{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - count - cost,
		ResetAt:   resetAt,
	}, nil
}

// Reset clears the rate limit counter for a key.
func (s *RedisBucketStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("ratelimit reset %s: %w", key, err)
	}
	return nil
}

// GetCurrentCount returns the request count within the window for a key.
func (s *RedisBucketStore) GetCurrentCount(ctx context.Context, key string, window time.Duration) (int, error) {
	now := time.Now()
	cutoff := now.Add(-window).UnixNano()

	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(cutoff, 10))
	countCmd := pipe.ZCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("ratelimit count %s: %w", key, err)
	}
	return int(countCmd.Val()), nil
}

func resetFromOldest(oldest []redis.Z, now time.Time, window time.Duration) time.Time {
	if len(oldest) == 0 {
		return now.Add(window)
	}
	return time.Unix(0, int64(oldest[0].Score)).Add(window)
}

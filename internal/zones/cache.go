package zones

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"tempus/internal/platform/metrics"
)

// CachedProvider is a Redis read-through decorator: hits serve from the
// cache, misses consult the upstream provider and populate the cache
// with the configured TTL. Redis trouble degrades to the upstream
// instead of failing the lookup.
//
// Keys carry the lookup hour, so a zone whose offset shifts mid-day
// (daylight saving) gets a fresh entry once the hour rolls over even if
// the TTL has not expired.
type CachedProvider struct {
	upstream Provider
	client   redis.Cmdable
	ttl      time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewCachedProvider wraps upstream with a Redis cache. logger and m may
// be nil.
func NewCachedProvider(upstream Provider, client redis.Cmdable, ttl time.Duration, logger *slog.Logger, m *metrics.Metrics) *CachedProvider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CachedProvider{
		upstream: upstream,
		client:   client,
		ttl:      ttl,
		logger:   logger,
		metrics:  m,
	}
}

// cacheKey buckets lookups by hour. Colons separate key segments, so
// they are stripped from the zone name.
func cacheKey(name string, at time.Time) string {
	segment := strings.ReplaceAll(name, ":", "_")
	return fmt.Sprintf("zones:%s:%d", segment, at.UTC().Truncate(time.Hour).Unix())
}

func (p *CachedProvider) Resolve(ctx context.Context, name string, at time.Time) (Zone, error) {
	key := cacheKey(name, at)

	cached, err := p.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		var zone Zone
		if jsonErr := json.Unmarshal([]byte(cached), &zone); jsonErr == nil {
			if p.metrics != nil {
				p.metrics.IncZoneLookup("cache")
			}
			return zone, nil
		}
		// Undecodable entry: fall through and overwrite it.
		p.logger.WarnContext(ctx, "discarding corrupt zone cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		p.logger.WarnContext(ctx, "zone cache read failed", "key", key, "error", err)
	}

	zone, err := p.upstream.Resolve(ctx, name, at)
	if err != nil {
		return Zone{}, err
	}

	payload, err := json.Marshal(zone)
	if err != nil {
		return zone, nil
	}
	if err := p.client.Set(ctx, key, payload, p.ttl).Err(); err != nil {
		p.logger.WarnContext(ctx, "zone cache write failed", "key", key, "error", err)
	}
	return zone, nil
}

//go:build integration

package zones_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"tempus/internal/zones"
	dErrors "tempus/pkg/domain-errors"
	"tempus/pkg/testutil/containers"
)

// countingProvider wraps a static answer and counts upstream hits.
type countingProvider struct {
	zone  zones.Zone
	err   error
	calls int
}

func (c *countingProvider) Resolve(context.Context, string, time.Time) (zones.Zone, error) {
	c.calls++
	if c.err != nil {
		return zones.Zone{}, c.err
	}
	return c.zone, nil
}

type ZoneCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
}

func TestZoneCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ZoneCacheSuite))
}

func (s *ZoneCacheSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
}

func (s *ZoneCacheSuite) SetupTest() {
	err := s.redis.FlushAll(context.Background())
	s.Require().NoError(err)
}

func (s *ZoneCacheSuite) TestMissConsultsUpstreamOnce() {
	ctx := context.Background()
	at := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)

	upstream := &countingProvider{zone: zones.Zone{Name: "Europe/Paris", OffsetSeconds: 7200}}
	cached := zones.NewCachedProvider(upstream, s.redis.Client, 5*time.Minute, nil, nil)

	for range 3 {
		zone, err := cached.Resolve(ctx, "Europe/Paris", at)
		s.Require().NoError(err)
		s.Equal(7200, zone.OffsetSeconds)
	}

	s.Equal(1, upstream.calls, "repeat lookups serve from cache")
}

func (s *ZoneCacheSuite) TestHourBucketsAreSeparate() {
	ctx := context.Background()

	upstream := &countingProvider{zone: zones.Zone{Name: "Europe/Paris", OffsetSeconds: 7200}}
	cached := zones.NewCachedProvider(upstream, s.redis.Client, time.Hour, nil, nil)

	_, err := cached.Resolve(ctx, "Europe/Paris", time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC))
	s.Require().NoError(err)
	_, err = cached.Resolve(ctx, "Europe/Paris", time.Date(2024, 6, 1, 13, 30, 0, 0, time.UTC))
	s.Require().NoError(err)

	s.Equal(2, upstream.calls, "a new hour gets a fresh resolver answer")
}

func (s *ZoneCacheSuite) TestTTLEviction() {
	ctx := context.Background()
	at := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)

	upstream := &countingProvider{zone: zones.Zone{Name: "Europe/Paris", OffsetSeconds: 7200}}
	cached := zones.NewCachedProvider(upstream, s.redis.Client, 50*time.Millisecond, nil, nil)

	_, err := cached.Resolve(ctx, "Europe/Paris", at)
	s.Require().NoError(err)

	time.Sleep(90 * time.Millisecond)

	_, err = cached.Resolve(ctx, "Europe/Paris", at)
	s.Require().NoError(err)
	s.Equal(2, upstream.calls, "expired entries consult upstream again")
}

func (s *ZoneCacheSuite) TestUpstreamErrorNotCached() {
	ctx := context.Background()
	at := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)

	upstream := &countingProvider{err: dErrors.New(dErrors.CodeNotFound, "unknown zone")}
	cached := zones.NewCachedProvider(upstream, s.redis.Client, 5*time.Minute, nil, nil)

	_, err := cached.Resolve(ctx, "Mars/Olympus", at)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	_, err = cached.Resolve(ctx, "Mars/Olympus", at)
	s.Require().Error(err)
	s.Equal(2, upstream.calls, "errors are never cached")
}

func (s *ZoneCacheSuite) TestCorruptEntryOverwritten() {
	ctx := context.Background()
	at := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)

	upstream := &countingProvider{zone: zones.Zone{Name: "Europe/Paris", OffsetSeconds: 7200}}
	cached := zones.NewCachedProvider(upstream, s.redis.Client, 5*time.Minute, nil, nil)

	// Seed the exact key with garbage.
	_, err := cached.Resolve(ctx, "Europe/Paris", at)
	s.Require().NoError(err)

	keys, err := s.redis.Client.Keys(ctx, "zones:*").Result()
	s.Require().NoError(err)
	s.Require().Len(keys, 1)
	s.Require().NoError(s.redis.Client.Set(ctx, keys[0], "not json", 5*time.Minute).Err())

	zone, err := cached.Resolve(ctx, "Europe/Paris", at)
	s.Require().NoError(err)
	s.Equal(7200, zone.OffsetSeconds)
	s.Equal(2, upstream.calls, "corrupt entries fall through to upstream")

	// And the overwrite healed the entry.
	_, err = cached.Resolve(ctx, "Europe/Paris", at)
	s.Require().NoError(err)
	s.Equal(2, upstream.calls)
}

package bucket

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	testLimit  = 10
	testWindow = time.Minute
)

type InMemoryBucketStoreSuite struct {
	suite.Suite
	store *InMemoryBucketStore
	ctx   context.Context
}

func TestInMemoryBucketStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryBucketStoreSuite))
}

func (s *InMemoryBucketStoreSuite) SetupTest() {
	s.store = NewInMemoryBucketStore()
	s.ctx = context.Background()
}

func (s *InMemoryBucketStoreSuite) TestAllow() {
	s.Run("first request allowed", func() {
		result, err := s.store.Allow(s.ctx, "ratelimit:compute:first", testLimit, testWindow)
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(testLimit, result.Limit)
		s.Equal(testLimit-1, result.Remaining)
	})

	s.Run("requests up to limit allowed", func() {
		var last bool
		var remaining int
		for range testLimit {
			result, err := s.store.Allow(s.ctx, "ratelimit:compute:full", testLimit, testWindow)
			s.Require().NoError(err)
			last = result.Allowed
			remaining = result.Remaining
		}
		s.True(last)
		s.Equal(0, remaining)
	})

	s.Run("request over limit denied with retry hint", func() {
		for range testLimit {
			_, err := s.store.Allow(s.ctx, "ratelimit:compute:over", testLimit, testWindow)
			s.Require().NoError(err)
		}
		result, err := s.store.Allow(s.ctx, "ratelimit:compute:over", testLimit, testWindow)
		s.Require().NoError(err)
		s.False(result.Allowed)
		s.Equal(0, result.Remaining)
		s.Equal(testLimit, result.Limit)
		s.Positive(result.RetryAfter)
		s.False(result.ResetAt.IsZero())
	})

	s.Run("expired timestamps free the budget", func() {
		key := "ratelimit:compute:expired"
		for range testLimit {
			_, err := s.store.Allow(s.ctx, key, testLimit, testWindow)
			s.Require().NoError(err)
		}

		// Age every recorded request past the window.
		s.store.mu.Lock()
		sw := s.store.buckets[key]
		for i := range sw.timestamps {
			sw.timestamps[i] = sw.timestamps[i].Add(-2 * testWindow)
		}
		s.store.mu.Unlock()

		result, err := s.store.Allow(s.ctx, key, testLimit, testWindow)
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(testLimit-1, result.Remaining)
	})
}

func (s *InMemoryBucketStoreSuite) TestAllowN() {
	s.Run("cost of five consumes five tokens", func() {
		result, err := s.store.AllowN(s.ctx, "ratelimit:compute:five", 5, testLimit, testWindow)
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(5, result.Remaining)
	})

	s.Run("cost greater than remaining denied without partial spend", func() {
		key := "ratelimit:compute:partial"
		first, err := s.store.AllowN(s.ctx, key, 7, testLimit, testWindow)
		s.Require().NoError(err)
		s.Require().True(first.Allowed)

		denied, err := s.store.AllowN(s.ctx, key, 4, testLimit, testWindow)
		s.Require().NoError(err)
		s.False(denied.Allowed)

		count, err := s.store.GetCurrentCount(s.ctx, key, testWindow)
		s.Require().NoError(err)
		s.Equal(7, count, "denied requests must not consume tokens")
	})
}

func (s *InMemoryBucketStoreSuite) TestReset() {
	key := "ratelimit:admin:reset"
	_, err := s.store.AllowN(s.ctx, key, 5, testLimit, testWindow)
	s.Require().NoError(err)

	s.Require().NoError(s.store.Reset(s.ctx, key))

	count, err := s.store.GetCurrentCount(s.ctx, key, testWindow)
	s.Require().NoError(err)
	s.Equal(0, count)
}

func (s *InMemoryBucketStoreSuite) TestGetCurrentCount() {
	s.Run("unknown key counts zero", func() {
		count, err := s.store.GetCurrentCount(s.ctx, "ratelimit:read:nobody", testWindow)
		s.Require().NoError(err)
		s.Equal(0, count)
	})

	s.Run("keys are isolated", func() {
		_, err := s.store.Allow(s.ctx, "ratelimit:read:a", testLimit, testWindow)
		s.Require().NoError(err)
		_, err = s.store.Allow(s.ctx, "ratelimit:read:a", testLimit, testWindow)
		s.Require().NoError(err)
		_, err = s.store.Allow(s.ctx, "ratelimit:read:b", testLimit, testWindow)
		s.Require().NoError(err)

		countA, err := s.store.GetCurrentCount(s.ctx, "ratelimit:read:a", testWindow)
		s.Require().NoError(err)
		countB, err := s.store.GetCurrentCount(s.ctx, "ratelimit:read:b", testWindow)
		s.Require().NoError(err)
		s.Equal(2, countA)
		s.Equal(1, countB)
	})
}

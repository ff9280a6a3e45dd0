//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	txcontext "tempus/pkg/platform/tx"
	"tempus/pkg/platform/usage"
	"tempus/pkg/platform/usage/store/postgres"
	"tempus/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *postgres.Store
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = postgres.New(s.postgres.DB)

	err := s.store.EnsureSchema(context.Background())
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	err := s.postgres.TruncateTables(ctx, "usage_outbox", "usage_events")
	s.Require().NoError(err)
}

func testEvent(clientID, operation string) usage.Event {
	return usage.Event{
		ID:        uuid.New(),
		Timestamp: time.Now().UTC().Truncate(time.Microsecond),
		RequestID: uuid.NewString(),
		ClientID:  clientID,
		Operation: operation,
		Outcome:   usage.OutcomeOK,
	}
}

func (s *PostgresStoreSuite) TestAppendWritesOutbox() {
	ctx := context.Background()
	event := testEvent("acme", usage.OpPlus)

	err := s.store.Append(ctx, event)
	s.Require().NoError(err)

	var (
		aggregateType string
		aggregateID   string
		eventType     string
	)
	row := s.postgres.DB.QueryRowContext(ctx,
		`SELECT aggregate_type, aggregate_id, event_type FROM usage_outbox`)
	s.Require().NoError(row.Scan(&aggregateType, &aggregateID, &eventType))

	s.Equal("client", aggregateType)
	s.Equal("acme", aggregateID)
	s.Equal(usage.OpPlus, eventType)
}

func (s *PostgresStoreSuite) TestAppendAnonymousAggregatesByEvent() {
	ctx := context.Background()
	event := testEvent("", usage.OpNow)

	err := s.store.Append(ctx, event)
	s.Require().NoError(err)

	var (
		aggregateType string
		aggregateID   string
	)
	row := s.postgres.DB.QueryRowContext(ctx,
		`SELECT aggregate_type, aggregate_id FROM usage_outbox`)
	s.Require().NoError(row.Scan(&aggregateType, &aggregateID))

	s.Equal("usage", aggregateType)
	s.Equal(event.ID.String(), aggregateID)
}

// TestAppendJoinsAmbientTransaction verifies that an outbox write inside
// a caller's transaction commits and rolls back with it.
func (s *PostgresStoreSuite) TestAppendJoinsAmbientTransaction() {
	ctx := context.Background()

	tx, err := s.postgres.DB.BeginTx(ctx, nil)
	s.Require().NoError(err)

	err = s.store.Append(txcontext.WithTx(ctx, tx), testEvent("acme", usage.OpMinus))
	s.Require().NoError(err)
	s.Require().NoError(tx.Rollback())

	s.Equal(0, s.countOutbox(), "rolled-back append must leave no row")

	tx, err = s.postgres.DB.BeginTx(ctx, nil)
	s.Require().NoError(err)

	err = s.store.Append(txcontext.WithTx(ctx, tx), testEvent("acme", usage.OpMinus))
	s.Require().NoError(err)
	s.Require().NoError(tx.Commit())

	s.Equal(1, s.countOutbox())
}

func (s *PostgresStoreSuite) TestAppendWithIDIsIdempotent() {
	ctx := context.Background()
	event := testEvent("acme", usage.OpUntil)

	err := s.store.AppendWithID(ctx, event.ID, event)
	s.Require().NoError(err)
	err = s.store.AppendWithID(ctx, event.ID, event)
	s.Require().NoError(err, "duplicate insert must be a no-op")

	events, err := s.store.ListRecent(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(event.ID, events[0].ID)
	s.Equal(usage.OpUntil, events[0].Operation)
}

func (s *PostgresStoreSuite) TestListRecentNewestFirst() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Microsecond)

	for i := range 3 {
		event := testEvent("acme", usage.OpWith)
		event.Timestamp = base.Add(time.Duration(i) * time.Second)
		s.Require().NoError(s.store.AppendWithID(ctx, event.ID, event))
	}

	events, err := s.store.ListRecent(ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.True(events[0].Timestamp.After(events[1].Timestamp), "newest first")
	s.Equal(base.Add(2*time.Second), events[0].Timestamp)
}

func (s *PostgresStoreSuite) TestListByClient() {
	ctx := context.Background()

	for _, client := range []string{"acme", "acme", "globex"} {
		event := testEvent(client, usage.OpRoll)
		s.Require().NoError(s.store.AppendWithID(ctx, event.ID, event))
	}

	events, err := s.store.ListByClient(ctx, "acme", 10)
	s.Require().NoError(err)
	s.Len(events, 2)
	for _, event := range events {
		s.Equal("acme", event.ClientID)
	}
}

// TestConcurrentAppend verifies that concurrent outbox writes neither
// fail nor lose rows.
func (s *PostgresStoreSuite) TestConcurrentAppend() {
	ctx := context.Background()
	const goroutines = 50

	var wg sync.WaitGroup
	var successCount atomic.Int32

	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.store.Append(ctx, testEvent("acme", usage.OpPlus)); err == nil {
				successCount.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(goroutines), successCount.Load(), "all concurrent appends should succeed")
	s.Equal(goroutines, s.countOutbox())
}

func (s *PostgresStoreSuite) countOutbox() int {
	var count int
	row := s.postgres.DB.QueryRow(`SELECT count(*) FROM usage_outbox`)
	s.Require().NoError(row.Scan(&count))
	return count
}

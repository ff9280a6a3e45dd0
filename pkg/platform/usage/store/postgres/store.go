package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	txcontext "tempus/pkg/platform/tx"
	"tempus/pkg/platform/usage"
)

// Schema holds the DDL for the usage tables. The service applies it at
// boot via EnsureSchema; integration tests apply it against throwaway
// containers. usage_outbox feeds the Kafka relay, usage_events
// materializes events for the admin API.
const Schema = `
CREATE TABLE IF NOT EXISTS usage_outbox (
	id             UUID PRIMARY KEY,
	aggregate_type TEXT        NOT NULL,
	aggregate_id   TEXT        NOT NULL,
	event_type     TEXT        NOT NULL,
	payload        JSONB       NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	published_at   TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS usage_outbox_unpublished_idx
	ON usage_outbox (created_at)
	WHERE published_at IS NULL;

CREATE TABLE IF NOT EXISTS usage_events (
	id          UUID PRIMARY KEY,
	occurred_at TIMESTAMPTZ NOT NULL,
	request_id  TEXT        NOT NULL DEFAULT '',
	client_id   TEXT        NOT NULL DEFAULT '',
	client_ip   TEXT        NOT NULL DEFAULT '',
	user_agent  TEXT        NOT NULL DEFAULT '',
	operation   TEXT        NOT NULL,
	chronology  TEXT        NOT NULL DEFAULT '',
	field       TEXT        NOT NULL DEFAULT '',
	unit        TEXT        NOT NULL DEFAULT '',
	zone        TEXT        NOT NULL DEFAULT '',
	outcome     TEXT        NOT NULL,
	error_code  TEXT        NOT NULL DEFAULT '',
	duration_ms BIGINT      NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS usage_events_occurred_at_idx
	ON usage_events (occurred_at DESC);
`

// Store implements usage.Sink using the transactional outbox pattern.
// Append writes to the outbox table only; the relay worker publishes
// outbox rows to Kafka and AppendWithID materializes events into
// usage_events for querying.
type Store struct {
	db *sql.DB
}

// New creates a PostgreSQL usage store that writes to the outbox.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the usage tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure usage schema: %w", err)
	}
	return nil
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// Append writes a usage event to the outbox table for Kafka publishing.
// When the context carries an open transaction the write joins it.
func (s *Store) Append(ctx context.Context, event usage.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal usage payload: %w", err)
	}

	// Aggregate by client when known so per-client event order survives
	// Kafka partitioning; anonymous traffic aggregates by event.
	aggregateType := "usage"
	aggregateID := event.ID.String()
	if event.ClientID != "" {
		aggregateType = "client"
		aggregateID = event.ClientID
	}

	query := `
		INSERT INTO usage_outbox (id, aggregate_type, aggregate_id, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.execer(ctx).ExecContext(ctx, query,
		uuid.New(), // outbox entry ID, distinct from the event ID
		aggregateType,
		aggregateID,
		event.Operation,
		payload,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert outbox entry: %w", err)
	}
	return nil
}

// AppendWithID inserts a usage event into the usage_events table with a
// specific ID. Idempotent via ON CONFLICT DO NOTHING so replays from the
// relay or a Kafka consumer cannot duplicate rows.
func (s *Store) AppendWithID(ctx context.Context, eventID uuid.UUID, event usage.Event) error {
	query := `
		INSERT INTO usage_events (
			id, occurred_at, request_id, client_id, client_ip, user_agent,
			operation, chronology, field, unit, zone,
			outcome, error_code, duration_ms
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := s.db.ExecContext(ctx, query,
		eventID,
		event.Timestamp,
		event.RequestID,
		event.ClientID,
		event.ClientIP,
		event.UserAgent,
		event.Operation,
		event.Chronology,
		event.Field,
		event.Unit,
		event.Zone,
		string(event.Outcome),
		event.ErrorCode,
		event.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("insert usage event: %w", err)
	}
	return nil
}

// ListRecent returns the N most recent materialized events, newest
// first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]usage.Event, error) {
	query := `
		SELECT id, occurred_at, request_id, client_id, client_ip, user_agent,
			   operation, chronology, field, unit, zone,
			   outcome, error_code, duration_ms
		FROM usage_events
		ORDER BY occurred_at DESC
		LIMIT $1
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query usage events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ListByClient returns events recorded for one client, newest first.
func (s *Store) ListByClient(ctx context.Context, clientID string, limit int) ([]usage.Event, error) {
	query := `
		SELECT id, occurred_at, request_id, client_id, client_ip, user_agent,
			   operation, chronology, field, unit, zone,
			   outcome, error_code, duration_ms
		FROM usage_events
		WHERE client_id = $1
		ORDER BY occurred_at DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, clientID, limit)
	if err != nil {
		return nil, fmt.Errorf("query usage events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]usage.Event, error) {
	var events []usage.Event

	for rows.Next() {
		var (
			event   usage.Event
			outcome string
		)

		err := rows.Scan(
			&event.ID,
			&event.Timestamp,
			&event.RequestID,
			&event.ClientID,
			&event.ClientIP,
			&event.UserAgent,
			&event.Operation,
			&event.Chronology,
			&event.Field,
			&event.Unit,
			&event.Zone,
			&outcome,
			&event.ErrorCode,
			&event.DurationMs,
		)
		if err != nil {
			return nil, fmt.Errorf("scan usage event: %w", err)
		}

		event.Outcome = usage.Outcome(outcome)
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate usage events: %w", err)
	}

	return events, nil
}

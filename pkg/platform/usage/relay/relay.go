// Package relay drains the usage outbox.
//
// Unpublished outbox rows are produced to Kafka, materialized into the
// usage_events table, and marked published, in created_at order. Claims
// use FOR UPDATE SKIP LOCKED so concurrent replicas never double-send a
// row; a crash between produce and mark replays the row, which is why
// materialization is idempotent.
package relay

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"tempus/pkg/platform/usage"
	"tempus/pkg/platform/usage/store/postgres"
)

const (
	defaultInterval  = 2 * time.Second
	defaultBatchSize = 100
)

// Publisher confirms delivery before returning. The relay must not mark
// a row published on a fire-and-forget produce.
type Publisher interface {
	Publish(ctx context.Context, key string, payload []byte) error
}

// Relay polls the outbox and pushes rows downstream. With no publisher
// configured it still materializes and marks rows so the outbox stays
// bounded in broker-less deployments.
type Relay struct {
	db        *sql.DB
	store     *postgres.Store
	publisher Publisher
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
}

// Option configures the Relay.
type Option func(*Relay)

// WithPublisher sets the downstream publisher.
func WithPublisher(p Publisher) Option {
	return func(r *Relay) {
		r.publisher = p
	}
}

// WithLogger sets the relay's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Relay) {
		r.logger = logger
	}
}

// WithInterval sets the polling interval.
func WithInterval(d time.Duration) Option {
	return func(r *Relay) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithBatchSize caps how many rows one cycle claims.
func WithBatchSize(n int) Option {
	return func(r *Relay) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

// New creates a relay over the given database handle.
func New(db *sql.DB, opts ...Option) *Relay {
	r := &Relay{
		db:        db,
		store:     postgres.New(db),
		logger:    slog.New(slog.DiscardHandler),
		interval:  defaultInterval,
		batchSize: defaultBatchSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run polls until the context is cancelled. Failures are logged and
// retried next cycle; Run only returns on shutdown.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.drain(ctx)
		}
	}
}

// drain claims batches until the outbox has no full batch left.
func (r *Relay) drain(ctx context.Context) {
	for {
		n, err := r.DrainBatch(ctx)
		if err != nil {
			r.logger.Error("drain usage outbox", "error", err)
			return
		}
		if n < r.batchSize {
			return
		}
	}
}

type outboxEntry struct {
	id      string
	key     string
	payload []byte
}

// DrainBatch claims one batch of unpublished rows, publishes and
// materializes them, and marks the delivered prefix published. It
// returns how many rows were marked. Exported so tests and one-shot
// tooling can drive the relay without the polling loop.
func (r *Relay) DrainBatch(ctx context.Context) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin outbox tx: %w", err)
	}
	defer tx.Rollback()

	entries, err := claimEntries(ctx, tx, r.batchSize)
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}

	// Stop at the first publish failure instead of skipping past it:
	// rows behind a failed one may share its aggregate, and publishing
	// them out of order would break per-key ordering downstream.
	var publishErr error
	delivered := make([]string, 0, len(entries))
	for _, entry := range entries {
		if r.publisher != nil {
			if err := r.publisher.Publish(ctx, entry.key, entry.payload); err != nil {
				publishErr = fmt.Errorf("publish outbox entry %s: %w", entry.id, err)
				break
			}
		}
		r.materialize(ctx, entry.payload)
		delivered = append(delivered, entry.id)
	}

	if len(delivered) > 0 {
		_, err = tx.ExecContext(ctx,
			`UPDATE usage_outbox SET published_at = now() WHERE id = ANY($1::uuid[])`,
			pq.Array(delivered),
		)
		if err != nil {
			return 0, fmt.Errorf("mark outbox entries published: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit outbox tx: %w", err)
	}
	return len(delivered), publishErr
}

func claimEntries(ctx context.Context, tx *sql.Tx, limit int) ([]outboxEntry, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, aggregate_id, payload
		FROM usage_outbox
		WHERE published_at IS NULL
		ORDER BY created_at
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("claim outbox entries: %w", err)
	}
	defer rows.Close()

	var entries []outboxEntry
	for rows.Next() {
		var entry outboxEntry
		if err := rows.Scan(&entry.id, &entry.key, &entry.payload); err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox entries: %w", err)
	}
	return entries, nil
}

// materialize copies one payload into usage_events. A payload that no
// longer decodes is logged and left behind rather than wedging the
// outbox; a failed insert is also only logged, since the Kafka copy is
// the durable one.
func (r *Relay) materialize(ctx context.Context, payload []byte) {
	var event usage.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		r.logger.Error("decode outbox payload", "error", err)
		return
	}
	if err := r.store.AppendWithID(ctx, event.ID, event); err != nil {
		r.logger.Error("materialize usage event", "error", err, "event_id", event.ID.String())
	}
}

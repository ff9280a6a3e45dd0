// Package publisher fans usage events out to the configured sinks.
//
// Recording usage must never slow a request down or fail it: in async
// mode events queue onto a bounded buffer and a drain goroutine delivers
// them, dropping on overflow. Synchronous mode exists for tests and
// low-volume deployments.
package publisher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"tempus/internal/platform/metrics"
	"tempus/pkg/platform/sentinel"
	"tempus/pkg/platform/usage"
)

// deliverTimeout bounds how long one sink may block the drain loop.
const deliverTimeout = 5 * time.Second

// Publisher delivers events to every configured sink.
type Publisher struct {
	sinks   []usage.Sink
	logger  *slog.Logger
	metrics *metrics.Metrics

	async  bool
	inbox  chan usage.Event
	done   chan struct{}
	mu     sync.RWMutex
	closed bool
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithAsyncBuffer switches the publisher to asynchronous delivery with
// the given buffer size.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.async = true
		p.inbox = make(chan usage.Event, size)
	}
}

// WithLogger sets a logger for delivery failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// WithSink adds another sink alongside the primary one.
func WithSink(sink usage.Sink) Option {
	return func(p *Publisher) {
		p.sinks = append(p.sinks, sink)
	}
}

// NewPublisher creates a publisher writing to the primary sink plus any
// sinks added via WithSink. Without WithAsyncBuffer delivery is
// synchronous.
func NewPublisher(primary usage.Sink, opts ...Option) *Publisher {
	p := &Publisher{
		sinks:  []usage.Sink{primary},
		logger: slog.New(slog.DiscardHandler),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.async {
		go p.run()
	} else {
		close(p.done)
	}
	return p
}

// Emit records an event. Zero ID and Timestamp are filled in. In async
// mode a full buffer drops the event and returns sentinel.ErrBufferFull.
func (p *Publisher) Emit(ctx context.Context, event usage.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if !p.async {
		p.deliver(event)
		if p.metrics != nil {
			p.metrics.UsageEmitted.Inc()
		}
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return sentinel.ErrClosed
	}

	select {
	case p.inbox <- event:
		if p.metrics != nil {
			p.metrics.UsageEmitted.Inc()
		}
		return nil
	default:
		if p.metrics != nil {
			p.metrics.UsageDropped.Inc()
		}
		p.logger.Warn("usage buffer full, dropping event",
			"operation", event.Operation,
			"request_id", event.RequestID,
		)
		return sentinel.ErrBufferFull
	}
}

// Close stops accepting events and drains the buffer before returning.
func (p *Publisher) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	if p.async {
		close(p.inbox)
	}
	p.mu.Unlock()

	<-p.done
}

func (p *Publisher) run() {
	defer close(p.done)
	for event := range p.inbox {
		p.deliver(event)
	}
}

// deliver writes to every sink; one sink failing must not starve the
// others of the event.
func (p *Publisher) deliver(event usage.Event) {
	for _, sink := range p.sinks {
		ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
		if err := sink.Append(ctx, event); err != nil {
			p.logger.Error("usage sink append failed",
				"error", err,
				"operation", event.Operation,
				"event_id", event.ID,
			)
		}
		cancel()
	}
}

// Package kafka publishes usage events to a Kafka topic.
//
// Append produces fire-and-forget so a broker outage never blocks
// request handling; Publish produces synchronously for the outbox relay,
// which must not mark rows published until the broker confirmed them.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"tempus/pkg/platform/usage"
)

// Sink writes usage events to Kafka. Events are keyed by client ID so
// per-client ordering survives partitioning.
type Sink struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// Option configures the Sink.
type Option func(*Sink)

// WithLogger sets a logger for produce failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sink) {
		s.logger = logger
	}
}

// New connects to the given brokers. The topic is created on first
// produce when the cluster allows auto-creation; integration setups
// create it explicitly.
func New(brokers []string, topic string, opts ...Option) (*Sink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ClientID("tempus"),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	s := &Sink{
		client: client,
		topic:  topic,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Sink) record(event usage.Event) (*kgo.Record, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal usage event: %w", err)
	}

	key := event.ClientID
	if key == "" {
		key = event.ID.String()
	}

	return &kgo.Record{
		Topic: s.topic,
		Key:   []byte(key),
		Value: payload,
	}, nil
}

// Append implements usage.Sink. The produce is asynchronous; failures
// are logged, not returned, because by the time the broker answers the
// request that caused the event is long gone.
func (s *Sink) Append(ctx context.Context, event usage.Event) error {
	rec, err := s.record(event)
	if err != nil {
		return err
	}

	s.client.Produce(ctx, rec, func(r *kgo.Record, err error) {
		if err != nil {
			s.logger.Error("produce usage event",
				"error", err,
				"topic", r.Topic,
				"key", string(r.Key),
			)
		}
	})
	return nil
}

// Publish produces one pre-serialized payload synchronously and returns
// the broker's verdict. The outbox relay uses this to decide whether a
// row may be marked published.
func (s *Sink) Publish(ctx context.Context, key string, payload []byte) error {
	rec := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(key),
		Value: payload,
	}
	if err := s.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("produce usage event: %w", err)
	}
	return nil
}

// Close flushes buffered records and releases the client.
func (s *Sink) Close(ctx context.Context) error {
	defer s.client.Close()
	if err := s.client.Flush(ctx); err != nil {
		return fmt.Errorf("flush kafka producer: %w", err)
	}
	return nil
}

package zones

import (
	"context"
	"log/slog"
	"time"

	"tempus/internal/platform/metrics"
	dErrors "tempus/pkg/domain-errors"
	"tempus/pkg/platform/circuit"
)

// FallbackProvider serves lookups from the primary resolver while it is
// healthy and degrades to the static provider once the circuit opens.
//
// A resolver verdict about the request itself (unknown zone, bad input)
// is an answer, not an outage, and never moves the breaker. While the
// circuit is open, lookups the static table can answer skip the
// resolver entirely; region zones still probe it, both because they
// have no static answer and because probes are how the circuit closes
// again.
type FallbackProvider struct {
	primary  Provider
	fallback Provider
	breaker  *circuit.Breaker
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// FallbackOption configures a FallbackProvider.
type FallbackOption func(*FallbackProvider)

// WithBreaker replaces the default breaker.
func WithBreaker(b *circuit.Breaker) FallbackOption {
	return func(p *FallbackProvider) {
		p.breaker = b
	}
}

// WithFallbackLogger sets the logger for circuit transitions.
func WithFallbackLogger(logger *slog.Logger) FallbackOption {
	return func(p *FallbackProvider) {
		p.logger = logger
	}
}

// WithFallbackMetrics sets the metrics collector for lookup sources.
func WithFallbackMetrics(m *metrics.Metrics) FallbackOption {
	return func(p *FallbackProvider) {
		p.metrics = m
	}
}

// NewFallbackProvider composes a primary provider with a static
// fallback.
func NewFallbackProvider(primary, fallback Provider, opts ...FallbackOption) *FallbackProvider {
	p := &FallbackProvider{
		primary:  primary,
		fallback: fallback,
		breaker:  circuit.New("zone-resolver"),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *FallbackProvider) Resolve(ctx context.Context, name string, at time.Time) (Zone, error) {
	if p.breaker.IsOpen() {
		if zone, err := p.fallback.Resolve(ctx, name, at); err == nil {
			p.observe("static")
			return zone, nil
		}
	}

	zone, err := p.primary.Resolve(ctx, name, at)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) || dErrors.HasCode(err, dErrors.CodeInvalidInput) {
			return Zone{}, err
		}

		useFallback, change := p.breaker.RecordFailure()
		if change.Opened {
			p.logger.WarnContext(ctx, "zone resolver circuit opened",
				"breaker", p.breaker.Name(),
				"error", err,
			)
		}
		if useFallback {
			if zone, ferr := p.fallback.Resolve(ctx, name, at); ferr == nil {
				p.observe("static")
				return zone, nil
			}
		}
		return Zone{}, err
	}

	if _, change := p.breaker.RecordSuccess(); change.Closed {
		p.logger.InfoContext(ctx, "zone resolver circuit closed",
			"breaker", p.breaker.Name(),
		)
	}
	p.observe("resolver")
	return zone, nil
}

func (p *FallbackProvider) observe(source string) {
	if p.metrics != nil {
		p.metrics.IncZoneLookup(source)
	}
}

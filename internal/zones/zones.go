// Package zones resolves named time zones to UTC offsets.
//
// Timezone rules live outside tempus. An external resolver owns them;
// this package provides the HTTP client for it, a static provider for
// UTC and fixed-offset literals, a circuit-breaker fallback composition,
// and a Redis read-through cache decorator.
package zones

import (
	"context"
	"time"

	"tempus/pkg/chrono"
)

// Zone is a resolved zone: the canonical name plus the UTC offset in
// effect at the requested instant.
type Zone struct {
	Name          string `json:"name"`
	OffsetSeconds int    `json:"offset_seconds"`
}

// Offset converts the zone into a validated chrono offset.
func (z Zone) Offset() (chrono.ZoneOffset, error) {
	return chrono.NewZoneOffset(z.OffsetSeconds)
}

// Provider answers zone lookups. The instant matters: zones with
// daylight saving change offsets over the year. Implementations must be
// safe for concurrent use.
type Provider interface {
	Resolve(ctx context.Context, name string, at time.Time) (Zone, error)
}

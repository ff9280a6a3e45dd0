package zones

import (
	"context"
	"time"

	"tempus/pkg/chrono"
	dErrors "tempus/pkg/domain-errors"
)

// fixedAliases maps well-known names for fixed zones onto offset
// literals the chrono parser accepts.
var fixedAliases = map[string]string{
	"UTC":     "Z",
	"utc":     "Z",
	"GMT":     "Z",
	"gmt":     "Z",
	"Etc/UTC": "Z",
	"Etc/GMT": "Z",
}

// StaticProvider resolves UTC and fixed-offset literals ("+02:00",
// "-05:30") without any external call. It backs static mode and serves
// as the degraded path when the resolver is unreachable. Region zones
// are unknown to it on purpose: their rules belong to the resolver.
type StaticProvider struct{}

// NewStaticProvider returns the fixed-offset provider.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{}
}

// Resolve parses the name as a fixed offset. The instant is ignored
// because fixed offsets never shift.
func (p *StaticProvider) Resolve(_ context.Context, name string, _ time.Time) (Zone, error) {
	if name == "" {
		return Zone{}, dErrors.New(dErrors.CodeInvalidInput, "zone name is required")
	}

	literal := name
	if canonical, ok := fixedAliases[name]; ok {
		literal = canonical
	}

	offset, err := chrono.ParseZoneOffset(literal)
	if err != nil {
		return Zone{}, dErrors.Newf(dErrors.CodeNotFound,
			"unknown zone %q: only UTC and fixed offsets resolve statically", name)
	}

	return Zone{Name: offset.String(), OffsetSeconds: offset.TotalSeconds()}, nil
}

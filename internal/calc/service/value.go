package service

import (
	"math"
	"strings"

	"tempus/internal/calc/models"
	"tempus/pkg/chrono"
	dErrors "tempus/pkg/domain-errors"
)

// valueKind discriminates the temporal types a request literal can carry.
type valueKind int

const (
	kindDate valueKind = iota
	kindTime
	kindDateTime
	kindOffsetDateTime
)

// value is the parsed form of a request literal: exactly one of the four
// temporal types, tagged by kind.
type value struct {
	kind valueKind
	d    chrono.LocalDate
	t    chrono.LocalTime
	dt   chrono.LocalDateTime
	odt  chrono.OffsetDateTime
}

// parseValue detects the temporal type of a literal by shape: a 'T'
// means a composed date-time (an offset marker after it means the offset
// variant), a ':' alone means a time, anything else a date. Detection
// before parsing keeps the error message specific to the intended type.
func parseValue(s string) (value, error) {
	ti := strings.IndexByte(s, 'T')
	switch {
	case ti >= 0:
		// Time literals contain no '+', '-' or 'Z', so any of them after
		// the 'T' can only start an offset.
		if strings.ContainsAny(s[ti+1:], "+-Z") {
			odt, err := chrono.ParseOffsetDateTime(s)
			if err != nil {
				return value{}, err
			}
			return value{kind: kindOffsetDateTime, odt: odt}, nil
		}
		dt, err := chrono.ParseLocalDateTime(s)
		if err != nil {
			return value{}, err
		}
		return value{kind: kindDateTime, dt: dt}, nil
	case strings.ContainsRune(s, ':'):
		t, err := chrono.ParseLocalTime(s)
		if err != nil {
			return value{}, err
		}
		return value{kind: kindTime, t: t}, nil
	default:
		d, err := chrono.ParseLocalDate(s)
		if err != nil {
			return value{}, err
		}
		return value{kind: kindDate, d: d}, nil
	}
}

// response renders the value as its canonical literal plus wire kind.
func (v value) response() models.ValueResponse {
	switch v.kind {
	case kindDate:
		return models.ValueResponse{Value: v.d.String(), Kind: models.KindDate}
	case kindTime:
		return models.ValueResponse{Value: v.t.String(), Kind: models.KindTime}
	case kindDateTime:
		return models.ValueResponse{Value: v.dt.String(), Kind: models.KindDateTime}
	default:
		return models.ValueResponse{Value: v.odt.String(), Kind: models.KindOffsetDateTime}
	}
}

// plus adds amount units under the chronology. On the offset variant the
// local fields shift and the offset stays put.
func (v value) plus(c chrono.Chronology, amount int64, u chrono.Unit) (value, error) {
	switch v.kind {
	case kindDate:
		d, err := c.AddToDate(v.d, u, amount)
		if err != nil {
			return value{}, err
		}
		return value{kind: kindDate, d: d}, nil
	case kindTime:
		t, err := c.AddToTime(v.t, u, amount)
		if err != nil {
			return value{}, err
		}
		return value{kind: kindTime, t: t}, nil
	case kindDateTime:
		dt, err := c.AddToDateTime(v.dt, u, amount)
		if err != nil {
			return value{}, err
		}
		return value{kind: kindDateTime, dt: dt}, nil
	default:
		dt, err := c.AddToDateTime(v.odt.DateTime(), u, amount)
		if err != nil {
			return value{}, err
		}
		return value{kind: kindOffsetDateTime, odt: dt.AtOffset(v.odt.Offset())}, nil
	}
}

// minus subtracts by negating. The minimum int64 has no positive
// counterpart, so it is split into two additions instead.
func (v value) minus(c chrono.Chronology, amount int64, u chrono.Unit) (value, error) {
	if amount == math.MinInt64 {
		out, err := v.plus(c, math.MaxInt64, u)
		if err != nil {
			return value{}, err
		}
		return out.plus(c, 1, u)
	}
	return v.plus(c, -amount, u)
}

// with sets one field to an absolute value. The instant and offset
// fields live on the offset layer and bypass the chronology; everything
// else routes through it.
func (v value) with(c chrono.Chronology, f chrono.Field, newValue int64) (value, error) {
	switch v.kind {
	case kindDate:
		d, err := c.WithDateField(v.d, f, newValue)
		if err != nil {
			return value{}, err
		}
		return value{kind: kindDate, d: d}, nil
	case kindTime:
		t, err := c.WithTimeField(v.t, f, newValue)
		if err != nil {
			return value{}, err
		}
		return value{kind: kindTime, t: t}, nil
	case kindDateTime:
		dt, err := c.WithDateTimeField(v.dt, f, newValue)
		if err != nil {
			return value{}, err
		}
		return value{kind: kindDateTime, dt: dt}, nil
	default:
		if cf, ok := f.(chrono.ChronoField); ok &&
			(cf == chrono.FieldOffsetSeconds || cf == chrono.FieldInstantSeconds) {
			odt, err := v.odt.With(f, newValue)
			if err != nil {
				return value{}, err
			}
			return value{kind: kindOffsetDateTime, odt: odt}, nil
		}
		dt, err := c.WithDateTimeField(v.odt.DateTime(), f, newValue)
		if err != nil {
			return value{}, err
		}
		return value{kind: kindOffsetDateTime, odt: dt.AtOffset(v.odt.Offset())}, nil
	}
}

// roll circles one field within its contextual range. offset_seconds on
// the offset variant rolls through the offset range itself.
func (v value) roll(c chrono.Chronology, f chrono.Field, amount int64) (value, error) {
	switch v.kind {
	case kindDate:
		d, err := c.RollDate(v.d, f, amount)
		if err != nil {
			return value{}, err
		}
		return value{kind: kindDate, d: d}, nil
	case kindTime:
		t, err := c.RollTime(v.t, f, amount)
		if err != nil {
			return value{}, err
		}
		return value{kind: kindTime, t: t}, nil
	case kindDateTime:
		dt, err := c.RollDateTime(v.dt, f, amount)
		if err != nil {
			return value{}, err
		}
		return value{kind: kindDateTime, dt: dt}, nil
	default:
		if cf, ok := f.(chrono.ChronoField); ok &&
			(cf == chrono.FieldOffsetSeconds || cf == chrono.FieldInstantSeconds) {
			odt, err := v.odt.Roll(f, amount)
			if err != nil {
				return value{}, err
			}
			return value{kind: kindOffsetDateTime, odt: odt}, nil
		}
		dt, err := c.RollDateTime(v.odt.DateTime(), f, amount)
		if err != nil {
			return value{}, err
		}
		return value{kind: kindOffsetDateTime, odt: dt.AtOffset(v.odt.Offset())}, nil
	}
}

// truncate zeroes everything finer than u. A bare date has no time
// component to truncate.
func (v value) truncate(u chrono.Unit) (value, error) {
	switch v.kind {
	case kindDate:
		return value{}, dErrors.New(dErrors.CodeUnsupportedUnit, "a date does not support truncation")
	case kindTime:
		t, err := v.t.TruncatedTo(u)
		if err != nil {
			return value{}, err
		}
		return value{kind: kindTime, t: t}, nil
	case kindDateTime:
		dt, err := v.dt.TruncatedTo(u)
		if err != nil {
			return value{}, err
		}
		return value{kind: kindDateTime, dt: dt}, nil
	default:
		odt, err := v.odt.TruncatedTo(u)
		if err != nil {
			return value{}, err
		}
		return value{kind: kindOffsetDateTime, odt: odt}, nil
	}
}

// until measures the complete units from v to end, truncating toward
// zero. Both ends must be the same temporal type; a distance between,
// say, a date and a time has no defined answer.
func (v value) until(end value, u chrono.Unit) (int64, error) {
	if v.kind != end.kind {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "start and end must be the same temporal type")
	}
	switch v.kind {
	case kindDate:
		return v.d.Until(end.d, u)
	case kindTime:
		return v.t.Until(end.t, u)
	case kindDateTime:
		return v.dt.Until(end.dt, u)
	default:
		return v.odt.Until(end.odt, u)
	}
}

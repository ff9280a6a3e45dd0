package chrono

import (
	"math"
	"strings"
	"time"

	dErrors "tempus/pkg/domain-errors"
)

// OffsetDateTime fixes a wall-clock date-time to a UTC offset, which makes
// it an unambiguous instant. Two values with different offsets can name the
// same instant while disagreeing on every local field; the comparison
// methods spell out which view they take. Values are immutable and
// comparable with ==.
type OffsetDateTime struct {
	dateTime LocalDateTime
	offset   ZoneOffset
}

// NewOffsetDateTime fixes an already validated date-time to an offset.
func NewOffsetDateTime(dt LocalDateTime, offset ZoneOffset) OffsetDateTime {
	return OffsetDateTime{dateTime: dt, offset: offset}
}

// OffsetDateTimeOf validates all components and builds an offset date-time.
func OffsetDateTimeOf(year, month, day, hour, minute, second, nano int, offset ZoneOffset) (OffsetDateTime, error) {
	dt, err := NewLocalDateTime(year, month, day, hour, minute, second, nano)
	if err != nil {
		return OffsetDateTime{}, err
	}
	return OffsetDateTime{dateTime: dt, offset: offset}, nil
}

// OffsetDateTimeOfInstant converts an epoch second to its wall-clock
// reading at the given offset.
func OffsetDateTimeOfInstant(epochSecond int64, nano int, offset ZoneOffset) (OffsetDateTime, error) {
	dt, err := LocalDateTimeOfEpochSecond(epochSecond, nano, offset)
	if err != nil {
		return OffsetDateTime{}, err
	}
	return OffsetDateTime{dateTime: dt, offset: offset}, nil
}

// OffsetDateTimeFromTime carries over tt's wall clock and its zone's offset
// at that moment.
func OffsetDateTimeFromTime(tt time.Time) (OffsetDateTime, error) {
	_, offSeconds := tt.Zone()
	offset, err := NewZoneOffset(offSeconds)
	if err != nil {
		return OffsetDateTime{}, err
	}
	return OffsetDateTime{dateTime: LocalDateTimeFromTime(tt), offset: offset}, nil
}

func (o OffsetDateTime) DateTime() LocalDateTime { return o.dateTime }
func (o OffsetDateTime) Date() LocalDate         { return o.dateTime.date }
func (o OffsetDateTime) Time() LocalTime         { return o.dateTime.time }
func (o OffsetDateTime) Offset() ZoneOffset      { return o.offset }

// EpochSecond returns the instant as whole seconds since 1970-01-01T00:00Z,
// dropping the nanosecond component.
func (o OffsetDateTime) EpochSecond() int64 {
	return o.dateTime.ToEpochSecond(o.offset)
}

// ToTime converts to a stdlib time.Time in a fixed-offset location.
func (o OffsetDateTime) ToTime() time.Time {
	dt := o.dateTime
	loc := time.FixedZone(o.offset.String(), o.offset.totalSeconds)
	return time.Date(dt.Year(), time.Month(dt.Month()), dt.Day(), dt.Hour(), dt.Minute(), dt.Second(), dt.Nano(), loc)
}

// Get reads a field; instant_seconds and offset_seconds resolve here, the
// rest against the local date-time.
func (o OffsetDateTime) Get(f Field) (int64, error) {
	if cf, ok := f.(ChronoField); ok {
		switch cf {
		case FieldInstantSeconds:
			return o.EpochSecond(), nil
		case FieldOffsetSeconds:
			return int64(o.offset.totalSeconds), nil
		}
	}
	return o.dateTime.Get(f)
}

// Range returns the range of f narrowed to this value's context.
func (o OffsetDateTime) Range(f Field) (ValueRange, error) {
	if cf, ok := f.(ChronoField); ok {
		switch cf {
		case FieldInstantSeconds, FieldOffsetSeconds:
			return cf.Range(), nil
		}
	}
	return o.dateTime.Range(f)
}

// With returns a copy with one field set. Setting instant_seconds keeps the
// offset and moves the wall clock; setting offset_seconds keeps the wall
// clock and so changes the instant.
func (o OffsetDateTime) With(f Field, value int64) (OffsetDateTime, error) {
	if cf, ok := f.(ChronoField); ok {
		switch cf {
		case FieldInstantSeconds:
			return OffsetDateTimeOfInstant(value, o.dateTime.Nano(), o.offset)
		case FieldOffsetSeconds:
			if _, err := cf.Range().Check(cf, value); err != nil {
				return OffsetDateTime{}, err
			}
			return OffsetDateTime{dateTime: o.dateTime, offset: ZoneOffset{totalSeconds: int(value)}}, nil
		}
	}
	dt, err := o.dateTime.With(f, value)
	if err != nil {
		return OffsetDateTime{}, err
	}
	return OffsetDateTime{dateTime: dt, offset: o.offset}, nil
}

// WithOffsetSameLocal keeps every local field and swaps the offset; the
// value then names a different instant.
func (o OffsetDateTime) WithOffsetSameLocal(offset ZoneOffset) OffsetDateTime {
	return OffsetDateTime{dateTime: o.dateTime, offset: offset}
}

// WithOffsetSameInstant keeps the instant and recomputes the wall clock for
// the new offset: noon at +02:00 becomes 11:00 at +01:00.
func (o OffsetDateTime) WithOffsetSameInstant(offset ZoneOffset) (OffsetDateTime, error) {
	if offset == o.offset {
		return o, nil
	}
	difference := offset.totalSeconds - o.offset.totalSeconds
	dt, err := o.dateTime.PlusSeconds(int64(difference))
	if err != nil {
		return OffsetDateTime{}, err
	}
	return OffsetDateTime{dateTime: dt, offset: offset}, nil
}

// WithDate replaces the date, keeping time and offset.
func (o OffsetDateTime) WithDate(d LocalDate) OffsetDateTime {
	return OffsetDateTime{dateTime: o.dateTime.WithDate(d), offset: o.offset}
}

// WithTime replaces the time, keeping date and offset.
func (o OffsetDateTime) WithTime(t LocalTime) OffsetDateTime {
	return OffsetDateTime{dateTime: o.dateTime.WithTime(t), offset: o.offset}
}

// Plus adds to the local date-time, keeping the offset.
func (o OffsetDateTime) Plus(amount int64, u Unit) (OffsetDateTime, error) {
	dt, err := o.dateTime.Plus(amount, u)
	if err != nil {
		return OffsetDateTime{}, err
	}
	return OffsetDateTime{dateTime: dt, offset: o.offset}, nil
}

// Minus subtracts by negating, splitting the minimum int64 into two steps.
func (o OffsetDateTime) Minus(amount int64, u Unit) (OffsetDateTime, error) {
	if amount == math.MinInt64 {
		e, err := o.Plus(math.MaxInt64, u)
		if err != nil {
			return OffsetDateTime{}, err
		}
		return e.Plus(1, u)
	}
	return o.Plus(-amount, u)
}

// Roll rolls a local field; the offset never moves. offset_seconds itself
// rolls within its fixed range, keeping the wall clock.
func (o OffsetDateTime) Roll(f Field, amount int64) (OffsetDateTime, error) {
	if cf, ok := f.(ChronoField); ok {
		switch cf {
		case FieldInstantSeconds:
			return OffsetDateTime{}, dErrors.Newf(dErrors.CodeUnsupportedField, "field %s cannot be rolled", cf)
		case FieldOffsetSeconds:
			next := rollValue(cf.Range(), int64(o.offset.totalSeconds), amount)
			return OffsetDateTime{dateTime: o.dateTime, offset: ZoneOffset{totalSeconds: int(next)}}, nil
		}
	}
	dt, err := o.dateTime.Roll(f, amount)
	if err != nil {
		return OffsetDateTime{}, err
	}
	return OffsetDateTime{dateTime: dt, offset: o.offset}, nil
}

// TruncatedTo zeroes every time component finer than u, keeping date and
// offset.
func (o OffsetDateTime) TruncatedTo(u Unit) (OffsetDateTime, error) {
	dt, err := o.dateTime.TruncatedTo(u)
	if err != nil {
		return OffsetDateTime{}, err
	}
	return OffsetDateTime{dateTime: dt, offset: o.offset}, nil
}

// Until measures the complete units between two instants by first bringing
// end to this value's offset, so differing offsets do not distort the
// result.
func (o OffsetDateTime) Until(end OffsetDateTime, u Unit) (int64, error) {
	aligned, err := end.WithOffsetSameInstant(o.offset)
	if err != nil {
		return 0, err
	}
	return o.dateTime.Until(aligned.dateTime, u)
}

// CompareInstant orders by the instant each value names; values at
// different offsets naming the same instant compare equal.
func (o OffsetDateTime) CompareInstant(other OffsetDateTime) int {
	if c := compareInt64(o.EpochSecond(), other.EpochSecond()); c != 0 {
		return c
	}
	return compareInt(o.dateTime.Nano(), other.dateTime.Nano())
}

// Compare orders by instant first and breaks ties on the local reading, so
// equal instants at different offsets still order deterministically.
func (o OffsetDateTime) Compare(other OffsetDateTime) int {
	if o.offset == other.offset {
		return o.dateTime.Compare(other.dateTime)
	}
	if c := o.CompareInstant(other); c != 0 {
		return c
	}
	return o.dateTime.Compare(other.dateTime)
}

// IsBefore reports whether o's instant precedes other's, regardless of the
// local readings.
func (o OffsetDateTime) IsBefore(other OffsetDateTime) bool {
	return o.CompareInstant(other) < 0
}

func (o OffsetDateTime) IsAfter(other OffsetDateTime) bool {
	return o.CompareInstant(other) > 0
}

// EqualInstant reports whether both values name the same instant, even at
// different offsets.
func (o OffsetDateTime) EqualInstant(other OffsetDateTime) bool {
	return o.CompareInstant(other) == 0
}

// Equal requires the same local reading and the same offset.
func (o OffsetDateTime) Equal(other OffsetDateTime) bool { return o == other }

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// String renders the ISO-8601 form, the local date-time followed by the
// offset.
func (o OffsetDateTime) String() string {
	return o.dateTime.String() + o.offset.String()
}

// ParseOffsetDateTime reads the local form followed by Z or a signed offset.
func ParseOffsetDateTime(s string) (OffsetDateTime, error) {
	ti := strings.IndexByte(s, 'T')
	if ti < 0 {
		return OffsetDateTime{}, errParseOffsetDateTime(s)
	}
	oi := strings.IndexAny(s[ti+1:], "Z+-")
	if oi < 0 {
		return OffsetDateTime{}, errParseOffsetDateTime(s)
	}
	oi += ti + 1
	dt, err := ParseLocalDateTime(s[:oi])
	if err != nil {
		return OffsetDateTime{}, dErrors.Wrapf(err, dErrors.CodeInvalidValue, "cannot parse %q as an offset date-time", s)
	}
	offset, err := ParseZoneOffset(s[oi:])
	if err != nil {
		return OffsetDateTime{}, dErrors.Wrapf(err, dErrors.CodeInvalidValue, "cannot parse %q as an offset date-time", s)
	}
	return OffsetDateTime{dateTime: dt, offset: offset}, nil
}

// MustParseOffsetDateTime is ParseOffsetDateTime for fixed inputs known to
// be valid.
func MustParseOffsetDateTime(s string) OffsetDateTime {
	o, err := ParseOffsetDateTime(s)
	if err != nil {
		panic(err)
	}
	return o
}

func errParseOffsetDateTime(s string) error {
	return dErrors.Newf(dErrors.CodeInvalidValue, "cannot parse %q as an offset date-time", s)
}

func (o OffsetDateTime) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *OffsetDateTime) UnmarshalText(text []byte) error {
	parsed, err := ParseOffsetDateTime(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

package chrono

import (
	"math"

	dErrors "tempus/pkg/domain-errors"
)

// Field identifies a gettable/settable component of a date or time value.
// The built-in ChronoField constants cover the standard calendar fields;
// externally defined fields implement Field (and usually FieldRules) to
// participate in the same dispatch.
type Field interface {
	Name() string
	IsDateBased() bool
	IsTimeBased() bool
	// Range returns the calendar-agnostic default range. Chronologies narrow
	// it per context via FieldRangeAt.
	Range() ValueRange
}

// FieldRules is the capability interface chronologies fall back to for
// fields they do not natively recognize. Implementations resolve the field
// themselves against the supplied date/time context; a nil date or time
// means that part of the context is absent.
type FieldRules interface {
	FieldRange(c Chronology, date *LocalDate, t *LocalTime) (ValueRange, error)
	FieldValue(c Chronology, date *LocalDate, t *LocalTime) (int64, error)
	ApplyToDate(c Chronology, date LocalDate, value int64) (LocalDate, error)
	ApplyToTime(c Chronology, t LocalTime, value int64) (LocalTime, error)
}

// ChronoField is the closed set of standard fields. Values are wire-stable
// snake_case names.
type ChronoField string

const (
	FieldEra            ChronoField = "era"
	FieldYear           ChronoField = "year"
	FieldYearOfEra      ChronoField = "year_of_era"
	FieldEpochMonth     ChronoField = "epoch_month"
	FieldMonthOfYear    ChronoField = "month_of_year"
	FieldEpochDay       ChronoField = "epoch_day"
	FieldDayOfYear      ChronoField = "day_of_year"
	FieldDayOfMonth     ChronoField = "day_of_month"
	FieldDayOfWeek      ChronoField = "day_of_week"
	FieldHourOfDay      ChronoField = "hour_of_day"
	FieldMinuteOfHour   ChronoField = "minute_of_hour"
	FieldSecondOfMinute ChronoField = "second_of_minute"
	FieldMilliOfSecond  ChronoField = "milli_of_second"
	FieldMicroOfSecond  ChronoField = "micro_of_second"
	FieldNanoOfSecond   ChronoField = "nano_of_second"
	FieldInstantSeconds ChronoField = "instant_seconds"
	FieldOffsetSeconds  ChronoField = "offset_seconds"
)

// chronoFields lists the closed set in coarse-to-fine order.
var chronoFields = []ChronoField{
	FieldEra,
	FieldYear,
	FieldYearOfEra,
	FieldEpochMonth,
	FieldMonthOfYear,
	FieldEpochDay,
	FieldDayOfYear,
	FieldDayOfMonth,
	FieldDayOfWeek,
	FieldHourOfDay,
	FieldMinuteOfHour,
	FieldSecondOfMinute,
	FieldMilliOfSecond,
	FieldMicroOfSecond,
	FieldNanoOfSecond,
	FieldInstantSeconds,
	FieldOffsetSeconds,
}

// Fields returns the closed set of standard fields in coarse-to-fine order.
func Fields() []ChronoField {
	out := make([]ChronoField, len(chronoFields))
	copy(out, chronoFields)
	return out
}

// ParseField validates a field name received at a trust boundary.
func ParseField(s string) (ChronoField, error) {
	f := ChronoField(s)
	if !f.IsValid() {
		return "", dErrors.Newf(dErrors.CodeUnsupportedField, "unknown field %q", s)
	}
	return f, nil
}

// IsValid reports whether the field is one of the standard constants.
func (f ChronoField) IsValid() bool {
	switch f {
	case FieldEra, FieldYear, FieldYearOfEra, FieldEpochMonth, FieldMonthOfYear,
		FieldEpochDay, FieldDayOfYear, FieldDayOfMonth, FieldDayOfWeek,
		FieldHourOfDay, FieldMinuteOfHour, FieldSecondOfMinute,
		FieldMilliOfSecond, FieldMicroOfSecond, FieldNanoOfSecond,
		FieldInstantSeconds, FieldOffsetSeconds:
		return true
	}
	return false
}

func (f ChronoField) Name() string { return string(f) }

func (f ChronoField) String() string { return string(f) }

func (f ChronoField) IsDateBased() bool {
	switch f {
	case FieldEra, FieldYear, FieldYearOfEra, FieldEpochMonth, FieldMonthOfYear,
		FieldEpochDay, FieldDayOfYear, FieldDayOfMonth, FieldDayOfWeek:
		return true
	}
	return false
}

func (f ChronoField) IsTimeBased() bool {
	switch f {
	case FieldHourOfDay, FieldMinuteOfHour, FieldSecondOfMinute,
		FieldMilliOfSecond, FieldMicroOfSecond, FieldNanoOfSecond:
		return true
	}
	return false
}

// Range returns the calendar-agnostic default range (ISO defaults for the
// date fields). instant_seconds and offset_seconds belong to the offset
// layer; their ranges are fixed regardless of calendar.
func (f ChronoField) Range() ValueRange {
	switch f {
	case FieldEra:
		return NewRange(0, 1)
	case FieldYear:
		return NewRange(MinYear, MaxYear)
	case FieldYearOfEra:
		return NewRangeSmallest(1, MaxYear, MaxYear+1)
	case FieldEpochMonth:
		return NewRange((MinYear-1970)*12, (MaxYear-1970)*12+11)
	case FieldMonthOfYear:
		return NewRange(1, 12)
	case FieldEpochDay:
		return NewRange(MinEpochDay, MaxEpochDay)
	case FieldDayOfYear:
		return NewRangeSmallest(1, 365, 366)
	case FieldDayOfMonth:
		return NewRangeSmallest(1, 28, 31)
	case FieldDayOfWeek:
		return NewRange(1, 7)
	case FieldHourOfDay:
		return NewRange(0, 23)
	case FieldMinuteOfHour:
		return NewRange(0, 59)
	case FieldSecondOfMinute:
		return NewRange(0, 59)
	case FieldMilliOfSecond:
		return NewRange(0, 999)
	case FieldMicroOfSecond:
		return NewRange(0, 999_999)
	case FieldNanoOfSecond:
		return NewRange(0, 999_999_999)
	case FieldInstantSeconds:
		return NewRange(math.MinInt64, math.MaxInt64)
	case FieldOffsetSeconds:
		return NewRange(-maxOffsetSeconds, maxOffsetSeconds)
	}
	return NewRange(math.MinInt64, math.MaxInt64)
}

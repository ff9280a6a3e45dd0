package chrono

import (
	dErrors "tempus/pkg/domain-errors"
)

// Unit identifies an increment of time usable in addition, subtraction and
// difference calculations. The built-in ChronoUnit constants cover the
// standard units; externally defined units implement Unit and UnitOps.
type Unit interface {
	Name() string
	IsDateBased() bool
	IsTimeBased() bool
	// Estimated returns the span of one unit. Exact for time-based units,
	// an average for date-based ones; used for sorting and comparison only.
	Estimated() UnitDuration
}

// UnitOps is the capability interface the arithmetic engine falls back to
// for units outside the standard set.
type UnitOps interface {
	AddToDate(date LocalDate, amount int64) (LocalDate, error)
	AddToTime(t LocalTime, amount int64) (LocalTime, error)
	AddToDateTime(dt LocalDateTime, amount int64) (LocalDateTime, error)
	Between(start, end LocalDateTime) (int64, error)
}

// UnitDuration is a seconds+nanos span. time.Duration caps out near 292
// years, which the larger units exceed.
type UnitDuration struct {
	Seconds int64
	Nanos   int32
}

// Compare orders durations shortest first.
func (d UnitDuration) Compare(other UnitDuration) int {
	switch {
	case d.Seconds < other.Seconds:
		return -1
	case d.Seconds > other.Seconds:
		return 1
	case d.Nanos < other.Nanos:
		return -1
	case d.Nanos > other.Nanos:
		return 1
	}
	return 0
}

// ChronoUnit is the closed set of standard units. Values are wire-stable
// snake_case names.
type ChronoUnit string

const (
	UnitNanos     ChronoUnit = "nanos"
	UnitMicros    ChronoUnit = "micros"
	UnitMillis    ChronoUnit = "millis"
	UnitSeconds   ChronoUnit = "seconds"
	UnitMinutes   ChronoUnit = "minutes"
	UnitHours     ChronoUnit = "hours"
	UnitHalfDays  ChronoUnit = "half_days"
	UnitDays      ChronoUnit = "days"
	UnitWeeks     ChronoUnit = "weeks"
	UnitMonths    ChronoUnit = "months"
	UnitQuarters  ChronoUnit = "quarters"
	UnitYears     ChronoUnit = "years"
	UnitDecades   ChronoUnit = "decades"
	UnitCenturies ChronoUnit = "centuries"
	UnitMillennia ChronoUnit = "millennia"
	UnitEras      ChronoUnit = "eras"
)

// chronoUnits lists the closed set shortest-first.
var chronoUnits = []ChronoUnit{
	UnitNanos, UnitMicros, UnitMillis, UnitSeconds, UnitMinutes, UnitHours,
	UnitHalfDays, UnitDays, UnitWeeks, UnitMonths, UnitQuarters, UnitYears,
	UnitDecades, UnitCenturies, UnitMillennia, UnitEras,
}

// Units returns the closed set of standard units, shortest first.
func Units() []ChronoUnit {
	out := make([]ChronoUnit, len(chronoUnits))
	copy(out, chronoUnits)
	return out
}

// ParseUnit validates a unit name received at a trust boundary.
func ParseUnit(s string) (ChronoUnit, error) {
	u := ChronoUnit(s)
	if !u.IsValid() {
		return "", dErrors.Newf(dErrors.CodeUnsupportedUnit, "unknown unit %q", s)
	}
	return u, nil
}

// IsValid reports whether the unit is one of the standard constants.
func (u ChronoUnit) IsValid() bool {
	switch u {
	case UnitNanos, UnitMicros, UnitMillis, UnitSeconds, UnitMinutes,
		UnitHours, UnitHalfDays, UnitDays, UnitWeeks, UnitMonths,
		UnitQuarters, UnitYears, UnitDecades, UnitCenturies,
		UnitMillennia, UnitEras:
		return true
	}
	return false
}

func (u ChronoUnit) Name() string { return string(u) }

func (u ChronoUnit) String() string { return string(u) }

func (u ChronoUnit) IsDateBased() bool {
	switch u {
	case UnitDays, UnitWeeks, UnitMonths, UnitQuarters, UnitYears,
		UnitDecades, UnitCenturies, UnitMillennia, UnitEras:
		return true
	}
	return false
}

func (u ChronoUnit) IsTimeBased() bool {
	switch u {
	case UnitNanos, UnitMicros, UnitMillis, UnitSeconds, UnitMinutes,
		UnitHours, UnitHalfDays:
		return true
	}
	return false
}

// Estimated durations for the date-based units use the 365.2425-day mean
// Gregorian year (31,556,952 seconds).
const meanYearSeconds = 31_556_952

func (u ChronoUnit) Estimated() UnitDuration {
	switch u {
	case UnitNanos:
		return UnitDuration{Nanos: 1}
	case UnitMicros:
		return UnitDuration{Nanos: 1_000}
	case UnitMillis:
		return UnitDuration{Nanos: 1_000_000}
	case UnitSeconds:
		return UnitDuration{Seconds: 1}
	case UnitMinutes:
		return UnitDuration{Seconds: 60}
	case UnitHours:
		return UnitDuration{Seconds: 3_600}
	case UnitHalfDays:
		return UnitDuration{Seconds: 43_200}
	case UnitDays:
		return UnitDuration{Seconds: 86_400}
	case UnitWeeks:
		return UnitDuration{Seconds: 7 * 86_400}
	case UnitMonths:
		return UnitDuration{Seconds: meanYearSeconds / 12}
	case UnitQuarters:
		return UnitDuration{Seconds: meanYearSeconds / 4}
	case UnitYears:
		return UnitDuration{Seconds: meanYearSeconds}
	case UnitDecades:
		return UnitDuration{Seconds: 10 * meanYearSeconds}
	case UnitCenturies:
		return UnitDuration{Seconds: 100 * meanYearSeconds}
	case UnitMillennia:
		return UnitDuration{Seconds: 1_000 * meanYearSeconds}
	case UnitEras:
		return UnitDuration{Seconds: 1_000_000_000 * meanYearSeconds}
	}
	return UnitDuration{}
}

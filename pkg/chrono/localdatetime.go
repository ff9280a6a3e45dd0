package chrono

import (
	"math"
	"strings"
	"time"

	dErrors "tempus/pkg/domain-errors"
)

// LocalDateTime pairs a date with a time of day, still without an offset.
// Time arithmetic on the pair carries whole days into the date rather than
// wrapping. Values are immutable and comparable with ==.
type LocalDateTime struct {
	date LocalDate
	time LocalTime
}

// NewLocalDateTime validates all components and builds a date-time.
func NewLocalDateTime(year, month, day, hour, minute, second, nano int) (LocalDateTime, error) {
	d, err := NewLocalDate(year, month, day)
	if err != nil {
		return LocalDateTime{}, err
	}
	t, err := NewLocalTime(hour, minute, second, nano)
	if err != nil {
		return LocalDateTime{}, err
	}
	return LocalDateTime{date: d, time: t}, nil
}

// MustLocalDateTime is NewLocalDateTime for fixed inputs known to be valid.
func MustLocalDateTime(year, month, day, hour, minute, second, nano int) LocalDateTime {
	dt, err := NewLocalDateTime(year, month, day, hour, minute, second, nano)
	if err != nil {
		panic(err)
	}
	return dt
}

// LocalDateTimeOf pairs an already validated date and time.
func LocalDateTimeOf(d LocalDate, t LocalTime) LocalDateTime {
	return LocalDateTime{date: d, time: t}
}

// LocalDateTimeOfEpochSecond converts an epoch second to the wall-clock
// date-time it reads as at the given offset.
func LocalDateTimeOfEpochSecond(epochSecond int64, nano int, offset ZoneOffset) (LocalDateTime, error) {
	if _, err := FieldNanoOfSecond.Range().Check(FieldNanoOfSecond, int64(nano)); err != nil {
		return LocalDateTime{}, err
	}
	localSecond, err := safeAdd(epochSecond, int64(offset.totalSeconds))
	if err != nil {
		return LocalDateTime{}, dErrors.Newf(dErrors.CodeInvalidValue, "value %d for instant_seconds outside the supported range", epochSecond)
	}
	d, err := LocalDateOfEpochDay(floorDiv(localSecond, secondsPerDay))
	if err != nil {
		return LocalDateTime{}, err
	}
	secsOfDay := floorMod(localSecond, secondsPerDay)
	return LocalDateTime{date: d, time: timeFromNanoOfDay(secsOfDay*nanosPerSecond + int64(nano))}, nil
}

// LocalDateTimeFromTime extracts the wall-clock date-time of tt in its own
// location.
func LocalDateTimeFromTime(tt time.Time) LocalDateTime {
	return LocalDateTime{date: LocalDateFromTime(tt), time: LocalTimeFromTime(tt)}
}

func (dt LocalDateTime) Date() LocalDate { return dt.date }
func (dt LocalDateTime) Time() LocalTime { return dt.time }

func (dt LocalDateTime) Year() int      { return dt.date.year }
func (dt LocalDateTime) Month() int     { return dt.date.month }
func (dt LocalDateTime) Day() int       { return dt.date.day }
func (dt LocalDateTime) Hour() int      { return dt.time.hour }
func (dt LocalDateTime) Minute() int    { return dt.time.minute }
func (dt LocalDateTime) Second() int    { return dt.time.second }
func (dt LocalDateTime) Nano() int      { return dt.time.nano }
func (dt LocalDateTime) DayOfWeek() int { return dt.date.DayOfWeek() }
func (dt LocalDateTime) DayOfYear() int { return dt.date.DayOfYear() }

// Get reads a field of either side of the pair.
func (dt LocalDateTime) Get(f Field) (int64, error) {
	return ISO.FieldValue(f, &dt.date, &dt.time)
}

// Range returns the range of f narrowed to this date-time's context.
func (dt LocalDateTime) Range(f Field) (ValueRange, error) {
	return ISO.FieldRangeAt(f, &dt.date, &dt.time)
}

// With returns a copy with one field set, routed to the date or time side.
func (dt LocalDateTime) With(f Field, value int64) (LocalDateTime, error) {
	return ISO.WithDateTimeField(dt, f, value)
}

// WithDate replaces the date, keeping the time.
func (dt LocalDateTime) WithDate(d LocalDate) LocalDateTime {
	return LocalDateTime{date: d, time: dt.time}
}

// WithTime replaces the time, keeping the date.
func (dt LocalDateTime) WithTime(t LocalTime) LocalDateTime {
	return LocalDateTime{date: dt.date, time: t}
}

// Plus adds an amount of the given unit. Time-based units carry whole days
// into the date: the last second of a year rolls into the next year.
func (dt LocalDateTime) Plus(amount int64, u Unit) (LocalDateTime, error) {
	return ISO.AddToDateTime(dt, u, amount)
}

// Minus subtracts by negating, splitting the minimum int64 into two steps.
func (dt LocalDateTime) Minus(amount int64, u Unit) (LocalDateTime, error) {
	if amount == math.MinInt64 {
		e, err := dt.Plus(math.MaxInt64, u)
		if err != nil {
			return LocalDateTime{}, err
		}
		return e.Plus(1, u)
	}
	return dt.Plus(-amount, u)
}

func (dt LocalDateTime) PlusDays(days int64) (LocalDateTime, error) {
	d, err := dt.date.PlusDays(days)
	if err != nil {
		return LocalDateTime{}, err
	}
	return LocalDateTime{date: d, time: dt.time}, nil
}

func (dt LocalDateTime) PlusWeeks(weeks int64) (LocalDateTime, error) {
	d, err := dt.date.PlusWeeks(weeks)
	if err != nil {
		return LocalDateTime{}, err
	}
	return LocalDateTime{date: d, time: dt.time}, nil
}

func (dt LocalDateTime) PlusMonths(months int64) (LocalDateTime, error) {
	d, err := dt.date.PlusMonths(months)
	if err != nil {
		return LocalDateTime{}, err
	}
	return LocalDateTime{date: d, time: dt.time}, nil
}

func (dt LocalDateTime) PlusYears(years int64) (LocalDateTime, error) {
	d, err := dt.date.PlusYears(years)
	if err != nil {
		return LocalDateTime{}, err
	}
	return LocalDateTime{date: d, time: dt.time}, nil
}

func (dt LocalDateTime) PlusHours(hours int64) (LocalDateTime, error) {
	return dt.plusDaysTime(0, hours, 0, 0, 0)
}

func (dt LocalDateTime) PlusMinutes(minutes int64) (LocalDateTime, error) {
	return dt.plusDaysTime(0, 0, minutes, 0, 0)
}

func (dt LocalDateTime) PlusSeconds(seconds int64) (LocalDateTime, error) {
	return dt.plusDaysTime(0, 0, 0, seconds, 0)
}

func (dt LocalDateTime) PlusNanos(nanos int64) (LocalDateTime, error) {
	return dt.plusDaysTime(0, 0, 0, 0, nanos)
}

func (dt LocalDateTime) MinusDays(days int64) (LocalDateTime, error) {
	return dt.Minus(days, UnitDays)
}

func (dt LocalDateTime) MinusWeeks(weeks int64) (LocalDateTime, error) {
	return dt.Minus(weeks, UnitWeeks)
}

func (dt LocalDateTime) MinusMonths(months int64) (LocalDateTime, error) {
	return dt.Minus(months, UnitMonths)
}

func (dt LocalDateTime) MinusYears(years int64) (LocalDateTime, error) {
	return dt.Minus(years, UnitYears)
}

func (dt LocalDateTime) MinusHours(hours int64) (LocalDateTime, error) {
	return dt.Minus(hours, UnitHours)
}

func (dt LocalDateTime) MinusMinutes(minutes int64) (LocalDateTime, error) {
	return dt.Minus(minutes, UnitMinutes)
}

func (dt LocalDateTime) MinusSeconds(seconds int64) (LocalDateTime, error) {
	return dt.Minus(seconds, UnitSeconds)
}

func (dt LocalDateTime) MinusNanos(nanos int64) (LocalDateTime, error) {
	return dt.Minus(nanos, UnitNanos)
}

// plusDaysTime adds explicit days plus component time amounts in one pass,
// folding the time overflow into the day count.
func (dt LocalDateTime) plusDaysTime(days, hours, minutes, seconds, nanos int64) (LocalDateTime, error) {
	t, carry := dt.time.plusWithOverflow(hours, minutes, seconds, nanos)
	total, err := safeAdd(days, carry)
	if err != nil {
		return LocalDateTime{}, errDateOverflow()
	}
	d, err := dt.date.PlusDays(total)
	if err != nil {
		return LocalDateTime{}, err
	}
	return LocalDateTime{date: d, time: t}, nil
}

// Roll changes one field by a signed amount within its range; no other
// field moves, so rolling hours never touches the date.
func (dt LocalDateTime) Roll(f Field, amount int64) (LocalDateTime, error) {
	return ISO.RollDateTime(dt, f, amount)
}

// TruncatedTo zeroes every time component finer than u, keeping the date.
func (dt LocalDateTime) TruncatedTo(u Unit) (LocalDateTime, error) {
	t, err := dt.time.TruncatedTo(u)
	if err != nil {
		return LocalDateTime{}, err
	}
	return LocalDateTime{date: dt.date, time: t}, nil
}

// Until measures the complete units from dt to end, truncating toward zero.
// For time-based units the day gap converts to the unit exactly; for
// date-based units a partial final day does not count.
func (dt LocalDateTime) Until(end LocalDateTime, u Unit) (int64, error) {
	cu, ok := u.(ChronoUnit)
	if !ok {
		if ops, ok := u.(UnitOps); ok {
			return ops.Between(dt, end)
		}
		return 0, errUnitUnsupported(ISO, u)
	}
	if cu.IsTimeBased() {
		return dt.untilTime(end, cu)
	}
	endDate := end.date
	switch {
	case endDate.IsAfter(dt.date) && end.time.IsBefore(dt.time):
		d, err := endDate.PlusDays(-1)
		if err != nil {
			return 0, err
		}
		endDate = d
	case endDate.IsBefore(dt.date) && end.time.IsAfter(dt.time):
		d, err := endDate.PlusDays(1)
		if err != nil {
			return 0, err
		}
		endDate = d
	}
	return dt.date.Until(endDate, cu)
}

func (dt LocalDateTime) untilTime(end LocalDateTime, cu ChronoUnit) (int64, error) {
	amount := dt.date.DaysUntil(end.date)
	if amount == 0 {
		return dt.time.Until(end.time, cu)
	}
	timePart := end.time.NanoOfDay() - dt.time.NanoOfDay()
	if amount > 0 {
		amount--
		timePart += nanosPerDay
	} else {
		amount++
		timePart -= nanosPerDay
	}
	var scale int64
	switch cu {
	case UnitNanos:
		scale = nanosPerDay
	case UnitMicros:
		scale, timePart = microsPerDay, timePart/1_000
	case UnitMillis:
		scale, timePart = millisPerDay, timePart/1_000_000
	case UnitSeconds:
		scale, timePart = secondsPerDay, timePart/nanosPerSecond
	case UnitMinutes:
		scale, timePart = minutesPerDay, timePart/nanosPerMinute
	case UnitHours:
		scale, timePart = hoursPerDay, timePart/nanosPerHour
	case UnitHalfDays:
		scale, timePart = 2, timePart/(12*nanosPerHour)
	}
	scaled, err := safeMultiply(amount, scale)
	if err != nil {
		return 0, err
	}
	return safeAdd(scaled, timePart)
}

// AtOffset fixes the wall-clock reading to a UTC offset.
func (dt LocalDateTime) AtOffset(offset ZoneOffset) OffsetDateTime {
	return OffsetDateTime{dateTime: dt, offset: offset}
}

// ToEpochSecond converts the wall-clock reading at the given offset to an
// epoch second, dropping the nanosecond component.
func (dt LocalDateTime) ToEpochSecond(offset ZoneOffset) int64 {
	secs := dt.date.EpochDay()*secondsPerDay + int64(dt.time.SecondOfDay())
	return secs - int64(offset.totalSeconds)
}

// Compare orders date-times chronologically by their wall-clock reading.
func (dt LocalDateTime) Compare(other LocalDateTime) int {
	if c := dt.date.Compare(other.date); c != 0 {
		return c
	}
	return dt.time.Compare(other.time)
}

func (dt LocalDateTime) IsBefore(other LocalDateTime) bool { return dt.Compare(other) < 0 }

func (dt LocalDateTime) IsAfter(other LocalDateTime) bool { return dt.Compare(other) > 0 }

func (dt LocalDateTime) Equal(other LocalDateTime) bool { return dt == other }

// String renders the ISO-8601 form, the date and time joined by 'T'.
func (dt LocalDateTime) String() string {
	return dt.date.String() + "T" + dt.time.String()
}

// ParseLocalDateTime reads the yyyy-MM-ddTHH:mm[:ss[.fraction]] form.
func ParseLocalDateTime(s string) (LocalDateTime, error) {
	i := strings.IndexByte(s, 'T')
	if i < 0 {
		return LocalDateTime{}, dErrors.Newf(dErrors.CodeInvalidValue, "cannot parse %q as a date-time", s)
	}
	d, err := ParseLocalDate(s[:i])
	if err != nil {
		return LocalDateTime{}, dErrors.Wrapf(err, dErrors.CodeInvalidValue, "cannot parse %q as a date-time", s)
	}
	t, err := ParseLocalTime(s[i+1:])
	if err != nil {
		return LocalDateTime{}, dErrors.Wrapf(err, dErrors.CodeInvalidValue, "cannot parse %q as a date-time", s)
	}
	return LocalDateTime{date: d, time: t}, nil
}

// MustParseLocalDateTime is ParseLocalDateTime for fixed inputs known to be
// valid.
func MustParseLocalDateTime(s string) LocalDateTime {
	dt, err := ParseLocalDateTime(s)
	if err != nil {
		panic(err)
	}
	return dt
}

func (dt LocalDateTime) MarshalText() ([]byte, error) {
	return []byte(dt.String()), nil
}

func (dt *LocalDateTime) UnmarshalText(text []byte) error {
	parsed, err := ParseLocalDateTime(string(text))
	if err != nil {
		return err
	}
	*dt = parsed
	return nil
}

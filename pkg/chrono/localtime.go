package chrono

import (
	"fmt"
	"math"
	"strings"
	"time"

	dErrors "tempus/pkg/domain-errors"
)

const (
	hoursPerDay      = 24
	minutesPerHour   = 60
	minutesPerDay    = minutesPerHour * hoursPerDay
	secondsPerMinute = 60
	secondsPerHour   = secondsPerMinute * minutesPerHour
	secondsPerDay    = secondsPerHour * hoursPerDay
	millisPerDay     = secondsPerDay * 1_000
	microsPerDay     = secondsPerDay * 1_000_000
	nanosPerSecond   = 1_000_000_000
	nanosPerMinute   = nanosPerSecond * secondsPerMinute
	nanosPerHour     = nanosPerMinute * minutesPerHour
	nanosPerDay      = nanosPerHour * hoursPerDay
)

// LocalTime is a time of day without date or offset, to nanosecond
// precision. The zero value is midnight; values are immutable and
// comparable with ==.
type LocalTime struct {
	hour   int
	minute int
	second int
	nano   int
}

var (
	Midnight = LocalTime{}
	Noon     = LocalTime{hour: 12}
)

// NewLocalTime validates each component and builds a time of day.
func NewLocalTime(hour, minute, second, nano int) (LocalTime, error) {
	if _, err := FieldHourOfDay.Range().Check(FieldHourOfDay, int64(hour)); err != nil {
		return LocalTime{}, err
	}
	if _, err := FieldMinuteOfHour.Range().Check(FieldMinuteOfHour, int64(minute)); err != nil {
		return LocalTime{}, err
	}
	if _, err := FieldSecondOfMinute.Range().Check(FieldSecondOfMinute, int64(second)); err != nil {
		return LocalTime{}, err
	}
	if _, err := FieldNanoOfSecond.Range().Check(FieldNanoOfSecond, int64(nano)); err != nil {
		return LocalTime{}, err
	}
	return LocalTime{hour: hour, minute: minute, second: second, nano: nano}, nil
}

// MustLocalTime is NewLocalTime for fixed inputs known to be valid.
func MustLocalTime(hour, minute, second, nano int) LocalTime {
	t, err := NewLocalTime(hour, minute, second, nano)
	if err != nil {
		panic(err)
	}
	return t
}

// LocalTimeOfNanoOfDay converts a nanosecond-of-day count to a time.
func LocalTimeOfNanoOfDay(nanoOfDay int64) (LocalTime, error) {
	if nanoOfDay < 0 || nanoOfDay >= nanosPerDay {
		return LocalTime{}, dErrors.Newf(dErrors.CodeInvalidValue, "value %d for nano_of_day outside range 0..%d", nanoOfDay, int64(nanosPerDay)-1)
	}
	return timeFromNanoOfDay(nanoOfDay), nil
}

// LocalTimeOfSecondOfDay converts a second-of-day count to a time.
func LocalTimeOfSecondOfDay(secondOfDay int64) (LocalTime, error) {
	if secondOfDay < 0 || secondOfDay >= secondsPerDay {
		return LocalTime{}, dErrors.Newf(dErrors.CodeInvalidValue, "value %d for second_of_day outside range 0..%d", secondOfDay, secondsPerDay-1)
	}
	return timeFromNanoOfDay(secondOfDay * nanosPerSecond), nil
}

// LocalTimeFromTime extracts the wall-clock time of tt in its own location.
func LocalTimeFromTime(tt time.Time) LocalTime {
	h, m, s := tt.Clock()
	return LocalTime{hour: h, minute: m, second: s, nano: tt.Nanosecond()}
}

func timeFromNanoOfDay(nod int64) LocalTime {
	hour := int(nod / nanosPerHour)
	nod -= int64(hour) * nanosPerHour
	minute := int(nod / nanosPerMinute)
	nod -= int64(minute) * nanosPerMinute
	second := int(nod / nanosPerSecond)
	return LocalTime{hour: hour, minute: minute, second: second, nano: int(nod - int64(second)*nanosPerSecond)}
}

func (t LocalTime) Hour() int   { return t.hour }
func (t LocalTime) Minute() int { return t.minute }
func (t LocalTime) Second() int { return t.second }
func (t LocalTime) Nano() int   { return t.nano }

// NanoOfDay returns the time as a nanosecond count from midnight.
func (t LocalTime) NanoOfDay() int64 {
	return int64(t.hour)*nanosPerHour + int64(t.minute)*nanosPerMinute +
		int64(t.second)*nanosPerSecond + int64(t.nano)
}

// SecondOfDay returns the time as a whole-second count from midnight.
func (t LocalTime) SecondOfDay() int {
	return t.hour*secondsPerHour + t.minute*secondsPerMinute + t.second
}

// Get reads a field of the time.
func (t LocalTime) Get(f Field) (int64, error) {
	return ISO.FieldValue(f, nil, &t)
}

// Range returns the range of f for a standalone time.
func (t LocalTime) Range(f Field) (ValueRange, error) {
	return ISO.FieldRangeAt(f, nil, &t)
}

// With returns a copy with one field set. The sub-second fields replace the
// whole nanosecond component at their resolution.
func (t LocalTime) With(f Field, value int64) (LocalTime, error) {
	return ISO.WithTimeField(t, f, value)
}

func (t LocalTime) WithHour(hour int) (LocalTime, error) {
	return t.With(FieldHourOfDay, int64(hour))
}

func (t LocalTime) WithMinute(minute int) (LocalTime, error) {
	return t.With(FieldMinuteOfHour, int64(minute))
}

func (t LocalTime) WithSecond(second int) (LocalTime, error) {
	return t.With(FieldSecondOfMinute, int64(second))
}

func (t LocalTime) WithNano(nano int) (LocalTime, error) {
	return t.With(FieldNanoOfSecond, int64(nano))
}

// Plus adds a time-based amount, wrapping around midnight. A standalone
// time has no date to carry into; use LocalDateTime for carrying addition.
func (t LocalTime) Plus(amount int64, u Unit) (LocalTime, error) {
	return ISO.AddToTime(t, u, amount)
}

// Minus subtracts by negating, splitting the minimum int64 into two steps.
func (t LocalTime) Minus(amount int64, u Unit) (LocalTime, error) {
	if amount == math.MinInt64 {
		e, err := t.Plus(math.MaxInt64, u)
		if err != nil {
			return LocalTime{}, err
		}
		return e.Plus(1, u)
	}
	return t.Plus(-amount, u)
}

func (t LocalTime) PlusHours(hours int64) LocalTime {
	if hours == 0 {
		return t
	}
	newHour := int((hours%hoursPerDay + int64(t.hour) + hoursPerDay) % hoursPerDay)
	return LocalTime{hour: newHour, minute: t.minute, second: t.second, nano: t.nano}
}

func (t LocalTime) PlusMinutes(minutes int64) LocalTime {
	if minutes == 0 {
		return t
	}
	mofd := int64(t.hour)*minutesPerHour + int64(t.minute)
	newMofd := (minutes%minutesPerDay + mofd + minutesPerDay) % minutesPerDay
	if mofd == newMofd {
		return t
	}
	return LocalTime{hour: int(newMofd / minutesPerHour), minute: int(newMofd % minutesPerHour), second: t.second, nano: t.nano}
}

func (t LocalTime) PlusSeconds(seconds int64) LocalTime {
	if seconds == 0 {
		return t
	}
	sofd := int64(t.SecondOfDay())
	newSofd := (seconds%secondsPerDay + sofd + secondsPerDay) % secondsPerDay
	if sofd == newSofd {
		return t
	}
	return LocalTime{hour: int(newSofd / secondsPerHour), minute: int(newSofd / secondsPerMinute % minutesPerHour), second: int(newSofd % secondsPerMinute), nano: t.nano}
}

func (t LocalTime) PlusNanos(nanos int64) LocalTime {
	if nanos == 0 {
		return t
	}
	nofd := t.NanoOfDay()
	newNofd := (nanos%nanosPerDay + nofd + nanosPerDay) % nanosPerDay
	if nofd == newNofd {
		return t
	}
	return timeFromNanoOfDay(newNofd)
}

// The Minus variants reduce modulo a day first, so even the minimum int64
// negates safely.
func (t LocalTime) MinusHours(hours int64) LocalTime {
	return t.PlusHours(-(hours % hoursPerDay))
}

func (t LocalTime) MinusMinutes(minutes int64) LocalTime {
	return t.PlusMinutes(-(minutes % minutesPerDay))
}

func (t LocalTime) MinusSeconds(seconds int64) LocalTime {
	return t.PlusSeconds(-(seconds % secondsPerDay))
}

func (t LocalTime) MinusNanos(nanos int64) LocalTime {
	return t.PlusNanos(-(nanos % nanosPerDay))
}

// plusWithOverflow adds component amounts and reports the whole days the
// result spilled over, signed. LocalDateTime turns the carry into date
// arithmetic instead of wrapping.
func (t LocalTime) plusWithOverflow(hours, minutes, seconds, nanos int64) (LocalTime, int64) {
	totDays := nanos/nanosPerDay + seconds/secondsPerDay + minutes/minutesPerDay + hours/hoursPerDay
	totNanos := nanos%nanosPerDay +
		(seconds%secondsPerDay)*nanosPerSecond +
		(minutes%minutesPerDay)*nanosPerMinute +
		(hours%hoursPerDay)*nanosPerHour
	curNofd := t.NanoOfDay()
	totNanos += curNofd
	totDays += floorDiv(totNanos, nanosPerDay)
	newNofd := floorMod(totNanos, nanosPerDay)
	if newNofd == curNofd {
		return t, totDays
	}
	return timeFromNanoOfDay(newNofd), totDays
}

// Roll changes one field by a signed amount, wrapping within its range so
// coarser fields never move.
func (t LocalTime) Roll(f Field, amount int64) (LocalTime, error) {
	return ISO.RollTime(t, f, amount)
}

// TruncatedTo zeroes every component finer than u. The unit must divide a
// day without remainder: truncating to half_days or finer works, weeks do
// not.
func (t LocalTime) TruncatedTo(u Unit) (LocalTime, error) {
	if cu, ok := u.(ChronoUnit); ok && cu == UnitNanos {
		return t, nil
	}
	if !u.IsTimeBased() {
		if cu, ok := u.(ChronoUnit); !ok || cu != UnitDays {
			return LocalTime{}, dErrors.Newf(dErrors.CodeUnsupportedUnit, "cannot truncate to unit %s", u.Name())
		}
		return Midnight, nil
	}
	d := u.Estimated()
	durNanos := d.Seconds*nanosPerSecond + int64(d.Nanos)
	if durNanos <= 0 || nanosPerDay%durNanos != 0 {
		return LocalTime{}, dErrors.Newf(dErrors.CodeUnsupportedUnit, "unit %s does not divide a day without remainder", u.Name())
	}
	nofd := t.NanoOfDay()
	return timeFromNanoOfDay((nofd / durNanos) * durNanos), nil
}

// Until measures the complete units from t to end, negative when end is
// earlier, truncating toward zero.
func (t LocalTime) Until(end LocalTime, u Unit) (int64, error) {
	cu, ok := u.(ChronoUnit)
	if !ok {
		if ops, ok := u.(UnitOps); ok {
			return ops.Between(LocalDateTime{time: t}, LocalDateTime{time: end})
		}
		return 0, errUnitUnsupported(ISO, u)
	}
	nanos := end.NanoOfDay() - t.NanoOfDay()
	switch cu {
	case UnitNanos:
		return nanos, nil
	case UnitMicros:
		return nanos / 1_000, nil
	case UnitMillis:
		return nanos / 1_000_000, nil
	case UnitSeconds:
		return nanos / nanosPerSecond, nil
	case UnitMinutes:
		return nanos / nanosPerMinute, nil
	case UnitHours:
		return nanos / nanosPerHour, nil
	case UnitHalfDays:
		return nanos / (12 * nanosPerHour), nil
	}
	return 0, dErrors.Newf(dErrors.CodeUnsupportedUnit, "unit %s cannot measure between times", cu)
}

// AtDate pairs the time with a calendar date.
func (t LocalTime) AtDate(d LocalDate) LocalDateTime {
	return LocalDateTime{date: d, time: t}
}

// Compare orders times within the day.
func (t LocalTime) Compare(other LocalTime) int {
	switch {
	case t.hour != other.hour:
		return compareInt(t.hour, other.hour)
	case t.minute != other.minute:
		return compareInt(t.minute, other.minute)
	case t.second != other.second:
		return compareInt(t.second, other.second)
	}
	return compareInt(t.nano, other.nano)
}

func (t LocalTime) IsBefore(other LocalTime) bool { return t.Compare(other) < 0 }

func (t LocalTime) IsAfter(other LocalTime) bool { return t.Compare(other) > 0 }

func (t LocalTime) Equal(other LocalTime) bool { return t == other }

// String renders the shortest ISO-8601 form that round-trips: HH:mm, then
// seconds when nonzero, then a fraction trimmed to milli, micro or nano
// width.
func (t LocalTime) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%02d:%02d", t.hour, t.minute)
	if t.second > 0 || t.nano > 0 {
		fmt.Fprintf(&b, ":%02d", t.second)
		switch {
		case t.nano == 0:
		case t.nano%1_000_000 == 0:
			fmt.Fprintf(&b, ".%03d", t.nano/1_000_000)
		case t.nano%1_000 == 0:
			fmt.Fprintf(&b, ".%06d", t.nano/1_000)
		default:
			fmt.Fprintf(&b, ".%09d", t.nano)
		}
	}
	return b.String()
}

// ParseLocalTime reads HH:mm with optional seconds and an optional fraction
// of one to nine digits.
func ParseLocalTime(s string) (LocalTime, error) {
	if len(s) < 5 || s[2] != ':' {
		return LocalTime{}, errParseTime(s)
	}
	hour, err := parseTwoDigits(s[:2])
	if err != nil {
		return LocalTime{}, errParseTime(s)
	}
	minute, err := parseTwoDigits(s[3:5])
	if err != nil {
		return LocalTime{}, errParseTime(s)
	}
	second, nano := 0, 0
	if rest := s[5:]; rest != "" {
		if len(rest) < 3 || rest[0] != ':' {
			return LocalTime{}, errParseTime(s)
		}
		second, err = parseTwoDigits(rest[1:3])
		if err != nil {
			return LocalTime{}, errParseTime(s)
		}
		if frac := rest[3:]; frac != "" {
			if frac[0] != '.' {
				return LocalTime{}, errParseTime(s)
			}
			nano, err = parseFraction(frac[1:])
			if err != nil {
				return LocalTime{}, errParseTime(s)
			}
		}
	}
	t, err := NewLocalTime(hour, minute, second, nano)
	if err != nil {
		return LocalTime{}, dErrors.Wrapf(err, dErrors.CodeInvalidValue, "cannot parse %q as a time", s)
	}
	return t, nil
}

// MustParseLocalTime is ParseLocalTime for fixed inputs known to be valid.
func MustParseLocalTime(s string) LocalTime {
	t, err := ParseLocalTime(s)
	if err != nil {
		panic(err)
	}
	return t
}

func errParseTime(s string) error {
	return dErrors.Newf(dErrors.CodeInvalidValue, "cannot parse %q as a time", s)
}

// parseFraction scales one to nine fractional digits to nanoseconds.
func parseFraction(digits string) (int, error) {
	if len(digits) == 0 || len(digits) > 9 {
		return 0, fmt.Errorf("fraction %q must be 1..9 digits", digits)
	}
	nano := 0
	for _, c := range []byte(digits) {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("fraction %q is not numeric", digits)
		}
		nano = nano*10 + int(c-'0')
	}
	for i := len(digits); i < 9; i++ {
		nano *= 10
	}
	return nano, nil
}

func (t LocalTime) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *LocalTime) UnmarshalText(text []byte) error {
	parsed, err := ParseLocalTime(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

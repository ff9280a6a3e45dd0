package chrono

import (
	"fmt"

	dErrors "tempus/pkg/domain-errors"
)

// Offsets beyond eighteen hours from UTC have no use; the bound keeps
// epoch-second arithmetic far from int64 edges.
const maxOffsetSeconds = 18 * secondsPerHour

// ZoneOffset is a fixed displacement from UTC in whole seconds. It carries
// no zone rules; resolving a named zone to an offset happens elsewhere. The
// zero value is UTC; values are immutable and comparable with ==.
type ZoneOffset struct {
	totalSeconds int
}

var UTC = ZoneOffset{}

// NewZoneOffset validates a displacement given in seconds.
func NewZoneOffset(totalSeconds int) (ZoneOffset, error) {
	if _, err := FieldOffsetSeconds.Range().Check(FieldOffsetSeconds, int64(totalSeconds)); err != nil {
		return ZoneOffset{}, err
	}
	return ZoneOffset{totalSeconds: totalSeconds}, nil
}

// ZoneOffsetOfHours builds a whole-hour offset.
func ZoneOffsetOfHours(hours int) (ZoneOffset, error) {
	return NewZoneOffset(hours * secondsPerHour)
}

// ZoneOffsetOfHoursMinutes builds an offset from hour and minute parts,
// which must agree in sign.
func ZoneOffsetOfHoursMinutes(hours, minutes int) (ZoneOffset, error) {
	if hours > 0 && minutes < 0 || hours < 0 && minutes > 0 {
		return ZoneOffset{}, dErrors.Newf(dErrors.CodeInvalidValue, "offset hour %d and minute %d differ in sign", hours, minutes)
	}
	if minutes < -59 || minutes > 59 {
		return ZoneOffset{}, dErrors.Newf(dErrors.CodeInvalidValue, "value %d for offset minute outside range -59..59", minutes)
	}
	return NewZoneOffset(hours*secondsPerHour + minutes*secondsPerMinute)
}

// TotalSeconds returns the displacement in seconds, negative west of UTC.
func (o ZoneOffset) TotalSeconds() int { return o.totalSeconds }

func (o ZoneOffset) IsUTC() bool { return o.totalSeconds == 0 }

// Get reads offset_seconds; no other field applies to a bare offset.
func (o ZoneOffset) Get(f Field) (int64, error) {
	if cf, ok := f.(ChronoField); ok && cf == FieldOffsetSeconds {
		return int64(o.totalSeconds), nil
	}
	return 0, dErrors.Newf(dErrors.CodeUnsupportedField, "field %s is not supported by an offset", f.Name())
}

// Compare orders offsets by the instants they assign to a shared wall-clock
// reading: a larger displacement reads an earlier instant, so +02:00 sorts
// before +01:00.
func (o ZoneOffset) Compare(other ZoneOffset) int {
	return compareInt(other.totalSeconds, o.totalSeconds)
}

func (o ZoneOffset) Equal(other ZoneOffset) bool { return o == other }

// String renders "Z" for UTC, otherwise ±HH:MM with a seconds part only
// when nonzero.
func (o ZoneOffset) String() string {
	if o.totalSeconds == 0 {
		return "Z"
	}
	abs := o.totalSeconds
	sign := "+"
	if abs < 0 {
		abs = -abs
		sign = "-"
	}
	h, m, s := abs/secondsPerHour, abs/secondsPerMinute%minutesPerHour, abs%secondsPerMinute
	if s != 0 {
		return fmt.Sprintf("%s%02d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%s%02d:%02d", sign, h, m)
}

// ParseZoneOffset reads "Z", ±HH, ±HH:MM or ±HH:MM:SS.
func ParseZoneOffset(s string) (ZoneOffset, error) {
	if s == "Z" {
		return UTC, nil
	}
	if len(s) == 0 || (s[0] != '+' && s[0] != '-') {
		return ZoneOffset{}, errParseOffset(s)
	}
	var h, m, sec int
	var err error
	switch len(s) {
	case 3:
		h, err = parseTwoDigits(s[1:3])
	case 6:
		if s[3] != ':' {
			return ZoneOffset{}, errParseOffset(s)
		}
		if h, err = parseTwoDigits(s[1:3]); err == nil {
			m, err = parseTwoDigits(s[4:6])
		}
	case 9:
		if s[3] != ':' || s[6] != ':' {
			return ZoneOffset{}, errParseOffset(s)
		}
		if h, err = parseTwoDigits(s[1:3]); err == nil {
			if m, err = parseTwoDigits(s[4:6]); err == nil {
				sec, err = parseTwoDigits(s[7:9])
			}
		}
	default:
		return ZoneOffset{}, errParseOffset(s)
	}
	if err != nil || m > 59 || sec > 59 {
		return ZoneOffset{}, errParseOffset(s)
	}
	total := h*secondsPerHour + m*secondsPerMinute + sec
	if s[0] == '-' {
		total = -total
	}
	o, err := NewZoneOffset(total)
	if err != nil {
		return ZoneOffset{}, dErrors.Wrapf(err, dErrors.CodeInvalidValue, "cannot parse %q as an offset", s)
	}
	return o, nil
}

// MustParseZoneOffset is ParseZoneOffset for fixed inputs known to be valid.
func MustParseZoneOffset(s string) ZoneOffset {
	o, err := ParseZoneOffset(s)
	if err != nil {
		panic(err)
	}
	return o
}

func errParseOffset(s string) error {
	return dErrors.Newf(dErrors.CodeInvalidValue, "cannot parse %q as an offset", s)
}

func (o ZoneOffset) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *ZoneOffset) UnmarshalText(text []byte) error {
	parsed, err := ParseZoneOffset(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

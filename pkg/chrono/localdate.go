package chrono

import (
	"fmt"
	"math"
	"strconv"
	"time"

	dErrors "tempus/pkg/domain-errors"
)

// Year bounds shared by all calendars. Wide enough that epoch-day and
// epoch-month values stay comfortably inside int64.
const (
	MinYear = -999_999_999
	MaxYear = 999_999_999
)

// Epoch-day bounds implied by the year bounds: MinYear-01-01 and
// MaxYear-12-31 relative to 1970-01-01.
const (
	MinEpochDay = -365_243_219_162
	MaxEpochDay = 365_241_780_471
)

const (
	daysPerCycle   = 146_097 // days in a 400-year Gregorian cycle
	days0000To1970 = daysPerCycle*5 - (30*365 + 7)
)

// LocalDate is a calendar date without time or offset, held as an ISO
// year/month/day triple. The zero value is the zero year's January 1st;
// values are immutable and comparable with ==.
type LocalDate struct {
	year  int
	month int
	day   int
}

// NewLocalDate validates year, month and day and builds a date. The day is
// checked against the real month length, so February 29th of a non-leap
// year is rejected rather than adjusted.
func NewLocalDate(year, month, day int) (LocalDate, error) {
	if err := checkYear(year); err != nil {
		return LocalDate{}, err
	}
	if _, err := FieldMonthOfYear.Range().Check(FieldMonthOfYear, int64(month)); err != nil {
		return LocalDate{}, err
	}
	n := isoLengthOfMonth(year, month)
	if _, err := NewRange(1, int64(n)).Check(FieldDayOfMonth, int64(day)); err != nil {
		return LocalDate{}, err
	}
	return LocalDate{year: year, month: month, day: day}, nil
}

// MustLocalDate is NewLocalDate for fixed inputs known to be valid.
func MustLocalDate(year, month, day int) LocalDate {
	d, err := NewLocalDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// LocalDateOfEpochDay converts a 1970-01-01-relative day count to a date.
func LocalDateOfEpochDay(epochDay int64) (LocalDate, error) {
	if _, err := FieldEpochDay.Range().Check(FieldEpochDay, epochDay); err != nil {
		return LocalDate{}, err
	}
	return dateFromEpochDay(epochDay), nil
}

// LocalDateOfYearDay builds a date from a year and a 1-based ordinal day.
func LocalDateOfYearDay(year, dayOfYear int) (LocalDate, error) {
	if err := checkYear(year); err != nil {
		return LocalDate{}, err
	}
	n := isoLengthOfYear(year)
	if _, err := NewRange(1, int64(n)).Check(FieldDayOfYear, int64(dayOfYear)); err != nil {
		return LocalDate{}, err
	}
	return yearDayDate(year, dayOfYear), nil
}

// yearDayDate is the conversion behind LocalDateOfYearDay, after range
// checking. The /31 estimate lands on the right month or the one before it.
func yearDayDate(year, dayOfYear int) LocalDate {
	leap := isoLeapYear(year)
	month := (dayOfYear-1)/31 + 1
	if dayOfYear > isoFirstDayOfYear(month, leap)+isoLengthOfMonthLeap(month, leap)-1 {
		month++
	}
	day := dayOfYear - isoFirstDayOfYear(month, leap) + 1
	return LocalDate{year: year, month: month, day: day}
}

// LocalDateFromTime extracts the calendar date of tt in its own location.
func LocalDateFromTime(tt time.Time) LocalDate {
	y, m, d := tt.Date()
	return LocalDate{year: y, month: int(m), day: d}
}

// dateFromEpochDay is the conversion behind LocalDateOfEpochDay, after
// range checking. It shifts the epoch to 0000-03-01 so each leap day falls
// at the end of its cycle, estimates the year, then corrects.
func dateFromEpochDay(epochDay int64) LocalDate {
	zeroDay := epochDay + days0000To1970
	zeroDay -= 60
	var adjust int64
	if zeroDay < 0 {
		adjustCycles := (zeroDay+1)/daysPerCycle - 1
		adjust = adjustCycles * 400
		zeroDay += -adjustCycles * daysPerCycle
	}
	yearEst := (400*zeroDay + 591) / daysPerCycle
	doyEst := zeroDay - (365*yearEst + yearEst/4 - yearEst/100 + yearEst/400)
	if doyEst < 0 {
		yearEst--
		doyEst = zeroDay - (365*yearEst + yearEst/4 - yearEst/100 + yearEst/400)
	}
	yearEst += adjust
	marchDoy0 := int(doyEst)
	marchMonth0 := (marchDoy0*5 + 2) / 153
	month := (marchMonth0+2)%12 + 1
	day := marchDoy0 - (marchMonth0*306+5)/10 + 1
	yearEst += int64(marchMonth0 / 10)
	return LocalDate{year: int(yearEst), month: month, day: day}
}

func checkYear(year int) error {
	if year < MinYear || year > MaxYear {
		return dErrors.Newf(dErrors.CodeInvalidValue, "value %d for year outside range %d..%d", year, MinYear, MaxYear)
	}
	return nil
}

// checkArithmeticYear guards year values produced by arithmetic, where an
// out-of-range result is an overflow rather than bad input.
func checkArithmeticYear(year int64) (int, error) {
	if year < MinYear || year > MaxYear {
		return 0, errDateOverflow()
	}
	return int(year), nil
}

func errDateOverflow() error {
	return dErrors.New(dErrors.CodeOverflow, "result exceeds the supported date range")
}

// clampDay builds a date from a validated year and month, pulling the day
// back to the last valid day of the month when needed.
func clampDay(year, month, day int) LocalDate {
	if n := isoLengthOfMonth(year, month); day > n {
		day = n
	}
	return LocalDate{year: year, month: month, day: day}
}

func (d LocalDate) Year() int  { return d.year }
func (d LocalDate) Month() int { return d.month }
func (d LocalDate) Day() int   { return d.day }

// EpochDay returns the day count relative to 1970-01-01 (which is day 0).
func (d LocalDate) EpochDay() int64 {
	y := int64(d.year)
	m := int64(d.month)
	total := 365 * y
	if y >= 0 {
		total += (y+3)/4 - (y+99)/100 + (y+399)/400
	} else {
		total -= y/-4 - y/-100 + y/-400
	}
	total += (367*m - 362) / 12
	total += int64(d.day) - 1
	if m > 2 {
		total--
		if !isoLeapYear(d.year) {
			total--
		}
	}
	return total - days0000To1970
}

// DayOfWeek returns the ISO weekday, Monday=1 through Sunday=7.
func (d LocalDate) DayOfWeek() int {
	return int(floorMod(d.EpochDay()+3, 7)) + 1
}

// DayOfYear returns the 1-based ordinal day within the year.
func (d LocalDate) DayOfYear() int {
	return isoFirstDayOfYear(d.month, isoLeapYear(d.year)) + d.day - 1
}

func (d LocalDate) IsLeapYear() bool { return isoLeapYear(d.year) }

func (d LocalDate) LengthOfMonth() int { return isoLengthOfMonth(d.year, d.month) }

func (d LocalDate) LengthOfYear() int { return isoLengthOfYear(d.year) }

// Get reads a field of the date under the ISO calendar. Chronology.FieldValue
// performs the same read under other calendars.
func (d LocalDate) Get(f Field) (int64, error) {
	return ISO.FieldValue(f, &d, nil)
}

// Range returns the range of f narrowed to this date's context: day_of_month
// on a February date tops out at 28 or 29.
func (d LocalDate) Range(f Field) (ValueRange, error) {
	return ISO.FieldRangeAt(f, &d, nil)
}

// With returns a copy with one field set under the ISO calendar. Setting a
// coarse field clamps the day if the current one no longer fits; setting a
// day field validates instead.
func (d LocalDate) With(f Field, value int64) (LocalDate, error) {
	return ISO.WithDateField(d, f, value)
}

// WithYear keeps month and day, clamping February 29th to the 28th when the
// target year is not a leap year.
func (d LocalDate) WithYear(year int) (LocalDate, error) {
	if year == d.year {
		return d, nil
	}
	if err := checkYear(year); err != nil {
		return LocalDate{}, err
	}
	return clampDay(year, d.month, d.day), nil
}

// WithMonth keeps year and day, clamping the day to the new month's length.
func (d LocalDate) WithMonth(month int) (LocalDate, error) {
	if month == d.month {
		return d, nil
	}
	if _, err := FieldMonthOfYear.Range().Check(FieldMonthOfYear, int64(month)); err != nil {
		return LocalDate{}, err
	}
	return clampDay(d.year, month, d.day), nil
}

// WithDayOfMonth rejects days beyond the month's length.
func (d LocalDate) WithDayOfMonth(day int) (LocalDate, error) {
	if day == d.day {
		return d, nil
	}
	return NewLocalDate(d.year, d.month, day)
}

// WithDayOfYear rejects ordinals beyond the year's length.
func (d LocalDate) WithDayOfYear(dayOfYear int) (LocalDate, error) {
	if dayOfYear == d.DayOfYear() {
		return d, nil
	}
	return LocalDateOfYearDay(d.year, dayOfYear)
}

// Plus adds a date-based amount under the ISO calendar. Chronology.AddToDate
// performs the same addition under other calendars.
func (d LocalDate) Plus(amount int64, u Unit) (LocalDate, error) {
	return ISO.AddToDate(d, u, amount)
}

// Minus subtracts by negating. The minimum int64 has no positive
// counterpart, so it is split into two additions instead.
func (d LocalDate) Minus(amount int64, u Unit) (LocalDate, error) {
	if amount == math.MinInt64 {
		e, err := d.Plus(math.MaxInt64, u)
		if err != nil {
			return LocalDate{}, err
		}
		return e.Plus(1, u)
	}
	return d.Plus(-amount, u)
}

func (d LocalDate) PlusDays(days int64) (LocalDate, error) {
	if days == 0 {
		return d, nil
	}
	ed, err := safeAdd(d.EpochDay(), days)
	if err != nil {
		return LocalDate{}, errDateOverflow()
	}
	if ed < MinEpochDay || ed > MaxEpochDay {
		return LocalDate{}, errDateOverflow()
	}
	return dateFromEpochDay(ed), nil
}

func (d LocalDate) PlusWeeks(weeks int64) (LocalDate, error) {
	days, err := safeMultiply(weeks, 7)
	if err != nil {
		return LocalDate{}, errDateOverflow()
	}
	return d.PlusDays(days)
}

// PlusMonths works in whole months and then clamps: January 31st plus one
// month is the last day of February.
func (d LocalDate) PlusMonths(months int64) (LocalDate, error) {
	if months == 0 {
		return d, nil
	}
	monthCount := int64(d.year)*12 + int64(d.month) - 1
	calc, err := safeAdd(monthCount, months)
	if err != nil {
		return LocalDate{}, errDateOverflow()
	}
	year, err := checkArithmeticYear(floorDiv(calc, 12))
	if err != nil {
		return LocalDate{}, err
	}
	month := int(floorMod(calc, 12)) + 1
	return clampDay(year, month, d.day), nil
}

// PlusYears keeps month and day, clamping February 29th in non-leap targets.
func (d LocalDate) PlusYears(years int64) (LocalDate, error) {
	if years == 0 {
		return d, nil
	}
	y, err := safeAdd(int64(d.year), years)
	if err != nil {
		return LocalDate{}, errDateOverflow()
	}
	year, err := checkArithmeticYear(y)
	if err != nil {
		return LocalDate{}, err
	}
	return clampDay(year, d.month, d.day), nil
}

func (d LocalDate) MinusDays(days int64) (LocalDate, error) {
	return d.Minus(days, UnitDays)
}

func (d LocalDate) MinusWeeks(weeks int64) (LocalDate, error) {
	return d.Minus(weeks, UnitWeeks)
}

func (d LocalDate) MinusMonths(months int64) (LocalDate, error) {
	return d.Minus(months, UnitMonths)
}

func (d LocalDate) MinusYears(years int64) (LocalDate, error) {
	return d.Minus(years, UnitYears)
}

// Roll changes one field by a signed amount, wrapping within the field's
// contextual range so coarser fields never move: rolling day_of_month by 1
// on January 31st gives January 1st.
func (d LocalDate) Roll(f Field, amount int64) (LocalDate, error) {
	return ISO.RollDate(d, f, amount)
}

// DaysUntil counts the days from d to end; negative when end is earlier.
func (d LocalDate) DaysUntil(end LocalDate) int64 {
	return end.EpochDay() - d.EpochDay()
}

// MonthsUntil counts complete months from d to end. Packing the day into
// the low bits makes one truncating division handle the partial month.
func (d LocalDate) MonthsUntil(end LocalDate) int64 {
	packed1 := (int64(d.year)*12+int64(d.month)-1)*32 + int64(d.day)
	packed2 := (int64(end.year)*12+int64(end.month)-1)*32 + int64(end.day)
	return (packed2 - packed1) / 32
}

// Until measures the complete units from d to end, truncating toward zero.
func (d LocalDate) Until(end LocalDate, u Unit) (int64, error) {
	cu, ok := u.(ChronoUnit)
	if !ok {
		if ops, ok := u.(UnitOps); ok {
			return ops.Between(LocalDateTime{date: d}, LocalDateTime{date: end})
		}
		return 0, errUnitUnsupported(ISO, u)
	}
	switch cu {
	case UnitDays:
		return d.DaysUntil(end), nil
	case UnitWeeks:
		return d.DaysUntil(end) / 7, nil
	case UnitMonths:
		return d.MonthsUntil(end), nil
	case UnitQuarters:
		return d.MonthsUntil(end) / 3, nil
	case UnitYears:
		return d.MonthsUntil(end) / 12, nil
	case UnitDecades:
		return d.MonthsUntil(end) / 120, nil
	case UnitCenturies:
		return d.MonthsUntil(end) / 1200, nil
	case UnitMillennia:
		return d.MonthsUntil(end) / 12000, nil
	case UnitEras:
		return eraOf(end.year) - eraOf(d.year), nil
	}
	return 0, dErrors.Newf(dErrors.CodeUnsupportedUnit, "unit %s cannot measure between dates", cu)
}

// AtTime pairs the date with a time of day.
func (d LocalDate) AtTime(t LocalTime) LocalDateTime {
	return LocalDateTime{date: d, time: t}
}

// AtStartOfDay pairs the date with midnight.
func (d LocalDate) AtStartOfDay() LocalDateTime {
	return LocalDateTime{date: d}
}

// Compare orders dates chronologically.
func (d LocalDate) Compare(other LocalDate) int {
	switch {
	case d.year != other.year:
		return compareInt(d.year, other.year)
	case d.month != other.month:
		return compareInt(d.month, other.month)
	}
	return compareInt(d.day, other.day)
}

func (d LocalDate) IsBefore(other LocalDate) bool { return d.Compare(other) < 0 }

func (d LocalDate) IsAfter(other LocalDate) bool { return d.Compare(other) > 0 }

func (d LocalDate) Equal(other LocalDate) bool { return d == other }

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// String renders the ISO-8601 form yyyy-MM-dd. Years are zero-padded to
// four digits; years beyond 9999 carry an explicit sign.
func (d LocalDate) String() string {
	return formatYear(d.year) + fmt.Sprintf("-%02d-%02d", d.month, d.day)
}

func formatYear(year int) string {
	switch {
	case year > 9999:
		return fmt.Sprintf("+%d", year)
	case year >= 0:
		return fmt.Sprintf("%04d", year)
	case year >= -9999:
		return fmt.Sprintf("-%04d", -year)
	}
	return strconv.Itoa(year)
}

// ParseLocalDate reads the yyyy-MM-dd form produced by String, including
// signed wide years.
func ParseLocalDate(s string) (LocalDate, error) {
	n := len(s)
	if n < 10 || s[n-3] != '-' || s[n-6] != '-' {
		return LocalDate{}, errParseDate(s)
	}
	year, err := parseYear(s[:n-6])
	if err != nil {
		return LocalDate{}, errParseDate(s)
	}
	month, err := parseTwoDigits(s[n-5 : n-3])
	if err != nil {
		return LocalDate{}, errParseDate(s)
	}
	day, err := parseTwoDigits(s[n-2:])
	if err != nil {
		return LocalDate{}, errParseDate(s)
	}
	d, err := NewLocalDate(year, month, day)
	if err != nil {
		return LocalDate{}, dErrors.Wrapf(err, dErrors.CodeInvalidValue, "cannot parse %q as a date", s)
	}
	return d, nil
}

// MustParseLocalDate is ParseLocalDate for fixed inputs known to be valid.
func MustParseLocalDate(s string) LocalDate {
	d, err := ParseLocalDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func errParseDate(s string) error {
	return dErrors.Newf(dErrors.CodeInvalidValue, "cannot parse %q as a date", s)
}

// parseYear accepts an optionally signed year of at least four digits.
func parseYear(s string) (int, error) {
	digits := s
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		digits = s[1:]
	}
	if len(digits) < 4 {
		return 0, fmt.Errorf("year %q too short", s)
	}
	y, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if y < MinYear || y > MaxYear {
		return 0, fmt.Errorf("year %d out of range", y)
	}
	return int(y), nil
}

// parseTwoDigits rejects signs and widths that strconv would accept.
func parseTwoDigits(s string) (int, error) {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, fmt.Errorf("not a two-digit number: %q", s)
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), nil
}

func (d LocalDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *LocalDate) UnmarshalText(text []byte) error {
	parsed, err := ParseLocalDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

package chrono

import (
	dErrors "tempus/pkg/domain-errors"
)

// Chronology is a calendar system: it knows how years divide into months and
// days, resolves field values against date/time context, and implements the
// calendar-sensitive arithmetic (set, add, roll). Implementations are
// stateless; the package-level ISO and Coptic values are the only instances.
//
// Date and time context is passed as pointers because some fields need only
// one side of it; nil means that side is absent.
type Chronology interface {
	Name() string
	IsLeapYear(year int) bool
	MonthsInYear() int
	LengthOfMonth(year, month int) (int, error)
	LengthOfYear(year int) int

	FieldRange(f Field) ValueRange
	FieldRangeAt(f Field, date *LocalDate, t *LocalTime) (ValueRange, error)
	FieldValue(f Field, date *LocalDate, t *LocalTime) (int64, error)

	WithDateField(date LocalDate, f Field, value int64) (LocalDate, error)
	WithTimeField(t LocalTime, f Field, value int64) (LocalTime, error)
	WithDateTimeField(dt LocalDateTime, f Field, value int64) (LocalDateTime, error)

	AddToDate(date LocalDate, u Unit, amount int64) (LocalDate, error)
	AddToTime(t LocalTime, u Unit, amount int64) (LocalTime, error)
	AddToDateTime(dt LocalDateTime, u Unit, amount int64) (LocalDateTime, error)

	RollDate(date LocalDate, f Field, amount int64) (LocalDate, error)
	RollTime(t LocalTime, f Field, amount int64) (LocalTime, error)
	RollDateTime(dt LocalDateTime, f Field, amount int64) (LocalDateTime, error)
}

// The built-in calendar systems.
var (
	ISO    Chronology = isoChronology{}
	Coptic Chronology = copticChronology{}
)

var (
	chronologyOrder  = []Chronology{ISO, Coptic}
	chronologyByName = map[string]Chronology{
		ISO.Name():    ISO,
		Coptic.Name(): Coptic,
	}
)

// Chronologies returns the registered calendar systems, ISO first.
func Chronologies() []Chronology {
	out := make([]Chronology, len(chronologyOrder))
	copy(out, chronologyOrder)
	return out
}

// ChronologyByName resolves a calendar system by its registry name
// ("iso", "coptic").
func ChronologyByName(name string) (Chronology, error) {
	c, ok := chronologyByName[name]
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeInvalidValue, "unknown chronology %q", name)
	}
	return c, nil
}

func errFieldUnsupported(c Chronology, f Field) error {
	return dErrors.Newf(dErrors.CodeUnsupportedField, "field %s is not supported by the %s chronology", f.Name(), c.Name())
}

func errUnitUnsupported(c Chronology, u Unit) error {
	return dErrors.Newf(dErrors.CodeUnsupportedUnit, "unit %s is not supported by the %s chronology", u.Name(), c.Name())
}

func errNeedsDate(f Field) error {
	return dErrors.Newf(dErrors.CodeUnsupportedField, "field %s requires a date", f.Name())
}

func errNeedsTime(f Field) error {
	return dErrors.Newf(dErrors.CodeUnsupportedField, "field %s requires a time", f.Name())
}

func errNeedsOffset(f Field) error {
	return dErrors.Newf(dErrors.CodeUnsupportedField, "field %s requires an offset", f.Name())
}

// eraOf encodes the two-era scheme shared by the built-in calendars:
// era 1 covers proleptic years >= 1, era 0 everything before.
func eraOf(year int) int64 {
	if year >= 1 {
		return 1
	}
	return 0
}

func yearOfEra(year int) int64 {
	if year >= 1 {
		return int64(year)
	}
	return int64(1 - year)
}

// yearOfEraRange narrows year_of_era to the era of the supplied date: the
// backward-counting era holds one more year than the forward one.
func yearOfEraRange(date *LocalDate) ValueRange {
	if date == nil {
		return FieldYearOfEra.Range()
	}
	if date.year >= 1 {
		return NewRange(1, MaxYear)
	}
	return NewRange(1, -MinYear+1)
}

// timeFieldValue reads a time-based field. Callers dispatch only fields for
// which ChronoField.IsTimeBased holds.
func timeFieldValue(f ChronoField, t LocalTime) int64 {
	switch f {
	case FieldHourOfDay:
		return int64(t.hour)
	case FieldMinuteOfHour:
		return int64(t.minute)
	case FieldSecondOfMinute:
		return int64(t.second)
	case FieldMilliOfSecond:
		return int64(t.nano / 1_000_000)
	case FieldMicroOfSecond:
		return int64(t.nano / 1_000)
	case FieldNanoOfSecond:
		return int64(t.nano)
	}
	return 0
}

// withTimeField sets a time-based field after validating the value. The
// sub-second fields replace the whole nanosecond component at their
// resolution: setting milli_of_second to 3 yields nano 3,000,000.
func withTimeField(c Chronology, t LocalTime, f Field, value int64) (LocalTime, error) {
	cf, ok := f.(ChronoField)
	if !ok {
		if fr, ok := f.(FieldRules); ok {
			return fr.ApplyToTime(c, t, value)
		}
		return LocalTime{}, errFieldUnsupported(c, f)
	}
	if !cf.IsTimeBased() {
		return LocalTime{}, dErrors.Newf(dErrors.CodeUnsupportedField, "field %s cannot be applied to a time", cf)
	}
	if _, err := cf.Range().Check(cf, value); err != nil {
		return LocalTime{}, err
	}
	v := int(value)
	switch cf {
	case FieldHourOfDay:
		return LocalTime{hour: v, minute: t.minute, second: t.second, nano: t.nano}, nil
	case FieldMinuteOfHour:
		return LocalTime{hour: t.hour, minute: v, second: t.second, nano: t.nano}, nil
	case FieldSecondOfMinute:
		return LocalTime{hour: t.hour, minute: t.minute, second: v, nano: t.nano}, nil
	case FieldMilliOfSecond:
		return LocalTime{hour: t.hour, minute: t.minute, second: t.second, nano: v * 1_000_000}, nil
	case FieldMicroOfSecond:
		return LocalTime{hour: t.hour, minute: t.minute, second: t.second, nano: v * 1_000}, nil
	}
	return LocalTime{hour: t.hour, minute: t.minute, second: t.second, nano: v}, nil
}

// addToTime adds a time-based unit to a standalone time, wrapping around
// midnight. Only a composed date-time carries overflow into the date.
func addToTime(c Chronology, t LocalTime, u Unit, amount int64) (LocalTime, error) {
	cu, ok := u.(ChronoUnit)
	if !ok {
		if ops, ok := u.(UnitOps); ok {
			return ops.AddToTime(t, amount)
		}
		return LocalTime{}, errUnitUnsupported(c, u)
	}
	switch cu {
	case UnitNanos:
		return t.PlusNanos(amount), nil
	case UnitMicros:
		return t.PlusNanos((amount % microsPerDay) * 1_000), nil
	case UnitMillis:
		return t.PlusNanos((amount % millisPerDay) * 1_000_000), nil
	case UnitSeconds:
		return t.PlusSeconds(amount), nil
	case UnitMinutes:
		return t.PlusMinutes(amount), nil
	case UnitHours:
		return t.PlusHours(amount), nil
	case UnitHalfDays:
		return t.PlusHours((amount % 2) * 12), nil
	}
	return LocalTime{}, dErrors.Newf(dErrors.CodeUnsupportedUnit, "unit %s cannot be applied to a time", cu)
}

// addToDateTime applies a unit to a composed date-time. Time-based units
// carry whole days into the date instead of wrapping.
func addToDateTime(c Chronology, dt LocalDateTime, u Unit, amount int64) (LocalDateTime, error) {
	cu, ok := u.(ChronoUnit)
	if !ok {
		if ops, ok := u.(UnitOps); ok {
			return ops.AddToDateTime(dt, amount)
		}
		return LocalDateTime{}, errUnitUnsupported(c, u)
	}
	switch cu {
	case UnitNanos:
		return dt.PlusNanos(amount)
	case UnitMicros:
		return dt.plusDaysTime(amount/microsPerDay, 0, 0, 0, (amount%microsPerDay)*1_000)
	case UnitMillis:
		return dt.plusDaysTime(amount/millisPerDay, 0, 0, 0, (amount%millisPerDay)*1_000_000)
	case UnitSeconds:
		return dt.PlusSeconds(amount)
	case UnitMinutes:
		return dt.PlusMinutes(amount)
	case UnitHours:
		return dt.PlusHours(amount)
	case UnitHalfDays:
		// Split so neither part can overflow the hour multiplication.
		return dt.plusDaysTime(amount/256, (amount%256)*12, 0, 0, 0)
	}
	date, err := c.AddToDate(dt.date, cu, amount)
	if err != nil {
		return LocalDateTime{}, err
	}
	return LocalDateTime{date: date, time: dt.time}, nil
}

// withDateTimeField routes a field set to the date or time side of a
// composed value.
func withDateTimeField(c Chronology, dt LocalDateTime, f Field, value int64) (LocalDateTime, error) {
	if cf, ok := f.(ChronoField); ok {
		switch {
		case cf.IsDateBased():
			date, err := c.WithDateField(dt.date, cf, value)
			if err != nil {
				return LocalDateTime{}, err
			}
			return LocalDateTime{date: date, time: dt.time}, nil
		case cf.IsTimeBased():
			t, err := c.WithTimeField(dt.time, cf, value)
			if err != nil {
				return LocalDateTime{}, err
			}
			return LocalDateTime{date: dt.date, time: t}, nil
		}
		return LocalDateTime{}, errNeedsOffset(cf)
	}
	fr, ok := f.(FieldRules)
	if !ok {
		return LocalDateTime{}, errFieldUnsupported(c, f)
	}
	if f.IsTimeBased() {
		t, err := fr.ApplyToTime(c, dt.time, value)
		if err != nil {
			return LocalDateTime{}, err
		}
		return LocalDateTime{date: dt.date, time: t}, nil
	}
	date, err := fr.ApplyToDate(c, dt.date, value)
	if err != nil {
		return LocalDateTime{}, err
	}
	return LocalDateTime{date: date, time: dt.time}, nil
}

// rollValue circles cur by amount within r. The range must already be
// narrowed to the value's context.
func rollValue(r ValueRange, cur, amount int64) int64 {
	span := r.Span()
	amt := floorMod(amount, span)
	return r.Min() + floorMod(cur-r.Min()+amt, span)
}

// rollDate changes one field by a signed amount, wrapping within the field's
// contextual range so no coarser field moves.
func rollDate(c Chronology, date LocalDate, f Field, amount int64) (LocalDate, error) {
	r, err := c.FieldRangeAt(f, &date, nil)
	if err != nil {
		return LocalDate{}, err
	}
	cur, err := c.FieldValue(f, &date, nil)
	if err != nil {
		return LocalDate{}, err
	}
	next := rollValue(r, cur, amount)
	if next == cur {
		return date, nil
	}
	return c.WithDateField(date, f, next)
}

func rollTime(c Chronology, t LocalTime, f Field, amount int64) (LocalTime, error) {
	r, err := c.FieldRangeAt(f, nil, &t)
	if err != nil {
		return LocalTime{}, err
	}
	cur, err := c.FieldValue(f, nil, &t)
	if err != nil {
		return LocalTime{}, err
	}
	next := rollValue(r, cur, amount)
	if next == cur {
		return t, nil
	}
	return c.WithTimeField(t, f, next)
}

func rollDateTime(c Chronology, dt LocalDateTime, f Field, amount int64) (LocalDateTime, error) {
	if cf, ok := f.(ChronoField); ok {
		switch {
		case cf.IsTimeBased():
			t, err := c.RollTime(dt.time, cf, amount)
			if err != nil {
				return LocalDateTime{}, err
			}
			return LocalDateTime{date: dt.date, time: t}, nil
		case cf.IsDateBased():
			date, err := c.RollDate(dt.date, cf, amount)
			if err != nil {
				return LocalDateTime{}, err
			}
			return LocalDateTime{date: date, time: dt.time}, nil
		}
		return LocalDateTime{}, errNeedsOffset(cf)
	}
	r, err := c.FieldRangeAt(f, &dt.date, &dt.time)
	if err != nil {
		return LocalDateTime{}, err
	}
	cur, err := c.FieldValue(f, &dt.date, &dt.time)
	if err != nil {
		return LocalDateTime{}, err
	}
	next := rollValue(r, cur, amount)
	if next == cur {
		return dt, nil
	}
	return c.WithDateTimeField(dt, f, next)
}

package chrono

import (
	dErrors "tempus/pkg/domain-errors"
)

// isoChronology is the proleptic Gregorian calendar: twelve months, leap
// day at the end of February every fourth year except centuries off the
// 400-year cycle.
type isoChronology struct{}

func (isoChronology) Name() string { return "iso" }

func (isoChronology) IsLeapYear(year int) bool { return isoLeapYear(year) }

func (isoChronology) MonthsInYear() int { return 12 }

func (isoChronology) LengthOfMonth(year, month int) (int, error) {
	if _, err := FieldMonthOfYear.Range().Check(FieldMonthOfYear, int64(month)); err != nil {
		return 0, err
	}
	return isoLengthOfMonth(year, month), nil
}

func (isoChronology) LengthOfYear(year int) int { return isoLengthOfYear(year) }

// FieldRange returns the calendar-wide range of f; the Field defaults are
// already ISO shaped.
func (isoChronology) FieldRange(f Field) ValueRange { return f.Range() }

// FieldRangeAt narrows f to the supplied context: day_of_month to the
// month's length, day_of_year to the year's length, year_of_era to the era.
func (c isoChronology) FieldRangeAt(f Field, date *LocalDate, t *LocalTime) (ValueRange, error) {
	cf, ok := f.(ChronoField)
	if !ok {
		if fr, ok := f.(FieldRules); ok {
			return fr.FieldRange(c, date, t)
		}
		return ValueRange{}, errFieldUnsupported(c, f)
	}
	switch cf {
	case FieldDayOfMonth:
		if date != nil {
			return NewRange(1, int64(isoLengthOfMonth(date.year, date.month))), nil
		}
	case FieldDayOfYear:
		if date != nil {
			return NewRange(1, int64(isoLengthOfYear(date.year))), nil
		}
	case FieldYearOfEra:
		return yearOfEraRange(date), nil
	}
	return cf.Range(), nil
}

func (c isoChronology) FieldValue(f Field, date *LocalDate, t *LocalTime) (int64, error) {
	cf, ok := f.(ChronoField)
	if !ok {
		if fr, ok := f.(FieldRules); ok {
			return fr.FieldValue(c, date, t)
		}
		return 0, errFieldUnsupported(c, f)
	}
	switch {
	case cf.IsTimeBased():
		if t == nil {
			return 0, errNeedsTime(cf)
		}
		return timeFieldValue(cf, *t), nil
	case cf.IsDateBased():
		if date == nil {
			return 0, errNeedsDate(cf)
		}
		return isoDateFieldValue(cf, *date), nil
	}
	return 0, errNeedsOffset(cf)
}

func isoDateFieldValue(f ChronoField, d LocalDate) int64 {
	switch f {
	case FieldEra:
		return eraOf(d.year)
	case FieldYear:
		return int64(d.year)
	case FieldYearOfEra:
		return yearOfEra(d.year)
	case FieldEpochMonth:
		return (int64(d.year)-1970)*12 + int64(d.month) - 1
	case FieldMonthOfYear:
		return int64(d.month)
	case FieldEpochDay:
		return d.EpochDay()
	case FieldDayOfYear:
		return int64(d.DayOfYear())
	case FieldDayOfMonth:
		return int64(d.day)
	case FieldDayOfWeek:
		return int64(d.DayOfWeek())
	}
	return 0
}

func (c isoChronology) WithDateField(date LocalDate, f Field, value int64) (LocalDate, error) {
	cf, ok := f.(ChronoField)
	if !ok {
		if fr, ok := f.(FieldRules); ok {
			return fr.ApplyToDate(c, date, value)
		}
		return LocalDate{}, errFieldUnsupported(c, f)
	}
	if !cf.IsDateBased() {
		return LocalDate{}, dErrors.Newf(dErrors.CodeUnsupportedField, "field %s cannot be applied to a date", cf)
	}
	switch cf {
	case FieldEra:
		if _, err := cf.Range().Check(cf, value); err != nil {
			return LocalDate{}, err
		}
		if value == eraOf(date.year) {
			return date, nil
		}
		return date.WithYear(1 - date.year)
	case FieldYear:
		if _, err := cf.Range().Check(cf, value); err != nil {
			return LocalDate{}, err
		}
		return date.WithYear(int(value))
	case FieldYearOfEra:
		if _, err := yearOfEraRange(&date).Check(cf, value); err != nil {
			return LocalDate{}, err
		}
		if date.year >= 1 {
			return date.WithYear(int(value))
		}
		return date.WithYear(int(1 - value))
	case FieldEpochMonth:
		if _, err := cf.Range().Check(cf, value); err != nil {
			return LocalDate{}, err
		}
		year := int(1970 + floorDiv(value, 12))
		month := int(floorMod(value, 12)) + 1
		return clampDay(year, month, date.day), nil
	case FieldMonthOfYear:
		if _, err := cf.Range().Check(cf, value); err != nil {
			return LocalDate{}, err
		}
		return date.WithMonth(int(value))
	case FieldEpochDay:
		return LocalDateOfEpochDay(value)
	case FieldDayOfYear:
		r, err := c.FieldRangeAt(cf, &date, nil)
		if err != nil {
			return LocalDate{}, err
		}
		if _, err := r.Check(cf, value); err != nil {
			return LocalDate{}, err
		}
		return date.WithDayOfYear(int(value))
	case FieldDayOfMonth:
		r, err := c.FieldRangeAt(cf, &date, nil)
		if err != nil {
			return LocalDate{}, err
		}
		if _, err := r.Check(cf, value); err != nil {
			return LocalDate{}, err
		}
		return date.WithDayOfMonth(int(value))
	}
	// day_of_week: move within the current week.
	if _, err := cf.Range().Check(cf, value); err != nil {
		return LocalDate{}, err
	}
	return date.PlusDays(value - int64(date.DayOfWeek()))
}

func (c isoChronology) WithTimeField(t LocalTime, f Field, value int64) (LocalTime, error) {
	return withTimeField(c, t, f, value)
}

func (c isoChronology) WithDateTimeField(dt LocalDateTime, f Field, value int64) (LocalDateTime, error) {
	return withDateTimeField(c, dt, f, value)
}

func (c isoChronology) AddToDate(date LocalDate, u Unit, amount int64) (LocalDate, error) {
	cu, ok := u.(ChronoUnit)
	if !ok {
		if ops, ok := u.(UnitOps); ok {
			return ops.AddToDate(date, amount)
		}
		return LocalDate{}, errUnitUnsupported(c, u)
	}
	switch cu {
	case UnitDays:
		return date.PlusDays(amount)
	case UnitWeeks:
		return date.PlusWeeks(amount)
	case UnitMonths:
		return date.PlusMonths(amount)
	case UnitQuarters:
		months, err := safeMultiply(amount, 3)
		if err != nil {
			return LocalDate{}, errDateOverflow()
		}
		return date.PlusMonths(months)
	case UnitYears:
		return date.PlusYears(amount)
	case UnitDecades:
		return plusScaledYears(date, amount, 10)
	case UnitCenturies:
		return plusScaledYears(date, amount, 100)
	case UnitMillennia:
		return plusScaledYears(date, amount, 1000)
	case UnitEras:
		next, err := safeAdd(eraOf(date.year), amount)
		if err != nil {
			return LocalDate{}, errDateOverflow()
		}
		return c.WithDateField(date, FieldEra, next)
	}
	return LocalDate{}, dErrors.Newf(dErrors.CodeUnsupportedUnit, "unit %s cannot be applied to a date", cu)
}

func plusScaledYears(date LocalDate, amount, scale int64) (LocalDate, error) {
	years, err := safeMultiply(amount, scale)
	if err != nil {
		return LocalDate{}, errDateOverflow()
	}
	return date.PlusYears(years)
}

func (c isoChronology) AddToTime(t LocalTime, u Unit, amount int64) (LocalTime, error) {
	return addToTime(c, t, u, amount)
}

func (c isoChronology) AddToDateTime(dt LocalDateTime, u Unit, amount int64) (LocalDateTime, error) {
	return addToDateTime(c, dt, u, amount)
}

func (c isoChronology) RollDate(date LocalDate, f Field, amount int64) (LocalDate, error) {
	return rollDate(c, date, f, amount)
}

func (c isoChronology) RollTime(t LocalTime, f Field, amount int64) (LocalTime, error) {
	return rollTime(c, t, f, amount)
}

func (c isoChronology) RollDateTime(dt LocalDateTime, f Field, amount int64) (LocalDateTime, error) {
	return rollDateTime(c, dt, f, amount)
}

func isoLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func isoLengthOfYear(year int) int {
	if isoLeapYear(year) {
		return 366
	}
	return 365
}

func isoLengthOfMonth(year, month int) int {
	return isoLengthOfMonthLeap(month, isoLeapYear(year))
}

func isoLengthOfMonthLeap(month int, leap bool) int {
	switch month {
	case 2:
		if leap {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	}
	return 31
}

// isoFirstDayOfYear returns the ordinal of the month's first day.
func isoFirstDayOfYear(month int, leap bool) int {
	leapOffset := 0
	if leap {
		leapOffset = 1
	}
	switch month {
	case 1:
		return 1
	case 2:
		return 32
	case 3:
		return 60 + leapOffset
	case 4:
		return 91 + leapOffset
	case 5:
		return 121 + leapOffset
	case 6:
		return 152 + leapOffset
	case 7:
		return 182 + leapOffset
	case 8:
		return 213 + leapOffset
	case 9:
		return 244 + leapOffset
	case 10:
		return 274 + leapOffset
	case 11:
		return 305 + leapOffset
	}
	return 335 + leapOffset
}

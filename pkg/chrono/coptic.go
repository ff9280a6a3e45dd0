package chrono

import (
	dErrors "tempus/pkg/domain-errors"
)

// copticChronology views the same underlying dates through a thirteen-month
// year: twelve months of thirty days and a short intercalary month holding
// the remaining five or six days. Years, eras and ordinal days coincide with
// the ISO view; only the month/day split differs.
type copticChronology struct{}

var (
	copticMonthRange      = NewRange(1, 13)
	copticDayOfMonthRange = NewRangeSmallest(1, 5, 30)
	copticEpochMonthRange = NewRange((MinYear-1970)*13, (MaxYear-1970)*13+12)
)

func (copticChronology) Name() string { return "coptic" }

func (copticChronology) IsLeapYear(year int) bool { return isoLeapYear(year) }

func (copticChronology) MonthsInYear() int { return 13 }

func (copticChronology) LengthOfMonth(year, month int) (int, error) {
	if _, err := copticMonthRange.Check(FieldMonthOfYear, int64(month)); err != nil {
		return 0, err
	}
	return copticMonthLength(year, month), nil
}

func (copticChronology) LengthOfYear(year int) int { return isoLengthOfYear(year) }

func (c copticChronology) FieldRange(f Field) ValueRange {
	cf, ok := f.(ChronoField)
	if !ok {
		return f.Range()
	}
	switch cf {
	case FieldMonthOfYear:
		return copticMonthRange
	case FieldDayOfMonth:
		return copticDayOfMonthRange
	case FieldEpochMonth:
		return copticEpochMonthRange
	}
	return cf.Range()
}

func (c copticChronology) FieldRangeAt(f Field, date *LocalDate, t *LocalTime) (ValueRange, error) {
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
			month := copticMonthOf(date.DayOfYear())
			return NewRange(1, int64(copticMonthLength(date.year, month))), nil
		}
	case FieldDayOfYear:
		if date != nil {
			return NewRange(1, int64(isoLengthOfYear(date.year))), nil
		}
	case FieldYearOfEra:
		return yearOfEraRange(date), nil
	}
	return c.FieldRange(cf), nil
}

func (c copticChronology) FieldValue(f Field, date *LocalDate, t *LocalTime) (int64, error) {
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
		return copticDateFieldValue(cf, *date), nil
	}
	return 0, errNeedsOffset(cf)
}

func copticDateFieldValue(f ChronoField, d LocalDate) int64 {
	doy := d.DayOfYear()
	switch f {
	case FieldEpochMonth:
		return (int64(d.year)-1970)*13 + int64(copticMonthOf(doy)) - 1
	case FieldMonthOfYear:
		return int64(copticMonthOf(doy))
	case FieldDayOfMonth:
		return int64(copticDayOf(doy))
	}
	return isoDateFieldValue(f, d)
}

func (c copticChronology) WithDateField(date LocalDate, f Field, value int64) (LocalDate, error) {
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
		return copticSetYear(date, 1-date.year)
	case FieldYear:
		if _, err := cf.Range().Check(cf, value); err != nil {
			return LocalDate{}, err
		}
		return copticSetYear(date, int(value))
	case FieldYearOfEra:
		if _, err := yearOfEraRange(&date).Check(cf, value); err != nil {
			return LocalDate{}, err
		}
		if date.year >= 1 {
			return copticSetYear(date, int(value))
		}
		return copticSetYear(date, int(1-value))
	case FieldEpochMonth:
		if _, err := copticEpochMonthRange.Check(cf, value); err != nil {
			return LocalDate{}, err
		}
		year := int(1970 + floorDiv(value, 13))
		month := int(floorMod(value, 13)) + 1
		return copticMonthDay(date, year, month), nil
	case FieldMonthOfYear:
		if _, err := copticMonthRange.Check(cf, value); err != nil {
			return LocalDate{}, err
		}
		return copticMonthDay(date, date.year, int(value)), nil
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
		return yearDayDate(date.year, int(value)), nil
	case FieldDayOfMonth:
		r, err := c.FieldRangeAt(cf, &date, nil)
		if err != nil {
			return LocalDate{}, err
		}
		if _, err := r.Check(cf, value); err != nil {
			return LocalDate{}, err
		}
		month := copticMonthOf(date.DayOfYear())
		return yearDayDate(date.year, (month-1)*30+int(value)), nil
	}
	// day_of_week: move within the current week.
	if _, err := cf.Range().Check(cf, value); err != nil {
		return LocalDate{}, err
	}
	return date.PlusDays(value - int64(date.DayOfWeek()))
}

func (c copticChronology) WithTimeField(t LocalTime, f Field, value int64) (LocalTime, error) {
	return withTimeField(c, t, f, value)
}

func (c copticChronology) WithDateTimeField(dt LocalDateTime, f Field, value int64) (LocalDateTime, error) {
	return withDateTimeField(c, dt, f, value)
}

func (c copticChronology) AddToDate(date LocalDate, u Unit, amount int64) (LocalDate, error) {
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
		return copticPlusMonths(date, amount)
	case UnitQuarters:
		months, err := safeMultiply(amount, 3)
		if err != nil {
			return LocalDate{}, errDateOverflow()
		}
		return copticPlusMonths(date, months)
	case UnitYears:
		return copticPlusYears(date, amount)
	case UnitDecades:
		return copticPlusScaledYears(date, amount, 10)
	case UnitCenturies:
		return copticPlusScaledYears(date, amount, 100)
	case UnitMillennia:
		return copticPlusScaledYears(date, amount, 1000)
	case UnitEras:
		next, err := safeAdd(eraOf(date.year), amount)
		if err != nil {
			return LocalDate{}, errDateOverflow()
		}
		return c.WithDateField(date, FieldEra, next)
	}
	return LocalDate{}, dErrors.Newf(dErrors.CodeUnsupportedUnit, "unit %s cannot be applied to a date", cu)
}

func (c copticChronology) AddToTime(t LocalTime, u Unit, amount int64) (LocalTime, error) {
	return addToTime(c, t, u, amount)
}

func (c copticChronology) AddToDateTime(dt LocalDateTime, u Unit, amount int64) (LocalDateTime, error) {
	return addToDateTime(c, dt, u, amount)
}

func (c copticChronology) RollDate(date LocalDate, f Field, amount int64) (LocalDate, error) {
	return rollDate(c, date, f, amount)
}

func (c copticChronology) RollTime(t LocalTime, f Field, amount int64) (LocalTime, error) {
	return rollTime(c, t, f, amount)
}

func (c copticChronology) RollDateTime(dt LocalDateTime, f Field, amount int64) (LocalDateTime, error) {
	return rollDateTime(c, dt, f, amount)
}

// copticMonthOf derives the thirteen-month index from a 1-based ordinal day.
func copticMonthOf(dayOfYear int) int {
	return 1 + (dayOfYear-1)/30
}

func copticDayOf(dayOfYear int) int {
	return dayOfYear - (copticMonthOf(dayOfYear)-1)*30
}

// copticMonthLength assumes a valid month; the intercalary month follows
// the container year's leap rule.
func copticMonthLength(year, month int) int {
	if month <= 12 {
		return 30
	}
	if isoLeapYear(year) {
		return 6
	}
	return 5
}

// copticSetYear moves a date to another year keeping its position in the
// thirteen-month layout; the last intercalary day clamps in non-leap years.
func copticSetYear(date LocalDate, year int) (LocalDate, error) {
	if err := checkYear(year); err != nil {
		return LocalDate{}, err
	}
	return copticYearDay(date, year), nil
}

func copticYearDay(date LocalDate, year int) LocalDate {
	doy := date.DayOfYear()
	if n := isoLengthOfYear(year); doy > n {
		doy = n
	}
	return yearDayDate(year, doy)
}

// copticMonthDay moves a date to a validated year/month pair, clamping the
// day to the target month's length.
func copticMonthDay(date LocalDate, year, month int) LocalDate {
	day := copticDayOf(date.DayOfYear())
	if n := copticMonthLength(year, month); day > n {
		day = n
	}
	return yearDayDate(year, (month-1)*30+day)
}

func copticPlusMonths(date LocalDate, months int64) (LocalDate, error) {
	if months == 0 {
		return date, nil
	}
	doy := date.DayOfYear()
	monthCount := (int64(date.year)-1970)*13 + int64(copticMonthOf(doy)) - 1
	calc, err := safeAdd(monthCount, months)
	if err != nil {
		return LocalDate{}, errDateOverflow()
	}
	year, err := checkArithmeticYear(1970 + floorDiv(calc, 13))
	if err != nil {
		return LocalDate{}, err
	}
	month := int(floorMod(calc, 13)) + 1
	return copticMonthDay(date, year, month), nil
}

func copticPlusYears(date LocalDate, years int64) (LocalDate, error) {
	if years == 0 {
		return date, nil
	}
	y, err := safeAdd(int64(date.year), years)
	if err != nil {
		return LocalDate{}, errDateOverflow()
	}
	year, err := checkArithmeticYear(y)
	if err != nil {
		return LocalDate{}, err
	}
	return copticYearDay(date, year), nil
}

func copticPlusScaledYears(date LocalDate, amount, scale int64) (LocalDate, error) {
	years, err := safeMultiply(amount, scale)
	if err != nil {
		return LocalDate{}, errDateOverflow()
	}
	return copticPlusYears(date, years)
}

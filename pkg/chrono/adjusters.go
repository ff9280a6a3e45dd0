package chrono

import (
	dErrors "tempus/pkg/domain-errors"
)

// Date adjusters for the common "move to a boundary" operations. They read
// the date under the ISO calendar.

func FirstDayOfMonth(d LocalDate) LocalDate {
	return LocalDate{year: d.year, month: d.month, day: 1}
}

func LastDayOfMonth(d LocalDate) LocalDate {
	return LocalDate{year: d.year, month: d.month, day: isoLengthOfMonth(d.year, d.month)}
}

func FirstDayOfNextMonth(d LocalDate) (LocalDate, error) {
	return FirstDayOfMonth(d).PlusMonths(1)
}

func FirstDayOfYear(d LocalDate) LocalDate {
	return LocalDate{year: d.year, month: 1, day: 1}
}

func LastDayOfYear(d LocalDate) LocalDate {
	return LocalDate{year: d.year, month: 12, day: 31}
}

func FirstDayOfNextYear(d LocalDate) (LocalDate, error) {
	return FirstDayOfYear(d).PlusYears(1)
}

// NextDayOfWeek moves forward to the next occurrence of the weekday,
// always at least one day ahead.
func NextDayOfWeek(d LocalDate, dayOfWeek int) (LocalDate, error) {
	if err := checkDayOfWeek(dayOfWeek); err != nil {
		return LocalDate{}, err
	}
	daysDiff := d.DayOfWeek() - dayOfWeek
	if daysDiff >= 0 {
		return d.PlusDays(int64(7 - daysDiff))
	}
	return d.PlusDays(int64(-daysDiff))
}

// NextOrSameDayOfWeek is NextDayOfWeek except a date already on the weekday
// stays put.
func NextOrSameDayOfWeek(d LocalDate, dayOfWeek int) (LocalDate, error) {
	if err := checkDayOfWeek(dayOfWeek); err != nil {
		return LocalDate{}, err
	}
	if d.DayOfWeek() == dayOfWeek {
		return d, nil
	}
	return NextDayOfWeek(d, dayOfWeek)
}

// PreviousDayOfWeek moves backward to the previous occurrence of the
// weekday, always at least one day behind.
func PreviousDayOfWeek(d LocalDate, dayOfWeek int) (LocalDate, error) {
	if err := checkDayOfWeek(dayOfWeek); err != nil {
		return LocalDate{}, err
	}
	daysDiff := dayOfWeek - d.DayOfWeek()
	if daysDiff >= 0 {
		return d.PlusDays(int64(daysDiff - 7))
	}
	return d.PlusDays(int64(daysDiff))
}

// PreviousOrSameDayOfWeek is PreviousDayOfWeek except a date already on the
// weekday stays put.
func PreviousOrSameDayOfWeek(d LocalDate, dayOfWeek int) (LocalDate, error) {
	if err := checkDayOfWeek(dayOfWeek); err != nil {
		return LocalDate{}, err
	}
	if d.DayOfWeek() == dayOfWeek {
		return d, nil
	}
	return PreviousDayOfWeek(d, dayOfWeek)
}

func checkDayOfWeek(dayOfWeek int) error {
	if dayOfWeek < 1 || dayOfWeek > 7 {
		return dErrors.Newf(dErrors.CodeInvalidValue, "value %d for day_of_week outside range 1..7", dayOfWeek)
	}
	return nil
}

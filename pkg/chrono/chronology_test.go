package chrono

import (
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "tempus/pkg/domain-errors"
)

type ChronologySuite struct {
	suite.Suite
}

func TestChronologySuite(t *testing.T) {
	suite.Run(t, new(ChronologySuite))
}

func (s *ChronologySuite) TestRegistry() {
	s.Run("lists the built in calendars iso first", func() {
		all := Chronologies()
		s.Require().Len(all, 2)
		s.Equal("iso", all[0].Name())
		s.Equal("coptic", all[1].Name())
	})

	s.Run("resolves by name", func() {
		c, err := ChronologyByName("coptic")
		s.Require().NoError(err)
		s.Equal(13, c.MonthsInYear())

		_, err = ChronologyByName("julian")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidValue))
	})

	s.Run("returned slice is a copy", func() {
		all := Chronologies()
		all[0] = all[1]
		s.Equal("iso", Chronologies()[0].Name())
	})
}

func (s *ChronologySuite) TestContextualRanges() {
	s.Run("day of month narrows to the month length", func() {
		feb := MustLocalDate(2007, 2, 10)
		r, err := ISO.FieldRangeAt(FieldDayOfMonth, &feb, nil)
		s.Require().NoError(err)
		s.Equal(int64(28), r.Max())

		febLeap := MustLocalDate(2008, 2, 10)
		r, err = ISO.FieldRangeAt(FieldDayOfMonth, &febLeap, nil)
		s.Require().NoError(err)
		s.Equal(int64(29), r.Max())

		r, err = ISO.FieldRangeAt(FieldDayOfMonth, nil, nil)
		s.Require().NoError(err)
		s.Equal(int64(28), r.SmallestMax())
		s.Equal(int64(31), r.Max())
		s.False(r.IsFixed())
	})

	s.Run("day of year narrows to the year length", func() {
		d := MustLocalDate(2007, 6, 1)
		r, err := ISO.FieldRangeAt(FieldDayOfYear, &d, nil)
		s.Require().NoError(err)
		s.Equal(int64(365), r.Max())
	})

	s.Run("year of era depends on the era", func() {
		ce := MustLocalDate(2007, 6, 1)
		r, err := ISO.FieldRangeAt(FieldYearOfEra, &ce, nil)
		s.Require().NoError(err)
		s.Equal(int64(MaxYear), r.Max())

		bce := MustLocalDate(-10, 6, 1)
		r, err = ISO.FieldRangeAt(FieldYearOfEra, &bce, nil)
		s.Require().NoError(err)
		s.Equal(int64(-MinYear)+1, r.Max())

		r, err = ISO.FieldRangeAt(FieldYearOfEra, nil, nil)
		s.Require().NoError(err)
		s.False(r.IsFixed())
	})
}

func (s *ChronologySuite) TestMissingContext() {
	d := MustLocalDate(2007, 6, 1)
	t := MustLocalTime(10, 15, 0, 0)

	s.Run("time fields need a time", func() {
		_, err := ISO.FieldValue(FieldHourOfDay, &d, nil)
		s.True(dErrors.HasCode(err, dErrors.CodeUnsupportedField))
	})

	s.Run("date fields need a date", func() {
		_, err := ISO.FieldValue(FieldDayOfMonth, nil, &t)
		s.True(dErrors.HasCode(err, dErrors.CodeUnsupportedField))
	})

	s.Run("offset fields never resolve here", func() {
		_, err := ISO.FieldValue(FieldInstantSeconds, &d, &t)
		s.True(dErrors.HasCode(err, dErrors.CodeUnsupportedField))
	})
}

// quarterField resolves the quarter a date falls in, proving the engine
// accepts fields defined outside the package.
type quarterField struct{}

func (quarterField) Name() string      { return "quarter_of_year" }
func (quarterField) IsDateBased() bool { return true }
func (quarterField) IsTimeBased() bool { return false }
func (quarterField) Range() ValueRange { return NewRange(1, 4) }

func (quarterField) FieldRange(_ Chronology, _ *LocalDate, _ *LocalTime) (ValueRange, error) {
	return NewRange(1, 4), nil
}

func (q quarterField) FieldValue(_ Chronology, date *LocalDate, _ *LocalTime) (int64, error) {
	if date == nil {
		return 0, errNeedsDate(q)
	}
	return int64((date.Month()-1)/3 + 1), nil
}

func (q quarterField) ApplyToDate(c Chronology, date LocalDate, value int64) (LocalDate, error) {
	if _, err := q.Range().Check(q, value); err != nil {
		return LocalDate{}, err
	}
	monthInQuarter := (date.Month() - 1) % 3
	return c.WithDateField(date, FieldMonthOfYear, (value-1)*3+int64(monthInQuarter)+1)
}

func (q quarterField) ApplyToTime(_ Chronology, _ LocalTime, _ int64) (LocalTime, error) {
	return LocalTime{}, dErrors.Newf(dErrors.CodeUnsupportedField, "field %s cannot be applied to a time", q.Name())
}

// opaqueField satisfies Field but carries no resolution rules, so every
// dispatch must reject it.
type opaqueField struct{}

func (opaqueField) Name() string      { return "opaque" }
func (opaqueField) IsDateBased() bool { return true }
func (opaqueField) IsTimeBased() bool { return false }
func (opaqueField) Range() ValueRange { return NewRange(0, 0) }

func (s *ChronologySuite) TestExternalFields() {
	may := MustLocalDate(2007, 5, 15)

	s.Run("value resolves through the field's own rules", func() {
		v, err := ISO.FieldValue(quarterField{}, &may, nil)
		s.Require().NoError(err)
		s.Equal(int64(2), v)

		v, err = may.Get(quarterField{})
		s.Require().NoError(err)
		s.Equal(int64(2), v)
	})

	s.Run("set keeps the position inside the quarter", func() {
		got, err := ISO.WithDateField(may, quarterField{}, 4)
		s.Require().NoError(err)
		s.Equal(MustLocalDate(2007, 11, 15), got)

		_, err = ISO.WithDateField(may, quarterField{}, 5)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidValue))
	})

	s.Run("roll wraps within the field's range", func() {
		got, err := ISO.RollDate(may, quarterField{}, 3)
		s.Require().NoError(err)
		s.Equal(MustLocalDate(2007, 2, 15), got)
	})

	s.Run("fields without rules are rejected", func() {
		_, err := ISO.FieldValue(opaqueField{}, &may, nil)
		s.True(dErrors.HasCode(err, dErrors.CodeUnsupportedField))
		_, err = ISO.WithDateField(may, opaqueField{}, 1)
		s.True(dErrors.HasCode(err, dErrors.CodeUnsupportedField))
	})
}

// fortnightUnit counts two-week spans, proving the engine accepts units
// defined outside the package.
type fortnightUnit struct{}

func (fortnightUnit) Name() string      { return "fortnights" }
func (fortnightUnit) IsDateBased() bool { return true }
func (fortnightUnit) IsTimeBased() bool { return false }
func (fortnightUnit) Estimated() UnitDuration {
	return UnitDuration{Seconds: 14 * 86_400}
}

func (fortnightUnit) AddToDate(date LocalDate, amount int64) (LocalDate, error) {
	weeks, err := safeMultiply(amount, 2)
	if err != nil {
		return LocalDate{}, errDateOverflow()
	}
	return date.PlusWeeks(weeks)
}

func (u fortnightUnit) AddToTime(_ LocalTime, _ int64) (LocalTime, error) {
	return LocalTime{}, dErrors.Newf(dErrors.CodeUnsupportedUnit, "unit %s cannot be applied to a time", u.Name())
}

func (u fortnightUnit) AddToDateTime(dt LocalDateTime, amount int64) (LocalDateTime, error) {
	date, err := u.AddToDate(dt.Date(), amount)
	if err != nil {
		return LocalDateTime{}, err
	}
	return LocalDateTimeOf(date, dt.Time()), nil
}

func (fortnightUnit) Between(start, end LocalDateTime) (int64, error) {
	days, err := start.Until(end, UnitDays)
	if err != nil {
		return 0, err
	}
	return days / 14, nil
}

func (s *ChronologySuite) TestExternalUnits() {
	d := MustLocalDate(2007, 5, 15)

	s.Run("addition dispatches to the unit's own ops", func() {
		got, err := ISO.AddToDate(d, fortnightUnit{}, 1)
		s.Require().NoError(err)
		s.Equal(MustLocalDate(2007, 5, 29), got)

		got, err = d.Plus(2, fortnightUnit{})
		s.Require().NoError(err)
		s.Equal(MustLocalDate(2007, 6, 12), got)
	})

	s.Run("difference dispatches to Between", func() {
		n, err := d.Until(MustLocalDate(2007, 6, 13), fortnightUnit{})
		s.Require().NoError(err)
		s.Equal(int64(2), n)
	})

	s.Run("composed values route through the unit as well", func() {
		dt := d.AtTime(MustLocalTime(10, 0, 0, 0))
		got, err := dt.Plus(1, fortnightUnit{})
		s.Require().NoError(err)
		s.Equal(MustLocalDate(2007, 5, 29), got.Date())
		s.Equal(dt.Time(), got.Time())
	})

	s.Run("units without ops are rejected", func() {
		_, err := ISO.AddToTime(MustLocalTime(10, 0, 0, 0), fortnightUnit{}, 1)
		s.True(dErrors.HasCode(err, dErrors.CodeUnsupportedUnit))
	})
}

func (s *ChronologySuite) TestTimeUnitWrapping() {
	t := MustLocalTime(23, 59, 59, 999_000_000)

	s.Run("standalone times wrap instead of carrying", func() {
		got, err := ISO.AddToTime(t, UnitMillis, 2)
		s.Require().NoError(err)
		s.Equal(MustLocalTime(0, 0, 0, 1_000_000), got)

		got, err = ISO.AddToTime(MustLocalTime(11, 0, 0, 0), UnitHalfDays, 3)
		s.Require().NoError(err)
		s.Equal(MustLocalTime(23, 0, 0, 0), got)
	})

	s.Run("date units never touch a standalone time", func() {
		_, err := ISO.AddToTime(t, UnitDays, 1)
		s.True(dErrors.HasCode(err, dErrors.CodeUnsupportedUnit))
	})
}

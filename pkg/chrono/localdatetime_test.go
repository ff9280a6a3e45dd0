package chrono

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "tempus/pkg/domain-errors"
)

type LocalDateTimeSuite struct {
	suite.Suite
}

func TestLocalDateTimeSuite(t *testing.T) {
	suite.Run(t, new(LocalDateTimeSuite))
}

func (s *LocalDateTimeSuite) TestConstruction() {
	s.Run("validates both sides", func() {
		_, err := NewLocalDateTime(2007, 2, 29, 0, 0, 0, 0)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidValue))

		_, err = NewLocalDateTime(2007, 2, 28, 24, 0, 0, 0)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidValue))
	})

	s.Run("pairing keeps the parts", func() {
		d := MustLocalDate(2008, 2, 29)
		t := MustLocalTime(10, 15, 0, 0)
		dt := LocalDateTimeOf(d, t)
		s.Equal(d, dt.Date())
		s.Equal(t, dt.Time())
		s.Equal(dt, d.AtTime(t))
		s.Equal(dt, t.AtDate(d))
	})

	s.Run("start of day is midnight", func() {
		dt := MustLocalDate(2008, 2, 29).AtStartOfDay()
		s.Equal(Midnight, dt.Time())
	})
}

func (s *LocalDateTimeSuite) TestCarryingArithmetic() {
	s.Run("seconds carry across the year end", func() {
		dt, err := MustLocalDateTime(2008, 12, 31, 23, 59, 59, 0).PlusSeconds(2)
		s.Require().NoError(err)
		s.Equal(MustLocalDateTime(2009, 1, 1, 0, 0, 1, 0), dt)
	})

	s.Run("nanos carry across midnight", func() {
		dt, err := MustLocalDateTime(2007, 6, 30, 23, 59, 59, 999_999_999).PlusNanos(1)
		s.Require().NoError(err)
		s.Equal(MustLocalDateTime(2007, 7, 1, 0, 0, 0, 0), dt)
	})

	s.Run("negative amounts borrow from the date", func() {
		dt, err := MustLocalDateTime(2009, 1, 1, 0, 0, 1, 0).MinusSeconds(2)
		s.Require().NoError(err)
		s.Equal(MustLocalDateTime(2008, 12, 31, 23, 59, 59, 0), dt)
	})

	s.Run("hours spanning several days", func() {
		dt, err := MustLocalDateTime(2007, 1, 1, 12, 0, 0, 0).PlusHours(49)
		s.Require().NoError(err)
		s.Equal(MustLocalDateTime(2007, 1, 3, 13, 0, 0, 0), dt)
	})

	s.Run("half days via unit dispatch", func() {
		dt, err := MustLocalDateTime(2007, 1, 1, 18, 0, 0, 0).Plus(1, UnitHalfDays)
		s.Require().NoError(err)
		s.Equal(MustLocalDateTime(2007, 1, 2, 6, 0, 0, 0), dt)
	})

	s.Run("date units leave the time alone", func() {
		dt, err := MustLocalDateTime(2008, 2, 29, 10, 15, 0, 0).Plus(1, UnitYears)
		s.Require().NoError(err)
		s.Equal(MustLocalDateTime(2009, 2, 28, 10, 15, 0, 0), dt)
	})

	s.Run("carry beyond the maximum date overflows", func() {
		_, err := MustLocalDateTime(MaxYear, 12, 31, 23, 0, 0, 0).PlusHours(1)
		s.True(dErrors.HasCode(err, dErrors.CodeOverflow))
	})

	s.Run("minimum int64 subtraction fails cleanly", func() {
		_, err := MustLocalDateTime(2007, 1, 1, 0, 0, 0, 0).Minus(math.MinInt64, UnitNanos)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeOverflow))
	})
}

func (s *LocalDateTimeSuite) TestWithAndRoll() {
	dt := MustLocalDateTime(2008, 2, 29, 23, 15, 0, 0)

	s.Run("field routing", func() {
		got, err := dt.With(FieldYear, 2007)
		s.Require().NoError(err)
		s.Equal(MustLocalDateTime(2007, 2, 28, 23, 15, 0, 0), got)

		got, err = dt.With(FieldHourOfDay, 3)
		s.Require().NoError(err)
		s.Equal(MustLocalDateTime(2008, 2, 29, 3, 15, 0, 0), got)
	})

	s.Run("offset fields rejected locally", func() {
		_, err := dt.With(FieldInstantSeconds, 0)
		s.True(dErrors.HasCode(err, dErrors.CodeUnsupportedField))
		_, err = dt.Get(FieldOffsetSeconds)
		s.True(dErrors.HasCode(err, dErrors.CodeUnsupportedField))
	})

	s.Run("rolling hours never touches the date", func() {
		got, err := dt.Roll(FieldHourOfDay, 2)
		s.Require().NoError(err)
		s.Equal(MustLocalDateTime(2008, 2, 29, 1, 15, 0, 0), got)
	})

	s.Run("rolling the day wraps within the month", func() {
		got, err := dt.Roll(FieldDayOfMonth, 1)
		s.Require().NoError(err)
		s.Equal(MustLocalDateTime(2008, 2, 1, 23, 15, 0, 0), got)
	})
}

func (s *LocalDateTimeSuite) TestTruncatedTo() {
	dt := MustLocalDateTime(2008, 2, 29, 10, 15, 30, 123_456_789)

	s.Run("keeps the date", func() {
		got, err := dt.TruncatedTo(UnitHours)
		s.Require().NoError(err)
		s.Equal(MustLocalDateTime(2008, 2, 29, 10, 0, 0, 0), got)
	})

	s.Run("day truncation is start of day", func() {
		got, err := dt.TruncatedTo(UnitDays)
		s.Require().NoError(err)
		s.Equal(dt.Date().AtStartOfDay(), got)
	})

	s.Run("week truncation rejected", func() {
		_, err := dt.TruncatedTo(UnitWeeks)
		s.True(dErrors.HasCode(err, dErrors.CodeUnsupportedUnit))
	})
}

func (s *LocalDateTimeSuite) TestUntil() {
	s.Run("time units convert the day gap exactly", func() {
		start := MustLocalDateTime(2008, 6, 1, 14, 0, 0, 0)
		end := MustLocalDateTime(2008, 6, 2, 13, 0, 0, 0)
		hours, err := start.Until(end, UnitHours)
		s.Require().NoError(err)
		s.Equal(int64(23), hours)

		back, err := end.Until(start, UnitHours)
		s.Require().NoError(err)
		s.Equal(int64(-23), back)
	})

	s.Run("date units ignore a partial final day", func() {
		start := MustLocalDateTime(2008, 6, 1, 14, 0, 0, 0)
		sameClock, err := start.Until(MustLocalDateTime(2008, 7, 1, 14, 0, 0, 0), UnitMonths)
		s.Require().NoError(err)
		s.Equal(int64(1), sameClock)

		earlierClock, err := start.Until(MustLocalDateTime(2008, 7, 1, 13, 59, 0, 0), UnitMonths)
		s.Require().NoError(err)
		s.Equal(int64(0), earlierClock)
	})

	s.Run("nanos between nearby instants", func() {
		start := MustLocalDateTime(2008, 6, 1, 23, 59, 59, 999_999_998)
		end := MustLocalDateTime(2008, 6, 2, 0, 0, 0, 2)
		nanos, err := start.Until(end, UnitNanos)
		s.Require().NoError(err)
		s.Equal(int64(4), nanos)
	})

	s.Run("huge spans overflow in nanos", func() {
		start := MustLocalDateTime(MinYear, 1, 1, 0, 0, 0, 0)
		end := MustLocalDateTime(MaxYear, 12, 31, 0, 0, 0, 0)
		_, err := start.Until(end, UnitNanos)
		s.True(dErrors.HasCode(err, dErrors.CodeOverflow))
	})
}

func (s *LocalDateTimeSuite) TestEpochSeconds() {
	s.Run("epoch conversion honors the offset", func() {
		dt := MustLocalDateTime(1970, 1, 1, 2, 0, 0, 0)
		s.Equal(int64(2*3600), dt.ToEpochSecond(UTC))
		s.Equal(int64(0), dt.ToEpochSecond(MustParseZoneOffset("+02:00")))
	})

	s.Run("round trips through the factory", func() {
		offset := MustParseZoneOffset("-05:30")
		dt := MustLocalDateTime(2008, 2, 29, 23, 59, 59, 123)
		back, err := LocalDateTimeOfEpochSecond(dt.ToEpochSecond(offset), dt.Nano(), offset)
		s.Require().NoError(err)
		s.Equal(dt, back)
	})

	s.Run("nano component validated", func() {
		_, err := LocalDateTimeOfEpochSecond(0, -1, UTC)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidValue))
	})
}

func (s *LocalDateTimeSuite) TestFormatting() {
	s.Run("string joins with T", func() {
		s.Equal("2008-02-29T10:15:30", MustLocalDateTime(2008, 2, 29, 10, 15, 30, 0).String())
		s.Equal("2008-02-29T00:00", MustLocalDate(2008, 2, 29).AtStartOfDay().String())
	})

	s.Run("parse round trips", func() {
		for _, str := range []string{"2008-02-29T10:15", "2008-02-29T10:15:30.500", "-0042-01-01T00:00"} {
			dt, err := ParseLocalDateTime(str)
			s.Require().NoError(err, str)
			s.Equal(str, dt.String())
		}
	})

	s.Run("malformed input rejected", func() {
		for _, str := range []string{"", "2008-02-29", "10:15:30", "2008-02-29 10:15", "2008-02-29T24:00"} {
			_, err := ParseLocalDateTime(str)
			s.Require().Error(err, str)
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidValue), str)
		}
	})
}

func (s *LocalDateTimeSuite) TestComparisons() {
	a := MustLocalDateTime(2008, 6, 1, 10, 0, 0, 0)
	b := MustLocalDateTime(2008, 6, 1, 10, 0, 0, 1)
	c := MustLocalDateTime(2008, 6, 2, 0, 0, 0, 0)

	s.Run("date dominates time", func() {
		s.True(a.IsBefore(b))
		s.True(b.IsBefore(c))
		s.Equal(1, c.Compare(a))
	})

	s.Run("equality is structural", func() {
		s.True(a.Equal(MustLocalDateTime(2008, 6, 1, 10, 0, 0, 0)))
		s.False(a.Equal(b))
	})
}

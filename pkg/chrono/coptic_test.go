package chrono

import (
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "tempus/pkg/domain-errors"
)

type CopticSuite struct {
	suite.Suite
}

func TestCopticSuite(t *testing.T) {
	suite.Run(t, new(CopticSuite))
}

func (s *CopticSuite) monthDay(d LocalDate) (int64, int64) {
	month, err := Coptic.FieldValue(FieldMonthOfYear, &d, nil)
	s.Require().NoError(err)
	day, err := Coptic.FieldValue(FieldDayOfMonth, &d, nil)
	s.Require().NoError(err)
	return month, day
}

func (s *CopticSuite) TestMonthLayout() {
	s.Run("thirty day months with a short thirteenth", func() {
		s.Equal(13, Coptic.MonthsInYear())

		cases := []struct {
			date       LocalDate
			month, day int64
		}{
			{MustLocalDate(2007, 1, 1), 1, 1},
			{MustLocalDate(2007, 1, 30), 1, 30},
			{MustLocalDate(2007, 1, 31), 2, 1},
			{MustLocalDate(2007, 6, 15), 6, 16},
			{MustLocalDate(2007, 12, 27), 13, 1},
			{MustLocalDate(2007, 12, 31), 13, 5},
			{MustLocalDate(2008, 12, 31), 13, 6},
		}
		for _, tc := range cases {
			month, day := s.monthDay(tc.date)
			s.Equal(tc.month, month, tc.date.String())
			s.Equal(tc.day, day, tc.date.String())
		}
	})

	s.Run("month lengths follow the container year", func() {
		for month := 1; month <= 12; month++ {
			n, err := Coptic.LengthOfMonth(2007, month)
			s.Require().NoError(err)
			s.Equal(30, n)
		}

		n, err := Coptic.LengthOfMonth(2007, 13)
		s.Require().NoError(err)
		s.Equal(5, n)

		n, err = Coptic.LengthOfMonth(2008, 13)
		s.Require().NoError(err)
		s.Equal(6, n)

		_, err = Coptic.LengthOfMonth(2007, 14)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidValue))
	})

	s.Run("year level values agree with the container", func() {
		d := MustLocalDate(2008, 12, 31)
		for _, f := range []ChronoField{FieldYear, FieldDayOfYear, FieldEpochDay, FieldDayOfWeek, FieldEra} {
			iso, err := ISO.FieldValue(f, &d, nil)
			s.Require().NoError(err)
			coptic, err := Coptic.FieldValue(f, &d, nil)
			s.Require().NoError(err)
			s.Equal(iso, coptic, f)
		}
		s.True(Coptic.IsLeapYear(2008))
		s.Equal(366, Coptic.LengthOfYear(2008))
	})
}

func (s *CopticSuite) TestRanges() {
	s.Run("context free day range is variable", func() {
		r := Coptic.FieldRange(FieldDayOfMonth)
		s.Equal(int64(1), r.Min())
		s.Equal(int64(5), r.SmallestMax())
		s.Equal(int64(30), r.Max())
	})

	s.Run("day range narrows to the month", func() {
		regular := MustLocalDate(2007, 6, 15)
		r, err := Coptic.FieldRangeAt(FieldDayOfMonth, &regular, nil)
		s.Require().NoError(err)
		s.Equal(int64(30), r.Max())

		short := MustLocalDate(2007, 12, 31)
		r, err = Coptic.FieldRangeAt(FieldDayOfMonth, &short, nil)
		s.Require().NoError(err)
		s.Equal(int64(5), r.Max())

		leap := MustLocalDate(2008, 12, 31)
		r, err = Coptic.FieldRangeAt(FieldDayOfMonth, &leap, nil)
		s.Require().NoError(err)
		s.Equal(int64(6), r.Max())
	})

	s.Run("month range is fixed at thirteen", func() {
		r := Coptic.FieldRange(FieldMonthOfYear)
		s.Equal(int64(13), r.Max())
	})
}

func (s *CopticSuite) TestEpochMonth() {
	s.Run("counts thirteen per year from 1970", func() {
		cases := []struct {
			date LocalDate
			want int64
		}{
			{MustLocalDate(1970, 1, 1), 0},
			{MustLocalDate(1970, 1, 31), 1},
			{MustLocalDate(1969, 12, 31), -1},
			{MustLocalDate(1971, 1, 1), 13},
		}
		for _, tc := range cases {
			got, err := Coptic.FieldValue(FieldEpochMonth, &tc.date, nil)
			s.Require().NoError(err)
			s.Equal(tc.want, got, tc.date.String())
		}
	})

	s.Run("setting epoch month lands on the same slot", func() {
		d := MustLocalDate(2007, 1, 15)
		got, err := Coptic.WithDateField(d, FieldEpochMonth, 13)
		s.Require().NoError(err)
		s.Equal(MustLocalDate(1971, 1, 15), got)
	})
}

func (s *CopticSuite) TestWithField() {
	s.Run("moving to the short month clamps the day", func() {
		d := MustLocalDate(2007, 1, 30)
		got, err := Coptic.WithDateField(d, FieldMonthOfYear, 13)
		s.Require().NoError(err)
		s.Equal(MustLocalDate(2007, 12, 31), got)
		month, day := s.monthDay(got)
		s.Equal(int64(13), month)
		s.Equal(int64(5), day)
	})

	s.Run("moving out of the short month keeps the day", func() {
		d := MustLocalDate(2008, 12, 31)
		got, err := Coptic.WithDateField(d, FieldMonthOfYear, 1)
		s.Require().NoError(err)
		s.Equal(MustLocalDate(2008, 1, 6), got)
	})

	s.Run("day of month validates against the month in view", func() {
		d := MustLocalDate(2007, 6, 15)
		got, err := Coptic.WithDateField(d, FieldDayOfMonth, 30)
		s.Require().NoError(err)
		month, day := s.monthDay(got)
		s.Equal(int64(6), month)
		s.Equal(int64(30), day)

		short := MustLocalDate(2007, 12, 28)
		_, err = Coptic.WithDateField(short, FieldDayOfMonth, 6)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidValue))
	})

	s.Run("year change clamps the intercalary day", func() {
		d := MustLocalDate(2008, 12, 31)
		got, err := Coptic.WithDateField(d, FieldYear, 2007)
		s.Require().NoError(err)
		s.Equal(MustLocalDate(2007, 12, 31), got)
		_, day := s.monthDay(got)
		s.Equal(int64(5), day)
	})

	s.Run("era flip mirrors the year", func() {
		d := MustLocalDate(2007, 6, 15)
		got, err := Coptic.WithDateField(d, FieldEra, 0)
		s.Require().NoError(err)
		s.Equal(-2006, got.Year())

		_, err = Coptic.WithDateField(d, FieldEra, 2)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidValue))
	})
}

func (s *CopticSuite) TestArithmetic() {
	s.Run("adding months walks thirty day steps", func() {
		d := MustLocalDate(2007, 1, 30)

		got, err := Coptic.AddToDate(d, UnitMonths, 1)
		s.Require().NoError(err)
		s.Equal(MustLocalDate(2007, 3, 1), got)
		month, day := s.monthDay(got)
		s.Equal(int64(2), month)
		s.Equal(int64(30), day)

		got, err = Coptic.AddToDate(d, UnitMonths, 12)
		s.Require().NoError(err)
		s.Equal(MustLocalDate(2007, 12, 31), got)

		got, err = Coptic.AddToDate(d, UnitMonths, 13)
		s.Require().NoError(err)
		s.Equal(MustLocalDate(2008, 1, 30), got)
	})

	s.Run("negative months walk back", func() {
		d := MustLocalDate(2007, 1, 15)
		got, err := Coptic.AddToDate(d, UnitMonths, -1)
		s.Require().NoError(err)
		month, day := s.monthDay(got)
		s.Equal(int64(13), month)
		s.Equal(int64(5), day)
		s.Equal(2006, got.Year())
	})

	s.Run("adding years clamps the intercalary day", func() {
		d := MustLocalDate(2008, 12, 31)
		got, err := Coptic.AddToDate(d, UnitYears, 1)
		s.Require().NoError(err)
		s.Equal(MustLocalDate(2009, 12, 31), got)
		_, day := s.monthDay(got)
		s.Equal(int64(5), day)
	})

	s.Run("quarters scale to three months", func() {
		d := MustLocalDate(2007, 1, 1)
		got, err := Coptic.AddToDate(d, UnitQuarters, 1)
		s.Require().NoError(err)
		month, day := s.monthDay(got)
		s.Equal(int64(4), month)
		s.Equal(int64(1), day)
	})

	s.Run("era addition is bounded", func() {
		d := MustLocalDate(2007, 6, 15)
		_, err := Coptic.AddToDate(d, UnitEras, 1)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidValue))

		bce := MustLocalDate(0, 6, 15)
		got, err := Coptic.AddToDate(bce, UnitEras, 1)
		s.Require().NoError(err)
		s.Equal(1, got.Year())
	})

	s.Run("year overflow surfaces as overflow", func() {
		d := MustLocalDate(MaxYear, 1, 1)
		_, err := Coptic.AddToDate(d, UnitYears, 1)
		s.True(dErrors.HasCode(err, dErrors.CodeOverflow))
	})
}

func (s *CopticSuite) TestRoll() {
	s.Run("month roll wraps at thirteen", func() {
		d := MustLocalDate(2008, 12, 31)
		got, err := Coptic.RollDate(d, FieldMonthOfYear, 1)
		s.Require().NoError(err)
		s.Equal(MustLocalDate(2008, 1, 6), got)
		s.Equal(2008, got.Year())
	})

	s.Run("day roll wraps inside the short month", func() {
		d := MustLocalDate(2007, 12, 31)
		got, err := Coptic.RollDate(d, FieldDayOfMonth, 1)
		s.Require().NoError(err)
		s.Equal(MustLocalDate(2007, 12, 27), got)
		month, day := s.monthDay(got)
		s.Equal(int64(13), month)
		s.Equal(int64(1), day)
	})

	s.Run("full span roll is the identity", func() {
		d := MustLocalDate(2007, 6, 15)
		got, err := Coptic.RollDate(d, FieldMonthOfYear, 13)
		s.Require().NoError(err)
		s.Equal(d, got)
	})
}

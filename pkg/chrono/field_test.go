package chrono

import (
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "tempus/pkg/domain-errors"
)

type FieldSuite struct {
	suite.Suite
}

func TestFieldSuite(t *testing.T) {
	suite.Run(t, new(FieldSuite))
}

func (s *FieldSuite) TestClosedSet() {
	s.Run("lists every field coarse to fine", func() {
		all := Fields()
		s.Require().Len(all, 17)
		s.Equal(FieldEra, all[0])
		s.Equal(FieldOffsetSeconds, all[len(all)-1])
		for _, f := range all {
			s.True(f.IsValid(), f)
		}
	})

	s.Run("returned slice is a copy", func() {
		all := Fields()
		all[0] = FieldYear
		s.Equal(FieldEra, Fields()[0])
	})

	s.Run("parse accepts only known names", func() {
		f, err := ParseField("day_of_month")
		s.Require().NoError(err)
		s.Equal(FieldDayOfMonth, f)

		for _, name := range []string{"", "dayOfMonth", "DAY_OF_MONTH", "day"} {
			_, err := ParseField(name)
			s.Require().Error(err, name)
			s.True(dErrors.HasCode(err, dErrors.CodeUnsupportedField), name)
		}
	})
}

func (s *FieldSuite) TestPartition() {
	var dateBased, timeBased, neither int
	for _, f := range Fields() {
		switch {
		case f.IsDateBased():
			dateBased++
		case f.IsTimeBased():
			timeBased++
		default:
			neither++
		}
	}
	s.Equal(9, dateBased)
	s.Equal(6, timeBased)
	s.Equal(2, neither)

	s.False(FieldInstantSeconds.IsDateBased())
	s.False(FieldInstantSeconds.IsTimeBased())
	s.False(FieldOffsetSeconds.IsDateBased())
	s.False(FieldOffsetSeconds.IsTimeBased())
}

func (s *FieldSuite) TestBaseRanges() {
	s.Run("variable maxima are flagged", func() {
		r := FieldDayOfMonth.Range()
		s.False(r.IsFixed())
		s.Equal(int64(28), r.SmallestMax())
		s.Equal(int64(31), r.Max())

		r = FieldDayOfYear.Range()
		s.Equal(int64(365), r.SmallestMax())
		s.Equal(int64(366), r.Max())

		r = FieldYearOfEra.Range()
		s.Equal(int64(MaxYear), r.SmallestMax())
		s.Equal(int64(MaxYear)+1, r.Max())
	})

	s.Run("fixed ranges carry the supported bounds", func() {
		r := FieldYear.Range()
		s.True(r.IsFixed())
		s.Equal(int64(MinYear), r.Min())
		s.Equal(int64(MaxYear), r.Max())

		s.Equal(int64(-64800), FieldOffsetSeconds.Range().Min())
		s.Equal(int64(64800), FieldOffsetSeconds.Range().Max())
		s.Equal(int64(999_999_999), FieldNanoOfSecond.Range().Max())
	})
}

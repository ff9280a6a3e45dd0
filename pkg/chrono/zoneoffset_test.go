package chrono

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "tempus/pkg/domain-errors"
)

type ZoneOffsetSuite struct {
	suite.Suite
}

func TestZoneOffsetSuite(t *testing.T) {
	suite.Run(t, new(ZoneOffsetSuite))
}

func (s *ZoneOffsetSuite) TestConstruction() {
	s.Run("zero value is UTC", func() {
		var o ZoneOffset
		s.True(o.IsUTC())
		s.Equal(UTC, o)
	})

	s.Run("bounds at eighteen hours", func() {
		o, err := ZoneOffsetOfHours(18)
		s.Require().NoError(err)
		s.Equal(18*3600, o.TotalSeconds())

		_, err = ZoneOffsetOfHours(19)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidValue))
		_, err = NewZoneOffset(-18*3600 - 1)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidValue))
	})

	s.Run("hour and minute parts must agree in sign", func() {
		o, err := ZoneOffsetOfHoursMinutes(-5, -30)
		s.Require().NoError(err)
		s.Equal(-(5*3600 + 30*60), o.TotalSeconds())

		_, err = ZoneOffsetOfHoursMinutes(5, -30)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidValue))
		_, err = ZoneOffsetOfHoursMinutes(0, 60)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidValue))
	})
}

func (s *ZoneOffsetSuite) TestFormatting() {
	s.Run("renders the shortest canonical form", func() {
		cases := []struct {
			seconds int
			want    string
		}{
			{0, "Z"},
			{3600, "+01:00"},
			{-3600, "-01:00"},
			{5*3600 + 30*60, "+05:30"},
			{-(5*3600 + 30*60 + 15), "-05:30:15"},
			{18 * 3600, "+18:00"},
		}
		for _, tc := range cases {
			o, err := NewZoneOffset(tc.seconds)
			s.Require().NoError(err)
			s.Equal(tc.want, o.String())
		}
	})

	s.Run("parses every rendered form", func() {
		for _, str := range []string{"Z", "+01:00", "-01:00", "+05", "+05:30", "-05:30:15", "+18:00", "-18:00"} {
			o, err := ParseZoneOffset(str)
			s.Require().NoError(err, str)
			back, err := ParseZoneOffset(o.String())
			s.Require().NoError(err)
			s.Equal(o, back)
		}
	})

	s.Run("plus five renders with minutes", func() {
		s.Equal("+05:00", MustParseZoneOffset("+05").String())
	})

	s.Run("rejects malformed text", func() {
		for _, str := range []string{"", "z", "UTC", "5", "+5", "+0500", "+05-30", "+05:60", "+19:00", "+05:30:60"} {
			_, err := ParseZoneOffset(str)
			s.Require().Error(err, str)
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidValue), str)
		}
	})
}

func (s *ZoneOffsetSuite) TestCompare() {
	s.Run("larger displacement sorts first", func() {
		east := MustParseZoneOffset("+02:00")
		west := MustParseZoneOffset("-05:00")
		s.Equal(-1, east.Compare(UTC))
		s.Equal(1, west.Compare(UTC))
		s.Equal(0, east.Compare(MustParseZoneOffset("+02:00")))
	})

	s.Run("sorting runs east to west", func() {
		offsets := []ZoneOffset{
			MustParseZoneOffset("-05:00"),
			MustParseZoneOffset("+02:00"),
			UTC,
			MustParseZoneOffset("+05:30"),
		}
		sort.Slice(offsets, func(i, j int) bool { return offsets[i].Compare(offsets[j]) < 0 })

		want := []string{"+05:30", "+02:00", "Z", "-05:00"}
		for i, o := range offsets {
			s.Equal(want[i], o.String())
		}
	})
}

func (s *ZoneOffsetSuite) TestFieldAccess() {
	o := MustParseZoneOffset("+02:00")

	s.Run("offset seconds is the only field", func() {
		v, err := o.Get(FieldOffsetSeconds)
		s.Require().NoError(err)
		s.Equal(int64(7200), v)

		_, err = o.Get(FieldHourOfDay)
		s.True(dErrors.HasCode(err, dErrors.CodeUnsupportedField))
	})
}

func (s *ZoneOffsetSuite) TestTextMarshalling() {
	o := MustParseZoneOffset("-05:30")

	b, err := o.MarshalText()
	s.Require().NoError(err)
	s.Equal("-05:30", string(b))

	var back ZoneOffset
	s.Require().NoError(back.UnmarshalText(b))
	s.Equal(o, back)
}

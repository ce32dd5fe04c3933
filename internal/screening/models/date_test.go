package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type DateSuite struct {
	suite.Suite
}

func TestDateSuite(t *testing.T) {
	suite.Run(t, new(DateSuite))
}

func (s *DateSuite) TestParseDateLayouts() {
	want := time.Date(1985, 3, 15, 0, 0, 0, 0, time.UTC)
	for _, input := range []string{
		"1985-03-15",
		"1985-03-15T00:00:00Z",
		"1985/03/15",
		"15.03.1985",
		"March 15, 1985",
		"15 March 1985",
	} {
		s.Run(input, func() {
			got, ok := ParseDate(input)
			s.Require().True(ok)
			s.True(got.Equal(want))
		})
	}
}

func (s *DateSuite) TestParseDateRejectsGarbage() {
	for _, input := range []string{"", "not a date", "1985-13-40", "15-03-1985"} {
		_, ok := ParseDate(input)
		s.False(ok, input)
	}
}

func (s *DateSuite) TestAgeAt() {
	birth := time.Date(1985, 3, 15, 0, 0, 0, 0, time.UTC)

	s.Equal(39, AgeAt(birth, time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC)))
	s.Equal(39, AgeAt(birth, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)))
	s.Equal(40, AgeAt(birth, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)))
}

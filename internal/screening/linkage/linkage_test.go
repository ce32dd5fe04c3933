package linkage

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"medialens/internal/screening/models"
	"medialens/internal/screening/namematch"
)

type LinkageSuite struct {
	suite.Suite
}

func TestLinkageSuite(t *testing.T) {
	suite.Run(t, new(LinkageSuite))
}

func match(t models.AnchorType, value string) models.AnchorVerification {
	return models.AnchorVerification{
		Anchor:  models.IdentityAnchor{Type: t, Value: value},
		Matches: true,
	}
}

func conflict(t models.AnchorType, hard bool) models.AnchorVerification {
	return models.AnchorVerification{
		Anchor:   models.IdentityAnchor{Type: t, Value: "x"},
		Conflict: true,
		Hard:     hard,
	}
}

func neutral(t models.AnchorType) models.AnchorVerification {
	return models.AnchorVerification{
		Anchor: models.IdentityAnchor{Type: t, Value: "x"},
	}
}

func (s *LinkageSuite) TestHardConflictOverridesMatches() {
	verifications := []models.AnchorVerification{
		match(models.AnchorName, "John Smith"),
		match(models.AnchorEmployer, "ABC Financial Corp"),
		match(models.AnchorCity, "New York"),
		conflict(models.AnchorDOB, true),
	}

	decision, rationale := Decide(verifications, namematch.ClassCommon, 2)
	s.Equal(models.LinkageNo, decision)
	s.Contains(rationale, "hard conflict")
}

func (s *LinkageSuite) TestSoftConflictDoesNotOverride() {
	verifications := []models.AnchorVerification{
		match(models.AnchorName, "John Smith"),
		match(models.AnchorEmployer, "ABC Financial Corp"),
		conflict(models.AnchorCity, false),
	}

	decision, _ := Decide(verifications, namematch.ClassCommon, 2)
	s.Equal(models.LinkageYes, decision)
}

func (s *LinkageSuite) TestThresholds() {
	s.Run("common name with only a name match is maybe", func() {
		verifications := []models.AnchorVerification{match(models.AnchorName, "John Smith")}
		decision, rationale := Decide(verifications, namematch.ClassCommon, 2)
		s.Equal(models.LinkageMaybe, decision)
		s.Contains(rationale, "threshold 2")
	})

	s.Run("rare name with only a name match is yes", func() {
		verifications := []models.AnchorVerification{match(models.AnchorName, "Elena Vashchenko")}
		decision, _ := Decide(verifications, namematch.ClassRare, 1)
		s.Equal(models.LinkageYes, decision)
	})

	s.Run("common name reaching threshold is yes", func() {
		verifications := []models.AnchorVerification{
			match(models.AnchorName, "John Smith"),
			match(models.AnchorEmployer, "ABC Financial Corp"),
		}
		decision, _ := Decide(verifications, namematch.ClassCommon, 2)
		s.Equal(models.LinkageYes, decision)
	})

	s.Run("no matches is no", func() {
		verifications := []models.AnchorVerification{neutral(models.AnchorTitle)}
		decision, rationale := Decide(verifications, namematch.ClassCommon, 2)
		s.Equal(models.LinkageNo, decision)
		s.Contains(rationale, "no matching anchors")
	})

	s.Run("empty verification set is no", func() {
		decision, _ := Decide(nil, namematch.ClassRare, 1)
		s.Equal(models.LinkageNo, decision)
	})
}

func (s *LinkageSuite) TestNeutralsCarryNoEvidence() {
	verifications := []models.AnchorVerification{
		match(models.AnchorName, "John Smith"),
		neutral(models.AnchorDOB),
		neutral(models.AnchorCity),
		neutral(models.AnchorTitle),
	}

	decision, _ := Decide(verifications, namematch.ClassCommon, 2)
	s.Equal(models.LinkageMaybe, decision)
}

func (s *LinkageSuite) TestDeterminism() {
	verifications := []models.AnchorVerification{
		match(models.AnchorName, "John Smith"),
		match(models.AnchorEmployer, "ABC Financial Corp"),
		match(models.AnchorAge, "39"),
	}

	first, firstRationale := Decide(verifications, namematch.ClassCommon, 2)
	for range 10 {
		decision, rationale := Decide(verifications, namematch.ClassCommon, 2)
		s.Equal(first, decision)
		s.Equal(firstRationale, rationale)
	}
}

func (s *LinkageSuite) TestInconclusiveTypes() {
	verifications := []models.AnchorVerification{
		match(models.AnchorName, "John Smith"),
		conflict(models.AnchorCity, false),
		neutral(models.AnchorDOB),
	}
	candidates := []models.AnchorType{
		models.AnchorDOB, models.AnchorID, models.AnchorEmployer, models.AnchorCity,
	}

	inconclusive := InconclusiveTypes(verifications, candidates)
	s.Equal([]models.AnchorType{models.AnchorDOB, models.AnchorID, models.AnchorEmployer}, inconclusive)
}

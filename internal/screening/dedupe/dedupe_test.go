package dedupe

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"medialens/internal/screening/models"
	"medialens/internal/screening/policy"
)

type DedupeSuite struct {
	suite.Suite
	clusterer *Clusterer
}

func (s *DedupeSuite) SetupTest() {
	p := policy.Default()
	s.Require().NoError(p.Validate())
	s.clusterer = New(&p)
}

func TestDedupeSuite(t *testing.T) {
	suite.Run(t, new(DedupeSuite))
}

func linked(title, date, source string) models.ArticleAnalysis {
	return models.ArticleAnalysis{
		Hit:     models.MediaHit{Title: title, Date: date, Source: source},
		Linkage: models.LinkageYes,
	}
}

func (s *DedupeSuite) TestSameEventCollapses() {
	analyses := []models.ArticleAnalysis{
		linked("ABC Financial CFO Charged with Securities Fraud", "2024-11-15", "Reuters"),
		linked("ABC Financial CFO Charged with Fraud", "2024-11-16", "Reuters UK"),
	}

	clusters := s.clusterer.Mark(analyses)
	s.Equal(1, clusters)
	s.False(analyses[0].Duplicate)
	s.True(analyses[1].Duplicate)
}

func (s *DedupeSuite) TestDifferentSourceFamilyStaysSeparate() {
	analyses := []models.ArticleAnalysis{
		linked("ABC Financial CFO Charged with Securities Fraud", "2024-11-15", "Reuters"),
		linked("ABC Financial CFO Charged with Securities Fraud", "2024-11-15", "Bloomberg"),
	}

	clusters := s.clusterer.Mark(analyses)
	s.Equal(2, clusters)
	s.False(analyses[0].Duplicate)
	s.False(analyses[1].Duplicate)
}

func (s *DedupeSuite) TestDateWindowBoundsCluster() {
	analyses := []models.ArticleAnalysis{
		linked("ABC Financial CFO Charged with Securities Fraud", "2024-11-15", "Reuters"),
		linked("ABC Financial CFO Charged with Securities Fraud", "2024-11-25", "Reuters"),
	}

	clusters := s.clusterer.Mark(analyses)
	s.Equal(2, clusters)
}

func (s *DedupeSuite) TestDissimilarTitlesStaySeparate() {
	analyses := []models.ArticleAnalysis{
		linked("ABC Financial CFO Charged with Securities Fraud", "2024-11-15", "Reuters"),
		linked("Investment Firm Executive Denies All Allegations", "2024-11-16", "Reuters"),
	}

	clusters := s.clusterer.Mark(analyses)
	s.Equal(2, clusters)
}

func (s *DedupeSuite) TestNonLinkedArticlesAreIgnored() {
	analyses := []models.ArticleAnalysis{
		linked("ABC Financial CFO Charged with Securities Fraud", "2024-11-15", "Reuters"),
		{
			Hit:     models.MediaHit{Title: "ABC Financial CFO Charged with Securities Fraud", Date: "2024-11-15", Source: "Reuters"},
			Linkage: models.LinkageNo,
		},
	}

	clusters := s.clusterer.Mark(analyses)
	s.Equal(1, clusters)
	s.False(analyses[1].Duplicate)
}

func (s *DedupeSuite) TestEarliestInInputOrderRepresents() {
	analyses := []models.ArticleAnalysis{
		linked("ABC Financial CFO Charged with Securities Fraud", "2024-11-16", "Reuters"),
		linked("ABC Financial CFO Charged with Securities Fraud", "2024-11-15", "Reuters"),
		linked("ABC Financial CFO Charged with Securities Fraud", "2024-11-17", "Reuters"),
	}

	s.clusterer.Mark(analyses)
	s.False(analyses[0].Duplicate)
	s.True(analyses[1].Duplicate)
	s.True(analyses[2].Duplicate)
}

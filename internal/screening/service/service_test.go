package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"medialens/internal/audit"
	"medialens/internal/extraction"
	"medialens/internal/screening/models"
	"medialens/internal/screening/policy"
	dErrors "medialens/pkg/domain-errors"
	"medialens/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	policy  policy.Policy
	profile models.UserProfile
	now     time.Time
}

func (s *ServiceSuite) SetupTest() {
	s.policy = policy.Default()
	s.Require().NoError(s.policy.Validate())
	s.profile = models.UserProfile{
		FullName:    "John Michael Smith",
		DateOfBirth: "1985-03-15",
		City:        "New York",
		Employer:    "ABC Financial Corp",
		IDData:      map[string]string{"passport": "P12345678"},
		Aliases:     []string{"John Smith"},
	}
	s.now = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) ctx() context.Context {
	return requestcontext.WithTime(context.Background(), s.now)
}

func (s *ServiceSuite) newService(stub *extraction.Stub, opts ...Option) *Service {
	svc, err := New(stub, &s.policy, opts...)
	s.Require().NoError(err)
	return svc
}

func hit(title, date, source string) models.MediaHit {
	return models.MediaHit{
		Title:   title,
		Date:    date,
		Source:  source,
		HitType: models.HitAdverseMedia,
	}
}

func nameAnchor(value string) models.IdentityAnchor {
	return models.IdentityAnchor{Type: models.AnchorName, Value: value, Confidence: 0.95}
}

func (s *ServiceSuite) TestRequiresExtractor() {
	_, err := New(nil, &s.policy)
	s.Require().Error(err)
}

func (s *ServiceSuite) TestValidation() {
	svc := s.newService(extraction.NewStub())

	s.Run("empty full name", func() {
		_, err := svc.Check(s.ctx(), models.UserProfile{}, nil)
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeValidation))
	})

	s.Run("hit missing date", func() {
		hits := []models.MediaHit{{Title: "t", Source: "Reuters"}}
		_, err := svc.Check(s.ctx(), s.profile, hits)
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestNoHitsClears() {
	svc := s.newService(extraction.NewStub())

	result, err := svc.Check(s.ctx(), s.profile, nil)
	s.Require().NoError(err)
	s.Equal(models.DecisionClear, result.FinalDecision)
	s.Equal(0, result.DecisionScore)
	s.Empty(result.MatchedHits)
	s.Contains(result.FinalMemo, "No linked adverse media found")
}

func (s *ServiceSuite) TestCommonNameSingleAnchorIsMaybe() {
	stub := extraction.NewStub()
	stub.Results["Fraud Report"] = extraction.Result{
		BriefSummary: "A John Smith was named in a fraud report.",
		Anchors:      []models.IdentityAnchor{nameAnchor("John Smith")},
		Outcome:      models.OutcomeAllegation,
	}
	svc := s.newService(stub)

	result, err := svc.Check(s.ctx(), s.profile, []models.MediaHit{
		hit("Fraud Report", "2024-11-15", "Reuters"),
	})
	s.Require().NoError(err)

	s.Require().Len(result.AnalyzedArticles, 1)
	s.Equal(models.LinkageMaybe, result.AnalyzedArticles[0].Linkage)
	s.Empty(result.MatchedHits)
	s.Equal(models.DecisionClear, result.FinalDecision)
}

func (s *ServiceSuite) TestHardConflictForcesNo() {
	stub := extraction.NewStub()
	stub.Results["Namesake Fraud"] = extraction.Result{
		Anchors: []models.IdentityAnchor{
			nameAnchor("John Smith"),
			{Type: models.AnchorEmployer, Value: "ABC Financial Corp"},
			{Type: models.AnchorDOB, Value: "1979-06-02"},
		},
		Outcome: models.OutcomeCharged,
	}
	svc := s.newService(stub)

	result, err := svc.Check(s.ctx(), s.profile, []models.MediaHit{
		hit("Namesake Fraud", "2024-11-15", "Reuters"),
	})
	s.Require().NoError(err)

	s.Equal(models.LinkageNo, result.AnalyzedArticles[0].Linkage)
	s.Empty(result.MatchedHits)
	s.Len(result.NonMatchedHits, 1)
	s.NotEmpty(result.AnalyzedArticles[0].Contradictions)
}

func (s *ServiceSuite) TestFullCasePipeline() {
	stub := extraction.NewStub()
	stub.Results["ABC Financial Corp CFO Charged with Securities Fraud"] = extraction.Result{
		BriefSummary: "The CFO of ABC Financial Corp was charged with securities fraud.",
		Anchors: []models.IdentityAnchor{
			nameAnchor("John Michael Smith"),
			{Type: models.AnchorEmployer, Value: "ABC Financial Corp"},
			{Type: models.AnchorCity, Value: "New York"},
			{Type: models.AnchorAge, Value: "39"},
		},
		Outcome:    models.OutcomeCharged,
		Categories: []models.CategoryType{models.CategoryFraud},
	}
	stub.Results["Local Man Arrested for DUI"] = extraction.Result{
		BriefSummary: "A Boston mechanic was arrested for a DUI.",
		Anchors: []models.IdentityAnchor{
			nameAnchor("John Smith"),
			{Type: models.AnchorCity, Value: "Boston"},
			{Type: models.AnchorAge, Value: "45"},
			{Type: models.AnchorEmployer, Value: "Joe's Auto Repair"},
		},
		Outcome: models.OutcomeCharged,
	}
	svc := s.newService(stub)

	result, err := svc.Check(s.ctx(), s.profile, []models.MediaHit{
		hit("ABC Financial Corp CFO Charged with Securities Fraud", "2024-11-15", "Financial Times"),
		hit("Local Man Arrested for DUI", "2024-11-10", "Boston Herald"),
	})
	s.Require().NoError(err)

	s.Equal(2, result.TotalHits)
	s.Require().Len(result.AnalyzedArticles, 2)

	// The CFO article links; the namesake DUI article must not.
	s.Equal(models.LinkageYes, result.AnalyzedArticles[0].Linkage)
	s.NotEqual(models.LinkageYes, result.AnalyzedArticles[1].Linkage)
	s.Require().Len(result.MatchedHits, 1)
	s.Equal("ABC Financial Corp CFO Charged with Securities Fraud", result.MatchedHits[0].Hit.Title)

	s.Greater(result.DecisionScore, 0)
	s.NotEqual(models.DecisionClear, result.FinalDecision)
	s.Contains(result.FinalMemo, "John Michael Smith")
	s.Equal(s.now, result.ProcessingTimestamp)
}

func (s *ServiceSuite) TestExtractionFailureIsPerArticle() {
	stub := extraction.NewStub()
	stub.Results["Article A"] = extraction.Result{
		Anchors: []models.IdentityAnchor{
			nameAnchor("John Smith"),
			{Type: models.AnchorEmployer, Value: "ABC Financial Corp"},
		},
		Outcome: models.OutcomeInvestigation,
	}
	stub.Fail["Article B"] = errors.New("model timeout")
	stub.Results["Article C"] = extraction.Result{
		Anchors: []models.IdentityAnchor{nameAnchor("John Smith")},
	}
	svc := s.newService(stub)

	result, err := svc.Check(s.ctx(), s.profile, []models.MediaHit{
		hit("Article A", "2024-11-15", "Reuters"),
		hit("Article B", "2024-11-16", "Reuters"),
		hit("Article C", "2024-11-17", "Reuters"),
	})
	s.Require().NoError(err)

	s.Require().Len(result.AnalyzedArticles, 3)
	s.Equal(models.LinkageYes, result.AnalyzedArticles[0].Linkage)
	s.Equal(models.LinkageNo, result.AnalyzedArticles[1].Linkage)
	s.Contains(result.AnalyzedArticles[1].Rationale, "extraction failed")
	s.Contains(result.AnalyzedArticles[1].Rationale, "manual review")
	s.Equal(models.LinkageMaybe, result.AnalyzedArticles[2].Linkage)
	s.Len(result.MatchedHits, 1)
}

func (s *ServiceSuite) TestEmptyAnchorValueDoesNotSinkArticle() {
	stub := extraction.NewStub()
	stub.Results["Fraud Investigation"] = extraction.Result{
		Anchors: []models.IdentityAnchor{
			nameAnchor("John Michael Smith"),
			{Type: models.AnchorEmployer, Value: "ABC Financial Corp"},
			{Type: models.AnchorID, Value: ""},
		},
		Outcome: models.OutcomeInvestigation,
	}
	svc := s.newService(stub)

	result, err := svc.Check(s.ctx(), s.profile, []models.MediaHit{
		hit("Fraud Investigation", "2024-11-15", "Reuters"),
	})
	s.Require().NoError(err)

	s.Equal(models.LinkageYes, result.AnalyzedArticles[0].Linkage)
	s.Empty(result.AnalyzedArticles[0].Contradictions)
	s.Len(result.MatchedHits, 1)
}

func (s *ServiceSuite) TestInputOrderPreserved() {
	stub := extraction.NewStub()
	titles := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	hits := make([]models.MediaHit, 0, len(titles))
	for _, title := range titles {
		stub.Results[title] = extraction.Result{BriefSummary: "about " + title}
		hits = append(hits, hit(title, "2024-11-15", "Reuters"))
	}
	svc := s.newService(stub, WithWorkers(3))

	result, err := svc.Check(s.ctx(), s.profile, hits)
	s.Require().NoError(err)

	s.Require().Len(result.AnalyzedArticles, len(titles))
	for i, title := range titles {
		s.Equal(title, result.AnalyzedArticles[i].Hit.Title)
	}
}

func (s *ServiceSuite) TestDuplicateEventCountedOnce() {
	anchors := []models.IdentityAnchor{
		nameAnchor("John Michael Smith"),
		{Type: models.AnchorEmployer, Value: "ABC Financial Corp"},
	}
	stub := extraction.NewStub()
	stub.Results["ABC Financial CFO Charged with Securities Fraud"] = extraction.Result{
		Anchors: anchors, Outcome: models.OutcomeCharged,
	}
	stub.Results["ABC Financial CFO Charged with Fraud"] = extraction.Result{
		Anchors: anchors, Outcome: models.OutcomeCharged,
	}
	svc := s.newService(stub)

	single, err := svc.Check(s.ctx(), s.profile, []models.MediaHit{
		hit("ABC Financial CFO Charged with Securities Fraud", "2024-11-15", "Reuters"),
	})
	s.Require().NoError(err)

	double, err := svc.Check(s.ctx(), s.profile, []models.MediaHit{
		hit("ABC Financial CFO Charged with Securities Fraud", "2024-11-15", "Reuters"),
		hit("ABC Financial CFO Charged with Fraud", "2024-11-16", "Reuters UK"),
	})
	s.Require().NoError(err)

	s.Len(double.MatchedHits, 2)
	s.True(double.MatchedHits[1].Duplicate)
	s.Equal(single.DecisionScore, double.DecisionScore)
}

func (s *ServiceSuite) TestDeterminismAcrossRuns() {
	stub := extraction.NewStub()
	stub.Results["Fraud Investigation"] = extraction.Result{
		BriefSummary: "Investigators named the ABC Financial CFO.",
		Anchors: []models.IdentityAnchor{
			nameAnchor("John Michael Smith"),
			{Type: models.AnchorEmployer, Value: "ABC Financial Corp"},
		},
		Outcome: models.OutcomeInvestigation,
	}
	svc := s.newService(stub)
	hits := []models.MediaHit{hit("Fraud Investigation", "2024-11-15", "Reuters")}

	first, err := svc.Check(s.ctx(), s.profile, hits)
	s.Require().NoError(err)

	for i := 0; i < 5; i++ {
		again, err := svc.Check(s.ctx(), s.profile, hits)
		s.Require().NoError(err)
		s.Equal(first.FinalDecision, again.FinalDecision)
		s.Equal(first.DecisionScore, again.DecisionScore)
		s.Equal(first.OverallRationale, again.OverallRationale)
		s.Equal(first.FinalMemo, again.FinalMemo)
		s.NotEqual(first.CaseID, again.CaseID)
	}
}

func (s *ServiceSuite) TestTargetedAskOnlyOnEscalate() {
	stub := extraction.NewStub()
	stub.Results["Fraud Investigation"] = extraction.Result{
		Anchors: []models.IdentityAnchor{
			nameAnchor("John Michael Smith"),
			{Type: models.AnchorEmployer, Value: "ABC Financial Corp"},
		},
		Outcome: models.OutcomeInvestigation,
	}
	svc := s.newService(stub)

	result, err := svc.Check(s.ctx(), s.profile, []models.MediaHit{
		hit("Fraud Investigation", "2024-11-15", "Metro Daily Times"),
	})
	s.Require().NoError(err)

	s.Require().Equal(models.DecisionEscalate, result.FinalDecision)
	s.NotEmpty(result.TargetedAsk)
	s.Contains(result.FinalMemo, result.TargetedAsk)

	clear, err := svc.Check(s.ctx(), s.profile, nil)
	s.Require().NoError(err)
	s.Empty(clear.TargetedAsk)
}

func (s *ServiceSuite) TestAuditEventEmitted() {
	stub := extraction.NewStub()
	store := audit.NewMemoryStore()
	svc := s.newService(stub, WithAuditPublisher(audit.NewPublisher(store)))

	result, err := svc.Check(s.ctx(), s.profile, nil)
	s.Require().NoError(err)

	events, err := store.ListBySubject(context.Background(), s.profile.FullName)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(audit.ActionCaseScreened, events[0].Action)
	s.Equal(result.CaseID, events[0].CaseID)
	s.Equal(string(models.DecisionClear), events[0].Decision)
	s.Equal(s.now, events[0].Timestamp)
}

// Package service orchestrates the adverse-media screening pipeline: parallel
// per-article extraction and analysis, then a single-threaded case roll-up
// into the final decision, memo and audit event.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"medialens/internal/audit"
	"medialens/internal/extraction"
	"medialens/internal/screening/aggregate"
	"medialens/internal/screening/dedupe"
	"medialens/internal/screening/linkage"
	"medialens/internal/screening/metrics"
	"medialens/internal/screening/models"
	"medialens/internal/screening/namematch"
	"medialens/internal/screening/policy"
	"medialens/internal/screening/report"
	"medialens/internal/screening/signals"
	"medialens/internal/screening/verify"
	dErrors "medialens/pkg/domain-errors"
	"medialens/pkg/requestcontext"
)

const (
	defaultWorkers        = 4
	defaultExtractTimeout = 20 * time.Second
)

// AuditPublisher records completed case decisions.
type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}

// Service runs compliance checks.
type Service struct {
	extractor extraction.Extractor
	policy    *policy.Policy

	matcher    *namematch.Matcher
	verifier   *verify.Verifier
	clusterer  *dedupe.Clusterer
	scorer     *signals.Scorer
	bucketer   *signals.Bucketer
	aggregator *aggregate.Aggregator

	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
	workers        int
	extractTimeout time.Duration
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// WithWorkers bounds the per-article analysis concurrency.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithExtractTimeout bounds each extraction call.
func WithExtractTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.extractTimeout = d
		}
	}
}

// New constructs a Service.
func New(extractor extraction.Extractor, p *policy.Policy, opts ...Option) (*Service, error) {
	if extractor == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "extractor is required")
	}
	if p == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "policy is required")
	}

	matcher := namematch.New(p)
	scorer := signals.NewScorer(p)
	bucketer := signals.NewBucketer(p)
	s := &Service{
		extractor:      extractor,
		policy:         p,
		matcher:        matcher,
		verifier:       verify.New(p, matcher),
		clusterer:      dedupe.New(p),
		scorer:         scorer,
		bucketer:       bucketer,
		aggregator:     aggregate.New(p, scorer, bucketer),
		logger:         slog.Default(),
		workers:        defaultWorkers,
		extractTimeout: defaultExtractTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Check screens one profile against a set of media hits and returns the
// complete case result. Every input hit yields exactly one ArticleAnalysis,
// in input order. Given the same inputs and evaluation time the result is
// identical apart from the case ID.
func (s *Service) Check(ctx context.Context, profile models.UserProfile, hits []models.MediaHit) (*models.ComplianceResult, error) {
	if err := validateInputs(profile, hits); err != nil {
		return nil, err
	}

	start := time.Now()
	now := requestcontext.Now(ctx)

	class := s.matcher.Classify(profile.FullName)
	required := s.matcher.RequiredAnchors(class)

	analyses := make([]models.ArticleAnalysis, len(hits))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, hit := range hits {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			analyses[i] = s.analyzeArticle(gctx, profile, hit, class, required, now)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "case evaluation aborted")
	}

	// Case roll-up is single-threaded from here on.
	s.clusterer.Mark(analyses)

	var matched, nonMatched, scoring []models.ArticleAnalysis
	for _, analysis := range analyses {
		if analysis.Linkage == models.LinkageYes {
			matched = append(matched, analysis)
			if !analysis.Duplicate {
				scoring = append(scoring, analysis)
			}
		} else {
			nonMatched = append(nonMatched, analysis)
		}
	}

	outcome, err := s.aggregator.Rollup(scoring)
	if err != nil {
		return nil, err
	}

	targetedAsk := ""
	if outcome.Decision == models.DecisionEscalate {
		targetedAsk = report.BuildAsk(scoring, s.aggregator.ArticlePoints)
	}

	result := &models.ComplianceResult{
		CaseID:              uuid.New(),
		UserProfile:         profile,
		TotalHits:           len(hits),
		AnalyzedArticles:    analyses,
		MatchedHits:         matched,
		NonMatchedHits:      nonMatched,
		FinalDecision:       outcome.Decision,
		DecisionScore:       outcome.Score,
		OverallRationale:    outcome.Rationale,
		TargetedAsk:         targetedAsk,
		FinalMemo:           report.Memo(profile, matched, outcome.Decision, outcome.Score, targetedAsk, now),
		ProcessingTimestamp: now,
	}

	s.metrics.IncrementDecision(string(outcome.Decision))
	s.metrics.ObserveCheckLatency(time.Since(start))
	s.emitAudit(ctx, result)

	s.logger.InfoContext(ctx, "compliance check completed",
		"case_id", result.CaseID,
		"request_id", requestcontext.RequestID(ctx),
		"hits", len(hits),
		"matched", len(matched),
		"decision", outcome.Decision,
		"score", outcome.Score,
	)

	return result, nil
}

// analyzeArticle runs the full per-article pipeline. It never fails the case:
// an extraction error yields an inconclusive analysis instead.
func (s *Service) analyzeArticle(ctx context.Context, profile models.UserProfile, hit models.MediaHit, class namematch.Class, required int, now time.Time) models.ArticleAnalysis {
	extractCtx, cancel := context.WithTimeout(ctx, s.extractTimeout)
	defer cancel()

	extractStart := time.Now()
	extracted, err := s.extractor.Extract(extractCtx, profile, hit)
	s.metrics.ObserveExtractionLatency(time.Since(extractStart))
	if err != nil {
		s.metrics.IncrementExtractionFailure()
		s.logger.WarnContext(ctx, "extraction failed, marking article inconclusive",
			"title", hit.Title, "error", err)
		return s.inconclusiveAnalysis(hit, now)
	}

	verifications := s.verifier.VerifyAll(profile, extracted.Anchors, hit.Date)
	decision, rationale := linkage.Decide(verifications, class, required)
	s.metrics.IncrementLinkage(string(decision))

	tier, credNote := s.scorer.Note(hit.Source, hit.Date)
	bucket, recNote := s.bucketer.Note(hit.Date, now)

	analysis := models.ArticleAnalysis{
		Hit:               hit,
		BriefSummary:      extracted.BriefSummary,
		Anchors:           extracted.Anchors,
		Verifications:     verifications,
		Contradictions:    verify.Contradictions(verifications),
		Linkage:           decision,
		Outcome:           extracted.Outcome,
		Categories:        extracted.Categories,
		CredibilityNote:   credNote,
		CredibilityWeight: s.scorer.Weight(tier),
		RecencyNote:       recNote,
		RecencyWeight:     s.bucketer.Weight(bucket),
	}
	analysis.Rationale = report.ArticleRationale(analysis, rationale)
	return analysis
}

// inconclusiveAnalysis stands in for an article whose extraction failed.
// With no anchors there is no evidence to link it, so the verdict is "no"
// with a note flagging the article for manual review.
func (s *Service) inconclusiveAnalysis(hit models.MediaHit, now time.Time) models.ArticleAnalysis {
	tier, credNote := s.scorer.Note(hit.Source, hit.Date)
	bucket, recNote := s.bucketer.Note(hit.Date, now)

	rationale := "Linkage: no - anchor extraction failed, article requires manual review"
	analysis := models.ArticleAnalysis{
		Hit:               hit,
		BriefSummary:      "Extraction unavailable for this article.",
		Linkage:           models.LinkageNo,
		Outcome:           models.OutcomeNone,
		CredibilityNote:   credNote,
		CredibilityWeight: s.scorer.Weight(tier),
		RecencyNote:       recNote,
		RecencyWeight:     s.bucketer.Weight(bucket),
	}
	analysis.Rationale = report.ArticleRationale(analysis, rationale)
	s.metrics.IncrementLinkage(string(models.LinkageNo))
	return analysis
}

func (s *Service) emitAudit(ctx context.Context, result *models.ComplianceResult) {
	if s.auditPublisher == nil {
		return
	}
	event := audit.Event{
		CaseID:   result.CaseID,
		Subject:  result.UserProfile.FullName,
		Action:   audit.ActionCaseScreened,
		Decision: string(result.FinalDecision),
		Score:    result.DecisionScore,
		Reason:   result.OverallRationale,
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "audit emit failed", "case_id", result.CaseID, "error", err)
	}
}

func validateInputs(profile models.UserProfile, hits []models.MediaHit) error {
	if strings.TrimSpace(profile.FullName) == "" {
		return dErrors.New(dErrors.CodeValidation, "user_profile.full_name is required")
	}
	for i, hit := range hits {
		switch {
		case strings.TrimSpace(hit.Title) == "":
			return dErrors.Newf(dErrors.CodeValidation, "media_hits[%d].title is required", i)
		case strings.TrimSpace(hit.Date) == "":
			return dErrors.Newf(dErrors.CodeValidation, "media_hits[%d].date is required", i)
		case strings.TrimSpace(hit.Source) == "":
			return dErrors.Newf(dErrors.CodeValidation, "media_hits[%d].source is required", i)
		}
	}
	return nil
}

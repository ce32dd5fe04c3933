// Package aggregate rolls deduplicated linked articles up into the
// case-level decision score and final decision. The scoring function is a
// documented policy weight table: per article, base points scaled by outcome
// severity, linkage strength, source credibility and recency, summed and
// clamped to [0,100]. Every weight is >= its less-severe counterpart, so more
// or severer or more credible or more recent evidence never lowers the score.
package aggregate

import (
	"fmt"
	"math"

	"medialens/internal/screening/models"
	"medialens/internal/screening/policy"
	"medialens/internal/screening/signals"
	dErrors "medialens/pkg/domain-errors"
)

// CaseOutcome is the case-level roll-up result.
type CaseOutcome struct {
	Score     int
	Decision  models.FinalDecision
	Rationale string
}

// Aggregator computes the case decision under a policy.
type Aggregator struct {
	policy   *policy.Policy
	scorer   *signals.Scorer
	bucketer *signals.Bucketer
}

func New(p *policy.Policy, scorer *signals.Scorer, bucketer *signals.Bucketer) *Aggregator {
	return &Aggregator{policy: p, scorer: scorer, bucketer: bucketer}
}

// Rollup combines the deduplicated matched articles into a decision score
// and banded final decision. Inputs must be linkage "yes" cluster
// representatives; callers enforce that.
func (a *Aggregator) Rollup(matched []models.ArticleAnalysis) (CaseOutcome, error) {
	if len(matched) == 0 {
		return CaseOutcome{
			Score:     0,
			Decision:  models.DecisionClear,
			Rationale: "Decision: clear (score 0/100) because no linked adverse media found.",
		}, nil
	}

	total := 0.0
	for _, article := range matched {
		total += a.ArticlePoints(article)
	}

	score := int(math.Min(100, math.Round(total)))
	if score < 0 || score > 100 {
		return CaseOutcome{}, dErrors.Newf(dErrors.CodeInternal, "decision score %d out of range", score)
	}

	decision := a.decisionFor(score)
	return CaseOutcome{
		Score:     score,
		Decision:  decision,
		Rationale: a.rationaleFor(decision, score, matched),
	}, nil
}

// ArticlePoints computes one article's contribution to the decision score.
func (a *Aggregator) ArticlePoints(article models.ArticleAnalysis) float64 {
	w := a.policy.Weights

	points := w.BasePoints
	points *= a.outcomeMultiplier(article.Outcome)
	if article.Linkage == models.LinkageYes {
		points *= w.LinkageYes
	}
	points *= article.CredibilityWeight
	points *= article.RecencyWeight
	return points
}

func (a *Aggregator) outcomeMultiplier(outcome models.OutcomeType) float64 {
	w := a.policy.Weights
	switch outcome {
	case models.OutcomeConvicted, models.OutcomeRegulatorOrder:
		return w.OutcomeConvicted
	case models.OutcomeCharged:
		return w.OutcomeCharged
	case models.OutcomeInvestigation:
		return w.OutcomeInvestigation
	default:
		return w.OutcomeDefault
	}
}

// decisionFor maps the score onto the configured bands. The bands partition
// [0,100] into exactly three decisions.
func (a *Aggregator) decisionFor(score int) models.FinalDecision {
	switch {
	case score >= a.policy.Bands.DeclineAt:
		return models.DecisionDecline
	case score >= a.policy.Bands.EscalateAt:
		return models.DecisionEscalate
	default:
		return models.DecisionClear
	}
}

func (a *Aggregator) rationaleFor(decision models.FinalDecision, score int, matched []models.ArticleAnalysis) string {
	switch decision {
	case models.DecisionDecline:
		return fmt.Sprintf("Decision: decline (score %d/100) because %d linked article(s) carry outcomes severe enough to exceed the decline threshold.", score, len(matched))
	case models.DecisionEscalate:
		return fmt.Sprintf("Decision: escalate (score %d/100) because %d linked article(s) report adverse findings that require analyst review.", score, len(matched))
	default:
		return fmt.Sprintf("Decision: clear (score %d/100) because the %d linked article(s) are weak, stale, or low credibility.", score, len(matched))
	}
}

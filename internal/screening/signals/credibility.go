// Package signals annotates articles with source credibility and recency.
// Both produce a human-readable note for the analysis plus an implicit
// weight consumed only by the case aggregator.
package signals

import (
	"fmt"
	"strings"

	"medialens/internal/screening/policy"
)

// Tier is the source trust classification.
type Tier string

const (
	TierGovernment Tier = "government/court"
	Tier1Outlet    Tier = "tier-1 outlet"
	TierNational   Tier = "national outlet"
	TierLocal      Tier = "local outlet"
	TierBlog       Tier = "blog/low credibility"
)

// Scorer classifies publishers into trust tiers under a policy.
type Scorer struct {
	policy *policy.Policy
}

func NewScorer(p *policy.Policy) *Scorer {
	return &Scorer{policy: p}
}

// Classify maps a publisher name to its trust tier. Unrecognized sources
// default to national, the original vendor-feed convention.
func (s *Scorer) Classify(source string) Tier {
	lower := strings.ToLower(strings.TrimSpace(source))

	switch {
	case containsAny(lower, "gov", "court", "tribunal", "regulator"):
		return TierGovernment
	case s.policy.IsTier1Publisher(source):
		return Tier1Outlet
	case containsAny(lower, "national", "times", "post", "herald"):
		return TierNational
	case containsAny(lower, "local", "gazette", "tribune"):
		return TierLocal
	case containsAny(lower, "blog", "wordpress", "medium"):
		return TierBlog
	default:
		return TierNational
	}
}

// Note renders the credibility note carried on the article analysis.
func (s *Scorer) Note(source, date string) (Tier, string) {
	tier := s.Classify(source)
	return tier, fmt.Sprintf("Credibility: %s (%s, %s)", tier, source, date)
}

// Weight returns the trust multiplier for a tier from the policy weight
// table.
func (s *Scorer) Weight(tier Tier) float64 {
	w := s.policy.Weights
	switch tier {
	case TierGovernment:
		return w.CredibilityGovernment
	case Tier1Outlet:
		return w.CredibilityTier1
	case TierLocal:
		return w.CredibilityLocal
	case TierBlog:
		return w.CredibilityBlog
	default:
		return w.CredibilityNational
	}
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

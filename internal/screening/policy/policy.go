// Package policy holds the immutable screening policy: matching thresholds,
// reference surname frequencies, credibility tiers, recency windows, score
// weights and decision bands. The orchestrator receives one validated Policy
// and passes it down; nothing reads ambient global state.
package policy

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Policy is the full screening policy. All fields are plain data so a Policy
// can be loaded from YAML, validated once at startup, and shared read-only.
type Policy struct {
	// Name matching.
	NameSimilarityThreshold float64  `yaml:"nameSimilarityThreshold"`
	CommonNameAnchors       int      `yaml:"commonNameAnchors"`
	RareNameAnchors         int      `yaml:"rareNameAnchors"`
	CommonSurnames          []string `yaml:"commonSurnames"`

	// Anchor verification tolerances (years).
	AgeToleranceYears int `yaml:"ageToleranceYears"`
	AgeHardGapYears   int `yaml:"ageHardGapYears"`

	// Recency bucketing.
	LookbackYears int `yaml:"lookbackYears"`

	// Duplicate clustering.
	DedupeTitleSimilarity float64 `yaml:"dedupeTitleSimilarity"`
	DedupeDateWindowDays  int     `yaml:"dedupeDateWindowDays"`

	// Credibility classification.
	Tier1Publishers []string `yaml:"tier1Publishers"`

	// Case aggregation.
	Weights ScoreWeights  `yaml:"weights"`
	Bands   DecisionBands `yaml:"bands"`

	commonSurnameSet map[string]struct{}
	tier1Set         map[string]struct{}
}

// ScoreWeights parameterizes the decision score. Every weight is a
// multiplier on an article's base points; all must be >= those of a strictly
// less severe input for the score to stay monotonic.
type ScoreWeights struct {
	BasePoints float64 `yaml:"basePoints"`

	OutcomeConvicted     float64 `yaml:"outcomeConvicted"`
	OutcomeCharged       float64 `yaml:"outcomeCharged"`
	OutcomeInvestigation float64 `yaml:"outcomeInvestigation"`
	OutcomeDefault       float64 `yaml:"outcomeDefault"`

	LinkageYes float64 `yaml:"linkageYes"`

	CredibilityGovernment float64 `yaml:"credibilityGovernment"`
	CredibilityTier1      float64 `yaml:"credibilityTier1"`
	CredibilityNational   float64 `yaml:"credibilityNational"`
	CredibilityLocal      float64 `yaml:"credibilityLocal"`
	CredibilityBlog       float64 `yaml:"credibilityBlog"`

	RecencyWithin12m float64 `yaml:"recencyWithin12m"`
	Recency12to36m   float64 `yaml:"recency12to36m"`
	RecencyOver36m   float64 `yaml:"recencyOver36m"`
	RecencyBeyond    float64 `yaml:"recencyBeyond"`
}

// DecisionBands partitions [0,100] into exactly three decisions:
// [0, EscalateAt) -> clear, [EscalateAt, DeclineAt) -> escalate,
// [DeclineAt, 100] -> decline.
type DecisionBands struct {
	EscalateAt int `yaml:"escalateAt"`
	DeclineAt  int `yaml:"declineAt"`
}

// Default returns the shipped policy. The surname list mirrors the US Census
// high-frequency set used for common-name classification.
func Default() Policy {
	return Policy{
		NameSimilarityThreshold: 0.7,
		CommonNameAnchors:       2,
		RareNameAnchors:         1,
		CommonSurnames: []string{
			"smith", "johnson", "williams", "brown", "jones", "garcia", "miller",
			"davis", "rodriguez", "martinez", "hernandez", "lopez", "gonzalez",
			"wilson", "anderson", "thomas", "taylor", "moore", "jackson", "martin",
			"lee", "perez", "thompson", "white", "harris", "sanchez", "clark",
			"ramirez", "lewis", "robinson", "walker", "young", "allen", "king",
			"wright", "scott", "torres", "nguyen", "hill", "flores", "green",
			"adams", "nelson", "baker", "hall", "rivera", "campbell", "mitchell",
		},
		AgeToleranceYears:     2,
		AgeHardGapYears:       10,
		LookbackYears:         7,
		DedupeTitleSimilarity: 0.6,
		DedupeDateWindowDays:  3,
		Tier1Publishers: []string{
			"financial times", "wall street journal", "bloomberg", "reuters",
			"associated press", "bbc", "cnn", "new york times", "washington post",
		},
		Weights: ScoreWeights{
			BasePoints:           20,
			OutcomeConvicted:     3.0,
			OutcomeCharged:       2.0,
			OutcomeInvestigation: 1.5,
			OutcomeDefault:       1.0,
			LinkageYes:           1.5,

			CredibilityGovernment: 1.25,
			CredibilityTier1:      1.2,
			CredibilityNational:   1.0,
			CredibilityLocal:      0.8,
			CredibilityBlog:       0.6,

			RecencyWithin12m: 1.5,
			Recency12to36m:   1.2,
			RecencyOver36m:   1.0,
			RecencyBeyond:    0.5,
		},
		Bands: DecisionBands{
			EscalateAt: 40,
			DeclineAt:  70,
		},
	}
}

// Load returns the default policy overridden by the YAML file at path, if
// any. An empty path yields the default policy.
func Load(path string) (Policy, error) {
	p := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Policy{}, fmt.Errorf("read policy file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &p); err != nil {
			return Policy{}, fmt.Errorf("parse policy file: %w", err)
		}
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// Validate checks internal consistency and builds lookup sets. Must be
// called before the policy is used.
func (p *Policy) Validate() error {
	if p.NameSimilarityThreshold <= 0 || p.NameSimilarityThreshold > 1 {
		return fmt.Errorf("policy: nameSimilarityThreshold must be in (0,1], got %v", p.NameSimilarityThreshold)
	}
	if p.RareNameAnchors < 1 || p.CommonNameAnchors < p.RareNameAnchors {
		return fmt.Errorf("policy: anchor thresholds must satisfy 1 <= rare <= common")
	}
	if p.AgeToleranceYears < 0 || p.AgeHardGapYears < p.AgeToleranceYears {
		return fmt.Errorf("policy: age tolerances must satisfy 0 <= tolerance <= hard gap")
	}
	if p.LookbackYears <= 0 {
		return fmt.Errorf("policy: lookbackYears must be positive")
	}
	if p.DedupeTitleSimilarity <= 0 || p.DedupeTitleSimilarity > 1 {
		return fmt.Errorf("policy: dedupeTitleSimilarity must be in (0,1]")
	}
	if p.DedupeDateWindowDays < 0 {
		return fmt.Errorf("policy: dedupeDateWindowDays must be non-negative")
	}
	if p.Bands.EscalateAt <= 0 || p.Bands.DeclineAt <= p.Bands.EscalateAt || p.Bands.DeclineAt > 100 {
		return fmt.Errorf("policy: bands must satisfy 0 < escalateAt < declineAt <= 100")
	}
	if p.Weights.BasePoints <= 0 {
		return fmt.Errorf("policy: basePoints must be positive")
	}

	p.commonSurnameSet = toSet(p.CommonSurnames)
	p.tier1Set = toSet(p.Tier1Publishers)
	return nil
}

// IsCommonSurname reports whether the surname component of a full name is in
// the high-frequency reference set.
func (p *Policy) IsCommonSurname(fullName string) bool {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return false
	}
	surname := strings.ToLower(fields[len(fields)-1])
	_, ok := p.commonSurnameSet[surname]
	return ok
}

// IsTier1Publisher reports whether the publisher is in the configured tier-1
// outlet set.
func (p *Policy) IsTier1Publisher(source string) bool {
	_, ok := p.tier1Set[strings.ToLower(strings.TrimSpace(source))]
	return ok
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(strings.TrimSpace(v))] = struct{}{}
	}
	return set
}

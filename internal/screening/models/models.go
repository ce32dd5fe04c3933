// Package models defines the screening data model: the immutable case inputs
// (profile, hits), the per-article analysis produced by the pipeline, and the
// case-level result. Values here are plain data; behavior lives in the
// screening subpackages.
package models

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile is the identity information for the individual under review.
// Immutable input for a case. Dates use YYYY-MM-DD wire format.
type UserProfile struct {
	FullName    string            `json:"full_name"`
	DateOfBirth string            `json:"date_of_birth,omitempty"`
	City        string            `json:"city,omitempty"`
	Employer    string            `json:"employer,omitempty"`
	IDData      map[string]string `json:"id_data,omitempty"`
	Aliases     []string          `json:"aliases,omitempty"`
}

// Names returns the full name followed by aliases, in declaration order.
func (p UserProfile) Names() []string {
	names := make([]string, 0, 1+len(p.Aliases))
	names = append(names, p.FullName)
	names = append(names, p.Aliases...)
	return names
}

// MediaHit is one adverse media hit from the vendor feed. Immutable input.
type MediaHit struct {
	Title    string  `json:"title"`
	Snippet  string  `json:"snippet,omitempty"`
	FullText string  `json:"full_text,omitempty"`
	Date     string  `json:"date"`
	Source   string  `json:"source"`
	URL      string  `json:"url,omitempty"`
	HitType  HitType `json:"hit_type"`
}

// Content returns the richest text available for extraction.
func (h MediaHit) Content() string {
	if h.FullText != "" {
		return h.FullText
	}
	if h.Snippet != "" {
		return h.Snippet
	}
	return h.Title
}

// IdentityAnchor is a discrete identity-bearing fact extracted from an
// article by the extraction collaborator.
type IdentityAnchor struct {
	Type       AnchorType `json:"anchor_type"`
	Value      string     `json:"value"`
	Confidence float64    `json:"confidence"`
	SourceText string     `json:"source_text,omitempty"`
}

// AnchorVerification is the result of comparing one anchor against the user
// profile. Matches and Conflict are mutually exclusive; when neither is set
// the verification is neutral and excluded from evidence counts. Hard marks
// zero-tolerance conflicts (dob, id, hard age mismatch) that force linkage
// "no" regardless of match count.
type AnchorVerification struct {
	Anchor    IdentityAnchor `json:"anchor"`
	Matches   bool           `json:"matches"`
	Conflict  bool           `json:"conflict"`
	Hard      bool           `json:"hard,omitempty"`
	Rationale string         `json:"rationale"`
}

// Neutral reports whether the verification carries no evidence either way.
func (v AnchorVerification) Neutral() bool {
	return !v.Matches && !v.Conflict
}

// ArticleAnalysis is the complete per-article pipeline output. Created once
// per hit; never mutated after the pipeline finishes for that hit, except for
// the Duplicate flag set during case-level clustering.
type ArticleAnalysis struct {
	Hit            MediaHit             `json:"hit"`
	BriefSummary   string               `json:"brief_summary"`
	Anchors        []IdentityAnchor     `json:"anchors"`
	Verifications  []AnchorVerification `json:"anchor_verifications"`
	Contradictions []string             `json:"contradictions"`
	Linkage        LinkageDecision      `json:"linkage_decision"`
	Outcome        OutcomeType          `json:"outcome_type"`
	Categories     []CategoryType       `json:"category_types"`

	CredibilityNote   string  `json:"credibility_note"`
	CredibilityWeight float64 `json:"-"`
	RecencyNote       string  `json:"recency_note"`
	RecencyWeight     float64 `json:"-"`

	// Rationale is the fixed three-line per-article explanation.
	Rationale string `json:"rationale"`

	// Duplicate marks cluster members that were folded into another
	// article's event; they stay visible but are excluded from the
	// case-level risk aggregate.
	Duplicate bool `json:"duplicate,omitempty"`
}

// ComplianceResult is the case-level output: one per check request,
// read-only thereafter.
type ComplianceResult struct {
	CaseID              uuid.UUID         `json:"case_id"`
	UserProfile         UserProfile       `json:"user_profile"`
	TotalHits           int               `json:"total_hits"`
	AnalyzedArticles    []ArticleAnalysis `json:"analyzed_articles"`
	MatchedHits         []ArticleAnalysis `json:"matched_hits"`
	NonMatchedHits      []ArticleAnalysis `json:"non_matched_hits"`
	FinalDecision       FinalDecision     `json:"final_decision"`
	DecisionScore       int               `json:"decision_score"`
	OverallRationale    string            `json:"overall_rationale"`
	TargetedAsk         string            `json:"targeted_ask,omitempty"`
	FinalMemo           string            `json:"final_memo"`
	ProcessingTimestamp time.Time         `json:"processing_timestamp"`
}

// Package extraction defines the anchor-extraction collaborator boundary:
// given one article and minimal profile context, produce identity anchors
// and a neutral summary. The decision pipeline never reads raw article text
// itself; it consumes whatever an Extractor returns, so the core stays
// deterministic and testable with the stub implementation.
package extraction

import (
	"context"
	"fmt"

	"medialens/internal/screening/models"
)

// Result is what the collaborator extracts from one article.
type Result struct {
	BriefSummary string                  `json:"brief_summary"`
	Anchors      []models.IdentityAnchor `json:"anchors"`
	Outcome      models.OutcomeType      `json:"outcome_type"`
	Categories   []models.CategoryType   `json:"category_types"`
}

// Extractor is the collaborator port. Implementations must honor ctx
// cancellation; callers bound each call with a per-article timeout.
type Extractor interface {
	Extract(ctx context.Context, profile models.UserProfile, hit models.MediaHit) (*Result, error)
}

// Error marks a recoverable per-article extraction failure (timeout,
// unparsable model output). The orchestrator marks the affected article
// inconclusive instead of failing the case.
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("extraction failed: %s", e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Stub is a deterministic Extractor for tests and demo mode. Results are
// keyed by article title; unkeyed articles yield an empty result, and Fail
// injects per-article failures.
type Stub struct {
	Results map[string]Result
	Fail    map[string]error
}

// NewStub creates an empty stub extractor.
func NewStub() *Stub {
	return &Stub{
		Results: make(map[string]Result),
		Fail:    make(map[string]error),
	}
}

func (s *Stub) Extract(ctx context.Context, profile models.UserProfile, hit models.MediaHit) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Reason: "context canceled", Err: err}
	}
	if err, ok := s.Fail[hit.Title]; ok {
		return nil, &Error{Reason: "stubbed failure", Err: err}
	}
	if result, ok := s.Results[hit.Title]; ok {
		return &result, nil
	}
	return &Result{BriefSummary: "No extraction configured for this article.", Outcome: models.OutcomeNone}, nil
}

// Package linkage turns one article's anchor verifications into a yes/maybe/no
// linkage verdict. This is pure domain logic - no I/O, no side effects - so
// two calls with identical inputs always yield the same verdict.
package linkage

import (
	"fmt"
	"sort"
	"strings"

	"medialens/internal/screening/models"
	"medialens/internal/screening/namematch"
)

// Decide evaluates the rule chain in precedence order:
//  1. Any zero-tolerance conflict (dob, id, hard age mismatch) -> "no",
//     regardless of match count.
//  2. Match count >= threshold (2 common / 1 rare) -> "yes".
//  3. 1 <= match count < threshold -> "maybe".
//  4. No matches -> "no".
func Decide(verifications []models.AnchorVerification, class namematch.Class, required int) (models.LinkageDecision, string) {
	// Rule 1: hard conflicts override positive evidence - compliance-critical.
	for _, verification := range verifications {
		if verification.Conflict && verification.Hard {
			return models.LinkageNo, fmt.Sprintf("Linkage: no - hard conflict: %s", verification.Rationale)
		}
	}

	matched := matchedVerifications(verifications)
	count := len(matched)

	switch {
	case count >= required:
		return models.LinkageYes, fmt.Sprintf(
			"Linkage: yes - %d matched anchors (%s) meet %s-name threshold %d",
			count, anchorSummary(matched, 3), class, required)
	case count >= 1:
		return models.LinkageMaybe, fmt.Sprintf(
			"Linkage: maybe - %d matched anchors (%s) below %s-name threshold %d",
			count, anchorSummary(matched, 3), class, required)
	default:
		return models.LinkageNo, "Linkage: no - no matching anchors"
	}
}

func matchedVerifications(verifications []models.AnchorVerification) []models.AnchorVerification {
	var matched []models.AnchorVerification
	for _, verification := range verifications {
		if verification.Matches {
			matched = append(matched, verification)
		}
	}
	return matched
}

// anchorSummary renders up to limit "type:value" pairs in a stable order.
func anchorSummary(verifications []models.AnchorVerification, limit int) string {
	parts := make([]string, 0, len(verifications))
	for _, verification := range verifications {
		parts = append(parts, fmt.Sprintf("%s:%s", verification.Anchor.Type, verification.Anchor.Value))
	}
	sort.Strings(parts)
	if len(parts) > limit {
		parts = parts[:limit]
	}
	return strings.Join(parts, ", ")
}

// InconclusiveTypes returns the anchor types among the given candidates that
// produced no evidence either way (neutral or entirely absent) across the
// verifications. Used to target follow-up evidence requests.
func InconclusiveTypes(verifications []models.AnchorVerification, candidates []models.AnchorType) []models.AnchorType {
	decided := make(map[models.AnchorType]bool)
	for _, verification := range verifications {
		if verification.Matches || verification.Conflict {
			decided[verification.Anchor.Type] = true
		}
	}

	var inconclusive []models.AnchorType
	for _, anchorType := range candidates {
		if !decided[anchorType] {
			inconclusive = append(inconclusive, anchorType)
		}
	}
	return inconclusive
}

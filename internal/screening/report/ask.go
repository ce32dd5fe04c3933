// Package report renders the escalation follow-up request and the final
// audit memo. Both are fixed-structure templates: same inputs always produce
// byte-identical text.
package report

import (
	"sort"

	"medialens/internal/screening/linkage"
	"medialens/internal/screening/models"
)

// askCandidates are the anchor types worth requesting corroboration for, in
// priority order. Name is excluded: a matched case always has name evidence.
var askCandidates = []models.AnchorType{
	models.AnchorDOB,
	models.AnchorID,
	models.AnchorEmployer,
	models.AnchorCity,
}

var askInstructions = map[models.AnchorType]string{
	models.AnchorDOB:      "Request: government ID to confirm date of birth, since the linked articles offer no DOB corroboration.",
	models.AnchorID:       "Request: identity document copy, since no document number could be corroborated against the articles.",
	models.AnchorEmployer: "Request: employment verification, since the linked articles offer no employer corroboration.",
	models.AnchorCity:     "Request: proof of address, since the linked articles offer no residence corroboration.",
}

// strongestConsidered caps how many top articles drive the targeted ask.
const strongestConsidered = 3

// BuildAsk produces the specific follow-up request for an escalation.
// pointsOf ranks articles so the ask reflects the strongest matched
// evidence. Callers only invoke this for escalate outcomes.
func BuildAsk(matched []models.ArticleAnalysis, pointsOf func(models.ArticleAnalysis) float64) string {
	if len(matched) == 0 {
		return "Request: manual review of linkage assessment for final confirmation."
	}

	strongest := make([]models.ArticleAnalysis, len(matched))
	copy(strongest, matched)
	sort.SliceStable(strongest, func(i, j int) bool {
		return pointsOf(strongest[i]) > pointsOf(strongest[j])
	})
	if len(strongest) > strongestConsidered {
		strongest = strongest[:strongestConsidered]
	}

	// An anchor type is missing only if no strong article decided it.
	missing := make(map[models.AnchorType]int)
	for _, article := range strongest {
		for _, anchorType := range linkage.InconclusiveTypes(article.Verifications, askCandidates) {
			missing[anchorType]++
		}
	}

	for _, anchorType := range askCandidates {
		if missing[anchorType] == len(strongest) {
			return askInstructions[anchorType]
		}
	}

	return "Request: manual review of linkage assessment for final confirmation."
}

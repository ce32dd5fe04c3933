// Package verify compares extracted identity anchors against the user
// profile. Each anchor yields exactly one verification: match, conflict, or
// neutral (profile field absent or value unparsable). Neutral verifications
// are excluded from evidence counts downstream.
package verify

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"medialens/internal/screening/models"
	"medialens/internal/screening/namematch"
	"medialens/internal/screening/policy"
)

// Verifier applies per-anchor-type verification policy.
type Verifier struct {
	policy  *policy.Policy
	matcher *namematch.Matcher
}

func New(p *policy.Policy, matcher *namematch.Matcher) *Verifier {
	return &Verifier{policy: p, matcher: matcher}
}

// VerifyAll verifies every anchor in order. articleDate anchors the age
// comparison; it is the hit's publication date.
func (v *Verifier) VerifyAll(profile models.UserProfile, anchors []models.IdentityAnchor, articleDate string) []models.AnchorVerification {
	verifications := make([]models.AnchorVerification, 0, len(anchors))
	for _, anchor := range anchors {
		verifications = append(verifications, v.Verify(profile, anchor, articleDate))
	}
	return verifications
}

// Verify compares a single anchor against the profile, dispatching on the
// anchor's closed-set type.
func (v *Verifier) Verify(profile models.UserProfile, anchor models.IdentityAnchor, articleDate string) models.AnchorVerification {
	result := models.AnchorVerification{Anchor: anchor}
	value := strings.TrimSpace(anchor.Value)

	switch anchor.Type {
	case models.AnchorName:
		v.verifyName(&result, profile, value)
	case models.AnchorEmployer:
		verifyText(&result, "employer", profile.Employer, value)
	case models.AnchorCity:
		verifyText(&result, "city", profile.City, value)
	case models.AnchorTitle:
		// The profile carries no title field, so titles are informational.
		result.Rationale = fmt.Sprintf("title: not verifiable (%q mentioned)", value)
	case models.AnchorDOB:
		v.verifyDOB(&result, profile, value)
	case models.AnchorAge:
		v.verifyAge(&result, profile, value, articleDate)
	case models.AnchorID:
		verifyID(&result, profile, value)
	default:
		result.Rationale = fmt.Sprintf("unknown anchor type: %s", anchor.Type)
	}

	return result
}

// Contradictions maps conflicting verifications to human-readable
// contradiction statements, in verification order.
func Contradictions(verifications []models.AnchorVerification) []string {
	var contradictions []string
	for _, verification := range verifications {
		if verification.Conflict {
			contradictions = append(contradictions, verification.Rationale)
		}
	}
	return contradictions
}

func (v *Verifier) verifyName(result *models.AnchorVerification, profile models.UserProfile, value string) {
	score, matched := v.matcher.Score(value, profile.Names())
	if score >= v.policy.NameSimilarityThreshold {
		result.Matches = true
		result.Rationale = fmt.Sprintf("name: %q matches %q (score %.2f)", value, matched, score)
		return
	}
	result.Rationale = fmt.Sprintf("name: %q not found in profile names (best score %.2f)", value, score)
}

// verifyText covers employer and city: case-insensitive normalized
// comparison, matching on equality or containment, conflicting when both
// values are present and substantially different.
func verifyText(result *models.AnchorVerification, field, profileValue, value string) {
	if value == "" {
		result.Rationale = fmt.Sprintf("%s: no value extracted", field)
		return
	}
	if profileValue == "" {
		result.Rationale = fmt.Sprintf("%s: not stated in profile", field)
		return
	}
	profileNorm := strings.ToLower(strings.TrimSpace(profileValue))
	anchorNorm := strings.ToLower(value)

	if strings.Contains(profileNorm, anchorNorm) || strings.Contains(anchorNorm, profileNorm) {
		result.Matches = true
		result.Rationale = fmt.Sprintf("%s: matches (%s)", field, value)
		return
	}
	result.Conflict = true
	result.Rationale = fmt.Sprintf("%s: conflict (profile: %s vs article: %s)", field, profileValue, value)
}

func (v *Verifier) verifyDOB(result *models.AnchorVerification, profile models.UserProfile, value string) {
	if profile.DateOfBirth == "" {
		result.Rationale = "dob: not stated in profile"
		return
	}
	profileDOB, ok := models.ParseDate(profile.DateOfBirth)
	if !ok {
		result.Rationale = fmt.Sprintf("dob: could not parse profile value %q", profile.DateOfBirth)
		return
	}
	anchorDOB, ok := models.ParseDate(value)
	if !ok {
		result.Rationale = fmt.Sprintf("dob: could not parse %q", value)
		return
	}

	if sameDate(profileDOB, anchorDOB) {
		result.Matches = true
		result.Rationale = fmt.Sprintf("dob: matches (%s)", value)
		return
	}
	result.Conflict = true
	result.Hard = true
	result.Rationale = fmt.Sprintf("dob: conflict (profile: %s vs article: %s)", profile.DateOfBirth, value)
}

func (v *Verifier) verifyAge(result *models.AnchorVerification, profile models.UserProfile, value, articleDate string) {
	if profile.DateOfBirth == "" {
		result.Rationale = "age: cannot verify, no DOB in profile"
		return
	}
	stated, err := strconv.Atoi(strings.TrimSuffix(value, " years"))
	if err != nil {
		result.Rationale = fmt.Sprintf("age: could not parse %q", value)
		return
	}
	birth, ok := models.ParseDate(profile.DateOfBirth)
	if !ok {
		result.Rationale = fmt.Sprintf("age: could not parse profile DOB %q", profile.DateOfBirth)
		return
	}
	ref, ok := models.ParseDate(articleDate)
	if !ok {
		result.Rationale = fmt.Sprintf("age: could not parse article date %q", articleDate)
		return
	}

	expected := models.AgeAt(birth, ref)
	gap := stated - expected
	if gap < 0 {
		gap = -gap
	}

	switch {
	case gap <= v.policy.AgeToleranceYears:
		result.Matches = true
		result.Rationale = fmt.Sprintf("age: matches (article: %d, expected: %d)", stated, expected)
	case gap > v.policy.AgeHardGapYears:
		result.Conflict = true
		result.Hard = true
		result.Rationale = fmt.Sprintf("age: hard conflict (article: %d, expected: %d)", stated, expected)
	default:
		result.Conflict = true
		result.Rationale = fmt.Sprintf("age: conflict (article: %d, expected: %d)", stated, expected)
	}
}

func verifyID(result *models.AnchorVerification, profile models.UserProfile, value string) {
	if value == "" {
		result.Rationale = "id: no value extracted"
		return
	}
	if len(profile.IDData) == 0 {
		result.Rationale = fmt.Sprintf("id: not verifiable (%q mentioned)", value)
		return
	}
	// Sorted iteration keeps the rationale deterministic when several
	// documents could match.
	for _, idType := range sortedKeys(profile.IDData) {
		idValue := profile.IDData[idType]
		if strings.Contains(idValue, value) || strings.Contains(value, idValue) {
			result.Matches = true
			result.Rationale = fmt.Sprintf("id: matches %s", idType)
			return
		}
	}
	result.Conflict = true
	result.Hard = true
	result.Rationale = fmt.Sprintf("id: conflict, %q matches no document on file", value)
}

// sameDate compares calendar dates only, ignoring the time of day the
// RFC3339 layout can carry.
func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

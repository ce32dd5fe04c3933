// Package namematch scores candidate names from articles against the profile
// name and aliases, and classifies the profile name as common or rare. The
// classification only moves the evidence threshold downstream; it never
// changes the match score itself.
package namematch

import (
	"regexp"
	"strings"

	"medialens/internal/screening/policy"
)

// Class is the commonality classification of a profile name.
type Class string

const (
	ClassCommon Class = "common"
	ClassRare   Class = "rare"
)

var (
	honorificRe  = regexp.MustCompile(`(?i)\b(mr|mrs|ms|dr|prof|sir|lord|lady|jr|sr|ii|iii)\b\.?`)
	nonWordRe    = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Normalize strips honorifics, suffixes and punctuation and lowercases the
// name for comparison.
func Normalize(name string) string {
	cleaned := honorificRe.ReplaceAllString(name, "")
	cleaned = nonWordRe.ReplaceAllString(cleaned, "")
	cleaned = whitespaceRe.ReplaceAllString(cleaned, " ")
	return strings.ToLower(strings.TrimSpace(cleaned))
}

// Similarity computes token-set Jaccard similarity between two normalized
// names, in [0,1].
func Similarity(a, b string) float64 {
	tokensA := tokenSet(Normalize(a))
	tokensB := tokenSet(Normalize(b))
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	intersection := 0
	for token := range tokensA {
		if _, ok := tokensB[token]; ok {
			intersection++
		}
	}
	union := len(tokensA) + len(tokensB) - intersection
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range strings.Fields(s) {
		set[token] = struct{}{}
	}
	return set
}

// Matcher scores candidate names against one profile under a policy.
type Matcher struct {
	policy *policy.Policy
}

func New(p *policy.Policy) *Matcher {
	return &Matcher{policy: p}
}

// Score returns the best similarity between the candidate and any profile
// name (full name or alias), along with the profile name that produced it.
func (m *Matcher) Score(candidate string, profileNames []string) (float64, string) {
	best := 0.0
	bestName := ""
	for _, name := range profileNames {
		if s := Similarity(candidate, name); s > best {
			best = s
			bestName = name
		}
	}
	return best, bestName
}

// Matches reports whether the candidate clears the configured similarity
// threshold against any profile name.
func (m *Matcher) Matches(candidate string, profileNames []string) bool {
	score, _ := m.Score(candidate, profileNames)
	return score >= m.policy.NameSimilarityThreshold
}

// Classify determines whether the profile's surname is common or rare.
func (m *Matcher) Classify(fullName string) Class {
	if m.policy.IsCommonSurname(fullName) {
		return ClassCommon
	}
	return ClassRare
}

// RequiredAnchors returns the evidence threshold for the classification.
func (m *Matcher) RequiredAnchors(class Class) int {
	if class == ClassCommon {
		return m.policy.CommonNameAnchors
	}
	return m.policy.RareNameAnchors
}

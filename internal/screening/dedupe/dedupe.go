// Package dedupe groups linked articles that describe the same underlying
// event so the case roll-up does not double-count it. An event cluster is
// defined by title token similarity, date proximity, and a shared source
// family. The earliest article in input order represents the cluster; the
// rest stay visible but carry the Duplicate flag.
package dedupe

import (
	"regexp"
	"strings"

	"medialens/internal/screening/models"
	"medialens/internal/screening/policy"
)

var titleTokenRe = regexp.MustCompile(`[\p{L}\p{N}]+`)

// Clusterer clusters linkage-yes articles under a policy.
type Clusterer struct {
	policy *policy.Policy
}

func New(p *policy.Policy) *Clusterer {
	return &Clusterer{policy: p}
}

// Mark flags duplicate cluster members in place and returns the number of
// distinct event clusters among linkage-yes articles. Articles that are not
// linked "yes" are ignored.
func (c *Clusterer) Mark(analyses []models.ArticleAnalysis) int {
	var representatives []int

	for i := range analyses {
		if analyses[i].Linkage != models.LinkageYes {
			continue
		}

		clustered := false
		for _, rep := range representatives {
			if c.sameEvent(analyses[rep].Hit, analyses[i].Hit) {
				analyses[i].Duplicate = true
				clustered = true
				break
			}
		}
		if !clustered {
			representatives = append(representatives, i)
		}
	}

	return len(representatives)
}

// sameEvent reports whether two hits plausibly describe one event.
func (c *Clusterer) sameEvent(a, b models.MediaHit) bool {
	if !sameSourceFamily(a.Source, b.Source) {
		return false
	}
	if !c.datesClose(a.Date, b.Date) {
		return false
	}
	return titleSimilarity(a.Title, b.Title) >= c.policy.DedupeTitleSimilarity
}

func (c *Clusterer) datesClose(a, b string) bool {
	dateA, okA := models.ParseDate(a)
	dateB, okB := models.ParseDate(b)
	if !okA || !okB {
		return false
	}
	days := dateA.Sub(dateB).Hours() / 24
	if days < 0 {
		days = -days
	}
	return days <= float64(c.policy.DedupeDateWindowDays)
}

// titleSimilarity is token-set Jaccard over lowercased title words.
func titleSimilarity(a, b string) float64 {
	tokensA := titleTokens(a)
	tokensB := titleTokens(b)
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

func titleTokens(title string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, token := range titleTokenRe.FindAllString(strings.ToLower(title), -1) {
		tokens[token] = struct{}{}
	}
	return tokens
}

// sameSourceFamily treats publishers as one family when either normalized
// name contains the other ("Reuters" and "Reuters UK").
func sameSourceFamily(a, b string) bool {
	normA := strings.ToLower(strings.TrimSpace(a))
	normB := strings.ToLower(strings.TrimSpace(b))
	if normA == "" || normB == "" {
		return false
	}
	return strings.Contains(normA, normB) || strings.Contains(normB, normA)
}

package report

import (
	"fmt"
	"strings"
	"time"

	"medialens/internal/screening/models"
)

// memoArticleLimit caps how many linked articles the memo enumerates.
const memoArticleLimit = 5

// Memo renders the final audit memo. The evaluation time is passed in rather
// than read from the clock so repeated runs over fixed inputs yield
// byte-identical text.
func Memo(profile models.UserProfile, matched []models.ArticleAnalysis, decision models.FinalDecision, score int, targetedAsk string, evaluatedAt time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "ADVERSE MEDIA REVIEW - %s\n", profile.FullName)
	fmt.Fprintf(&b, "Subject: %s, DOB: %s\n", profile.FullName, valueOr(profile.DateOfBirth, "not provided"))
	fmt.Fprintf(&b, "Decision: %s (score %d/100)\n", strings.ToUpper(string(decision)), score)
	b.WriteString("\n")

	if len(matched) > 0 {
		b.WriteString("LINKED ARTICLES:\n")
		for i, article := range matched {
			if i == memoArticleLimit {
				fmt.Fprintf(&b, "• ... and %d more\n", len(matched)-memoArticleLimit)
				break
			}
			fmt.Fprintf(&b, "• Article %d: %s (%s, %s)\n", i+1, article.Hit.Title, article.Hit.Source, article.Hit.Date)
			fmt.Fprintf(&b, "  Linkage: %s, Outcome: %s\n", article.Linkage, article.Outcome)
			if len(article.Contradictions) > 0 {
				fmt.Fprintf(&b, "  Contradictions: %s\n", article.Contradictions[0])
			}
		}
	} else {
		b.WriteString("• No linked adverse media found\n")
	}

	b.WriteString("\n")
	if targetedAsk != "" {
		fmt.Fprintf(&b, "NEXT STEP: %s\n", targetedAsk)
	} else {
		b.WriteString("NEXT STEP: Review complete, no further action required.\n")
	}
	fmt.Fprintf(&b, "Review completed: %s\n", evaluatedAt.UTC().Format("2006-01-02 15:04:05"))

	return b.String()
}

// ArticleRationale renders the fixed three-line per-article rationale.
func ArticleRationale(analysis models.ArticleAnalysis, linkageRationale string) string {
	line1 := fmt.Sprintf("Outcome: %s, Category: %s. %s",
		analysis.Outcome, categorySummary(analysis.Categories), analysis.BriefSummary)
	line3 := fmt.Sprintf("%s. %s. URL: %s",
		analysis.CredibilityNote, analysis.RecencyNote, valueOr(analysis.Hit.URL, "not provided"))
	return line1 + "\n" + linkageRationale + "\n" + line3
}

func categorySummary(categories []models.CategoryType) string {
	if len(categories) == 0 {
		return string(models.CategoryNone)
	}
	parts := make([]string, len(categories))
	for i, category := range categories {
		parts[i] = string(category)
	}
	return strings.Join(parts, "/")
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

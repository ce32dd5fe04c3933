package handler

import (
	"medialens/internal/screening/models"
)

// SamplePayload returns a canned request body for manual testing: a common-name
// profile with two articles about the profiled executive and one about an
// unrelated namesake.
func SamplePayload() map[string]any {
	profile := models.UserProfile{
		FullName:    "John Michael Smith",
		DateOfBirth: "1985-03-15",
		City:        "New York",
		Employer:    "ABC Financial Corp",
		IDData:      map[string]string{"passport": "P12345678", "ssn": "XXX-XX-1234"},
		Aliases:     []string{"John Smith", "J.M. Smith"},
	}

	hits := []models.MediaHit{
		{
			Title:    "ABC Financial Corp CFO Charged with Securities Fraud",
			Snippet:  "John Smith, 39, Chief Financial Officer at ABC Financial Corp in New York, was charged yesterday with securities fraud by federal prosecutors.",
			FullText: "Federal prosecutors announced charges against John Michael Smith, age 39, the Chief Financial Officer of ABC Financial Corp based in New York City. Smith is accused of securities fraud in connection with the alleged manipulation of quarterly earnings reports submitted to the SEC between 2020 and 2023. According to court documents filed in the Southern District of New York, Smith allegedly worked with other executives to inflate revenue figures and hide mounting losses. 'This case represents a serious breach of fiduciary duty,' said prosecutor Jane Wilson. Smith's attorney declined to comment. ABC Financial Corp is a mid-sized investment firm with offices in Manhattan. The company's stock has fallen 40% since the charges were announced. Smith joined ABC Financial in 2018 as CFO after working at rival firm XYZ Capital. Court records show Smith was born March 15, 1985 and resides in Manhattan.",
			Date:     "2024-11-15",
			Source:   "Financial Times",
			URL:      "https://ft.com/content/abc-cfo-charged",
			HitType:  models.HitAdverseMedia,
		},
		{
			Title:   "Investment Firm Executive Denies Fraud Allegations",
			Snippet: "John Smith of ABC Financial Corp denies all allegations of securities fraud. His lawyer says the charges are unfounded and they will fight them vigorously in court.",
			Date:    "2024-11-16",
			Source:  "Reuters",
			URL:     "https://reuters.com/business/abc-executive-denies",
			HitType: models.HitAdverseMedia,
		},
		{
			Title:   "Local Man Arrested for DUI",
			Snippet: "John Smith, 45, of Boston was arrested for driving under the influence on Highway 95. Smith works as a mechanic at Joe's Auto Repair.",
			Date:    "2024-11-10",
			Source:  "Boston Herald",
			URL:     "https://bostonherald.com/local/dui-arrest",
			HitType: models.HitAdverseMedia,
		},
	}

	return map[string]any{
		"user_profile": profile,
		"media_hits":   hits,
	}
}

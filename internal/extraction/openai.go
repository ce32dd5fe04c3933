package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"medialens/internal/platform/config"
	"medialens/internal/screening/models"
)

const extractionSystemPrompt = "You are a compliance expert specializing in identity verification. " +
	"Extract identity anchors precisely and create neutral summaries."

const extractionUserTemplate = `Article to analyze:
Title: %s
Date: %s
Content: %s

User profile being checked:
%s

Extract all identity anchors from this article, classify the reported outcome, and create a neutral summary.
Return JSON with:
- "brief_summary": A neutral 1-2 sentence summary of what happened
- "outcome_type": one of [allegation, investigation, charged, convicted, acquitted, settled, regulator_order, none]
- "category_types": array drawn from [corruption, fraud, money_laundering, terrorist_financing, trafficking, sanctions_evasion, violence, regulatory, civil]
- "anchors": Array of identity anchors with:
  - "anchor_type": one of [name, employer, city, dob, age, title, id]
  - "value": the extracted value
  - "confidence": 0-1 confidence score
  - "source_text": the text where this was found`

// OpenAIExtractor implements Extractor against an OpenAI-compatible chat
// completions API.
type OpenAIExtractor struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
}

var _ Extractor = (*OpenAIExtractor)(nil)

// NewOpenAIExtractor builds a client from configuration.
func NewOpenAIExtractor(cfg config.ExtractorConfig) *OpenAIExtractor {
	return &OpenAIExtractor{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Available reports whether the client has everything it needs to call the
// API.
func (e *OpenAIExtractor) Available() bool {
	return e.apiKey != "" && e.endpoint != "" && e.model != ""
}

// Extract sends one article to the model and parses the structured response.
// All failures come back as *Error so the caller can treat them as
// per-article inconclusive rather than case-fatal.
func (e *OpenAIExtractor) Extract(ctx context.Context, profile models.UserProfile, hit models.MediaHit) (*Result, error) {
	if !e.Available() {
		return nil, &Error{Reason: "extractor misconfigured"}
	}

	userPrompt := fmt.Sprintf(extractionUserTemplate,
		hit.Title, hit.Date, hit.Content(), profileSummary(profile))

	body, err := json.Marshal(map[string]any{
		"model": e.model,
		"messages": []map[string]string{
			{"role": "system", "content": extractionSystemPrompt},
			{"role": "user", "content": userPrompt},
		},
		"response_format": map[string]string{"type": "json_object"},
		"temperature":     0.3,
	})
	if err != nil {
		return nil, &Error{Reason: "marshal request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Reason: "build request", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+e.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Reason: "model call", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &Error{Reason: fmt.Sprintf("model API %s: %s", resp.Status, strings.TrimSpace(string(detail)))}
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, &Error{Reason: "decode completion", Err: err}
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return nil, &Error{Reason: "empty completion"}
	}

	return parseResult(completion.Choices[0].Message.Content)
}

// parseResult validates the model's JSON payload into a Result, dropping
// anchors with unknown types rather than failing the article.
func parseResult(content string) (*Result, error) {
	var raw struct {
		BriefSummary string   `json:"brief_summary"`
		OutcomeType  string   `json:"outcome_type"`
		Categories   []string `json:"category_types"`
		Anchors      []struct {
			AnchorType string  `json:"anchor_type"`
			Value      string  `json:"value"`
			Confidence float64 `json:"confidence"`
			SourceText string  `json:"source_text"`
		} `json:"anchors"`
	}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, &Error{Reason: "unparsable model output", Err: err}
	}

	result := &Result{
		BriefSummary: raw.BriefSummary,
		Outcome:      models.ParseOutcomeType(raw.OutcomeType),
	}
	for _, category := range raw.Categories {
		if parsed := models.ParseCategoryType(category); parsed != models.CategoryNone {
			result.Categories = append(result.Categories, parsed)
		}
	}
	for _, anchor := range raw.Anchors {
		anchorType, err := models.ParseAnchorType(anchor.AnchorType)
		if err != nil {
			continue
		}
		result.Anchors = append(result.Anchors, models.IdentityAnchor{
			Type:       anchorType,
			Value:      anchor.Value,
			Confidence: clamp01(anchor.Confidence),
			SourceText: anchor.SourceText,
		})
	}
	return result, nil
}

func profileSummary(profile models.UserProfile) string {
	return fmt.Sprintf("Name: %s, DOB: %s, City: %s, Employer: %s",
		profile.FullName,
		valueOr(profile.DateOfBirth, "not provided"),
		valueOr(profile.City, "not provided"),
		valueOr(profile.Employer, "not provided"))
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

package handler

import (
	"strings"

	"medialens/internal/screening/models"
	dErrors "medialens/pkg/domain-errors"
)

const maxMediaHits = 100

// CheckRequest is the HTTP request body for POST /compliance/check.
type CheckRequest struct {
	UserProfile ProfilePayload `json:"user_profile"`
	MediaHits   []HitPayload   `json:"media_hits"`

	// Parsed values (populated by Validate)
	parsedProfile models.UserProfile
	parsedHits    []models.MediaHit
}

// ProfilePayload is the wire form of the user profile.
type ProfilePayload struct {
	FullName    string            `json:"full_name"`
	DateOfBirth string            `json:"date_of_birth"`
	City        string            `json:"city"`
	Employer    string            `json:"employer"`
	IDData      map[string]string `json:"id_data"`
	Aliases     []string          `json:"aliases"`
}

// HitPayload is the wire form of one media hit.
type HitPayload struct {
	Title    string `json:"title"`
	Snippet  string `json:"snippet"`
	FullText string `json:"full_text"`
	Date     string `json:"date"`
	Source   string `json:"source"`
	URL      string `json:"url"`
	HitType  string `json:"hit_type"`
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *CheckRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.UserProfile.FullName = strings.TrimSpace(r.UserProfile.FullName)
	if r.UserProfile.FullName == "" {
		return dErrors.New(dErrors.CodeValidation, "user_profile.full_name is required")
	}
	if len(r.MediaHits) > maxMediaHits {
		return dErrors.Newf(dErrors.CodeValidation, "media_hits must contain at most %d entries", maxMediaHits)
	}

	r.parsedProfile = models.UserProfile{
		FullName:    r.UserProfile.FullName,
		DateOfBirth: strings.TrimSpace(r.UserProfile.DateOfBirth),
		City:        strings.TrimSpace(r.UserProfile.City),
		Employer:    strings.TrimSpace(r.UserProfile.Employer),
		IDData:      r.UserProfile.IDData,
		Aliases:     r.UserProfile.Aliases,
	}

	r.parsedHits = make([]models.MediaHit, 0, len(r.MediaHits))
	for i, hit := range r.MediaHits {
		hit.Title = strings.TrimSpace(hit.Title)
		hit.Date = strings.TrimSpace(hit.Date)
		hit.Source = strings.TrimSpace(hit.Source)
		switch {
		case hit.Title == "":
			return dErrors.Newf(dErrors.CodeValidation, "media_hits[%d].title is required", i)
		case hit.Date == "":
			return dErrors.Newf(dErrors.CodeValidation, "media_hits[%d].date is required", i)
		case hit.Source == "":
			return dErrors.Newf(dErrors.CodeValidation, "media_hits[%d].source is required", i)
		}

		hitType, err := models.ParseHitType(hit.HitType)
		if err != nil {
			return dErrors.Newf(dErrors.CodeValidation, "media_hits[%d]: %s", i, dErrors.MessageOf(err))
		}

		r.parsedHits = append(r.parsedHits, models.MediaHit{
			Title:    hit.Title,
			Snippet:  hit.Snippet,
			FullText: hit.FullText,
			Date:     hit.Date,
			Source:   hit.Source,
			URL:      strings.TrimSpace(hit.URL),
			HitType:  hitType,
		})
	}

	return nil
}

// ParsedProfile returns the validated user profile.
func (r *CheckRequest) ParsedProfile() models.UserProfile {
	return r.parsedProfile
}

// ParsedHits returns the validated media hits.
func (r *CheckRequest) ParsedHits() []models.MediaHit {
	return r.parsedHits
}

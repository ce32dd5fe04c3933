package handler

import (
	"medialens/internal/screening/models"
)

// CheckResponse is the HTTP response for POST /compliance/check.
type CheckResponse struct {
	Success               bool                     `json:"success"`
	Message               string                   `json:"message"`
	Result                *models.ComplianceResult `json:"result,omitempty"`
	ProcessingTimeSeconds float64                  `json:"processing_time_seconds,omitempty"`
}

// FromResult converts a case result to the HTTP response envelope.
func FromResult(result *models.ComplianceResult, elapsedSeconds float64) *CheckResponse {
	return &CheckResponse{
		Success:               true,
		Message:               "Compliance check completed successfully",
		Result:                result,
		ProcessingTimeSeconds: elapsedSeconds,
	}
}

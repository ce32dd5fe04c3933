// Package handler wires the compliance endpoints to the screening service.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"medialens/internal/screening/models"
	"medialens/pkg/platform/httputil"
	"medialens/pkg/requestcontext"
)

// Service defines the interface for screening operations.
type Service interface {
	Check(ctx context.Context, profile models.UserProfile, hits []models.MediaHit) (*models.ComplianceResult, error)
}

// Handler wires compliance endpoints to the screening service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a compliance handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Register mounts compliance endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/compliance/check", h.HandleCheck)
	r.Get("/compliance/sample", h.HandleSample)
}

// HandleCheck handles POST /compliance/check requests.
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[CheckRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Check(ctx, req.ParsedProfile(), req.ParsedHits())
	if err != nil {
		h.logger.ErrorContext(ctx, "compliance check failed",
			"request_id", requestID,
			"subject", req.ParsedProfile().FullName,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	elapsed := time.Since(start)
	h.logger.InfoContext(ctx, "compliance check served",
		"request_id", requestID,
		"case_id", result.CaseID,
		"decision", result.FinalDecision,
		"duration_ms", elapsed.Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromResult(result, elapsed.Seconds()))
}

// HandleSample handles GET /compliance/sample requests.
func (h *Handler) HandleSample(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, SamplePayload())
}

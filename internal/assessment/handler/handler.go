// Package handler exposes the assessment scope lifecycle over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"recscope/internal/assessment"
	id "recscope/pkg/domain"
	"recscope/pkg/platform/httputil"
	"recscope/pkg/requestcontext"
)

// Service defines the assessment operations the HTTP layer depends on.
type Service interface {
	CreateAssessment(ctx context.Context, tenantID id.TenantID, intakeID id.IntakeID, catalogVersion string) (*assessment.Assessment, error)
	Get(ctx context.Context, assessmentID id.AssessmentID) (*assessment.Assessment, error)
	RefreshScope(ctx context.Context, assessmentID id.AssessmentID) (*assessment.Assessment, error)
	MarkStale(ctx context.Context, assessmentID id.AssessmentID) error
}

// Handler wires assessment endpoints to the assessment service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an assessment handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts assessment endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/assessments", h.HandleCreate)
	r.Get("/assessments/{assessmentID}/scope", h.HandleGetScope)
	r.Post("/assessments/{assessmentID}/scope/refresh", h.HandleRefreshScope)
	r.Post("/assessments/{assessmentID}/scope/stale", h.HandleMarkStale)
}

// HandleCreate handles POST /assessments requests.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	req, ok := httputil.Decode[CreateRequest](w, r)
	if !ok {
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	a, err := h.service.CreateAssessment(ctx, req.ParsedTenantID(), req.ParsedIntakeID(), req.CatalogVersion)
	if err != nil {
		h.logger.ErrorContext(ctx, "assessment creation failed",
			"request_id", requestcontext.RequestID(ctx),
			"intake_id", req.IntakeID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "assessment created",
		"request_id", requestcontext.RequestID(ctx),
		"assessment_id", a.ID,
		"catalog_version", a.CatalogVersion,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, FromAssessment(a))
}

// HandleGetScope handles GET /assessments/{assessmentID}/scope requests.
func (h *Handler) HandleGetScope(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	assessmentID, err := id.ParseAssessmentID(chi.URLParam(r, "assessmentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	a, err := h.service.Get(ctx, assessmentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromAssessment(a))
}

// HandleRefreshScope handles POST /assessments/{assessmentID}/scope/refresh
// requests.
func (h *Handler) HandleRefreshScope(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	assessmentID, err := id.ParseAssessmentID(chi.URLParam(r, "assessmentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	a, err := h.service.RefreshScope(ctx, assessmentID)
	if err != nil {
		h.logger.ErrorContext(ctx, "scope refresh failed",
			"request_id", requestcontext.RequestID(ctx),
			"assessment_id", assessmentID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "scope refreshed",
		"request_id", requestcontext.RequestID(ctx),
		"assessment_id", assessmentID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromAssessment(a))
}

// HandleMarkStale handles POST /assessments/{assessmentID}/scope/stale
// requests. The attribute-mutation path calls this after editing facility or
// intake data; it flags the cache without recomputing anything.
func (h *Handler) HandleMarkStale(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	assessmentID, err := id.ParseAssessmentID(chi.URLParam(r, "assessmentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.MarkStale(ctx, assessmentID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

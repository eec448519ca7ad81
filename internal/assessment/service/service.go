// Package service orchestrates scope refreshes: it gathers the intake,
// facility, and catalog inputs, runs the resolver and filter, and applies the
// result to the assessment's scope cache as one atomic write.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"recscope/internal/assessment"
	"recscope/internal/audit"
	"recscope/internal/catalog"
	"recscope/internal/facility"
	"recscope/internal/intake"
	"recscope/internal/scope"
	"recscope/internal/scope/metrics"
	id "recscope/pkg/domain"
	dErrors "recscope/pkg/domain-errors"
	"recscope/pkg/platform/sentinel"
	"recscope/pkg/requestcontext"
)

// AssessmentStore persists assessments and their scope cache.
type AssessmentStore interface {
	Create(ctx context.Context, a *assessment.Assessment) error
	FindByID(ctx context.Context, assessmentID id.AssessmentID) (*assessment.Assessment, error)
	ApplyScope(ctx context.Context, assessmentID id.AssessmentID, expectedVersion int64, result *scope.Result, info assessment.FilteringInfo) error
	MarkStale(ctx context.Context, assessmentID id.AssessmentID) error
}

// IntakeStore reads intake submissions.
type IntakeStore interface {
	FindByID(ctx context.Context, intakeID id.IntakeID) (*intake.Attributes, error)
}

// FacilityStore reads facility attributes and writes back the derived
// per-clause projection.
type FacilityStore interface {
	ListByTenant(ctx context.Context, tenantID id.TenantID) ([]*facility.Attributes, error)
	UpdateClauseFlags(ctx context.Context, facilityID id.FacilityID, flags facility.ClauseFlags) error
}

// CatalogStore reads published standard versions.
type CatalogStore interface {
	FindVersion(ctx context.Context, versionID string) (*catalog.StandardVersion, error)
}

// AuditPublisher records scope lifecycle events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// QuestionCache keeps the filtered question set of the last refresh.
type QuestionCache interface {
	Save(ctx context.Context, assessmentID id.AssessmentID, result *scope.FilterResult) error
	Invalidate(ctx context.Context, assessmentID id.AssessmentID) error
}

// Service coordinates the scope engine against the stores. Refreshes for the
// same assessment are deduplicated in-process via singleflight; the store's
// version check guards the final write across processes.
type Service struct {
	assessments AssessmentStore
	intakes     IntakeStore
	facilities  FacilityStore
	catalogs    CatalogStore
	resolver    *scope.Resolver

	auditor   AuditPublisher
	questions QuestionCache
	metrics   *metrics.Metrics
	logger    *slog.Logger
	tracer    trace.Tracer

	refreshes singleflight.Group
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithAudit wires an audit publisher.
func WithAudit(p AuditPublisher) Option {
	return func(s *Service) { s.auditor = p }
}

// WithQuestionCache wires a question set cache.
func WithQuestionCache(c QuestionCache) Option {
	return func(s *Service) { s.questions = c }
}

// WithMetrics wires scope engine metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func New(assessments AssessmentStore, intakes IntakeStore, facilities FacilityStore, catalogs CatalogStore, resolver *scope.Resolver, opts ...Option) *Service {
	s := &Service{
		assessments: assessments,
		intakes:     intakes,
		facilities:  facilities,
		catalogs:    catalogs,
		resolver:    resolver,
		logger:      slog.Default(),
		tracer:      otel.Tracer("recscope/assessment"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateAssessment creates an assessment from a submitted intake and computes
// its scope immediately, so no assessment is ever observable without a scope.
func (s *Service) CreateAssessment(ctx context.Context, tenantID id.TenantID, intakeID id.IntakeID, catalogVersion string) (*assessment.Assessment, error) {
	if tenantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "tenant id is required")
	}
	in, err := s.intakes.FindByID(ctx, intakeID)
	if err != nil {
		return nil, translateStoreErr(err, "intake")
	}
	if in.TenantID != tenantID {
		return nil, dErrors.New(dErrors.CodeBadRequest, "intake belongs to a different tenant")
	}
	if !in.IsSubmitted() {
		return nil, dErrors.New(dErrors.CodeIntakeNotReady, "complete intake before creating an assessment")
	}

	a := &assessment.Assessment{
		ID:             id.NewAssessmentID(),
		TenantID:       tenantID,
		IntakeID:       intakeID,
		CatalogVersion: catalogVersion,
		ScopeState:     assessment.ScopeStateUnset,
		CreatedAt:      requestcontext.Now(ctx),
	}
	if err := s.assessments.Create(ctx, a); err != nil {
		return nil, translateStoreErr(err, "assessment")
	}
	s.emit(ctx, a, audit.ActionAssessmentCreated, "catalog version "+catalogVersion)

	refreshed, err := s.refresh(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	return refreshed, nil
}

// Get returns the assessment with its cached scope. A stale ScopeState means
// the cache may not reflect current facility attributes; triggering a refresh
// is the caller's decision, not this component's.
func (s *Service) Get(ctx context.Context, assessmentID id.AssessmentID) (*assessment.Assessment, error) {
	a, err := s.assessments.FindByID(ctx, assessmentID)
	if err != nil {
		return nil, translateStoreErr(err, "assessment")
	}
	return a, nil
}

// RefreshScope re-runs resolution and filtering for the assessment and
// overwrites its filtering info atomically. Concurrent calls for the same
// assessment collapse into one computation.
func (s *Service) RefreshScope(ctx context.Context, assessmentID id.AssessmentID) (*assessment.Assessment, error) {
	v, err, _ := s.refreshes.Do(assessmentID.String(), func() (any, error) {
		return s.refresh(ctx, assessmentID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*assessment.Assessment), nil
}

// MarkStale is the hook the attribute-mutation path calls after editing
// facility or intake attributes. It flags the cache; it never recomputes.
func (s *Service) MarkStale(ctx context.Context, assessmentID id.AssessmentID) error {
	if err := s.assessments.MarkStale(ctx, assessmentID); err != nil {
		return translateStoreErr(err, "assessment")
	}
	s.metrics.IncrementStaleMarked()
	if s.questions != nil {
		if err := s.questions.Invalidate(ctx, assessmentID); err != nil {
			s.logger.WarnContext(ctx, "question cache invalidation failed",
				"assessment_id", assessmentID, "error", err)
		}
	}
	if s.auditor != nil {
		if a, err := s.assessments.FindByID(ctx, assessmentID); err == nil {
			s.emit(ctx, a, audit.ActionScopeMarkedStale, "")
		}
	}
	return nil
}

func (s *Service) refresh(ctx context.Context, assessmentID id.AssessmentID) (*assessment.Assessment, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "scope.refresh",
		trace.WithAttributes(attribute.String("assessment.id", assessmentID.String())))
	defer span.End()

	a, err := s.assessments.FindByID(ctx, assessmentID)
	if err != nil {
		return nil, translateStoreErr(err, "assessment")
	}

	in, facilities, version, err := s.gatherInputs(ctx, a)
	if err != nil {
		s.recordFailure(ctx, span, a, err)
		return nil, err
	}
	if !in.IsSubmitted() {
		err := dErrors.New(dErrors.CodeIntakeNotReady, "complete intake before recalculating scope")
		s.recordFailure(ctx, span, a, err)
		return nil, err
	}

	result, err := s.resolver.Resolve(in, facilities)
	if err != nil {
		s.recordFailure(ctx, span, a, err)
		return nil, err
	}
	filtered, err := scope.FilterQuestions(result, version)
	if err != nil {
		s.recordFailure(ctx, span, a, err)
		return nil, err
	}

	info := assessment.FilteringInfo{
		LastRefreshed:          requestcontext.Now(ctx),
		FilteredQuestionsCount: filtered.Count,
		ApplicableRecCodes:     append([]catalog.RecCode(nil), result.ApplicableRecCodes...),
	}
	if err := s.applyWithRetry(ctx, a, result, info); err != nil {
		s.recordFailure(ctx, span, a, err)
		return nil, err
	}

	s.projectClauseFlags(ctx, in, facilities)

	if s.questions != nil {
		if err := s.questions.Save(ctx, a.ID, filtered); err != nil {
			s.logger.WarnContext(ctx, "question cache write failed",
				"assessment_id", a.ID, "error", err)
		}
	}

	s.metrics.IncrementResolution("ok")
	s.metrics.ObserveFilteredQuestions(filtered.Count)
	s.metrics.ObserveRefreshDuration(time.Since(start))
	s.emit(ctx, a, audit.ActionScopeRefreshed,
		fmt.Sprintf("%d codes, %d questions", len(result.ApplicableRecCodes), filtered.Count))
	s.logger.InfoContext(ctx, "scope refreshed",
		"assessment_id", a.ID,
		"rec_codes", len(result.ApplicableRecCodes),
		"questions", filtered.Count,
	)

	return s.Get(ctx, a.ID)
}

// gatherInputs fetches intake, facilities, and catalog concurrently with
// shared cancellation on first failure.
func (s *Service) gatherInputs(ctx context.Context, a *assessment.Assessment) (*intake.Attributes, []*facility.Attributes, *catalog.StandardVersion, error) {
	var (
		in         *intake.Attributes
		facilities []*facility.Attributes
		version    *catalog.StandardVersion
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := s.intakes.FindByID(ctx, a.IntakeID)
		if err != nil {
			return translateStoreErr(err, "intake")
		}
		in = found
		return nil
	})
	g.Go(func() error {
		listed, err := s.facilities.ListByTenant(ctx, a.TenantID)
		if err != nil {
			return fmt.Errorf("list facilities: %w", err)
		}
		facilities = listed
		return nil
	})
	g.Go(func() error {
		found, err := s.catalogs.FindVersion(ctx, a.CatalogVersion)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.Newf(dErrors.CodeCatalogMismatch,
					"catalog version %s is not published", a.CatalogVersion)
			}
			return fmt.Errorf("find catalog version: %w", err)
		}
		version = found
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return in, facilities, version, nil
}

// applyWithRetry performs the version-guarded scope write. On a conflict the
// assessment is re-read and the write retried once: the computation is
// deterministic for a given attribute snapshot, so last-writer-wins is safe.
func (s *Service) applyWithRetry(ctx context.Context, a *assessment.Assessment, result *scope.Result, info assessment.FilteringInfo) error {
	err := s.assessments.ApplyScope(ctx, a.ID, a.Version, result, info)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sentinel.ErrConflict) {
		return translateStoreErr(err, "assessment")
	}
	current, findErr := s.assessments.FindByID(ctx, a.ID)
	if findErr != nil {
		return translateStoreErr(findErr, "assessment")
	}
	if err := s.assessments.ApplyScope(ctx, a.ID, current.Version, result, info); err != nil {
		return translateStoreErr(err, "assessment")
	}
	return nil
}

// projectClauseFlags writes the derived per-facility projection back. It is
// best-effort: the authoritative scope already landed, and the projection is
// recomputed on the next refresh anyway.
func (s *Service) projectClauseFlags(ctx context.Context, in *intake.Attributes, facilities []*facility.Attributes) {
	for _, f := range facilities {
		flags := scope.DeriveClauseFlags(in, f)
		if err := s.facilities.UpdateClauseFlags(ctx, f.ID, flags); err != nil {
			s.logger.WarnContext(ctx, "clause flag projection failed",
				"facility_id", f.ID, "error", err)
		}
	}
}

func (s *Service) recordFailure(ctx context.Context, span trace.Span, a *assessment.Assessment, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	s.metrics.IncrementResolution(string(dErrors.CodeOf(err)))
	s.emit(ctx, a, audit.ActionScopeRefreshFailed, err.Error())
}

func (s *Service) emit(ctx context.Context, a *assessment.Assessment, action audit.Action, detail string) {
	if s.auditor == nil {
		return
	}
	event := audit.Event{
		Actor:        requestcontext.Actor(ctx),
		TenantID:     a.TenantID,
		AssessmentID: a.ID,
		Action:       action,
		Detail:       detail,
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", action, "error", err)
	}
}

func translateStoreErr(err error, entity string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(dErrors.CodeNotFound, entity+" not found", err)
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(dErrors.CodeConflict, entity+" was modified concurrently", err)
	default:
		return dErrors.Wrap(dErrors.CodeInternal, entity+" store failure", err)
	}
}

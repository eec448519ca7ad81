package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"recscope/internal/assessment"
	"recscope/internal/assessment/service"
	"recscope/internal/assessment/service/mocks"
	"recscope/internal/catalog"
	"recscope/internal/facility"
	"recscope/internal/intake"
	"recscope/internal/scope"
	id "recscope/pkg/domain"
	dErrors "recscope/pkg/domain-errors"
	"recscope/pkg/platform/sentinel"
	"recscope/pkg/requestcontext"
)

type fixture struct {
	assessments *mocks.MockAssessmentStore
	intakes     *mocks.MockIntakeStore
	facilities  *mocks.MockFacilityStore
	catalogs    *mocks.MockCatalogStore
	questions   *mocks.MockQuestionCache
	svc         *service.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		assessments: mocks.NewMockAssessmentStore(ctrl),
		intakes:     mocks.NewMockIntakeStore(ctrl),
		facilities:  mocks.NewMockFacilityStore(ctrl),
		catalogs:    mocks.NewMockCatalogStore(ctrl),
		questions:   mocks.NewMockQuestionCache(ctrl),
	}
	f.svc = service.New(f.assessments, f.intakes, f.facilities, f.catalogs,
		scope.NewResolver(scope.DefaultWeights()),
		service.WithQuestionCache(f.questions),
	)
	return f
}

func loadCatalog(t *testing.T) *catalog.StandardVersion {
	t.Helper()
	version, err := catalog.LoadFile("../../catalog/testdata/r2v3.yaml")
	require.NoError(t, err)
	return version
}

func submittedIntake(tenantID id.TenantID) *intake.Attributes {
	submitted := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	return &intake.Attributes{
		ID:               id.NewIntakeID(),
		TenantID:         tenantID,
		OrganizationName: "Harbor Electronics Recovery",
		StructureType:    intake.StructureSingle,
		TotalFacilities:  1,
		Status:           intake.StatusSubmitted,
		SubmittedAt:      &submitted,
	}
}

func storedAssessment(tenantID id.TenantID, intakeID id.IntakeID) *assessment.Assessment {
	return &assessment.Assessment{
		ID:             id.NewAssessmentID(),
		TenantID:       tenantID,
		IntakeID:       intakeID,
		CatalogVersion: "r2v3.1",
		ScopeState:     assessment.ScopeStateStale,
		Version:        3,
	}
}

func TestRefreshScope_ComputesAndAppliesScope(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tenantID := id.NewTenantID()
	in := submittedIntake(tenantID)
	a := storedAssessment(tenantID, in.ID)
	fac := &facility.Attributes{
		ID:                   id.NewFacilityID(),
		TenantID:             tenantID,
		Name:                 "Harbor Plant",
		ProcessingActivities: []facility.ProcessingActivity{facility.ActivityShredding},
		DataBearingHandling:  true,
	}

	f.assessments.EXPECT().FindByID(gomock.Any(), a.ID).Return(a, nil)
	f.intakes.EXPECT().FindByID(gomock.Any(), in.ID).Return(in, nil)
	f.facilities.EXPECT().ListByTenant(gomock.Any(), tenantID).Return([]*facility.Attributes{fac}, nil)
	f.catalogs.EXPECT().FindVersion(gomock.Any(), "r2v3.1").Return(loadCatalog(t), nil)

	var (
		appliedResult *scope.Result
		appliedInfo   assessment.FilteringInfo
	)
	f.assessments.EXPECT().
		ApplyScope(gomock.Any(), a.ID, int64(3), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ id.AssessmentID, _ int64, result *scope.Result, info assessment.FilteringInfo) error {
			appliedResult = result
			appliedInfo = info
			return nil
		})
	f.facilities.EXPECT().
		UpdateClauseFlags(gomock.Any(), fac.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ id.FacilityID, flags facility.ClauseFlags) error {
			assert.True(t, flags.AppA)
			assert.False(t, flags.AppB)
			return nil
		})
	f.questions.EXPECT().Save(gomock.Any(), a.ID, gomock.Any()).Return(nil)

	refreshed := *a
	refreshed.ScopeState = assessment.ScopeStateFresh
	refreshed.Version = 4
	f.assessments.EXPECT().FindByID(gomock.Any(), a.ID).Return(&refreshed, nil)

	got, err := f.svc.RefreshScope(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, assessment.ScopeStateFresh, got.ScopeState)

	require.NotNil(t, appliedResult)
	assert.True(t, appliedResult.HasCode(scope.CodeCore))
	assert.True(t, appliedResult.HasCode(scope.CodeDataSanitation))
	assert.True(t, appliedResult.HasCode(scope.CodeProcessing))
	assert.False(t, appliedResult.HasCode(scope.CodeMultiSite))
	assert.True(t, appliedResult.RequiresAppendix(catalog.AppendixA))

	assert.Equal(t, appliedResult.ApplicableRecCodes, appliedInfo.ApplicableRecCodes)
	assert.Positive(t, appliedInfo.FilteredQuestionsCount)
	assert.False(t, appliedInfo.LastRefreshed.IsZero())
}

func TestRefreshScope_DraftIntakeLeavesCacheUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tenantID := id.NewTenantID()
	in := submittedIntake(tenantID)
	in.Status = intake.StatusDraft
	in.SubmittedAt = nil
	a := storedAssessment(tenantID, in.ID)

	f.assessments.EXPECT().FindByID(gomock.Any(), a.ID).Return(a, nil)
	f.intakes.EXPECT().FindByID(gomock.Any(), in.ID).Return(in, nil)
	f.facilities.EXPECT().ListByTenant(gomock.Any(), tenantID).Return([]*facility.Attributes{{
		ID:                   id.NewFacilityID(),
		TenantID:             tenantID,
		Name:                 "Harbor Plant",
		ProcessingActivities: []facility.ProcessingActivity{facility.ActivitySorting},
	}}, nil)
	f.catalogs.EXPECT().FindVersion(gomock.Any(), "r2v3.1").Return(loadCatalog(t), nil)

	// No ApplyScope, no flag write-back, no cache save: the prior filtering
	// info must survive a failed refresh intact.
	_, err := f.svc.RefreshScope(ctx, a.ID)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeIntakeNotReady))
}

func TestRefreshScope_UnknownCatalogVersion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tenantID := id.NewTenantID()
	in := submittedIntake(tenantID)
	a := storedAssessment(tenantID, in.ID)
	a.CatalogVersion = "r2v4.0"

	f.assessments.EXPECT().FindByID(gomock.Any(), a.ID).Return(a, nil)
	f.intakes.EXPECT().FindByID(gomock.Any(), in.ID).Return(in, nil).AnyTimes()
	f.facilities.EXPECT().ListByTenant(gomock.Any(), tenantID).Return(nil, nil).AnyTimes()
	f.catalogs.EXPECT().FindVersion(gomock.Any(), "r2v4.0").Return(nil, sentinel.ErrNotFound)

	_, err := f.svc.RefreshScope(ctx, a.ID)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeCatalogMismatch))
}

func TestRefreshScope_RetriesOnceOnVersionConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tenantID := id.NewTenantID()
	in := submittedIntake(tenantID)
	a := storedAssessment(tenantID, in.ID)
	fac := &facility.Attributes{
		ID:                   id.NewFacilityID(),
		TenantID:             tenantID,
		Name:                 "Harbor Plant",
		ProcessingActivities: []facility.ProcessingActivity{facility.ActivitySorting},
	}

	f.assessments.EXPECT().FindByID(gomock.Any(), a.ID).Return(a, nil)
	f.intakes.EXPECT().FindByID(gomock.Any(), in.ID).Return(in, nil)
	f.facilities.EXPECT().ListByTenant(gomock.Any(), tenantID).Return([]*facility.Attributes{fac}, nil)
	f.catalogs.EXPECT().FindVersion(gomock.Any(), "r2v3.1").Return(loadCatalog(t), nil)

	f.assessments.EXPECT().
		ApplyScope(gomock.Any(), a.ID, int64(3), gomock.Any(), gomock.Any()).
		Return(sentinel.ErrConflict)
	current := *a
	current.Version = 4
	f.assessments.EXPECT().FindByID(gomock.Any(), a.ID).Return(&current, nil)
	f.assessments.EXPECT().
		ApplyScope(gomock.Any(), a.ID, int64(4), gomock.Any(), gomock.Any()).
		Return(nil)

	f.facilities.EXPECT().UpdateClauseFlags(gomock.Any(), fac.ID, gomock.Any()).Return(nil)
	f.questions.EXPECT().Save(gomock.Any(), a.ID, gomock.Any()).Return(nil)

	final := current
	final.Version = 5
	final.ScopeState = assessment.ScopeStateFresh
	f.assessments.EXPECT().FindByID(gomock.Any(), a.ID).Return(&final, nil)

	got, err := f.svc.RefreshScope(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Version)
}

func TestRefreshScope_RepeatRunsProduceIdenticalScope(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC)

	tenantID := id.NewTenantID()
	in := submittedIntake(tenantID)
	a := storedAssessment(tenantID, in.ID)
	fac := &facility.Attributes{
		ID:                   id.NewFacilityID(),
		TenantID:             tenantID,
		Name:                 "Harbor Plant",
		ProcessingActivities: []facility.ProcessingActivity{facility.ActivityShredding, facility.ActivityStorage},
		ExportMarkets:        true,
	}
	version := loadCatalog(t)

	f.assessments.EXPECT().FindByID(gomock.Any(), a.ID).Return(a, nil).AnyTimes()
	f.intakes.EXPECT().FindByID(gomock.Any(), in.ID).Return(in, nil).Times(2)
	f.facilities.EXPECT().ListByTenant(gomock.Any(), tenantID).Return([]*facility.Attributes{fac}, nil).Times(2)
	f.catalogs.EXPECT().FindVersion(gomock.Any(), "r2v3.1").Return(version, nil).Times(2)
	f.facilities.EXPECT().UpdateClauseFlags(gomock.Any(), fac.ID, gomock.Any()).Return(nil).Times(2)
	f.questions.EXPECT().Save(gomock.Any(), a.ID, gomock.Any()).Return(nil).Times(2)

	var results []*scope.Result
	var infos []assessment.FilteringInfo
	f.assessments.EXPECT().
		ApplyScope(gomock.Any(), a.ID, int64(3), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ id.AssessmentID, _ int64, result *scope.Result, info assessment.FilteringInfo) error {
			results = append(results, result)
			infos = append(infos, info)
			return nil
		}).Times(2)

	for i := 0; i < 2; i++ {
		ctx := requestcontext.WithTime(context.Background(), now.Add(time.Duration(i)*time.Hour))
		_, err := f.svc.RefreshScope(ctx, a.ID)
		require.NoError(t, err)
	}

	require.Len(t, results, 2)
	assert.Equal(t, results[0], results[1])
	assert.Equal(t, infos[0].ApplicableRecCodes, infos[1].ApplicableRecCodes)
	assert.Equal(t, infos[0].FilteredQuestionsCount, infos[1].FilteredQuestionsCount)
	assert.NotEqual(t, infos[0].LastRefreshed, infos[1].LastRefreshed)
}

func TestMarkStale_FlagsWithoutRecomputing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tenantID := id.NewTenantID()
	a := storedAssessment(tenantID, id.NewIntakeID())

	f.assessments.EXPECT().MarkStale(ctx, a.ID).Return(nil)
	f.questions.EXPECT().Invalidate(ctx, a.ID).Return(nil)

	require.NoError(t, f.svc.MarkStale(ctx, a.ID))
}

func TestMarkStale_UnknownAssessment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	assessmentID := id.NewAssessmentID()

	f.assessments.EXPECT().MarkStale(ctx, assessmentID).Return(sentinel.ErrNotFound)

	err := f.svc.MarkStale(ctx, assessmentID)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestCreateAssessment_RejectsDraftIntake(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tenantID := id.NewTenantID()
	in := submittedIntake(tenantID)
	in.Status = intake.StatusDraft
	in.SubmittedAt = nil

	f.intakes.EXPECT().FindByID(ctx, in.ID).Return(in, nil)

	_, err := f.svc.CreateAssessment(ctx, tenantID, in.ID, "r2v3.1")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeIntakeNotReady))
}

func TestCreateAssessment_RejectsCrossTenantIntake(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := submittedIntake(id.NewTenantID())
	f.intakes.EXPECT().FindByID(ctx, in.ID).Return(in, nil)

	_, err := f.svc.CreateAssessment(ctx, id.NewTenantID(), in.ID, "r2v3.1")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

//go:build integration

package assessment_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"recscope/internal/assessment"
	"recscope/internal/catalog"
	"recscope/internal/scope"
	id "recscope/pkg/domain"
	"recscope/pkg/platform/sentinel"
	"recscope/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *assessment.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.Require().NoError(s.postgres.ApplySchema(context.Background()))
	s.store = assessment.NewPostgresStore(s.postgres.DB)
}

func (s *PostgresStoreSuite) TearDownSuite() {
	_ = s.postgres.DB.Close()
	_ = s.postgres.Container.Terminate(context.Background())
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "assessments"))
}

func (s *PostgresStoreSuite) newAssessment() *assessment.Assessment {
	return &assessment.Assessment{
		ID:             id.NewAssessmentID(),
		TenantID:       id.NewTenantID(),
		IntakeID:       id.NewIntakeID(),
		CatalogVersion: "r2v3.1",
		ScopeState:     assessment.ScopeStateUnset,
		CreatedAt:      time.Now().UTC().Truncate(time.Microsecond),
	}
}

func (s *PostgresStoreSuite) TestCreateAndFindRoundTrip() {
	ctx := context.Background()
	a := s.newAssessment()
	s.Require().NoError(s.store.Create(ctx, a))

	found, err := s.store.FindByID(ctx, a.ID)
	s.Require().NoError(err)
	s.Equal(a.ID, found.ID)
	s.Equal(a.TenantID, found.TenantID)
	s.Equal(a.IntakeID, found.IntakeID)
	s.Equal(assessment.ScopeStateUnset, found.ScopeState)
	s.Nil(found.Scope)
	s.Zero(found.Version)
}

func (s *PostgresStoreSuite) TestFindUnknownReturnsNotFound() {
	_, err := s.store.FindByID(context.Background(), id.NewAssessmentID())
	s.Require().Error(err)
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *PostgresStoreSuite) TestApplyScopePersistsSnapshotAtomically() {
	ctx := context.Background()
	a := s.newAssessment()
	s.Require().NoError(s.store.Create(ctx, a))

	result := &scope.Result{
		ApplicableRecCodes: []catalog.RecCode{"REC-CORE", "REC-DS"},
		RequiredAppendices: []catalog.CategoryCode{catalog.AppendixA},
		ScopeStatement:     "Scope of certification for Harbor (single, 1 facility)",
		Complexity:         scope.ComplexityFactors{FacilityCount: 1, DataBearing: true, Overall: 4.5},
	}
	info := assessment.FilteringInfo{
		LastRefreshed:          time.Now().UTC().Truncate(time.Microsecond),
		FilteredQuestionsCount: 9,
		ApplicableRecCodes:     result.ApplicableRecCodes,
	}
	s.Require().NoError(s.store.ApplyScope(ctx, a.ID, 0, result, info))

	found, err := s.store.FindByID(ctx, a.ID)
	s.Require().NoError(err)
	s.Equal(assessment.ScopeStateFresh, found.ScopeState)
	s.Equal(int64(1), found.Version)
	s.Require().NotNil(found.Scope)
	s.Equal(result.ApplicableRecCodes, found.Scope.ApplicableRecCodes)
	s.Equal(result.ScopeStatement, found.Scope.ScopeStatement)
	s.Equal(info.FilteredQuestionsCount, found.FilteringInfo.FilteredQuestionsCount)
	s.Equal(info.ApplicableRecCodes, found.FilteringInfo.ApplicableRecCodes)
	s.True(info.LastRefreshed.Equal(found.FilteringInfo.LastRefreshed))
}

func (s *PostgresStoreSuite) TestApplyScopeStaleVersionConflicts() {
	ctx := context.Background()
	a := s.newAssessment()
	s.Require().NoError(s.store.Create(ctx, a))

	result := &scope.Result{ApplicableRecCodes: []catalog.RecCode{"REC-CORE"}}
	info := assessment.FilteringInfo{LastRefreshed: time.Now().UTC(), FilteredQuestionsCount: 3}
	s.Require().NoError(s.store.ApplyScope(ctx, a.ID, 0, result, info))

	err := s.store.ApplyScope(ctx, a.ID, 0, result, info)
	s.Require().Error(err)
	s.True(errors.Is(err, sentinel.ErrConflict))
}

func (s *PostgresStoreSuite) TestConcurrentApplyScopeSingleWinner() {
	ctx := context.Background()
	a := s.newAssessment()
	s.Require().NoError(s.store.Create(ctx, a))

	result := &scope.Result{ApplicableRecCodes: []catalog.RecCode{"REC-CORE"}}
	info := assessment.FilteringInfo{LastRefreshed: time.Now().UTC(), FilteredQuestionsCount: 3}

	const writers = 10
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.store.ApplyScope(ctx, a.ID, 0, result, info)
		}(i)
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, sentinel.ErrConflict):
			conflicted++
		default:
			s.Failf("unexpected error", "%v", err)
		}
	}
	s.Equal(1, succeeded, "exactly one writer should win the version check")
	s.Equal(writers-1, conflicted)

	found, err := s.store.FindByID(ctx, a.ID)
	s.Require().NoError(err)
	s.Equal(int64(1), found.Version)
}

func (s *PostgresStoreSuite) TestMarkStaleKeepsSnapshot() {
	ctx := context.Background()
	a := s.newAssessment()
	s.Require().NoError(s.store.Create(ctx, a))

	result := &scope.Result{ApplicableRecCodes: []catalog.RecCode{"REC-CORE"}}
	info := assessment.FilteringInfo{LastRefreshed: time.Now().UTC(), FilteredQuestionsCount: 3}
	s.Require().NoError(s.store.ApplyScope(ctx, a.ID, 0, result, info))
	s.Require().NoError(s.store.MarkStale(ctx, a.ID))

	found, err := s.store.FindByID(ctx, a.ID)
	s.Require().NoError(err)
	s.Equal(assessment.ScopeStateStale, found.ScopeState)
	s.NotNil(found.Scope, "stale assessments keep their last snapshot")
	s.Equal(3, found.FilteringInfo.FilteredQuestionsCount)
}

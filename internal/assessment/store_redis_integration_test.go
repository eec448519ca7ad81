//go:build integration

package assessment_test

import (
	"context"
	"errors"
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

type RedisCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *assessment.RedisQuestionCache
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.cache = assessment.NewRedisQuestionCache(s.redis.Client, time.Hour)
}

func (s *RedisCacheSuite) TearDownSuite() {
	_ = s.redis.Client.Close()
	_ = s.redis.Container.Terminate(context.Background())
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisCacheSuite) TestSaveAndFindRoundTrip() {
	ctx := context.Background()
	assessmentID := id.NewAssessmentID()
	stored := &scope.FilterResult{
		Questions: []catalog.Question{
			{ID: "CR1-01", Sequence: 1, CategoryCode: catalog.ClauseCR1, Tags: []catalog.RecCode{"REC-CORE"}},
			{ID: "CR1-02", Sequence: 2, CategoryCode: catalog.ClauseCR1, Required: true},
		},
		Count: 2,
	}
	s.Require().NoError(s.cache.Save(ctx, assessmentID, stored))

	found, err := s.cache.Find(ctx, assessmentID)
	s.Require().NoError(err)
	s.Equal(stored, found)
}

func (s *RedisCacheSuite) TestFindMissReturnsNotFound() {
	_, err := s.cache.Find(context.Background(), id.NewAssessmentID())
	s.Require().Error(err)
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *RedisCacheSuite) TestInvalidateDropsEntry() {
	ctx := context.Background()
	assessmentID := id.NewAssessmentID()
	s.Require().NoError(s.cache.Save(ctx, assessmentID, &scope.FilterResult{Count: 0}))

	s.Require().NoError(s.cache.Invalidate(ctx, assessmentID))

	_, err := s.cache.Find(ctx, assessmentID)
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *RedisCacheSuite) TestInvalidateMissingKeyIsNoop() {
	s.Require().NoError(s.cache.Invalidate(context.Background(), id.NewAssessmentID()))
}

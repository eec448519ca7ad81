package assessment

import (
	"context"
	"fmt"
	"sync"

	"recscope/internal/scope"
	id "recscope/pkg/domain"
	"recscope/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu          sync.RWMutex
	assessments map[id.AssessmentID]Assessment
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{assessments: make(map[id.AssessmentID]Assessment)}
}

func (s *InMemoryStore) Create(_ context.Context, a *Assessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.assessments[a.ID]; exists {
		return fmt.Errorf("create assessment %s: %w", a.ID, sentinel.ErrConflict)
	}
	s.assessments[a.ID] = *a
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, assessmentID id.AssessmentID) (*Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assessments[assessmentID]
	if !ok {
		return nil, fmt.Errorf("find assessment %s: %w", assessmentID, sentinel.ErrNotFound)
	}
	return &a, nil
}

func (s *InMemoryStore) ApplyScope(_ context.Context, assessmentID id.AssessmentID, expectedVersion int64, result *scope.Result, info FilteringInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assessments[assessmentID]
	if !ok {
		return fmt.Errorf("apply scope %s: %w", assessmentID, sentinel.ErrNotFound)
	}
	if a.Version != expectedVersion {
		return fmt.Errorf("apply scope %s: version %d != %d: %w",
			assessmentID, a.Version, expectedVersion, sentinel.ErrConflict)
	}
	a.Scope = result
	a.FilteringInfo = info
	a.ScopeState = ScopeStateFresh
	a.Version++
	s.assessments[assessmentID] = a
	return nil
}

func (s *InMemoryStore) MarkStale(_ context.Context, assessmentID id.AssessmentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assessments[assessmentID]
	if !ok {
		return fmt.Errorf("mark stale %s: %w", assessmentID, sentinel.ErrNotFound)
	}
	a.ScopeState = ScopeStateStale
	s.assessments[assessmentID] = a
	return nil
}

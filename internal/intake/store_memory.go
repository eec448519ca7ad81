package intake

import (
	"context"
	"fmt"
	"sync"

	id "recscope/pkg/domain"
	"recscope/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu      sync.RWMutex
	intakes map[id.IntakeID]Attributes
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{intakes: make(map[id.IntakeID]Attributes)}
}

// Save persists an intake. Overwriting a submitted intake is rejected: a new
// intake version must be created for material changes.
func (s *InMemoryStore) Save(_ context.Context, attrs *Attributes) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.intakes[attrs.ID]; ok && existing.IsSubmitted() {
		return fmt.Errorf("save intake %s: %w", attrs.ID, sentinel.ErrConflict)
	}
	s.intakes[attrs.ID] = *attrs
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, intakeID id.IntakeID) (*Attributes, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	attrs, ok := s.intakes[intakeID]
	if !ok {
		return nil, fmt.Errorf("find intake %s: %w", intakeID, sentinel.ErrNotFound)
	}
	return &attrs, nil
}

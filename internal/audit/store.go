package audit

import (
	"context"
	"sync"

	id "recscope/pkg/domain"
)

// Store is an append-only sink for audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByAssessment(ctx context.Context, assessmentID id.AssessmentID) ([]Event, error)
}

// InMemoryStore keeps events in memory, mainly for tests and single-node
// deployments.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *InMemoryStore) ListByAssessment(_ context.Context, assessmentID id.AssessmentID) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if e.AssessmentID == assessmentID {
			out = append(out, e)
		}
	}
	return out, nil
}

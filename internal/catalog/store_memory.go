package catalog

import (
	"context"
	"fmt"
	"sync"

	"recscope/pkg/platform/sentinel"
)

// InMemoryStore keeps published versions in memory. Publishing validates and
// then freezes the version; readers always see the instance as published.
type InMemoryStore struct {
	mu       sync.RWMutex
	versions map[string]*StandardVersion
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{versions: make(map[string]*StandardVersion)}
}

// Publish registers a validated version. Re-publishing an existing version id
// is rejected: published versions are immutable.
func (s *InMemoryStore) Publish(version *StandardVersion) error {
	if err := version.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.versions[version.ID]; exists {
		return fmt.Errorf("publish version %s: %w", version.ID, sentinel.ErrConflict)
	}
	s.versions[version.ID] = version
	return nil
}

func (s *InMemoryStore) FindVersion(_ context.Context, versionID string) (*StandardVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	version, ok := s.versions[versionID]
	if !ok {
		return nil, fmt.Errorf("find version %s: %w", versionID, sentinel.ErrNotFound)
	}
	return version, nil
}

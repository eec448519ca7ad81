package facility

import (
	"context"
	"fmt"
	"sort"
	"sync"

	id "recscope/pkg/domain"
	"recscope/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu         sync.RWMutex
	facilities map[id.FacilityID]Attributes
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{facilities: make(map[id.FacilityID]Attributes)}
}

func (s *InMemoryStore) Save(_ context.Context, attrs *Attributes) error {
	if err := attrs.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.facilities[attrs.ID] = *attrs
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, facilityID id.FacilityID) (*Attributes, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	attrs, ok := s.facilities[facilityID]
	if !ok {
		return nil, fmt.Errorf("find facility %s: %w", facilityID, sentinel.ErrNotFound)
	}
	return &attrs, nil
}

// ListByTenant returns the tenant's facilities ordered by facility id so
// callers see a stable listing.
func (s *InMemoryStore) ListByTenant(_ context.Context, tenantID id.TenantID) ([]*Attributes, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Attributes
	for _, attrs := range s.facilities {
		if attrs.TenantID == tenantID {
			copied := attrs
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (s *InMemoryStore) UpdateClauseFlags(_ context.Context, facilityID id.FacilityID, flags ClauseFlags) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	attrs, ok := s.facilities[facilityID]
	if !ok {
		return fmt.Errorf("update clause flags %s: %w", facilityID, sentinel.ErrNotFound)
	}
	attrs.ClauseFlags = flags
	s.facilities[facilityID] = attrs
	return nil
}

package facility

import (
	"context"

	id "recscope/pkg/domain"
)

// Store persists facility attribute records.
type Store interface {
	Save(ctx context.Context, attrs *Attributes) error
	FindByID(ctx context.Context, facilityID id.FacilityID) (*Attributes, error)
	ListByTenant(ctx context.Context, tenantID id.TenantID) ([]*Attributes, error)
	// UpdateClauseFlags writes back the derived projection after a resolver
	// run without touching the authoritative attributes.
	UpdateClauseFlags(ctx context.Context, facilityID id.FacilityID, flags ClauseFlags) error
}

package intake

import (
	"context"

	id "recscope/pkg/domain"
)

// Store persists intake submissions.
type Store interface {
	Save(ctx context.Context, attrs *Attributes) error
	FindByID(ctx context.Context, intakeID id.IntakeID) (*Attributes, error)
}

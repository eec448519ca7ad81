package assessment

import (
	"context"

	"recscope/internal/scope"
	id "recscope/pkg/domain"
)

// Store persists assessments and their scope cache.
type Store interface {
	Create(ctx context.Context, a *Assessment) error
	FindByID(ctx context.Context, assessmentID id.AssessmentID) (*Assessment, error)
	// ApplyScope overwrites the scope snapshot, the filtering info, and the
	// freshness state as one atomic write, guarded by an optimistic version
	// check. A stale expectedVersion yields sentinel.ErrConflict.
	ApplyScope(ctx context.Context, assessmentID id.AssessmentID, expectedVersion int64, result *scope.Result, info FilteringInfo) error
	// MarkStale flags the cached scope as no longer reflecting the current
	// attributes. It never touches the cached values themselves.
	MarkStale(ctx context.Context, assessmentID id.AssessmentID) error
}

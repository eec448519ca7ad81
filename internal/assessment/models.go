// Package assessment owns the per-assessment scope cache: the snapshot of the
// last resolver run, the filtering metadata, and the explicit freshness state.
// The cache never recomputes implicitly; the attribute-mutation path flags it
// stale and a caller decides when to refresh.
package assessment

import (
	"time"

	"recscope/internal/catalog"
	"recscope/internal/scope"
	id "recscope/pkg/domain"
)

// ScopeState tracks whether the cached scope still reflects the underlying
// intake and facility attributes.
type ScopeState string

const (
	// ScopeStateUnset only exists between row creation and the first
	// computation; no assessment is observable in this state through the
	// service, which computes scope at creation.
	ScopeStateUnset ScopeState = "unset"
	ScopeStateFresh ScopeState = "fresh"
	ScopeStateStale ScopeState = "stale"
)

// FilteringInfo is the cached metadata of the last scope evaluation. The
// three fields are always written together; a partial update is a bug.
type FilteringInfo struct {
	LastRefreshed          time.Time
	FilteredQuestionsCount int
	ApplicableRecCodes     []catalog.RecCode
}

// Assessment references one submitted intake and caches the last scope
// evaluation against it. Version guards the scope write: concurrent refreshes
// serialize on it so the three FilteringInfo fields never interleave.
type Assessment struct {
	ID             id.AssessmentID
	TenantID       id.TenantID
	IntakeID       id.IntakeID
	CatalogVersion string

	ScopeState    ScopeState
	Scope         *scope.Result
	FilteringInfo FilteringInfo

	Version   int64
	CreatedAt time.Time
}

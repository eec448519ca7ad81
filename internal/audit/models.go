package audit

import (
	"time"

	id "recscope/pkg/domain"
)

// Action names an auditable scope lifecycle step.
type Action string

const (
	ActionAssessmentCreated  Action = "assessment.created"
	ActionScopeRefreshed     Action = "scope.refreshed"
	ActionScopeMarkedStale   Action = "scope.marked_stale"
	ActionScopeRefreshFailed Action = "scope.refresh_failed"
)

// Event is emitted from the scope engine to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp    time.Time
	Actor        string
	TenantID     id.TenantID
	AssessmentID id.AssessmentID
	Action       Action
	Detail       string
}

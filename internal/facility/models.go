// Package facility models the per-facility operational attributes that drive
// scope resolution. Attributes are authoritative input; the per-clause flags
// are a cached projection of the last resolver run and are recomputed, never
// hand-edited.
package facility

import (
	"time"

	id "recscope/pkg/domain"
	dErrors "recscope/pkg/domain-errors"
)

// ProcessingActivity tags one kind of operation performed at a facility.
type ProcessingActivity string

const (
	ActivityCollection     ProcessingActivity = "COLLECTION"
	ActivitySorting        ProcessingActivity = "SORTING"
	ActivityDisassembly    ProcessingActivity = "DISASSEMBLY"
	ActivityShredding      ProcessingActivity = "SHREDDING"
	ActivityRecovery       ProcessingActivity = "RECOVERY"
	ActivityStorage        ProcessingActivity = "STORAGE"
	ActivityTransportation ProcessingActivity = "TRANSPORTATION"
)

var validActivities = map[ProcessingActivity]bool{
	ActivityCollection:     true,
	ActivitySorting:        true,
	ActivityDisassembly:    true,
	ActivityShredding:      true,
	ActivityRecovery:       true,
	ActivityStorage:        true,
	ActivityTransportation: true,
}

// ParseProcessingActivity constructs a ProcessingActivity from external input.
func ParseProcessingActivity(s string) (ProcessingActivity, error) {
	a := ProcessingActivity(s)
	if !validActivities[a] {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "invalid processing activity %q", s)
	}
	return a, nil
}

// ClauseFlags is the derived per-clause applicability projection written back
// after each resolver run. It is never read as resolver input.
type ClauseFlags struct {
	CR1  bool
	CR2  bool
	CR3  bool
	CR4  bool
	CR5  bool
	AppA bool
	AppB bool
}

// Attributes is the normalized operational record for one physical facility.
type Attributes struct {
	ID       id.FacilityID
	TenantID id.TenantID
	Name     string

	ProcessingActivities   []ProcessingActivity
	DataBearingHandling    bool
	FocusMaterialsPresence bool
	InternalProcesses      bool
	ContractedProcesses    bool
	ExportMarkets          bool

	// Derived, recomputed on every scope refresh.
	ClauseFlags ClauseFlags

	UpdatedAt time.Time
}

// HasActivity reports whether the facility performs the given activity.
func (a *Attributes) HasActivity(activity ProcessingActivity) bool {
	for _, act := range a.ProcessingActivities {
		if act == activity {
			return true
		}
	}
	return false
}

// HasAnyActivity reports whether the facility performs at least one of the
// given activities.
func (a *Attributes) HasAnyActivity(activities ...ProcessingActivity) bool {
	for _, act := range activities {
		if a.HasActivity(act) {
			return true
		}
	}
	return false
}

// Validate enforces facility invariants.
func (a *Attributes) Validate() error {
	if a.ID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "facility id is required")
	}
	if a.TenantID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "facility tenant id is required")
	}
	if a.Name == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "facility name is required")
	}
	if len(a.ProcessingActivities) == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "facility must declare at least one processing activity")
	}
	seen := make(map[ProcessingActivity]bool, len(a.ProcessingActivities))
	for _, act := range a.ProcessingActivities {
		if !validActivities[act] {
			return dErrors.Newf(dErrors.CodeInvalidInput, "invalid processing activity %q", act)
		}
		if seen[act] {
			return dErrors.Newf(dErrors.CodeInvalidInput, "duplicate processing activity %q", act)
		}
		seen[act] = true
	}
	return nil
}

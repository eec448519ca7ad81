// Package intake models the organization-level onboarding submission that
// feeds scope resolution. An intake is mutable while in draft and frozen once
// submitted; material changes after submission require a new intake version.
package intake

import (
	"time"

	id "recscope/pkg/domain"
	dErrors "recscope/pkg/domain-errors"
)

// Status tracks the intake lifecycle.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
)

// StructureType describes how the certified organization is laid out.
type StructureType string

const (
	StructureSingle    StructureType = "single"
	StructureCampus    StructureType = "campus"
	StructureMultiSite StructureType = "multi_site"
)

var validStructureTypes = map[StructureType]bool{
	StructureSingle:    true,
	StructureCampus:    true,
	StructureMultiSite: true,
}

// ParseStructureType constructs a StructureType from external input.
func ParseStructureType(s string) (StructureType, error) {
	st := StructureType(s)
	if !validStructureTypes[st] {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "invalid certification structure type %q", s)
	}
	return st, nil
}

// Attributes is one intake submission version. Once an assessment references
// it the record is immutable; the engine never partially patches a submitted
// intake.
type Attributes struct {
	ID                     id.IntakeID
	TenantID               id.TenantID
	OrganizationName       string
	StructureType          StructureType
	TotalFacilities        int
	InternationalShipments bool
	Status                 Status
	CreatedAt              time.Time
	SubmittedAt            *time.Time
}

// IsSubmitted reports whether the intake has completed submission and may
// feed scope resolution.
func (a *Attributes) IsSubmitted() bool {
	return a.Status == StatusSubmitted
}

// Submit moves a draft intake to submitted. Submitting twice is rejected so
// the submission timestamp stays authoritative.
func (a *Attributes) Submit(now time.Time) error {
	if a.Status == StatusSubmitted {
		return dErrors.New(dErrors.CodeConflict, "intake already submitted")
	}
	if err := a.Validate(); err != nil {
		return err
	}
	a.Status = StatusSubmitted
	a.SubmittedAt = &now
	return nil
}

// Validate enforces intake invariants before submission.
func (a *Attributes) Validate() error {
	if a.ID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "intake id is required")
	}
	if a.TenantID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "intake tenant id is required")
	}
	if a.OrganizationName == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "organization name is required")
	}
	if !validStructureTypes[a.StructureType] {
		return dErrors.Newf(dErrors.CodeInvalidInput, "invalid certification structure type %q", a.StructureType)
	}
	if a.TotalFacilities < 1 {
		return dErrors.New(dErrors.CodeInvalidInput, "total facilities must be at least 1")
	}
	if a.StructureType == StructureSingle && a.TotalFacilities != 1 {
		return dErrors.New(dErrors.CodeInvalidInput, "single-structure intake must declare exactly one facility")
	}
	return nil
}

// Package domain holds typed identifiers and domain primitives shared across
// features. IDs are distinct types over uuid.UUID so the compiler rejects
// cross-entity mixups; construct them from external input via the Parse
// helpers, which enforce validity at trust boundaries.
package domain

import (
	"github.com/google/uuid"

	dErrors "recscope/pkg/domain-errors"
)

type (
	// TenantID identifies the owning organization.
	TenantID uuid.UUID
	// FacilityID identifies a physical facility.
	FacilityID uuid.UUID
	// IntakeID identifies an intake submission version.
	IntakeID uuid.UUID
	// AssessmentID identifies an assessment.
	AssessmentID uuid.UUID
)

func (id TenantID) String() string     { return uuid.UUID(id).String() }
func (id FacilityID) String() string   { return uuid.UUID(id).String() }
func (id IntakeID) String() string     { return uuid.UUID(id).String() }
func (id AssessmentID) String() string { return uuid.UUID(id).String() }

func (id TenantID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id FacilityID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id IntakeID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id AssessmentID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// NewTenantID mints a fresh tenant ID.
func NewTenantID() TenantID { return TenantID(uuid.New()) }

// NewFacilityID mints a fresh facility ID.
func NewFacilityID() FacilityID { return FacilityID(uuid.New()) }

// NewIntakeID mints a fresh intake ID.
func NewIntakeID() IntakeID { return IntakeID(uuid.New()) }

// NewAssessmentID mints a fresh assessment ID.
func NewAssessmentID() AssessmentID { return AssessmentID(uuid.New()) }

func parseUUID(s, kind string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(dErrors.CodeInvalidInput, "invalid "+kind+" id", err)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id cannot be nil")
	}
	return u, nil
}

// ParseTenantID validates external input as a TenantID.
func ParseTenantID(s string) (TenantID, error) {
	u, err := parseUUID(s, "tenant")
	return TenantID(u), err
}

// ParseFacilityID validates external input as a FacilityID.
func ParseFacilityID(s string) (FacilityID, error) {
	u, err := parseUUID(s, "facility")
	return FacilityID(u), err
}

// ParseIntakeID validates external input as an IntakeID.
func ParseIntakeID(s string) (IntakeID, error) {
	u, err := parseUUID(s, "intake")
	return IntakeID(u), err
}

// ParseAssessmentID validates external input as an AssessmentID.
func ParseAssessmentID(s string) (AssessmentID, error) {
	u, err := parseUUID(s, "assessment")
	return AssessmentID(u), err
}

package handler

import (
	"strings"

	id "recscope/pkg/domain"
	dErrors "recscope/pkg/domain-errors"
)

// CreateRequest is the HTTP request body for POST /assessments.
type CreateRequest struct {
	TenantID       string `json:"tenant_id"`
	IntakeID       string `json:"intake_id"`
	CatalogVersion string `json:"catalog_version"`

	// Parsed values (populated by Validate)
	parsedTenantID id.TenantID
	parsedIntakeID id.IntakeID
}

// Validate validates and parses the request.
func (r *CreateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	tenantID, err := id.ParseTenantID(strings.TrimSpace(r.TenantID))
	if err != nil {
		return err
	}
	r.parsedTenantID = tenantID

	intakeID, err := id.ParseIntakeID(strings.TrimSpace(r.IntakeID))
	if err != nil {
		return err
	}
	r.parsedIntakeID = intakeID

	r.CatalogVersion = strings.TrimSpace(r.CatalogVersion)
	if r.CatalogVersion == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "catalog_version is required")
	}
	return nil
}

// ParsedTenantID returns the validated tenant ID.
func (r *CreateRequest) ParsedTenantID() id.TenantID {
	return r.parsedTenantID
}

// ParsedIntakeID returns the validated intake ID.
func (r *CreateRequest) ParsedIntakeID() id.IntakeID {
	return r.parsedIntakeID
}

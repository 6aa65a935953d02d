// Package organization provides the Organization catalog.
// An organization is the billing entity (pharmacy or retail store) that
// owns all other records; every catalog and document row is scoped to one.
package organization

import (
	"context"
	"regexp"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/entity"
)

var gstinRE = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// Organization represents a registered billing entity.
type Organization struct {
	entity.BaseEntity

	// Name is the trade name printed on invoices
	Name string `db:"name" json:"name"`

	// LegalName is the registered name, if different
	LegalName string `db:"legal_name" json:"legalName,omitempty"`

	// GSTIN is the 15-character GST registration number
	GSTIN string `db:"gstin" json:"gstin"`

	// StateCode is the two-digit GST state code; intra vs inter-state
	// tax splitting compares this against the customer's state
	StateCode string `db:"state_code" json:"stateCode"`

	// DrugLicenseNumber for pharmacies (optional)
	DrugLicenseNumber string `db:"drug_license_number" json:"drugLicenseNumber,omitempty"`

	Address string `db:"address" json:"address,omitempty"`
	Phone   string `db:"phone" json:"phone,omitempty"`
	Email   string `db:"email" json:"email,omitempty"`
}

// New creates a new Organization. The state code is derived from the
// GSTIN prefix.
func New(name, gstin string) *Organization {
	org := &Organization{
		BaseEntity: entity.NewBaseEntity(),
		Name:       name,
		GSTIN:      gstin,
	}
	if len(gstin) >= 2 {
		org.StateCode = gstin[:2]
	}
	return org
}

// Validate implements entity.Validatable interface.
func (o *Organization) Validate(ctx context.Context) error {
	if o.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	if o.GSTIN == "" {
		return apperror.NewValidation("GSTIN is required").
			WithDetail("field", "gstin")
	}
	if !gstinRE.MatchString(o.GSTIN) {
		return apperror.NewValidation("invalid GSTIN format").
			WithDetail("field", "gstin").
			WithDetail("value", o.GSTIN)
	}

	if o.StateCode != "" && o.StateCode != o.GSTIN[:2] {
		return apperror.NewValidation("state code must match GSTIN prefix").
			WithDetail("field", "stateCode")
	}

	return nil
}

// IsValidGSTIN reports whether s matches the 15-character GSTIN format.
// Shared by the customer and supplier catalogs.
func IsValidGSTIN(s string) bool {
	return gstinRE.MatchString(s)
}

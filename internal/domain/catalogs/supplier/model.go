// Package supplier provides the Supplier catalog for purchase documents.
package supplier

import (
	"context"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/entity"
	"pharmabill/internal/core/id"
	"pharmabill/internal/domain/catalogs/organization"
)

// Supplier represents a vendor goods are purchased from.
type Supplier struct {
	entity.Catalog

	GSTIN string `db:"gstin" json:"gstin,omitempty"`

	// StateCode determines the tax mode on purchases
	StateCode string `db:"state_code" json:"stateCode,omitempty"`

	// DrugLicenseNumber of the distributor (pharmacy procurement)
	DrugLicenseNumber string `db:"drug_license_number" json:"drugLicenseNumber,omitempty"`

	Phone   string `db:"phone" json:"phone,omitempty"`
	Email   string `db:"email" json:"email,omitempty"`
	Address string `db:"address" json:"address,omitempty"`
}

// New creates a new Supplier.
func New(organizationID id.ID, name string) *Supplier {
	return &Supplier{
		Catalog: entity.NewCatalog(organizationID, "", name),
	}
}

// Validate implements entity.Validatable interface.
func (s *Supplier) Validate(ctx context.Context) error {
	if err := s.Catalog.Validate(ctx); err != nil {
		return err
	}

	if s.GSTIN != "" && !organization.IsValidGSTIN(s.GSTIN) {
		return apperror.NewValidation("invalid GSTIN format").
			WithDetail("field", "gstin").
			WithDetail("value", s.GSTIN)
	}

	return nil
}

// EffectiveStateCode returns the state code, preferring the GSTIN prefix.
func (s *Supplier) EffectiveStateCode() string {
	if s.GSTIN != "" {
		return s.GSTIN[:2]
	}
	return s.StateCode
}

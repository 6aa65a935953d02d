// Package customer provides the Customer catalog.
// A customer's GSTIN presence drives GSTR-1 classification: registered
// buyers go to B2B, unregistered ones to B2C.
package customer

import (
	"context"
	"regexp"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/entity"
	"pharmabill/internal/core/id"
	"pharmabill/internal/domain/catalogs/organization"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Customer represents a buyer.
type Customer struct {
	entity.Catalog

	// GSTIN is empty for unregistered (B2C) customers
	GSTIN string `db:"gstin" json:"gstin,omitempty"`

	// StateCode determines intra vs inter-state supply; derived from
	// GSTIN when present, entered manually otherwise
	StateCode string `db:"state_code" json:"stateCode,omitempty"`

	Phone   string `db:"phone" json:"phone,omitempty"`
	Email   string `db:"email" json:"email,omitempty"`
	Address string `db:"address" json:"address,omitempty"`
}

// New creates a new Customer.
func New(organizationID id.ID, name string) *Customer {
	return &Customer{
		Catalog: entity.NewCatalog(organizationID, "", name),
	}
}

// Validate implements entity.Validatable interface.
func (c *Customer) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if c.GSTIN != "" {
		if !organization.IsValidGSTIN(c.GSTIN) {
			return apperror.NewValidation("invalid GSTIN format").
				WithDetail("field", "gstin").
				WithDetail("value", c.GSTIN)
		}
		if c.StateCode != "" && c.StateCode != c.GSTIN[:2] {
			return apperror.NewValidation("state code must match GSTIN prefix").
				WithDetail("field", "stateCode")
		}
	}

	if c.Email != "" && !emailRE.MatchString(c.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	return nil
}

// IsRegistered reports whether the customer has a GSTIN (B2B).
func (c *Customer) IsRegistered() bool {
	return c.GSTIN != ""
}

// EffectiveStateCode returns the state code, preferring the GSTIN prefix.
func (c *Customer) EffectiveStateCode() string {
	if c.GSTIN != "" {
		return c.GSTIN[:2]
	}
	return c.StateCode
}

package customer

import (
	"context"

	"pharmabill/internal/core/id"
	"pharmabill/internal/domain"
)

// Repository defines the interface for Customer persistence.
type Repository interface {
	domain.CatalogRepository[*Customer]

	// FindByGSTIN retrieves a customer by GSTIN within an organization.
	FindByGSTIN(ctx context.Context, organizationID id.ID, gstin string) (*Customer, error)
}

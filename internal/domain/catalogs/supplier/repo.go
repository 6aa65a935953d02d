package supplier

import (
	"context"

	"pharmabill/internal/core/id"
	"pharmabill/internal/domain"
)

// Repository defines the interface for Supplier persistence.
type Repository interface {
	domain.CatalogRepository[*Supplier]

	// FindByGSTIN retrieves a supplier by GSTIN within an organization.
	FindByGSTIN(ctx context.Context, organizationID id.ID, gstin string) (*Supplier, error)
}

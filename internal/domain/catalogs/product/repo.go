package product

import (
	"context"

	"pharmabill/internal/core/id"
	"pharmabill/internal/core/types"
	"pharmabill/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]

	// FindByHSN lists products sharing an HSN code within an organization.
	FindByHSN(ctx context.Context, organizationID id.ID, hsnCode string) ([]*Product, error)
}

// BatchRepository defines the interface for Batch persistence.
type BatchRepository interface {
	Create(ctx context.Context, batch *Batch) error
	GetByID(ctx context.Context, id id.ID) (*Batch, error)
	Update(ctx context.Context, batch *Batch) error
	ListByProduct(ctx context.Context, productID id.ID) ([]*Batch, error)

	// GetForUpdate locks the batch row for a stock movement.
	GetForUpdate(ctx context.Context, id id.ID) (*Batch, error)

	// AdjustQuantity atomically adds delta (negative for issue) to the
	// batch quantity, failing if the result would be negative.
	AdjustQuantity(ctx context.Context, id id.ID, delta types.Money) error
}

package organization

import (
	"context"

	"pharmabill/internal/core/id"
	"pharmabill/internal/domain"
)

// Repository defines the interface for Organization persistence.
type Repository interface {
	Create(ctx context.Context, org *Organization) error
	GetByID(ctx context.Context, id id.ID) (*Organization, error)
	Update(ctx context.Context, org *Organization) error
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Organization], error)

	// FindByGSTIN retrieves an organization by registration number.
	FindByGSTIN(ctx context.Context, gstin string) (*Organization, error)
}

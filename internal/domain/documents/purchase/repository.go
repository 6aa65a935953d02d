package purchase

import (
	"context"

	"pharmabill/internal/core/id"
	"pharmabill/internal/core/types"
	"pharmabill/internal/domain"
)

// Repository defines the interface for Purchase persistence.
type Repository interface {
	Create(ctx context.Context, doc *Purchase) error
	GetByID(ctx context.Context, id id.ID) (*Purchase, error)
	Update(ctx context.Context, doc *Purchase) error
	Delete(ctx context.Context, id id.ID) error
	List(ctx context.Context, filter domain.DocumentFilter) (domain.ListResult[*Purchase], error)

	SaveLines(ctx context.Context, docID id.ID, lines []Line) error
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)

	// GetLinesForUpdate locks the table part for debit note processing
	GetLinesForUpdate(ctx context.Context, docID id.ID) ([]Line, error)

	// AddReturnedQuantity increments a line's returned quantity
	AddReturnedQuantity(ctx context.Context, lineID id.ID, qty types.Money) error

	// AddPayment appends a settlement row
	AddPayment(ctx context.Context, p *domain.Payment) error

	// ListPayments returns the settlement trail, oldest first
	ListPayments(ctx context.Context, docID id.ID) ([]*domain.Payment, error)
}

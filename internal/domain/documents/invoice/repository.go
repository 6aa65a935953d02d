package invoice

import (
	"context"

	"pharmabill/internal/core/id"
	"pharmabill/internal/core/types"
	"pharmabill/internal/domain"
)

// Repository defines the interface for Invoice persistence.
type Repository interface {
	Create(ctx context.Context, doc *Invoice) error
	GetByID(ctx context.Context, id id.ID) (*Invoice, error)
	Update(ctx context.Context, doc *Invoice) error
	Delete(ctx context.Context, id id.ID) error
	List(ctx context.Context, filter domain.DocumentFilter) (domain.ListResult[*Invoice], error)

	// SaveLines replaces the table part of a document
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error

	// GetLines retrieves the table part
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)

	// GetLinesForUpdate retrieves the table part with row locks.
	// Returns processing serializes on these locks so concurrent credit
	// notes cannot over-return a line.
	GetLinesForUpdate(ctx context.Context, docID id.ID) ([]Line, error)

	// AddReturnedQuantity increments a line's returned quantity
	AddReturnedQuantity(ctx context.Context, lineID id.ID, qty types.Money) error

	// AddPayment appends a settlement row
	AddPayment(ctx context.Context, p *domain.Payment) error

	// ListPayments returns the settlement trail, oldest first
	ListPayments(ctx context.Context, docID id.ID) ([]*domain.Payment, error)
}

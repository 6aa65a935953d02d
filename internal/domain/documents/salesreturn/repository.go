package salesreturn

import (
	"context"

	"pharmabill/internal/core/id"
	"pharmabill/internal/domain"
)

// Repository defines the interface for SalesReturn persistence.
type Repository interface {
	Create(ctx context.Context, doc *SalesReturn) error
	GetByID(ctx context.Context, id id.ID) (*SalesReturn, error)
	Update(ctx context.Context, doc *SalesReturn) error
	Delete(ctx context.Context, id id.ID) error
	List(ctx context.Context, filter domain.DocumentFilter) (domain.ListResult[*SalesReturn], error)

	SaveLines(ctx context.Context, docID id.ID, lines []Line) error
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)

	// ListByInvoice retrieves all credit notes against an invoice
	ListByInvoice(ctx context.Context, invoiceID id.ID) ([]*SalesReturn, error)
}

package purchasereturn

import (
	"context"

	"pharmabill/internal/core/id"
	"pharmabill/internal/domain"
)

// Repository defines the interface for PurchaseReturn persistence.
type Repository interface {
	Create(ctx context.Context, doc *PurchaseReturn) error
	GetByID(ctx context.Context, id id.ID) (*PurchaseReturn, error)
	Update(ctx context.Context, doc *PurchaseReturn) error
	Delete(ctx context.Context, id id.ID) error
	List(ctx context.Context, filter domain.DocumentFilter) (domain.ListResult[*PurchaseReturn], error)

	SaveLines(ctx context.Context, docID id.ID, lines []Line) error
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)

	// ListByPurchase retrieves all debit notes against a purchase
	ListByPurchase(ctx context.Context, purchaseID id.ID) ([]*PurchaseReturn, error)
}

package document_repo

import (
	"context"

	"pharmabill/internal/core/id"
	"pharmabill/internal/core/types"
	"pharmabill/internal/domain"
	"pharmabill/internal/domain/documents/purchase"
	"pharmabill/internal/infrastructure/storage/postgres"
)

const (
	purchaseTable      = "doc_purchases"
	purchaseLinesTable = "doc_purchase_lines"
)

// PurchaseRepo implements purchase.Repository.
type PurchaseRepo struct {
	*BaseDocumentRepo[*purchase.Purchase]
}

// NewPurchaseRepo creates a new purchase repository.
func NewPurchaseRepo(txManager *postgres.TxManager) *PurchaseRepo {
	return &PurchaseRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			purchaseTable,
			postgres.ExtractDBColumns[purchase.Purchase](),
			"supplier_id",
			func() *purchase.Purchase { return &purchase.Purchase{} },
		),
	}
}

// SaveLines replaces the purchase table part.
func (r *PurchaseRepo) SaveLines(ctx context.Context, docID id.ID, lines []purchase.Line) error {
	return saveLines(ctx, r.txManager, purchaseLinesTable, docID, lines)
}

// GetLines retrieves the purchase table part.
func (r *PurchaseRepo) GetLines(ctx context.Context, docID id.ID) ([]purchase.Line, error) {
	return getLines[purchase.Line](ctx, r.txManager, purchaseLinesTable, docID, "")
}

// GetLinesForUpdate retrieves the table part with row locks for debit
// note processing.
func (r *PurchaseRepo) GetLinesForUpdate(ctx context.Context, docID id.ID) ([]purchase.Line, error) {
	return getLines[purchase.Line](ctx, r.txManager, purchaseLinesTable, docID, "FOR UPDATE")
}

// AddReturnedQuantity increments a line's returned quantity.
func (r *PurchaseRepo) AddReturnedQuantity(ctx context.Context, lineID id.ID, qty types.Money) error {
	return addReturnedQuantity(ctx, r.txManager, purchaseLinesTable, lineID, qty)
}

// AddPayment appends a settlement row for the purchase.
func (r *PurchaseRepo) AddPayment(ctx context.Context, p *domain.Payment) error {
	return addPayment(ctx, r.txManager, p)
}

// ListPayments returns the purchase's settlement trail.
func (r *PurchaseRepo) ListPayments(ctx context.Context, docID id.ID) ([]*domain.Payment, error) {
	return listPayments(ctx, r.txManager, docID)
}

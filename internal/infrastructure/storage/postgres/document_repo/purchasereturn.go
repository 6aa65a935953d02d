package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"pharmabill/internal/core/id"
	"pharmabill/internal/domain/documents/purchasereturn"
	"pharmabill/internal/infrastructure/storage/postgres"
)

const (
	purchaseReturnTable      = "doc_purchase_returns"
	purchaseReturnLinesTable = "doc_purchase_return_lines"
)

// PurchaseReturnRepo implements purchasereturn.Repository.
type PurchaseReturnRepo struct {
	*BaseDocumentRepo[*purchasereturn.PurchaseReturn]
}

// NewPurchaseReturnRepo creates a new debit note repository.
func NewPurchaseReturnRepo(txManager *postgres.TxManager) *PurchaseReturnRepo {
	return &PurchaseReturnRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			purchaseReturnTable,
			postgres.ExtractDBColumns[purchasereturn.PurchaseReturn](),
			"supplier_id",
			func() *purchasereturn.PurchaseReturn { return &purchasereturn.PurchaseReturn{} },
		),
	}
}

// SaveLines replaces the debit note table part.
func (r *PurchaseReturnRepo) SaveLines(ctx context.Context, docID id.ID, lines []purchasereturn.Line) error {
	return saveLines(ctx, r.txManager, purchaseReturnLinesTable, docID, lines)
}

// GetLines retrieves the debit note table part.
func (r *PurchaseReturnRepo) GetLines(ctx context.Context, docID id.ID) ([]purchasereturn.Line, error) {
	return getLines[purchasereturn.Line](ctx, r.txManager, purchaseReturnLinesTable, docID, "")
}

// ListByPurchase retrieves all debit notes raised against a purchase.
func (r *PurchaseReturnRepo) ListByPurchase(ctx context.Context, purchaseID id.ID) ([]*purchasereturn.PurchaseReturn, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"purchase_id": purchaseID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("date ASC", "number ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*purchasereturn.PurchaseReturn
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list by purchase: %w", err)
	}
	return items, nil
}

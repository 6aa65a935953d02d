package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"pharmabill/internal/core/id"
	"pharmabill/internal/domain/documents/salesreturn"
	"pharmabill/internal/infrastructure/storage/postgres"
)

const (
	salesReturnTable      = "doc_sales_returns"
	salesReturnLinesTable = "doc_sales_return_lines"
)

// SalesReturnRepo implements salesreturn.Repository.
type SalesReturnRepo struct {
	*BaseDocumentRepo[*salesreturn.SalesReturn]
}

// NewSalesReturnRepo creates a new credit note repository.
func NewSalesReturnRepo(txManager *postgres.TxManager) *SalesReturnRepo {
	return &SalesReturnRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			salesReturnTable,
			postgres.ExtractDBColumns[salesreturn.SalesReturn](),
			"customer_id",
			func() *salesreturn.SalesReturn { return &salesreturn.SalesReturn{} },
		),
	}
}

// SaveLines replaces the credit note table part.
func (r *SalesReturnRepo) SaveLines(ctx context.Context, docID id.ID, lines []salesreturn.Line) error {
	return saveLines(ctx, r.txManager, salesReturnLinesTable, docID, lines)
}

// GetLines retrieves the credit note table part.
func (r *SalesReturnRepo) GetLines(ctx context.Context, docID id.ID) ([]salesreturn.Line, error) {
	return getLines[salesreturn.Line](ctx, r.txManager, salesReturnLinesTable, docID, "")
}

// ListByInvoice retrieves all credit notes raised against an invoice,
// deletion-marked ones excluded.
func (r *SalesReturnRepo) ListByInvoice(ctx context.Context, invoiceID id.ID) ([]*salesreturn.SalesReturn, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"invoice_id": invoiceID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("date ASC", "number ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*salesreturn.SalesReturn
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list by invoice: %w", err)
	}
	return items, nil
}

package document_repo

import (
	"context"

	"pharmabill/internal/core/id"
	"pharmabill/internal/core/types"
	"pharmabill/internal/domain"
	"pharmabill/internal/domain/documents/invoice"
	"pharmabill/internal/infrastructure/storage/postgres"
)

const (
	invoiceTable      = "doc_invoices"
	invoiceLinesTable = "doc_invoice_lines"
)

// InvoiceRepo implements invoice.Repository.
type InvoiceRepo struct {
	*BaseDocumentRepo[*invoice.Invoice]
}

// NewInvoiceRepo creates a new invoice repository.
func NewInvoiceRepo(txManager *postgres.TxManager) *InvoiceRepo {
	return &InvoiceRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			invoiceTable,
			postgres.ExtractDBColumns[invoice.Invoice](),
			"customer_id",
			func() *invoice.Invoice { return &invoice.Invoice{} },
		),
	}
}

// SaveLines replaces the invoice table part.
func (r *InvoiceRepo) SaveLines(ctx context.Context, docID id.ID, lines []invoice.Line) error {
	return saveLines(ctx, r.txManager, invoiceLinesTable, docID, lines)
}

// GetLines retrieves the invoice table part.
func (r *InvoiceRepo) GetLines(ctx context.Context, docID id.ID) ([]invoice.Line, error) {
	return getLines[invoice.Line](ctx, r.txManager, invoiceLinesTable, docID, "")
}

// GetLinesForUpdate retrieves the table part with row locks so
// concurrent credit notes serialize on the same invoice.
func (r *InvoiceRepo) GetLinesForUpdate(ctx context.Context, docID id.ID) ([]invoice.Line, error) {
	return getLines[invoice.Line](ctx, r.txManager, invoiceLinesTable, docID, "FOR UPDATE")
}

// AddReturnedQuantity increments a line's returned quantity.
func (r *InvoiceRepo) AddReturnedQuantity(ctx context.Context, lineID id.ID, qty types.Money) error {
	return addReturnedQuantity(ctx, r.txManager, invoiceLinesTable, lineID, qty)
}

// AddPayment appends a settlement row for the invoice.
func (r *InvoiceRepo) AddPayment(ctx context.Context, p *domain.Payment) error {
	return addPayment(ctx, r.txManager, p)
}

// ListPayments returns the invoice's settlement trail.
func (r *InvoiceRepo) ListPayments(ctx context.Context, docID id.ID) ([]*domain.Payment, error) {
	return listPayments(ctx, r.txManager, docID)
}

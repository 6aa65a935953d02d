package reports

import (
	"context"

	"pharmabill/internal/core/id"
)

// Repository fetches flattened document lines for a period. Only
// posted documents enter the statutory reports; the SQL layer applies
// that filter so the aggregators stay pure.
type Repository interface {
	// GetSalesRows returns posted invoice lines dated within the period.
	GetSalesRows(ctx context.Context, organizationID id.ID, period Period) ([]SalesLineRow, error)

	// GetCreditNoteRows returns posted sales return lines dated within the period.
	GetCreditNoteRows(ctx context.Context, organizationID id.ID, period Period) ([]SalesLineRow, error)

	// GetPurchaseRows returns posted purchase lines dated within the period.
	GetPurchaseRows(ctx context.Context, organizationID id.ID, period Period) ([]PurchaseLineRow, error)

	// GetDebitNoteRows returns posted purchase return lines dated within the period.
	GetDebitNoteRows(ctx context.Context, organizationID id.ID, period Period) ([]PurchaseLineRow, error)
}

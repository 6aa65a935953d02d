// Package invoice provides the sales Invoice document.
// Totals are never accepted from the caller: Recalculate derives every
// tax figure from the lines through the computation engine.
package invoice

import (
	"context"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/entity"
	"pharmabill/internal/core/id"
	"pharmabill/internal/core/types"
	"pharmabill/internal/domain/posting"
	"pharmabill/internal/gst"
)

// Invoice represents a sales invoice.
type Invoice struct {
	entity.Document

	// Customer reference
	CustomerID id.ID `db:"customer_id" json:"customerId"`

	// TaxType selects the GST split mode for the whole document
	TaxType gst.TaxType `db:"tax_type" json:"taxType"`

	// ManualCessRate applies only in CESS mode
	ManualCessRate types.Money `db:"manual_cess_rate" json:"manualCessRate"`

	// Discount is a document-level rebate taken off after tax
	Discount types.Money `db:"discount" json:"discount"`

	// Totals (engine-computed, read-only for callers)
	Subtotal      types.Money `db:"subtotal" json:"subtotal"`
	TotalDiscount types.Money `db:"total_discount" json:"totalDiscount"`
	TotalCGST     types.Money `db:"total_cgst" json:"totalCgst"`
	TotalSGST     types.Money `db:"total_sgst" json:"totalSgst"`
	TotalIGST     types.Money `db:"total_igst" json:"totalIgst"`
	TotalCess     types.Money `db:"total_cess" json:"totalCess"`
	GrandTotalRaw types.Money `db:"grand_total_raw" json:"grandTotalRaw"`
	RoundOff      types.Money `db:"round_off" json:"roundOff"`
	GrandTotal    types.Money `db:"grand_total" json:"grandTotal"`

	// Settlement
	PaidAmount    types.Money       `db:"paid_amount" json:"paidAmount"`
	BalanceAmount types.Money       `db:"balance_amount" json:"balanceAmount"`
	PaymentStatus gst.PaymentStatus `db:"payment_status" json:"paymentStatus"`

	// Table part
	Lines []Line `db:"-" json:"lines"`
}

// Line represents one invoice row with its computed breakdown.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID id.ID  `db:"product_id" json:"productId"`
	BatchID   id.ID  `db:"batch_id" json:"batchId,omitempty"`
	HSNCode   string `db:"hsn_code" json:"hsnCode,omitempty"`

	Quantity  types.Money `db:"quantity" json:"quantity"`
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`
	GSTRate   types.Money `db:"gst_rate" json:"gstRate"`
	CessRate  types.Money `db:"cess_rate" json:"cessRate"`
	Discount  types.Money `db:"discount" json:"discount"`

	// Engine-computed breakdown
	TaxableValue types.Money `db:"taxable_value" json:"taxableValue"`
	CGST         types.Money `db:"cgst" json:"cgst"`
	SGST         types.Money `db:"sgst" json:"sgst"`
	IGST         types.Money `db:"igst" json:"igst"`
	Cess         types.Money `db:"cess" json:"cess"`
	Total        types.Money `db:"total" json:"total"`

	// ReturnedQuantity accumulates across credit notes against this line
	ReturnedQuantity types.Money `db:"returned_quantity" json:"returnedQuantity"`
}

// New creates a new Invoice.
func New(organizationID, customerID id.ID, taxType gst.TaxType) *Invoice {
	return &Invoice{
		Document:   entity.NewDocument(organizationID),
		CustomerID: customerID,
		TaxType:    taxType,
		Lines:      make([]Line, 0),
	}
}

// AddLine appends a priced row. Totals are computed by Recalculate.
func (inv *Invoice) AddLine(productID, batchID id.ID, hsnCode string, quantity, unitPrice, gstRate, cessRate, discount types.Money) {
	inv.Lines = append(inv.Lines, Line{
		LineID:    id.New(),
		LineNo:    len(inv.Lines) + 1,
		ProductID: productID,
		BatchID:   batchID,
		HSNCode:   hsnCode,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		GSTRate:   gstRate,
		CessRate:  cessRate,
		Discount:  discount,
	})
}

// Recalculate recomputes all line and document totals from the lines
// and re-derives the settlement state from PaidAmount.
func (inv *Invoice) Recalculate() error {
	items := make([]gst.LineItem, len(inv.Lines))
	for i, l := range inv.Lines {
		items[i] = gst.LineItem{
			ProductID: l.ProductID,
			BatchID:   l.BatchID,
			HSNCode:   l.HSNCode,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			GSTRate:   l.GSTRate,
			CessRate:  l.CessRate,
			Discount:  l.Discount,
		}
	}

	totals, err := gst.ComputeDocument(gst.DocumentInput{
		DocumentType:   "invoice",
		TaxType:        inv.TaxType,
		Lines:          items,
		ManualCessRate: inv.ManualCessRate,
		Discount:       inv.Discount,
	})
	if err != nil {
		return err
	}

	for i := range inv.Lines {
		lt := totals.Lines[i]
		inv.Lines[i].TaxableValue = lt.TaxableValue
		inv.Lines[i].CGST = lt.CGST
		inv.Lines[i].SGST = lt.SGST
		inv.Lines[i].IGST = lt.IGST
		inv.Lines[i].Cess = lt.Cess
		inv.Lines[i].Total = lt.Total
	}

	inv.Subtotal = totals.Subtotal
	inv.TotalDiscount = totals.TotalDiscount
	inv.TotalCGST = totals.TotalCGST
	inv.TotalSGST = totals.TotalSGST
	inv.TotalIGST = totals.TotalIGST
	inv.TotalCess = totals.TotalCess
	inv.GrandTotalRaw = totals.GrandTotalRaw
	inv.RoundOff = totals.RoundOff
	inv.GrandTotal = totals.GrandTotal

	state := gst.RestorePaymentState(inv.GrandTotal, inv.PaidAmount)
	inv.PaidAmount = state.PaidAmount
	inv.BalanceAmount = state.BalanceAmount
	inv.PaymentStatus = state.Status

	return nil
}

// Validate implements entity.Validatable.
func (inv *Invoice) Validate(ctx context.Context) error {
	if err := inv.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(inv.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}

	if !inv.TaxType.Valid() {
		return apperror.NewValidation("unknown tax type").
			WithDetail("field", "taxType").
			WithDetail("value", string(inv.TaxType))
	}

	if inv.Discount.IsNegative() {
		return apperror.NewValidation("discount cannot be negative").
			WithDetail("field", "discount")
	}

	if len(inv.Lines) == 0 {
		return apperror.NewEmptyDocument("invoice")
	}

	for i, line := range inv.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if !line.Quantity.IsPositive() {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// GetDocumentType returns the document type name.
func (inv *Invoice) GetDocumentType() string {
	return "Invoice"
}

// GenerateMovements issues stock for every sold line.
func (inv *Invoice) GenerateMovements(ctx context.Context) (*posting.MovementSet, error) {
	movements := posting.NewMovementSet()

	for _, line := range inv.Lines {
		movements.AddStock(entity.NewStockMovement(
			inv.ID,
			inv.GetDocumentType(),
			inv.Date,
			entity.RecordTypeIssue,
			inv.OrganizationID,
			line.ProductID,
			line.BatchID,
			line.Quantity,
		))
	}

	return movements, nil
}

var _ posting.Postable = (*Invoice)(nil)

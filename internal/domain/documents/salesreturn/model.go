// Package salesreturn provides the SalesReturn document (credit note).
// A return draws against one original invoice, keeps its pricing and tax
// mode, and restocks the returned goods when posted.
package salesreturn

import (
	"context"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/entity"
	"pharmabill/internal/core/id"
	"pharmabill/internal/core/types"
	"pharmabill/internal/domain/posting"
	"pharmabill/internal/gst"
)

// SalesReturn represents a credit note against an invoice.
type SalesReturn struct {
	entity.Document

	// InvoiceID is the original sales invoice
	InvoiceID  id.ID `db:"invoice_id" json:"invoiceId"`
	CustomerID id.ID `db:"customer_id" json:"customerId"`

	// TaxType and ManualCessRate are copied from the original invoice
	TaxType        gst.TaxType `db:"tax_type" json:"taxType"`
	ManualCessRate types.Money `db:"manual_cess_rate" json:"manualCessRate"`

	Reason string `db:"reason" json:"reason,omitempty"`

	// Totals (engine-computed)
	Subtotal      types.Money `db:"subtotal" json:"subtotal"`
	TotalDiscount types.Money `db:"total_discount" json:"totalDiscount"`
	TotalCGST     types.Money `db:"total_cgst" json:"totalCgst"`
	TotalSGST     types.Money `db:"total_sgst" json:"totalSgst"`
	TotalIGST     types.Money `db:"total_igst" json:"totalIgst"`
	TotalCess     types.Money `db:"total_cess" json:"totalCess"`
	GrandTotalRaw types.Money `db:"grand_total_raw" json:"grandTotalRaw"`
	RoundOff      types.Money `db:"round_off" json:"roundOff"`
	GrandTotal    types.Money `db:"grand_total" json:"grandTotal"`

	Lines []Line `db:"-" json:"lines"`
}

// Line represents one returned row.
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

	TaxableValue types.Money `db:"taxable_value" json:"taxableValue"`
	CGST         types.Money `db:"cgst" json:"cgst"`
	SGST         types.Money `db:"sgst" json:"sgst"`
	IGST         types.Money `db:"igst" json:"igst"`
	Cess         types.Money `db:"cess" json:"cess"`
	Total        types.Money `db:"total" json:"total"`
}

// New creates a new SalesReturn shell; lines and totals are filled by
// the service from the engine's return computation.
func New(organizationID, invoiceID, customerID id.ID) *SalesReturn {
	return &SalesReturn{
		Document:   entity.NewDocument(organizationID),
		InvoiceID:  invoiceID,
		CustomerID: customerID,
		Lines:      make([]Line, 0),
	}
}

// ApplyComputation fills lines and totals from the engine output.
func (sr *SalesReturn) ApplyComputation(totals gst.DocumentTotals, items []gst.LineItem) {
	sr.Lines = sr.Lines[:0]
	for i, item := range items {
		lt := totals.Lines[i]
		sr.Lines = append(sr.Lines, Line{
			LineID:       id.New(),
			LineNo:       i + 1,
			ProductID:    item.ProductID,
			BatchID:      item.BatchID,
			HSNCode:      item.HSNCode,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			GSTRate:      item.GSTRate,
			CessRate:     item.CessRate,
			Discount:     item.Discount,
			TaxableValue: lt.TaxableValue,
			CGST:         lt.CGST,
			SGST:         lt.SGST,
			IGST:         lt.IGST,
			Cess:         lt.Cess,
			Total:        lt.Total,
		})
	}

	sr.Subtotal = totals.Subtotal
	sr.TotalDiscount = totals.TotalDiscount
	sr.TotalCGST = totals.TotalCGST
	sr.TotalSGST = totals.TotalSGST
	sr.TotalIGST = totals.TotalIGST
	sr.TotalCess = totals.TotalCess
	sr.GrandTotalRaw = totals.GrandTotalRaw
	sr.RoundOff = totals.RoundOff
	sr.GrandTotal = totals.GrandTotal
}

// Validate implements entity.Validatable.
func (sr *SalesReturn) Validate(ctx context.Context) error {
	if err := sr.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(sr.InvoiceID) {
		return apperror.NewValidation("original invoice is required").
			WithDetail("field", "invoiceId")
	}

	if len(sr.Lines) == 0 {
		return apperror.NewEmptyDocument("sales_return")
	}

	return nil
}

// GetDocumentType returns the document type name.
func (sr *SalesReturn) GetDocumentType() string {
	return "SalesReturn"
}

// GenerateMovements restocks every returned line.
func (sr *SalesReturn) GenerateMovements(ctx context.Context) (*posting.MovementSet, error) {
	movements := posting.NewMovementSet()

	for _, line := range sr.Lines {
		movements.AddStock(entity.NewStockMovement(
			sr.ID,
			sr.GetDocumentType(),
			sr.Date,
			entity.RecordTypeReceipt,
			sr.OrganizationID,
			line.ProductID,
			line.BatchID,
			line.Quantity,
		))
	}

	return movements, nil
}

var _ posting.Postable = (*SalesReturn)(nil)

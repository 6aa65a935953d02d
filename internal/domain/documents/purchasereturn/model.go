// Package purchasereturn provides the PurchaseReturn document (debit note).
// A debit note draws against one original purchase and issues the
// returned goods back out of stock when posted.
package purchasereturn

import (
	"context"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/entity"
	"pharmabill/internal/core/id"
	"pharmabill/internal/core/types"
	"pharmabill/internal/domain/posting"
	"pharmabill/internal/gst"
)

// PurchaseReturn represents a debit note against a purchase.
type PurchaseReturn struct {
	entity.Document

	// PurchaseID is the original purchase document
	PurchaseID id.ID `db:"purchase_id" json:"purchaseId"`
	SupplierID id.ID `db:"supplier_id" json:"supplierId"`

	// TaxType and ManualCessRate are copied from the original purchase
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

// New creates a new PurchaseReturn shell; lines and totals are filled
// by the service from the engine's return computation.
func New(organizationID, purchaseID, supplierID id.ID) *PurchaseReturn {
	return &PurchaseReturn{
		Document:   entity.NewDocument(organizationID),
		PurchaseID: purchaseID,
		SupplierID: supplierID,
		Lines:      make([]Line, 0),
	}
}

// ApplyComputation fills lines and totals from the engine output.
func (pr *PurchaseReturn) ApplyComputation(totals gst.DocumentTotals, items []gst.LineItem) {
	pr.Lines = pr.Lines[:0]
	for i, item := range items {
		lt := totals.Lines[i]
		pr.Lines = append(pr.Lines, Line{
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

	pr.Subtotal = totals.Subtotal
	pr.TotalDiscount = totals.TotalDiscount
	pr.TotalCGST = totals.TotalCGST
	pr.TotalSGST = totals.TotalSGST
	pr.TotalIGST = totals.TotalIGST
	pr.TotalCess = totals.TotalCess
	pr.GrandTotalRaw = totals.GrandTotalRaw
	pr.RoundOff = totals.RoundOff
	pr.GrandTotal = totals.GrandTotal
}

// Validate implements entity.Validatable.
func (pr *PurchaseReturn) Validate(ctx context.Context) error {
	if err := pr.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(pr.PurchaseID) {
		return apperror.NewValidation("original purchase is required").
			WithDetail("field", "purchaseId")
	}

	if len(pr.Lines) == 0 {
		return apperror.NewEmptyDocument("purchase_return")
	}

	return nil
}

// GetDocumentType returns the document type name.
func (pr *PurchaseReturn) GetDocumentType() string {
	return "PurchaseReturn"
}

// GenerateMovements issues the returned goods out of stock.
func (pr *PurchaseReturn) GenerateMovements(ctx context.Context) (*posting.MovementSet, error) {
	movements := posting.NewMovementSet()

	for _, line := range pr.Lines {
		movements.AddStock(entity.NewStockMovement(
			pr.ID,
			pr.GetDocumentType(),
			pr.Date,
			entity.RecordTypeIssue,
			pr.OrganizationID,
			line.ProductID,
			line.BatchID,
			line.Quantity,
		))
	}

	return movements, nil
}

var _ posting.Postable = (*PurchaseReturn)(nil)

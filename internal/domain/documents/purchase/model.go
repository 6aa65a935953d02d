// Package purchase provides the Purchase document (inward supply).
// Posted purchases feed the GSTR-3B input tax credit aggregation and
// receive stock into batches.
package purchase

import (
	"context"
	"time"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/entity"
	"pharmabill/internal/core/id"
	"pharmabill/internal/core/types"
	"pharmabill/internal/domain/posting"
	"pharmabill/internal/gst"
)

// Purchase represents a purchase (supplier bill).
type Purchase struct {
	entity.Document

	SupplierID id.ID `db:"supplier_id" json:"supplierId"`

	// Supplier's own invoice reference
	SupplierBillNumber string     `db:"supplier_bill_number" json:"supplierBillNumber,omitempty"`
	SupplierBillDate   *time.Time `db:"supplier_bill_date" json:"supplierBillDate,omitempty"`

	TaxType        gst.TaxType `db:"tax_type" json:"taxType"`
	ManualCessRate types.Money `db:"manual_cess_rate" json:"manualCessRate"`

	// Discount is a document-level rebate taken off after tax
	Discount types.Money `db:"discount" json:"discount"`

	// After-tax charges, itemized as on the supplier bill
	Freight      types.Money `db:"freight" json:"freight"`
	Packaging    types.Money `db:"packaging" json:"packaging"`
	OtherCharges types.Money `db:"other_charges" json:"otherCharges"`

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

	// Settlement (amount payable to supplier)
	PaidAmount    types.Money       `db:"paid_amount" json:"paidAmount"`
	BalanceAmount types.Money       `db:"balance_amount" json:"balanceAmount"`
	PaymentStatus gst.PaymentStatus `db:"payment_status" json:"paymentStatus"`

	Lines []Line `db:"-" json:"lines"`
}

// Line represents one purchased row.
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

	ReturnedQuantity types.Money `db:"returned_quantity" json:"returnedQuantity"`
}

// New creates a new Purchase.
func New(organizationID, supplierID id.ID, taxType gst.TaxType) *Purchase {
	return &Purchase{
		Document:   entity.NewDocument(organizationID),
		SupplierID: supplierID,
		TaxType:    taxType,
		Lines:      make([]Line, 0),
	}
}

// AddLine appends a priced row. Totals are computed by Recalculate.
func (p *Purchase) AddLine(productID, batchID id.ID, hsnCode string, quantity, unitPrice, gstRate, cessRate, discount types.Money) {
	p.Lines = append(p.Lines, Line{
		LineID:    id.New(),
		LineNo:    len(p.Lines) + 1,
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

// AdditionalCharges sums the itemized after-tax charges.
func (p *Purchase) AdditionalCharges() types.Money {
	return p.Freight.Add(p.Packaging).Add(p.OtherCharges)
}

// Recalculate recomputes all line and document totals.
func (p *Purchase) Recalculate() error {
	items := make([]gst.LineItem, len(p.Lines))
	for i, l := range p.Lines {
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
		DocumentType:      "purchase",
		TaxType:           p.TaxType,
		Lines:             items,
		ManualCessRate:    p.ManualCessRate,
		Discount:          p.Discount,
		AdditionalCharges: p.AdditionalCharges(),
	})
	if err != nil {
		return err
	}

	for i := range p.Lines {
		lt := totals.Lines[i]
		p.Lines[i].TaxableValue = lt.TaxableValue
		p.Lines[i].CGST = lt.CGST
		p.Lines[i].SGST = lt.SGST
		p.Lines[i].IGST = lt.IGST
		p.Lines[i].Cess = lt.Cess
		p.Lines[i].Total = lt.Total
	}

	p.Subtotal = totals.Subtotal
	p.TotalDiscount = totals.TotalDiscount
	p.TotalCGST = totals.TotalCGST
	p.TotalSGST = totals.TotalSGST
	p.TotalIGST = totals.TotalIGST
	p.TotalCess = totals.TotalCess
	p.GrandTotalRaw = totals.GrandTotalRaw
	p.RoundOff = totals.RoundOff
	p.GrandTotal = totals.GrandTotal

	state := gst.RestorePaymentState(p.GrandTotal, p.PaidAmount)
	p.BalanceAmount = state.BalanceAmount
	p.PaymentStatus = state.Status

	return nil
}

// Validate implements entity.Validatable.
func (p *Purchase) Validate(ctx context.Context) error {
	if err := p.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(p.SupplierID) {
		return apperror.NewValidation("supplier is required").
			WithDetail("field", "supplierId")
	}

	if !p.TaxType.Valid() {
		return apperror.NewValidation("unknown tax type").
			WithDetail("field", "taxType").
			WithDetail("value", string(p.TaxType))
	}

	charges := []struct {
		field string
		value types.Money
	}{
		{"discount", p.Discount},
		{"freight", p.Freight},
		{"packaging", p.Packaging},
		{"otherCharges", p.OtherCharges},
	}
	for _, c := range charges {
		if c.value.IsNegative() {
			return apperror.NewValidation("amount cannot be negative").
				WithDetail("field", c.field)
		}
	}

	if len(p.Lines) == 0 {
		return apperror.NewEmptyDocument("purchase")
	}

	for i, line := range p.Lines {
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
func (p *Purchase) GetDocumentType() string {
	return "Purchase"
}

// GenerateMovements receives stock for every purchased line.
func (p *Purchase) GenerateMovements(ctx context.Context) (*posting.MovementSet, error) {
	movements := posting.NewMovementSet()

	for _, line := range p.Lines {
		movements.AddStock(entity.NewStockMovement(
			p.ID,
			p.GetDocumentType(),
			p.Date,
			entity.RecordTypeReceipt,
			p.OrganizationID,
			line.ProductID,
			line.BatchID,
			line.Quantity,
		))
	}

	return movements, nil
}

var _ posting.Postable = (*Purchase)(nil)

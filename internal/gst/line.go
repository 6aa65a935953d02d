package gst

import (
	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/id"
	"pharmabill/internal/core/types"
)

// LineItem is one priced row of a billing document, before tax.
type LineItem struct {
	ProductID id.ID       `json:"productId"`
	BatchID   id.ID       `json:"batchId,omitempty"`
	HSNCode   string      `json:"hsnCode,omitempty"`
	Quantity  types.Money `json:"quantity"`
	UnitPrice types.Money `json:"unitPrice"`
	GSTRate   types.Money `json:"gstRate"`
	CessRate  types.Money `json:"cessRate"`

	// Discount is an absolute amount off the line's gross value.
	Discount types.Money `json:"discount"`
}

// Validate checks the arithmetic preconditions for a line.
func (li LineItem) Validate() error {
	if !li.Quantity.IsPositive() {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("product_id", li.ProductID.String()).
			WithDetail("quantity", li.Quantity.String())
	}
	if li.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price cannot be negative").
			WithDetail("product_id", li.ProductID.String())
	}
	if li.Discount.IsNegative() {
		return apperror.NewValidation("discount cannot be negative").
			WithDetail("product_id", li.ProductID.String())
	}
	if li.GSTRate.IsNegative() || li.CessRate.IsNegative() {
		return apperror.NewValidation("tax rate cannot be negative").
			WithDetail("product_id", li.ProductID.String())
	}
	return nil
}

// LineTotals is the tax breakdown for one line.
type LineTotals struct {
	Gross        types.Money `json:"gross"`
	Discount     types.Money `json:"discount"`
	TaxableValue types.Money `json:"taxableValue"`
	CGST         types.Money `json:"cgst"`
	SGST         types.Money `json:"sgst"`
	IGST         types.Money `json:"igst"`
	Cess         types.Money `json:"cess"`
	Total        types.Money `json:"total"`

	// DiscountClamped is set when the requested discount exceeded the
	// gross value and was reduced to it. Surfaced so callers can warn
	// instead of silently losing margin.
	DiscountClamped bool `json:"discountClamped,omitempty"`
}

// ComputeLine computes the full breakdown for a single line.
// A discount larger than the line's gross value is clamped to the gross
// value, yielding a zero taxable value rather than a negative one.
func ComputeLine(item LineItem, taxType TaxType) (LineTotals, error) {
	if err := item.Validate(); err != nil {
		return LineTotals{}, err
	}

	gross := item.Quantity.Mul(item.UnitPrice)
	discount := item.Discount
	clamped := false
	if discount.GreaterThan(gross) {
		discount = gross
		clamped = true
	}
	taxable := gross.Sub(discount)

	split, err := ResolveSplit(taxable, item.GSTRate, item.CessRate, taxType)
	if err != nil {
		return LineTotals{}, err
	}

	return LineTotals{
		Gross:           gross,
		Discount:        discount,
		TaxableValue:    taxable,
		CGST:            split.CGST,
		SGST:            split.SGST,
		IGST:            split.IGST,
		Cess:            split.Cess,
		Total:           taxable.Add(split.Total()),
		DiscountClamped: clamped,
	}, nil
}

package gst

import (
	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/id"
	"pharmabill/internal/core/types"
)

// OriginalLine is a line of the source document a return draws against.
// ReturnedQuantity accumulates across prior returns; the returnable
// balance is Quantity - ReturnedQuantity.
type OriginalLine struct {
	ProductID        id.ID
	BatchID          id.ID
	HSNCode          string
	Quantity         types.Money
	ReturnedQuantity types.Money
	UnitPrice        types.Money
	GSTRate          types.Money
	CessRate         types.Money
	Discount         types.Money
}

// Returnable returns the quantity still eligible for return.
func (ol OriginalLine) Returnable() types.Money {
	return ol.Quantity.Sub(ol.ReturnedQuantity)
}

// ReturnLine requests a quantity back against a product/batch of the
// original document.
type ReturnLine struct {
	ProductID id.ID       `json:"productId"`
	BatchID   id.ID       `json:"batchId,omitempty"`
	Quantity  types.Money `json:"quantity"`
}

// ComputeReturn values a return against the original document's lines.
//
// Each requested line must match an original line by product and batch
// and must not exceed its returnable balance. Returned goods keep the
// original unit price and tax rates; the original line discount is
// prorated by the returned fraction of the quantity. The resulting
// line items feed ComputeDocument under the original document's tax
// mode, so a credit note mirrors the invoice's arithmetic exactly.
func ComputeReturn(original []OriginalLine, taxType TaxType, manualCessRate types.Money, requested []ReturnLine, documentType string) (DocumentTotals, []LineItem, error) {
	if len(requested) == 0 {
		return DocumentTotals{}, nil, apperror.NewEmptyDocument(documentType)
	}

	items := make([]LineItem, 0, len(requested))
	for _, req := range requested {
		if !req.Quantity.IsPositive() {
			return DocumentTotals{}, nil, apperror.NewValidation("return quantity must be positive").
				WithDetail("product_id", req.ProductID.String())
		}

		orig, ok := matchOriginal(original, req)
		if !ok {
			return DocumentTotals{}, nil, apperror.NewValidation("product not found in original document").
				WithDetail("product_id", req.ProductID.String()).
				WithDetail("batch_id", req.BatchID.String())
		}

		returnable := orig.Returnable()
		if req.Quantity.GreaterThan(returnable) {
			return DocumentTotals{}, nil, apperror.NewExceedsReturnable(
				req.ProductID.String(),
				req.Quantity.String(),
				returnable.String(),
			)
		}

		items = append(items, LineItem{
			ProductID: orig.ProductID,
			BatchID:   orig.BatchID,
			HSNCode:   orig.HSNCode,
			Quantity:  req.Quantity,
			UnitPrice: orig.UnitPrice,
			GSTRate:   orig.GSTRate,
			CessRate:  orig.CessRate,
			Discount:  prorateDiscount(orig, req.Quantity),
		})
	}

	totals, err := ComputeDocument(DocumentInput{
		DocumentType:   documentType,
		TaxType:        taxType,
		Lines:          items,
		ManualCessRate: manualCessRate,
	})
	if err != nil {
		return DocumentTotals{}, nil, err
	}

	return totals, items, nil
}

func matchOriginal(original []OriginalLine, req ReturnLine) (OriginalLine, bool) {
	for _, ol := range original {
		if ol.ProductID == req.ProductID && ol.BatchID == req.BatchID {
			return ol, true
		}
	}
	return OriginalLine{}, false
}

// prorateDiscount scales the original line discount by the returned
// fraction of the original quantity.
func prorateDiscount(orig OriginalLine, returnQty types.Money) types.Money {
	if orig.Discount.IsZero() || orig.Quantity.IsZero() {
		return types.Zero()
	}
	return orig.Discount.Mul(returnQty).Div(orig.Quantity)
}

package gst

import (
	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/types"
)

// DocumentInput carries everything needed to compute a document's totals.
type DocumentInput struct {
	// DocumentType names the document for error reporting ("invoice",
	// "purchase", ...). Not used in arithmetic.
	DocumentType string

	TaxType TaxType
	Lines   []LineItem

	// ManualCessRate applies only when TaxType is CESS: a percentage
	// levied once on the aggregated subtotal.
	ManualCessRate types.Money

	// Discount is a document-level rebate subtracted after tax. It does
	// not touch per-line taxable values, so the tax split is unchanged.
	Discount types.Money

	// AdditionalCharges (freight, packing) are added after tax and are
	// not themselves taxed.
	AdditionalCharges types.Money
}

// DocumentTotals is the complete computed footer of a billing document.
//
// The invariant GrandTotal = GrandTotalRaw + RoundOff holds exactly;
// RoundOff is the signed difference introduced by rounding to the rupee.
type DocumentTotals struct {
	Lines []LineTotals `json:"lines"`

	Subtotal          types.Money `json:"subtotal"`
	TotalDiscount     types.Money `json:"totalDiscount"`
	TotalCGST         types.Money `json:"totalCgst"`
	TotalSGST         types.Money `json:"totalSgst"`
	TotalIGST         types.Money `json:"totalIgst"`
	TotalCess         types.Money `json:"totalCess"`
	Discount          types.Money `json:"discount"`
	AdditionalCharges types.Money `json:"additionalCharges"`
	GrandTotalRaw     types.Money `json:"grandTotalRaw"`
	RoundOff          types.Money `json:"roundOff"`
	GrandTotal        types.Money `json:"grandTotal"`
}

// TotalTax returns the sum of all tax heads across the document.
func (t DocumentTotals) TotalTax() types.Money {
	return t.TotalCGST.Add(t.TotalSGST).Add(t.TotalIGST).Add(t.TotalCess)
}

// ComputeDocument computes all line breakdowns and the document footer.
//
// In CGST_SGST and IGST modes the per-line tax amounts are summed. In
// CESS mode line tax is suppressed and a single cess is levied on the
// aggregated subtotal at ManualCessRate. The grand total is rounded to
// the nearest whole rupee, half away from zero.
func ComputeDocument(in DocumentInput) (DocumentTotals, error) {
	if len(in.Lines) == 0 {
		return DocumentTotals{}, apperror.NewEmptyDocument(in.DocumentType)
	}
	if !in.TaxType.Valid() {
		return DocumentTotals{}, apperror.NewUnsupportedTaxType(string(in.TaxType))
	}
	if in.TaxType == TaxTypeCESS && in.ManualCessRate.IsNegative() {
		return DocumentTotals{}, apperror.NewValidation("cess rate cannot be negative").
			WithDetail("cess_rate", in.ManualCessRate.String())
	}
	if in.Discount.IsNegative() {
		return DocumentTotals{}, apperror.NewValidation("document discount cannot be negative").
			WithDetail("discount", in.Discount.String())
	}
	if in.AdditionalCharges.IsNegative() {
		return DocumentTotals{}, apperror.NewValidation("additional charges cannot be negative")
	}

	totals := DocumentTotals{
		Lines:             make([]LineTotals, 0, len(in.Lines)),
		Discount:          in.Discount,
		AdditionalCharges: in.AdditionalCharges,
	}

	for _, item := range in.Lines {
		lt, err := ComputeLine(item, in.TaxType)
		if err != nil {
			return DocumentTotals{}, err
		}
		totals.Lines = append(totals.Lines, lt)

		totals.Subtotal = totals.Subtotal.Add(lt.TaxableValue)
		totals.TotalDiscount = totals.TotalDiscount.Add(lt.Discount)
		totals.TotalCGST = totals.TotalCGST.Add(lt.CGST)
		totals.TotalSGST = totals.TotalSGST.Add(lt.SGST)
		totals.TotalIGST = totals.TotalIGST.Add(lt.IGST)
		totals.TotalCess = totals.TotalCess.Add(lt.Cess)
	}

	if in.TaxType == TaxTypeCESS {
		totals.TotalCess = totals.Subtotal.Mul(in.ManualCessRate).Div(hundred)
	}

	totals.GrandTotalRaw = totals.Subtotal.
		Add(totals.TotalCGST).
		Add(totals.TotalSGST).
		Add(totals.TotalIGST).
		Add(totals.TotalCess).
		Add(totals.AdditionalCharges).
		Sub(totals.Discount)

	totals.GrandTotal = types.RoundRupee(totals.GrandTotalRaw)
	totals.RoundOff = totals.GrandTotal.Sub(totals.GrandTotalRaw)

	return totals, nil
}

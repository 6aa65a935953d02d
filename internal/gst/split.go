package gst

import (
	"github.com/shopspring/decimal"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/types"
)

var hundred = decimal.NewFromInt(100)
var two = decimal.NewFromInt(2)

// Split is a tax amount broken into its statutory heads.
// Exactly one of CGST+SGST or IGST is populated for GST modes;
// the CESS mode leaves all heads zero at line level because the
// cess is levied once on the document subtotal.
type Split struct {
	CGST types.Money `json:"cgst"`
	SGST types.Money `json:"sgst"`
	IGST types.Money `json:"igst"`
	Cess types.Money `json:"cess"`
}

// Total returns the sum of all tax heads.
func (s Split) Total() types.Money {
	return s.CGST.Add(s.SGST).Add(s.IGST).Add(s.Cess)
}

// ResolveSplit computes the tax heads for a taxable value.
//
// CGST_SGST divides the GST amount into equal central and state halves,
// IGST carries it whole, and both add the item cess on top. The halves
// are exact: CGST + SGST always reconstructs the full GST amount.
func ResolveSplit(taxable, gstRate, cessRate types.Money, taxType TaxType) (Split, error) {
	gstAmount := taxable.Mul(gstRate).Div(hundred)
	cessAmount := taxable.Mul(cessRate).Div(hundred)

	switch taxType {
	case TaxTypeCGSTSGST:
		half := gstAmount.Div(two)
		return Split{CGST: half, SGST: half, Cess: cessAmount}, nil
	case TaxTypeIGST:
		return Split{IGST: gstAmount, Cess: cessAmount}, nil
	case TaxTypeCESS:
		// Per-item GST and cess are suppressed; ComputeDocument levies
		// the manual cess on the aggregated subtotal.
		return Split{}, nil
	default:
		return Split{}, apperror.NewUnsupportedTaxType(string(taxType))
	}
}

package gst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/types"
)

func TestResolveSplit_IntraState(t *testing.T) {
	split, err := ResolveSplit(types.MustMoney("200"), types.MustMoney("12"), types.Zero(), TaxTypeCGSTSGST)
	require.NoError(t, err)

	assert.True(t, split.CGST.Equal(types.MustMoney("12")), "cgst = %s", split.CGST)
	assert.True(t, split.SGST.Equal(types.MustMoney("12")), "sgst = %s", split.SGST)
	assert.True(t, split.IGST.IsZero())
	assert.True(t, split.Cess.IsZero())
}

func TestResolveSplit_InterState(t *testing.T) {
	split, err := ResolveSplit(types.MustMoney("999.50"), types.MustMoney("18"), types.Zero(), TaxTypeIGST)
	require.NoError(t, err)

	assert.True(t, split.IGST.Equal(types.MustMoney("179.91")), "igst = %s", split.IGST)
	assert.True(t, split.CGST.IsZero())
	assert.True(t, split.SGST.IsZero())
}

func TestResolveSplit_ItemCess(t *testing.T) {
	split, err := ResolveSplit(types.MustMoney("1000"), types.MustMoney("28"), types.MustMoney("12"), TaxTypeCGSTSGST)
	require.NoError(t, err)

	assert.True(t, split.CGST.Equal(types.MustMoney("140")))
	assert.True(t, split.SGST.Equal(types.MustMoney("140")))
	assert.True(t, split.Cess.Equal(types.MustMoney("120")))
}

func TestResolveSplit_CessModeSuppressesLineTax(t *testing.T) {
	split, err := ResolveSplit(types.MustMoney("500"), types.MustMoney("18"), types.MustMoney("5"), TaxTypeCESS)
	require.NoError(t, err)

	assert.True(t, split.Total().IsZero())
}

func TestResolveSplit_UnknownType(t *testing.T) {
	_, err := ResolveSplit(types.MustMoney("100"), types.MustMoney("18"), types.Zero(), TaxType("VAT"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeUnsupportedTaxType))
}

// The halves must reconstruct the full tax amount exactly across rate
// slabs and awkward taxable values.
func TestResolveSplit_Completeness(t *testing.T) {
	taxables := []string{"0", "0.01", "1", "33.33", "999.50", "123456.78"}
	rates := []string{"0", "5", "12", "18", "28"}
	cessRates := []string{"0", "1", "12"}

	for _, tv := range taxables {
		for _, r := range rates {
			for _, cr := range cessRates {
				taxable := types.MustMoney(tv)
				gstRate := types.MustMoney(r)
				cessRate := types.MustMoney(cr)
				expected := taxable.Mul(gstRate.Add(cessRate)).Div(types.MustMoney("100"))

				for _, tt := range []TaxType{TaxTypeCGSTSGST, TaxTypeIGST} {
					split, err := ResolveSplit(taxable, gstRate, cessRate, tt)
					require.NoError(t, err)
					assert.True(t, split.Total().Equal(expected),
						"taxable=%s rate=%s cess=%s type=%s: got %s want %s",
						tv, r, cr, tt, split.Total(), expected)
					if tt == TaxTypeCGSTSGST {
						assert.True(t, split.CGST.Equal(split.SGST), "cgst/sgst symmetry broken")
					}
				}
			}
		}
	}
}

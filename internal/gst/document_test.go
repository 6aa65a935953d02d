package gst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/id"
	"pharmabill/internal/core/types"
)

func line(qty, price, gstRate, discount string) LineItem {
	return LineItem{
		ProductID: id.New(),
		Quantity:  types.MustMoney(qty),
		UnitPrice: types.MustMoney(price),
		GSTRate:   types.MustMoney(gstRate),
		Discount:  types.MustMoney(discount),
	}
}

func TestComputeDocument_IntraStateInvoice(t *testing.T) {
	totals, err := ComputeDocument(DocumentInput{
		DocumentType: "invoice",
		TaxType:      TaxTypeCGSTSGST,
		Lines:        []LineItem{line("2", "100", "12", "0")},
	})
	require.NoError(t, err)

	require.Len(t, totals.Lines, 1)
	lt := totals.Lines[0]
	assert.True(t, lt.TaxableValue.Equal(types.MustMoney("200")))
	assert.True(t, lt.CGST.Equal(types.MustMoney("12")))
	assert.True(t, lt.SGST.Equal(types.MustMoney("12")))
	assert.True(t, lt.Total.Equal(types.MustMoney("224")))

	assert.True(t, totals.GrandTotal.Equal(types.MustMoney("224")))
	assert.True(t, totals.RoundOff.IsZero())
}

func TestComputeDocument_InterStateRoundOff(t *testing.T) {
	totals, err := ComputeDocument(DocumentInput{
		DocumentType: "invoice",
		TaxType:      TaxTypeIGST,
		Lines:        []LineItem{line("1", "999.50", "18", "0")},
	})
	require.NoError(t, err)

	assert.True(t, totals.TotalIGST.Equal(types.MustMoney("179.91")))
	assert.True(t, totals.GrandTotalRaw.Equal(types.MustMoney("1179.41")))
	assert.True(t, totals.GrandTotal.Equal(types.MustMoney("1179")))
	assert.True(t, totals.RoundOff.Equal(types.MustMoney("-0.41")))
}

func TestComputeDocument_CessMode(t *testing.T) {
	totals, err := ComputeDocument(DocumentInput{
		DocumentType:   "purchase",
		TaxType:        TaxTypeCESS,
		ManualCessRate: types.MustMoney("1"),
		Lines: []LineItem{
			line("4", "150", "18", "0"),
			line("2", "200", "12", "0"),
		},
	})
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.Equal(types.MustMoney("1000")))
	assert.True(t, totals.TotalCGST.IsZero(), "cess mode must suppress per-line gst")
	assert.True(t, totals.TotalSGST.IsZero())
	assert.True(t, totals.TotalIGST.IsZero())
	assert.True(t, totals.TotalCess.Equal(types.MustMoney("10")))
	assert.True(t, totals.GrandTotal.Equal(types.MustMoney("1010")))
}

func TestComputeDocument_Empty(t *testing.T) {
	_, err := ComputeDocument(DocumentInput{
		DocumentType: "invoice",
		TaxType:      TaxTypeCGSTSGST,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeEmptyDocument))
}

func TestComputeDocument_OverDiscountClamps(t *testing.T) {
	totals, err := ComputeDocument(DocumentInput{
		DocumentType: "invoice",
		TaxType:      TaxTypeCGSTSGST,
		Lines:        []LineItem{line("1", "100", "18", "150")},
	})
	require.NoError(t, err)

	lt := totals.Lines[0]
	assert.True(t, lt.DiscountClamped)
	assert.True(t, lt.TaxableValue.IsZero(), "taxable never goes negative")
	assert.True(t, lt.Discount.Equal(types.MustMoney("100")))
	assert.True(t, totals.GrandTotal.IsZero())
}

func TestComputeDocument_AdditionalChargesUntaxed(t *testing.T) {
	totals, err := ComputeDocument(DocumentInput{
		DocumentType:      "purchase",
		TaxType:           TaxTypeIGST,
		AdditionalCharges: types.MustMoney("50"),
		Lines:             []LineItem{line("1", "100", "18", "0")},
	})
	require.NoError(t, err)

	assert.True(t, totals.TotalIGST.Equal(types.MustMoney("18")))
	assert.True(t, totals.GrandTotal.Equal(types.MustMoney("168")))
}

func TestComputeDocument_DocumentDiscount(t *testing.T) {
	totals, err := ComputeDocument(DocumentInput{
		DocumentType:      "purchase",
		TaxType:           TaxTypeIGST,
		Discount:          types.MustMoney("30"),
		AdditionalCharges: types.MustMoney("50"),
		Lines:             []LineItem{line("1", "100", "18", "0")},
	})
	require.NoError(t, err)

	// The rebate comes off after tax: the split is computed on the full
	// taxable value.
	assert.True(t, totals.TotalIGST.Equal(types.MustMoney("18")))
	assert.True(t, totals.Discount.Equal(types.MustMoney("30")))
	assert.True(t, totals.GrandTotalRaw.Equal(types.MustMoney("138")))
	assert.True(t, totals.GrandTotal.Equal(types.MustMoney("138")))
}

func TestComputeDocument_NegativeDocumentDiscount(t *testing.T) {
	_, err := ComputeDocument(DocumentInput{
		DocumentType: "invoice",
		TaxType:      TaxTypeCGSTSGST,
		Discount:     types.MustMoney("-1"),
		Lines:        []LineItem{line("1", "100", "18", "0")},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestComputeDocument_InvalidLines(t *testing.T) {
	tests := []struct {
		name string
		item LineItem
	}{
		{"zero quantity", line("0", "100", "18", "0")},
		{"negative quantity", line("-1", "100", "18", "0")},
		{"negative price", line("1", "-5", "18", "0")},
		{"negative discount", line("1", "100", "18", "-1")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ComputeDocument(DocumentInput{
				DocumentType: "invoice",
				TaxType:      TaxTypeCGSTSGST,
				Lines:        []LineItem{tc.item},
			})
			require.Error(t, err)
			assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
		})
	}
}

// Grand total reconstruction must hold exactly for awkward fractions in
// both rounding directions.
func TestComputeDocument_RoundOffReconstruction(t *testing.T) {
	cases := [][]LineItem{
		{line("1", "999.50", "18", "0")},
		{line("3", "33.33", "5", "0")},
		{line("1", "100.25", "12", "0.10")},
		{line("7", "14.99", "28", "5")},
		{line("1", "0.40", "0", "0")},
	}

	for _, lines := range cases {
		totals, err := ComputeDocument(DocumentInput{
			DocumentType: "invoice",
			TaxType:      TaxTypeIGST,
			Lines:        lines,
		})
		require.NoError(t, err)

		assert.True(t, totals.GrandTotal.Equal(totals.GrandTotalRaw.Add(totals.RoundOff)),
			"raw=%s roundOff=%s grand=%s", totals.GrandTotalRaw, totals.RoundOff, totals.GrandTotal)
		assert.True(t, totals.GrandTotal.Equal(totals.GrandTotal.Truncate(0)),
			"grand total must be a whole rupee, got %s", totals.GrandTotal)
		assert.True(t, totals.RoundOff.Abs().LessThanOrEqual(types.MustMoney("0.5")))
	}
}

func TestComputeDocument_HalfRoundsAwayFromZero(t *testing.T) {
	totals, err := ComputeDocument(DocumentInput{
		DocumentType: "invoice",
		TaxType:      TaxTypeIGST,
		Lines:        []LineItem{line("1", "100.50", "0", "0")},
	})
	require.NoError(t, err)
	assert.True(t, totals.GrandTotal.Equal(types.MustMoney("101")))
}

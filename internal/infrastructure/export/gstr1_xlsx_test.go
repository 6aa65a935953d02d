package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pharmabill/internal/core/id"
	"pharmabill/internal/core/types"
	"pharmabill/internal/domain/reports"
)

func TestGSTR1Workbook(t *testing.T) {
	report := &reports.GSTR1Report{
		Period: reports.Period{
			From: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
		},
		B2B: []reports.InvoiceEntry{
			{
				DocumentID:     id.New(),
				DocumentNumber: "INV-2026-00001",
				DocumentDate:   time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC),
				CustomerName:   "Apollo Distributors",
				CustomerGSTIN:  "27AAPFU0939F1ZV",
				StateCode:      "27",
				DocumentTotal:  types.MustMoney("1120"),
				Rates: []reports.RateBucket{
					{
						GSTRate:      types.MustMoney("12"),
						TaxableValue: types.MustMoney("1000"),
						CGST:         types.MustMoney("60"),
						SGST:         types.MustMoney("60"),
						TotalTax:     types.MustMoney("120"),
					},
				},
			},
		},
		B2CSmall: []reports.RateBucket{
			{
				GSTRate:      types.MustMoney("5"),
				TaxableValue: types.MustMoney("500"),
				CGST:         types.MustMoney("12.50"),
				SGST:         types.MustMoney("12.50"),
				TotalTax:     types.MustMoney("25"),
			},
		},
		HSN: []reports.HSNBucket{
			{
				HSNCode:      "3004",
				Description:  "Medicaments",
				UQC:          "NOS",
				GSTRate:      types.MustMoney("12"),
				Quantity:     types.MustMoney("10"),
				TaxableValue: types.MustMoney("1000"),
				CGST:         types.MustMoney("60"),
				SGST:         types.MustMoney("60"),
				TotalTax:     types.MustMoney("120"),
			},
		},
	}

	data, err := GSTR1Workbook(report)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	assert.ElementsMatch(t, []string{"b2b", "b2cl", "b2cs", "cdnr", "hsn"}, sheets)

	gstin, err := f.GetCellValue("b2b", "A2")
	require.NoError(t, err)
	assert.Equal(t, "27AAPFU0939F1ZV", gstin)

	invDate, err := f.GetCellValue("b2b", "D2")
	require.NoError(t, err)
	assert.Equal(t, "05-04-2026", invDate)

	hsn, err := f.GetCellValue("hsn", "A2")
	require.NoError(t, err)
	assert.Equal(t, "3004", hsn)

	// Header row carries the offline tool's column names.
	head, err := f.GetCellValue("b2cs", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Type", head)
}

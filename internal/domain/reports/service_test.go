package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmabill/internal/core/id"
	"pharmabill/internal/core/types"
)

var testPeriod = Period{
	From: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	To:   time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
}

func salesRow(docID id.ID, number, gstin string, taxable, rate, cgst, sgst, igst, docTotal string) SalesLineRow {
	return SalesLineRow{
		DocumentID:     docID,
		DocumentNumber: number,
		DocumentDate:   time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		CustomerName:   "Customer",
		CustomerGSTIN:  gstin,
		HSNCode:        "3004",
		UQC:            "NOS",
		Quantity:       types.MustMoney("1"),
		GSTRate:        types.MustMoney(rate),
		TaxableValue:   types.MustMoney(taxable),
		CGST:           types.MustMoney(cgst),
		SGST:           types.MustMoney(sgst),
		IGST:           types.MustMoney(igst),
		Cess:           types.Zero(),
		DocumentTotal:  types.MustMoney(docTotal),
	}
}

func TestBuildGSTR1_Classification(t *testing.T) {
	b2bDoc := id.New()
	largeDoc := id.New()
	smallDoc := id.New()

	rows := []SalesLineRow{
		salesRow(b2bDoc, "INV-2026-00001", "27AAPFU0939F1ZV", "1000", "12", "60", "60", "0", "1120"),
		salesRow(largeDoc, "INV-2026-00002", "", "300000", "18", "27000", "27000", "0", "354000"),
		salesRow(smallDoc, "INV-2026-00003", "", "500", "5", "12.50", "12.50", "0", "525"),
	}

	report := BuildGSTR1(testPeriod, rows, nil)

	require.Len(t, report.B2B, 1)
	assert.Equal(t, "INV-2026-00001", report.B2B[0].DocumentNumber)
	assert.Equal(t, "27AAPFU0939F1ZV", report.B2B[0].CustomerGSTIN)

	require.Len(t, report.B2CLarge, 1)
	assert.Equal(t, "INV-2026-00002", report.B2CLarge[0].DocumentNumber)

	require.Len(t, report.B2CSmall, 1)
	assert.True(t, report.B2CSmall[0].GSTRate.Equal(types.MustMoney("5")))
	assert.True(t, report.B2CSmall[0].TaxableValue.Equal(types.MustMoney("500")))
	assert.Equal(t, 1, report.B2CSmall[0].Count)

	assert.Equal(t, 3, report.InvoiceCount)
	assert.True(t, report.TotalTaxableValue.Equal(types.MustMoney("301500")))
}

func TestBuildGSTR1_ThresholdBoundary(t *testing.T) {
	// A document total exactly at the threshold stays B2C-Small.
	atDoc := id.New()
	rows := []SalesLineRow{
		salesRow(atDoc, "INV-2026-00009", "", "211864.41", "18", "19067.79", "19067.80", "0", "250000"),
	}

	report := BuildGSTR1(testPeriod, rows, nil)

	assert.Empty(t, report.B2CLarge)
	require.Len(t, report.B2CSmall, 1)
}

func TestBuildGSTR1_RegisteredBeatsThreshold(t *testing.T) {
	// A registered customer is B2B regardless of document value.
	doc := id.New()
	rows := []SalesLineRow{
		salesRow(doc, "INV-2026-00010", "27AAPFU0939F1ZV", "400000", "18", "36000", "36000", "0", "472000"),
	}

	report := BuildGSTR1(testPeriod, rows, nil)

	require.Len(t, report.B2B, 1)
	assert.Empty(t, report.B2CLarge)
	assert.Empty(t, report.B2CSmall)
}

func TestBuildGSTR1_CreditNotes(t *testing.T) {
	crnDoc := id.New()
	creditNotes := []SalesLineRow{
		salesRow(crnDoc, "CRN-2026-00001", "27AAPFU0939F1ZV", "200", "12", "12", "12", "0", "224"),
	}

	report := BuildGSTR1(testPeriod, nil, creditNotes)

	require.Len(t, report.CreditNotes, 1)
	assert.Equal(t, "CRN-2026-00001", report.CreditNotes[0].DocumentNumber)
	assert.Equal(t, 1, report.CreditNoteCount)
	assert.Equal(t, 0, report.InvoiceCount)
}

func TestBuildGSTR1_Deterministic(t *testing.T) {
	docA := id.New()
	docB := id.New()
	rows := []SalesLineRow{
		salesRow(docB, "INV-2026-00002", "27AAPFU0939F1ZV", "100", "5", "2.50", "2.50", "0", "105"),
		salesRow(docA, "INV-2026-00001", "27AAPFU0939F1ZV", "200", "12", "12", "12", "0", "224"),
	}

	first := BuildGSTR1(testPeriod, rows, nil)
	second := BuildGSTR1(testPeriod, rows, nil)

	assert.Equal(t, first, second)
	require.Len(t, first.B2B, 2)
	assert.Equal(t, "INV-2026-00001", first.B2B[0].DocumentNumber)
	assert.Equal(t, "INV-2026-00002", first.B2B[1].DocumentNumber)
}

func purchaseRow(taxable, cgst, sgst, igst string) PurchaseLineRow {
	return PurchaseLineRow{
		DocumentID:   id.New(),
		DocumentDate: time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC),
		HSNCode:      "3004",
		Quantity:     types.MustMoney("1"),
		GSTRate:      types.MustMoney("12"),
		TaxableValue: types.MustMoney(taxable),
		CGST:         types.MustMoney(cgst),
		SGST:         types.MustMoney(sgst),
		IGST:         types.MustMoney(igst),
		Cess:         types.Zero(),
	}
}

func TestBuildGSTR3B_NetLiability(t *testing.T) {
	sales := []SalesLineRow{
		salesRow(id.New(), "INV-2026-00001", "", "1000", "12", "60", "60", "0", "1120"),
	}
	purchases := []PurchaseLineRow{
		purchaseRow("400", "24", "24", "0"),
	}

	report := BuildGSTR3B(testPeriod, sales, nil, purchases, nil)

	assert.True(t, report.OutwardSupplies.CGST.Equal(types.MustMoney("60")))
	assert.True(t, report.ITCAvailable.CGST.Equal(types.MustMoney("24")))
	assert.True(t, report.NetCGST.Equal(types.MustMoney("36")))
	assert.True(t, report.NetSGST.Equal(types.MustMoney("36")))
	assert.True(t, report.NetIGST.IsZero())
}

func TestBuildGSTR3B_FlooredPerHead(t *testing.T) {
	// ITC exceeds liability on CGST/SGST but not IGST; each head
	// floors independently.
	sales := []SalesLineRow{
		salesRow(id.New(), "INV-2026-00001", "", "100", "12", "6", "6", "0", "112"),
		salesRow(id.New(), "INV-2026-00002", "", "500", "18", "0", "0", "90", "590"),
	}
	purchases := []PurchaseLineRow{
		purchaseRow("1000", "60", "60", "0"),
	}

	report := BuildGSTR3B(testPeriod, sales, nil, purchases, nil)

	assert.True(t, report.NetCGST.IsZero())
	assert.True(t, report.NetSGST.IsZero())
	assert.True(t, report.NetIGST.Equal(types.MustMoney("90")))
}

func TestBuildGSTR3B_NotesReduceBothSides(t *testing.T) {
	sales := []SalesLineRow{
		salesRow(id.New(), "INV-2026-00001", "", "1000", "12", "60", "60", "0", "1120"),
	}
	creditNotes := []SalesLineRow{
		salesRow(id.New(), "CRN-2026-00001", "", "200", "12", "12", "12", "0", "224"),
	}
	purchases := []PurchaseLineRow{
		purchaseRow("500", "30", "30", "0"),
	}
	debitNotes := []PurchaseLineRow{
		purchaseRow("100", "6", "6", "0"),
	}

	report := BuildGSTR3B(testPeriod, sales, creditNotes, purchases, debitNotes)

	assert.True(t, report.OutwardSupplies.TaxableValue.Equal(types.MustMoney("800")))
	assert.True(t, report.OutwardSupplies.CGST.Equal(types.MustMoney("48")))
	assert.True(t, report.ITCAvailable.TaxableValue.Equal(types.MustMoney("400")))
	assert.True(t, report.ITCAvailable.CGST.Equal(types.MustMoney("24")))
	assert.True(t, report.NetCGST.Equal(types.MustMoney("24")))
}

func TestBuildHSNSummary_AggregatesByCodeAndRate(t *testing.T) {
	docA := id.New()
	docB := id.New()

	rowA := salesRow(docA, "INV-2026-00001", "", "100", "12", "6", "6", "0", "112")
	rowB := salesRow(docB, "INV-2026-00002", "", "200", "12", "12", "12", "0", "224")
	rowB.Quantity = types.MustMoney("2")

	report := BuildHSNSummary(testPeriod, []SalesLineRow{rowA, rowB})

	require.Len(t, report.Buckets, 1)
	b := report.Buckets[0]
	assert.Equal(t, "3004", b.HSNCode)
	assert.True(t, b.Quantity.Equal(types.MustMoney("3")))
	assert.True(t, b.TaxableValue.Equal(types.MustMoney("300")))
	assert.True(t, b.CGST.Equal(types.MustMoney("18")))
	assert.True(t, b.SGST.Equal(types.MustMoney("18")))
	assert.True(t, b.TotalTax.Equal(types.MustMoney("36")))
}

func TestBuildHSNSummary_SeparateRates(t *testing.T) {
	rowA := salesRow(id.New(), "INV-2026-00001", "", "100", "5", "2.50", "2.50", "0", "105")
	rowB := salesRow(id.New(), "INV-2026-00002", "", "100", "12", "6", "6", "0", "112")

	report := BuildHSNSummary(testPeriod, []SalesLineRow{rowA, rowB})

	require.Len(t, report.Buckets, 2)
	assert.True(t, report.Buckets[0].GSTRate.Equal(types.MustMoney("5")))
	assert.True(t, report.Buckets[1].GSTRate.Equal(types.MustMoney("12")))
	assert.True(t, report.TotalTaxableValue.Equal(types.MustMoney("200")))
}

func TestBuildTaxSummary(t *testing.T) {
	docA := id.New()
	docB := id.New()

	rows := []SalesLineRow{
		salesRow(docA, "INV-2026-00001", "", "100", "5", "2.50", "2.50", "0", "105"),
		salesRow(docA, "INV-2026-00001", "", "200", "12", "12", "12", "0", "105"),
		salesRow(docB, "INV-2026-00002", "", "300", "12", "18", "18", "0", "336"),
	}

	report := BuildTaxSummary(testPeriod, rows)

	require.Len(t, report.ByRate, 2)

	five := report.ByRate[0]
	assert.True(t, five.GSTRate.Equal(types.MustMoney("5")))
	assert.Equal(t, 1, five.Count)

	twelve := report.ByRate[1]
	assert.True(t, twelve.GSTRate.Equal(types.MustMoney("12")))
	assert.Equal(t, 2, twelve.Count)
	assert.True(t, twelve.TaxableValue.Equal(types.MustMoney("500")))
	assert.True(t, twelve.TotalTax.Equal(types.MustMoney("60")))

	assert.Equal(t, 2, report.Totals.Count)
	assert.True(t, report.Totals.TaxableValue.Equal(types.MustMoney("600")))
	assert.True(t, report.Totals.TotalTax.Equal(types.MustMoney("65")))
}

func TestValidatePeriod(t *testing.T) {
	err := validatePeriod(Period{})
	require.Error(t, err)

	err = validatePeriod(Period{From: testPeriod.To, To: testPeriod.From})
	require.Error(t, err)

	require.NoError(t, validatePeriod(testPeriod))
}

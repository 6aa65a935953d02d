// Package export renders statutory reports into Excel workbooks laid
// out like the GST offline tool templates.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"pharmabill/internal/core/types"
	"pharmabill/internal/domain/reports"
)

// Sheet names follow the GSTR-1 offline utility.
const (
	sheetB2B  = "b2b"
	sheetB2CL = "b2cl"
	sheetB2CS = "b2cs"
	sheetCDNR = "cdnr"
	sheetHSN  = "hsn"
)

// GSTR1Workbook renders a GSTR-1 report as an xlsx file.
func GSTR1Workbook(report *reports.GSTR1Report) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	w := &workbookWriter{f: f, headerStyle: headerStyle}

	if err := w.writeInvoiceSheet(sheetB2B, report.B2B); err != nil {
		return nil, err
	}
	if err := w.writeInvoiceSheet(sheetB2CL, report.B2CLarge); err != nil {
		return nil, err
	}
	if err := w.writeB2CSSheet(report.B2CSmall); err != nil {
		return nil, err
	}
	if err := w.writeInvoiceSheet(sheetCDNR, report.CreditNotes); err != nil {
		return nil, err
	}
	if err := w.writeHSNSheet(report.HSN); err != nil {
		return nil, err
	}

	// The default sheet excelize creates on NewFile.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type workbookWriter struct {
	f           *excelize.File
	headerStyle int
}

func (w *workbookWriter) newSheet(name string, headers []string) error {
	if _, err := w.f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := w.f.SetCellValue(name, cell, h); err != nil {
			return fmt.Errorf("set header %s: %w", h, err)
		}
	}

	lastCell, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return fmt.Errorf("header range: %w", err)
	}
	if err := w.f.SetCellStyle(name, "A1", lastCell, w.headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	return nil
}

func (w *workbookWriter) writeRow(sheet string, rowNo int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, rowNo)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := w.f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}

// writeInvoiceSheet renders per-invoice entries with one row per rate.
// Used for b2b, b2cl and cdnr.
func (w *workbookWriter) writeInvoiceSheet(sheet string, entries []reports.InvoiceEntry) error {
	headers := []string{
		"GSTIN/UIN of Recipient", "Receiver Name", "Invoice Number",
		"Invoice Date", "Invoice Value", "Place Of Supply",
		"Rate", "Taxable Value", "Central Tax", "State/UT Tax",
		"Integrated Tax", "Cess Amount",
	}
	if err := w.newSheet(sheet, headers); err != nil {
		return err
	}

	rowNo := 2
	for _, e := range entries {
		for _, rate := range e.Rates {
			values := []any{
				e.CustomerGSTIN,
				e.CustomerName,
				e.DocumentNumber,
				e.DocumentDate.Format("02-01-2006"),
				num(e.DocumentTotal),
				e.StateCode,
				num(rate.GSTRate),
				num(rate.TaxableValue),
				num(rate.CGST),
				num(rate.SGST),
				num(rate.IGST),
				num(rate.Cess),
			}
			if err := w.writeRow(sheet, rowNo, values); err != nil {
				return err
			}
			rowNo++
		}
	}
	return nil
}

// writeB2CSSheet renders rate-level consolidated rows.
func (w *workbookWriter) writeB2CSSheet(buckets []reports.RateBucket) error {
	headers := []string{
		"Type", "Rate", "Taxable Value", "Central Tax", "State/UT Tax",
		"Integrated Tax", "Cess Amount",
	}
	if err := w.newSheet(sheetB2CS, headers); err != nil {
		return err
	}

	for i, b := range buckets {
		values := []any{
			"OE",
			num(b.GSTRate),
			num(b.TaxableValue),
			num(b.CGST),
			num(b.SGST),
			num(b.IGST),
			num(b.Cess),
		}
		if err := w.writeRow(sheetB2CS, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func (w *workbookWriter) writeHSNSheet(buckets []reports.HSNBucket) error {
	headers := []string{
		"HSN", "Description", "UQC", "Total Quantity", "Rate",
		"Taxable Value", "Central Tax Amount", "State/UT Tax Amount",
		"Integrated Tax Amount", "Cess Amount",
	}
	if err := w.newSheet(sheetHSN, headers); err != nil {
		return err
	}

	for i, b := range buckets {
		values := []any{
			b.HSNCode,
			b.Description,
			b.UQC,
			num(b.Quantity),
			num(b.GSTRate),
			num(b.TaxableValue),
			num(b.CGST),
			num(b.SGST),
			num(b.IGST),
			num(b.Cess),
		}
		if err := w.writeRow(sheetHSN, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

// num converts Money to a float cell value. Report amounts carry two
// decimal places, well within float64 precision.
func num(m types.Money) float64 {
	f, _ := m.Float64()
	return f
}

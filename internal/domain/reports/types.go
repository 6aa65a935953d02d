// Package reports provides the statutory GST report aggregators:
// GSTR-1 (outward supplies), GSTR-3B (tax liability vs input credit),
// the HSN summary and the rate-wise tax summary.
package reports

import (
	"time"

	"pharmabill/internal/core/id"
	"pharmabill/internal/core/types"
)

// B2CLargeThreshold is the statutory invoice-value bound above which an
// unregistered sale is reported as B2C-Large. Not configurable.
var B2CLargeThreshold = types.MustMoney("250000")

// Period is an inclusive calendar-day date range.
type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains reports whether d falls within the period (calendar days).
func (p Period) Contains(d time.Time) bool {
	day := d.Truncate(24 * time.Hour)
	return !day.Before(p.From.Truncate(24*time.Hour)) && !day.After(p.To.Truncate(24*time.Hour))
}

// StartInclusive returns midnight of the From day. Document dates are
// full timestamps, so range queries compare against day bounds, not
// the raw From/To instants.
func (p Period) StartInclusive() time.Time {
	return p.From.Truncate(24 * time.Hour)
}

// EndExclusive returns the first instant after the To day. A document
// stamped any time on the To day satisfies date < EndExclusive.
func (p Period) EndExclusive() time.Time {
	return p.To.Truncate(24 * time.Hour).Add(24 * time.Hour)
}

// SalesLineRow is one flattened invoice or credit note line, joined
// with its document header and customer. The aggregators are pure
// functions over these rows.
type SalesLineRow struct {
	DocumentID     id.ID     `db:"document_id" json:"documentId"`
	DocumentNumber string    `db:"document_number" json:"documentNumber"`
	DocumentDate   time.Time `db:"document_date" json:"documentDate"`

	CustomerName      string `db:"customer_name" json:"customerName"`
	CustomerGSTIN     string `db:"customer_gstin" json:"customerGstin"`
	CustomerStateCode string `db:"customer_state_code" json:"customerStateCode"`

	HSNCode     string      `db:"hsn_code" json:"hsnCode"`
	Description string      `db:"description" json:"description"`
	UQC         string      `db:"uqc" json:"uqc"`
	Quantity    types.Money `db:"quantity" json:"quantity"`

	GSTRate      types.Money `db:"gst_rate" json:"gstRate"`
	TaxableValue types.Money `db:"taxable_value" json:"taxableValue"`
	CGST         types.Money `db:"cgst" json:"cgst"`
	SGST         types.Money `db:"sgst" json:"sgst"`
	IGST         types.Money `db:"igst" json:"igst"`
	Cess         types.Money `db:"cess" json:"cess"`

	// DocumentTotal is the document's grand total, repeated on each
	// line; drives the B2C large/small classification
	DocumentTotal types.Money `db:"document_total" json:"documentTotal"`
}

// PurchaseLineRow is one flattened purchase or debit note line.
type PurchaseLineRow struct {
	DocumentID     id.ID     `db:"document_id" json:"documentId"`
	DocumentNumber string    `db:"document_number" json:"documentNumber"`
	DocumentDate   time.Time `db:"document_date" json:"documentDate"`

	SupplierName  string `db:"supplier_name" json:"supplierName"`
	SupplierGSTIN string `db:"supplier_gstin" json:"supplierGstin"`

	HSNCode     string      `db:"hsn_code" json:"hsnCode"`
	Description string      `db:"description" json:"description"`
	UQC         string      `db:"uqc" json:"uqc"`
	Quantity    types.Money `db:"quantity" json:"quantity"`

	GSTRate      types.Money `db:"gst_rate" json:"gstRate"`
	TaxableValue types.Money `db:"taxable_value" json:"taxableValue"`
	CGST         types.Money `db:"cgst" json:"cgst"`
	SGST         types.Money `db:"sgst" json:"sgst"`
	IGST         types.Money `db:"igst" json:"igst"`
	Cess         types.Money `db:"cess" json:"cess"`
}

// RateBucket aggregates tax figures for one GST rate.
type RateBucket struct {
	GSTRate      types.Money `json:"gstRate"`
	Count        int         `json:"count"`
	TaxableValue types.Money `json:"taxableValue"`
	CGST         types.Money `json:"cgst"`
	SGST         types.Money `json:"sgst"`
	IGST         types.Money `json:"igst"`
	Cess         types.Money `json:"cess"`
	TotalTax     types.Money `json:"totalTax"`
}

// HSNBucket aggregates tax figures for one HSN code and rate.
type HSNBucket struct {
	HSNCode      string      `json:"hsnCode"`
	Description  string      `json:"description"`
	UQC          string      `json:"uqc"`
	GSTRate      types.Money `json:"gstRate"`
	Quantity     types.Money `json:"quantity"`
	TaxableValue types.Money `json:"taxableValue"`
	CGST         types.Money `json:"cgst"`
	SGST         types.Money `json:"sgst"`
	IGST         types.Money `json:"igst"`
	Cess         types.Money `json:"cess"`
	TotalTax     types.Money `json:"totalTax"`
}

// InvoiceEntry is one itemized document in GSTR-1 B2B / B2C-Large / CDNR.
type InvoiceEntry struct {
	DocumentID     id.ID       `json:"documentId"`
	DocumentNumber string      `json:"documentNumber"`
	DocumentDate   time.Time   `json:"documentDate"`
	CustomerName   string      `json:"customerName"`
	CustomerGSTIN  string      `json:"customerGstin,omitempty"`
	StateCode      string      `json:"stateCode,omitempty"`
	DocumentTotal  types.Money `json:"documentTotal"`
	Rates          []RateBucket `json:"rates"`
}

// GSTR1Report is the outward supplies return.
type GSTR1Report struct {
	Period Period `json:"period"`

	// B2B: sales to registered customers, itemized per invoice
	B2B []InvoiceEntry `json:"b2b"`

	// B2CLarge: unregistered sales above the statutory threshold,
	// itemized per invoice
	B2CLarge []InvoiceEntry `json:"b2cl"`

	// B2CSmall: remaining unregistered sales, aggregated by rate
	B2CSmall []RateBucket `json:"b2cs"`

	// CreditNotes: returns against the period's outward supplies
	CreditNotes []InvoiceEntry `json:"cdnr"`

	// HSN summary of outward supplies
	HSN []HSNBucket `json:"hsn"`

	// Document counts for the docs sheet
	InvoiceCount    int `json:"invoiceCount"`
	CreditNoteCount int `json:"creditNoteCount"`

	TotalTaxableValue types.Money `json:"totalTaxableValue"`
	TotalTax          types.Money `json:"totalTax"`
}

// GSTR3BSection holds one side of the GSTR-3B computation.
type GSTR3BSection struct {
	TaxableValue types.Money `json:"taxableValue"`
	CGST         types.Money `json:"cgst"`
	SGST         types.Money `json:"sgst"`
	IGST         types.Money `json:"igst"`
	Cess         types.Money `json:"cess"`
}

// GSTR3BReport is the summary return: outward liability minus input
// tax credit, floored at zero per head.
type GSTR3BReport struct {
	Period Period `json:"period"`

	// OutwardSupplies: sales net of credit notes
	OutwardSupplies GSTR3BSection `json:"outwardSupplies"`

	// ITCAvailable: purchases net of debit notes
	ITCAvailable GSTR3BSection `json:"itcAvailable"`

	// NetPayable per head, never negative
	NetCGST types.Money `json:"netCgst"`
	NetSGST types.Money `json:"netSgst"`
	NetIGST types.Money `json:"netIgst"`
	NetCess types.Money `json:"netCess"`
}

// HSNSummaryReport groups outward supplies by HSN code.
type HSNSummaryReport struct {
	Period  Period      `json:"period"`
	Buckets []HSNBucket `json:"buckets"`

	TotalTaxableValue types.Money `json:"totalTaxableValue"`
	TotalTax          types.Money `json:"totalTax"`
}

// TaxSummaryReport groups outward supplies by GST rate.
type TaxSummaryReport struct {
	Period  Period       `json:"period"`
	ByRate  []RateBucket `json:"byRate"`
	Totals  RateBucket   `json:"totals"`
}

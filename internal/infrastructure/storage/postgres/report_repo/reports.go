// Package report_repo provides PostgreSQL implementations for report
// repositories. Queries flatten posted documents into per-line rows;
// statutory aggregation happens in the domain layer.
package report_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"pharmabill/internal/core/id"
	"pharmabill/internal/domain/reports"
	"pharmabill/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txManager *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txManager: txManager}
}

var _ reports.Repository = (*ReportRepo)(nil)

// Only posted, non-deleted documents enter statutory reports. Document
// dates are full timestamps while the period is calendar days, so the
// bound params are the period's day bounds: midnight of the From day
// and the first instant after the To day.

const salesRowsSQL = `
	SELECT
		d.id               AS document_id,
		d.number           AS document_number,
		d.date             AS document_date,
		c.name             AS customer_name,
		COALESCE(c.gstin, '')      AS customer_gstin,
		COALESCE(c.state_code, '') AS customer_state_code,
		l.hsn_code,
		COALESCE(p.description, p.name) AS description,
		COALESCE(p.uqc, '') AS uqc,
		l.quantity,
		l.gst_rate,
		l.taxable_value,
		l.cgst,
		l.sgst,
		l.igst,
		l.cess,
		d.grand_total      AS document_total
	FROM doc_invoices d
	JOIN doc_invoice_lines l ON l.document_id = d.id
	JOIN cat_customers c ON c.id = d.customer_id
	JOIN cat_products p ON p.id = l.product_id
	WHERE d.organization_id = $1
	  AND d.posted = TRUE
	  AND d.deletion_mark = FALSE
	  AND d.date >= $2
	  AND d.date < $3
	ORDER BY d.number, l.line_no
`

const creditNoteRowsSQL = `
	SELECT
		d.id               AS document_id,
		d.number           AS document_number,
		d.date             AS document_date,
		c.name             AS customer_name,
		COALESCE(c.gstin, '')      AS customer_gstin,
		COALESCE(c.state_code, '') AS customer_state_code,
		l.hsn_code,
		COALESCE(p.description, p.name) AS description,
		COALESCE(p.uqc, '') AS uqc,
		l.quantity,
		l.gst_rate,
		l.taxable_value,
		l.cgst,
		l.sgst,
		l.igst,
		l.cess,
		d.grand_total      AS document_total
	FROM doc_sales_returns d
	JOIN doc_sales_return_lines l ON l.document_id = d.id
	JOIN cat_customers c ON c.id = d.customer_id
	JOIN cat_products p ON p.id = l.product_id
	WHERE d.organization_id = $1
	  AND d.posted = TRUE
	  AND d.deletion_mark = FALSE
	  AND d.date >= $2
	  AND d.date < $3
	ORDER BY d.number, l.line_no
`

const purchaseRowsSQL = `
	SELECT
		d.id               AS document_id,
		d.number           AS document_number,
		d.date             AS document_date,
		s.name             AS supplier_name,
		COALESCE(s.gstin, '') AS supplier_gstin,
		l.hsn_code,
		COALESCE(p.description, p.name) AS description,
		COALESCE(p.uqc, '') AS uqc,
		l.quantity,
		l.gst_rate,
		l.taxable_value,
		l.cgst,
		l.sgst,
		l.igst,
		l.cess
	FROM doc_purchases d
	JOIN doc_purchase_lines l ON l.document_id = d.id
	JOIN cat_suppliers s ON s.id = d.supplier_id
	JOIN cat_products p ON p.id = l.product_id
	WHERE d.organization_id = $1
	  AND d.posted = TRUE
	  AND d.deletion_mark = FALSE
	  AND d.date >= $2
	  AND d.date < $3
	ORDER BY d.number, l.line_no
`

const debitNoteRowsSQL = `
	SELECT
		d.id               AS document_id,
		d.number           AS document_number,
		d.date             AS document_date,
		s.name             AS supplier_name,
		COALESCE(s.gstin, '') AS supplier_gstin,
		l.hsn_code,
		COALESCE(p.description, p.name) AS description,
		COALESCE(p.uqc, '') AS uqc,
		l.quantity,
		l.gst_rate,
		l.taxable_value,
		l.cgst,
		l.sgst,
		l.igst,
		l.cess
	FROM doc_purchase_returns d
	JOIN doc_purchase_return_lines l ON l.document_id = d.id
	JOIN cat_suppliers s ON s.id = d.supplier_id
	JOIN cat_products p ON p.id = l.product_id
	WHERE d.organization_id = $1
	  AND d.posted = TRUE
	  AND d.deletion_mark = FALSE
	  AND d.date >= $2
	  AND d.date < $3
	ORDER BY d.number, l.line_no
`

// GetSalesRows returns flattened invoice lines for a period.
func (r *ReportRepo) GetSalesRows(ctx context.Context, organizationID id.ID, period reports.Period) ([]reports.SalesLineRow, error) {
	return r.salesQuery(ctx, salesRowsSQL, "sales rows", organizationID, period)
}

// GetCreditNoteRows returns flattened credit note lines for a period.
func (r *ReportRepo) GetCreditNoteRows(ctx context.Context, organizationID id.ID, period reports.Period) ([]reports.SalesLineRow, error) {
	return r.salesQuery(ctx, creditNoteRowsSQL, "credit note rows", organizationID, period)
}

func (r *ReportRepo) salesQuery(ctx context.Context, sql, label string, organizationID id.ID, period reports.Period) ([]reports.SalesLineRow, error) {
	var rows []reports.SalesLineRow
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, sql, organizationID, period.StartInclusive(), period.EndExclusive()); err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}
	return rows, nil
}

// GetPurchaseRows returns flattened purchase lines for a period.
func (r *ReportRepo) GetPurchaseRows(ctx context.Context, organizationID id.ID, period reports.Period) ([]reports.PurchaseLineRow, error) {
	return r.purchaseQuery(ctx, purchaseRowsSQL, "purchase rows", organizationID, period)
}

// GetDebitNoteRows returns flattened debit note lines for a period.
func (r *ReportRepo) GetDebitNoteRows(ctx context.Context, organizationID id.ID, period reports.Period) ([]reports.PurchaseLineRow, error) {
	return r.purchaseQuery(ctx, debitNoteRowsSQL, "debit note rows", organizationID, period)
}

func (r *ReportRepo) purchaseQuery(ctx context.Context, sql, label string, organizationID id.ID, period reports.Period) ([]reports.PurchaseLineRow, error) {
	var rows []reports.PurchaseLineRow
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, sql, organizationID, period.StartInclusive(), period.EndExclusive()); err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}
	return rows, nil
}

package main

import (
	"context"

	"pharmabill/internal/domain"
	"pharmabill/internal/domain/catalogs/product"
	"pharmabill/internal/domain/documents/invoice"
	"pharmabill/internal/domain/documents/purchase"
	"pharmabill/internal/infrastructure/storage/postgres"
)

// registerAuditHooks wires the audit trail into service lifecycles.
// Audit failures are swallowed by the hooks: a lost audit row must not
// fail the business operation.
func registerAuditHooks(
	audit *postgres.AuditService,
	invoices *invoice.Service,
	purchases *purchase.Service,
	products *product.Service,
) {
	invoices.Hooks().On(domain.AfterCreate, func(ctx context.Context, doc *invoice.Invoice) error {
		_ = audit.LogChange(ctx, "invoice", doc.ID, postgres.AuditActionCreate, map[string]any{
			"number":      doc.Number,
			"customer_id": doc.CustomerID,
			"grand_total": doc.GrandTotal,
		})
		return nil
	})

	invoices.Hooks().On(domain.AfterPost, func(ctx context.Context, doc *invoice.Invoice) error {
		_ = audit.LogChange(ctx, "invoice", doc.ID, postgres.AuditActionPost, map[string]any{
			"number": doc.Number,
		})
		return nil
	})

	invoices.Hooks().On(domain.AfterUnpost, func(ctx context.Context, doc *invoice.Invoice) error {
		_ = audit.LogChange(ctx, "invoice", doc.ID, postgres.AuditActionUnpost, map[string]any{
			"number": doc.Number,
		})
		return nil
	})

	invoices.Hooks().On(domain.AfterPayment, func(ctx context.Context, doc *invoice.Invoice) error {
		_ = audit.LogChange(ctx, "invoice", doc.ID, postgres.AuditActionPayment, map[string]any{
			"number":         doc.Number,
			"paid_amount":    doc.PaidAmount,
			"payment_status": doc.PaymentStatus,
		})
		return nil
	})

	purchases.Hooks().On(domain.AfterCreate, func(ctx context.Context, doc *purchase.Purchase) error {
		_ = audit.LogChange(ctx, "purchase", doc.ID, postgres.AuditActionCreate, map[string]any{
			"number":      doc.Number,
			"supplier_id": doc.SupplierID,
			"grand_total": doc.GrandTotal,
		})
		return nil
	})

	purchases.Hooks().On(domain.AfterPost, func(ctx context.Context, doc *purchase.Purchase) error {
		_ = audit.LogChange(ctx, "purchase", doc.ID, postgres.AuditActionPost, map[string]any{
			"number": doc.Number,
		})
		return nil
	})

	purchases.Hooks().On(domain.AfterUnpost, func(ctx context.Context, doc *purchase.Purchase) error {
		_ = audit.LogChange(ctx, "purchase", doc.ID, postgres.AuditActionUnpost, map[string]any{
			"number": doc.Number,
		})
		return nil
	})

	purchases.Hooks().On(domain.AfterPayment, func(ctx context.Context, doc *purchase.Purchase) error {
		_ = audit.LogChange(ctx, "purchase", doc.ID, postgres.AuditActionPayment, map[string]any{
			"number":         doc.Number,
			"paid_amount":    doc.PaidAmount,
			"payment_status": doc.PaymentStatus,
		})
		return nil
	})

	products.Hooks().On(domain.AfterCreate, func(ctx context.Context, p *product.Product) error {
		_ = audit.LogChange(ctx, "product", p.ID, postgres.AuditActionCreate, map[string]any{
			"name":     p.Name,
			"hsn_code": p.HSNCode,
			"gst_rate": p.GSTRate,
		})
		return nil
	})

	products.Hooks().On(domain.AfterUpdate, func(ctx context.Context, p *product.Product) error {
		_ = audit.LogChange(ctx, "product", p.ID, postgres.AuditActionUpdate, map[string]any{
			"name":     p.Name,
			"hsn_code": p.HSNCode,
			"gst_rate": p.GSTRate,
			"version":  p.Version,
		})
		return nil
	})

	products.Hooks().On(domain.AfterDelete, func(ctx context.Context, p *product.Product) error {
		_ = audit.LogChange(ctx, "product", p.ID, postgres.AuditActionDelete, map[string]any{
			"name": p.Name,
			"code": p.Code,
		})
		return nil
	})
}

package salesreturn

import (
	"context"
	"fmt"
	"time"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/id"
	"pharmabill/internal/core/tx"
	"pharmabill/internal/domain"
	"pharmabill/internal/domain/documents/invoice"
	"pharmabill/internal/domain/posting"
	"pharmabill/internal/gst"
	"pharmabill/pkg/logger"
	"pharmabill/pkg/numerator"
)

// CreateRequest describes a return against an invoice.
type CreateRequest struct {
	InvoiceID id.ID
	Date      time.Time
	Reason    string
	Notes     string
	Lines     []gst.ReturnLine
}

// Service provides business operations for sales returns.
type Service struct {
	repo          Repository
	invoices      invoice.Repository
	postingEngine *posting.Engine
	numerator     *numerator.Service
	txManager     tx.Manager
}

// NewService creates a new sales return service.
func NewService(repo Repository, invoices invoice.Repository, postingEngine *posting.Engine, num *numerator.Service, txManager tx.Manager) *Service {
	return &Service{
		repo:          repo,
		invoices:      invoices,
		postingEngine: postingEngine,
		numerator:     num,
		txManager:     txManager,
	}
}

// Create values and persists a credit note against the original invoice.
//
// The original invoice lines are locked for the duration of the
// transaction, so concurrent returns against the same invoice serialize
// and the returnable-quantity check stays correct.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*SalesReturn, error) {
	if len(req.Lines) == 0 {
		return nil, apperror.NewEmptyDocument("sales_return")
	}

	var doc *SalesReturn
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		orig, err := s.invoices.GetByID(ctx, req.InvoiceID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("invoice", req.InvoiceID.String())
			}
			return err
		}

		origLines, err := s.invoices.GetLinesForUpdate(ctx, req.InvoiceID)
		if err != nil {
			return fmt.Errorf("lock invoice lines: %w", err)
		}

		originals := make([]gst.OriginalLine, len(origLines))
		for i, l := range origLines {
			originals[i] = gst.OriginalLine{
				ProductID:        l.ProductID,
				BatchID:          l.BatchID,
				HSNCode:          l.HSNCode,
				Quantity:         l.Quantity,
				ReturnedQuantity: l.ReturnedQuantity,
				UnitPrice:        l.UnitPrice,
				GSTRate:          l.GSTRate,
				CessRate:         l.CessRate,
				Discount:         l.Discount,
			}
		}

		totals, items, err := gst.ComputeReturn(originals, orig.TaxType, orig.ManualCessRate, req.Lines, "sales_return")
		if err != nil {
			return err
		}

		doc = New(orig.OrganizationID, orig.ID, orig.CustomerID)
		doc.TaxType = orig.TaxType
		doc.ManualCessRate = orig.ManualCessRate
		doc.Reason = req.Reason
		doc.Notes = req.Notes
		if !req.Date.IsZero() {
			doc.Date = req.Date
		}
		doc.ApplyComputation(totals, items)

		if err := doc.Validate(ctx); err != nil {
			return err
		}

		cfg := numerator.DefaultConfig("CRN")
		number, err := s.numerator.GetNextNumber(ctx, doc.OrganizationID, cfg, nil, doc.Date)
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		doc.Number = number

		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		// Consume returnable balance on the locked original lines.
		for _, req := range req.Lines {
			for _, ol := range origLines {
				if ol.ProductID == req.ProductID && ol.BatchID == req.BatchID {
					if err := s.invoices.AddReturnedQuantity(ctx, ol.LineID, req.Quantity); err != nil {
						return fmt.Errorf("update returned quantity: %w", err)
					}
					break
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "sales return created",
		"id", doc.ID,
		"number", doc.Number,
		"invoice_id", doc.InvoiceID,
		"grand_total", doc.GrandTotal)

	return doc, nil
}

// GetByID retrieves a sales return with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*SalesReturn, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("sales_return", docID.String())
		}
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

// Post restocks the returned goods.
func (s *Service) Post(ctx context.Context, docID id.ID) error {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	return s.postingEngine.Post(ctx, doc, func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	})
}

// Unpost reverses the restock movements.
func (s *Service) Unpost(ctx context.Context, docID id.ID) error {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	return s.postingEngine.Unpost(ctx, doc, func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	})
}

// List retrieves sales returns with filtering.
func (s *Service) List(ctx context.Context, filter domain.DocumentFilter) (domain.ListResult[*SalesReturn], error) {
	return s.repo.List(ctx, filter)
}

// ListByInvoice retrieves all credit notes against an invoice.
func (s *Service) ListByInvoice(ctx context.Context, invoiceID id.ID) ([]*SalesReturn, error) {
	return s.repo.ListByInvoice(ctx, invoiceID)
}

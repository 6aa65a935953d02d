package purchasereturn

import (
	"context"
	"fmt"
	"time"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/id"
	"pharmabill/internal/core/tx"
	"pharmabill/internal/domain"
	"pharmabill/internal/domain/documents/purchase"
	"pharmabill/internal/domain/posting"
	"pharmabill/internal/gst"
	"pharmabill/pkg/logger"
	"pharmabill/pkg/numerator"
)

// CreateRequest describes a return against a purchase.
type CreateRequest struct {
	PurchaseID id.ID
	Date       time.Time
	Reason     string
	Notes      string
	Lines      []gst.ReturnLine
}

// Service provides business operations for purchase returns.
type Service struct {
	repo          Repository
	purchases     purchase.Repository
	postingEngine *posting.Engine
	numerator     *numerator.Service
	txManager     tx.Manager
}

// NewService creates a new purchase return service.
func NewService(repo Repository, purchases purchase.Repository, postingEngine *posting.Engine, num *numerator.Service, txManager tx.Manager) *Service {
	return &Service{
		repo:          repo,
		purchases:     purchases,
		postingEngine: postingEngine,
		numerator:     num,
		txManager:     txManager,
	}
}

// Create values and persists a debit note against the original purchase.
// The original purchase lines stay locked until commit so concurrent
// debit notes serialize on the returnable-quantity check.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*PurchaseReturn, error) {
	if len(req.Lines) == 0 {
		return nil, apperror.NewEmptyDocument("purchase_return")
	}

	var doc *PurchaseReturn
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		orig, err := s.purchases.GetByID(ctx, req.PurchaseID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("purchase", req.PurchaseID.String())
			}
			return err
		}

		origLines, err := s.purchases.GetLinesForUpdate(ctx, req.PurchaseID)
		if err != nil {
			return fmt.Errorf("lock purchase lines: %w", err)
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

		totals, items, err := gst.ComputeReturn(originals, orig.TaxType, orig.ManualCessRate, req.Lines, "purchase_return")
		if err != nil {
			return err
		}

		doc = New(orig.OrganizationID, orig.ID, orig.SupplierID)
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

		cfg := numerator.DefaultConfig("DBN")
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

		for _, req := range req.Lines {
			for _, ol := range origLines {
				if ol.ProductID == req.ProductID && ol.BatchID == req.BatchID {
					if err := s.purchases.AddReturnedQuantity(ctx, ol.LineID, req.Quantity); err != nil {
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

	logger.Info(ctx, "purchase return created",
		"id", doc.ID,
		"number", doc.Number,
		"purchase_id", doc.PurchaseID,
		"grand_total", doc.GrandTotal)

	return doc, nil
}

// GetByID retrieves a purchase return with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*PurchaseReturn, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("purchase_return", docID.String())
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

// Post issues the returned goods out of stock.
func (s *Service) Post(ctx context.Context, docID id.ID) error {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	return s.postingEngine.Post(ctx, doc, func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	})
}

// Unpost reverses the issue movements.
func (s *Service) Unpost(ctx context.Context, docID id.ID) error {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	return s.postingEngine.Unpost(ctx, doc, func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	})
}

// List retrieves purchase returns with filtering.
func (s *Service) List(ctx context.Context, filter domain.DocumentFilter) (domain.ListResult[*PurchaseReturn], error) {
	return s.repo.List(ctx, filter)
}

// ListByPurchase retrieves all debit notes against a purchase.
func (s *Service) ListByPurchase(ctx context.Context, purchaseID id.ID) ([]*PurchaseReturn, error) {
	return s.repo.ListByPurchase(ctx, purchaseID)
}

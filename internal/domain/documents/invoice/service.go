package invoice

import (
	"context"
	"fmt"

	"pharmabill/internal/core/appctx"
	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/id"
	"pharmabill/internal/core/tx"
	"pharmabill/internal/core/types"
	"pharmabill/internal/domain"
	"pharmabill/internal/domain/posting"
	"pharmabill/internal/gst"
	"pharmabill/pkg/logger"
	"pharmabill/pkg/numerator"
)

// Service provides business operations for invoices.
type Service struct {
	repo          Repository
	postingEngine *posting.Engine
	numerator     *numerator.Service
	txManager     tx.Manager
	hooks         *domain.HookRegistry[*Invoice]
}

// NewService creates a new invoice service.
func NewService(repo Repository, postingEngine *posting.Engine, num *numerator.Service, txManager tx.Manager) *Service {
	return &Service{
		repo:          repo,
		postingEngine: postingEngine,
		numerator:     num,
		txManager:     txManager,
		hooks:         domain.NewHookRegistry[*Invoice](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*Invoice] {
	return s.hooks
}

// Create computes totals and persists a new invoice.
func (s *Service) Create(ctx context.Context, doc *Invoice) error {
	if err := s.hooks.Run(ctx, domain.BeforeCreate, doc); err != nil {
		return err
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if err := doc.Recalculate(); err != nil {
		return err
	}

	// Statutory numbering must be gap-free, so the strict strategy.
	if doc.Number == "" {
		cfg := numerator.DefaultConfig("INV")
		number, err := s.numerator.GetNextNumber(ctx, doc.OrganizationID, cfg, nil, doc.Date)
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		doc.Number = number
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.Run(ctx, domain.AfterCreate, doc); err != nil {
		logger.Warn(ctx, "after-create hook failed", "error", err)
	}

	logger.Info(ctx, "invoice created",
		"id", doc.ID,
		"number", doc.Number,
		"grand_total", doc.GrandTotal)

	return nil
}

// GetByID retrieves an invoice with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Invoice, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("invoice", docID.String())
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

// Update recomputes totals and updates an unposted invoice.
func (s *Service) Update(ctx context.Context, doc *Invoice) error {
	if err := s.hooks.Run(ctx, domain.BeforeUpdate, doc); err != nil {
		return err
	}

	if err := doc.CanModify(); err != nil {
		return err
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if err := doc.Recalculate(); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
}

// Delete soft-deletes an unposted invoice.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	if doc.Posted {
		return doc.CanModify()
	}

	return s.repo.Delete(ctx, docID)
}

// Post applies stock movements and marks the invoice posted.
func (s *Service) Post(ctx context.Context, docID id.ID) error {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	if doc.IsBackdated() {
		logger.Info(ctx, "posting backdated invoice", "id", doc.ID, "date", doc.Date)
	}

	if err := s.postingEngine.Post(ctx, doc, func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	}); err != nil {
		return err
	}

	if err := s.hooks.Run(ctx, domain.AfterPost, doc); err != nil {
		logger.Warn(ctx, "after-post hook failed", "error", err)
	}
	return nil
}

// Unpost reverses stock movements.
func (s *Service) Unpost(ctx context.Context, docID id.ID) error {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	if err := s.postingEngine.Unpost(ctx, doc, func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	}); err != nil {
		return err
	}

	if err := s.hooks.Run(ctx, domain.AfterUnpost, doc); err != nil {
		logger.Warn(ctx, "after-unpost hook failed", "error", err)
	}
	return nil
}

// List retrieves invoices with filtering.
func (s *Service) List(ctx context.Context, filter domain.DocumentFilter) (domain.ListResult[*Invoice], error) {
	return s.repo.List(ctx, filter)
}

// ApplyPayment records a payment against the invoice. The state
// transition and the settlement row commit in one transaction; a zero
// amount is a no-op and leaves no row.
func (s *Service) ApplyPayment(ctx context.Context, docID id.ID, amount types.Money, method, reference string) (*Invoice, error) {
	var doc *Invoice
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.GetByID(ctx, docID)
		if err != nil {
			return err
		}

		state := gst.RestorePaymentState(doc.GrandTotal, doc.PaidAmount)
		next, err := gst.ApplyPayment(state, amount)
		if err != nil {
			return err
		}

		doc.PaidAmount = next.PaidAmount
		doc.BalanceAmount = next.BalanceAmount
		doc.PaymentStatus = next.Status
		doc.Touch()

		if err := s.repo.Update(ctx, doc); err != nil {
			return err
		}

		if amount.IsPositive() {
			p := domain.NewPayment(doc.OrganizationID, doc.ID, doc.GetDocumentType(), amount, method, reference)
			p.CreatedBy = appctx.GetUserID(ctx)
			if err := s.repo.AddPayment(ctx, p); err != nil {
				return fmt.Errorf("add payment: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.hooks.Run(ctx, domain.AfterPayment, doc); err != nil {
		logger.Warn(ctx, "after-payment hook failed", "error", err)
	}

	logger.Info(ctx, "payment applied",
		"invoice_id", doc.ID,
		"amount", amount,
		"method", method,
		"status", doc.PaymentStatus)

	return doc, nil
}

// ListPayments returns the invoice's settlement trail.
func (s *Service) ListPayments(ctx context.Context, docID id.ID) ([]*domain.Payment, error) {
	return s.repo.ListPayments(ctx, docID)
}

package expense

import (
	"context"
	"fmt"
	"time"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/id"
	"pharmabill/internal/core/tx"
	"pharmabill/internal/core/types"
	"pharmabill/internal/domain"
	"pharmabill/pkg/logger"
	"pharmabill/pkg/numerator"
)

// Service provides business operations for expenses.
type Service struct {
	repo      Repository
	numerator *numerator.Service
	txManager tx.Manager
}

// NewService creates a new expense service.
func NewService(repo Repository, num *numerator.Service, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		numerator: num,
		txManager: txManager,
	}
}

// Create persists a new expense. Expenses have no separate posting
// step; they take effect immediately.
func (s *Service) Create(ctx context.Context, doc *Expense) error {
	doc.Posted = true

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	// Expenses are internal documents; gaps in numbering are acceptable,
	// so the cached strategy saves a round trip per entry.
	if doc.Number == "" {
		cfg := numerator.DefaultConfig("EXP")
		opts := &numerator.Options{Strategy: numerator.StrategyCached}
		number, err := s.numerator.GetNextNumber(ctx, doc.OrganizationID, cfg, opts, doc.Date)
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		doc.Number = number
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, doc)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "expense created",
		"id", doc.ID,
		"number", doc.Number,
		"category", doc.Category,
		"amount", doc.Amount)

	return nil
}

// GetByID retrieves an expense.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Expense, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("expense", docID.String())
		}
		return nil, err
	}
	return doc, nil
}

// Update modifies an expense.
func (s *Service) Update(ctx context.Context, doc *Expense) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	})
}

// Delete soft-deletes an expense.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	return s.repo.Delete(ctx, docID)
}

// List retrieves expenses with filtering.
func (s *Service) List(ctx context.Context, filter domain.DocumentFilter) (domain.ListResult[*Expense], error) {
	return s.repo.List(ctx, filter)
}

// SummaryByCategory totals expenses per category for a date range.
func (s *Service) SummaryByCategory(ctx context.Context, organizationID id.ID, from, to time.Time) (map[Category]types.Money, error) {
	return s.repo.SumByCategory(ctx, organizationID, from, to)
}

package product

import (
	"context"
	"fmt"
	"time"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/id"
	"pharmabill/internal/core/tx"
	"pharmabill/internal/domain"
	"pharmabill/pkg/numerator"
)

// Service provides business logic for the Product catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Product]
	repo      Repository
	batches   BatchRepository
	txManager tx.Manager
	numerator *numerator.Service
}

// NewService creates a new Product service.
func NewService(repo Repository, batches BatchRepository, txManager tx.Manager, num *numerator.Service) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "product",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		batches:        batches,
		txManager:      txManager,
		numerator:      num,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)

	return svc
}

// prepareForCreate generates the product code when not provided.
func (s *Service) prepareForCreate(ctx context.Context, p *Product) error {
	if p.Code == "" {
		cfg := numerator.Config{Prefix: "PRD", PadWidth: 5, ResetPeriod: "never"}
		code, err := s.numerator.GetNextNumber(ctx, p.OrganizationID, cfg, nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		p.Code = code
	}
	return nil
}

// FindByHSN lists products sharing an HSN code.
func (s *Service) FindByHSN(ctx context.Context, organizationID id.ID, hsnCode string) ([]*Product, error) {
	return s.repo.FindByHSN(ctx, organizationID, hsnCode)
}

// --- Batch operations ---

// AddBatch registers a stock batch for a product. A batch that is
// already past its expiry date is refused outright; short-dated stock
// is still accepted.
func (s *Service) AddBatch(ctx context.Context, batch *Batch) error {
	if err := batch.Validate(ctx); err != nil {
		return err
	}

	if batch.IsExpired(time.Now()) {
		return apperror.NewValidation("batch is already expired").
			WithDetail("batchNumber", batch.BatchNumber).
			WithDetail("expiryDate", batch.ExpiryDate)
	}

	exists, err := s.repo.Exists(ctx, batch.ProductID)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NewNotFound("product", batch.ProductID.String())
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.batches.Create(ctx, batch); err != nil {
			return fmt.Errorf("create batch: %w", err)
		}
		return nil
	})
}

// ListBatches returns all batches of a product.
func (s *Service) ListBatches(ctx context.Context, productID id.ID) ([]*Batch, error) {
	return s.batches.ListByProduct(ctx, productID)
}


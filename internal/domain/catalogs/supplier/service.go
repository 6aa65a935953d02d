package supplier

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

// Service provides business logic for the Supplier catalog.
type Service struct {
	*domain.CatalogService[*Supplier]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Supplier service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Supplier]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "supplier",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForSave)
	base.Hooks().On(domain.BeforeUpdate, svc.prepareForSave)

	return svc
}

// prepareForSave generates the code and checks GSTIN uniqueness.
func (s *Service) prepareForSave(ctx context.Context, sp *Supplier) error {
	if sp.Code == "" {
		cfg := numerator.Config{Prefix: "SUP", PadWidth: 5, ResetPeriod: "never"}
		code, err := s.numerator.GetNextNumber(ctx, sp.OrganizationID, cfg, nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		sp.Code = code
	}

	if sp.GSTIN != "" {
		existing, err := s.repo.FindByGSTIN(ctx, sp.OrganizationID, sp.GSTIN)
		if err != nil && !apperror.IsNotFound(err) {
			return err
		}
		if existing != nil && existing.ID != sp.ID {
			return apperror.NewDuplicate("supplier", "gstin", sp.GSTIN)
		}
	}

	return nil
}

// FindByGSTIN retrieves a supplier by GSTIN within an organization.
func (s *Service) FindByGSTIN(ctx context.Context, organizationID id.ID, gstin string) (*Supplier, error) {
	return s.repo.FindByGSTIN(ctx, organizationID, gstin)
}

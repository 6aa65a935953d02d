package customer

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

// Service provides business logic for the Customer catalog.
type Service struct {
	*domain.CatalogService[*Customer]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Customer service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Customer]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "customer",
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
func (s *Service) prepareForSave(ctx context.Context, c *Customer) error {
	if c.Code == "" {
		cfg := numerator.Config{Prefix: "CUS", PadWidth: 5, ResetPeriod: "never"}
		code, err := s.numerator.GetNextNumber(ctx, c.OrganizationID, cfg, nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		c.Code = code
	}

	if c.GSTIN != "" {
		existing, err := s.repo.FindByGSTIN(ctx, c.OrganizationID, c.GSTIN)
		if err != nil && !apperror.IsNotFound(err) {
			return err
		}
		if existing != nil && existing.ID != c.ID {
			return apperror.NewDuplicate("customer", "gstin", c.GSTIN)
		}
	}

	return nil
}

// FindByGSTIN retrieves a customer by GSTIN within an organization.
func (s *Service) FindByGSTIN(ctx context.Context, organizationID id.ID, gstin string) (*Customer, error) {
	return s.repo.FindByGSTIN(ctx, organizationID, gstin)
}

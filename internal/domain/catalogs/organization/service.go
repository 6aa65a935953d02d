package organization

import (
	"context"
	"fmt"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/id"
	"pharmabill/internal/core/tx"
	"pharmabill/internal/domain"
)

// Service provides business logic for the Organization catalog.
// Organizations are not themselves organization-scoped, so this service
// does not embed domain.CatalogService.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new Organization service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Create registers a new organization after checking GSTIN uniqueness.
func (s *Service) Create(ctx context.Context, org *Organization) error {
	if err := org.Validate(ctx); err != nil {
		return err
	}

	existing, err := s.repo.FindByGSTIN(ctx, org.GSTIN)
	if err != nil && !apperror.IsNotFound(err) {
		return err
	}
	if existing != nil && existing.ID != org.ID {
		return apperror.NewDuplicate("organization", "gstin", org.GSTIN)
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, org); err != nil {
			return fmt.Errorf("create organization: %w", err)
		}
		return nil
	})
}

// GetByID retrieves an organization.
func (s *Service) GetByID(ctx context.Context, orgID id.ID) (*Organization, error) {
	org, err := s.repo.GetByID(ctx, orgID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("organization", orgID.String())
		}
		return nil, err
	}
	return org, nil
}

// Update modifies an organization.
func (s *Service) Update(ctx context.Context, org *Organization) error {
	if err := org.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, org); err != nil {
			return fmt.Errorf("update organization: %w", err)
		}
		return nil
	})
}

// List retrieves organizations (admin operation).
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Organization], error) {
	return s.repo.List(ctx, filter)
}

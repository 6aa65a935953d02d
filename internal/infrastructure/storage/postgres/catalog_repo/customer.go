package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/id"
	"pharmabill/internal/domain/catalogs/customer"
	"pharmabill/internal/infrastructure/storage/postgres"
)

const customerTable = "cat_customers"

// CustomerRepo implements customer.Repository.
type CustomerRepo struct {
	*BaseCatalogRepo[*customer.Customer]
}

// NewCustomerRepo creates a new customer repository.
func NewCustomerRepo(txManager *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			customerTable,
			postgres.ExtractDBColumns[customer.Customer](),
			func() *customer.Customer { return &customer.Customer{} },
		),
	}
}

// FindByGSTIN retrieves a customer by GSTIN within an organization.
func (r *CustomerRepo) FindByGSTIN(ctx context.Context, organizationID id.ID, gstin string) (*customer.Customer, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"organization_id": organizationID}).
		Where(squirrel.Eq{"gstin": gstin}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	c, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("customer", gstin)
		}
		return nil, err
	}
	return c, nil
}

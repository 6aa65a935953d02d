package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/id"
	"pharmabill/internal/domain/catalogs/supplier"
	"pharmabill/internal/infrastructure/storage/postgres"
)

const supplierTable = "cat_suppliers"

// SupplierRepo implements supplier.Repository.
type SupplierRepo struct {
	*BaseCatalogRepo[*supplier.Supplier]
}

// NewSupplierRepo creates a new supplier repository.
func NewSupplierRepo(txManager *postgres.TxManager) *SupplierRepo {
	return &SupplierRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			supplierTable,
			postgres.ExtractDBColumns[supplier.Supplier](),
			func() *supplier.Supplier { return &supplier.Supplier{} },
		),
	}
}

// FindByGSTIN retrieves a supplier by GSTIN within an organization.
func (r *SupplierRepo) FindByGSTIN(ctx context.Context, organizationID id.ID, gstin string) (*supplier.Supplier, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"organization_id": organizationID}).
		Where(squirrel.Eq{"gstin": gstin}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	s, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("supplier", gstin)
		}
		return nil, err
	}
	return s, nil
}

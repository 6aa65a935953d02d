package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/id"
	"pharmabill/internal/domain"
	"pharmabill/internal/domain/catalogs/organization"
	"pharmabill/internal/infrastructure/storage/postgres"
)

const organizationTable = "cat_organizations"

// OrganizationRepo implements organization.Repository.
// Organizations are the scoping root, so this repo does not embed
// BaseCatalogRepo: there is no organization_id or code column here.
type OrganizationRepo struct {
	txManager  *postgres.TxManager
	selectCols []string
}

// NewOrganizationRepo creates a new organization repository.
func NewOrganizationRepo(txManager *postgres.TxManager) *OrganizationRepo {
	return &OrganizationRepo{
		txManager:  txManager,
		selectCols: postgres.ExtractDBColumns[organization.Organization](),
	}
}

func (r *OrganizationRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *OrganizationRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().Select(r.selectCols...).From(organizationTable)
}

// Create inserts a new organization.
func (r *OrganizationRepo) Create(ctx context.Context, org *organization.Organization) error {
	q := r.builder().
		Insert(organizationTable).
		SetMap(postgres.StructToMap(org))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

// GetByID retrieves an organization.
func (r *OrganizationRepo) GetByID(ctx context.Context, orgID id.ID) (*organization.Organization, error) {
	org := &organization.Organization{}

	q := r.baseSelect().Where(squirrel.Eq{"id": orgID}).Limit(1)
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), org, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("organization", orgID.String())
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return org, nil
}

// Update modifies an organization with optimistic locking.
func (r *OrganizationRepo) Update(ctx context.Context, org *organization.Organization) error {
	data := postgres.StructToMap(org)
	delete(data, "id")
	delete(data, "version")

	q := r.builder().
		Update(organizationTable).
		SetMap(data).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": org.ID}).
		Where(squirrel.Eq{"version": org.Version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update organization: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("organization", org.ID.String())
	}
	return nil
}

// List retrieves organizations with filtering.
func (r *OrganizationRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*organization.Organization], error) {
	result := domain.ListResult[*organization.Organization]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()
	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"gstin": pattern},
		})
	}

	countQ := r.builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	q = q.OrderBy("name ASC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list organizations: %w", err)
	}
	return result, nil
}

// FindByGSTIN retrieves an organization by registration number.
func (r *OrganizationRepo) FindByGSTIN(ctx context.Context, gstin string) (*organization.Organization, error) {
	org := &organization.Organization{}

	q := r.baseSelect().
		Where(squirrel.Eq{"gstin": gstin}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), org, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("organization", gstin)
		}
		return nil, fmt.Errorf("find by gstin: %w", err)
	}
	return org, nil
}

package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/id"
	"pharmabill/internal/core/types"
	"pharmabill/internal/domain/catalogs/product"
	"pharmabill/internal/infrastructure/storage/postgres"
)

const (
	productTable = "cat_products"
	batchTable   = "cat_product_batches"
)

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			productTable,
			postgres.ExtractDBColumns[product.Product](),
			func() *product.Product { return &product.Product{} },
		),
	}
}

// FindByHSN lists products sharing an HSN code within an organization.
func (r *ProductRepo) FindByHSN(ctx context.Context, organizationID id.ID, hsnCode string) ([]*product.Product, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"organization_id": organizationID}).
		Where(squirrel.Eq{"hsn_code": hsnCode}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("name ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*product.Product
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("find by hsn: %w", err)
	}
	return items, nil
}

// BatchRepo implements product.BatchRepository.
type BatchRepo struct {
	txManager  *postgres.TxManager
	selectCols []string
}

// NewBatchRepo creates a new batch repository.
func NewBatchRepo(txManager *postgres.TxManager) *BatchRepo {
	return &BatchRepo{
		txManager:  txManager,
		selectCols: postgres.ExtractDBColumns[product.Batch](),
	}
}

func (r *BatchRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *BatchRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().Select(r.selectCols...).From(batchTable)
}

// Create inserts a new batch.
func (r *BatchRepo) Create(ctx context.Context, batch *product.Batch) error {
	q := r.builder().
		Insert(batchTable).
		SetMap(postgres.StructToMap(batch))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID retrieves a batch.
func (r *BatchRepo) GetByID(ctx context.Context, batchID id.ID) (*product.Batch, error) {
	return r.get(ctx, batchID, "")
}

// GetForUpdate locks the batch row for a stock movement.
func (r *BatchRepo) GetForUpdate(ctx context.Context, batchID id.ID) (*product.Batch, error) {
	return r.get(ctx, batchID, "FOR UPDATE")
}

func (r *BatchRepo) get(ctx context.Context, batchID id.ID, suffix string) (*product.Batch, error) {
	batch := &product.Batch{}

	q := r.baseSelect().Where(squirrel.Eq{"id": batchID})
	if suffix != "" {
		q = q.Suffix(suffix)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), batch, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("batch", batchID.String())
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return batch, nil
}

// Update modifies a batch.
func (r *BatchRepo) Update(ctx context.Context, batch *product.Batch) error {
	data := postgres.StructToMap(batch)
	delete(data, "id")

	q := r.builder().
		Update(batchTable).
		SetMap(data).
		Where(squirrel.Eq{"id": batch.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("batch", batch.ID.String())
	}
	return nil
}

// ListByProduct lists batches of a product, earliest expiry first.
func (r *BatchRepo) ListByProduct(ctx context.Context, productID id.ID) ([]*product.Batch, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"product_id": productID}).
		OrderBy("expiry_date ASC NULLS LAST", "batch_number ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*product.Batch
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	return items, nil
}

// AdjustQuantity atomically adds delta to the batch quantity. The
// CHECK-style guard in the WHERE clause rejects adjustments that would
// drive the quantity negative.
func (r *BatchRepo) AdjustQuantity(ctx context.Context, batchID id.ID, delta types.Money) error {
	sql := `
		UPDATE cat_product_batches
		SET quantity = quantity + $2
		WHERE id = $1 AND quantity + $2 >= 0
	`

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, batchID, delta)
	if err != nil {
		return fmt.Errorf("adjust batch quantity: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewInsufficientStock(batchID.String(), delta.Abs().String(), "unknown")
	}
	return nil
}

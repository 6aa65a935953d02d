// Package register_repo provides PostgreSQL implementations for
// accumulation register repositories.
package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"pharmabill/internal/core/entity"
	"pharmabill/internal/core/id"
	"pharmabill/internal/domain/registers/stock"
	"pharmabill/internal/infrastructure/storage/postgres"
)

const (
	stockMovementsTable = "reg_stock_movements"
	stockBalancesTable  = "reg_stock_balances"
)

var movementCols = postgres.ExtractDBColumns[entity.StockMovement]()

// StockRepo implements stock.Repository. Balances are maintained
// incrementally in reg_stock_balances; every movement insert or delete
// applies its signed quantity to the balance row in the same
// transaction.
type StockRepo struct {
	txManager *postgres.TxManager
}

// NewStockRepo creates a new stock register repository.
func NewStockRepo(txManager *postgres.TxManager) *StockRepo {
	return &StockRepo{txManager: txManager}
}

var _ stock.Repository = (*StockRepo)(nil)

func (r *StockRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// CreateMovements batch inserts movements and applies them to balances.
func (r *StockRepo) CreateMovements(ctx context.Context, movements []entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}

	q := r.builder().Insert(stockMovementsTable).Columns(movementCols...)
	for _, m := range movements {
		data := postgres.StructToMap(m)
		values := make([]any, 0, len(movementCols))
		for _, col := range movementCols {
			values = append(values, data[col])
		}
		q = q.Values(values...)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert movements: %w", err)
	}

	for _, m := range movements {
		if err := r.applyToBalance(ctx, m, false); err != nil {
			return err
		}
	}

	return nil
}

// DeleteMovementsByRecorder removes all movements for a document and
// reverses their effect on balances.
func (r *StockRepo) DeleteMovementsByRecorder(ctx context.Context, recorderID id.ID) error {
	movements, err := r.GetMovementsByRecorder(ctx, recorderID)
	if err != nil {
		return err
	}

	for _, m := range movements {
		if err := r.applyToBalance(ctx, m, true); err != nil {
			return err
		}
	}

	q := r.builder().Delete(stockMovementsTable).
		Where(squirrel.Eq{"recorder_id": recorderID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete movements: %w", err)
	}

	return nil
}

// applyToBalance upserts the balance row with the movement's signed
// quantity. reverse flips the sign for unposting.
func (r *StockRepo) applyToBalance(ctx context.Context, m entity.StockMovement, reverse bool) error {
	delta := m.SignedQuantity()
	if reverse {
		delta = delta.Neg()
	}

	sql := `
		INSERT INTO reg_stock_balances (organization_id, product_id, batch_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (organization_id, product_id, batch_id)
		DO UPDATE SET quantity = reg_stock_balances.quantity + EXCLUDED.quantity
	`

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, m.OrganizationID, m.ProductID, m.BatchID, delta); err != nil {
		return fmt.Errorf("apply movement to balance: %w", err)
	}
	return nil
}

// GetMovementsByRecorder retrieves all movements for a document.
func (r *StockRepo) GetMovementsByRecorder(ctx context.Context, recorderID id.ID) ([]entity.StockMovement, error) {
	q := r.builder().Select(movementCols...).
		From(stockMovementsTable).
		Where(squirrel.Eq{"recorder_id": recorderID}).
		OrderBy("date", "id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var movements []entity.StockMovement
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("select movements: %w", err)
	}
	return movements, nil
}

// GetBalance returns current balance for product+batch.
// A missing row means zero on hand, not an error.
func (r *StockRepo) GetBalance(ctx context.Context, productID, batchID id.ID) (entity.StockBalance, error) {
	return r.getBalance(ctx, productID, batchID, "")
}

// GetBalanceForUpdate returns the balance with a row lock so stock
// checks serialize with concurrent postings.
func (r *StockRepo) GetBalanceForUpdate(ctx context.Context, productID, batchID id.ID) (entity.StockBalance, error) {
	return r.getBalance(ctx, productID, batchID, "FOR UPDATE")
}

func (r *StockRepo) getBalance(ctx context.Context, productID, batchID id.ID, suffix string) (entity.StockBalance, error) {
	var balance entity.StockBalance

	q := r.builder().
		Select("organization_id", "product_id", "batch_id", "quantity").
		From(stockBalancesTable).
		Where(squirrel.Eq{"product_id": productID}).
		Where(squirrel.Eq{"batch_id": batchID}).
		Limit(1)
	if suffix != "" {
		q = q.Suffix(suffix)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return balance, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &balance, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity.StockBalance{
				ProductID: productID,
				BatchID:   batchID,
			}, nil
		}
		return balance, fmt.Errorf("get balance: %w", err)
	}

	return balance, nil
}

// GetBalancesByProduct returns non-zero balances across batches.
func (r *StockRepo) GetBalancesByProduct(ctx context.Context, productID id.ID) ([]entity.StockBalance, error) {
	q := r.builder().
		Select("organization_id", "product_id", "batch_id", "quantity").
		From(stockBalancesTable).
		Where(squirrel.Eq{"product_id": productID}).
		Where(squirrel.Expr("quantity <> 0")).
		OrderBy("batch_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var balances []entity.StockBalance
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &balances, sql, args...); err != nil {
		return nil, fmt.Errorf("select balances: %w", err)
	}
	return balances, nil
}

// GetMovementHistory returns movement history for a product.
func (r *StockRepo) GetMovementHistory(ctx context.Context, productID id.ID, filter stock.MovementFilter) ([]entity.StockMovement, error) {
	q := r.builder().Select(movementCols...).
		From(stockMovementsTable).
		Where(squirrel.Eq{"product_id": productID})

	if filter.RecordType != nil {
		q = q.Where(squirrel.Eq{"record_type": *filter.RecordType})
	}
	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.FromDate})
	}
	if filter.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.ToDate})
	}

	q = q.OrderBy("date DESC", "id DESC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var movements []entity.StockMovement
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("select history: %w", err)
	}
	return movements, nil
}

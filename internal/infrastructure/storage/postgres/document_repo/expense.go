package document_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"pharmabill/internal/core/id"
	"pharmabill/internal/core/types"
	"pharmabill/internal/domain/documents/expense"
	"pharmabill/internal/infrastructure/storage/postgres"
)

const expenseTable = "doc_expenses"

// ExpenseRepo implements expense.Repository.
type ExpenseRepo struct {
	*BaseDocumentRepo[*expense.Expense]
}

// NewExpenseRepo creates a new expense repository.
func NewExpenseRepo(txManager *postgres.TxManager) *ExpenseRepo {
	return &ExpenseRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			expenseTable,
			postgres.ExtractDBColumns[expense.Expense](),
			"",
			func() *expense.Expense { return &expense.Expense{} },
		),
	}
}

// SumByCategory totals posted expenses per category for a date range.
func (r *ExpenseRepo) SumByCategory(ctx context.Context, organizationID id.ID, from, to time.Time) (map[expense.Category]types.Money, error) {
	q := r.Builder().
		Select("category", "COALESCE(SUM(amount), 0) AS total").
		From(expenseTable).
		Where(squirrel.Eq{"organization_id": organizationID}).
		Where(squirrel.Eq{"posted": true}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		GroupBy("category")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.txManager.GetQuerier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("sum by category: %w", err)
	}
	defer rows.Close()

	result := make(map[expense.Category]types.Money)
	for rows.Next() {
		var category expense.Category
		var total types.Money
		if err := rows.Scan(&category, &total); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		result[category] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category totals: %w", err)
	}

	return result, nil
}

package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"pharmabill/internal/core/id"
	"pharmabill/internal/domain"
	"pharmabill/internal/infrastructure/storage/postgres"
)

const paymentsTable = "doc_payments"

// addPayment appends one settlement row. Rows are append-only; the
// accumulated amounts live on the document header.
func addPayment(ctx context.Context, txm *postgres.TxManager, p *domain.Payment) error {
	data := postgres.StructToMap(p)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in payment")
	}

	q := builder().Insert(paymentsTable).SetMap(data)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert payment: %w", err)
	}

	if _, err := txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}

	return nil
}

// listPayments returns a document's settlement trail, oldest first.
func listPayments(ctx context.Context, txm *postgres.TxManager, docID id.ID) ([]*domain.Payment, error) {
	cols := postgres.ExtractDBColumns[domain.Payment]()

	q := builder().
		Select(cols...).
		From(paymentsTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("date")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var payments []*domain.Payment
	if err := pgxscan.Select(ctx, txm.GetQuerier(ctx), &payments, sql, args...); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	return payments, nil
}

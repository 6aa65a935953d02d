// Package tx declares the transaction boundary the domain depends on.
// Services call Manager; the pgx-backed implementation lives in
// infrastructure/storage/postgres.
package tx

import "context"

// Manager runs a function inside a database transaction: commit when
// fn returns nil, rollback otherwise. A nested call joins the
// transaction already active in ctx.
type Manager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager adds read-only transactions for report queries that
// must see a consistent snapshot without taking write locks.
type ReadOnlyManager interface {
	Manager

	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

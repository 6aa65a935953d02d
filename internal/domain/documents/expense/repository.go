package expense

import (
	"context"
	"time"

	"pharmabill/internal/core/id"
	"pharmabill/internal/core/types"
	"pharmabill/internal/domain"
)

// Repository defines the interface for Expense persistence.
type Repository interface {
	Create(ctx context.Context, doc *Expense) error
	GetByID(ctx context.Context, id id.ID) (*Expense, error)
	Update(ctx context.Context, doc *Expense) error
	Delete(ctx context.Context, id id.ID) error
	List(ctx context.Context, filter domain.DocumentFilter) (domain.ListResult[*Expense], error)

	// SumByCategory totals expenses per category for a date range
	SumByCategory(ctx context.Context, organizationID id.ID, from, to time.Time) (map[Category]types.Money, error)
}

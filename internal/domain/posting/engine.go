// Package posting coordinates document posting: period policy checks,
// stock register movements and the document's posted flag, all within
// one transaction.
package posting

import (
	"context"
	"fmt"
	"time"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/entity"
	"pharmabill/internal/core/id"
	"pharmabill/internal/core/security"
	"pharmabill/internal/core/tx"
	"pharmabill/internal/domain/registers/stock"
	"pharmabill/pkg/logger"
)

// MovementSet collects register movements generated by a document.
type MovementSet struct {
	Stock []entity.StockMovement
}

// NewMovementSet creates an empty movement set.
func NewMovementSet() *MovementSet {
	return &MovementSet{}
}

// AddStock appends a stock movement.
func (m *MovementSet) AddStock(movement entity.StockMovement) {
	m.Stock = append(m.Stock, movement)
}

// Postable is implemented by documents that produce register movements.
type Postable interface {
	GetID() id.ID
	GetDate() time.Time
	GetDocumentType() string
	IsPosted() bool
	MarkPosted()
	MarkUnposted()

	// GenerateMovements builds the register rows for this document.
	GenerateMovements(ctx context.Context) (*MovementSet, error)
}

// Engine posts and unposts documents.
type Engine struct {
	stock     *stock.Service
	policy    security.PostingPolicy
	txManager tx.Manager
}

// NewEngine creates a posting engine.
func NewEngine(stockSvc *stock.Service, policy security.PostingPolicy, txManager tx.Manager) *Engine {
	return &Engine{
		stock:     stockSvc,
		policy:    policy,
		txManager: txManager,
	}
}

// Post applies the document's movements and marks it posted.
// saveDoc persists the document inside the same transaction.
func (e *Engine) Post(ctx context.Context, doc Postable, saveDoc func(ctx context.Context) error) error {
	if doc.IsPosted() {
		return apperror.NewBusinessRule(
			apperror.CodeDocumentPosted,
			"Document is already posted",
		).WithDetail("document_id", doc.GetID().String())
	}

	if err := e.policy.CanPost(ctx, doc.GetDate()); err != nil {
		return err
	}

	movements, err := doc.GenerateMovements(ctx)
	if err != nil {
		return fmt.Errorf("generate movements: %w", err)
	}

	// Issues must not drive stock negative; lock balances before writing.
	reservations := issueReservations(movements.Stock)

	err = e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if len(reservations) > 0 {
			if err := e.stock.CheckAndReserveStock(ctx, reservations); err != nil {
				return err
			}
		}

		if err := e.stock.RecordMovements(ctx, movements.Stock); err != nil {
			return err
		}

		doc.MarkPosted()
		return saveDoc(ctx)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "document posted",
		"document_id", doc.GetID(),
		"document_type", doc.GetDocumentType(),
		"movements", len(movements.Stock),
	)

	return nil
}

// Unpost reverses the document's movements and clears the posted flag.
func (e *Engine) Unpost(ctx context.Context, doc Postable, saveDoc func(ctx context.Context) error) error {
	if !doc.IsPosted() {
		return apperror.NewBusinessRule(
			"DOCUMENT_NOT_POSTED",
			"Document is not posted",
		).WithDetail("document_id", doc.GetID().String())
	}

	if err := e.policy.CanUnpost(ctx, doc.GetDate()); err != nil {
		return err
	}

	err := e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := e.stock.ReverseMovements(ctx, doc.GetID()); err != nil {
			return err
		}

		doc.MarkUnposted()
		return saveDoc(ctx)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "document unposted",
		"document_id", doc.GetID(),
		"document_type", doc.GetDocumentType(),
	)

	return nil
}

func issueReservations(movements []entity.StockMovement) []stock.Reservation {
	var out []stock.Reservation
	for _, m := range movements {
		if m.RecordType == entity.RecordTypeIssue {
			out = append(out, stock.Reservation{
				ProductID:   m.ProductID,
				BatchID:     m.BatchID,
				RequiredQty: m.Quantity,
			})
		}
	}
	return out
}

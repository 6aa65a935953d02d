package stock

import (
	"context"
	"fmt"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/entity"
	"pharmabill/internal/core/id"
	"pharmabill/internal/core/types"
	"pharmabill/pkg/logger"
)

// Service provides business operations for the stock register.
// Transactions are managed by the caller (posting engine).
type Service struct {
	repo Repository
}

// NewService creates a new stock register service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RecordMovements records stock movements from a document posting.
// Called during document posting within a transaction.
func (s *Service) RecordMovements(ctx context.Context, movements []entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}

	for i, m := range movements {
		if !m.Quantity.IsPositive() {
			return apperror.NewValidation(fmt.Sprintf("movement %d: quantity must be positive", i))
		}
		if id.IsNil(m.RecorderID) {
			return apperror.NewValidation(fmt.Sprintf("movement %d: recorder_id is required", i))
		}
	}

	if err := s.repo.CreateMovements(ctx, movements); err != nil {
		return fmt.Errorf("create movements: %w", err)
	}

	logger.Info(ctx, "recorded stock movements",
		"count", len(movements),
		"recorder_id", movements[0].RecorderID,
	)

	return nil
}

// ReverseMovements removes movements for a document (used during unposting).
func (s *Service) ReverseMovements(ctx context.Context, recorderID id.ID) error {
	if err := s.repo.DeleteMovementsByRecorder(ctx, recorderID); err != nil {
		return fmt.Errorf("delete movements: %w", err)
	}

	logger.Info(ctx, "reversed stock movements", "recorder_id", recorderID)

	return nil
}

// CheckAndReserveStock validates stock availability with pessimistic locking.
// Should be called within a transaction before creating issue movements.
func (s *Service) CheckAndReserveStock(ctx context.Context, items []Reservation) error {
	for _, item := range items {
		balance, err := s.repo.GetBalanceForUpdate(ctx, item.ProductID, item.BatchID)
		if err != nil {
			return fmt.Errorf("get balance for %s: %w", item.ProductID, err)
		}

		if balance.Quantity.LessThan(item.RequiredQty) {
			return apperror.NewInsufficientStock(
				item.ProductID.String(),
				item.RequiredQty.String(),
				balance.Quantity.String(),
			)
		}
	}

	return nil
}

// GetProductAvailability returns available quantity across batches.
func (s *Service) GetProductAvailability(ctx context.Context, productID id.ID) (types.Money, error) {
	balances, err := s.repo.GetBalancesByProduct(ctx, productID)
	if err != nil {
		return types.Zero(), fmt.Errorf("get balances: %w", err)
	}

	total := types.Zero()
	for _, b := range balances {
		total = total.Add(b.Quantity)
	}

	return total, nil
}

// GetBatchBalances returns the per-batch balances of a product.
func (s *Service) GetBatchBalances(ctx context.Context, productID id.ID) ([]entity.StockBalance, error) {
	return s.repo.GetBalancesByProduct(ctx, productID)
}

// GetMovementHistory returns the register rows for a product.
func (s *Service) GetMovementHistory(ctx context.Context, productID id.ID, filter MovementFilter) ([]entity.StockMovement, error) {
	return s.repo.GetMovementHistory(ctx, productID, filter)
}

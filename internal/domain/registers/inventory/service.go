package inventory

import (
	"context"
	"fmt"
	"time"

	"coatline/internal/core/apperror"
	"coatline/internal/core/id"
	"coatline/pkg/logger"
)

// Service provides stock mutations for the raw-material register.
// Increase and Decrease must be called within the caller's transaction:
// they rely on the row lock taken by GetByItemForUpdate.
type Service struct {
	repo Repository
}

// NewService creates a new stock register service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Increase adds qty to the item's balance, creating the row at zero on
// first use.
func (s *Service) Increase(ctx context.Context, itemID id.ID, qty int64) error {
	if qty <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("qty", qty)
	}

	balance, err := s.repo.GetByItemForUpdate(ctx, itemID)
	if err != nil {
		if !apperror.IsNotFound(err) {
			return fmt.Errorf("get balance for %s: %w", itemID, err)
		}
		// First inbound for this item: start the ledger row at zero.
		balance = Balance{
			ID:         id.New(),
			RawsItemID: itemID,
			Qty:        0,
			UpdatedAt:  time.Now().UTC(),
		}
		if err := s.repo.Create(ctx, balance); err != nil {
			return fmt.Errorf("create balance for %s: %w", itemID, err)
		}
	}

	newQty := balance.Qty + qty
	if err := s.repo.SetQty(ctx, balance.ID, newQty); err != nil {
		return fmt.Errorf("set qty: %w", err)
	}

	logger.Info(ctx, "stock increased",
		"item_id", itemID.String(),
		"qty", qty,
		"balance", newQty,
	)
	return nil
}

// Decrease removes qty from the item's balance. Fails with an
// insufficient-stock error naming the available quantity when the
// balance would go negative.
func (s *Service) Decrease(ctx context.Context, itemID id.ID, qty int64) error {
	if qty <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("qty", qty)
	}

	balance, err := s.repo.GetByItemForUpdate(ctx, itemID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound("inventory", itemID.String())
		}
		return fmt.Errorf("get balance for %s: %w", itemID, err)
	}

	if balance.Qty < qty {
		return apperror.NewInsufficientStock(itemID.String(), qty, balance.Qty)
	}

	newQty := balance.Qty - qty
	if err := s.repo.SetQty(ctx, balance.ID, newQty); err != nil {
		return fmt.Errorf("set qty: %w", err)
	}

	logger.Info(ctx, "stock decreased",
		"item_id", itemID.String(),
		"qty", qty,
		"balance", newQty,
	)
	return nil
}

// GetBalance returns the current quantity for an item (zero when the
// row does not exist yet).
func (s *Service) GetBalance(ctx context.Context, itemID id.ID) (int64, error) {
	balance, err := s.repo.GetByItem(ctx, itemID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return 0, nil
		}
		return 0, err
	}
	return balance.Qty, nil
}

// Status lists current balances joined with item and supplier data.
func (s *Service) Status(ctx context.Context, keyword string) ([]StatusRow, error) {
	return s.repo.ListStatus(ctx, keyword)
}

package inventory

import (
	"context"

	"coatline/internal/core/id"
)

// Repository defines operations for the stock register.
type Repository interface {
	// GetByItem returns the balance row for an item.
	// Returns a not-found AppError when no row exists yet.
	GetByItem(ctx context.Context, itemID id.ID) (Balance, error)

	// GetByItemForUpdate returns the balance row with a row lock.
	// Must be called within a transaction.
	GetByItemForUpdate(ctx context.Context, itemID id.ID) (Balance, error)

	// Create inserts a new balance row.
	Create(ctx context.Context, balance Balance) error

	// SetQty writes the new quantity for a balance row.
	SetQty(ctx context.Context, balanceID id.ID, qty int64) error

	// ListStatus returns balances joined with item and supplier,
	// only for active items with active suppliers, keyword-filtered.
	ListStatus(ctx context.Context, keyword string) ([]StatusRow, error)
}

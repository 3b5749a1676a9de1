package salesitem

import (
	"context"

	"coatline/internal/core/id"
	"coatline/internal/domain"
)

// Repository defines the interface for SalesItem persistence.
type Repository interface {
	domain.CatalogRepository[*SalesItem]

	// GetRouting returns the routing steps ordered by seq,
	// with operation names joined in.
	GetRouting(ctx context.Context, itemID id.ID) ([]RoutingStep, error)

	// ReplaceRouting atomically swaps the item's routing for the given
	// steps and refreshes the total_operations counter.
	ReplaceRouting(ctx context.Context, itemID id.ID, steps []RoutingStep) error
}

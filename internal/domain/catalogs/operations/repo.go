package operations

import (
	"context"

	"coatline/internal/core/id"
	"coatline/internal/domain"
)

// OrderUpdate assigns a new position to one operation.
type OrderUpdate struct {
	ID             id.ID `json:"id"`
	OperationOrder int   `json:"operationOrder"`
}

// Repository defines the interface for Operation persistence.
type Repository interface {
	domain.CatalogRepository[*Operation]

	// ListOrdered returns all active operations sorted by operation_order.
	ListOrdered(ctx context.Context) ([]*Operation, error)

	// UpdateOrder applies a batch of position changes.
	UpdateOrder(ctx context.Context, updates []OrderUpdate) error

	// FirstPending returns the lowest-ordered pending operation,
	// locked for update.
	FirstPending(ctx context.Context) (*Operation, error)
}

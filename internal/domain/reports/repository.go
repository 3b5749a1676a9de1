package reports

import (
	"context"

	"coatline/internal/core/id"
)

// Repository defines report data access.
type Repository interface {
	// GetWorkOrder returns the work order sheet for a lot.
	GetWorkOrder(ctx context.Context, lotID id.ID) (*WorkOrder, error)
}

package partner

import (
	"context"

	"coatline/internal/core/id"
	"coatline/internal/domain"
)

// Repository defines the interface for Partner persistence.
type Repository interface {
	domain.CatalogRepository[*Partner]

	// FindByName retrieves a partner by exact name.
	FindByName(ctx context.Context, name string) (*Partner, error)

	// GetForUpdate retrieves a partner with row lock (for transactional updates).
	GetForUpdate(ctx context.Context, id id.ID) (*Partner, error)
}

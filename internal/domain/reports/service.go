package reports

import (
	"context"

	"coatline/internal/core/apperror"
	"coatline/internal/core/id"
	"coatline/internal/domain/catalogs/salesitem"
)

// Service provides report generation operations.
type Service struct {
	repo  Repository
	items *salesitem.Service
}

// NewService creates a new reports service.
func NewService(repo Repository, items *salesitem.Service) *Service {
	return &Service{repo: repo, items: items}
}

// GetWorkOrder builds the work order sheet for a lot, including the
// product's routing rendered as a single line.
func (s *Service) GetWorkOrder(ctx context.Context, lotID id.ID) (*WorkOrder, error) {
	order, err := s.repo.GetWorkOrder(ctx, lotID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("lot", lotID.String())
		}
		return nil, err
	}

	routing, err := s.items.RoutingInfo(ctx, order.SalesItemID)
	if err != nil {
		return nil, err
	}
	order.RoutingInfo = routing

	return order, nil
}

package salesitem

import (
	"context"
	"strings"

	"coatline/internal/core/apperror"
	"coatline/internal/core/id"
	"coatline/internal/core/tx"
	"coatline/internal/domain"
	"coatline/internal/domain/catalogs/partner"
)

// Service provides business logic for the SalesItem catalog.
type Service struct {
	*domain.CatalogService[*SalesItem]
	repo      Repository
	partners  partner.Repository
	txManager tx.Manager
}

// NewService creates a new SalesItem service.
func NewService(
	repo Repository,
	partners partner.Repository,
	txManager tx.Manager,
) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*SalesItem]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "sales item",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		partners:       partners,
		txManager:      txManager,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.checkCustomer)

	return svc
}

// prepareForCreate enforces code uniqueness and resolves the customer name.
func (s *Service) prepareForCreate(ctx context.Context, item *SalesItem) error {
	exists, err := s.repo.ExistsByCode(ctx, item.Code)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("sales item", "code", item.Code)
	}

	return s.checkCustomer(ctx, item)
}

// checkCustomer verifies the referenced partner exists, is a customer,
// and keeps the denormalized name current.
func (s *Service) checkCustomer(ctx context.Context, item *SalesItem) error {
	p, err := s.partners.GetByID(ctx, item.PartnerID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound("customer", item.PartnerID.String())
		}
		return err
	}
	if !p.IsCustomer() {
		return apperror.NewValidation("partner is not a customer").
			WithDetail("partnerId", item.PartnerID.String())
	}
	item.PartnerName = p.Name
	return nil
}

// GetRouting returns the item's routing steps in sequence order.
func (s *Service) GetRouting(ctx context.Context, itemID id.ID) ([]RoutingStep, error) {
	if _, err := s.GetByID(ctx, itemID); err != nil {
		return nil, err
	}
	return s.repo.GetRouting(ctx, itemID)
}

// ReplaceRouting swaps the item's routing for the given ordered operation ids.
// Steps are re-sequenced from 1 in the order given.
func (s *Service) ReplaceRouting(ctx context.Context, itemID id.ID, operationIDs []id.ID) error {
	if _, err := s.GetByID(ctx, itemID); err != nil {
		return err
	}

	steps := make([]RoutingStep, 0, len(operationIDs))
	seen := make(map[id.ID]bool, len(operationIDs))
	for i, opID := range operationIDs {
		if id.IsNil(opID) {
			return apperror.NewValidation("routing step has empty operation").
				WithDetail("index", i)
		}
		if seen[opID] {
			return apperror.NewValidation("routing repeats an operation").
				WithDetail("operationId", opID.String())
		}
		seen[opID] = true
		steps = append(steps, RoutingStep{
			SalesItemID: itemID,
			OperationID: opID,
			Seq:         i + 1,
		})
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.ReplaceRouting(ctx, itemID, steps)
	})
}

// RoutingInfo renders the routing as "Degrease > Coat > Cure" for work orders.
func (s *Service) RoutingInfo(ctx context.Context, itemID id.ID) (string, error) {
	steps, err := s.repo.GetRouting(ctx, itemID)
	if err != nil {
		return "", err
	}
	names := make([]string, 0, len(steps))
	for _, st := range steps {
		names = append(names, st.OperationName)
	}
	return strings.Join(names, " > "), nil
}

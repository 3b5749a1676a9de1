package rawsitem

import (
	"context"

	"coatline/internal/core/apperror"
	"coatline/internal/core/tx"
	"coatline/internal/domain"
	"coatline/internal/domain/catalogs/partner"
)

// Service provides business logic for the RawsItem catalog.
type Service struct {
	*domain.CatalogService[*RawsItem]
	repo     Repository
	partners partner.Repository
}

// NewService creates a new RawsItem service.
func NewService(
	repo Repository,
	partners partner.Repository,
	txManager tx.Manager,
) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*RawsItem]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "raws item",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		partners:       partners,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.checkSupplier)

	return svc
}

// prepareForCreate enforces code uniqueness and a valid supplier reference.
func (s *Service) prepareForCreate(ctx context.Context, item *RawsItem) error {
	exists, err := s.repo.ExistsByCode(ctx, item.Code)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("raws item", "code", item.Code)
	}

	return s.checkSupplier(ctx, item)
}

// checkSupplier verifies the referenced partner exists and is a supplier.
func (s *Service) checkSupplier(ctx context.Context, item *RawsItem) error {
	p, err := s.partners.GetByID(ctx, item.SupplierID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound("supplier", item.SupplierID.String())
		}
		return err
	}
	if !p.IsSupplier() {
		return apperror.NewValidation("partner is not a supplier").
			WithDetail("partnerId", item.SupplierID.String())
	}
	return nil
}

// ListEligible returns items selectable for a raw inbound:
// active items whose supplier is also active.
func (s *Service) ListEligible(ctx context.Context, keyword string) ([]EligibleItem, error) {
	return s.repo.ListEligible(ctx, keyword)
}

package partner

import (
	"context"
	"fmt"
	"time"

	"coatline/internal/core/apperror"
	"coatline/internal/core/id"
	"coatline/internal/core/tx"
	"coatline/internal/domain"
	"coatline/internal/domain/filter"
	"coatline/pkg/numerator"
)

// CodeSequence is the numbering configuration for generated partner
// codes, e.g. P-00001. The counter never resets.
func CodeSequence() numerator.Config {
	return numerator.Config{Prefix: "P", PadWidth: 5, ResetPeriod: "never"}
}

// Service provides business logic for the Partner catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Partner]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Partner service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	num *numerator.Service,
) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Partner]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  num,
		EntityName: "partner",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)

	return svc
}

// prepareForCreate handles code generation and uniqueness checks before create.
func (s *Service) prepareForCreate(ctx context.Context, p *Partner) error {
	if p.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, CodeSequence(), time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		p.Code = code
	}

	// Partner names are unique across the catalog
	exists, err := s.checkNameExists(ctx, p.Name, p.ID)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("partner", "name", p.Name)
	}

	return nil
}

// prepareForUpdate handles uniqueness checks before update.
func (s *Service) prepareForUpdate(ctx context.Context, p *Partner) error {
	exists, err := s.checkNameExists(ctx, p.Name, p.ID)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("partner", "name", p.Name)
	}

	return nil
}

// ListByType lists partners of one type, optionally keyword-filtered.
func (s *Service) ListByType(ctx context.Context, pType PartnerType, f domain.ListFilter) (domain.ListResult[*Partner], error) {
	if pType != "" {
		if !isValidPartnerType(pType) {
			return domain.ListResult[*Partner]{}, apperror.NewValidation("invalid partner type").
				WithDetail("value", string(pType))
		}
		f.Conditions = append(f.Conditions, filter.Eq("type", string(pType)))
	}
	return s.List(ctx, f)
}

// checkNameExists checks if the name is already used by another partner.
func (s *Service) checkNameExists(ctx context.Context, name string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		// Not found is OK; other errors must be propagated (DB errors, timeouts, etc.).
		if apperror.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return existing.ID != excludeID, nil
}

package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"coatline/internal/core/apperror"
	"coatline/internal/domain/catalogs/partner"
	"coatline/internal/infrastructure/storage/postgres"
)

const partnerTable = "cat_partners"

// PartnerRepo implements partner.Repository.
type PartnerRepo struct {
	*BaseCatalogRepo[*partner.Partner]
}

// NewPartnerRepo creates a new partner repository.
func NewPartnerRepo(txManager *postgres.TxManager) *PartnerRepo {
	return &PartnerRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			partnerTable,
			postgres.ExtractDBColumns[partner.Partner](),
			func() *partner.Partner { return &partner.Partner{} },
		),
	}
}

// FindByName retrieves a partner by exact name.
func (r *PartnerRepo) FindByName(ctx context.Context, name string) (*partner.Partner, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"name": name}).
		Limit(1)

	p, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("partner", name)
		}
		return nil, err
	}
	return p, nil
}

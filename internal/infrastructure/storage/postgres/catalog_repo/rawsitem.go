package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"coatline/internal/domain/catalogs/rawsitem"
	"coatline/internal/infrastructure/storage/postgres"
)

const rawsItemTable = "cat_raws_items"

// RawsItemRepo implements rawsitem.Repository.
type RawsItemRepo struct {
	*BaseCatalogRepo[*rawsitem.RawsItem]
}

// NewRawsItemRepo creates a new raws item repository.
func NewRawsItemRepo(txManager *postgres.TxManager) *RawsItemRepo {
	return &RawsItemRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			rawsItemTable,
			postgres.ExtractDBColumns[rawsitem.RawsItem](),
			func() *rawsitem.RawsItem { return &rawsitem.RawsItem{} },
		),
	}
}

// ListEligible returns active items belonging to active suppliers,
// keyword-filtered over code, name and supplier name.
func (r *RawsItemRepo) ListEligible(ctx context.Context, keyword string) ([]rawsitem.EligibleItem, error) {
	q := r.Builder().
		Select(
			"i.id",
			"i.code",
			"i.name",
			"p.name AS supplier_name",
			"i.manufacturer",
			"i.spec",
			"i.color",
		).
		From(rawsItemTable + " i").
		Join(partnerTable + " p ON p.id = i.supplier_id").
		Where(squirrel.Eq{"i.active": true}).
		Where(squirrel.Eq{"p.active": true}).
		OrderBy("i.code ASC")

	if keyword != "" {
		pattern := "%" + keyword + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"i.code": pattern},
			squirrel.ILike{"i.name": pattern},
			squirrel.ILike{"p.name": pattern},
		})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []rawsitem.EligibleItem
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list eligible items: %w", err)
	}
	return items, nil
}

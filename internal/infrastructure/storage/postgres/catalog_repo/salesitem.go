package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"coatline/internal/core/id"
	"coatline/internal/domain/catalogs/salesitem"
	"coatline/internal/infrastructure/storage/postgres"
)

const (
	salesItemTable = "cat_sales_items"
	routingTable   = "cat_sales_item_routing"
)

// SalesItemRepo implements salesitem.Repository.
type SalesItemRepo struct {
	*BaseCatalogRepo[*salesitem.SalesItem]
}

// NewSalesItemRepo creates a new sales item repository.
func NewSalesItemRepo(txManager *postgres.TxManager) *SalesItemRepo {
	return &SalesItemRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			salesItemTable,
			postgres.ExtractDBColumns[salesitem.SalesItem](),
			func() *salesitem.SalesItem { return &salesitem.SalesItem{} },
		),
	}
}

// GetRouting returns the item's routing steps in sequence order with
// operation names joined in.
func (r *SalesItemRepo) GetRouting(ctx context.Context, itemID id.ID) ([]salesitem.RoutingStep, error) {
	q := r.Builder().
		Select(
			"rt.sales_item_id",
			"rt.operation_id",
			"rt.seq",
			"op.name AS operation_name",
		).
		From(routingTable + " rt").
		Join(operationTable + " op ON op.id = rt.operation_id").
		Where(squirrel.Eq{"rt.sales_item_id": itemID}).
		OrderBy("rt.seq ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var steps []salesitem.RoutingStep
	if err := pgxscan.Select(ctx, r.Querier(ctx), &steps, sql, args...); err != nil {
		return nil, fmt.Errorf("get routing: %w", err)
	}
	return steps, nil
}

// ReplaceRouting swaps the item's routing for the given steps and
// refreshes the total_operations counter. Must be called within a
// transaction.
func (r *SalesItemRepo) ReplaceRouting(ctx context.Context, itemID id.ID, steps []salesitem.RoutingStep) error {
	querier := r.Querier(ctx)

	delSQL, delArgs, err := r.Builder().
		Delete(routingTable).
		Where(squirrel.Eq{"sales_item_id": itemID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := querier.Exec(ctx, delSQL, delArgs...); err != nil {
		return fmt.Errorf("clear routing: %w", err)
	}

	if len(steps) > 0 {
		ins := r.Builder().
			Insert(routingTable).
			Columns("sales_item_id", "operation_id", "seq")
		for _, step := range steps {
			ins = ins.Values(itemID, step.OperationID, step.Seq)
		}
		insSQL, insArgs, err := ins.ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		if _, err := querier.Exec(ctx, insSQL, insArgs...); err != nil {
			return fmt.Errorf("insert routing: %w", err)
		}
	}

	updSQL, updArgs, err := r.Builder().
		Update(salesItemTable).
		Set("total_operations", len(steps)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": itemID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	if _, err := querier.Exec(ctx, updSQL, updArgs...); err != nil {
		return fmt.Errorf("update operation count: %w", err)
	}

	return nil
}

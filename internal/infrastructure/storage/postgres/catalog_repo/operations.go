package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"coatline/internal/core/apperror"
	"coatline/internal/domain/catalogs/operations"
	"coatline/internal/infrastructure/storage/postgres"
)

const operationTable = "cat_operations"

// OperationRepo implements operations.Repository.
type OperationRepo struct {
	*BaseCatalogRepo[*operations.Operation]
}

// NewOperationRepo creates a new operation repository.
func NewOperationRepo(txManager *postgres.TxManager) *OperationRepo {
	return &OperationRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			operationTable,
			postgres.ExtractDBColumns[operations.Operation](),
			func() *operations.Operation { return &operations.Operation{} },
		),
	}
}

// ListOrdered returns all active operations in sequence order.
func (r *OperationRepo) ListOrdered(ctx context.Context) ([]*operations.Operation, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"active": true}).
		OrderBy("operation_order ASC", "created_at ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var ops []*operations.Operation
	if err := pgxscan.Select(ctx, r.Querier(ctx), &ops, sql, args...); err != nil {
		return nil, fmt.Errorf("list ordered: %w", err)
	}
	return ops, nil
}

// UpdateOrder applies a batch of position changes.
func (r *OperationRepo) UpdateOrder(ctx context.Context, updates []operations.OrderUpdate) error {
	querier := r.Querier(ctx)
	for _, u := range updates {
		sql, args, err := r.Builder().
			Update(operationTable).
			Set("operation_order", u.OperationOrder).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": u.ID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build update: %w", err)
		}
		result, err := querier.Exec(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		if result.RowsAffected() == 0 {
			return apperror.NewNotFound("operation", u.ID.String())
		}
	}
	return nil
}

// FirstPending returns the lowest-ordered pending operation with a row
// lock. Must be called within a transaction.
func (r *OperationRepo) FirstPending(ctx context.Context) (*operations.Operation, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.Eq{"status": operations.StatusPending}).
		OrderBy("operation_order ASC", "created_at ASC").
		Limit(1).
		Suffix("FOR UPDATE")

	op, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("operation", "pending")
		}
		return nil, err
	}
	return op, nil
}

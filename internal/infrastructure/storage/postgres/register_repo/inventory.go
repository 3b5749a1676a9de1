// Package register_repo provides PostgreSQL implementations for the
// accumulation registers.
package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"coatline/internal/core/apperror"
	"coatline/internal/core/id"
	"coatline/internal/domain/registers/inventory"
	"coatline/internal/infrastructure/storage/postgres"
)

const inventoryTable = "reg_raw_inventory"

// InventoryRepo implements inventory.Repository.
type InventoryRepo struct {
	txManager *postgres.TxManager
}

// NewInventoryRepo creates a new stock register repository.
func NewInventoryRepo(txManager *postgres.TxManager) *InventoryRepo {
	return &InventoryRepo{txManager: txManager}
}

func (r *InventoryRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *InventoryRepo) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

func (r *InventoryRepo) getByItem(ctx context.Context, itemID id.ID, lock bool) (inventory.Balance, error) {
	var balance inventory.Balance

	q := r.builder().
		Select("id", "raws_item_id", "qty", "updated_at").
		From(inventoryTable).
		Where(squirrel.Eq{"raws_item_id": itemID})
	if lock {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return balance, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), &balance, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return balance, apperror.NewNotFound("inventory", itemID.String())
		}
		return balance, fmt.Errorf("get balance: %w", err)
	}
	return balance, nil
}

// GetByItem returns the balance row for an item.
func (r *InventoryRepo) GetByItem(ctx context.Context, itemID id.ID) (inventory.Balance, error) {
	return r.getByItem(ctx, itemID, false)
}

// GetByItemForUpdate returns the balance row with a row lock.
func (r *InventoryRepo) GetByItemForUpdate(ctx context.Context, itemID id.ID) (inventory.Balance, error) {
	return r.getByItem(ctx, itemID, true)
}

// Create inserts a new balance row.
func (r *InventoryRepo) Create(ctx context.Context, balance inventory.Balance) error {
	sql, args, err := r.builder().
		Insert(inventoryTable).
		Columns("id", "raws_item_id", "qty", "updated_at").
		Values(balance.ID, balance.RawsItemID, balance.Qty, balance.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert balance: %w", err)
	}
	return nil
}

// SetQty writes the new quantity for a balance row.
func (r *InventoryRepo) SetQty(ctx context.Context, balanceID id.ID, qty int64) error {
	sql, args, err := r.builder().
		Update(inventoryTable).
		Set("qty", qty).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": balanceID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set qty: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("inventory", balanceID.String())
	}
	return nil
}

// ListStatus returns balances joined with item and supplier for active
// items with active suppliers.
func (r *InventoryRepo) ListStatus(ctx context.Context, keyword string) ([]inventory.StatusRow, error) {
	q := r.builder().
		Select(
			"b.raws_item_id",
			"i.code AS item_code",
			"i.name AS item_name",
			"i.classification",
			"i.spec",
			"i.color",
			"p.name AS supplier_name",
			"b.qty",
			"b.updated_at",
		).
		From(inventoryTable + " b").
		Join("cat_raws_items i ON i.id = b.raws_item_id").
		Join("cat_partners p ON p.id = i.supplier_id").
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

	var rows []inventory.StatusRow
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list status: %w", err)
	}
	return rows, nil
}

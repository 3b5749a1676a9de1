package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"coatline/internal/core/id"
	"coatline/internal/domain/documents/salesinbound"
	"coatline/internal/infrastructure/storage/postgres"
)

const salesInboundTable = "doc_sales_inbounds"

// SalesInboundRepo implements salesinbound.Repository.
type SalesInboundRepo struct {
	*BaseDocumentRepo[*salesinbound.SalesInbound]
}

// NewSalesInboundRepo creates a new lot repository.
func NewSalesInboundRepo(txManager *postgres.TxManager) *SalesInboundRepo {
	return &SalesInboundRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			salesInboundTable,
			postgres.ExtractDBColumns[salesinbound.SalesInbound](),
			func() *salesinbound.SalesInbound { return &salesinbound.SalesInbound{} },
		),
	}
}

// GetByIDForUpdate returns one lot with a row lock.
func (r *SalesInboundRepo) GetByIDForUpdate(ctx context.Context, docID id.ID) (*salesinbound.SalesInbound, error) {
	return r.GetForUpdate(ctx, docID)
}

func (r *SalesInboundRepo) historySelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(
			"d.id",
			"d.number",
			"d.date",
			"d.sales_item_id",
			"i.code AS item_code",
			"i.name AS item_name",
			"i.classification",
			"p.name AS customer_name",
			"d.qty",
			"d.remaining_qty",
			"d.outbound_processed",
			"d.cancelled",
			"d.created_at",
		).
		From(salesInboundTable + " d").
		Join("cat_sales_items i ON i.id = d.sales_item_id").
		Join("cat_partners p ON p.id = i.partner_id")
}

func (r *SalesInboundRepo) applyKeyword(q squirrel.SelectBuilder, keyword string) squirrel.SelectBuilder {
	if keyword == "" {
		return q
	}
	pattern := "%" + keyword + "%"
	return q.Where(squirrel.Or{
		squirrel.ILike{"d.number": pattern},
		squirrel.ILike{"i.code": pattern},
		squirrel.ILike{"i.name": pattern},
	})
}

// ListHistory returns lots joined with product and customer.
func (r *SalesInboundRepo) ListHistory(ctx context.Context, keyword string) ([]salesinbound.HistoryRow, error) {
	q := r.applyKeyword(r.historySelect(), keyword).
		OrderBy("d.created_at DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []salesinbound.HistoryRow
	if err := pgxscan.Select(ctx, r.Querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list lot history: %w", err)
	}
	return rows, nil
}

// ListOpen returns non-cancelled lots with remaining quantity, oldest
// first.
func (r *SalesInboundRepo) ListOpen(ctx context.Context, keyword string) ([]salesinbound.HistoryRow, error) {
	q := r.applyKeyword(r.historySelect(), keyword).
		Where(squirrel.Eq{"d.cancelled": false}).
		Where(squirrel.Eq{"d.outbound_processed": false}).
		Where(squirrel.Gt{"d.remaining_qty": 0}).
		OrderBy("d.created_at ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []salesinbound.HistoryRow
	if err := pgxscan.Select(ctx, r.Querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list open lots: %w", err)
	}
	return rows, nil
}

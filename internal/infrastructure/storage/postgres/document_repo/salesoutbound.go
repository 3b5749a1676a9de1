package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"coatline/internal/core/id"
	"coatline/internal/domain/documents/salesoutbound"
	"coatline/internal/infrastructure/storage/postgres"
)

const salesOutboundTable = "doc_sales_outbounds"

// SalesOutboundRepo implements salesoutbound.Repository.
type SalesOutboundRepo struct {
	*BaseDocumentRepo[*salesoutbound.SalesOutbound]
}

// NewSalesOutboundRepo creates a new shipment repository.
func NewSalesOutboundRepo(txManager *postgres.TxManager) *SalesOutboundRepo {
	return &SalesOutboundRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			salesOutboundTable,
			postgres.ExtractDBColumns[salesoutbound.SalesOutbound](),
			func() *salesoutbound.SalesOutbound { return &salesoutbound.SalesOutbound{} },
		),
	}
}

// GetByIDForUpdate returns one shipment with a row lock.
func (r *SalesOutboundRepo) GetByIDForUpdate(ctx context.Context, docID id.ID) (*salesoutbound.SalesOutbound, error) {
	return r.GetForUpdate(ctx, docID)
}

// ListHistory returns shipments joined with lot, product and customer.
func (r *SalesOutboundRepo) ListHistory(ctx context.Context, keyword string) ([]salesoutbound.HistoryRow, error) {
	q := r.Builder().
		Select(
			"d.id",
			"d.number",
			"d.date",
			"d.sales_inbound_id",
			"l.number AS lot_number",
			"i.code AS item_code",
			"i.name AS item_name",
			"p.name AS customer_name",
			"d.qty",
			"d.cancelled",
			"d.created_at",
		).
		From(salesOutboundTable + " d").
		Join(salesInboundTable + " l ON l.id = d.sales_inbound_id").
		Join("cat_sales_items i ON i.id = l.sales_item_id").
		Join("cat_partners p ON p.id = i.partner_id").
		OrderBy("d.created_at DESC")

	if keyword != "" {
		pattern := "%" + keyword + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"d.number": pattern},
			squirrel.ILike{"l.number": pattern},
			squirrel.ILike{"i.code": pattern},
			squirrel.ILike{"i.name": pattern},
		})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []salesoutbound.HistoryRow
	if err := pgxscan.Select(ctx, r.Querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list shipment history: %w", err)
	}
	return rows, nil
}

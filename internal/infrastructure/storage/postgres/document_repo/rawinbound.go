package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"coatline/internal/domain/documents/rawinbound"
	"coatline/internal/infrastructure/storage/postgres"
)

const rawInboundTable = "doc_raw_inbounds"

// RawInboundRepo implements rawinbound.Repository.
type RawInboundRepo struct {
	*BaseDocumentRepo[*rawinbound.RawInbound]
}

// NewRawInboundRepo creates a new raw inbound repository.
func NewRawInboundRepo(txManager *postgres.TxManager) *RawInboundRepo {
	return &RawInboundRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			rawInboundTable,
			postgres.ExtractDBColumns[rawinbound.RawInbound](),
			func() *rawinbound.RawInbound { return &rawinbound.RawInbound{} },
		),
	}
}

// ListHistory returns inbound rows joined with item and supplier.
func (r *RawInboundRepo) ListHistory(ctx context.Context, keyword string) ([]rawinbound.HistoryRow, error) {
	q := r.Builder().
		Select(
			"d.id",
			"d.number",
			"d.date",
			"d.raws_item_id",
			"i.code AS item_code",
			"i.name AS item_name",
			"i.spec",
			"i.color",
			"p.name AS supplier_name",
			"d.manufacturer",
			"d.manufacturing_date",
			"d.qty",
			"d.created_at",
		).
		From(rawInboundTable + " d").
		Join("cat_raws_items i ON i.id = d.raws_item_id").
		Join("cat_partners p ON p.id = i.supplier_id").
		OrderBy("d.created_at DESC")

	if keyword != "" {
		pattern := "%" + keyword + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"d.number": pattern},
			squirrel.ILike{"i.code": pattern},
			squirrel.ILike{"i.name": pattern},
		})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []rawinbound.HistoryRow
	if err := pgxscan.Select(ctx, r.Querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list inbound history: %w", err)
	}
	return rows, nil
}

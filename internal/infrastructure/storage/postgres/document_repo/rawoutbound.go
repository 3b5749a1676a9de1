package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"coatline/internal/domain/documents/rawoutbound"
	"coatline/internal/infrastructure/storage/postgres"
)

const rawOutboundTable = "doc_raw_outbounds"

// RawOutboundRepo implements rawoutbound.Repository.
type RawOutboundRepo struct {
	*BaseDocumentRepo[*rawoutbound.RawOutbound]
}

// NewRawOutboundRepo creates a new raw outbound repository.
func NewRawOutboundRepo(txManager *postgres.TxManager) *RawOutboundRepo {
	return &RawOutboundRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			rawOutboundTable,
			postgres.ExtractDBColumns[rawoutbound.RawOutbound](),
			func() *rawoutbound.RawOutbound { return &rawoutbound.RawOutbound{} },
		),
	}
}

// ListHistory returns outbound rows joined with item and supplier.
func (r *RawOutboundRepo) ListHistory(ctx context.Context, keyword string) ([]rawoutbound.HistoryRow, error) {
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
			"d.qty",
			"d.created_at",
		).
		From(rawOutboundTable + " d").
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

	var rows []rawoutbound.HistoryRow
	if err := pgxscan.Select(ctx, r.Querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list outbound history: %w", err)
	}
	return rows, nil
}

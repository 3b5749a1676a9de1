// Package report_repo provides PostgreSQL implementations for report
// queries.
package report_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"coatline/internal/core/apperror"
	"coatline/internal/core/id"
	"coatline/internal/domain/reports"
	"coatline/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txManager *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txManager: txManager}
}

// GetWorkOrder returns the work order sheet header for a lot.
func (r *ReportRepo) GetWorkOrder(ctx context.Context, lotID id.ID) (*reports.WorkOrder, error) {
	q := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select(
			"l.id AS lot_id",
			"l.number AS lot_number",
			"l.date AS order_date",
			"p.name AS customer_name",
			"i.id AS sales_item_id",
			"i.code AS item_code",
			"i.name AS item_name",
			"i.classification",
			"i.color",
			"i.coating_method",
			"i.image_path",
			"l.qty",
			"l.remaining_qty",
			"l.remark",
		).
		From("doc_sales_inbounds l").
		Join("cat_sales_items i ON i.id = l.sales_item_id").
		Join("cat_partners p ON p.id = i.partner_id").
		Where(squirrel.Eq{"l.id": lotID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	order := &reports.WorkOrder{}
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), order, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("lot", lotID.String())
		}
		return nil, fmt.Errorf("get work order: %w", err)
	}
	return order, nil
}

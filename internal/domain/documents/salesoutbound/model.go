// Package salesoutbound provides the product shipment registrar.
// Each record receives an OUT number and draws down the remaining
// quantity of its production lot under a row lock.
package salesoutbound

import (
	"context"

	"coatline/internal/core/apperror"
	"coatline/internal/core/entity"
	"coatline/internal/core/id"
)

// NumberPrefix for shipment numbers (OUT-20260830-001).
const NumberPrefix = "OUT"

// SalesOutbound is one product shipment against a lot.
type SalesOutbound struct {
	entity.Document

	// SalesInboundID references the lot being shipped
	SalesInboundID id.ID `db:"sales_inbound_id" json:"salesInboundId"`

	// Qty shipped (units)
	Qty int64 `db:"qty" json:"qty"`
}

// Validate implements entity.Validatable interface.
func (d *SalesOutbound) Validate(ctx context.Context) error {
	if err := d.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(d.SalesInboundID) {
		return apperror.NewValidation("lot is required").
			WithDetail("field", "salesInboundId")
	}

	if d.Qty <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "qty")
	}

	return nil
}

// Package salesinbound provides the production-order (lot) registrar.
// Each record receives a LOT number and tracks how much of the ordered
// quantity is still waiting for outbound shipment.
package salesinbound

import (
	"context"

	"coatline/internal/core/apperror"
	"coatline/internal/core/entity"
	"coatline/internal/core/id"
)

// NumberPrefix for lot numbers (LOT-20260830-001).
const NumberPrefix = "LOT"

// SalesInbound is one production order lot.
type SalesInbound struct {
	entity.Document

	// SalesItemID references the ordered product
	SalesItemID id.ID `db:"sales_item_id" json:"salesItemId"`

	// Qty ordered (units)
	Qty int64 `db:"qty" json:"qty"`

	// RemainingQty not yet shipped; starts equal to Qty
	RemainingQty int64 `db:"remaining_qty" json:"remainingQty"`

	// OutboundProcessed is set once RemainingQty reaches zero
	OutboundProcessed bool `db:"outbound_processed" json:"outboundProcessed"`
}

// Validate implements entity.Validatable interface.
func (d *SalesInbound) Validate(ctx context.Context) error {
	if err := d.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(d.SalesItemID) {
		return apperror.NewValidation("item is required").
			WithDetail("field", "salesItemId")
	}

	if d.Qty <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "qty")
	}

	if d.RemainingQty < 0 || d.RemainingQty > d.Qty {
		return apperror.NewValidation("remaining quantity out of range").
			WithDetail("remaining_qty", d.RemainingQty)
	}

	return nil
}

// CanModify reports whether the lot still accepts edits or cancellation.
func (d *SalesInbound) CanModify() error {
	if err := d.Document.CanModify(); err != nil {
		return err
	}
	if d.OutboundProcessed {
		return apperror.NewInvalidState("Cannot modify a fully shipped lot").
			WithDetail("number", d.Number)
	}
	return nil
}

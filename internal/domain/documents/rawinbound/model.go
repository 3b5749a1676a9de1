// Package rawinbound provides the raw-material inbound registrar.
// Each record receives a MINC number and increases the stock register
// in the same transaction.
package rawinbound

import (
	"context"
	"time"

	"coatline/internal/core/apperror"
	"coatline/internal/core/entity"
	"coatline/internal/core/id"
)

// NumberPrefix for inbound document numbers (MINC-20260830-001).
const NumberPrefix = "MINC"

// RawInbound is one raw-material receipt.
type RawInbound struct {
	entity.Document

	// RawsItemID references the received item
	RawsItemID id.ID `db:"raws_item_id" json:"rawsItemId"`

	// Qty received (units)
	Qty int64 `db:"qty" json:"qty"`

	// ManufacturingDate stamped on the material lot
	ManufacturingDate *time.Time `db:"manufacturing_date" json:"manufacturingDate,omitempty"`

	// Manufacturer is copied from the item at registration time
	Manufacturer *string `db:"manufacturer" json:"manufacturer,omitempty"`
}

// Validate implements entity.Validatable interface.
func (d *RawInbound) Validate(ctx context.Context) error {
	if err := d.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(d.RawsItemID) {
		return apperror.NewValidation("item is required").
			WithDetail("field", "rawsItemId")
	}

	if d.Qty <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "qty")
	}

	return nil
}

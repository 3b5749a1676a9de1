// Package rawoutbound provides the raw-material outbound registrar.
// Each record receives a MOUT number and decreases the stock register
// in the same transaction; a release larger than the current balance is
// rejected.
package rawoutbound

import (
	"context"

	"coatline/internal/core/apperror"
	"coatline/internal/core/entity"
	"coatline/internal/core/id"
)

// NumberPrefix for outbound document numbers (MOUT-20260830-001).
const NumberPrefix = "MOUT"

// RawOutbound is one raw-material release.
type RawOutbound struct {
	entity.Document

	RawsItemID id.ID `db:"raws_item_id" json:"rawsItemId"`
	Qty        int64 `db:"qty" json:"qty"`
}

// Validate implements entity.Validatable interface.
func (d *RawOutbound) Validate(ctx context.Context) error {
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

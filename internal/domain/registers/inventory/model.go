// Package inventory provides the raw-material stock register.
// One balance row per raws item; inbound and outbound documents move it
// inside their own transaction under a row lock.
package inventory

import (
	"time"

	"coatline/internal/core/id"
)

// Balance is the current stock of one raws item.
type Balance struct {
	ID         id.ID     `db:"id" json:"id"`
	RawsItemID id.ID     `db:"raws_item_id" json:"rawsItemId"`
	Qty        int64     `db:"qty" json:"qty"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

// StatusRow is a balance joined with item and supplier for the
// inventory status report and the outbound pick list.
type StatusRow struct {
	RawsItemID     id.ID     `db:"raws_item_id" json:"rawsItemId"`
	ItemCode       string    `db:"item_code" json:"itemCode"`
	ItemName       string    `db:"item_name" json:"itemName"`
	Classification *string   `db:"classification" json:"classification,omitempty"`
	Spec           *string   `db:"spec" json:"spec,omitempty"`
	Color          *string   `db:"color" json:"color,omitempty"`
	SupplierName   string    `db:"supplier_name" json:"supplierName"`
	Qty            int64     `db:"qty" json:"qty"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

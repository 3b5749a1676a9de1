package rawinbound

import (
	"context"
	"time"

	"coatline/internal/core/id"
)

// HistoryRow is an inbound record joined with its item and supplier for
// the receipt history screen.
type HistoryRow struct {
	ID                id.ID      `db:"id" json:"id"`
	Number            string     `db:"number" json:"number"`
	Date              time.Time  `db:"date" json:"date"`
	RawsItemID        id.ID      `db:"raws_item_id" json:"rawsItemId"`
	ItemCode          string     `db:"item_code" json:"itemCode"`
	ItemName          string     `db:"item_name" json:"itemName"`
	Spec              *string    `db:"spec" json:"spec,omitempty"`
	Color             *string    `db:"color" json:"color,omitempty"`
	SupplierName      string     `db:"supplier_name" json:"supplierName"`
	Manufacturer      *string    `db:"manufacturer" json:"manufacturer,omitempty"`
	ManufacturingDate *time.Time `db:"manufacturing_date" json:"manufacturingDate,omitempty"`
	Qty               int64      `db:"qty" json:"qty"`
	CreatedAt         time.Time  `db:"created_at" json:"createdAt"`
}

// Repository defines storage operations for inbound documents.
type Repository interface {
	// Create inserts a new inbound document.
	Create(ctx context.Context, doc *RawInbound) error

	// GetByID returns one inbound document.
	GetByID(ctx context.Context, docID id.ID) (*RawInbound, error)

	// ListHistory returns inbound rows joined with item data, newest
	// first, keyword-filtered over number, item code and item name.
	ListHistory(ctx context.Context, keyword string) ([]HistoryRow, error)
}

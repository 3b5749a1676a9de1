package salesoutbound

import (
	"context"
	"time"

	"coatline/internal/core/id"
)

// HistoryRow is a shipment joined with its lot, product and customer
// for the shipment history screen.
type HistoryRow struct {
	ID             id.ID     `db:"id" json:"id"`
	Number         string    `db:"number" json:"number"`
	Date           time.Time `db:"date" json:"date"`
	SalesInboundID id.ID     `db:"sales_inbound_id" json:"salesInboundId"`
	LotNumber      string    `db:"lot_number" json:"lotNumber"`
	ItemCode       string    `db:"item_code" json:"itemCode"`
	ItemName       string    `db:"item_name" json:"itemName"`
	CustomerName   string    `db:"customer_name" json:"customerName"`
	Qty            int64     `db:"qty" json:"qty"`
	Cancelled      bool      `db:"cancelled" json:"cancelled"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

// Repository defines storage operations for shipments.
type Repository interface {
	// Create inserts a new shipment.
	Create(ctx context.Context, doc *SalesOutbound) error

	// GetByID returns one shipment.
	GetByID(ctx context.Context, docID id.ID) (*SalesOutbound, error)

	// GetByIDForUpdate returns one shipment with a row lock.
	// Must be called within a transaction.
	GetByIDForUpdate(ctx context.Context, docID id.ID) (*SalesOutbound, error)

	// Update writes shipment fields back with optimistic locking.
	Update(ctx context.Context, doc *SalesOutbound) error

	// ListHistory returns shipments joined with lot and product data,
	// newest first, keyword-filtered over number, lot number, item
	// code and item name.
	ListHistory(ctx context.Context, keyword string) ([]HistoryRow, error)
}

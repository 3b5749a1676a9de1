package salesinbound

import (
	"context"
	"time"

	"coatline/internal/core/id"
)

// HistoryRow is a lot joined with its product and customer for the
// order history screen.
type HistoryRow struct {
	ID                id.ID     `db:"id" json:"id"`
	Number            string    `db:"number" json:"number"`
	Date              time.Time `db:"date" json:"date"`
	SalesItemID       id.ID     `db:"sales_item_id" json:"salesItemId"`
	ItemCode          string    `db:"item_code" json:"itemCode"`
	ItemName          string    `db:"item_name" json:"itemName"`
	Classification    *string   `db:"classification" json:"classification,omitempty"`
	CustomerName      string    `db:"customer_name" json:"customerName"`
	Qty               int64     `db:"qty" json:"qty"`
	RemainingQty      int64     `db:"remaining_qty" json:"remainingQty"`
	OutboundProcessed bool      `db:"outbound_processed" json:"outboundProcessed"`
	Cancelled         bool      `db:"cancelled" json:"cancelled"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
}

// Repository defines storage operations for lots.
type Repository interface {
	// Create inserts a new lot.
	Create(ctx context.Context, doc *SalesInbound) error

	// GetByID returns one lot.
	GetByID(ctx context.Context, docID id.ID) (*SalesInbound, error)

	// GetByIDForUpdate returns one lot with a row lock.
	// Must be called within a transaction.
	GetByIDForUpdate(ctx context.Context, docID id.ID) (*SalesInbound, error)

	// Update writes lot fields back with optimistic locking.
	Update(ctx context.Context, doc *SalesInbound) error

	// ListHistory returns lots joined with product and customer data,
	// newest first, keyword-filtered over number, item code and name.
	ListHistory(ctx context.Context, keyword string) ([]HistoryRow, error)

	// ListOpen returns non-cancelled lots with remaining quantity,
	// oldest first, for the outbound work queue.
	ListOpen(ctx context.Context, keyword string) ([]HistoryRow, error)
}

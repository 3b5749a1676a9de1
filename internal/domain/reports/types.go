// Package reports provides read-only report views over the registered
// documents.
package reports

import (
	"time"

	"coatline/internal/core/id"
)

// WorkOrder is the shop-floor work order sheet for one lot: the order
// header joined with the product, its customer and its routing.
type WorkOrder struct {
	LotID          id.ID     `db:"lot_id" json:"lotId"`
	LotNumber      string    `db:"lot_number" json:"lotNumber"`
	OrderDate      time.Time `db:"order_date" json:"orderDate"`
	CustomerName   string    `db:"customer_name" json:"customerName"`
	SalesItemID    id.ID     `db:"sales_item_id" json:"salesItemId"`
	ItemCode       string    `db:"item_code" json:"itemCode"`
	ItemName       string    `db:"item_name" json:"itemName"`
	Classification *string   `db:"classification" json:"classification,omitempty"`
	Color          *string   `db:"color" json:"color,omitempty"`
	CoatingMethod  *string   `db:"coating_method" json:"coatingMethod,omitempty"`
	ImagePath      *string   `db:"image_path" json:"imagePath,omitempty"`
	Qty            int64     `db:"qty" json:"qty"`
	RemainingQty   int64     `db:"remaining_qty" json:"remainingQty"`
	Remark         *string   `db:"remark" json:"remark,omitempty"`

	// RoutingInfo is the operation names joined in sequence, filled by
	// the service
	RoutingInfo string `db:"-" json:"routingInfo"`
}

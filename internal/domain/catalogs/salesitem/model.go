// Package salesitem provides the sales-item catalog: the customer items
// the plant coats, each with a unit price and an ordered operation routing.
package salesitem

import (
	"context"

	"github.com/shopspring/decimal"

	"coatline/internal/core/apperror"
	"coatline/internal/core/entity"
	"coatline/internal/core/id"
)

// SalesItem represents an item received from a customer for coating.
type SalesItem struct {
	entity.Catalog

	// PartnerID references the customer partner
	PartnerID id.ID `db:"partner_id" json:"partnerId"`

	// PartnerName is denormalized for list views
	PartnerName string `db:"partner_name" json:"partnerName"`

	// Classification groups items
	Classification *string `db:"classification" json:"classification,omitempty"`

	// Unit of measure (EA, kg, ...)
	Unit *string `db:"unit" json:"unit,omitempty"`

	// Price is the unit price agreed with the customer
	Price decimal.Decimal `db:"price" json:"price"`

	// Color of the finished coat
	Color *string `db:"color" json:"color,omitempty"`

	// CoatingMethod (powder, liquid, ...)
	CoatingMethod *string `db:"coating_method" json:"coatingMethod,omitempty"`

	// ImagePath points to the item photo used on work orders
	ImagePath *string `db:"image_path" json:"imagePath,omitempty"`

	// Remark is a free-form note
	Remark *string `db:"remark" json:"remark,omitempty"`

	// TotalOperations counts the routing steps (kept in sync on replace)
	TotalOperations int `db:"total_operations" json:"totalOperations"`
}

// RoutingStep is one ordered operation in a sales item's routing.
type RoutingStep struct {
	SalesItemID id.ID `db:"sales_item_id" json:"salesItemId"`
	OperationID id.ID `db:"operation_id" json:"operationId"`
	Seq         int   `db:"seq" json:"seq"`

	// OperationName is joined for display; not written back
	OperationName string `db:"operation_name" json:"operationName,omitempty"`
}

// NewSalesItem creates a new SalesItem with required fields.
func NewSalesItem(code, name string, partnerID id.ID) *SalesItem {
	return &SalesItem{
		Catalog:   entity.NewCatalog(code, name),
		PartnerID: partnerID,
	}
}

// Validate implements entity.Validatable interface.
func (s *SalesItem) Validate(ctx context.Context) error {
	if err := s.Catalog.Validate(ctx); err != nil {
		return err
	}

	if s.Code == "" {
		return apperror.NewValidation("item code is required").
			WithDetail("field", "code")
	}

	if id.IsNil(s.PartnerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "partnerId")
	}

	if s.Price.IsNegative() {
		return apperror.NewValidation("price cannot be negative").
			WithDetail("field", "price")
	}

	return nil
}

package rawsitem

import (
	"context"

	"coatline/internal/domain"
)

// EligibleItem is a raw item joined with its supplier, for inbound pick lists.
type EligibleItem struct {
	ID           string  `db:"id" json:"id"`
	Code         string  `db:"code" json:"code"`
	Name         string  `db:"name" json:"name"`
	SupplierName string  `db:"supplier_name" json:"supplierName"`
	Manufacturer *string `db:"manufacturer" json:"manufacturer,omitempty"`
	Spec         *string `db:"spec" json:"spec,omitempty"`
	Color        *string `db:"color" json:"color,omitempty"`
}

// Repository defines the interface for RawsItem persistence.
type Repository interface {
	domain.CatalogRepository[*RawsItem]

	// ListEligible returns active items with active suppliers,
	// optionally filtered by a keyword on code or name.
	ListEligible(ctx context.Context, keyword string) ([]EligibleItem, error)
}

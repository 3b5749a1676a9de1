// Package rawsitem provides the raw-material item catalog.
// Each item references the supplier partner it is purchased from and
// owns a single stock ledger row once the first inbound arrives.
package rawsitem

import (
	"context"

	"coatline/internal/core/apperror"
	"coatline/internal/core/entity"
	"coatline/internal/core/id"
)

// RawsItem represents a raw material (paint, powder, solvent, ...).
type RawsItem struct {
	entity.Catalog

	// SupplierID references the supplier partner
	SupplierID id.ID `db:"supplier_id" json:"supplierId"`

	// Classification groups items (e.g. paint, thinner)
	Classification *string `db:"classification" json:"classification,omitempty"`

	// Spec is the manufacturer's specification string
	Spec *string `db:"spec" json:"spec,omitempty"`

	// Color of the material
	Color *string `db:"color" json:"color,omitempty"`

	// Manufacturer name, copied onto inbound records
	Manufacturer *string `db:"manufacturer" json:"manufacturer,omitempty"`

	// Remark is a free-form note
	Remark *string `db:"remark" json:"remark,omitempty"`
}

// NewRawsItem creates a new RawsItem with required fields.
func NewRawsItem(code, name string, supplierID id.ID) *RawsItem {
	return &RawsItem{
		Catalog:    entity.NewCatalog(code, name),
		SupplierID: supplierID,
	}
}

// Validate implements entity.Validatable interface.
func (r *RawsItem) Validate(ctx context.Context) error {
	if err := r.Catalog.Validate(ctx); err != nil {
		return err
	}

	if r.Code == "" {
		return apperror.NewValidation("item code is required").
			WithDetail("field", "code")
	}

	if id.IsNil(r.SupplierID) {
		return apperror.NewValidation("supplier is required").
			WithDetail("field", "supplierId")
	}

	return nil
}

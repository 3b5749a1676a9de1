package dto

import (
	"coatline/internal/core/id"
	"coatline/internal/domain/catalogs/rawsitem"
)

// CreateRawsItemRequest for registering a raw material item.
type CreateRawsItemRequest struct {
	Code           string  `json:"code" binding:"required"`
	Name           string  `json:"name" binding:"required"`
	SupplierID     string  `json:"supplierId" binding:"required"`
	Classification *string `json:"classification"`
	Spec           *string `json:"spec"`
	Color          *string `json:"color"`
	Manufacturer   *string `json:"manufacturer"`
	Remark         *string `json:"remark"`
}

// ToEntity maps the request to a new RawsItem.
func (r CreateRawsItemRequest) ToEntity() (*rawsitem.RawsItem, error) {
	supplierID, err := id.Parse(r.SupplierID)
	if err != nil {
		return nil, err
	}
	item := rawsitem.NewRawsItem(r.Code, r.Name, supplierID)
	item.Classification = r.Classification
	item.Spec = r.Spec
	item.Color = r.Color
	item.Manufacturer = r.Manufacturer
	item.Remark = r.Remark
	return item, nil
}

// UpdateRawsItemRequest for editing a raw material item.
type UpdateRawsItemRequest struct {
	Name           *string `json:"name"`
	Classification *string `json:"classification"`
	Spec           *string `json:"spec"`
	Color          *string `json:"color"`
	Manufacturer   *string `json:"manufacturer"`
	Remark         *string `json:"remark"`
	Version        int     `json:"version" binding:"required,min=1"`
}

// ApplyTo maps the request onto an existing RawsItem.
func (r UpdateRawsItemRequest) ApplyTo(item *rawsitem.RawsItem) {
	if r.Name != nil {
		item.Name = *r.Name
	}
	if r.Classification != nil {
		item.Classification = r.Classification
	}
	if r.Spec != nil {
		item.Spec = r.Spec
	}
	if r.Color != nil {
		item.Color = r.Color
	}
	if r.Manufacturer != nil {
		item.Manufacturer = r.Manufacturer
	}
	if r.Remark != nil {
		item.Remark = r.Remark
	}
	item.SetVersion(r.Version)
}

// RawsItemResponse is the API shape of a raw material item.
type RawsItemResponse struct {
	CatalogResponse
	SupplierID     string  `json:"supplierId"`
	Classification *string `json:"classification,omitempty"`
	Spec           *string `json:"spec,omitempty"`
	Color          *string `json:"color,omitempty"`
	Manufacturer   *string `json:"manufacturer,omitempty"`
	Remark         *string `json:"remark,omitempty"`
}

// FromRawsItem maps a RawsItem to its response DTO.
func FromRawsItem(item *rawsitem.RawsItem) RawsItemResponse {
	return RawsItemResponse{
		CatalogResponse: FromCatalog(item.Catalog),
		SupplierID:      item.SupplierID.String(),
		Classification:  item.Classification,
		Spec:            item.Spec,
		Color:           item.Color,
		Manufacturer:    item.Manufacturer,
		Remark:          item.Remark,
	}
}

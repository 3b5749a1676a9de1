package dto

import (
	"github.com/shopspring/decimal"

	"coatline/internal/core/id"
	"coatline/internal/domain/catalogs/salesitem"
)

// CreateSalesItemRequest for registering a product.
type CreateSalesItemRequest struct {
	Code           string          `json:"code" binding:"required"`
	Name           string          `json:"name" binding:"required"`
	PartnerID      string          `json:"partnerId" binding:"required"`
	Classification *string         `json:"classification"`
	Unit           *string         `json:"unit"`
	Price          decimal.Decimal `json:"price"`
	Color          *string         `json:"color"`
	CoatingMethod  *string         `json:"coatingMethod"`
	ImagePath      *string         `json:"imagePath"`
	Remark         *string         `json:"remark"`
}

// ToEntity maps the request to a new SalesItem.
func (r CreateSalesItemRequest) ToEntity() (*salesitem.SalesItem, error) {
	partnerID, err := id.Parse(r.PartnerID)
	if err != nil {
		return nil, err
	}
	item := salesitem.NewSalesItem(r.Code, r.Name, partnerID)
	item.Classification = r.Classification
	item.Unit = r.Unit
	item.Price = r.Price
	item.Color = r.Color
	item.CoatingMethod = r.CoatingMethod
	item.ImagePath = r.ImagePath
	item.Remark = r.Remark
	return item, nil
}

// UpdateSalesItemRequest for editing a product.
type UpdateSalesItemRequest struct {
	Name           *string          `json:"name"`
	Classification *string          `json:"classification"`
	Unit           *string          `json:"unit"`
	Price          *decimal.Decimal `json:"price"`
	Color          *string          `json:"color"`
	CoatingMethod  *string          `json:"coatingMethod"`
	ImagePath      *string          `json:"imagePath"`
	Remark         *string          `json:"remark"`
	Version        int              `json:"version" binding:"required,min=1"`
}

// ApplyTo maps the request onto an existing SalesItem.
func (r UpdateSalesItemRequest) ApplyTo(item *salesitem.SalesItem) {
	if r.Name != nil {
		item.Name = *r.Name
	}
	if r.Classification != nil {
		item.Classification = r.Classification
	}
	if r.Unit != nil {
		item.Unit = r.Unit
	}
	if r.Price != nil {
		item.Price = *r.Price
	}
	if r.Color != nil {
		item.Color = r.Color
	}
	if r.CoatingMethod != nil {
		item.CoatingMethod = r.CoatingMethod
	}
	if r.ImagePath != nil {
		item.ImagePath = r.ImagePath
	}
	if r.Remark != nil {
		item.Remark = r.Remark
	}
	item.SetVersion(r.Version)
}

// SalesItemResponse is the API shape of a product.
type SalesItemResponse struct {
	CatalogResponse
	PartnerID       string          `json:"partnerId"`
	PartnerName     string          `json:"partnerName"`
	Classification  *string         `json:"classification,omitempty"`
	Unit            *string         `json:"unit,omitempty"`
	Price           decimal.Decimal `json:"price"`
	Color           *string         `json:"color,omitempty"`
	CoatingMethod   *string         `json:"coatingMethod,omitempty"`
	ImagePath       *string         `json:"imagePath,omitempty"`
	Remark          *string         `json:"remark,omitempty"`
	TotalOperations int             `json:"totalOperations"`
}

// FromSalesItem maps a SalesItem to its response DTO.
func FromSalesItem(item *salesitem.SalesItem) SalesItemResponse {
	return SalesItemResponse{
		CatalogResponse: FromCatalog(item.Catalog),
		PartnerID:       item.PartnerID.String(),
		PartnerName:     item.PartnerName,
		Classification:  item.Classification,
		Unit:            item.Unit,
		Price:           item.Price,
		Color:           item.Color,
		CoatingMethod:   item.CoatingMethod,
		ImagePath:       item.ImagePath,
		Remark:          item.Remark,
		TotalOperations: item.TotalOperations,
	}
}

// ReplaceRoutingRequest swaps a product's routing for the given
// operations in order.
type ReplaceRoutingRequest struct {
	OperationIDs []string `json:"operationIds" binding:"required"`
}

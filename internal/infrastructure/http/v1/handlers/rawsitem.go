package handlers

import (
	"github.com/gin-gonic/gin"

	"coatline/internal/core/apperror"
	"coatline/internal/domain/catalogs/rawsitem"
	"coatline/internal/infrastructure/http/v1/dto"
)

// RawsItemHandler serves the raw material item catalog.
type RawsItemHandler struct {
	*CatalogHandler[*rawsitem.RawsItem, dto.CreateRawsItemRequest, dto.UpdateRawsItemRequest]
	service *rawsitem.Service
}

// NewRawsItemHandler creates a new raws item handler.
func NewRawsItemHandler(base *BaseHandler, service *rawsitem.Service) *RawsItemHandler {
	config := CatalogHandlerConfig[*rawsitem.RawsItem, dto.CreateRawsItemRequest, dto.UpdateRawsItemRequest]{
		Service:    service.CatalogService,
		EntityName: "raws item",
		MapCreateDTO: func(req dto.CreateRawsItemRequest) (*rawsitem.RawsItem, error) {
			item, err := req.ToEntity()
			if err != nil {
				return nil, apperror.NewValidation("invalid supplierId format")
			}
			return item, nil
		},
		MapUpdateDTO: func(req dto.UpdateRawsItemRequest, existing *rawsitem.RawsItem) *rawsitem.RawsItem {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(item *rawsitem.RawsItem) any {
			return dto.FromRawsItem(item)
		},
	}

	return &RawsItemHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// Eligible handles GET /raws-items/eligible: active items from active
// suppliers for the inbound pick list.
func (h *RawsItemHandler) Eligible(c *gin.Context) {
	items, err := h.service.ListEligible(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"items": items})
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"coatline/internal/core/apperror"
	"coatline/internal/core/id"
	"coatline/internal/domain/catalogs/salesitem"
	"coatline/internal/infrastructure/http/v1/dto"
)

// SalesItemHandler serves the product catalog and its routing.
type SalesItemHandler struct {
	*CatalogHandler[*salesitem.SalesItem, dto.CreateSalesItemRequest, dto.UpdateSalesItemRequest]
	service *salesitem.Service
}

// NewSalesItemHandler creates a new sales item handler.
func NewSalesItemHandler(base *BaseHandler, service *salesitem.Service) *SalesItemHandler {
	config := CatalogHandlerConfig[*salesitem.SalesItem, dto.CreateSalesItemRequest, dto.UpdateSalesItemRequest]{
		Service:    service.CatalogService,
		EntityName: "sales item",
		MapCreateDTO: func(req dto.CreateSalesItemRequest) (*salesitem.SalesItem, error) {
			item, err := req.ToEntity()
			if err != nil {
				return nil, apperror.NewValidation("invalid partnerId format")
			}
			return item, nil
		},
		MapUpdateDTO: func(req dto.UpdateSalesItemRequest, existing *salesitem.SalesItem) *salesitem.SalesItem {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(item *salesitem.SalesItem) any {
			return dto.FromSalesItem(item)
		},
	}

	return &SalesItemHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// GetRouting handles GET /sales-items/:id/routing.
func (h *SalesItemHandler) GetRouting(c *gin.Context) {
	itemID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	steps, err := h.service.GetRouting(c.Request.Context(), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"steps": steps})
}

// ReplaceRouting handles PUT /sales-items/:id/routing.
func (h *SalesItemHandler) ReplaceRouting(c *gin.Context) {
	itemID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var req dto.ReplaceRoutingRequest
	if !h.BindJSON(c, &req) {
		return
	}

	operationIDs := make([]id.ID, 0, len(req.OperationIDs))
	for _, raw := range req.OperationIDs {
		opID, err := id.Parse(raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid operation id format").
				WithDetail("operation_id", raw))
			return
		}
		operationIDs = append(operationIDs, opID)
	}

	if err := h.service.ReplaceRouting(c.Request.Context(), itemID, operationIDs); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "routing updated")
}

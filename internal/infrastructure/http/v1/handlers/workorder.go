package handlers

import (
	"github.com/gin-gonic/gin"

	"coatline/internal/domain/reports"
)

// WorkOrderHandler serves the shop-floor work order sheet.
type WorkOrderHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewWorkOrderHandler creates a new work order handler.
func NewWorkOrderHandler(base *BaseHandler, service *reports.Service) *WorkOrderHandler {
	return &WorkOrderHandler{BaseHandler: base, service: service}
}

// Get handles GET /work-order/:id.
func (h *WorkOrderHandler) Get(c *gin.Context) {
	lotID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	order, err := h.service.GetWorkOrder(c.Request.Context(), lotID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, order)
}

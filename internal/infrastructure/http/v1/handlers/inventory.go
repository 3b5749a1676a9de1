package handlers

import (
	"github.com/gin-gonic/gin"

	"coatline/internal/domain/registers/inventory"
)

// InventoryHandler serves the raw stock status report.
type InventoryHandler struct {
	*BaseHandler
	service *inventory.Service
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(base *BaseHandler, service *inventory.Service) *InventoryHandler {
	return &InventoryHandler{BaseHandler: base, service: service}
}

// Status handles GET /inventory/raw.
func (h *InventoryHandler) Status(c *gin.Context) {
	rows, err := h.service.Status(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"items": rows})
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"coatline/internal/domain/documents/salesinbound"
	"coatline/internal/domain/documents/salesoutbound"
)

// SalesOutboundHandler serves product shipment registration and its
// history.
type SalesOutboundHandler struct {
	*BaseHandler
	service *salesoutbound.Service
	lots    *salesinbound.Service
}

// NewSalesOutboundHandler creates a new shipment handler.
func NewSalesOutboundHandler(
	base *BaseHandler,
	service *salesoutbound.Service,
	lots *salesinbound.Service,
) *SalesOutboundHandler {
	return &SalesOutboundHandler{BaseHandler: base, service: service, lots: lots}
}

// OpenLots handles GET /order/outbound/list: lots still waiting for
// shipment.
func (h *SalesOutboundHandler) OpenLots(c *gin.Context) {
	rows, err := h.lots.Open(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"items": rows})
}

// Register handles POST /order/outbound/list/register.
func (h *SalesOutboundHandler) Register(c *gin.Context) {
	var req salesoutbound.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, doc)
}

// History handles GET /order/history/outbound.
func (h *SalesOutboundHandler) History(c *gin.Context) {
	rows, err := h.service.History(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"items": rows})
}

// Update handles PUT /order/history/outbound/:id.
func (h *SalesOutboundHandler) Update(c *gin.Context) {
	docID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var req salesoutbound.UpdateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.Update(c.Request.Context(), docID, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, doc)
}

// Cancel handles PATCH /order/history/outbound/:id/cancel.
func (h *SalesOutboundHandler) Cancel(c *gin.Context) {
	docID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Cancel(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "shipment cancelled")
}

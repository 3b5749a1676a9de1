package handlers

import (
	"github.com/gin-gonic/gin"

	"coatline/internal/domain/documents/salesinbound"
)

// SalesInboundHandler serves production order (lot) registration and
// its history.
type SalesInboundHandler struct {
	*BaseHandler
	service *salesinbound.Service
}

// NewSalesInboundHandler creates a new lot handler.
func NewSalesInboundHandler(base *BaseHandler, service *salesinbound.Service) *SalesInboundHandler {
	return &SalesInboundHandler{BaseHandler: base, service: service}
}

// Register handles POST /sales-inbound.
func (h *SalesInboundHandler) Register(c *gin.Context) {
	var req salesinbound.RegisterRequest
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

// History handles GET /sales-inbound/history.
func (h *SalesInboundHandler) History(c *gin.Context) {
	rows, err := h.service.History(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"items": rows})
}

// Detail handles GET /sales-inbound/history/:id.
func (h *SalesInboundHandler) Detail(c *gin.Context) {
	docID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	doc, err := h.service.Get(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, doc)
}

// Update handles PUT /sales-inbound/history/:id.
func (h *SalesInboundHandler) Update(c *gin.Context) {
	docID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var req salesinbound.UpdateRequest
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

// Cancel handles PATCH /sales-inbound/history/:id/cancel.
func (h *SalesInboundHandler) Cancel(c *gin.Context) {
	docID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Cancel(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "lot cancelled")
}

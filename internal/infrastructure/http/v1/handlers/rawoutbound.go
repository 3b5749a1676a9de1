package handlers

import (
	"github.com/gin-gonic/gin"

	"coatline/internal/domain/documents/rawoutbound"
)

// RawOutboundHandler serves raw-material release registration.
type RawOutboundHandler struct {
	*BaseHandler
	service *rawoutbound.Service
}

// NewRawOutboundHandler creates a new raw outbound handler.
func NewRawOutboundHandler(base *BaseHandler, service *rawoutbound.Service) *RawOutboundHandler {
	return &RawOutboundHandler{BaseHandler: base, service: service}
}

// Register handles POST /raw-outbound.
func (h *RawOutboundHandler) Register(c *gin.Context) {
	var req rawoutbound.RegisterRequest
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

// StockList handles GET /raw-outbound: balances the release screen
// picks from.
func (h *RawOutboundHandler) StockList(c *gin.Context) {
	rows, err := h.service.StockList(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"items": rows})
}

// History handles GET /raw-outbound/history.
func (h *RawOutboundHandler) History(c *gin.Context) {
	rows, err := h.service.History(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"items": rows})
}

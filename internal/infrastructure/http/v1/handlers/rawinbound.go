package handlers

import (
	"github.com/gin-gonic/gin"

	"coatline/internal/domain/documents/rawinbound"
)

// RawInboundHandler serves raw-material receipt registration.
type RawInboundHandler struct {
	*BaseHandler
	service *rawinbound.Service
}

// NewRawInboundHandler creates a new raw inbound handler.
func NewRawInboundHandler(base *BaseHandler, service *rawinbound.Service) *RawInboundHandler {
	return &RawInboundHandler{BaseHandler: base, service: service}
}

// Register handles POST /raw-inbound.
func (h *RawInboundHandler) Register(c *gin.Context) {
	var req rawinbound.RegisterRequest
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

// EligibleItems handles GET /raw-inbound/eligible-items.
func (h *RawInboundHandler) EligibleItems(c *gin.Context) {
	items, err := h.service.EligibleItems(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"items": items})
}

// History handles GET /raw-inbound/history.
func (h *RawInboundHandler) History(c *gin.Context) {
	rows, err := h.service.History(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"items": rows})
}

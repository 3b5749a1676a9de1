package handlers

import (
	"github.com/gin-gonic/gin"

	"coatline/internal/core/apperror"
	"coatline/internal/core/id"
	"coatline/internal/domain/catalogs/operations"
	"coatline/internal/infrastructure/http/v1/dto"
)

// OperationHandler serves the operation catalog and its status
// workflow.
type OperationHandler struct {
	*CatalogHandler[*operations.Operation, dto.CreateOperationRequest, dto.UpdateOperationRequest]
	service *operations.Service
}

// NewOperationHandler creates a new operation handler.
func NewOperationHandler(base *BaseHandler, service *operations.Service) *OperationHandler {
	config := CatalogHandlerConfig[*operations.Operation, dto.CreateOperationRequest, dto.UpdateOperationRequest]{
		Service:    service.CatalogService,
		EntityName: "operation",
		MapCreateDTO: func(req dto.CreateOperationRequest) (*operations.Operation, error) {
			return req.ToEntity(), nil
		},
		MapUpdateDTO: func(req dto.UpdateOperationRequest, existing *operations.Operation) *operations.Operation {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(op *operations.Operation) any {
			return dto.FromOperation(op)
		},
	}

	return &OperationHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// ListOrdered handles GET /operations/ordered.
func (h *OperationHandler) ListOrdered(c *gin.Context) {
	ops, err := h.service.ListOrdered(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.OperationResponse, len(ops))
	for i, op := range ops {
		items[i] = dto.FromOperation(op)
	}
	h.OK(c, gin.H{"items": items})
}

// Reorder handles PATCH /operations/order.
func (h *OperationHandler) Reorder(c *gin.Context) {
	var req dto.ReorderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updates := make([]operations.OrderUpdate, 0, len(req.Updates))
	for _, u := range req.Updates {
		opID, err := id.Parse(u.ID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid operation id format").
				WithDetail("operation_id", u.ID))
			return
		}
		updates = append(updates, operations.OrderUpdate{
			ID:             opID,
			OperationOrder: u.OperationOrder,
		})
	}

	if err := h.service.Reorder(c.Request.Context(), updates); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "order updated")
}

// StartNext handles POST /operations/start-next.
func (h *OperationHandler) StartNext(c *gin.Context) {
	op, err := h.service.StartNext(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromOperation(op))
}

package dto

import (
	"time"

	"coatline/internal/domain/catalogs/operations"
)

// CreateOperationRequest for registering an operation.
type CreateOperationRequest struct {
	Code           string  `json:"code"`
	Name           string  `json:"name" binding:"required"`
	OperationOrder int     `json:"operationOrder"`
	Remark         *string `json:"remark"`
}

// ToEntity maps the request to a new Operation.
func (r CreateOperationRequest) ToEntity() *operations.Operation {
	op := operations.NewOperation(r.Code, r.Name, r.OperationOrder)
	op.Remark = r.Remark
	return op
}

// UpdateOperationRequest for editing an operation.
type UpdateOperationRequest struct {
	Name           *string `json:"name"`
	Status         *string `json:"status"`
	OperationOrder *int    `json:"operationOrder"`
	Remark         *string `json:"remark"`
	Version        int     `json:"version" binding:"required,min=1"`
}

// ApplyTo maps the request onto an existing Operation.
func (r UpdateOperationRequest) ApplyTo(op *operations.Operation) {
	if r.Name != nil {
		op.Name = *r.Name
	}
	if r.Status != nil {
		op.Status = operations.Status(*r.Status)
	}
	if r.OperationOrder != nil {
		op.OperationOrder = *r.OperationOrder
	}
	if r.Remark != nil {
		op.Remark = r.Remark
	}
	op.SetVersion(r.Version)
}

// OperationResponse is the API shape of an operation.
type OperationResponse struct {
	CatalogResponse
	Status         string     `json:"status"`
	OperationOrder int        `json:"operationOrder"`
	StartTime      *time.Time `json:"startTime,omitempty"`
	Remark         *string    `json:"remark,omitempty"`
}

// FromOperation maps an Operation to its response DTO.
func FromOperation(op *operations.Operation) OperationResponse {
	return OperationResponse{
		CatalogResponse: FromCatalog(op.Catalog),
		Status:          string(op.Status),
		OperationOrder:  op.OperationOrder,
		StartTime:       op.StartTime,
		Remark:          op.Remark,
	}
}

// ReorderRequest applies a batch of position changes.
type ReorderRequest struct {
	Updates []ReorderItem `json:"updates" binding:"required"`
}

// ReorderItem is one position change.
type ReorderItem struct {
	ID             string `json:"id" binding:"required"`
	OperationOrder int    `json:"operationOrder"`
}

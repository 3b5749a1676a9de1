// Package operations provides the coating operation catalog and its
// status workflow (pending, in progress, completed, error).
package operations

import (
	"context"
	"time"

	"coatline/internal/core/apperror"
	"coatline/internal/core/entity"
)

// Status of an operation on the shop floor.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

// Operation represents one step in the coating process (degrease, coat, cure, ...).
type Operation struct {
	entity.Catalog

	// Status tracks the shop-floor workflow state
	Status Status `db:"status" json:"status"`

	// OperationOrder positions the step in the overall sequence
	OperationOrder int `db:"operation_order" json:"operationOrder"`

	// StartTime is set when the step moves to in_progress
	StartTime *time.Time `db:"start_time" json:"startTime,omitempty"`

	// Remark is a free-form note
	Remark *string `db:"remark" json:"remark,omitempty"`
}

// NewOperation creates a pending Operation.
func NewOperation(code, name string, order int) *Operation {
	return &Operation{
		Catalog:        entity.NewCatalog(code, name),
		Status:         StatusPending,
		OperationOrder: order,
	}
}

// Validate implements entity.Validatable interface.
func (o *Operation) Validate(ctx context.Context) error {
	if err := o.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !isValidStatus(o.Status) {
		return apperror.NewValidation("invalid operation status").
			WithDetail("field", "status").
			WithDetail("value", string(o.Status))
	}

	if o.OperationOrder < 0 {
		return apperror.NewValidation("operation order cannot be negative").
			WithDetail("field", "operationOrder")
	}

	return nil
}

func isValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusError:
		return true
	}
	return false
}

package entity

import (
	"context"
	"time"

	"coatline/internal/core/apperror"
)

// Document is the base type for ledger transaction records.
// Examples: RawInbound, RawOutbound, SalesInbound, SalesOutbound.
type Document struct {
	BaseDocument

	// Number is the document number (auto-generated, unique per prefix+day)
	Number string `db:"number" json:"number"`

	// Date is the business date of the transaction
	Date time.Time `db:"date" json:"date"`

	// Cancelled marks a voided record. Cancelled records stay in history
	// but are excluded from eligibility and further mutation.
	Cancelled bool `db:"cancelled" json:"cancelled"`

	// Remark is an optional user comment
	Remark *string `db:"remark" json:"remark,omitempty"`
}

// NewDocument creates a new Document dated now.
func NewDocument() Document {
	return Document{
		BaseDocument: NewBaseDocument(),
		Date:         time.Now().UTC(),
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}

	return nil
}

// CanModify checks if the record can be edited or cancelled.
func (d *Document) CanModify() error {
	if d.Cancelled {
		return apperror.NewInvalidState("Cannot modify a cancelled record").
			WithDetail("document_id", d.ID.String())
	}
	return nil
}

// MarkCancelled sets the cancelled flag and bumps the version.
func (d *Document) MarkCancelled() {
	d.Cancelled = true
	d.Touch()
}

// Package partner provides the Partner catalog: the customers the plant
// coats items for and the suppliers it buys raw material from.
package partner

import (
	"context"
	"regexp"

	"coatline/internal/core/apperror"
	"coatline/internal/core/entity"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// PartnerType defines the type of partner.
type PartnerType string

const (
	TypeCustomer PartnerType = "customer"
	TypeSupplier PartnerType = "supplier"
)

// Partner represents a business partner.
type Partner struct {
	entity.Catalog

	// Type defines whether this is a customer or a supplier
	Type PartnerType `db:"type" json:"type"`

	// BRNum is the business registration number
	BRNum *string `db:"br_num" json:"brNum,omitempty"`

	// BossName / BossPhone identify the company head
	BossName  *string `db:"boss_name" json:"bossName,omitempty"`
	BossPhone *string `db:"boss_phone" json:"bossPhone,omitempty"`

	// RepName / RepPhone / RepEmail identify the working-level contact
	RepName  *string `db:"rep_name" json:"repName,omitempty"`
	RepPhone *string `db:"rep_phone" json:"repPhone,omitempty"`
	RepEmail *string `db:"rep_email" json:"repEmail,omitempty"`

	// Address is the place of business
	Address *string `db:"address" json:"address,omitempty"`

	// Remark is a free-form note
	Remark *string `db:"remark" json:"remark,omitempty"`
}

// NewPartner creates a new Partner with required fields.
func NewPartner(name string, pType PartnerType) *Partner {
	return &Partner{
		Catalog: entity.NewCatalog("", name),
		Type:    pType,
	}
}

// Validate implements entity.Validatable interface.
func (p *Partner) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !isValidPartnerType(p.Type) {
		return apperror.NewValidation("invalid partner type").
			WithDetail("field", "type").
			WithDetail("value", string(p.Type))
	}

	if p.RepEmail != nil && *p.RepEmail != "" && !emailRE.MatchString(*p.RepEmail) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "repEmail")
	}

	return nil
}

// IsCustomer returns true if the partner buys coated items.
func (p *Partner) IsCustomer() bool {
	return p.Type == TypeCustomer
}

// IsSupplier returns true if the partner supplies raw material.
func (p *Partner) IsSupplier() bool {
	return p.Type == TypeSupplier
}

func isValidPartnerType(t PartnerType) bool {
	switch t {
	case TypeCustomer, TypeSupplier:
		return true
	}
	return false
}

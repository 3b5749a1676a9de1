package dto

import (
	"coatline/internal/domain/catalogs/partner"
)

// CreatePartnerRequest for registering a partner.
type CreatePartnerRequest struct {
	Type      string  `json:"type" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	BRNum     *string `json:"brNum"`
	BossName  *string `json:"bossName"`
	BossPhone *string `json:"bossPhone"`
	RepName   *string `json:"repName"`
	RepPhone  *string `json:"repPhone"`
	RepEmail  *string `json:"repEmail"`
	Address   *string `json:"address"`
	Remark    *string `json:"remark"`
}

// ToEntity maps the request to a new Partner.
func (r CreatePartnerRequest) ToEntity() *partner.Partner {
	p := partner.NewPartner(r.Name, partner.PartnerType(r.Type))
	p.BRNum = r.BRNum
	p.BossName = r.BossName
	p.BossPhone = r.BossPhone
	p.RepName = r.RepName
	p.RepPhone = r.RepPhone
	p.RepEmail = r.RepEmail
	p.Address = r.Address
	p.Remark = r.Remark
	return p
}

// UpdatePartnerRequest for editing a partner.
type UpdatePartnerRequest struct {
	Name      *string `json:"name"`
	BRNum     *string `json:"brNum"`
	BossName  *string `json:"bossName"`
	BossPhone *string `json:"bossPhone"`
	RepName   *string `json:"repName"`
	RepPhone  *string `json:"repPhone"`
	RepEmail  *string `json:"repEmail"`
	Address   *string `json:"address"`
	Remark    *string `json:"remark"`
	Version   int     `json:"version" binding:"required,min=1"`
}

// ApplyTo maps the request onto an existing Partner.
func (r UpdatePartnerRequest) ApplyTo(p *partner.Partner) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.BRNum != nil {
		p.BRNum = r.BRNum
	}
	if r.BossName != nil {
		p.BossName = r.BossName
	}
	if r.BossPhone != nil {
		p.BossPhone = r.BossPhone
	}
	if r.RepName != nil {
		p.RepName = r.RepName
	}
	if r.RepPhone != nil {
		p.RepPhone = r.RepPhone
	}
	if r.RepEmail != nil {
		p.RepEmail = r.RepEmail
	}
	if r.Address != nil {
		p.Address = r.Address
	}
	if r.Remark != nil {
		p.Remark = r.Remark
	}
	p.SetVersion(r.Version)
}

// PartnerResponse is the API shape of a partner.
type PartnerResponse struct {
	CatalogResponse
	Type      string  `json:"type"`
	BRNum     *string `json:"brNum,omitempty"`
	BossName  *string `json:"bossName,omitempty"`
	BossPhone *string `json:"bossPhone,omitempty"`
	RepName   *string `json:"repName,omitempty"`
	RepPhone  *string `json:"repPhone,omitempty"`
	RepEmail  *string `json:"repEmail,omitempty"`
	Address   *string `json:"address,omitempty"`
	Remark    *string `json:"remark,omitempty"`
}

// FromPartner maps a Partner to its response DTO.
func FromPartner(p *partner.Partner) PartnerResponse {
	return PartnerResponse{
		CatalogResponse: FromCatalog(p.Catalog),
		Type:            string(p.Type),
		BRNum:           p.BRNum,
		BossName:        p.BossName,
		BossPhone:       p.BossPhone,
		RepName:         p.RepName,
		RepPhone:        p.RepPhone,
		RepEmail:        p.RepEmail,
		Address:         p.Address,
		Remark:          p.Remark,
	}
}

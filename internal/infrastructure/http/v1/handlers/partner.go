package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coatline/internal/domain"
	"coatline/internal/domain/catalogs/partner"
	"coatline/internal/infrastructure/http/v1/dto"
)

// PartnerHandler serves the partner catalog, adding the type filter on
// top of the generic catalog handler.
type PartnerHandler struct {
	*CatalogHandler[*partner.Partner, dto.CreatePartnerRequest, dto.UpdatePartnerRequest]
	service *partner.Service
}

// NewPartnerHandler creates a new partner handler.
func NewPartnerHandler(base *BaseHandler, service *partner.Service) *PartnerHandler {
	config := CatalogHandlerConfig[*partner.Partner, dto.CreatePartnerRequest, dto.UpdatePartnerRequest]{
		Service:    service.CatalogService,
		EntityName: "partner",
		MapCreateDTO: func(req dto.CreatePartnerRequest) (*partner.Partner, error) {
			return req.ToEntity(), nil
		},
		MapUpdateDTO: func(req dto.UpdatePartnerRequest, existing *partner.Partner) *partner.Partner {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(p *partner.Partner) any {
			return dto.FromPartner(p)
		},
	}

	return &PartnerHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// List handles GET /partners, optionally filtered by type.
func (h *PartnerHandler) List(c *gin.Context) {
	pType := c.Query("type")
	if pType == "" {
		h.CatalogHandler.List(c)
		return
	}

	filter := domain.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)

	result, err := h.service.ListByType(c.Request.Context(), partner.PartnerType(pType), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, p := range result.Items {
		items[i] = dto.FromPartner(p)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/domain/catalogs/customer"
	"pharmabill/internal/infrastructure/http/v1/dto"
)

// CustomerHandler provides customer endpoints.
type CustomerHandler struct {
	*CatalogHandler[*customer.Customer, dto.CustomerCreate, dto.CustomerUpdate]
	service *customer.Service
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(base *BaseHandler, service *customer.Service) *CustomerHandler {
	inner := NewCatalogHandler(base, CatalogHandlerConfig[*customer.Customer, dto.CustomerCreate, dto.CustomerUpdate]{
		Service: service.CatalogService,
		MapCreateDTO: func(c *gin.Context, req dto.CustomerCreate) (*customer.Customer, bool) {
			orgID, ok := base.CallerOrganization(c)
			if !ok {
				return nil, false
			}
			cust := customer.New(orgID, req.Name)
			cust.Code = req.Code
			cust.GSTIN = req.GSTIN
			cust.StateCode = req.StateCode
			cust.Phone = req.Phone
			cust.Email = req.Email
			cust.Address = req.Address
			return cust, true
		},
		MapUpdateDTO: func(req dto.CustomerUpdate, existing *customer.Customer) *customer.Customer {
			existing.Name = req.Name
			existing.GSTIN = req.GSTIN
			existing.StateCode = req.StateCode
			existing.Phone = req.Phone
			existing.Email = req.Email
			existing.Address = req.Address
			existing.Version = req.Version
			return existing
		},
	})

	return &CustomerHandler{CatalogHandler: inner, service: service}
}

// FindByGSTIN handles GET /customers/by-gstin/:gstin.
func (h *CustomerHandler) FindByGSTIN(c *gin.Context) {
	orgID, ok := h.CallerOrganization(c)
	if !ok {
		return
	}

	gstin := c.Param("gstin")
	if gstin == "" {
		h.Error(c, apperror.NewValidation("gstin is required"))
		return
	}

	cust, err := h.service.FindByGSTIN(c.Request.Context(), orgID, gstin)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, cust)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/domain/catalogs/supplier"
	"pharmabill/internal/infrastructure/http/v1/dto"
)

// SupplierHandler provides supplier endpoints.
type SupplierHandler struct {
	*CatalogHandler[*supplier.Supplier, dto.SupplierCreate, dto.SupplierUpdate]
	service *supplier.Service
}

// NewSupplierHandler creates a new supplier handler.
func NewSupplierHandler(base *BaseHandler, service *supplier.Service) *SupplierHandler {
	inner := NewCatalogHandler(base, CatalogHandlerConfig[*supplier.Supplier, dto.SupplierCreate, dto.SupplierUpdate]{
		Service: service.CatalogService,
		MapCreateDTO: func(c *gin.Context, req dto.SupplierCreate) (*supplier.Supplier, bool) {
			orgID, ok := base.CallerOrganization(c)
			if !ok {
				return nil, false
			}
			sup := supplier.New(orgID, req.Name)
			sup.Code = req.Code
			sup.GSTIN = req.GSTIN
			sup.StateCode = req.StateCode
			sup.DrugLicenseNumber = req.DrugLicenseNumber
			sup.Phone = req.Phone
			sup.Email = req.Email
			sup.Address = req.Address
			return sup, true
		},
		MapUpdateDTO: func(req dto.SupplierUpdate, existing *supplier.Supplier) *supplier.Supplier {
			existing.Name = req.Name
			existing.GSTIN = req.GSTIN
			existing.StateCode = req.StateCode
			existing.DrugLicenseNumber = req.DrugLicenseNumber
			existing.Phone = req.Phone
			existing.Email = req.Email
			existing.Address = req.Address
			existing.Version = req.Version
			return existing
		},
	})

	return &SupplierHandler{CatalogHandler: inner, service: service}
}

// FindByGSTIN handles GET /suppliers/by-gstin/:gstin.
func (h *SupplierHandler) FindByGSTIN(c *gin.Context) {
	orgID, ok := h.CallerOrganization(c)
	if !ok {
		return
	}

	gstin := c.Param("gstin")
	if gstin == "" {
		h.Error(c, apperror.NewValidation("gstin is required"))
		return
	}

	sup, err := h.service.FindByGSTIN(c.Request.Context(), orgID, gstin)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, sup)
}

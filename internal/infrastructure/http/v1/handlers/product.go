package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/domain/catalogs/product"
	"pharmabill/internal/infrastructure/http/v1/dto"
)

// ProductHandler provides product endpoints including batch management.
type ProductHandler struct {
	*CatalogHandler[*product.Product, dto.ProductCreate, dto.ProductUpdate]
	service *product.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHandler {
	inner := NewCatalogHandler(base, CatalogHandlerConfig[*product.Product, dto.ProductCreate, dto.ProductUpdate]{
		Service: service.CatalogService,
		MapCreateDTO: func(c *gin.Context, req dto.ProductCreate) (*product.Product, bool) {
			orgID, ok := base.CallerOrganization(c)
			if !ok {
				return nil, false
			}
			p := product.New(orgID, req.Name, req.HSNCode, req.GSTRate)
			p.Code = req.Code
			p.Description = req.Description
			p.CessRate = req.CessRate
			p.UnitPrice = req.UnitPrice
			p.UQC = req.UQC
			p.Manufacturer = req.Manufacturer
			p.PrescriptionRequired = req.PrescriptionRequired
			return p, true
		},
		MapUpdateDTO: func(req dto.ProductUpdate, existing *product.Product) *product.Product {
			existing.Name = req.Name
			existing.HSNCode = req.HSNCode
			existing.Description = req.Description
			existing.GSTRate = req.GSTRate
			existing.CessRate = req.CessRate
			existing.UnitPrice = req.UnitPrice
			existing.UQC = req.UQC
			existing.Manufacturer = req.Manufacturer
			existing.PrescriptionRequired = req.PrescriptionRequired
			existing.Version = req.Version
			return existing
		},
	})

	return &ProductHandler{CatalogHandler: inner, service: service}
}

// FindByHSN handles GET /products/by-hsn/:hsn.
func (h *ProductHandler) FindByHSN(c *gin.Context) {
	orgID, ok := h.CallerOrganization(c)
	if !ok {
		return
	}

	hsn := c.Param("hsn")
	if hsn == "" {
		h.Error(c, apperror.NewValidation("hsn code is required"))
		return
	}

	items, err := h.service.FindByHSN(c.Request.Context(), orgID, hsn)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, items)
}

// AddBatch handles POST /products/:id/batches.
func (h *ProductHandler) AddBatch(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.BatchCreate
	if !h.BindJSON(c, &req) {
		return
	}

	batch := product.NewBatch(productID, req.BatchNumber)
	batch.ExpiryDate = req.ExpiryDate
	batch.MRP = req.MRP
	batch.PurchasePrice = req.PurchasePrice
	batch.Quantity = req.Quantity

	if err := h.service.AddBatch(c.Request.Context(), batch); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, batch)
}

// ListBatches handles GET /products/:id/batches.
func (h *ProductHandler) ListBatches(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	batches, err := h.service.ListBatches(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, batches)
}

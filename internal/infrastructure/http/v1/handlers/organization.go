package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmabill/internal/domain"
	"pharmabill/internal/domain/catalogs/organization"
	"pharmabill/internal/infrastructure/http/v1/dto"
)

// OrganizationHandler provides organization endpoints. Organizations are
// the tenancy root, so this handler does not use the generic catalog
// machinery and registration stays open (an org must exist before its
// first user can sign up).
type OrganizationHandler struct {
	*BaseHandler
	service *organization.Service
}

// NewOrganizationHandler creates a new organization handler.
func NewOrganizationHandler(base *BaseHandler, service *organization.Service) *OrganizationHandler {
	return &OrganizationHandler{BaseHandler: base, service: service}
}

// Create handles POST /organizations.
func (h *OrganizationHandler) Create(c *gin.Context) {
	var req dto.OrganizationCreate
	if !h.BindJSON(c, &req) {
		return
	}

	org := organization.New(req.Name, req.GSTIN)
	org.LegalName = req.LegalName
	org.DrugLicenseNumber = req.DrugLicenseNumber
	org.Address = req.Address
	org.Phone = req.Phone
	org.Email = req.Email

	if err := h.service.Create(c.Request.Context(), org); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, org)
}

// Get handles GET /organizations/:id.
func (h *OrganizationHandler) Get(c *gin.Context) {
	orgID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	org, err := h.service.GetByID(c.Request.Context(), orgID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, org)
}

// Current handles GET /organizations/current, the caller's own org.
func (h *OrganizationHandler) Current(c *gin.Context) {
	orgID, ok := h.CallerOrganization(c)
	if !ok {
		return
	}

	org, err := h.service.GetByID(c.Request.Context(), orgID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, org)
}

// Update handles PUT /organizations/:id. The GSTIN is immutable once
// registered; only descriptive fields change.
func (h *OrganizationHandler) Update(c *gin.Context) {
	orgID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.OrganizationUpdate
	if !h.BindJSON(c, &req) {
		return
	}

	org, err := h.service.GetByID(c.Request.Context(), orgID)
	if err != nil {
		h.Error(c, err)
		return
	}

	org.Name = req.Name
	org.LegalName = req.LegalName
	org.DrugLicenseNumber = req.DrugLicenseNumber
	org.Address = req.Address
	org.Phone = req.Phone
	org.Email = req.Email
	org.Version = req.Version

	if err := h.service.Update(c.Request.Context(), org); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, org)
}

// List handles GET /organizations.
func (h *OrganizationHandler) List(c *gin.Context) {
	filter := domain.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      result.Items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

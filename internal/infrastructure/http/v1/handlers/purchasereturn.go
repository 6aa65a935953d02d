package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/id"
	"pharmabill/internal/domain/documents/purchasereturn"
	"pharmabill/internal/infrastructure/http/v1/dto"
)

// PurchaseReturnHandler provides debit note endpoints.
type PurchaseReturnHandler struct {
	*BaseHandler
	service *purchasereturn.Service
}

// NewPurchaseReturnHandler creates a new purchase return handler.
func NewPurchaseReturnHandler(base *BaseHandler, service *purchasereturn.Service) *PurchaseReturnHandler {
	return &PurchaseReturnHandler{BaseHandler: base, service: service}
}

// List handles GET /purchase-returns.
func (h *PurchaseReturnHandler) List(c *gin.Context) {
	filter, ok := documentFilter(h.BaseHandler, c, "supplierId")
	if !ok {
		return
	}

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

// Get handles GET /purchase-returns/:id.
func (h *PurchaseReturnHandler) Get(c *gin.Context) {
	docID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, doc)
}

// Create handles POST /purchase-returns. Pricing is snapshotted from
// the referenced purchase.
func (h *PurchaseReturnHandler) Create(c *gin.Context) {
	var req dto.ReturnCreate
	if !h.BindJSON(c, &req) {
		return
	}

	purchaseID, err := id.Parse(req.DocumentID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid documentId"))
		return
	}

	lines, err := parseReturnLines(req.Lines)
	if err != nil {
		h.Error(c, err)
		return
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	doc, err := h.service.Create(c.Request.Context(), purchasereturn.CreateRequest{
		PurchaseID: purchaseID,
		Date:       date,
		Reason:     req.Reason,
		Notes:      req.Notes,
		Lines:      lines,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, doc)
}

// Post handles POST /purchase-returns/:id/post.
func (h *PurchaseReturnHandler) Post(c *gin.Context) {
	docID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Post(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "purchase return posted")
}

// Unpost handles POST /purchase-returns/:id/unpost.
func (h *PurchaseReturnHandler) Unpost(c *gin.Context) {
	docID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Unpost(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "purchase return unposted")
}

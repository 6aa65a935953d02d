package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/id"
	"pharmabill/internal/domain/documents/salesreturn"
	"pharmabill/internal/infrastructure/http/v1/dto"
)

// SalesReturnHandler provides credit note endpoints.
type SalesReturnHandler struct {
	*BaseHandler
	service *salesreturn.Service
}

// NewSalesReturnHandler creates a new sales return handler.
func NewSalesReturnHandler(base *BaseHandler, service *salesreturn.Service) *SalesReturnHandler {
	return &SalesReturnHandler{BaseHandler: base, service: service}
}

// List handles GET /sales-returns.
func (h *SalesReturnHandler) List(c *gin.Context) {
	filter, ok := documentFilter(h.BaseHandler, c, "customerId")
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

// Get handles GET /sales-returns/:id.
func (h *SalesReturnHandler) Get(c *gin.Context) {
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

// Create handles POST /sales-returns. The credit note snapshots
// pricing from the referenced invoice; only quantities come from the
// caller.
func (h *SalesReturnHandler) Create(c *gin.Context) {
	var req dto.ReturnCreate
	if !h.BindJSON(c, &req) {
		return
	}

	invoiceID, err := id.Parse(req.DocumentID)
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

	doc, err := h.service.Create(c.Request.Context(), salesreturn.CreateRequest{
		InvoiceID: invoiceID,
		Date:      date,
		Reason:    req.Reason,
		Notes:     req.Notes,
		Lines:     lines,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, doc)
}

// Post handles POST /sales-returns/:id/post.
func (h *SalesReturnHandler) Post(c *gin.Context) {
	docID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Post(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "sales return posted")
}

// Unpost handles POST /sales-returns/:id/unpost.
func (h *SalesReturnHandler) Unpost(c *gin.Context) {
	docID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Unpost(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "sales return unposted")
}

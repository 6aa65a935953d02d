package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/id"
	"pharmabill/internal/domain/documents/invoice"
	"pharmabill/internal/domain/documents/salesreturn"
	"pharmabill/internal/gst"
	"pharmabill/internal/infrastructure/http/v1/dto"
)

// InvoiceHandler provides sales invoice endpoints.
type InvoiceHandler struct {
	*BaseHandler
	service *invoice.Service
	returns *salesreturn.Service
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(base *BaseHandler, service *invoice.Service, returns *salesreturn.Service) *InvoiceHandler {
	return &InvoiceHandler{BaseHandler: base, service: service, returns: returns}
}

// List handles GET /invoices.
func (h *InvoiceHandler) List(c *gin.Context) {
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

// Get handles GET /invoices/:id.
func (h *InvoiceHandler) Get(c *gin.Context) {
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

// Create handles POST /invoices.
func (h *InvoiceHandler) Create(c *gin.Context) {
	orgID, ok := h.CallerOrganization(c)
	if !ok {
		return
	}

	var req dto.InvoiceCreate
	if !h.BindJSON(c, &req) {
		return
	}

	customerID, err := id.Parse(req.CustomerID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid customerId"))
		return
	}

	taxType, err := gst.ParseTaxType(req.TaxType)
	if err != nil {
		h.Error(c, err)
		return
	}

	doc := invoice.New(orgID, customerID, taxType)
	doc.ManualCessRate = req.ManualCessRate
	doc.Discount = req.Discount
	doc.Notes = req.Notes
	if req.Date != nil {
		doc.Date = *req.Date
	}

	if err := applyLines(req.Lines, doc.AddLine); err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(c.Request.Context(), doc); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, doc)
}

// Update handles PUT /invoices/:id. Replaces content of an unposted
// invoice; lines are replaced wholesale.
func (h *InvoiceHandler) Update(c *gin.Context) {
	docID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.InvoiceUpdate
	if !h.BindJSON(c, &req) {
		return
	}

	taxType, err := gst.ParseTaxType(req.TaxType)
	if err != nil {
		h.Error(c, err)
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	doc.TaxType = taxType
	doc.ManualCessRate = req.ManualCessRate
	doc.Discount = req.Discount
	doc.Notes = req.Notes
	doc.Version = req.Version
	if req.Date != nil {
		doc.Date = *req.Date
	}

	doc.Lines = doc.Lines[:0]
	if err := applyLines(req.Lines, doc.AddLine); err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Update(c.Request.Context(), doc); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, doc)
}

// Delete handles DELETE /invoices/:id (soft delete, unposted only).
func (h *InvoiceHandler) Delete(c *gin.Context) {
	docID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// Post handles POST /invoices/:id/post.
func (h *InvoiceHandler) Post(c *gin.Context) {
	docID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Post(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "invoice posted")
}

// Unpost handles POST /invoices/:id/unpost.
func (h *InvoiceHandler) Unpost(c *gin.Context) {
	docID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Unpost(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "invoice unposted")
}

// ApplyPayment handles POST /invoices/:id/payments.
func (h *InvoiceHandler) ApplyPayment(c *gin.Context) {
	docID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.PaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.ApplyPayment(c.Request.Context(), docID, req.Amount, req.Method, req.Reference)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, doc)
}

// ListPayments handles GET /invoices/:id/payments.
func (h *InvoiceHandler) ListPayments(c *gin.Context) {
	docID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	payments, err := h.service.ListPayments(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, payments)
}

// ListReturns handles GET /invoices/:id/returns, the credit notes
// raised against this invoice.
func (h *InvoiceHandler) ListReturns(c *gin.Context) {
	docID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	items, err := h.returns.ListByInvoice(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, items)
}

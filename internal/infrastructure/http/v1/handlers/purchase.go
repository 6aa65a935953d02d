package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/id"
	"pharmabill/internal/domain/documents/purchase"
	"pharmabill/internal/domain/documents/purchasereturn"
	"pharmabill/internal/gst"
	"pharmabill/internal/infrastructure/http/v1/dto"
)

// PurchaseHandler provides purchase (supplier bill) endpoints.
type PurchaseHandler struct {
	*BaseHandler
	service *purchase.Service
	returns *purchasereturn.Service
}

// NewPurchaseHandler creates a new purchase handler.
func NewPurchaseHandler(base *BaseHandler, service *purchase.Service, returns *purchasereturn.Service) *PurchaseHandler {
	return &PurchaseHandler{BaseHandler: base, service: service, returns: returns}
}

// List handles GET /purchases.
func (h *PurchaseHandler) List(c *gin.Context) {
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

// Get handles GET /purchases/:id.
func (h *PurchaseHandler) Get(c *gin.Context) {
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

// Create handles POST /purchases.
func (h *PurchaseHandler) Create(c *gin.Context) {
	orgID, ok := h.CallerOrganization(c)
	if !ok {
		return
	}

	var req dto.PurchaseCreate
	if !h.BindJSON(c, &req) {
		return
	}

	supplierID, err := id.Parse(req.SupplierID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid supplierId"))
		return
	}

	taxType, err := gst.ParseTaxType(req.TaxType)
	if err != nil {
		h.Error(c, err)
		return
	}

	doc := purchase.New(orgID, supplierID, taxType)
	doc.SupplierBillNumber = req.SupplierBillNumber
	doc.SupplierBillDate = req.SupplierBillDate
	doc.ManualCessRate = req.ManualCessRate
	doc.Discount = req.Discount
	doc.Freight = req.Freight
	doc.Packaging = req.Packaging
	doc.OtherCharges = req.OtherCharges
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

// Update handles PUT /purchases/:id.
func (h *PurchaseHandler) Update(c *gin.Context) {
	docID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.PurchaseUpdate
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
	doc.SupplierBillNumber = req.SupplierBillNumber
	doc.SupplierBillDate = req.SupplierBillDate
	doc.ManualCessRate = req.ManualCessRate
	doc.Discount = req.Discount
	doc.Freight = req.Freight
	doc.Packaging = req.Packaging
	doc.OtherCharges = req.OtherCharges
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

// Delete handles DELETE /purchases/:id.
func (h *PurchaseHandler) Delete(c *gin.Context) {
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

// Post handles POST /purchases/:id/post.
func (h *PurchaseHandler) Post(c *gin.Context) {
	docID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Post(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "purchase posted")
}

// Unpost handles POST /purchases/:id/unpost.
func (h *PurchaseHandler) Unpost(c *gin.Context) {
	docID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Unpost(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "purchase unposted")
}

// ApplyPayment handles POST /purchases/:id/payments.
func (h *PurchaseHandler) ApplyPayment(c *gin.Context) {
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

// ListPayments handles GET /purchases/:id/payments.
func (h *PurchaseHandler) ListPayments(c *gin.Context) {
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

// ListReturns handles GET /purchases/:id/returns, the debit notes
// raised against this purchase.
func (h *PurchaseHandler) ListReturns(c *gin.Context) {
	docID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	items, err := h.returns.ListByPurchase(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, items)
}

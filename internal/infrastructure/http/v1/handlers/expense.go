package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pharmabill/internal/domain/documents/expense"
	"pharmabill/internal/infrastructure/http/v1/dto"
)

// ExpenseHandler provides operating expense endpoints.
type ExpenseHandler struct {
	*BaseHandler
	service *expense.Service
}

// NewExpenseHandler creates a new expense handler.
func NewExpenseHandler(base *BaseHandler, service *expense.Service) *ExpenseHandler {
	return &ExpenseHandler{BaseHandler: base, service: service}
}

// List handles GET /expenses.
func (h *ExpenseHandler) List(c *gin.Context) {
	filter, ok := documentFilter(h.BaseHandler, c, "")
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

// Get handles GET /expenses/:id.
func (h *ExpenseHandler) Get(c *gin.Context) {
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

// Create handles POST /expenses.
func (h *ExpenseHandler) Create(c *gin.Context) {
	orgID, ok := h.CallerOrganization(c)
	if !ok {
		return
	}

	var req dto.ExpenseCreate
	if !h.BindJSON(c, &req) {
		return
	}

	doc := expense.New(orgID, expense.Category(req.Category), req.Amount)
	doc.Payee = req.Payee
	doc.PaymentMethod = req.PaymentMethod
	doc.Notes = req.Notes
	if req.Date != nil {
		doc.Date = *req.Date
	}

	if err := h.service.Create(c.Request.Context(), doc); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, doc)
}

// Update handles PUT /expenses/:id.
func (h *ExpenseHandler) Update(c *gin.Context) {
	docID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.ExpenseUpdate
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	doc.Category = expense.Category(req.Category)
	doc.Amount = req.Amount
	doc.Payee = req.Payee
	doc.PaymentMethod = req.PaymentMethod
	doc.Notes = req.Notes
	doc.Version = req.Version
	if req.Date != nil {
		doc.Date = *req.Date
	}

	if err := h.service.Update(c.Request.Context(), doc); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, doc)
}

// Delete handles DELETE /expenses/:id.
func (h *ExpenseHandler) Delete(c *gin.Context) {
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

// Summary handles GET /expenses/summary, totals per category over a
// date range. Defaults to the current calendar month.
func (h *ExpenseHandler) Summary(c *gin.Context) {
	orgID, ok := h.CallerOrganization(c)
	if !ok {
		return
	}

	from, valid := h.ParseDateQuery(c, "dateFrom")
	if !valid {
		return
	}
	to, valid := h.ParseDateQuery(c, "dateTo")
	if !valid {
		return
	}

	now := time.Now()
	fromVal := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	toVal := now
	if from != nil {
		fromVal = *from
	}
	if to != nil {
		toVal = *to
	}

	summary, err := h.service.SummaryByCategory(c.Request.Context(), orgID, fromVal, toVal)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, summary)
}

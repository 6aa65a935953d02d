package handlers

import (
	"github.com/gin-gonic/gin"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/entity"
	"pharmabill/internal/domain/registers/stock"
)

// StockHandler provides read access to the stock register.
type StockHandler struct {
	*BaseHandler
	service *stock.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, service *stock.Service) *StockHandler {
	return &StockHandler{BaseHandler: base, service: service}
}

// Availability handles GET /stock/:productId/availability.
func (h *StockHandler) Availability(c *gin.Context) {
	productID, ok := h.ParseID(c, "productId")
	if !ok {
		return
	}

	total, err := h.service.GetProductAvailability(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{
		"productId": productID.String(),
		"available": total,
	})
}

// Balances handles GET /stock/:productId/balances, per-batch quantities.
func (h *StockHandler) Balances(c *gin.Context) {
	productID, ok := h.ParseID(c, "productId")
	if !ok {
		return
	}

	balances, err := h.service.GetBatchBalances(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, balances)
}

// Movements handles GET /stock/:productId/movements.
func (h *StockHandler) Movements(c *gin.Context) {
	productID, ok := h.ParseID(c, "productId")
	if !ok {
		return
	}

	filter := stock.MovementFilter{
		Limit:  h.ParseIntQuery(c, "limit", 100),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	var valid bool
	if filter.FromDate, valid = h.ParseDateQuery(c, "dateFrom"); !valid {
		return
	}
	if filter.ToDate, valid = h.ParseDateQuery(c, "dateTo"); !valid {
		return
	}

	if raw := c.Query("recordType"); raw != "" {
		rt := entity.RecordType(raw)
		if rt != entity.RecordTypeReceipt && rt != entity.RecordTypeIssue {
			h.Error(c, apperror.NewValidation("recordType must be receipt or issue"))
			return
		}
		filter.RecordType = &rt
	}

	movements, err := h.service.GetMovementHistory(c.Request.Context(), productID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, movements)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/id"
	"pharmabill/internal/core/types"
	"pharmabill/internal/domain"
	"pharmabill/internal/gst"
	"pharmabill/internal/infrastructure/http/v1/dto"
)

// documentFilter builds a DocumentFilter from common query parameters.
// partyParam names the query key holding the counterparty id
// ("customerId" or "supplierId"); empty disables party filtering.
func documentFilter(h *BaseHandler, c *gin.Context, partyParam string) (domain.DocumentFilter, bool) {
	orgID, ok := h.CallerOrganization(c)
	if !ok {
		return domain.DocumentFilter{}, false
	}

	filter := domain.DefaultDocumentFilter()
	filter.OrganizationID = orgID
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.Query("orderBy")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"
	filter.PaymentStatus = c.Query("paymentStatus")

	var valid bool
	if filter.DateFrom, valid = h.ParseDateQuery(c, "dateFrom"); !valid {
		return filter, false
	}
	if filter.DateTo, valid = h.ParseDateQuery(c, "dateTo"); !valid {
		return filter, false
	}

	if posted := c.Query("posted"); posted != "" {
		p := posted == "true"
		filter.Posted = &p
	}

	if partyParam != "" {
		if raw := c.Query(partyParam); raw != "" {
			partyID, err := id.Parse(raw)
			if err != nil {
				h.Error(c, apperror.NewValidation("invalid "+partyParam))
				return filter, false
			}
			filter.PartyID = &partyID
		}
	}

	return filter, true
}

// lineAdder matches the AddLine method shared by invoice and purchase.
type lineAdder func(productID, batchID id.ID, hsnCode string, quantity, unitPrice, gstRate, cessRate, discount types.Money)

func applyLines(lines []dto.LineCreate, add lineAdder) error {
	for i, l := range lines {
		productID, err := id.Parse(l.ProductID)
		if err != nil {
			return apperror.NewValidation("invalid productId").
				WithDetail("line", i+1)
		}

		batchID := id.Nil()
		if l.BatchID != "" {
			if batchID, err = id.Parse(l.BatchID); err != nil {
				return apperror.NewValidation("invalid batchId").
					WithDetail("line", i+1)
			}
		}

		add(productID, batchID, l.HSNCode, l.Quantity, l.UnitPrice, l.GSTRate, l.CessRate, l.Discount)
	}
	return nil
}

func parseReturnLines(lines []dto.ReturnLineCreate) ([]gst.ReturnLine, error) {
	out := make([]gst.ReturnLine, len(lines))
	for i, l := range lines {
		productID, err := id.Parse(l.ProductID)
		if err != nil {
			return nil, apperror.NewValidation("invalid productId").
				WithDetail("line", i+1)
		}

		batchID := id.Nil()
		if l.BatchID != "" {
			if batchID, err = id.Parse(l.BatchID); err != nil {
				return nil, apperror.NewValidation("invalid batchId").
					WithDetail("line", i+1)
			}
		}

		out[i] = gst.ReturnLine{
			ProductID: productID,
			BatchID:   batchID,
			Quantity:  l.Quantity,
		}
	}
	return out, nil
}

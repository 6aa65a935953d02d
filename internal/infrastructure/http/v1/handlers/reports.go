package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/id"
	"pharmabill/internal/domain/reports"
	"pharmabill/internal/infrastructure/export"
)

// ReportsHandler provides statutory report endpoints. Every report
// takes a from/to date range query.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: base, service: service}
}

// period parses the mandatory from/to query parameters.
func (h *ReportsHandler) period(c *gin.Context) (id.ID, reports.Period, bool) {
	orgID, ok := h.CallerOrganization(c)
	if !ok {
		return id.Nil(), reports.Period{}, false
	}

	from, valid := h.ParseDateQuery(c, "from")
	if !valid {
		return orgID, reports.Period{}, false
	}
	to, valid := h.ParseDateQuery(c, "to")
	if !valid {
		return orgID, reports.Period{}, false
	}

	if from == nil || to == nil {
		h.Error(c, apperror.NewValidation("from and to dates are required"))
		return orgID, reports.Period{}, false
	}

	return orgID, reports.Period{From: *from, To: *to}, true
}

// GSTR1 handles GET /reports/gstr1.
func (h *ReportsHandler) GSTR1(c *gin.Context) {
	orgID, period, ok := h.period(c)
	if !ok {
		return
	}

	report, err := h.service.GSTR1(c.Request.Context(), orgID, period)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

// GSTR1Export handles GET /reports/gstr1/export, the offline utility
// workbook download.
func (h *ReportsHandler) GSTR1Export(c *gin.Context) {
	orgID, period, ok := h.period(c)
	if !ok {
		return
	}

	report, err := h.service.GSTR1(c.Request.Context(), orgID, period)
	if err != nil {
		h.Error(c, err)
		return
	}

	data, err := export.GSTR1Workbook(report)
	if err != nil {
		h.Error(c, err)
		return
	}

	filename := fmt.Sprintf("gstr1_%s_%s.xlsx",
		period.From.Format("20060102"), period.To.Format("20060102"))

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// GSTR3B handles GET /reports/gstr3b.
func (h *ReportsHandler) GSTR3B(c *gin.Context) {
	orgID, period, ok := h.period(c)
	if !ok {
		return
	}

	report, err := h.service.GSTR3B(c.Request.Context(), orgID, period)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

// HSNSummary handles GET /reports/hsn-summary.
func (h *ReportsHandler) HSNSummary(c *gin.Context) {
	orgID, period, ok := h.period(c)
	if !ok {
		return
	}

	report, err := h.service.HSNSummary(c.Request.Context(), orgID, period)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

// TaxSummary handles GET /reports/tax-summary.
func (h *ReportsHandler) TaxSummary(c *gin.Context) {
	orgID, period, ok := h.period(c)
	if !ok {
		return
	}

	report, err := h.service.TaxSummary(c.Request.Context(), orgID, period)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

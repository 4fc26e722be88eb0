package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"orderintake/internal/service"
)

// InsightsHandler serves aggregate views over stored orders.
type InsightsHandler struct {
	insights service.InsightsService
}

// NewInsightsHandler creates a new InsightsHandler.
func NewInsightsHandler(insights service.InsightsService) *InsightsHandler {
	return &InsightsHandler{insights: insights}
}

// CommonProducts handles GET /api/insights/common-products.
func (h *InsightsHandler) CommonProducts(c *gin.Context) {
	pairs, err := h.insights.CommonProducts(c.Request.Context(), intQuery(c, "min_occurrences", 2))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, pairs)
}

// CustomerPatterns handles GET /api/insights/customer-patterns.
func (h *InsightsHandler) CustomerPatterns(c *gin.Context) {
	patterns, err := h.insights.CustomerPatterns(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, patterns)
}

// TimeBased handles GET /api/insights/time-based.
func (h *InsightsHandler) TimeBased(c *gin.Context) {
	insights, err := h.insights.TimeBased(c.Request.Context(), intQuery(c, "days", 30))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, insights)
}

// mergeRequest is the body for POST /api/orders/merge.
type mergeRequest struct {
	OrderIDs []string `json:"order_ids" binding:"required,min=1"`
}

// MergeOrders handles POST /api/orders/merge.
func (h *InsightsHandler) MergeOrders(c *gin.Context) {
	var req mergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "order_ids is required")
		return
	}
	result, err := h.insights.MergeOrders(c.Request.Context(), req.OrderIDs)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Export handles GET /api/insights/export.
func (h *InsightsHandler) Export(c *gin.Context) {
	report, err := h.insights.Report(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, report)
}

// intQuery reads a positive integer query parameter, falling back to
// the default on absence or garbage.
func intQuery(c *gin.Context, name string, def int) int {
	if v := c.Query(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

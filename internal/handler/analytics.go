package handler

import (
	"net/http"
	"time"

	"github.com/finman-2025/finman-backend/internal/service"
	"github.com/finman-2025/finman-backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler serves the spending aggregates.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Totals returns spent/earned sums, optionally narrowed by categoryId
// and/or an inclusive startDate..endDate range.
func (h *AnalyticsHandler) Totals(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	categoryID, ok := queryCategoryID(c)
	if !ok {
		return
	}
	start, ok := queryDate(c, "startDate")
	if !ok {
		return
	}
	end, ok := queryDate(c, "endDate")
	if !ok {
		return
	}

	totals, err := h.analytics.Totals(user.ID, categoryID, start, end)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"totals": totals})
}

// Summaries returns per-category totals over a required date range, the
// uncategorized bucket included.
func (h *AnalyticsHandler) Summaries(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	start, err := time.Parse(dateLayout, c.Query("startDate"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid startDate")
		return
	}
	end, err := time.Parse(dateLayout, c.Query("endDate"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid endDate")
		return
	}
	if end.Before(start) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "endDate before startDate")
		return
	}

	summaries, err := h.analytics.CategorySummaries(user.ID, start, end)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"categories": summaries})
}

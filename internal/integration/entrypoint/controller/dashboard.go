// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/field-console/backend/internal/application/usecase/dashboard"
	domainerror "github.com/field-console/backend/internal/domain/error"
	"github.com/field-console/backend/internal/integration/entrypoint/dto"
	"github.com/field-console/backend/internal/integration/entrypoint/middleware"
)

// DashboardController handles dashboard summary endpoints.
type DashboardController struct {
	dailyCollectionUseCase *dashboard.GetDailyCollectionUseCase
	dailySavingsUseCase    *dashboard.GetDailySavingsUseCase
	outstandingUseCase     *dashboard.GetOutstandingUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	dailyCollectionUseCase *dashboard.GetDailyCollectionUseCase,
	dailySavingsUseCase *dashboard.GetDailySavingsUseCase,
	outstandingUseCase *dashboard.GetOutstandingUseCase,
) *DashboardController {
	return &DashboardController{
		dailyCollectionUseCase: dailyCollectionUseCase,
		dailySavingsUseCase:    dailySavingsUseCase,
		outstandingUseCase:     outstandingUseCase,
	}
}

// DailyCollection handles GET /dashboard/daily-collection requests.
func (c *DashboardController) DailyCollection(ctx *gin.Context) {
	collectorID, ok := middleware.GetCollectorIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	day, ok := parseDateQuery(ctx)
	if !ok {
		return
	}

	output, err := c.dailyCollectionUseCase.Execute(ctx.Request.Context(), dashboard.GetDailyCollectionInput{
		CollectorID: collectorID,
		Date:        day,
	})
	if err != nil {
		respondInternalError(ctx)
		return
	}
	ctx.JSON(http.StatusOK, output)
}

// DailySavings handles GET /dashboard/daily-savings requests.
func (c *DashboardController) DailySavings(ctx *gin.Context) {
	collectorID, ok := middleware.GetCollectorIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	day, ok := parseDateQuery(ctx)
	if !ok {
		return
	}

	output, err := c.dailySavingsUseCase.Execute(ctx.Request.Context(), dashboard.GetDailySavingsInput{
		CollectorID: collectorID,
		Date:        day,
	})
	if err != nil {
		respondInternalError(ctx)
		return
	}
	ctx.JSON(http.StatusOK, output)
}

// Outstanding handles GET /dashboard/outstanding requests.
func (c *DashboardController) Outstanding(ctx *gin.Context) {
	collectorID, ok := middleware.GetCollectorIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.outstandingUseCase.Execute(ctx.Request.Context(), dashboard.GetOutstandingInput{
		CollectorID: collectorID,
	})
	if err != nil {
		respondInternalError(ctx)
		return
	}
	ctx.JSON(http.StatusOK, output)
}

// parseDateQuery reads the optional ?date=YYYY-MM-DD parameter. A malformed
// value is a client error; an absent value means "today".
func parseDateQuery(ctx *gin.Context) (time.Time, bool) {
	raw := ctx.Query("date")
	if raw == "" {
		return time.Time{}, true
	}
	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: domainerror.ErrInvalidDateFormat.Error(),
			Code:  string(domainerror.ErrCodeInvalidDateFormat),
		})
		return time.Time{}, false
	}
	return day, true
}

// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/field-console/backend/internal/application/usecase/sheet"
	"github.com/field-console/backend/internal/integration/entrypoint/dto"
	"github.com/field-console/backend/internal/integration/entrypoint/middleware"
)

// SheetController handles collection-sheet endpoints.
type SheetController struct {
	buildUseCase *sheet.BuildCollectionSheetUseCase
}

// NewSheetController creates a new sheet controller instance.
func NewSheetController(buildUseCase *sheet.BuildCollectionSheetUseCase) *SheetController {
	return &SheetController{
		buildUseCase: buildUseCase,
	}
}

// Get handles GET /sheet requests.
func (c *SheetController) Get(ctx *gin.Context) {
	collectorID, ok := middleware.GetCollectorIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	year, month, ok := parsePeriod(ctx)
	if !ok {
		return
	}
	output, err := c.buildUseCase.Execute(ctx.Request.Context(), sheet.BuildCollectionSheetInput{
		CollectorID: collectorID,
		Year:        year,
		Month:       month,
	})
	if err != nil {
		respondInternalError(ctx)
		return
	}

	response := dto.SheetResponse{
		Year:    output.Year,
		Month:   int(output.Month),
		Members: make([]dto.SheetMemberResponse, 0, len(output.Members)),
	}
	for _, model := range output.Members {
		response.Members = append(response.Members, dto.ToSheetMemberResponse(model))
	}

	ctx.JSON(http.StatusOK, response)
}

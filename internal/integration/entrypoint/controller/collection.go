// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/field-console/backend/internal/application/usecase/collection"
	domainerror "github.com/field-console/backend/internal/domain/error"
	"github.com/field-console/backend/internal/integration/entrypoint/dto"
	"github.com/field-console/backend/internal/integration/entrypoint/middleware"
)

// CollectionController handles collection-recording endpoints.
type CollectionController struct {
	recordUseCase *collection.RecordCollectionUseCase
}

// NewCollectionController creates a new collection controller instance.
func NewCollectionController(recordUseCase *collection.RecordCollectionUseCase) *CollectionController {
	return &CollectionController{
		recordUseCase: recordUseCase,
	}
}

// Record handles POST /collections requests.
func (c *CollectionController) Record(ctx *gin.Context) {
	collectorID, ok := middleware.GetCollectorIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.RecordCollectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	memberID, err := uuid.Parse(req.MemberID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid member ID",
		})
		return
	}

	output, err := c.recordUseCase.Execute(ctx.Request.Context(), collection.RecordCollectionInput{
		CollectorID:    collectorID,
		MemberID:       memberID,
		Amount:         req.Amount,
		Kind:           collection.Kind(req.Kind),
		Note:           req.Note,
		DistributionID: req.DistributionID,
		CollectionDate: req.CollectionDate,
	})
	if err != nil {
		c.handleCollectionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCollectionRecordResponse(output.Record))
}

// handleCollectionError maps collection domain errors to HTTP responses.
func (c *CollectionController) handleCollectionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domainerror.ErrInvalidCollectionAmount):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
			Code:  string(domainerror.ErrCodeInvalidCollectionAmount),
		})
	case errors.Is(err, domainerror.ErrInvalidCollectionType):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
			Code:  string(domainerror.ErrCodeInvalidCollectionType),
		})
	case errors.Is(err, domainerror.ErrMemberNotOwnedByCollector):
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{
			Error: err.Error(),
			Code:  string(domainerror.ErrCodeMemberNotOwned),
		})
	default:
		respondInternalError(ctx)
	}
}

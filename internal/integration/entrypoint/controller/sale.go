// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/field-console/backend/internal/application/usecase/sale"
	"github.com/field-console/backend/internal/domain/entity"
	domainerror "github.com/field-console/backend/internal/domain/error"
	"github.com/field-console/backend/internal/integration/entrypoint/dto"
	"github.com/field-console/backend/internal/integration/entrypoint/middleware"
)

// SaleController handles product-sale endpoints.
type SaleController struct {
	registerUseCase *sale.RegisterSaleUseCase
}

// NewSaleController creates a new sale controller instance.
func NewSaleController(registerUseCase *sale.RegisterSaleUseCase) *SaleController {
	return &SaleController{
		registerUseCase: registerUseCase,
	}
}

// Register handles POST /sales requests.
func (c *SaleController) Register(ctx *gin.Context) {
	collectorID, ok := middleware.GetCollectorIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.RegisterSaleRequest
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

	products := make([]sale.ProductInput, 0, len(req.Products))
	for _, p := range req.Products {
		products = append(products, sale.ProductInput{
			Name:                 p.Name,
			TotalAmount:          p.TotalAmount,
			TotalInstallments:    p.TotalInstallments,
			InstallmentFrequency: entity.InstallmentFrequency(p.InstallmentFrequency),
			DeliveryDate:         p.DeliveryDate,
		})
	}

	output, err := c.registerUseCase.Execute(ctx.Request.Context(), sale.RegisterSaleInput{
		CollectorID: collectorID,
		MemberID:    memberID,
		SaleDate:    req.SaleDate,
		Products:    products,
	})
	if err != nil {
		c.handleSaleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.RegisterSaleResponse{
		SaleTransactionID: output.SaleTransactionID,
		DistributionIDs:   output.DistributionIDs,
		TotalAmount:       output.Row.TotalAmount(),
	})
}

// handleSaleError maps sale domain errors to HTTP responses.
func (c *SaleController) handleSaleError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domainerror.ErrEmptySaleProducts):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
			Code:  string(domainerror.ErrCodeEmptySaleProducts),
		})
	case errors.Is(err, domainerror.ErrInvalidInstallmentCount):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
			Code:  string(domainerror.ErrCodeInvalidInstallmentCount),
		})
	case errors.Is(err, domainerror.ErrInvalidCollectionAmount):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
			Code:  string(domainerror.ErrCodeInvalidCollectionAmount),
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

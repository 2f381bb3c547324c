// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/field-console/backend/internal/application/usecase/member"
	domainerror "github.com/field-console/backend/internal/domain/error"
	"github.com/field-console/backend/internal/domain/valueobject"
	"github.com/field-console/backend/internal/integration/entrypoint/dto"
	"github.com/field-console/backend/internal/integration/entrypoint/middleware"
)

// MemberController handles member endpoints.
type MemberController struct {
	listUseCase   *member.ListMembersUseCase
	createUseCase *member.CreateMemberUseCase
	ledgerUseCase *member.GetMemberLedgerUseCase
}

// NewMemberController creates a new member controller instance.
func NewMemberController(
	listUseCase *member.ListMembersUseCase,
	createUseCase *member.CreateMemberUseCase,
	ledgerUseCase *member.GetMemberLedgerUseCase,
) *MemberController {
	return &MemberController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		ledgerUseCase: ledgerUseCase,
	}
}

// List handles GET /members requests.
func (c *MemberController) List(ctx *gin.Context) {
	collectorID, ok := middleware.GetCollectorIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), member.ListMembersInput{
		CollectorID: collectorID,
	})
	if err != nil {
		respondInternalError(ctx)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMemberListResponse(output.Members))
}

// Create handles POST /members requests.
func (c *MemberController) Create(ctx *gin.Context) {
	collectorID, ok := middleware.GetCollectorIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), member.CreateMemberInput{
		CollectorID:     collectorID,
		Name:            req.Name,
		Phone:           req.Phone,
		Area:            req.Area,
		ScheduleMode:    valueobject.ScheduleMode(req.ScheduleMode),
		ScheduleWeekday: time.Weekday(req.ScheduleWeekday),
	})
	if err != nil {
		if errors.Is(err, domainerror.ErrInvalidScheduleMode) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: err.Error(),
				Code:  string(domainerror.ErrCodeInvalidScheduleMode),
			})
			return
		}
		respondInternalError(ctx)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToMemberResponse(output.Member))
}

// Ledger handles GET /members/:id/ledger requests.
func (c *MemberController) Ledger(ctx *gin.Context) {
	collectorID, ok := middleware.GetCollectorIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	memberID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid member ID",
		})
		return
	}

	year, month, ok := parsePeriod(ctx)
	if !ok {
		return
	}
	output, err := c.ledgerUseCase.Execute(ctx.Request.Context(), member.GetMemberLedgerInput{
		CollectorID: collectorID,
		MemberID:    memberID,
		Year:        year,
		Month:       month,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainerror.ErrMemberNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error: err.Error(),
				Code:  string(domainerror.ErrCodeMemberNotFound),
			})
		case errors.Is(err, domainerror.ErrMemberNotOwnedByCollector):
			ctx.JSON(http.StatusForbidden, dto.ErrorResponse{
				Error: err.Error(),
				Code:  string(domainerror.ErrCodeMemberNotOwned),
			})
		default:
			respondInternalError(ctx)
		}
		return
	}

	ctx.JSON(http.StatusOK, dto.LedgerResponse{
		Year:    output.Year,
		Month:   int(output.Month),
		Columns: dto.ToColumnStrings(output.Model.Columns),
		Member:  dto.ToSheetMemberResponse(output.Model),
	})
}

// parsePeriod reads optional ?year= and ?month= query parameters. Zero
// values mean "current month"; an out-of-range month is a client error.
func parsePeriod(ctx *gin.Context) (int, time.Month, bool) {
	year, _ := strconv.Atoi(ctx.Query("year"))
	month, _ := strconv.Atoi(ctx.Query("month"))
	if month < 0 || month > 12 || year < 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: domainerror.ErrInvalidPeriod.Error(),
			Code:  string(domainerror.ErrCodeInvalidPeriod),
		})
		return 0, 0, false
	}
	return year, time.Month(month), true
}

func respondUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "Authentication required",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}

func respondInternalError(ctx *gin.Context) {
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

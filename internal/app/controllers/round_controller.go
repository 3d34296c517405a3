package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emrekrt/placementhub/internal/app/models/dto"
	"github.com/emrekrt/placementhub/internal/app/services"
	"github.com/emrekrt/placementhub/internal/middleware"
)

// RoundController handles selection round operations
type RoundController struct {
	roundService services.RoundService
	logger       zerolog.Logger
}

// NewRoundController creates a new RoundController
func NewRoundController(roundService services.RoundService, logger zerolog.Logger) *RoundController {
	return &RoundController{
		roundService: roundService,
		logger:       logger,
	}
}

// ListRounds lists a drive's rounds
// @Summary List selection rounds
// @Description Returns the drive's rounds in index order. Drive managers only.
// @Tags rounds
// @Produce json
// @Security BearerAuth
// @Param driveId path int true "Drive id"
// @Success 200 {object} dto.APIResponse{data=[]dto.RoundResponse} "Rounds"
// @Failure 403 {object} dto.ErrorResponse "Not a manager of this drive"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Router /drives/{driveId}/rounds [get]
func (c *RoundController) ListRounds(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	driveID, ok := parseIDParam(ctx, "driveId")
	if !ok {
		return
	}

	rounds, err := c.roundService.ListRounds(ctx.Request.Context(), actor, driveID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(rounds))
}

// GetCandidatePool returns a round's candidate pool
// @Summary Get a round's candidate pool
// @Description Returns the student ids the round may select from: all applicants for the first round, the previous round's selections afterwards.
// @Tags rounds
// @Produce json
// @Security BearerAuth
// @Param driveId path int true "Drive id"
// @Param roundIndex path int true "Round index, zero based"
// @Success 200 {object} dto.APIResponse{data=dto.CandidatePoolResponse} "Candidate pool"
// @Failure 403 {object} dto.ErrorResponse "Not a manager of this drive"
// @Failure 404 {object} dto.ErrorResponse "Drive or round not found"
// @Router /drives/{driveId}/rounds/{roundIndex}/pool [get]
func (c *RoundController) GetCandidatePool(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	driveID, ok := parseIDParam(ctx, "driveId")
	if !ok {
		return
	}
	roundIndex, ok := parseIndexParam(ctx, "roundIndex")
	if !ok {
		return
	}

	pool, err := c.roundService.GetCandidatePool(ctx.Request.Context(), actor, driveID, roundIndex)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(pool))
}

// AdvanceStatus moves a round one status forward
// @Summary Advance round status
// @Description Moves the round one step along PENDING, IN_PROGRESS, COMPLETED. Any other change is rejected.
// @Tags rounds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param driveId path int true "Drive id"
// @Param roundIndex path int true "Round index, zero based"
// @Param request body dto.AdvanceRoundRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=dto.RoundResponse} "Round updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 403 {object} dto.ErrorResponse "Not a manager of this drive"
// @Failure 404 {object} dto.ErrorResponse "Drive or round not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid transition or concurrent update"
// @Router /drives/{driveId}/rounds/{roundIndex}/status [patch]
func (c *RoundController) AdvanceStatus(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	driveID, ok := parseIDParam(ctx, "driveId")
	if !ok {
		return
	}
	roundIndex, ok := parseIndexParam(ctx, "roundIndex")
	if !ok {
		return
	}

	var req dto.AdvanceRoundRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	round, err := c.roundService.AdvanceStatus(ctx.Request.Context(), actor, driveID, roundIndex, req.Status)
	if err != nil {
		c.logger.Debug().Err(err).
			Int64("driveId", driveID).
			Int("roundIndex", roundIndex).
			Msg("Round status change rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(round))
}

// SelectStudents replaces a round's selections
// @Summary Select students for a round
// @Description Replaces the round's selected set. Every id must come from the round's candidate pool; ids outside it fail the whole request.
// @Tags rounds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param driveId path int true "Drive id"
// @Param roundIndex path int true "Round index, zero based"
// @Param request body dto.SelectStudentsRequest true "Selected student ids"
// @Success 200 {object} dto.APIResponse{data=dto.RoundResponse} "Selections saved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or student outside the pool"
// @Failure 403 {object} dto.ErrorResponse "Not a manager of this drive"
// @Failure 404 {object} dto.ErrorResponse "Drive or round not found"
// @Router /drives/{driveId}/rounds/{roundIndex}/selections [put]
func (c *RoundController) SelectStudents(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	driveID, ok := parseIDParam(ctx, "driveId")
	if !ok {
		return
	}
	roundIndex, ok := parseIndexParam(ctx, "roundIndex")
	if !ok {
		return
	}

	var req dto.SelectStudentsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	round, err := c.roundService.SelectStudents(ctx.Request.Context(), actor, driveID, roundIndex, req.StudentUserIDs)
	if err != nil {
		c.logger.Debug().Err(err).
			Int64("driveId", driveID).
			Int("roundIndex", roundIndex).
			Msg("Selection replacement rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(round))
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emrekrt/placementhub/internal/app/models/dto"
	"github.com/emrekrt/placementhub/internal/app/services"
	"github.com/emrekrt/placementhub/internal/middleware"
)

// StudentController handles student profile operations
type StudentController struct {
	studentService services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// GetMyProfile returns the authenticated student's profile
// @Summary Get own profile
// @Description Returns the placement profile of the authenticated student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse} "Profile"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /students/me [get]
func (c *StudentController) GetMyProfile(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	profile, err := c.studentService.GetProfile(ctx.Request.Context(), actor.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile))
}

// UpsertMyProfile creates or updates the authenticated student's profile
// @Summary Create or update own profile
// @Description Creates the placement profile, or updates its student-owned fields. CGPA changes after creation go through the officer bulk endpoint.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpsertProfileRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse} "Profile saved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Not a student"
// @Router /students/me [put]
func (c *StudentController) UpsertMyProfile(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.UpsertProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid profile request payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	profile, err := c.studentService.UpsertProfile(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userId", actor.ID).Msg("Student profile saved")
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile))
}

// BulkUpdateCGPA applies a CGPA upload
// @Summary Bulk update CGPA
// @Description Applies a placement officer's CGPA upload. Rows without a matching profile are skipped and reported.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkCGPARequest true "CGPA records"
// @Success 200 {object} dto.APIResponse{data=dto.BulkCGPAResponse} "Upload applied"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 403 {object} dto.ErrorResponse "Not a placement officer"
// @Router /students/cgpa [post]
func (c *StudentController) BulkUpdateCGPA(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.BulkCGPARequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid bulk CGPA payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.studentService.BulkUpdateCGPA(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}

// MarkPlaced marks a student as placed
// @Summary Mark student placed
// @Description Flips the student's placement status to PLACED
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Student user id"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Status updated"
// @Failure 403 {object} dto.ErrorResponse "Not staff"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /students/{userId}/placed [post]
func (c *StudentController) MarkPlaced(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	if err := c.studentService.MarkPlaced(ctx.Request.Context(), actor, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("studentId", userID).Int64("by", actor.ID).Msg("Student marked placed")
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Placement status updated"}))
}

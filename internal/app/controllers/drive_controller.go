package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emrekrt/placementhub/internal/app/models/dto"
	"github.com/emrekrt/placementhub/internal/app/services"
	"github.com/emrekrt/placementhub/internal/middleware"
)

// DriveController handles job drive operations
type DriveController struct {
	driveService services.DriveService
	logger       zerolog.Logger
}

// NewDriveController creates a new DriveController
func NewDriveController(driveService services.DriveService, logger zerolog.Logger) *DriveController {
	return &DriveController{
		driveService: driveService,
		logger:       logger,
	}
}

// CreateDrive creates a drive
// @Summary Create a job drive
// @Description Creates a drive with its eligibility criteria and fixed round list. Placement staff only.
// @Tags drives
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDriveRequest true "Drive definition"
// @Success 201 {object} dto.APIResponse{data=dto.DriveResponse} "Drive created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or validation failure"
// @Failure 403 {object} dto.ErrorResponse "Not placement staff"
// @Router /drives [post]
func (c *DriveController) CreateDrive(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateDriveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid create drive payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	drive, err := c.driveService.CreateDrive(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(drive))
}

// UpdateDrive updates a drive's core fields
// @Summary Update a job drive
// @Description Updates a drive's details and eligibility criteria. Creator only; the round list is fixed.
// @Tags drives
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param driveId path int true "Drive id"
// @Param request body dto.UpdateDriveRequest true "Updated drive fields"
// @Success 200 {object} dto.APIResponse{data=dto.DriveResponse} "Drive updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or validation failure"
// @Failure 403 {object} dto.ErrorResponse "Not the creator"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Router /drives/{driveId} [put]
func (c *DriveController) UpdateDrive(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	driveID, ok := parseIDParam(ctx, "driveId")
	if !ok {
		return
	}

	var req dto.UpdateDriveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid update drive payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	drive, err := c.driveService.UpdateDrive(ctx.Request.Context(), actor, driveID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(drive))
}

// DeleteDrive deactivates a drive
// @Summary Delete a job drive
// @Description Deactivates the drive. Applications and round history are kept. Creator only.
// @Tags drives
// @Produce json
// @Security BearerAuth
// @Param driveId path int true "Drive id"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Drive deactivated"
// @Failure 403 {object} dto.ErrorResponse "Not the creator"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Router /drives/{driveId} [delete]
func (c *DriveController) DeleteDrive(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	driveID, ok := parseIDParam(ctx, "driveId")
	if !ok {
		return
	}

	if err := c.driveService.DeleteDrive(ctx.Request.Context(), actor, driveID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Drive deactivated"}))
}

// GetDrive returns one drive
// @Summary Get a job drive
// @Description Returns the drive with the viewer flags resolved for the caller. Students only see drives they are eligible for.
// @Tags drives
// @Produce json
// @Security BearerAuth
// @Param driveId path int true "Drive id"
// @Success 200 {object} dto.APIResponse{data=dto.DriveResponse} "Drive"
// @Failure 404 {object} dto.ErrorResponse "Drive not found or not visible"
// @Router /drives/{driveId} [get]
func (c *DriveController) GetDrive(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	driveID, ok := parseIDParam(ctx, "driveId")
	if !ok {
		return
	}

	drive, err := c.driveService.GetDrive(ctx.Request.Context(), actor, driveID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(drive))
}

// ListDrives returns the drives visible to the caller
// @Summary List job drives
// @Description Returns a page of drives. Staff see every drive matching the filters; students see active, unended drives whose criteria they satisfy.
// @Tags drives
// @Produce json
// @Security BearerAuth
// @Param company query string false "Filter by company name"
// @Param active query bool false "Filter by active flag (staff only)"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.DriveListResponse} "Drive listing"
// @Failure 400 {object} dto.ErrorResponse "Invalid filters"
// @Router /drives [get]
func (c *DriveController) ListDrives(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var filter dto.DriveFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	listing, err := c.driveService.ListDrives(ctx.Request.Context(), actor, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(listing))
}

// Apply applies the caller to a drive
// @Summary Apply to a drive
// @Description Records the student's application. Rejects duplicates, ineligible profiles and closed windows.
// @Tags drives
// @Produce json
// @Security BearerAuth
// @Param driveId path int true "Drive id"
// @Success 201 {object} dto.APIResponse{data=dto.ApplicationResponse} "Application recorded"
// @Failure 403 {object} dto.ErrorResponse "Not eligible or not a student"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Failure 409 {object} dto.ErrorResponse "Already applied or window closed"
// @Router /drives/{driveId}/apply [post]
func (c *DriveController) Apply(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	driveID, ok := parseIDParam(ctx, "driveId")
	if !ok {
		return
	}

	application, err := c.driveService.Apply(ctx.Request.Context(), actor, driveID)
	if err != nil {
		c.logger.Debug().Err(err).Int64("driveId", driveID).Int64("studentId", actor.ID).Msg("Application rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(application))
}

// GetApplicants lists a drive's applicants
// @Summary List drive applicants
// @Description Returns every application of the drive with the student profiles. Drive managers only.
// @Tags drives
// @Produce json
// @Security BearerAuth
// @Param driveId path int true "Drive id"
// @Success 200 {object} dto.APIResponse{data=[]dto.ApplicationResponse} "Applicants"
// @Failure 403 {object} dto.ErrorResponse "Not a manager of this drive"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Router /drives/{driveId}/applicants [get]
func (c *DriveController) GetApplicants(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	driveID, ok := parseIDParam(ctx, "driveId")
	if !ok {
		return
	}

	applicants, err := c.driveService.GetApplicants(ctx.Request.Context(), actor, driveID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(applicants))
}

// GetMyApplications lists the caller's applications
// @Summary List own applications
// @Description Returns the authenticated student's applications
// @Tags drives
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ApplicationResponse} "Applications"
// @Failure 403 {object} dto.ErrorResponse "Not a student"
// @Router /applications/me [get]
func (c *DriveController) GetMyApplications(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	applications, err := c.driveService.GetMyApplications(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(applications))
}

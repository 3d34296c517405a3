package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/emrekrt/placementhub/internal/app/auth"
	"github.com/emrekrt/placementhub/internal/app/eligibility"
	"github.com/emrekrt/placementhub/internal/app/models"
	"github.com/emrekrt/placementhub/internal/app/models/dto"
	"github.com/emrekrt/placementhub/internal/app/selection"
	"github.com/emrekrt/placementhub/internal/pkg/apperrors"
	"github.com/emrekrt/placementhub/internal/pkg/helpers"
	"github.com/emrekrt/placementhub/internal/pkg/logger"
)

// DriveService coordinates the drive lifecycle: creation and editing by staff,
// eligibility-filtered listing for students, and the application flow.
type DriveService interface {
	CreateDrive(ctx context.Context, actor models.Actor, req *dto.CreateDriveRequest) (*dto.DriveResponse, error)
	UpdateDrive(ctx context.Context, actor models.Actor, driveID int64, req *dto.UpdateDriveRequest) (*dto.DriveResponse, error)
	DeleteDrive(ctx context.Context, actor models.Actor, driveID int64) error
	GetDrive(ctx context.Context, actor models.Actor, driveID int64) (*dto.DriveResponse, error)
	ListDrives(ctx context.Context, actor models.Actor, filter *dto.DriveFilterRequest) (*dto.DriveListResponse, error)
	Apply(ctx context.Context, actor models.Actor, driveID int64) (*dto.ApplicationResponse, error)
	GetApplicants(ctx context.Context, actor models.Actor, driveID int64) ([]dto.ApplicationResponse, error)
	GetMyApplications(ctx context.Context, actor models.Actor) ([]dto.ApplicationResponse, error)
}

type driveService struct {
	driveStore       DriveStore
	applicationStore ApplicationStore
	studentStore     StudentStore
	authz            *auth.AuthorizationService

	now func() time.Time
}

// NewDriveService creates a new DriveService
func NewDriveService(driveStore DriveStore, applicationStore ApplicationStore, studentStore StudentStore, authz *auth.AuthorizationService) DriveService {
	return &driveService{
		driveStore:       driveStore,
		applicationStore: applicationStore,
		studentStore:     studentStore,
		authz:            authz,
		now:              time.Now,
	}
}

// CreateDrive creates a drive with its fixed round list
func (s *driveService) CreateDrive(ctx context.Context, actor models.Actor, req *dto.CreateDriveRequest) (*dto.DriveResponse, error) {
	if !actor.Role.IsStaff() {
		return nil, apperrors.NewForbiddenError("only placement staff may create drives")
	}

	drive := &models.Drive{
		CompanyName: strings.TrimSpace(req.CompanyName),
		Role:        strings.TrimSpace(req.Role),
		Description: strings.TrimSpace(req.Description),
		CTC:         req.CTC,
		Locations:   trimAll(req.Locations),
		DriveDate:   req.DriveDate,
		Deadline:    req.Deadline,
		Eligibility: models.EligibilityCriteria{
			MinCGPA:            req.Eligibility.MinCGPA,
			MaxBacklogs:        req.Eligibility.MaxBacklogs,
			AllowedDepartments: trimAll(req.Eligibility.AllowedDepartments),
			AllowedBatches:     trimAll(req.Eligibility.AllowedBatches),
			UnplacedOnly:       req.Eligibility.UnplacedOnly,
		},
		CreatedByID: actor.ID,
		IsActive:    true,
	}

	if err := s.validateDrive(drive); err != nil {
		return nil, err
	}

	rounds := make([]models.SelectionRound, 0, len(req.Rounds))
	for i, def := range req.Rounds {
		name := strings.TrimSpace(def.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("round name is required")
		}
		rounds = append(rounds, models.SelectionRound{
			RoundIndex:  i,
			Name:        name,
			Status:      models.RoundStatusPending,
			ScheduledAt: def.ScheduledAt,
		})
	}

	driveID, err := s.driveStore.CreateDrive(ctx, drive, rounds)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("driveId", driveID).
		Int64("createdBy", actor.ID).
		Str("company", drive.CompanyName).
		Int("rounds", len(rounds)).
		Msg("Drive created")

	return s.GetDrive(ctx, actor, driveID)
}

// UpdateDrive updates a drive's core fields. Only the creator may edit.
func (s *driveService) UpdateDrive(ctx context.Context, actor models.Actor, driveID int64, req *dto.UpdateDriveRequest) (*dto.DriveResponse, error) {
	drive, err := s.driveStore.GetDriveByID(ctx, driveID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.ValidateEditOrDelete(actor, drive); err != nil {
		return nil, err
	}

	drive.CompanyName = strings.TrimSpace(req.CompanyName)
	drive.Role = strings.TrimSpace(req.Role)
	drive.Description = strings.TrimSpace(req.Description)
	drive.CTC = req.CTC
	drive.Locations = trimAll(req.Locations)
	drive.DriveDate = req.DriveDate
	drive.Deadline = req.Deadline
	drive.Eligibility = models.EligibilityCriteria{
		MinCGPA:            req.Eligibility.MinCGPA,
		MaxBacklogs:        req.Eligibility.MaxBacklogs,
		AllowedDepartments: trimAll(req.Eligibility.AllowedDepartments),
		AllowedBatches:     trimAll(req.Eligibility.AllowedBatches),
		UnplacedOnly:       req.Eligibility.UnplacedOnly,
	}

	if err := s.validateDrive(drive); err != nil {
		return nil, err
	}

	if err := s.driveStore.UpdateDrive(ctx, drive); err != nil {
		return nil, err
	}

	return s.GetDrive(ctx, actor, driveID)
}

// DeleteDrive deactivates a drive. Applications and round history are kept;
// the drive simply stops appearing in student listings.
func (s *driveService) DeleteDrive(ctx context.Context, actor models.Actor, driveID int64) error {
	drive, err := s.driveStore.GetDriveByID(ctx, driveID)
	if err != nil {
		return err
	}

	if err := s.authz.ValidateEditOrDelete(actor, drive); err != nil {
		return err
	}

	if err := s.driveStore.DeactivateDrive(ctx, driveID); err != nil {
		return err
	}

	logger.Info().Int64("driveId", driveID).Int64("by", actor.ID).Msg("Drive deactivated")
	return nil
}

// GetDrive returns one drive with the viewer flags resolved for the actor.
// Students get ErrDriveNotFound for drives they may not view, so the endpoint
// does not reveal which drives exist.
func (s *driveService) GetDrive(ctx context.Context, actor models.Actor, driveID int64) (*dto.DriveResponse, error) {
	drive, err := s.driveStore.GetDriveByID(ctx, driveID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	profile := s.profileFor(ctx, actor)

	if !s.authz.CanView(actor, drive, profile, now) {
		return nil, apperrors.ErrDriveNotFound
	}

	resp := s.toResponse(ctx, actor, drive, now)
	return &resp, nil
}

// ListDrives returns the page of drives visible to the actor. Staff see every
// drive that matches the filters; students see only active, unended drives
// whose criteria they satisfy.
func (s *driveService) ListDrives(ctx context.Context, actor models.Actor, filter *dto.DriveFilterRequest) (*dto.DriveListResponse, error) {
	page := filter.Page
	pageSize := filter.PageSize
	if page < 1 {
		page = helpers.DefaultPage
	}
	if pageSize <= 0 || pageSize > helpers.MaxPageSize {
		pageSize = helpers.DefaultPageSize
	}

	active := filter.Active
	if actor.Role == models.RoleStudent {
		// Students never see deactivated drives, whatever they ask for.
		t := true
		active = &t
	}

	drives, total, err := s.driveStore.GetAllDrives(ctx, strings.TrimSpace(filter.Company), active, page, pageSize)
	if err != nil {
		return nil, err
	}

	now := s.now()
	profile := s.profileFor(ctx, actor)

	responses := make([]dto.DriveResponse, 0, len(drives))
	for i := range drives {
		drive := &drives[i]
		if !s.authz.CanView(actor, drive, profile, now) {
			continue
		}
		responses = append(responses, s.toResponse(ctx, actor, drive, now))
	}

	return &dto.DriveListResponse{
		Drives:     responses,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// Apply records the actor's application to the drive. Rejections come in a
// fixed order: duplicate first, then eligibility, then the deadline. The
// database's uniqueness constraint backs the duplicate check under races.
func (s *driveService) Apply(ctx context.Context, actor models.Actor, driveID int64) (*dto.ApplicationResponse, error) {
	if actor.Role != models.RoleStudent {
		return nil, apperrors.NewForbiddenError("only students may apply to drives")
	}

	profile, err := s.studentStore.GetProfileByUserID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrStudentNotFound,
				"complete your placement profile before applying")
		}
		return nil, err
	}

	drive, err := s.driveStore.GetDriveByID(ctx, driveID)
	if err != nil {
		return nil, err
	}
	if !drive.IsActive {
		return nil, apperrors.ErrDriveNotFound
	}

	applied, err := s.applicationStore.HasApplied(ctx, driveID, actor.ID)
	if err != nil {
		return nil, err
	}
	if applied {
		return nil, apperrors.ErrAlreadyApplied
	}

	if !eligibility.IsEligible(profile, drive) {
		return nil, apperrors.ErrNotEligible
	}

	now := s.now()
	if !eligibility.IsApplicationOpen(drive, now) {
		return nil, apperrors.ErrWindowClosed
	}

	applicationID, err := s.applicationStore.CreateApplication(ctx, driveID, actor.ID, now)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("driveId", driveID).
		Int64("studentId", actor.ID).
		Msg("Application recorded")

	resp := dto.FromApplication(&models.Application{
		ID:            applicationID,
		DriveID:       driveID,
		StudentUserID: actor.ID,
		Status:        models.ApplicationStatusApplied,
		AppliedAt:     now,
	})
	return &resp, nil
}

// GetApplicants lists a drive's applicants with their profiles. Managers only.
func (s *driveService) GetApplicants(ctx context.Context, actor models.Actor, driveID int64) ([]dto.ApplicationResponse, error) {
	drive, err := s.driveStore.GetDriveByID(ctx, driveID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.ValidateManage(actor, drive); err != nil {
		return nil, err
	}

	applications, err := s.applicationStore.GetApplicantsByDrive(ctx, driveID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		responses = append(responses, dto.FromApplication(&applications[i]))
	}
	return responses, nil
}

// GetMyApplications lists the actor's own applications
func (s *driveService) GetMyApplications(ctx context.Context, actor models.Actor) ([]dto.ApplicationResponse, error) {
	if actor.Role != models.RoleStudent {
		return nil, apperrors.NewForbiddenError("only students have applications")
	}

	applications, err := s.applicationStore.GetApplicationsByStudent(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		responses = append(responses, dto.FromApplication(&applications[i]))
	}
	return responses, nil
}

// validateDrive enforces the field rules shared by create and update. The
// first violation wins.
func (s *driveService) validateDrive(drive *models.Drive) error {
	if drive.CompanyName == "" {
		return apperrors.NewValidationError("company name is required")
	}
	if drive.Role == "" {
		return apperrors.NewValidationError("role is required")
	}
	if drive.Description == "" {
		return apperrors.NewValidationError("description is required")
	}
	if drive.CTC <= 0 {
		return apperrors.NewValidationError("ctc must be greater than zero")
	}
	if len(drive.Locations) == 0 {
		return apperrors.NewValidationError("at least one location is required")
	}
	for _, loc := range drive.Locations {
		if loc == "" {
			return apperrors.NewValidationError("locations must not be blank")
		}
	}
	if drive.Eligibility.MinCGPA == nil || *drive.Eligibility.MinCGPA <= 0 {
		return apperrors.NewValidationError("eligibility must set a minimum CGPA greater than zero")
	}
	if *drive.Eligibility.MinCGPA > 10 {
		return apperrors.NewValidationError("minimum CGPA cannot exceed 10")
	}
	if len(drive.Eligibility.AllowedDepartments) == 0 {
		return apperrors.NewValidationError("eligibility must allow at least one department")
	}
	if drive.Eligibility.MaxBacklogs != nil && *drive.Eligibility.MaxBacklogs < 0 {
		return apperrors.NewValidationError("max backlogs cannot be negative")
	}
	if drive.Deadline == nil {
		return apperrors.NewValidationError("application deadline is required")
	}
	if !drive.Deadline.After(s.now()) {
		return apperrors.NewValidationError("application deadline must be in the future")
	}
	if drive.DriveDate != nil && drive.Deadline.After(*drive.DriveDate) {
		return apperrors.NewValidationError("application deadline cannot be after the drive date")
	}
	return nil
}

// toResponse builds the drive response with the actor's viewer flags. The
// hasApplied lookup is skipped for staff; the flag only means something to the
// student looking at their own listing.
func (s *driveService) toResponse(ctx context.Context, actor models.Actor, drive *models.Drive, now time.Time) dto.DriveResponse {
	selection.SortByIndex(drive.Rounds)

	resp := dto.FromDrive(drive)
	resp.CanManage = s.authz.CanManage(actor, drive)
	resp.CanEditOrDelete = s.authz.CanEditOrDelete(actor, drive)
	resp.ApplicationOpen = eligibility.IsApplicationOpen(drive, now)
	resp.Ended = eligibility.IsDriveEnded(drive, now)

	if actor.Role == models.RoleStudent {
		// Round internals stay with the people running them.
		resp.Rounds = nil
		applied, err := s.applicationStore.HasApplied(ctx, drive.ID, actor.ID)
		if err != nil {
			logger.Warn().Err(err).Int64("driveId", drive.ID).Msg("Failed to resolve application flag")
		}
		resp.HasApplied = applied
	}

	return resp
}

// profileFor loads the actor's student profile, or nil for staff and for
// students who have not created one yet.
func (s *driveService) profileFor(ctx context.Context, actor models.Actor) *models.StudentProfile {
	if actor.Role != models.RoleStudent {
		return nil
	}
	profile, err := s.studentStore.GetProfileByUserID(ctx, actor.ID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrStudentNotFound) {
			logger.Warn().Err(err).Int64("userId", actor.ID).Msg("Failed to load student profile")
		}
		return nil
	}
	return profile
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

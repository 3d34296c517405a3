package services

import (
	"context"
	"errors"
	"strings"

	"github.com/emrekrt/placementhub/internal/app/models"
	"github.com/emrekrt/placementhub/internal/app/models/dto"
	"github.com/emrekrt/placementhub/internal/pkg/apperrors"
	"github.com/emrekrt/placementhub/internal/pkg/logger"
	"github.com/emrekrt/placementhub/internal/pkg/validation"
)

// StudentService defines the student profile operations
type StudentService interface {
	GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error)
	UpsertProfile(ctx context.Context, actor models.Actor, req *dto.UpsertProfileRequest) (*dto.ProfileResponse, error)
	BulkUpdateCGPA(ctx context.Context, actor models.Actor, req *dto.BulkCGPARequest) (*dto.BulkCGPAResponse, error)
	MarkPlaced(ctx context.Context, actor models.Actor, studentUserID int64) error
}

type studentService struct {
	studentStore StudentStore
}

// NewStudentService creates a new StudentService
func NewStudentService(studentStore StudentStore) StudentService {
	return &studentService{studentStore: studentStore}
}

// GetProfile returns the profile of the given user
func (s *studentService) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	profile, err := s.studentStore.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromProfile(profile)
	return &resp, nil
}

// UpsertProfile creates the actor's profile, or updates its student-owned
// fields. CGPA and placement status are never overwritten on update; those
// move only through officer endpoints.
func (s *studentService) UpsertProfile(ctx context.Context, actor models.Actor, req *dto.UpsertProfileRequest) (*dto.ProfileResponse, error) {
	if actor.Role != models.RoleStudent {
		return nil, apperrors.NewForbiddenError("only students have a placement profile")
	}

	department := strings.TrimSpace(req.Department)
	if department == "" {
		return nil, apperrors.NewValidationError("department is required")
	}

	profile := &models.StudentProfile{
		UserID:          actor.ID,
		Department:      department,
		CGPA:            req.CGPA,
		CurrentBacklogs: req.CurrentBacklogs,
		Batch:           strings.TrimSpace(req.Batch),
		GraduationYear:  req.GraduationYear,
		PlacementStatus: models.PlacementStatusUnplaced,
	}

	if err := s.studentStore.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}

	stored, err := s.studentStore.GetProfileByUserID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	resp := dto.FromProfile(stored)
	return &resp, nil
}

// BulkUpdateCGPA applies a placement officer's CGPA upload row by row. Rows
// whose email has no matching profile are reported back, not failed on;
// invalid rows abort the whole request.
func (s *studentService) BulkUpdateCGPA(ctx context.Context, actor models.Actor, req *dto.BulkCGPARequest) (*dto.BulkCGPAResponse, error) {
	if actor.Role != models.RolePlacementOfficer {
		return nil, apperrors.NewForbiddenError("only a placement officer may bulk update CGPA")
	}

	for _, record := range req.Records {
		if !validation.IsValidEmail(record.Email) {
			return nil, apperrors.NewValidationError("invalid email in upload: " + record.Email)
		}
		if record.CGPA < 0 || record.CGPA > 10 {
			return nil, apperrors.NewValidationError("CGPA out of range for " + record.Email)
		}
	}

	result := &dto.BulkCGPAResponse{}
	for _, record := range req.Records {
		email := strings.ToLower(strings.TrimSpace(record.Email))
		err := s.studentStore.UpdateCGPAByEmail(ctx, email, record.CGPA)
		if err != nil {
			if errors.Is(err, apperrors.ErrStudentNotFound) {
				result.Skipped = append(result.Skipped, email)
				continue
			}
			return nil, err
		}
		result.Updated++
	}

	logger.Info().
		Int64("officerId", actor.ID).
		Int("updated", result.Updated).
		Int("skipped", len(result.Skipped)).
		Msg("Bulk CGPA update applied")

	return result, nil
}

// MarkPlaced flips a student's placement status to PLACED
func (s *studentService) MarkPlaced(ctx context.Context, actor models.Actor, studentUserID int64) error {
	if !actor.Role.IsStaff() {
		return apperrors.NewForbiddenError("only staff may mark a student as placed")
	}
	return s.studentStore.SetPlacementStatus(ctx, studentUserID, models.PlacementStatusPlaced)
}

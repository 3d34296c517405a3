package auth

import (
	"strings"
	"time"

	"github.com/emrekrt/placementhub/internal/app/eligibility"
	"github.com/emrekrt/placementhub/internal/app/models"
	"github.com/emrekrt/placementhub/internal/pkg/apperrors"
)

// AuthorizationService resolves what a given actor may do with a given drive.
// Every method takes the actor explicitly; nothing here reads session state.
type AuthorizationService struct{}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService() *AuthorizationService {
	return &AuthorizationService{}
}

// NormalizeDepartment prepares a department label for comparison. Comparisons
// are trimmed and case-insensitive everywhere.
func NormalizeDepartment(department string) string {
	return strings.ToLower(strings.TrimSpace(department))
}

// CanManage reports whether the actor may administer the drive's rounds and
// view its applicants.
//
// Placement officers manage any drive, the creator always manages their own,
// and placement reps manage drives created within their department. A drive
// without a creator record is managed by nobody.
func (s *AuthorizationService) CanManage(actor models.Actor, drive *models.Drive) bool {
	if drive == nil || drive.CreatedBy == nil {
		return false
	}

	if actor.Role == models.RolePlacementOfficer {
		return true
	}

	if actor.ID == drive.CreatedBy.ID {
		return true
	}

	if actor.Role == models.RolePlacementRep {
		return NormalizeDepartment(actor.Department) == NormalizeDepartment(drive.CreatedBy.Department)
	}

	return false
}

// CanEditOrDelete reports whether the actor may change the drive's core fields
// or delete it. Strictly narrower than CanManage: only the original creator
// qualifies, regardless of role or department.
func (s *AuthorizationService) CanEditOrDelete(actor models.Actor, drive *models.Drive) bool {
	if drive == nil || drive.CreatedBy == nil {
		return false
	}
	return actor.ID == drive.CreatedBy.ID
}

// CanView reports whether the drive should appear in the actor's listing.
// Staff roles see every drive; students see active drives that have not ended
// and whose criteria they satisfy.
func (s *AuthorizationService) CanView(actor models.Actor, drive *models.Drive, profile *models.StudentProfile, now time.Time) bool {
	if drive == nil {
		return false
	}

	if actor.Role.IsStaff() {
		return true
	}

	if !drive.IsActive || eligibility.IsDriveEnded(drive, now) {
		return false
	}
	return eligibility.IsEligible(profile, drive)
}

// ValidateManage validates that the actor may manage the drive or returns an error
func (s *AuthorizationService) ValidateManage(actor models.Actor, drive *models.Drive) error {
	if !s.CanManage(actor, drive) {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// ValidateEditOrDelete validates drive ownership or returns an error
func (s *AuthorizationService) ValidateEditOrDelete(actor models.Actor, drive *models.Drive) error {
	if !s.CanEditOrDelete(actor, drive) {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// Package eligibility decides whether a student may see and apply to a job
// drive. Every function here is pure and total: it never touches storage,
// never fails, and treats missing criteria as "no restriction".
package eligibility

import (
	"strings"
	"time"

	"github.com/emrekrt/placementhub/internal/app/models"
)

// UpgradeCTCThreshold is the package (in LPA) above which an already-placed
// student may still apply. Drives at or below it are closed to placed students.
const UpgradeCTCThreshold = 10.0

// IsEligible reports whether the student profile satisfies every criterion of
// the drive. Checks are conjunctive; a drive with no criteria is open to all.
func IsEligible(profile *models.StudentProfile, drive *models.Drive) bool {
	if profile == nil || drive == nil {
		return false
	}

	c := drive.Eligibility

	if c.MinCGPA != nil && profile.CGPA < *c.MinCGPA {
		return false
	}

	if len(c.AllowedDepartments) > 0 && !containsFold(c.AllowedDepartments, profile.Department) {
		return false
	}

	if c.MaxBacklogs != nil && profile.CurrentBacklogs > *c.MaxBacklogs {
		return false
	}

	if len(c.AllowedBatches) > 0 && !containsFold(c.AllowedBatches, profile.EffectiveBatch()) {
		return false
	}

	if profile.PlacementStatus == models.PlacementStatusPlaced {
		// Placed students may only chase upgrade drives, and never when the
		// drive is reserved for unplaced students.
		if c.UnplacedOnly {
			return false
		}
		if drive.CTC <= UpgradeCTCThreshold {
			return false
		}
	}

	return true
}

// IsApplicationOpen reports whether applications are still accepted at the
// given instant. The effective deadline is the application deadline when set,
// otherwise the drive date; a deadline without a clock time expires at the end
// of that calendar day.
func IsApplicationOpen(drive *models.Drive, now time.Time) bool {
	deadline := effectiveDeadline(drive)
	if deadline == nil {
		// No deadline and no date: nothing to close the window.
		return true
	}
	return !now.After(*deadline)
}

// IsDriveEnded reports whether the drive date has passed. Used for archival
// and listing filters, not for blocking applications.
func IsDriveEnded(drive *models.Drive, now time.Time) bool {
	if drive == nil || drive.DriveDate == nil {
		return false
	}
	return now.After(endOfDayIfMidnight(*drive.DriveDate))
}

func effectiveDeadline(drive *models.Drive) *time.Time {
	if drive == nil {
		return nil
	}
	base := drive.Deadline
	if base == nil {
		base = drive.DriveDate
	}
	if base == nil {
		return nil
	}
	t := endOfDayIfMidnight(*base)
	return &t
}

// endOfDayIfMidnight pushes a date-only timestamp (midnight) to 23:59:59.999
// of the same day. Timestamps that carry a clock time are used as-is.
func endOfDayIfMidnight(t time.Time) time.Time {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
	}
	return t
}

func containsFold(set []string, value string) bool {
	for _, s := range set {
		if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(value)) {
			return true
		}
	}
	return false
}

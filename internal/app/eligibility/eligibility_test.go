package eligibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/emrekrt/placementhub/internal/app/models"
)

func f64(v float64) *float64 { return &v }
func iptr(v int) *int        { return &v }
func tptr(v time.Time) *time.Time {
	return &v
}

func baseProfile() *models.StudentProfile {
	return &models.StudentProfile{
		UserID:          5,
		Department:      "CSE",
		CGPA:            8.2,
		CurrentBacklogs: 0,
		GraduationYear:  2026,
		PlacementStatus: models.PlacementStatusUnplaced,
	}
}

func baseDrive() *models.Drive {
	return &models.Drive{
		ID:          1,
		CompanyName: "Innotrix Labs",
		CTC:         12.5,
		IsActive:    true,
		Eligibility: models.EligibilityCriteria{
			MinCGPA:            f64(7.5),
			MaxBacklogs:        iptr(0),
			AllowedDepartments: []string{"CSE", "IT"},
		},
	}
}

func TestIsEligible(t *testing.T) {
	tests := []struct {
		name    string
		profile func(*models.StudentProfile)
		drive   func(*models.Drive)
		want    bool
	}{
		{
			name: "meets all criteria",
			want: true,
		},
		{
			name:    "cgpa exactly at minimum passes",
			profile: func(p *models.StudentProfile) { p.CGPA = 7.5 },
			want:    true,
		},
		{
			name:    "cgpa below minimum fails",
			profile: func(p *models.StudentProfile) { p.CGPA = 7.49 },
			want:    false,
		},
		{
			name:    "department not in allowed set fails",
			profile: func(p *models.StudentProfile) { p.Department = "MECH" },
			want:    false,
		},
		{
			name:    "department comparison ignores case and spacing",
			profile: func(p *models.StudentProfile) { p.Department = " cse " },
			want:    true,
		},
		{
			name:    "backlogs over limit fails",
			profile: func(p *models.StudentProfile) { p.CurrentBacklogs = 1 },
			want:    false,
		},
		{
			name:  "backlogs at limit passes",
			drive: func(d *models.Drive) { d.Eligibility.MaxBacklogs = iptr(2) },
			profile: func(p *models.StudentProfile) {
				p.CurrentBacklogs = 2
			},
			want: true,
		},
		{
			name:  "batch restriction uses explicit batch",
			drive: func(d *models.Drive) { d.Eligibility.AllowedBatches = []string{"2026"} },
			profile: func(p *models.StudentProfile) {
				p.Batch = "2026"
			},
			want: true,
		},
		{
			name:  "batch restriction falls back to graduation year",
			drive: func(d *models.Drive) { d.Eligibility.AllowedBatches = []string{"2026"} },
			want:  true,
		},
		{
			name:  "batch fallback outside allowed set fails",
			drive: func(d *models.Drive) { d.Eligibility.AllowedBatches = []string{"2025"} },
			want:  false,
		},
		{
			name:    "placed student blocked from unplaced-only drive",
			drive:   func(d *models.Drive) { d.Eligibility.UnplacedOnly = true },
			profile: func(p *models.StudentProfile) { p.PlacementStatus = models.PlacementStatusPlaced },
			want:    false,
		},
		{
			name:    "placed student blocked below upgrade threshold",
			drive:   func(d *models.Drive) { d.CTC = 10.0 },
			profile: func(p *models.StudentProfile) { p.PlacementStatus = models.PlacementStatusPlaced },
			want:    false,
		},
		{
			name:    "placed student allowed above upgrade threshold",
			drive:   func(d *models.Drive) { d.CTC = 10.01 },
			profile: func(p *models.StudentProfile) { p.PlacementStatus = models.PlacementStatusPlaced },
			want:    true,
		},
		{
			name: "no criteria admits everyone",
			drive: func(d *models.Drive) {
				d.Eligibility = models.EligibilityCriteria{}
			},
			profile: func(p *models.StudentProfile) {
				p.CGPA = 0.5
				p.CurrentBacklogs = 9
				p.Department = "MECH"
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := baseProfile()
			drive := baseDrive()
			if tt.profile != nil {
				tt.profile(profile)
			}
			if tt.drive != nil {
				tt.drive(drive)
			}
			assert.Equal(t, tt.want, IsEligible(profile, drive))
		})
	}
}

func TestIsEligibleNilInputs(t *testing.T) {
	assert.False(t, IsEligible(nil, baseDrive()))
	assert.False(t, IsEligible(baseProfile(), nil))
	assert.False(t, IsEligible(nil, nil))
}

func TestIsApplicationOpen(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		drive func(*models.Drive)
		want  bool
	}{
		{
			name:  "future deadline open",
			drive: func(d *models.Drive) { d.Deadline = tptr(now.Add(time.Hour)) },
			want:  true,
		},
		{
			name:  "past deadline closed",
			drive: func(d *models.Drive) { d.Deadline = tptr(now.Add(-time.Hour)) },
			want:  false,
		},
		{
			name: "date-only deadline stays open through the day",
			drive: func(d *models.Drive) {
				d.Deadline = tptr(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
			},
			want: true,
		},
		{
			name: "date-only deadline closed the next day",
			drive: func(d *models.Drive) {
				d.Deadline = tptr(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC))
			},
			want: false,
		},
		{
			name: "missing deadline falls back to drive date",
			drive: func(d *models.Drive) {
				d.Deadline = nil
				d.DriveDate = tptr(now.Add(24 * time.Hour))
			},
			want: true,
		},
		{
			name: "missing deadline and past drive date closed",
			drive: func(d *models.Drive) {
				d.Deadline = nil
				d.DriveDate = tptr(now.Add(-48 * time.Hour))
			},
			want: false,
		},
		{
			name: "no deadline and no date never closes",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drive := baseDrive()
			if tt.drive != nil {
				tt.drive(drive)
			}
			assert.Equal(t, tt.want, IsApplicationOpen(drive, now))
		})
	}
}

func TestApplicationWindowIndependentOfDriveDate(t *testing.T) {
	// Deadline passed yesterday, drive happens tomorrow: window is closed.
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	drive := baseDrive()
	drive.Deadline = tptr(now.Add(-24 * time.Hour))
	drive.DriveDate = tptr(now.Add(24 * time.Hour))

	assert.False(t, IsApplicationOpen(drive, now))
	assert.False(t, IsDriveEnded(drive, now))
}

func TestIsDriveEnded(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	drive := baseDrive()
	assert.False(t, IsDriveEnded(drive, now), "drive without a date never ends")

	drive.DriveDate = tptr(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	assert.False(t, IsDriveEnded(drive, now), "drive day itself is not ended")

	drive.DriveDate = tptr(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC))
	assert.True(t, IsDriveEnded(drive, now))

	assert.False(t, IsDriveEnded(nil, now))
}

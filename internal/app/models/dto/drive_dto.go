package dto

import (
	"time"

	"github.com/emrekrt/placementhub/internal/app/models"
)

// EligibilityRequest represents the eligibility criteria of a create/update request
type EligibilityRequest struct {
	MinCGPA            *float64 `json:"minCgpa"`
	MaxBacklogs        *int     `json:"maxBacklogs"`
	AllowedDepartments []string `json:"allowedDepartments"`
	AllowedBatches     []string `json:"allowedBatches"`
	UnplacedOnly       bool     `json:"unplacedOnly"`
}

// RoundDefinition names one selection round at drive creation. Rounds keep
// the order in which they are submitted.
type RoundDefinition struct {
	Name        string     `json:"name" binding:"required"`
	ScheduledAt *time.Time `json:"scheduledAt"`
}

// CreateDriveRequest represents the request to create a drive
type CreateDriveRequest struct {
	CompanyName string             `json:"companyName" binding:"required"`
	Role        string             `json:"role" binding:"required"`
	Description string             `json:"description" binding:"required"`
	CTC         float64            `json:"ctc" binding:"required,gt=0"`
	Locations   []string           `json:"locations" binding:"required,min=1"`
	DriveDate   *time.Time         `json:"driveDate"`
	Deadline    *time.Time         `json:"applicationDeadline" binding:"required"`
	Eligibility EligibilityRequest `json:"eligibility" binding:"required"`
	Rounds      []RoundDefinition  `json:"rounds" binding:"dive"`
}

// UpdateDriveRequest represents the request to update a drive's core fields.
// The round list is fixed at creation and cannot be changed here.
type UpdateDriveRequest struct {
	CompanyName string             `json:"companyName" binding:"required"`
	Role        string             `json:"role" binding:"required"`
	Description string             `json:"description" binding:"required"`
	CTC         float64            `json:"ctc" binding:"required,gt=0"`
	Locations   []string           `json:"locations" binding:"required,min=1"`
	DriveDate   *time.Time         `json:"driveDate"`
	Deadline    *time.Time         `json:"applicationDeadline" binding:"required"`
	Eligibility EligibilityRequest `json:"eligibility" binding:"required"`
}

// DriveResponse represents a drive with the viewer-dependent flags resolved
type DriveResponse struct {
	ID          int64               `json:"id"`
	CompanyName string              `json:"companyName"`
	Role        string              `json:"role"`
	Description string              `json:"description"`
	CTC         float64             `json:"ctc"`
	Locations   []string            `json:"locations"`
	DriveDate   *time.Time          `json:"driveDate,omitempty"`
	Deadline    *time.Time          `json:"applicationDeadline,omitempty"`
	Eligibility EligibilityRequest  `json:"eligibility"`
	CreatedBy   *UserResponse       `json:"createdBy,omitempty"`
	IsActive    bool                `json:"isActive"`
	Rounds      []RoundResponse     `json:"rounds,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`

	// Viewer-dependent flags
	CanManage       bool `json:"canManage"`
	CanEditOrDelete bool `json:"canEditOrDelete"`
	HasApplied      bool `json:"hasApplied,omitempty"`
	ApplicationOpen bool `json:"applicationOpen"`
	Ended           bool `json:"ended"`
}

// DriveListResponse represents a paginated drive listing
type DriveListResponse struct {
	Drives     []DriveResponse `json:"drives"`
	Pagination PaginationInfo  `json:"pagination"`
}

// DriveFilterRequest represents listing filters
type DriveFilterRequest struct {
	Company  string `form:"company"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"pageSize,default=20"`
}

// ApplicationResponse represents one application row of a drive
type ApplicationResponse struct {
	ID            int64     `json:"id"`
	DriveID       int64     `json:"driveId"`
	StudentUserID int64     `json:"studentUserId"`
	Status        string    `json:"status"`
	AppliedAt     time.Time `json:"appliedAt"`

	Student *ProfileResponse `json:"student,omitempty"`
}

// FromDrive converts a models.Drive to a DriveResponse without viewer flags
func FromDrive(drive *models.Drive) DriveResponse {
	if drive == nil {
		return DriveResponse{}
	}
	resp := DriveResponse{
		ID:          drive.ID,
		CompanyName: drive.CompanyName,
		Role:        drive.Role,
		Description: drive.Description,
		CTC:         drive.CTC,
		Locations:   drive.Locations,
		DriveDate:   drive.DriveDate,
		Deadline:    drive.Deadline,
		Eligibility: EligibilityRequest{
			MinCGPA:            drive.Eligibility.MinCGPA,
			MaxBacklogs:        drive.Eligibility.MaxBacklogs,
			AllowedDepartments: drive.Eligibility.AllowedDepartments,
			AllowedBatches:     drive.Eligibility.AllowedBatches,
			UnplacedOnly:       drive.Eligibility.UnplacedOnly,
		},
		IsActive:  drive.IsActive,
		CreatedAt: drive.CreatedAt,
	}
	if drive.CreatedBy != nil {
		user := FromUser(drive.CreatedBy)
		resp.CreatedBy = &user
	}
	for i := range drive.Rounds {
		resp.Rounds = append(resp.Rounds, FromRound(&drive.Rounds[i]))
	}
	return resp
}

// FromApplication converts a models.Application to an ApplicationResponse
func FromApplication(app *models.Application) ApplicationResponse {
	if app == nil {
		return ApplicationResponse{}
	}
	resp := ApplicationResponse{
		ID:            app.ID,
		DriveID:       app.DriveID,
		StudentUserID: app.StudentUserID,
		Status:        string(app.Status),
		AppliedAt:     app.AppliedAt,
	}
	if app.Student != nil {
		profile := FromProfile(app.Student)
		resp.Student = &profile
	}
	return resp
}

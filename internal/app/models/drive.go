package models

import (
	"time"
)

// EligibilityCriteria holds the conjunctive constraints attached to a drive.
// Nil pointers and empty sets mean "no restriction" for that field.
type EligibilityCriteria struct {
	MinCGPA            *float64 `json:"minCgpa,omitempty" db:"min_cgpa" example:"7.5"`          // Minimum CGPA, nil = no restriction
	MaxBacklogs        *int     `json:"maxBacklogs,omitempty" db:"max_backlogs" example:"0"`    // Maximum active backlogs, nil = no restriction
	AllowedDepartments []string `json:"allowedDepartments,omitempty" db:"allowed_departments"`  // Empty = all departments
	AllowedBatches     []string `json:"allowedBatches,omitempty" db:"allowed_batches"`          // Empty = all batches
	UnplacedOnly       bool     `json:"unplacedOnly" db:"unplaced_only" example:"false"`        // Placed students are never eligible when set
}

// Drive defines the job drive model based on the 'drives' table
type Drive struct {
	ID          int64               `json:"id" db:"id" example:"1"`
	CompanyName string              `json:"companyName" db:"company_name" example:"Innotrix Labs"`
	Role        string              `json:"role" db:"role" example:"Software Engineer"`
	Description string              `json:"description" db:"description"`
	CTC         float64             `json:"ctc" db:"ctc" example:"12.5"` // Annual package in LPA
	Locations   []string            `json:"locations" db:"locations"`
	DriveDate   *time.Time          `json:"driveDate,omitempty" db:"drive_date"`
	Deadline    *time.Time          `json:"applicationDeadline,omitempty" db:"application_deadline"`
	Eligibility EligibilityCriteria `json:"eligibility" db:"-"`
	CreatedByID int64               `json:"createdById" db:"created_by" example:"3"`
	IsActive    bool                `json:"isActive" db:"is_active" example:"true"`
	CreatedAt   time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time           `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	CreatedBy *User            `json:"createdBy,omitempty"` // Creating user, carries the creator's department
	Rounds    []SelectionRound `json:"rounds,omitempty"`    // Ordered selection rounds
}

// Application defines a student's application to a drive, one row per
// (drive, student) pair enforced by a unique index.
type Application struct {
	ID            int64             `json:"id" db:"id"`
	DriveID       int64             `json:"driveId" db:"drive_id"`
	StudentUserID int64             `json:"studentUserId" db:"student_user_id"`
	Status        ApplicationStatus `json:"status" db:"status" example:"APPLIED"`
	AppliedAt     time.Time         `json:"appliedAt" db:"applied_at"`

	// Relations (populated when needed)
	Student *StudentProfile `json:"student,omitempty"`
}

// SelectionRound defines one stage of a drive's selection process. Rounds are
// totally ordered by RoundIndex and fixed at drive creation.
type SelectionRound struct {
	ID               int64       `json:"id" db:"id"`
	DriveID          int64       `json:"driveId" db:"drive_id"`
	RoundIndex       int         `json:"roundIndex" db:"round_index" example:"0"`
	Name             string      `json:"name" db:"name" example:"Online Test"`
	Status           RoundStatus `json:"status" db:"status" example:"PENDING"`
	ScheduledAt      *time.Time  `json:"scheduledAt,omitempty" db:"scheduled_at"`
	SelectedStudents []int64     `json:"selectedStudents" db:"-"` // Student user ids selected in this round
	UpdatedAt        time.Time   `json:"updatedAt" db:"updated_at"`
}

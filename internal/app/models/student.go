package models

import (
	"strconv"
	"time"
)

// StudentProfile defines the student profile model based on the 'student_profiles' table.
// Created at profile completion; never deleted, only updated. CGPA is written by the
// student at creation and thereafter by a placement officer via bulk import.
type StudentProfile struct {
	UserID          int64           `json:"userId" db:"user_id" example:"5"`                    // ID of the owning user account
	Department      string          `json:"department" db:"department" example:"CSE"`           // Department code, one of the fixed enumeration
	CGPA            float64         `json:"cgpa" db:"cgpa" example:"8.2"`                       // Cumulative grade point average, 0-10
	CurrentBacklogs int             `json:"currentBacklogs" db:"current_backlogs" example:"0"`  // Number of active backlogs
	Batch           string          `json:"batch,omitempty" db:"batch" example:"2026"`          // Graduating batch label; may be empty
	GraduationYear  int             `json:"graduationYear" db:"graduation_year" example:"2026"` // Expected graduation year
	PlacementStatus PlacementStatus `json:"placementStatus" db:"placement_status" example:"UNPLACED"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	User *User `json:"user,omitempty"` // Associated user information
}

// EffectiveBatch returns the explicit batch label, falling back to the
// graduation year when no batch is recorded. The fallback is applied here so
// every eligibility call site derives the batch the same way.
func (p *StudentProfile) EffectiveBatch() string {
	if p.Batch != "" {
		return p.Batch
	}
	if p.GraduationYear > 0 {
		return strconv.Itoa(p.GraduationYear)
	}
	return ""
}

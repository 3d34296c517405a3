package dto

import "github.com/emrekrt/placementhub/internal/app/models"

// UpsertProfileRequest represents the student-owned profile fields. CGPA is
// accepted at creation; afterwards it is only written by a placement officer
// through the bulk update endpoint.
type UpsertProfileRequest struct {
	Department      string  `json:"department" binding:"required"`
	CGPA            float64 `json:"cgpa" binding:"min=0,max=10"`
	CurrentBacklogs int     `json:"currentBacklogs" binding:"min=0"`
	Batch           string  `json:"batch"`
	GraduationYear  int     `json:"graduationYear" binding:"required,min=2000,max=2100"`
}

// ProfileResponse represents a student profile
type ProfileResponse struct {
	UserID          int64   `json:"userId"`
	Department      string  `json:"department"`
	CGPA            float64 `json:"cgpa"`
	CurrentBacklogs int     `json:"currentBacklogs"`
	Batch           string  `json:"batch"`
	GraduationYear  int     `json:"graduationYear"`
	PlacementStatus string  `json:"placementStatus"`
}

// BulkCGPARecord is one row of a placement officer's CGPA upload. Parsing of
// the uploaded CSV happens client side; the API receives structured rows.
type BulkCGPARecord struct {
	Email string  `json:"email" binding:"required,email"`
	CGPA  float64 `json:"cgpa" binding:"min=0,max=10"`
}

// BulkCGPARequest represents a bulk CGPA update request
type BulkCGPARequest struct {
	Records []BulkCGPARecord `json:"records" binding:"required,min=1,dive"`
}

// BulkCGPAResponse reports how many rows were applied and which were skipped
type BulkCGPAResponse struct {
	Updated int      `json:"updated"`
	Skipped []string `json:"skipped,omitempty"` // emails with no matching profile
}

// FromProfile converts a models.StudentProfile to a ProfileResponse
func FromProfile(profile *models.StudentProfile) ProfileResponse {
	if profile == nil {
		return ProfileResponse{}
	}
	return ProfileResponse{
		UserID:          profile.UserID,
		Department:      profile.Department,
		CGPA:            profile.CGPA,
		CurrentBacklogs: profile.CurrentBacklogs,
		Batch:           profile.EffectiveBatch(),
		GraduationYear:  profile.GraduationYear,
		PlacementStatus: string(profile.PlacementStatus),
	}
}

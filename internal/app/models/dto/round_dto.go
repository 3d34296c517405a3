package dto

import (
	"time"

	"github.com/emrekrt/placementhub/internal/app/models"
)

// AdvanceRoundRequest represents a round status change request
type AdvanceRoundRequest struct {
	Status models.RoundStatus `json:"status" binding:"required,oneof=PENDING IN_PROGRESS COMPLETED"`
}

// SelectStudentsRequest represents a full replacement of a round's selections
type SelectStudentsRequest struct {
	StudentUserIDs []int64 `json:"studentUserIds" binding:"required"`
}

// RoundResponse represents one selection round
type RoundResponse struct {
	ID               int64      `json:"id"`
	DriveID          int64      `json:"driveId"`
	RoundIndex       int        `json:"roundIndex"`
	Name             string     `json:"name"`
	Status           string     `json:"status"`
	ScheduledAt      *time.Time `json:"scheduledAt,omitempty"`
	SelectedStudents []int64    `json:"selectedStudents"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// CandidatePoolResponse represents the pool a round may select from
type CandidatePoolResponse struct {
	DriveID    int64   `json:"driveId"`
	RoundIndex int     `json:"roundIndex"`
	StudentIDs []int64 `json:"studentIds"`
}

// FromRound converts a models.SelectionRound to a RoundResponse
func FromRound(round *models.SelectionRound) RoundResponse {
	if round == nil {
		return RoundResponse{}
	}
	selected := round.SelectedStudents
	if selected == nil {
		selected = []int64{}
	}
	return RoundResponse{
		ID:               round.ID,
		DriveID:          round.DriveID,
		RoundIndex:       round.RoundIndex,
		Name:             round.Name,
		Status:           string(round.Status),
		ScheduledAt:      round.ScheduledAt,
		SelectedStudents: selected,
		UpdatedAt:        round.UpdatedAt,
	}
}

// Package selection implements the round state machine of a drive's selection
// process: forward-only status transitions and the narrowing of the candidate
// pool from all applicants down through each round's selected subset.
package selection

import (
	"sort"

	"github.com/emrekrt/placementhub/internal/app/models"
	"github.com/emrekrt/placementhub/internal/pkg/apperrors"
)

// next holds the only legal successor per status. COMPLETED is terminal.
var next = map[models.RoundStatus]models.RoundStatus{
	models.RoundStatusPending:    models.RoundStatusInProgress,
	models.RoundStatusInProgress: models.RoundStatusCompleted,
}

// CanTransition reports whether a round may move from one status to another.
// Transitions are strict forward-only single steps; no skipping, no regression.
func CanTransition(from, to models.RoundStatus) bool {
	successor, ok := next[from]
	return ok && successor == to
}

// ValidateTransition returns ErrInvalidRoundTransition when the requested
// status change is not the single legal forward step.
func ValidateTransition(from, to models.RoundStatus) error {
	if !CanTransition(from, to) {
		return apperrors.NewCustomError(apperrors.ErrInvalidRoundTransition,
			"round status must advance "+string(models.RoundStatusPending)+" -> "+
				string(models.RoundStatusInProgress)+" -> "+string(models.RoundStatusCompleted))
	}
	return nil
}

// CandidatePool returns the student ids that may be selected in the round at
// roundIndex. Round 0 draws from every applicant; later rounds draw from the
// previous round's selections. An empty prior selection yields an empty pool,
// which is not an error.
//
// Rounds must be the drive's full round list; order does not matter, the
// stored index decides.
func CandidatePool(roundIndex int, applicants []int64, rounds []models.SelectionRound) []int64 {
	if roundIndex <= 0 {
		return applicants
	}
	for _, r := range rounds {
		if r.RoundIndex == roundIndex-1 {
			return r.SelectedStudents
		}
	}
	return nil
}

// ValidateSelection checks that every submitted student id is drawn from the
// candidate pool. Ids outside the pool are rejected rather than silently
// dropped, so downstream rounds can trust their pools.
func ValidateSelection(pool, submitted []int64) error {
	allowed := make(map[int64]struct{}, len(pool))
	for _, id := range pool {
		allowed[id] = struct{}{}
	}
	for _, id := range submitted {
		if _, ok := allowed[id]; !ok {
			return apperrors.NewCustomError(apperrors.ErrStudentNotInPool,
				"student is not in the candidate pool for this round").
				WithDetails(map[string]interface{}{"studentUserId": id})
		}
	}
	return nil
}

// ValidateDownstream checks that a replacement of one round's selection set
// keeps the next round's existing selections intact. Shrinking a round below
// what the following round already selected would leave that round holding
// students with no path through the process.
func ValidateDownstream(replacement, nextSelected []int64) error {
	kept := make(map[int64]struct{}, len(replacement))
	for _, id := range replacement {
		kept[id] = struct{}{}
	}
	for _, id := range nextSelected {
		if _, ok := kept[id]; !ok {
			return apperrors.NewCustomError(apperrors.ErrStudentNotInPool,
				"student is already selected in the next round and cannot be removed from this one").
				WithDetails(map[string]interface{}{"studentUserId": id})
		}
	}
	return nil
}

// SortByIndex orders rounds by their stored index for display. The index is
// fixed at creation; there is no reordering operation.
func SortByIndex(rounds []models.SelectionRound) {
	sort.Slice(rounds, func(i, j int) bool {
		return rounds[i].RoundIndex < rounds[j].RoundIndex
	})
}

// Dedupe returns the submitted set with duplicates removed, preserving first
// occurrence order. A replace with repeated ids is treated as the same set.
func Dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

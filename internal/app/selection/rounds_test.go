package selection

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emrekrt/placementhub/internal/app/models"
	"github.com/emrekrt/placementhub/internal/pkg/apperrors"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from models.RoundStatus
		to   models.RoundStatus
		want bool
	}{
		{models.RoundStatusPending, models.RoundStatusInProgress, true},
		{models.RoundStatusInProgress, models.RoundStatusCompleted, true},
		{models.RoundStatusPending, models.RoundStatusCompleted, false},
		{models.RoundStatusInProgress, models.RoundStatusPending, false},
		{models.RoundStatusCompleted, models.RoundStatusInProgress, false},
		{models.RoundStatusCompleted, models.RoundStatusPending, false},
		{models.RoundStatusPending, models.RoundStatusPending, false},
		{models.RoundStatusCompleted, models.RoundStatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestValidateTransition(t *testing.T) {
	assert.NoError(t, ValidateTransition(models.RoundStatusPending, models.RoundStatusInProgress))

	err := ValidateTransition(models.RoundStatusPending, models.RoundStatusCompleted)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidRoundTransition))
}

func TestCandidatePool(t *testing.T) {
	applicants := []int64{1, 2, 3, 4}
	rounds := []models.SelectionRound{
		{RoundIndex: 0, SelectedStudents: []int64{1, 3}},
		{RoundIndex: 1, SelectedStudents: []int64{3}},
		{RoundIndex: 2},
	}

	t.Run("first round draws from all applicants", func(t *testing.T) {
		assert.Equal(t, applicants, CandidatePool(0, applicants, rounds))
	})

	t.Run("later rounds draw from previous selections", func(t *testing.T) {
		assert.Equal(t, []int64{1, 3}, CandidatePool(1, applicants, rounds))
		assert.Equal(t, []int64{3}, CandidatePool(2, applicants, rounds))
	})

	t.Run("empty prior selection yields empty pool", func(t *testing.T) {
		assert.Empty(t, CandidatePool(3, applicants, rounds))
	})

	t.Run("missing prior round yields nil", func(t *testing.T) {
		assert.Nil(t, CandidatePool(5, applicants, rounds))
	})
}

func TestValidateSelection(t *testing.T) {
	pool := []int64{1, 2}

	t.Run("subset accepted", func(t *testing.T) {
		assert.NoError(t, ValidateSelection(pool, []int64{1}))
		assert.NoError(t, ValidateSelection(pool, []int64{1, 2}))
		assert.NoError(t, ValidateSelection(pool, nil))
	})

	t.Run("id outside pool rejected", func(t *testing.T) {
		err := ValidateSelection(pool, []int64{1, 3})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrStudentNotInPool))

		var custom *apperrors.CustomError
		require.True(t, errors.As(err, &custom))
		assert.Equal(t, int64(3), custom.Details["studentUserId"])
	})

	t.Run("empty pool rejects any selection", func(t *testing.T) {
		err := ValidateSelection(nil, []int64{1})
		assert.True(t, errors.Is(err, apperrors.ErrStudentNotInPool))
	})
}

func TestValidateDownstream(t *testing.T) {
	t.Run("replacement keeping next round's selections accepted", func(t *testing.T) {
		assert.NoError(t, ValidateDownstream([]int64{1, 2, 3}, []int64{1, 3}))
		assert.NoError(t, ValidateDownstream([]int64{1, 2}, nil))
		assert.NoError(t, ValidateDownstream(nil, nil))
	})

	t.Run("shrinking below next round's selections rejected", func(t *testing.T) {
		// Round 0 held {1,2}, round 1 selected {1,2}; re-replacing round 0
		// with just {1} would strand student 2 in round 1.
		err := ValidateDownstream([]int64{1}, []int64{1, 2})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrStudentNotInPool))

		var custom *apperrors.CustomError
		require.True(t, errors.As(err, &custom))
		assert.Equal(t, int64(2), custom.Details["studentUserId"])
	})

	t.Run("clearing a round with downstream selections rejected", func(t *testing.T) {
		err := ValidateDownstream(nil, []int64{4})
		assert.True(t, errors.Is(err, apperrors.ErrStudentNotInPool))
	})
}

func TestSortByIndex(t *testing.T) {
	rounds := []models.SelectionRound{
		{RoundIndex: 2, Name: "HR"},
		{RoundIndex: 0, Name: "Online Test"},
		{RoundIndex: 1, Name: "Technical"},
	}

	SortByIndex(rounds)

	assert.Equal(t, "Online Test", rounds[0].Name)
	assert.Equal(t, "Technical", rounds[1].Name)
	assert.Equal(t, "HR", rounds[2].Name)
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []int64{3, 1, 2}, Dedupe([]int64{3, 1, 3, 2, 1}))
	assert.Empty(t, Dedupe(nil))
}

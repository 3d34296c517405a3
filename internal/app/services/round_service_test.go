package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appAuth "github.com/emrekrt/placementhub/internal/app/auth"
	"github.com/emrekrt/placementhub/internal/app/models"
	"github.com/emrekrt/placementhub/internal/pkg/apperrors"
)

func newRoundService(driveStore *mockDriveStore, roundStore *mockRoundStore) RoundService {
	return NewRoundService(driveStore, roundStore, appAuth.NewAuthorizationService())
}

func pendingRound(id int64, index int) *models.SelectionRound {
	return &models.SelectionRound{
		ID:         id,
		DriveID:    1,
		RoundIndex: index,
		Name:       "Technical Interview",
		Status:     models.RoundStatusPending,
	}
}

func TestAdvanceStatus(t *testing.T) {
	ctx := context.Background()
	creator := models.Actor{ID: 3, Role: models.RolePlacementRep, Department: "CSE"}

	t.Run("moves pending round into progress", func(t *testing.T) {
		driveStore := new(mockDriveStore)
		roundStore := new(mockRoundStore)
		svc := newRoundService(driveStore, roundStore)

		advanced := pendingRound(21, 1)
		advanced.Status = models.RoundStatusInProgress

		driveStore.On("GetDriveByID", ctx, int64(1)).Return(openDrive(1), nil)
		roundStore.On("GetRound", ctx, int64(1), 1).Return(pendingRound(21, 1), nil).Once()
		roundStore.On("UpdateStatus", ctx, int64(21), models.RoundStatusPending, models.RoundStatusInProgress).Return(nil)
		roundStore.On("GetRound", ctx, int64(1), 1).Return(advanced, nil).Once()

		resp, err := svc.AdvanceStatus(ctx, creator, 1, 1, models.RoundStatusInProgress)

		require.NoError(t, err)
		assert.Equal(t, string(models.RoundStatusInProgress), resp.Status)
		roundStore.AssertExpectations(t)
	})

	t.Run("rejects skipping a state", func(t *testing.T) {
		driveStore := new(mockDriveStore)
		roundStore := new(mockRoundStore)
		svc := newRoundService(driveStore, roundStore)

		driveStore.On("GetDriveByID", ctx, int64(1)).Return(openDrive(1), nil)
		roundStore.On("GetRound", ctx, int64(1), 1).Return(pendingRound(21, 1), nil)

		_, err := svc.AdvanceStatus(ctx, creator, 1, 1, models.RoundStatusCompleted)

		assert.ErrorIs(t, err, apperrors.ErrInvalidRoundTransition)
		roundStore.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("surfaces a lost compare-and-set as conflict", func(t *testing.T) {
		driveStore := new(mockDriveStore)
		roundStore := new(mockRoundStore)
		svc := newRoundService(driveStore, roundStore)

		driveStore.On("GetDriveByID", ctx, int64(1)).Return(openDrive(1), nil)
		roundStore.On("GetRound", ctx, int64(1), 1).Return(pendingRound(21, 1), nil)
		roundStore.On("UpdateStatus", ctx, int64(21), models.RoundStatusPending, models.RoundStatusInProgress).
			Return(apperrors.ErrConflict)

		_, err := svc.AdvanceStatus(ctx, creator, 1, 1, models.RoundStatusInProgress)

		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("rejects students", func(t *testing.T) {
		driveStore := new(mockDriveStore)
		roundStore := new(mockRoundStore)
		svc := newRoundService(driveStore, roundStore)

		driveStore.On("GetDriveByID", ctx, int64(1)).Return(openDrive(1), nil)

		student := models.Actor{ID: 5, Role: models.RoleStudent, Department: "CSE"}
		_, err := svc.AdvanceStatus(ctx, student, 1, 1, models.RoundStatusInProgress)

		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		roundStore.AssertNotCalled(t, "GetRound", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSelectStudents(t *testing.T) {
	ctx := context.Background()
	creator := models.Actor{ID: 3, Role: models.RolePlacementRep, Department: "CSE"}

	t.Run("deduplicates before storing", func(t *testing.T) {
		driveStore := new(mockDriveStore)
		roundStore := new(mockRoundStore)
		svc := newRoundService(driveStore, roundStore)

		selected := pendingRound(21, 1)
		selected.SelectedStudents = []int64{2, 1}

		driveStore.On("GetDriveByID", ctx, int64(1)).Return(openDrive(1), nil)
		roundStore.On("GetRound", ctx, int64(1), 1).Return(pendingRound(21, 1), nil).Once()
		roundStore.On("ReplaceSelections", ctx, int64(1), 1, []int64{2, 1}).Return(nil)
		roundStore.On("GetRound", ctx, int64(1), 1).Return(selected, nil).Once()

		resp, err := svc.SelectStudents(ctx, creator, 1, 1, []int64{2, 1, 2})

		require.NoError(t, err)
		assert.Equal(t, []int64{2, 1}, resp.SelectedStudents)
		roundStore.AssertExpectations(t)
	})

	t.Run("response reflects the stored selection set", func(t *testing.T) {
		driveStore := new(mockDriveStore)
		roundStore := new(mockRoundStore)
		svc := newRoundService(driveStore, roundStore)

		// Before the write the round carries no selections; the reload after
		// ReplaceSelections is what must surface the stored set.
		stored := pendingRound(21, 1)
		stored.SelectedStudents = []int64{5, 8}

		driveStore.On("GetDriveByID", ctx, int64(1)).Return(openDrive(1), nil)
		roundStore.On("GetRound", ctx, int64(1), 1).Return(pendingRound(21, 1), nil).Once()
		roundStore.On("ReplaceSelections", ctx, int64(1), 1, []int64{5, 8}).Return(nil)
		roundStore.On("GetRound", ctx, int64(1), 1).Return(stored, nil).Once()

		resp, err := svc.SelectStudents(ctx, creator, 1, 1, []int64{5, 8})

		require.NoError(t, err)
		assert.Equal(t, []int64{5, 8}, resp.SelectedStudents)
		roundStore.AssertExpectations(t)
	})

	t.Run("propagates pool membership failure", func(t *testing.T) {
		driveStore := new(mockDriveStore)
		roundStore := new(mockRoundStore)
		svc := newRoundService(driveStore, roundStore)

		driveStore.On("GetDriveByID", ctx, int64(1)).Return(openDrive(1), nil)
		roundStore.On("GetRound", ctx, int64(1), 1).Return(pendingRound(21, 1), nil)
		roundStore.On("ReplaceSelections", ctx, int64(1), 1, []int64{9}).
			Return(apperrors.ErrStudentNotInPool)

		_, err := svc.SelectStudents(ctx, creator, 1, 1, []int64{9})

		assert.ErrorIs(t, err, apperrors.ErrStudentNotInPool)
	})

	t.Run("missing round stops the request", func(t *testing.T) {
		driveStore := new(mockDriveStore)
		roundStore := new(mockRoundStore)
		svc := newRoundService(driveStore, roundStore)

		driveStore.On("GetDriveByID", ctx, int64(1)).Return(openDrive(1), nil)
		roundStore.On("GetRound", ctx, int64(1), 7).Return(nil, apperrors.ErrRoundNotFound)

		_, err := svc.SelectStudents(ctx, creator, 1, 7, []int64{1})

		assert.ErrorIs(t, err, apperrors.ErrRoundNotFound)
		roundStore.AssertNotCalled(t, "ReplaceSelections", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetCandidatePool(t *testing.T) {
	ctx := context.Background()
	officer := models.Actor{ID: 99, Role: models.RolePlacementOfficer}

	t.Run("empty pool comes back as empty list", func(t *testing.T) {
		driveStore := new(mockDriveStore)
		roundStore := new(mockRoundStore)
		svc := newRoundService(driveStore, roundStore)

		driveStore.On("GetDriveByID", ctx, int64(1)).Return(openDrive(1), nil)
		roundStore.On("GetRound", ctx, int64(1), 2).Return(pendingRound(23, 2), nil)
		roundStore.On("CandidatePool", ctx, int64(1), 2).Return(nil, nil)

		resp, err := svc.GetCandidatePool(ctx, officer, 1, 2)

		require.NoError(t, err)
		assert.NotNil(t, resp.StudentIDs)
		assert.Empty(t, resp.StudentIDs)
	})

	t.Run("bad index reads as missing round", func(t *testing.T) {
		driveStore := new(mockDriveStore)
		roundStore := new(mockRoundStore)
		svc := newRoundService(driveStore, roundStore)

		driveStore.On("GetDriveByID", ctx, int64(1)).Return(openDrive(1), nil)
		roundStore.On("GetRound", ctx, int64(1), 9).Return(nil, apperrors.ErrRoundNotFound)

		_, err := svc.GetCandidatePool(ctx, officer, 1, 9)

		assert.ErrorIs(t, err, apperrors.ErrRoundNotFound)
		roundStore.AssertNotCalled(t, "CandidatePool", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("returns the pool ids", func(t *testing.T) {
		driveStore := new(mockDriveStore)
		roundStore := new(mockRoundStore)
		svc := newRoundService(driveStore, roundStore)

		driveStore.On("GetDriveByID", ctx, int64(1)).Return(openDrive(1), nil)
		roundStore.On("GetRound", ctx, int64(1), 1).Return(pendingRound(21, 1), nil)
		roundStore.On("CandidatePool", ctx, int64(1), 1).Return([]int64{5, 8}, nil)

		resp, err := svc.GetCandidatePool(ctx, officer, 1, 1)

		require.NoError(t, err)
		assert.Equal(t, []int64{5, 8}, resp.StudentIDs)
		assert.Equal(t, 1, resp.RoundIndex)
	})
}

func TestListRoundsOrdering(t *testing.T) {
	ctx := context.Background()
	officer := models.Actor{ID: 99, Role: models.RolePlacementOfficer}

	driveStore := new(mockDriveStore)
	roundStore := new(mockRoundStore)
	svc := newRoundService(driveStore, roundStore)

	drive := openDrive(1)
	drive.Rounds = []models.SelectionRound{
		{ID: 22, DriveID: 1, RoundIndex: 1, Name: "Technical", Status: models.RoundStatusPending},
		{ID: 21, DriveID: 1, RoundIndex: 0, Name: "Online Test", Status: models.RoundStatusCompleted},
	}

	driveStore.On("GetDriveByID", ctx, int64(1)).Return(drive, nil)

	rounds, err := svc.ListRounds(ctx, officer, 1)

	require.NoError(t, err)
	require.Len(t, rounds, 2)
	assert.Equal(t, "Online Test", rounds[0].Name)
	assert.Equal(t, "Technical", rounds[1].Name)
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appAuth "github.com/emrekrt/placementhub/internal/app/auth"
	"github.com/emrekrt/placementhub/internal/app/models"
	"github.com/emrekrt/placementhub/internal/app/models/dto"
	"github.com/emrekrt/placementhub/internal/pkg/apperrors"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newDriveService(driveStore *mockDriveStore, appStore *mockApplicationStore, studentStore *mockStudentStore) *driveService {
	svc := NewDriveService(driveStore, appStore, studentStore, appAuth.NewAuthorizationService()).(*driveService)
	svc.now = func() time.Time { return testNow }
	return svc
}

func eligibleProfile(userID int64) *models.StudentProfile {
	return &models.StudentProfile{
		UserID:          userID,
		Department:      "CSE",
		CGPA:            8.5,
		GraduationYear:  2026,
		PlacementStatus: models.PlacementStatusUnplaced,
	}
}

func openDrive(id int64) *models.Drive {
	minCGPA := 7.5
	deadline := testNow.Add(48 * time.Hour)
	return &models.Drive{
		ID:          id,
		CompanyName: "Innotrix Labs",
		Role:        "Software Engineer",
		Description: "Backend role",
		CTC:         12.5,
		Locations:   []string{"Bengaluru"},
		Deadline:    &deadline,
		Eligibility: models.EligibilityCriteria{
			MinCGPA:            &minCGPA,
			AllowedDepartments: []string{"CSE"},
		},
		CreatedByID: 3,
		IsActive:    true,
		CreatedBy: &models.User{
			ID:         3,
			RoleType:   models.RolePlacementRep,
			Department: "CSE",
		},
	}
}

func TestApply(t *testing.T) {
	student := models.Actor{ID: 5, Role: models.RoleStudent, Department: "CSE"}
	ctx := context.Background()

	t.Run("records application for eligible student", func(t *testing.T) {
		driveStore := new(mockDriveStore)
		appStore := new(mockApplicationStore)
		studentStore := new(mockStudentStore)
		svc := newDriveService(driveStore, appStore, studentStore)

		studentStore.On("GetProfileByUserID", ctx, int64(5)).Return(eligibleProfile(5), nil)
		driveStore.On("GetDriveByID", ctx, int64(1)).Return(openDrive(1), nil)
		appStore.On("HasApplied", ctx, int64(1), int64(5)).Return(false, nil)
		appStore.On("CreateApplication", ctx, int64(1), int64(5), testNow).Return(int64(7), nil)

		resp, err := svc.Apply(ctx, student, 1)

		require.NoError(t, err)
		assert.Equal(t, int64(7), resp.ID)
		assert.Equal(t, string(models.ApplicationStatusApplied), resp.Status)
		appStore.AssertExpectations(t)
	})

	t.Run("rejects duplicate before any other check", func(t *testing.T) {
		driveStore := new(mockDriveStore)
		appStore := new(mockApplicationStore)
		studentStore := new(mockStudentStore)
		svc := newDriveService(driveStore, appStore, studentStore)

		// Window closed and already applied: the duplicate answer wins.
		drive := openDrive(1)
		past := testNow.Add(-time.Hour)
		drive.Deadline = &past

		studentStore.On("GetProfileByUserID", ctx, int64(5)).Return(eligibleProfile(5), nil)
		driveStore.On("GetDriveByID", ctx, int64(1)).Return(drive, nil)
		appStore.On("HasApplied", ctx, int64(1), int64(5)).Return(true, nil)

		_, err := svc.Apply(ctx, student, 1)

		assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)
		appStore.AssertNotCalled(t, "CreateApplication", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects ineligible student", func(t *testing.T) {
		driveStore := new(mockDriveStore)
		appStore := new(mockApplicationStore)
		studentStore := new(mockStudentStore)
		svc := newDriveService(driveStore, appStore, studentStore)

		profile := eligibleProfile(5)
		profile.CGPA = 6.0

		studentStore.On("GetProfileByUserID", ctx, int64(5)).Return(profile, nil)
		driveStore.On("GetDriveByID", ctx, int64(1)).Return(openDrive(1), nil)
		appStore.On("HasApplied", ctx, int64(1), int64(5)).Return(false, nil)

		_, err := svc.Apply(ctx, student, 1)

		assert.ErrorIs(t, err, apperrors.ErrNotEligible)
	})

	t.Run("rejects after the deadline", func(t *testing.T) {
		driveStore := new(mockDriveStore)
		appStore := new(mockApplicationStore)
		studentStore := new(mockStudentStore)
		svc := newDriveService(driveStore, appStore, studentStore)

		drive := openDrive(1)
		past := testNow.Add(-time.Hour)
		drive.Deadline = &past

		studentStore.On("GetProfileByUserID", ctx, int64(5)).Return(eligibleProfile(5), nil)
		driveStore.On("GetDriveByID", ctx, int64(1)).Return(drive, nil)
		appStore.On("HasApplied", ctx, int64(1), int64(5)).Return(false, nil)

		_, err := svc.Apply(ctx, student, 1)

		assert.ErrorIs(t, err, apperrors.ErrWindowClosed)
	})

	t.Run("requires a completed profile", func(t *testing.T) {
		driveStore := new(mockDriveStore)
		appStore := new(mockApplicationStore)
		studentStore := new(mockStudentStore)
		svc := newDriveService(driveStore, appStore, studentStore)

		studentStore.On("GetProfileByUserID", ctx, int64(5)).Return(nil, apperrors.ErrStudentNotFound)

		_, err := svc.Apply(ctx, student, 1)

		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
		driveStore.AssertNotCalled(t, "GetDriveByID", mock.Anything, mock.Anything)
	})

	t.Run("rejects staff", func(t *testing.T) {
		svc := newDriveService(new(mockDriveStore), new(mockApplicationStore), new(mockStudentStore))

		_, err := svc.Apply(ctx, models.Actor{ID: 3, Role: models.RolePlacementRep}, 1)

		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("treats deactivated drive as missing", func(t *testing.T) {
		driveStore := new(mockDriveStore)
		appStore := new(mockApplicationStore)
		studentStore := new(mockStudentStore)
		svc := newDriveService(driveStore, appStore, studentStore)

		drive := openDrive(1)
		drive.IsActive = false

		studentStore.On("GetProfileByUserID", ctx, int64(5)).Return(eligibleProfile(5), nil)
		driveStore.On("GetDriveByID", ctx, int64(1)).Return(drive, nil)

		_, err := svc.Apply(ctx, student, 1)

		assert.ErrorIs(t, err, apperrors.ErrDriveNotFound)
	})
}

func validCreateRequest() *dto.CreateDriveRequest {
	minCGPA := 7.5
	deadline := testNow.Add(48 * time.Hour)
	driveDate := testNow.Add(96 * time.Hour)
	return &dto.CreateDriveRequest{
		CompanyName: "Innotrix Labs",
		Role:        "Software Engineer",
		Description: "Backend role",
		CTC:         12.5,
		Locations:   []string{"Bengaluru"},
		DriveDate:   &driveDate,
		Deadline:    &deadline,
		Eligibility: dto.EligibilityRequest{
			MinCGPA:            &minCGPA,
			AllowedDepartments: []string{"CSE"},
		},
		Rounds: []dto.RoundDefinition{
			{Name: "Online Test"},
			{Name: "Technical Interview"},
		},
	}
}

func TestCreateDrive(t *testing.T) {
	rep := models.Actor{ID: 3, Role: models.RolePlacementRep, Department: "CSE"}
	ctx := context.Background()

	t.Run("creates drive with indexed rounds", func(t *testing.T) {
		driveStore := new(mockDriveStore)
		svc := newDriveService(driveStore, new(mockApplicationStore), new(mockStudentStore))

		driveStore.On("CreateDrive", ctx, mock.Anything, mock.MatchedBy(func(rounds []models.SelectionRound) bool {
			return len(rounds) == 2 &&
				rounds[0].RoundIndex == 0 && rounds[0].Name == "Online Test" &&
				rounds[1].RoundIndex == 1 && rounds[1].Status == models.RoundStatusPending
		})).Return(int64(1), nil)
		driveStore.On("GetDriveByID", ctx, int64(1)).Return(openDrive(1), nil)

		resp, err := svc.CreateDrive(ctx, rep, validCreateRequest())

		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.True(t, resp.CanManage)
		driveStore.AssertExpectations(t)
	})

	t.Run("rejects students", func(t *testing.T) {
		svc := newDriveService(new(mockDriveStore), new(mockApplicationStore), new(mockStudentStore))

		_, err := svc.CreateDrive(ctx, models.Actor{ID: 5, Role: models.RoleStudent}, validCreateRequest())

		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("rejects deadline after drive date", func(t *testing.T) {
		svc := newDriveService(new(mockDriveStore), new(mockApplicationStore), new(mockStudentStore))

		req := validCreateRequest()
		late := testNow.Add(200 * time.Hour)
		req.Deadline = &late

		_, err := svc.CreateDrive(ctx, rep, req)

		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("rejects past deadline", func(t *testing.T) {
		svc := newDriveService(new(mockDriveStore), new(mockApplicationStore), new(mockStudentStore))

		req := validCreateRequest()
		past := testNow.Add(-time.Hour)
		req.Deadline = &past

		_, err := svc.CreateDrive(ctx, rep, req)

		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("rejects missing minimum CGPA", func(t *testing.T) {
		svc := newDriveService(new(mockDriveStore), new(mockApplicationStore), new(mockStudentStore))

		req := validCreateRequest()
		req.Eligibility.MinCGPA = nil

		_, err := svc.CreateDrive(ctx, rep, req)

		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("rejects empty department list", func(t *testing.T) {
		svc := newDriveService(new(mockDriveStore), new(mockApplicationStore), new(mockStudentStore))

		req := validCreateRequest()
		req.Eligibility.AllowedDepartments = nil

		_, err := svc.CreateDrive(ctx, rep, req)

		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("rejects blank round name", func(t *testing.T) {
		svc := newDriveService(new(mockDriveStore), new(mockApplicationStore), new(mockStudentStore))

		req := validCreateRequest()
		req.Rounds[1].Name = "  "

		_, err := svc.CreateDrive(ctx, rep, req)

		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestUpdateDriveOwnership(t *testing.T) {
	ctx := context.Background()

	driveStore := new(mockDriveStore)
	svc := newDriveService(driveStore, new(mockApplicationStore), new(mockStudentStore))

	driveStore.On("GetDriveByID", ctx, int64(1)).Return(openDrive(1), nil)

	// An officer may manage the drive but not edit it; editing is creator-only.
	officer := models.Actor{ID: 99, Role: models.RolePlacementOfficer}
	req := &dto.UpdateDriveRequest{}

	_, err := svc.UpdateDrive(ctx, officer, 1, req)

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	driveStore.AssertNotCalled(t, "UpdateDrive", mock.Anything, mock.Anything)
}

func TestDeleteDrive(t *testing.T) {
	ctx := context.Background()
	creator := models.Actor{ID: 3, Role: models.RolePlacementRep, Department: "CSE"}

	driveStore := new(mockDriveStore)
	svc := newDriveService(driveStore, new(mockApplicationStore), new(mockStudentStore))

	driveStore.On("GetDriveByID", ctx, int64(1)).Return(openDrive(1), nil)
	driveStore.On("DeactivateDrive", ctx, int64(1)).Return(nil)

	require.NoError(t, svc.DeleteDrive(ctx, creator, 1))
	driveStore.AssertExpectations(t)
}

func TestListDrivesStudentVisibility(t *testing.T) {
	ctx := context.Background()
	student := models.Actor{ID: 5, Role: models.RoleStudent, Department: "CSE"}

	driveStore := new(mockDriveStore)
	appStore := new(mockApplicationStore)
	studentStore := new(mockStudentStore)
	svc := newDriveService(driveStore, appStore, studentStore)

	visible := openDrive(1)
	tooStrict := openDrive(2)
	strictCGPA := 9.5
	tooStrict.Eligibility.MinCGPA = &strictCGPA

	// Students are always served the active subset, whatever they ask for.
	activeOnly := mock.MatchedBy(func(active *bool) bool { return active != nil && *active })
	driveStore.On("GetAllDrives", ctx, "", activeOnly, 1, 20).
		Return([]models.Drive{*visible, *tooStrict}, int64(2), nil)
	studentStore.On("GetProfileByUserID", ctx, int64(5)).Return(eligibleProfile(5), nil)
	appStore.On("HasApplied", ctx, int64(1), int64(5)).Return(false, nil)

	listing, err := svc.ListDrives(ctx, student, &dto.DriveFilterRequest{Page: 1, PageSize: 20})

	require.NoError(t, err)
	require.Len(t, listing.Drives, 1)
	assert.Equal(t, int64(1), listing.Drives[0].ID)
	assert.Nil(t, listing.Drives[0].Rounds, "round internals are hidden from students")
	assert.True(t, listing.Drives[0].ApplicationOpen)
}

func TestGetDriveHidesIneligible(t *testing.T) {
	ctx := context.Background()
	student := models.Actor{ID: 5, Role: models.RoleStudent, Department: "CSE"}

	driveStore := new(mockDriveStore)
	studentStore := new(mockStudentStore)
	svc := newDriveService(driveStore, new(mockApplicationStore), studentStore)

	drive := openDrive(1)
	strictCGPA := 9.5
	drive.Eligibility.MinCGPA = &strictCGPA

	driveStore.On("GetDriveByID", ctx, int64(1)).Return(drive, nil)
	studentStore.On("GetProfileByUserID", ctx, int64(5)).Return(eligibleProfile(5), nil)

	_, err := svc.GetDrive(ctx, student, 1)

	assert.ErrorIs(t, err, apperrors.ErrDriveNotFound)
}

func TestGetApplicantsRequiresManager(t *testing.T) {
	ctx := context.Background()

	driveStore := new(mockDriveStore)
	appStore := new(mockApplicationStore)
	svc := newDriveService(driveStore, appStore, new(mockStudentStore))

	driveStore.On("GetDriveByID", ctx, int64(1)).Return(openDrive(1), nil)

	otherRep := models.Actor{ID: 11, Role: models.RolePlacementRep, Department: "ECE"}
	_, err := svc.GetApplicants(ctx, otherRep, 1)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	sameDeptRep := models.Actor{ID: 11, Role: models.RolePlacementRep, Department: "CSE"}
	appStore.On("GetApplicantsByDrive", ctx, int64(1)).Return([]models.Application{
		{ID: 7, DriveID: 1, StudentUserID: 5, Status: models.ApplicationStatusApplied},
	}, nil)

	applicants, err := svc.GetApplicants(ctx, sameDeptRep, 1)
	require.NoError(t, err)
	require.Len(t, applicants, 1)
	assert.Equal(t, int64(5), applicants[0].StudentUserID)
}

func TestApplyCreateRace(t *testing.T) {
	// Two requests pass HasApplied before either inserts; the loser surfaces
	// the constraint error mapped by the repository.
	ctx := context.Background()
	student := models.Actor{ID: 5, Role: models.RoleStudent, Department: "CSE"}

	driveStore := new(mockDriveStore)
	appStore := new(mockApplicationStore)
	studentStore := new(mockStudentStore)
	svc := newDriveService(driveStore, appStore, studentStore)

	studentStore.On("GetProfileByUserID", ctx, int64(5)).Return(eligibleProfile(5), nil)
	driveStore.On("GetDriveByID", ctx, int64(1)).Return(openDrive(1), nil)
	appStore.On("HasApplied", ctx, int64(1), int64(5)).Return(false, nil)
	appStore.On("CreateApplication", ctx, int64(1), int64(5), testNow).
		Return(int64(0), apperrors.ErrAlreadyApplied)

	_, err := svc.Apply(ctx, student, 1)

	assert.True(t, errors.Is(err, apperrors.ErrAlreadyApplied))
}

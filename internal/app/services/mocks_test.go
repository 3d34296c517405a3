package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/emrekrt/placementhub/internal/app/models"
)

// testify mocks for the store interfaces

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) UpdateLastLogin(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

type mockTokenStore struct{ mock.Mock }

func (m *mockTokenStore) CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	return m.Called(ctx, token, userID, expiryDate).Error(0)
}

func (m *mockTokenStore) GetTokenUser(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTokenStore) RevokeToken(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type mockStudentStore struct{ mock.Mock }

func (m *mockStudentStore) GetProfileByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	args := m.Called(ctx, userID)
	if profile := args.Get(0); profile != nil {
		return profile.(*models.StudentProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStudentStore) UpsertProfile(ctx context.Context, profile *models.StudentProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *mockStudentStore) UpdateCGPAByEmail(ctx context.Context, email string, cgpa float64) error {
	return m.Called(ctx, email, cgpa).Error(0)
}

func (m *mockStudentStore) SetPlacementStatus(ctx context.Context, userID int64, status models.PlacementStatus) error {
	return m.Called(ctx, userID, status).Error(0)
}

type mockDriveStore struct{ mock.Mock }

func (m *mockDriveStore) CreateDrive(ctx context.Context, drive *models.Drive, rounds []models.SelectionRound) (int64, error) {
	args := m.Called(ctx, drive, rounds)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockDriveStore) GetDriveByID(ctx context.Context, id int64) (*models.Drive, error) {
	args := m.Called(ctx, id)
	if drive := args.Get(0); drive != nil {
		return drive.(*models.Drive), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDriveStore) GetAllDrives(ctx context.Context, company string, active *bool, page, pageSize int) ([]models.Drive, int64, error) {
	args := m.Called(ctx, company, active, page, pageSize)
	if drives := args.Get(0); drives != nil {
		return drives.([]models.Drive), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

func (m *mockDriveStore) UpdateDrive(ctx context.Context, drive *models.Drive) error {
	return m.Called(ctx, drive).Error(0)
}

func (m *mockDriveStore) DeactivateDrive(ctx context.Context, driveID int64) error {
	return m.Called(ctx, driveID).Error(0)
}

type mockApplicationStore struct{ mock.Mock }

func (m *mockApplicationStore) CreateApplication(ctx context.Context, driveID, studentUserID int64, appliedAt time.Time) (int64, error) {
	args := m.Called(ctx, driveID, studentUserID, appliedAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockApplicationStore) HasApplied(ctx context.Context, driveID, studentUserID int64) (bool, error) {
	args := m.Called(ctx, driveID, studentUserID)
	return args.Bool(0), args.Error(1)
}

func (m *mockApplicationStore) GetApplicantsByDrive(ctx context.Context, driveID int64) ([]models.Application, error) {
	args := m.Called(ctx, driveID)
	if apps := args.Get(0); apps != nil {
		return apps.([]models.Application), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockApplicationStore) GetApplicationsByStudent(ctx context.Context, studentUserID int64) ([]models.Application, error) {
	args := m.Called(ctx, studentUserID)
	if apps := args.Get(0); apps != nil {
		return apps.([]models.Application), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockRoundStore struct{ mock.Mock }

func (m *mockRoundStore) GetRound(ctx context.Context, driveID int64, roundIndex int) (*models.SelectionRound, error) {
	args := m.Called(ctx, driveID, roundIndex)
	if round := args.Get(0); round != nil {
		return round.(*models.SelectionRound), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRoundStore) UpdateStatus(ctx context.Context, roundID int64, from, to models.RoundStatus) error {
	return m.Called(ctx, roundID, from, to).Error(0)
}

func (m *mockRoundStore) ReplaceSelections(ctx context.Context, driveID int64, roundIndex int, studentIDs []int64) error {
	return m.Called(ctx, driveID, roundIndex, studentIDs).Error(0)
}

func (m *mockRoundStore) CandidatePool(ctx context.Context, driveID int64, roundIndex int) ([]int64, error) {
	args := m.Called(ctx, driveID, roundIndex)
	if pool := args.Get(0); pool != nil {
		return pool.([]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

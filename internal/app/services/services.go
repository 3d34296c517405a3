package services

import (
	"context"
	"time"

	"github.com/emrekrt/placementhub/internal/app/models"
)

// Store interfaces consumed by the services. The concrete pgx repositories
// satisfy them; tests substitute mocks.

// UserStore provides user persistence
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID int64) error
}

// TokenStore provides refresh token persistence
type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenUser(ctx context.Context, token string) (int64, error)
	RevokeToken(ctx context.Context, token string) error
}

// StudentStore provides student profile persistence
type StudentStore interface {
	GetProfileByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error)
	UpsertProfile(ctx context.Context, profile *models.StudentProfile) error
	UpdateCGPAByEmail(ctx context.Context, email string, cgpa float64) error
	SetPlacementStatus(ctx context.Context, userID int64, status models.PlacementStatus) error
}

// DriveStore provides drive persistence
type DriveStore interface {
	CreateDrive(ctx context.Context, drive *models.Drive, rounds []models.SelectionRound) (int64, error)
	GetDriveByID(ctx context.Context, id int64) (*models.Drive, error)
	GetAllDrives(ctx context.Context, company string, active *bool, page, pageSize int) ([]models.Drive, int64, error)
	UpdateDrive(ctx context.Context, drive *models.Drive) error
	DeactivateDrive(ctx context.Context, driveID int64) error
}

// ApplicationStore provides application persistence
type ApplicationStore interface {
	CreateApplication(ctx context.Context, driveID, studentUserID int64, appliedAt time.Time) (int64, error)
	HasApplied(ctx context.Context, driveID, studentUserID int64) (bool, error)
	GetApplicantsByDrive(ctx context.Context, driveID int64) ([]models.Application, error)
	GetApplicationsByStudent(ctx context.Context, studentUserID int64) ([]models.Application, error)
}

// RoundStore provides selection round persistence
type RoundStore interface {
	GetRound(ctx context.Context, driveID int64, roundIndex int) (*models.SelectionRound, error)
	UpdateStatus(ctx context.Context, roundID int64, from, to models.RoundStatus) error
	ReplaceSelections(ctx context.Context, driveID int64, roundIndex int, studentIDs []int64) error
	CandidatePool(ctx context.Context, driveID int64, roundIndex int) ([]int64, error)
}

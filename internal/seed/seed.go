package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/emrekrt/placementhub/internal/app/models"
	appRepos "github.com/emrekrt/placementhub/internal/app/repositories"
	"github.com/emrekrt/placementhub/internal/config"
	"github.com/emrekrt/placementhub/internal/pkg/apperrors"
	pkgAuth "github.com/emrekrt/placementhub/internal/pkg/auth"
)

// CreateDefaultData creates the default placement officer account on first
// run. Without it a fresh install has nobody who can create drives.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	email := cfg.Seed.OfficerEmail
	if email == "" {
		lgr.Info().Msg("No seed officer email configured, skipping default data")
		return nil
	}

	_, err := userRepo.GetUserByEmail(ctx, email)
	if err == nil {
		lgr.Info().Str("email", email).Msg("Default placement officer already exists, skipping creation")
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		lgr.Error().Err(err).Msg("Error checking for default placement officer")
		return err
	}

	password := cfg.Seed.OfficerPassword
	if password == "" {
		lgr.Warn().Msg("SEED_OFFICER_PASSWORD not set, skipping default officer creation")
		return nil
	}

	hashedPassword, err := pkgAuth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default officer password")
		return err
	}

	officer := &appModels.User{
		Email:      email,
		Password:   hashedPassword,
		FirstName:  "Placement",
		LastName:   "Office",
		RoleType:   appModels.RolePlacementOfficer,
		Department: "Placement Cell",
		IsActive:   true,
	}

	officerID, err := userRepo.CreateUser(ctx, officer)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating default placement officer")
		return err
	}

	lgr.Info().Int64("officerId", officerID).Str("email", email).Msg("Default placement officer created")
	return nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrekrt/placementhub/internal/app/models"
	"github.com/emrekrt/placementhub/internal/pkg/apperrors"
	"github.com/emrekrt/placementhub/internal/pkg/logger"
)

// StudentRepository handles student profile database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const profileColumns = "user_id, department, cgpa, current_backlogs, batch, graduation_year, placement_status, created_at, updated_at"

func scanProfile(row pgx.Row) (*models.StudentProfile, error) {
	var p models.StudentProfile
	err := row.Scan(
		&p.UserID, &p.Department, &p.CGPA, &p.CurrentBacklogs,
		&p.Batch, &p.GraduationYear, &p.PlacementStatus,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProfileByUserID retrieves a student profile by the owning user id
func (r *StudentRepository) GetProfileByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	sql, args, err := r.sb.Select(profileColumns).
		From("student_profiles").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get profile query: %w", err)
	}

	profile, err := scanProfile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning student profile row")
		return nil, fmt.Errorf("error retrieving student profile: %w", err)
	}
	return profile, nil
}

// UpsertProfile creates the student profile on first completion and updates
// the student-owned fields afterwards. Profiles are never deleted.
func (r *StudentRepository) UpsertProfile(ctx context.Context, profile *models.StudentProfile) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("student_profiles").
		Columns("user_id", "department", "cgpa", "current_backlogs", "batch", "graduation_year", "placement_status", "created_at", "updated_at").
		Values(profile.UserID, profile.Department, profile.CGPA, profile.CurrentBacklogs,
			profile.Batch, profile.GraduationYear, models.PlacementStatusUnplaced, now, now).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			department = EXCLUDED.department,
			current_backlogs = EXCLUDED.current_backlogs,
			batch = EXCLUDED.batch,
			graduation_year = EXCLUDED.graduation_year,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building upsert profile SQL")
		return fmt.Errorf("failed to build upsert profile query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", profile.UserID).Msg("Error executing upsert profile query")
		return fmt.Errorf("error saving student profile: %w", err)
	}
	return nil
}

// UpdateCGPAByEmail sets the CGPA of the profile owned by the user with the
// given email. Returns ErrStudentNotFound when no profile matches.
func (r *StudentRepository) UpdateCGPAByEmail(ctx context.Context, email string, cgpa float64) error {
	sql, args, err := r.sb.Update("student_profiles").
		Set("cgpa", cgpa).
		Set("updated_at", time.Now()).
		Where(squirrel.Expr("user_id = (SELECT id FROM users WHERE email = ?)", email)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update cgpa query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("email", email).Msg("Error executing update cgpa query")
		return fmt.Errorf("error updating cgpa: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// SetPlacementStatus flips the placement status of a student
func (r *StudentRepository) SetPlacementStatus(ctx context.Context, userID int64, status models.PlacementStatus) error {
	sql, args, err := r.sb.Update("student_profiles").
		Set("placement_status", status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set placement status query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing set placement status query")
		return fmt.Errorf("error updating placement status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

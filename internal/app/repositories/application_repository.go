package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrekrt/placementhub/internal/app/models"
	"github.com/emrekrt/placementhub/internal/pkg/apperrors"
	"github.com/emrekrt/placementhub/internal/pkg/dberrors"
	"github.com/emrekrt/placementhub/internal/pkg/logger"
)

// ApplicationRepository handles application database operations
type ApplicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateApplication inserts an application row. The unique index on
// (drive_id, student_user_id) makes concurrent duplicate applies lose at the
// store rather than at a racy read-then-write check; the violation is mapped
// to ErrAlreadyApplied.
func (r *ApplicationRepository) CreateApplication(ctx context.Context, driveID, studentUserID int64, appliedAt time.Time) (int64, error) {
	sql, args, err := r.sb.Insert("applications").
		Columns("drive_id", "student_user_id", "status", "applied_at").
		Values(driveID, studentUserID, models.ApplicationStatusApplied, appliedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create application SQL")
		return 0, fmt.Errorf("failed to build create application query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "applications_drive_student_key") {
			return 0, apperrors.ErrAlreadyApplied
		}
		logger.Error().Err(err).Int64("driveID", driveID).Int64("studentUserID", studentUserID).Msg("Error executing create application query")
		return 0, fmt.Errorf("error creating application: %w", err)
	}
	return id, nil
}

// HasApplied reports whether an application exists for the (drive, student) pair
func (r *ApplicationRepository) HasApplied(ctx context.Context, driveID, studentUserID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("applications").
		Where(squirrel.Eq{"drive_id": driveID, "student_user_id": studentUserID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build has applied query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Int64("driveID", driveID).Int64("studentUserID", studentUserID).Msg("Error checking application existence")
		return false, fmt.Errorf("error checking application: %w", err)
	}
	return exists, nil
}

// GetApplicantsByDrive returns every application of a drive joined with the
// applicant's profile, ordered by application time.
func (r *ApplicationRepository) GetApplicantsByDrive(ctx context.Context, driveID int64) ([]models.Application, error) {
	sql, args, err := r.sb.Select(
		"a.id", "a.drive_id", "a.student_user_id", "a.status", "a.applied_at",
		"p.user_id", "p.department", "p.cgpa", "p.current_backlogs", "p.batch",
		"p.graduation_year", "p.placement_status", "p.created_at", "p.updated_at").
		From("applications a").
		Join("student_profiles p ON a.student_user_id = p.user_id").
		Where(squirrel.Eq{"a.drive_id": driveID}).
		OrderBy("a.applied_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get applicants query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("driveID", driveID).Msg("Error querying applicants")
		return nil, fmt.Errorf("error querying applicants: %w", err)
	}
	defer rows.Close()

	var applications []models.Application
	for rows.Next() {
		var app models.Application
		var profile models.StudentProfile
		err := rows.Scan(
			&app.ID, &app.DriveID, &app.StudentUserID, &app.Status, &app.AppliedAt,
			&profile.UserID, &profile.Department, &profile.CGPA, &profile.CurrentBacklogs,
			&profile.Batch, &profile.GraduationYear, &profile.PlacementStatus,
			&profile.CreatedAt, &profile.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan applicant row: %w", err)
		}
		app.Student = &profile
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// GetApplicantIDs returns the student user ids of every applicant of a drive
func (r *ApplicationRepository) GetApplicantIDs(ctx context.Context, driveID int64) ([]int64, error) {
	sql, args, err := r.sb.Select("student_user_id").
		From("applications").
		Where(squirrel.Eq{"drive_id": driveID}).
		OrderBy("applied_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get applicant ids query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("driveID", driveID).Msg("Error querying applicant ids")
		return nil, fmt.Errorf("error querying applicant ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan applicant id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetApplicationsByStudent returns every application a student has made
func (r *ApplicationRepository) GetApplicationsByStudent(ctx context.Context, studentUserID int64) ([]models.Application, error) {
	sql, args, err := r.sb.Select("id", "drive_id", "student_user_id", "status", "applied_at").
		From("applications").
		Where(squirrel.Eq{"student_user_id": studentUserID}).
		OrderBy("applied_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentUserID", studentUserID).Msg("Error querying student applications")
		return nil, fmt.Errorf("error querying student applications: %w", err)
	}
	defer rows.Close()

	var applications []models.Application
	for rows.Next() {
		var app models.Application
		if err := rows.Scan(&app.ID, &app.DriveID, &app.StudentUserID, &app.Status, &app.AppliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application row: %w", err)
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

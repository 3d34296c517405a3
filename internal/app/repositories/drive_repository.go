package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrekrt/placementhub/internal/app/models"
	"github.com/emrekrt/placementhub/internal/pkg/apperrors"
	"github.com/emrekrt/placementhub/internal/pkg/logger"
)

// DriveRepository handles drive database operations
type DriveRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDriveRepository creates a new DriveRepository
func NewDriveRepository(db *pgxpool.Pool) *DriveRepository {
	return &DriveRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateDrive inserts a drive together with its fixed round list in one
// transaction and returns the new drive id.
func (r *DriveRepository) CreateDrive(ctx context.Context, drive *models.Drive, rounds []models.SelectionRound) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin create drive transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	sql, args, err := r.sb.Insert("drives").
		Columns("company_name", "role", "description", "ctc", "locations",
			"drive_date", "application_deadline",
			"min_cgpa", "max_backlogs", "allowed_departments", "allowed_batches", "unplaced_only",
			"created_by", "is_active", "created_at", "updated_at").
		Values(drive.CompanyName, drive.Role, drive.Description, drive.CTC, drive.Locations,
			drive.DriveDate, drive.Deadline,
			drive.Eligibility.MinCGPA, drive.Eligibility.MaxBacklogs,
			drive.Eligibility.AllowedDepartments, drive.Eligibility.AllowedBatches, drive.Eligibility.UnplacedOnly,
			drive.CreatedByID, true, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create drive SQL")
		return 0, fmt.Errorf("failed to build create drive query: %w", err)
	}

	var driveID int64
	if err := tx.QueryRow(ctx, sql, args...).Scan(&driveID); err != nil {
		logger.Error().Err(err).Str("company", drive.CompanyName).Msg("Error executing create drive query")
		return 0, fmt.Errorf("error creating drive: %w", err)
	}

	for i := range rounds {
		roundSQL, roundArgs, err := r.sb.Insert("selection_rounds").
			Columns("drive_id", "round_index", "name", "status", "scheduled_at", "updated_at").
			Values(driveID, i, rounds[i].Name, models.RoundStatusPending, rounds[i].ScheduledAt, now).
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("failed to build create round query: %w", err)
		}
		if _, err := tx.Exec(ctx, roundSQL, roundArgs...); err != nil {
			logger.Error().Err(err).Int64("driveID", driveID).Int("roundIndex", i).Msg("Error inserting selection round")
			return 0, fmt.Errorf("error creating selection round: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit create drive transaction: %w", err)
	}
	return driveID, nil
}

const driveColumns = `d.id, d.company_name, d.role, d.description, d.ctc, d.locations,
	d.drive_date, d.application_deadline,
	d.min_cgpa, d.max_backlogs, d.allowed_departments, d.allowed_batches, d.unplaced_only,
	d.created_by, d.is_active, d.created_at, d.updated_at,
	u.id, u.email, u.first_name, u.last_name, u.role_type, u.department`

func scanDrive(row pgx.Row) (*models.Drive, error) {
	var d models.Drive
	var creator models.User
	err := row.Scan(
		&d.ID, &d.CompanyName, &d.Role, &d.Description, &d.CTC, &d.Locations,
		&d.DriveDate, &d.Deadline,
		&d.Eligibility.MinCGPA, &d.Eligibility.MaxBacklogs,
		&d.Eligibility.AllowedDepartments, &d.Eligibility.AllowedBatches, &d.Eligibility.UnplacedOnly,
		&d.CreatedByID, &d.IsActive, &d.CreatedAt, &d.UpdatedAt,
		&creator.ID, &creator.Email, &creator.FirstName, &creator.LastName, &creator.RoleType, &creator.Department,
	)
	if err != nil {
		return nil, err
	}
	d.CreatedBy = &creator
	return &d, nil
}

// GetDriveByID retrieves a drive with its creator and ordered round list
func (r *DriveRepository) GetDriveByID(ctx context.Context, id int64) (*models.Drive, error) {
	sql, args, err := r.sb.Select(driveColumns).
		From("drives d").
		Join("users u ON d.created_by = u.id").
		Where(squirrel.Eq{"d.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get drive query: %w", err)
	}

	drive, err := scanDrive(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDriveNotFound
		}
		logger.Error().Err(err).Int64("driveID", id).Msg("Error scanning drive row")
		return nil, fmt.Errorf("error retrieving drive: %w", err)
	}

	rounds, err := r.loadRounds(ctx, id)
	if err != nil {
		return nil, err
	}
	drive.Rounds = rounds
	return drive, nil
}

// loadRounds fetches the drive's rounds with their selection sets, ordered by index
func (r *DriveRepository) loadRounds(ctx context.Context, driveID int64) ([]models.SelectionRound, error) {
	sql, args, err := r.sb.Select("id", "drive_id", "round_index", "name", "status", "scheduled_at", "updated_at").
		From("selection_rounds").
		Where(squirrel.Eq{"drive_id": driveID}).
		OrderBy("round_index ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build load rounds query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("driveID", driveID).Msg("Error querying selection rounds")
		return nil, fmt.Errorf("error loading selection rounds: %w", err)
	}
	defer rows.Close()

	var rounds []models.SelectionRound
	for rows.Next() {
		var round models.SelectionRound
		if err := rows.Scan(&round.ID, &round.DriveID, &round.RoundIndex, &round.Name,
			&round.Status, &round.ScheduledAt, &round.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan selection round row: %w", err)
		}
		rounds = append(rounds, round)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating selection rounds: %w", err)
	}

	for i := range rounds {
		selected, err := r.loadSelections(ctx, rounds[i].ID)
		if err != nil {
			return nil, err
		}
		rounds[i].SelectedStudents = selected
	}
	return rounds, nil
}

func (r *DriveRepository) loadSelections(ctx context.Context, roundID int64) ([]int64, error) {
	sql, args, err := r.sb.Select("student_user_id").
		From("round_selections").
		Where(squirrel.Eq{"round_id": roundID}).
		OrderBy("student_user_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build load selections query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error loading round selections: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan round selection row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetAllDrives retrieves drives with pagination and optional filtering.
// Visibility filtering per actor happens in the service layer.
func (r *DriveRepository) GetAllDrives(ctx context.Context, company string, active *bool, page, pageSize int) ([]models.Drive, int64, error) {
	baseSelect := r.sb.Select(driveColumns).
		From("drives d").
		Join("users u ON d.created_by = u.id")
	countSelect := r.sb.Select("COUNT(*)").
		From("drives d").
		Join("users u ON d.created_by = u.id")

	whereCondition := squirrel.And{}
	if company != "" {
		whereCondition = append(whereCondition, squirrel.ILike{"d.company_name": "%" + strings.TrimSpace(company) + "%"})
	}
	if active != nil {
		whereCondition = append(whereCondition, squirrel.Eq{"d.is_active": *active})
	}
	if len(whereCondition) > 0 {
		baseSelect = baseSelect.Where(whereCondition)
		countSelect = countSelect.Where(whereCondition)
	}

	countSQL, countArgs, err := countSelect.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count drives SQL")
		return nil, 0, fmt.Errorf("failed to build count drives query: %w", err)
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error executing count drives query")
		return nil, 0, fmt.Errorf("failed to count drives: %w", err)
	}
	if totalItems == 0 {
		return []models.Drive{}, 0, nil
	}

	offset := uint64((page - 1) * pageSize)
	baseSelect = baseSelect.OrderBy("d.created_at DESC").
		Limit(uint64(pageSize)).
		Offset(offset)

	querySQL, queryArgs, err := baseSelect.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all drives SQL")
		return nil, 0, fmt.Errorf("failed to build get drives query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySQL, queryArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all drives query")
		return nil, 0, fmt.Errorf("failed to query drives: %w", err)
	}
	defer rows.Close()

	var drives []models.Drive
	for rows.Next() {
		drive, err := scanDrive(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning drive row")
			return nil, 0, fmt.Errorf("failed to scan drive row: %w", err)
		}
		drives = append(drives, *drive)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating drives: %w", err)
	}

	for i := range drives {
		rounds, err := r.loadRounds(ctx, drives[i].ID)
		if err != nil {
			return nil, 0, err
		}
		drives[i].Rounds = rounds
	}
	return drives, totalItems, nil
}

// UpdateDrive rewrites the drive's core fields and eligibility criteria.
// The round list is untouched; it is fixed at creation.
func (r *DriveRepository) UpdateDrive(ctx context.Context, drive *models.Drive) error {
	sql, args, err := r.sb.Update("drives").
		Set("company_name", drive.CompanyName).
		Set("role", drive.Role).
		Set("description", drive.Description).
		Set("ctc", drive.CTC).
		Set("locations", drive.Locations).
		Set("drive_date", drive.DriveDate).
		Set("application_deadline", drive.Deadline).
		Set("min_cgpa", drive.Eligibility.MinCGPA).
		Set("max_backlogs", drive.Eligibility.MaxBacklogs).
		Set("allowed_departments", drive.Eligibility.AllowedDepartments).
		Set("allowed_batches", drive.Eligibility.AllowedBatches).
		Set("unplaced_only", drive.Eligibility.UnplacedOnly).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": drive.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update drive SQL")
		return fmt.Errorf("failed to build update drive query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("driveID", drive.ID).Msg("Error executing update drive query")
		return fmt.Errorf("error updating drive: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDriveNotFound
	}
	return nil
}

// DeactivateDrive removes the drive from listings without deleting its rows
func (r *DriveRepository) DeactivateDrive(ctx context.Context, driveID int64) error {
	sql, args, err := r.sb.Update("drives").
		Set("is_active", false).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": driveID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build deactivate drive query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("driveID", driveID).Msg("Error executing deactivate drive query")
		return fmt.Errorf("error deactivating drive: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDriveNotFound
	}
	return nil
}

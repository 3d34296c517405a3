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
	"github.com/emrekrt/placementhub/internal/app/selection"
	"github.com/emrekrt/placementhub/internal/pkg/apperrors"
	"github.com/emrekrt/placementhub/internal/pkg/logger"
)

// RoundRepository handles selection round database operations
type RoundRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRoundRepository creates a new RoundRepository
func NewRoundRepository(db *pgxpool.Pool) *RoundRepository {
	return &RoundRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetRound retrieves one round of a drive by its index
func (r *RoundRepository) GetRound(ctx context.Context, driveID int64, roundIndex int) (*models.SelectionRound, error) {
	sql, args, err := r.sb.Select("id", "drive_id", "round_index", "name", "status", "scheduled_at", "updated_at").
		From("selection_rounds").
		Where(squirrel.Eq{"drive_id": driveID, "round_index": roundIndex}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get round query: %w", err)
	}

	var round models.SelectionRound
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&round.ID, &round.DriveID, &round.RoundIndex, &round.Name,
		&round.Status, &round.ScheduledAt, &round.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoundNotFound
		}
		logger.Error().Err(err).Int64("driveID", driveID).Int("roundIndex", roundIndex).Msg("Error scanning round row")
		return nil, fmt.Errorf("error retrieving round: %w", err)
	}

	selected, err := r.loadSelections(ctx, r.db, round.ID)
	if err != nil {
		return nil, err
	}
	round.SelectedStudents = selected
	return &round, nil
}

// loadSelections returns the round's selected student ids through the given
// runner, so it can read both pooled and in-transaction state.
func (r *RoundRepository) loadSelections(ctx context.Context, runner queryRunner, roundID int64) ([]int64, error) {
	sql, args, err := r.sb.Select("student_user_id").
		From("round_selections").
		Where(squirrel.Eq{"round_id": roundID}).
		OrderBy("student_user_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build load selections query: %w", err)
	}

	rows, err := runner.Query(ctx, sql, args...)
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

// UpdateStatus advances the round's status with a compare-and-set on the
// current status. Zero rows affected means another writer got there first;
// the caller should reload and retry against fresh state.
func (r *RoundRepository) UpdateStatus(ctx context.Context, roundID int64, from, to models.RoundStatus) error {
	sql, args, err := r.sb.Update("selection_rounds").
		Set("status", to).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": roundID, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update round status query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("roundID", roundID).Msg("Error executing update round status query")
		return fmt.Errorf("error updating round status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

// ReplaceSelections replaces the round's selection set in one transaction.
// The round row and its neighbours are locked, and both the candidate pool and
// the next round's selections are re-read under those locks, so the subset
// chain is checked against write-time state rather than whatever snapshot the
// administrator's screen was built from. updated_at is bumped even when the
// submitted set equals the stored one.
func (r *RoundRepository) ReplaceSelections(ctx context.Context, driveID int64, roundIndex int, studentIDs []int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin replace selections transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the previous and next rounds along with the target, so neither
	// this round's pool nor the downstream selections can shift under us.
	lockSQL, lockArgs, err := r.sb.Select("id", "round_index").
		From("selection_rounds").
		Where(squirrel.Eq{"drive_id": driveID}).
		Where(squirrel.Expr("round_index BETWEEN ? AND ?", roundIndex-1, roundIndex+1)).
		OrderBy("round_index ASC").
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build lock rounds query: %w", err)
	}
	lockRows, err := tx.Query(ctx, lockSQL, lockArgs...)
	if err != nil {
		return fmt.Errorf("error locking rounds: %w", err)
	}
	var roundID, nextRoundID int64
	for lockRows.Next() {
		var id int64
		var index int
		if err := lockRows.Scan(&id, &index); err != nil {
			lockRows.Close()
			return fmt.Errorf("failed to scan locked round row: %w", err)
		}
		switch index {
		case roundIndex:
			roundID = id
		case roundIndex + 1:
			nextRoundID = id
		}
	}
	lockRows.Close()
	if err := lockRows.Err(); err != nil {
		return fmt.Errorf("error iterating locked rounds: %w", err)
	}
	if roundID == 0 {
		return apperrors.ErrRoundNotFound
	}

	pool, err := r.candidatePoolTx(ctx, tx, driveID, roundIndex)
	if err != nil {
		return err
	}
	if err := selection.ValidateSelection(pool, studentIDs); err != nil {
		return err
	}

	if nextRoundID != 0 {
		nextSelected, err := r.loadSelections(ctx, tx, nextRoundID)
		if err != nil {
			return err
		}
		if err := selection.ValidateDownstream(studentIDs, nextSelected); err != nil {
			return err
		}
	}

	deleteSQL, deleteArgs, err := r.sb.Delete("round_selections").
		Where(squirrel.Eq{"round_id": roundID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete selections query: %w", err)
	}
	if _, err := tx.Exec(ctx, deleteSQL, deleteArgs...); err != nil {
		logger.Error().Err(err).Int64("roundID", roundID).Msg("Error clearing round selections")
		return fmt.Errorf("error clearing round selections: %w", err)
	}

	for _, studentID := range studentIDs {
		insertSQL, insertArgs, err := r.sb.Insert("round_selections").
			Columns("round_id", "student_user_id").
			Values(roundID, studentID).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert selection query: %w", err)
		}
		if _, err := tx.Exec(ctx, insertSQL, insertArgs...); err != nil {
			logger.Error().Err(err).Int64("roundID", roundID).Int64("studentUserID", studentID).Msg("Error inserting round selection")
			return fmt.Errorf("error inserting round selection: %w", err)
		}
	}

	touchSQL, touchArgs, err := r.sb.Update("selection_rounds").
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": roundID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build touch round query: %w", err)
	}
	if _, err := tx.Exec(ctx, touchSQL, touchArgs...); err != nil {
		return fmt.Errorf("error touching round: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit replace selections transaction: %w", err)
	}
	return nil
}

// CandidatePool returns the ids a round may select from, outside a transaction
func (r *RoundRepository) CandidatePool(ctx context.Context, driveID int64, roundIndex int) ([]int64, error) {
	return r.candidatePoolTx(ctx, nil, driveID, roundIndex)
}

type queryRunner interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// candidatePoolTx computes the candidate pool for the round at roundIndex:
// every applicant for round 0, the previous round's selections otherwise.
func (r *RoundRepository) candidatePoolTx(ctx context.Context, tx pgx.Tx, driveID int64, roundIndex int) ([]int64, error) {
	var runner queryRunner = r.db
	if tx != nil {
		runner = tx
	}

	var sql string
	var args []interface{}
	var err error
	if roundIndex <= 0 {
		sql, args, err = r.sb.Select("student_user_id").
			From("applications").
			Where(squirrel.Eq{"drive_id": driveID}).
			OrderBy("applied_at ASC").
			ToSql()
	} else {
		sql, args, err = r.sb.Select("rs.student_user_id").
			From("round_selections rs").
			Join("selection_rounds sr ON rs.round_id = sr.id").
			Where(squirrel.Eq{"sr.drive_id": driveID, "sr.round_index": roundIndex - 1}).
			OrderBy("rs.student_user_id ASC").
			ToSql()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build candidate pool query: %w", err)
	}

	rows, err := runner.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("driveID", driveID).Int("roundIndex", roundIndex).Msg("Error querying candidate pool")
		return nil, fmt.Errorf("error querying candidate pool: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan candidate pool row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

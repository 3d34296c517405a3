package services

import (
	"context"

	"github.com/emrekrt/placementhub/internal/app/auth"
	"github.com/emrekrt/placementhub/internal/app/models"
	"github.com/emrekrt/placementhub/internal/app/models/dto"
	"github.com/emrekrt/placementhub/internal/app/selection"
	"github.com/emrekrt/placementhub/internal/pkg/logger"
)

// RoundService runs a drive's selection rounds: status advancement and the
// per-round selection of students out of the candidate pool.
type RoundService interface {
	ListRounds(ctx context.Context, actor models.Actor, driveID int64) ([]dto.RoundResponse, error)
	GetCandidatePool(ctx context.Context, actor models.Actor, driveID int64, roundIndex int) (*dto.CandidatePoolResponse, error)
	AdvanceStatus(ctx context.Context, actor models.Actor, driveID int64, roundIndex int, to models.RoundStatus) (*dto.RoundResponse, error)
	SelectStudents(ctx context.Context, actor models.Actor, driveID int64, roundIndex int, studentIDs []int64) (*dto.RoundResponse, error)
}

type roundService struct {
	driveStore DriveStore
	roundStore RoundStore
	authz      *auth.AuthorizationService
}

// NewRoundService creates a new RoundService
func NewRoundService(driveStore DriveStore, roundStore RoundStore, authz *auth.AuthorizationService) RoundService {
	return &roundService{
		driveStore: driveStore,
		roundStore: roundStore,
		authz:      authz,
	}
}

// ListRounds returns the drive's rounds in index order. Managers only.
func (s *roundService) ListRounds(ctx context.Context, actor models.Actor, driveID int64) ([]dto.RoundResponse, error) {
	drive, err := s.manageableDrive(ctx, actor, driveID)
	if err != nil {
		return nil, err
	}

	selection.SortByIndex(drive.Rounds)
	responses := make([]dto.RoundResponse, 0, len(drive.Rounds))
	for i := range drive.Rounds {
		responses = append(responses, dto.FromRound(&drive.Rounds[i]))
	}
	return responses, nil
}

// GetCandidatePool returns the student ids the round may select from
func (s *roundService) GetCandidatePool(ctx context.Context, actor models.Actor, driveID int64, roundIndex int) (*dto.CandidatePoolResponse, error) {
	if _, err := s.manageableDrive(ctx, actor, driveID); err != nil {
		return nil, err
	}

	// Existence check before computing the pool, so a bad index reads as a
	// missing round rather than an empty pool.
	if _, err := s.roundStore.GetRound(ctx, driveID, roundIndex); err != nil {
		return nil, err
	}

	pool, err := s.roundStore.CandidatePool(ctx, driveID, roundIndex)
	if err != nil {
		return nil, err
	}
	if pool == nil {
		pool = []int64{}
	}

	return &dto.CandidatePoolResponse{
		DriveID:    driveID,
		RoundIndex: roundIndex,
		StudentIDs: pool,
	}, nil
}

// AdvanceStatus moves a round one step forward. The store's compare-and-set
// keeps two concurrent managers from both succeeding.
func (s *roundService) AdvanceStatus(ctx context.Context, actor models.Actor, driveID int64, roundIndex int, to models.RoundStatus) (*dto.RoundResponse, error) {
	if _, err := s.manageableDrive(ctx, actor, driveID); err != nil {
		return nil, err
	}

	round, err := s.roundStore.GetRound(ctx, driveID, roundIndex)
	if err != nil {
		return nil, err
	}

	if err := selection.ValidateTransition(round.Status, to); err != nil {
		return nil, err
	}

	if err := s.roundStore.UpdateStatus(ctx, round.ID, round.Status, to); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("driveId", driveID).
		Int("roundIndex", roundIndex).
		Str("from", string(round.Status)).
		Str("to", string(to)).
		Int64("by", actor.ID).
		Msg("Round status advanced")

	updated, err := s.roundStore.GetRound(ctx, driveID, roundIndex)
	if err != nil {
		return nil, err
	}
	resp := dto.FromRound(updated)
	return &resp, nil
}

// SelectStudents replaces the round's selected set. The submitted ids are
// deduplicated here; pool membership is verified inside the store's
// transaction against a pool read under the same lock.
func (s *roundService) SelectStudents(ctx context.Context, actor models.Actor, driveID int64, roundIndex int, studentIDs []int64) (*dto.RoundResponse, error) {
	if _, err := s.manageableDrive(ctx, actor, driveID); err != nil {
		return nil, err
	}

	if _, err := s.roundStore.GetRound(ctx, driveID, roundIndex); err != nil {
		return nil, err
	}

	deduped := selection.Dedupe(studentIDs)
	if err := s.roundStore.ReplaceSelections(ctx, driveID, roundIndex, deduped); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("driveId", driveID).
		Int("roundIndex", roundIndex).
		Int("selected", len(deduped)).
		Int64("by", actor.ID).
		Msg("Round selections replaced")

	updated, err := s.roundStore.GetRound(ctx, driveID, roundIndex)
	if err != nil {
		return nil, err
	}
	resp := dto.FromRound(updated)
	return &resp, nil
}

func (s *roundService) manageableDrive(ctx context.Context, actor models.Actor, driveID int64) (*models.Drive, error) {
	drive, err := s.driveStore.GetDriveByID(ctx, driveID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.ValidateManage(actor, drive); err != nil {
		return nil, err
	}
	return drive, nil
}

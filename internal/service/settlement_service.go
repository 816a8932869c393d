package service

import (
	"context"
	"errors"

	"github.com/evetabi/betboard/internal/domain"
	"github.com/evetabi/betboard/internal/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PendingWagerStore provides the wager operations settlement needs.
type PendingWagerStore interface {
	GetPendingByGame(ctx context.Context, gameID uuid.UUID) ([]*domain.Wager, error)
	UpdateResult(ctx context.Context, id uuid.UUID, status domain.WagerStatus, profit decimal.Decimal) error
}

// SettlementService grades and finalizes every pending wager on a completed
// game. Grading itself is pure; this service owns the orchestration and the
// writes.
type SettlementService struct {
	wagers PendingWagerStore
	logger *zap.Logger
}

// NewSettlementService creates a SettlementService.
func NewSettlementService(wagers PendingWagerStore, logger *zap.Logger) *SettlementService {
	return &SettlementService{wagers: wagers, logger: logger}
}

// SettleGame grades all pending wagers on game and writes their terminal
// results. Returns how many wagers were settled in this call.
//
// The run is idempotent: only PENDING wagers are fetched, and the result
// write refuses non-PENDING rows, so re-running after a crash or alongside a
// concurrent run settles each wager exactly once. A failure on one wager is
// logged and skipped; the rest of the batch still settles.
func (s *SettlementService) SettleGame(ctx context.Context, game *domain.Game) (int, error) {
	if !game.HasFinalScore() {
		return 0, domain.ErrScoreIncomplete
	}

	pending, err := s.wagers.GetPendingByGame(ctx, game.ID)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	settled := 0
	for _, w := range pending {
		status, profit := domain.Grade(w, game.AwayTeam, game.HomeTeam, *game.AwayScore, *game.HomeScore)

		err := s.wagers.UpdateResult(ctx, w.ID, status, profit)
		switch {
		case errors.Is(err, domain.ErrWagerAlreadySettled):
			// Lost a race with another settlement run. The wager has its
			// terminal result; nothing to do.
			s.logger.Debug("wager settled concurrently, skipping",
				zap.String("wager_id", w.ID.String()))
			continue
		case err != nil:
			s.logger.Error("failed to write wager result",
				zap.String("wager_id", w.ID.String()),
				zap.String("status", string(status)),
				zap.Error(err))
			continue
		}

		metrics.WagersGraded.WithLabelValues(string(status)).Inc()
		settled++
	}

	s.logger.Info("game settled",
		zap.String("game_id", game.ID.String()),
		zap.Int("pending", len(pending)),
		zap.Int("settled", settled))
	return settled, nil
}

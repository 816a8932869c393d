package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/evetabi/betboard/internal/config"
	"github.com/evetabi/betboard/internal/domain"
	"github.com/evetabi/betboard/internal/metrics"
	"github.com/evetabi/betboard/internal/oddsapi"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ScoresFetcher pulls raw score payloads from the provider.
type ScoresFetcher interface {
	FetchScores(ctx context.Context, sport string, daysFrom int) ([]oddsapi.ScorePayload, error)
}

// GameScoreStore provides the game operations score ingestion needs.
type GameScoreStore interface {
	GetByExternalID(ctx context.Context, externalID string) (*domain.Game, error)
	UpdateScores(ctx context.Context, id uuid.UUID, away, home *int, completed bool) error
}

// GameSettler settles all pending wagers on a completed game.
type GameSettler interface {
	SettleGame(ctx context.Context, game *domain.Game) (int, error)
}

// ScoreService runs the score ingestion pipeline: fetch the provider's recent
// scores for a sport, update tracked games and hand completed games to the
// settlement engine.
type ScoreService struct {
	fetcher ScoresFetcher
	games   GameScoreStore
	settler GameSettler
	cfg     *config.OddsAPIConfig
	logger  *zap.Logger
}

// NewScoreService creates a ScoreService.
func NewScoreService(fetcher ScoresFetcher, games GameScoreStore, settler GameSettler, cfg *config.OddsAPIConfig, logger *zap.Logger) *ScoreService {
	return &ScoreService{
		fetcher: fetcher,
		games:   games,
		settler: settler,
		cfg:     cfg,
		logger:  logger,
	}
}

// IngestScores executes one score ingestion run for a sport and always
// returns a report. Score entries are matched to teams strictly by name;
// payloads for games we never tracked are skipped silently, and failures on
// individual games do not abort the run.
func (s *ScoreService) IngestScores(ctx context.Context, sport string) (*domain.RunReport, error) {
	if sport == "" {
		return nil, domain.ErrMissingSport
	}

	report := &domain.RunReport{}

	payloads, err := s.fetcher.FetchScores(ctx, sport, s.cfg.ScoresDaysFrom)
	if err != nil {
		metrics.ProviderFailures.WithLabelValues("scores").Inc()
		s.logger.Warn("scores fetch failed, treating as empty batch",
			zap.String("sport", sport), zap.Error(err))
		report.Advisory = "provider scores fetch failed; no games processed"
		return report, nil
	}

	report.ItemsTotal = len(payloads)
	if len(payloads) == 0 {
		report.Advisory = "provider returned no scores for sport"
		return report, nil
	}

	for i := range payloads {
		p := &payloads[i]
		graded, err := s.processScore(ctx, p)
		if err != nil {
			if errors.Is(err, domain.ErrGameNotFound) {
				// We only track games seen by odds ingestion. Provider scores
				// routinely cover games outside that set.
				s.logger.Debug("score payload for untracked game, skipping",
					zap.String("external_id", p.ID))
				continue
			}
			metrics.ItemErrors.WithLabelValues("scores").Inc()
			report.AddError("game %s (%s @ %s): %v", p.ID, p.AwayTeam, p.HomeTeam, err)
			continue
		}
		report.ItemsProcessed++
		report.WagersGraded += graded
		metrics.GamesScored.WithLabelValues(sport).Inc()
	}

	s.logger.Info("score ingestion run finished",
		zap.String("sport", sport),
		zap.Int("processed", report.ItemsProcessed),
		zap.Int("total", report.ItemsTotal),
		zap.Int("wagers_graded", report.WagersGraded),
		zap.Int("errors", len(report.Errors)))
	return report, nil
}

// processScore updates one game's scores and settles it when final. Returns
// the number of wagers settled.
func (s *ScoreService) processScore(ctx context.Context, p *oddsapi.ScorePayload) (int, error) {
	game, err := s.games.GetByExternalID(ctx, p.ID)
	if err != nil {
		return 0, err
	}

	away := extractScore(p.Scores, game.AwayTeam)
	home := extractScore(p.Scores, game.HomeTeam)

	if err := s.games.UpdateScores(ctx, game.ID, away, home, p.Completed); err != nil {
		return 0, err
	}

	// Reflect the write locally; the completion flag is monotonic.
	game.AwayScore = away
	game.HomeScore = home
	game.Completed = game.Completed || p.Completed

	if !game.HasFinalScore() {
		if game.Completed {
			s.logger.Warn("game completed without a full score, settlement deferred",
				zap.String("game_id", game.ID.String()),
				zap.String("external_id", p.ID))
		}
		return 0, nil
	}

	return s.settler.SettleGame(ctx, game)
}

// extractScore finds a team's score by name. Entry order in the payload is
// meaningless; only a name match counts. Returns nil when the team is absent
// or its score does not parse as an integer.
func extractScore(entries []oddsapi.ScoreEntry, team string) *int {
	for _, e := range entries {
		if e.Name != team {
			continue
		}
		n, err := strconv.Atoi(e.Score)
		if err != nil {
			return nil
		}
		return &n
	}
	return nil
}

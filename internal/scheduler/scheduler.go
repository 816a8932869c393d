// Package scheduler manages the two background goroutines that keep the
// board current:
//  1. oddsLoop   – pulls fresh odds for every configured sport.
//  2. scoresLoop – pulls recent scores and settles completed games.
package scheduler

import (
	"context"
	"time"

	"github.com/evetabi/betboard/internal/config"
	"github.com/evetabi/betboard/internal/service"
	"go.uber.org/zap"
)

// Scheduler drives the ingestion services on their configured cadence.
// Call Start(ctx) once from main(); cancel the context to shut it down
// gracefully.
type Scheduler struct {
	ingestSvc *service.IngestService
	scoreSvc  *service.ScoreService
	cfg       *config.Config
	logger    *zap.Logger
}

// NewScheduler creates a Scheduler.
func NewScheduler(ingestSvc *service.IngestService, scoreSvc *service.ScoreService, cfg *config.Config, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		ingestSvc: ingestSvc,
		scoreSvc:  scoreSvc,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start launches the polling goroutines. It returns immediately; both loops
// run until ctx is cancelled. Each loop runs once right away so a fresh
// deployment does not wait a full interval for data.
func (s *Scheduler) Start(ctx context.Context) {
	go s.oddsLoop(ctx)
	go s.scoresLoop(ctx)
	s.logger.Info("scheduler started",
		zap.Duration("odds_interval", s.cfg.Poll.OddsInterval),
		zap.Duration("scores_interval", s.cfg.Poll.ScoresInterval),
		zap.Strings("sports", s.cfg.OddsAPI.Sports))
}

// ──────────────────────────────────────────────────────────────────────────────
// oddsLoop
// ──────────────────────────────────────────────────────────────────────────────

func (s *Scheduler) oddsLoop(ctx context.Context) {
	defer s.recoverAndLog("oddsLoop")

	ticker := time.NewTicker(s.cfg.Poll.OddsInterval)
	defer ticker.Stop()

	s.runOdds(ctx)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("oddsLoop: shutting down")
			return
		case <-ticker.C:
			s.runOdds(ctx)
		}
	}
}

// runOdds ingests odds for every configured sport. Sports are independent; a
// failure on one does not stop the others.
func (s *Scheduler) runOdds(ctx context.Context) {
	for _, sport := range s.cfg.OddsAPI.Sports {
		report, err := s.ingestSvc.IngestOdds(ctx, sport)
		if err != nil {
			s.logger.Error("oddsLoop: ingestion failed",
				zap.String("sport", sport), zap.Error(err))
			continue
		}
		if !report.Clean() {
			s.logger.Warn("oddsLoop: run finished with item errors",
				zap.String("sport", sport),
				zap.Strings("errors", report.Errors))
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// scoresLoop
// ──────────────────────────────────────────────────────────────────────────────

func (s *Scheduler) scoresLoop(ctx context.Context) {
	defer s.recoverAndLog("scoresLoop")

	ticker := time.NewTicker(s.cfg.Poll.ScoresInterval)
	defer ticker.Stop()

	s.runScores(ctx)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scoresLoop: shutting down")
			return
		case <-ticker.C:
			s.runScores(ctx)
		}
	}
}

func (s *Scheduler) runScores(ctx context.Context) {
	for _, sport := range s.cfg.OddsAPI.Sports {
		report, err := s.scoreSvc.IngestScores(ctx, sport)
		if err != nil {
			s.logger.Error("scoresLoop: ingestion failed",
				zap.String("sport", sport), zap.Error(err))
			continue
		}
		if !report.Clean() {
			s.logger.Warn("scoresLoop: run finished with item errors",
				zap.String("sport", sport),
				zap.Strings("errors", report.Errors))
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Panic recovery
// ──────────────────────────────────────────────────────────────────────────────

// recoverAndLog is deferred inside each goroutine to catch unexpected panics,
// log them, and let the rest of the process keep running.
func (s *Scheduler) recoverAndLog(loop string) {
	if r := recover(); r != nil {
		s.logger.Error("PANIC recovered in scheduler loop",
			zap.String("loop", loop), zap.Any("panic", r))
	}
}
